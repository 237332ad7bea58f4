package stats

import "testing"

func TestFormatTableAlignsColumns(t *testing.T) {
	headers := []string{"Player", "Net WPM", "Accuracy"}
	rows := [][]string{
		{"alice", "97", "98.50%"},
		{"bob", "104", "91.00%"},
	}
	rightAlign := map[int]bool{1: true, 2: true}

	lines := formatTable(headers, rows, rightAlign)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "Player Net WPM Accuracy" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "alice       97   98.50%" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "bob        104   91.00%" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}

func TestFormatTableEmpty(t *testing.T) {
	if lines := formatTable(nil, nil, nil); lines != nil {
		t.Fatalf("expected nil for empty input, got %v", lines)
	}
}
