package stats

import (
	"bytes"
	"strings"
	"testing"

	"github.com/dpratama/typerush/internal/model"
)

func TestRenderLeaderboard(t *testing.T) {
	scores := []model.Score{
		{Username: "alice", NetWPM: 82, GrossWPM: 88, Accuracy: 97.2, WeightedScore: 78.9, TimeMode: 30, Language: "English", PlayedAt: "2025-01-02 10:00:00"},
		{Username: "bob", NetWPM: 75, GrossWPM: 84, Accuracy: 89.0, WeightedScore: 63.1, TimeMode: 30, Language: "Indonesia", PlayedAt: "2025-01-03 11:00:00"},
	}
	var buf bytes.Buffer
	if err := RenderLeaderboard(&buf, scores); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Player", "alice", "bob", "97.2%", "78.9", "Indonesia"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d lines", len(lines))
	}
}

func TestRenderLeaderboardEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderLeaderboard(&buf, nil); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(buf.String(), "No scores found.") {
		t.Fatalf("unexpected empty output: %q", buf.String())
	}
}

func TestRenderHistoryIncludesTrend(t *testing.T) {
	scores := []model.Score{
		{Username: "alice", NetWPM: 70, GrossWPM: 75, Accuracy: 96, WeightedScore: 65, TimeMode: 60, Language: "English", PlayedAt: "2025-01-05 09:00:00"},
		{Username: "alice", NetWPM: 60, GrossWPM: 66, Accuracy: 94, WeightedScore: 54, TimeMode: 60, Language: "English", PlayedAt: "2025-01-04 09:00:00"},
		{Username: "alice", NetWPM: 50, GrossWPM: 58, Accuracy: 92, WeightedScore: 43, TimeMode: 60, Language: "English", PlayedAt: "2025-01-03 09:00:00"},
	}
	var buf bytes.Buffer
	if err := RenderHistory(&buf, scores, 1); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "WPM trend ") {
		t.Fatalf("history output missing trend line:\n%s", out)
	}
	if !strings.Contains(out, "60s") {
		t.Fatalf("history output missing time mode:\n%s", out)
	}
}

func TestRenderHistorySingleGameSkipsTrend(t *testing.T) {
	scores := []model.Score{
		{Username: "bob", NetWPM: 40, GrossWPM: 45, Accuracy: 90, WeightedScore: 34, TimeMode: 15, Language: "English", PlayedAt: "2025-01-01 08:00:00"},
	}
	var buf bytes.Buffer
	if err := RenderHistory(&buf, scores, 5); err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(buf.String(), "WPM trend") {
		t.Fatalf("single game should not render a trend:\n%s", buf.String())
	}
}
