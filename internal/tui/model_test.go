package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dpratama/typerush/internal/engine"
)

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModelTypesThroughBatch(t *testing.T) {
	session := engine.NewSession()
	m := NewModel(session, engine.NewSequentialSupplier([]string{"ab", "cd"}, 1), 0, true)

	if got := string(session.Target()); got != "ab " {
		t.Fatalf("first batch = %q, want %q", got, "ab ")
	}

	m.Update(keyRunes("ab"))
	m.Update(tea.KeyMsg{Type: tea.KeySpace})
	if got := string(session.Target()); got != "cd " {
		t.Fatalf("after rollover batch = %q, want %q", got, "cd ")
	}
	if m.finished {
		t.Fatalf("game finished too early")
	}

	m.Update(keyRunes("cd"))
	m.Update(tea.KeyMsg{Type: tea.KeySpace})
	if !m.finished {
		t.Fatalf("game should finish when the pool is exhausted")
	}
}

func TestModelTimerStartsOnFirstKeystroke(t *testing.T) {
	base := time.Unix(100, 0)
	current := base
	session := engine.NewSession(engine.WithClock(func() time.Time { return current }))
	m := NewModel(session, engine.NewShuffleSupplier([]string{"abc"}, 1), 30*time.Second, false)

	// Idle time before the first keystroke must not count.
	current = base.Add(10 * time.Second)
	m.Update(keyRunes("a"))
	if got := session.Elapsed(); got != 0 {
		t.Fatalf("elapsed = %v, want 0 right after first keystroke", got)
	}
	if !m.started {
		t.Fatalf("model should be started after first keystroke")
	}
}

func TestModelTimeExpiryFinishes(t *testing.T) {
	base := time.Unix(100, 0)
	current := base
	session := engine.NewSession(engine.WithClock(func() time.Time { return current }))
	m := NewModel(session, engine.NewShuffleSupplier([]string{"abc"}, 1), 15*time.Second, false)

	m.Update(keyRunes("a"))
	current = base.Add(16 * time.Second)
	m.Update(tickMsg(current))
	if !m.finished {
		t.Fatalf("game should finish once the time limit passes")
	}
	if session.Running() {
		t.Fatalf("session still running after expiry")
	}
}

func TestModelEscAborts(t *testing.T) {
	session := engine.NewSession()
	m := NewModel(session, engine.NewShuffleSupplier([]string{"abc"}, 1), 0, true)

	m.Update(keyRunes("a"))
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatalf("expected quit command on escape")
	}
	if session.Running() {
		t.Fatalf("session should be stopped after give up")
	}
	if m.finished {
		t.Fatalf("give up must not reach the results screen")
	}
}

func TestModelIgnoresControlRunes(t *testing.T) {
	session := engine.NewSession()
	m := NewModel(session, engine.NewSequentialSupplier([]string{"ab"}, 1), 0, true)

	m.Update(keyRunes("\x07"))
	if session.Cursor() != 0 {
		t.Fatalf("control rune moved the cursor")
	}
}

func TestRenderFooterSegments(t *testing.T) {
	session := engine.NewSession()
	m := NewModel(session, engine.NewShuffleSupplier([]string{"abc"}, 1), 0, true)

	out := m.renderFooter()
	if !strings.Contains(out, "∞") {
		t.Fatalf("unlimited game footer should show ∞: %q", out)
	}
	if !strings.Contains(out, "Errors 0") {
		t.Fatalf("footer missing error count: %q", out)
	}
}

func TestRenderResultsShowsSandboxNotice(t *testing.T) {
	session := engine.NewSession()
	m := NewModel(session, engine.NewSequentialSupplier([]string{"a"}, 1), 0, true)
	m.Update(keyRunes("a"))
	m.Update(tea.KeyMsg{Type: tea.KeySpace})

	if !m.finished {
		t.Fatalf("game should be finished")
	}
	out := m.View()
	for _, want := range []string{"Results", "Net WPM", "Score not saved"} {
		if !strings.Contains(out, want) {
			t.Fatalf("results view missing %q:\n%s", want, out)
		}
	}
}
