// Package engine implements the typing session state machine and scoring.
package engine

import (
	"context"
	"time"
)

// CharState records the judgment of a single target character.
type CharState uint8

// Character states, one per target position.
const (
	Untyped CharState = iota
	Correct
	Wrong
)

// Session owns the active word batch, per-character judgments, and all
// running counters for a single game attempt. Display counters
// (batchCorrect/batchErrors) are reversible via backspace; keystroke
// counters are permanent so corrected mistakes still cost accuracy.
//
// A Session is not safe for concurrent use; callers deliver keystrokes
// from a single event loop.
type Session struct {
	target []rune
	status []CharState
	cursor int

	batchCorrect         int
	batchErrors          int
	batchKeystrokes      int
	batchCorrectstrokes  int
	historyCorrect       int
	historyErrors        int
	historyKeystrokes    int
	historyCorrectstroke int

	startedAt time.Time
	running   bool

	judge   Judge
	handler OutcomeHandler
	now     func() time.Time

	timeMode int
	language string
	userID   int64
}

// Option configures a Session at construction time.
type Option func(*Session)

// WithJudge selects the keystroke judgment policy.
func WithJudge(j Judge) Option {
	return func(s *Session) {
		if j != nil {
			s.judge = j
		}
	}
}

// WithOutcomeHandler selects what happens to the final metrics on Finish.
func WithOutcomeHandler(h OutcomeHandler) Option {
	return func(s *Session) {
		if h != nil {
			s.handler = h
		}
	}
}

// WithClock overrides the time source. Used by tests.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		if now != nil {
			s.now = now
		}
	}
}

// WithResultContext attaches the mode/language/user carried into the Outcome.
func WithResultContext(timeMode int, language string, userID int64) Option {
	return func(s *Session) {
		s.timeMode = timeMode
		s.language = language
		s.userID = userID
	}
}

// NewSession builds a session with a lenient judge and discarding handler
// unless overridden.
func NewSession(opts ...Option) *Session {
	s := &Session{
		judge:   LenientJudge,
		handler: DiscardOutcome,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start resets all state and loads the first batch. The session is running
// afterwards; calling Start again begins a fresh attempt.
func (s *Session) Start(words []string) {
	s.resetCounters()
	s.LoadBatch(words)
	s.startedAt = s.now()
	s.running = true
}

// ResetClock moves elapsed-time zero to now without touching counters.
// Aligns the timer to the first keystroke so idle time never counts.
func (s *Session) ResetClock() {
	s.startedAt = s.now()
}

// LoadBatch folds the outgoing batch's counters into history, then replaces
// the target text with the given words, each followed by one space. Only the
// active batch is held in memory, which keeps endless play bounded.
func (s *Session) LoadBatch(words []string) {
	s.historyCorrect += s.batchCorrect
	s.historyErrors += s.batchErrors
	s.historyKeystrokes += s.batchKeystrokes
	s.historyCorrectstroke += s.batchCorrectstrokes

	s.batchCorrect = 0
	s.batchErrors = 0
	s.batchKeystrokes = 0
	s.batchCorrectstrokes = 0
	s.cursor = 0

	total := 0
	for _, w := range words {
		total += len([]rune(w)) + 1
	}
	s.target = make([]rune, 0, total)
	for _, w := range words {
		s.target = append(s.target, []rune(w)...)
		s.target = append(s.target, ' ')
	}
	s.status = make([]CharState, len(s.target))
}

// ProcessKeystroke judges one typed character against its target and
// advances the cursor. The keystroke tally is permanent: backspace never
// undoes it, so a corrected mistake still lowers accuracy.
func (s *Session) ProcessKeystroke(input, target rune) {
	if !s.running {
		return
	}
	correct := s.judge(input, target)

	s.batchKeystrokes++
	if correct {
		s.batchCorrectstrokes++
	}

	if s.cursor < len(s.status) {
		if correct {
			s.status[s.cursor] = Correct
		} else {
			s.status[s.cursor] = Wrong
		}
	}

	if correct {
		s.batchCorrect++
	} else {
		s.batchErrors++
	}
	s.cursor++
}

// ProcessBackspace un-judges the character before the cursor. Only the
// display counters are reversed; keystroke totals stay put. Returns false
// when there is nothing to undo.
func (s *Session) ProcessBackspace() bool {
	if !s.running || s.cursor <= 0 {
		return false
	}
	s.cursor--
	if s.cursor < len(s.status) {
		switch s.status[s.cursor] {
		case Correct:
			s.batchCorrect--
		case Wrong:
			s.batchErrors--
		}
		s.status[s.cursor] = Untyped
	}
	return true
}

// Finish stops the session and hands the final metrics to the outcome
// handler. A finished or never-started session is a no-op.
func (s *Session) Finish(ctx context.Context) error {
	if !s.running {
		return nil
	}
	s.running = false
	elapsed := s.now().Sub(s.startedAt)
	out := Outcome{
		NetWPM:        s.NetWPM(elapsed),
		GrossWPM:      s.GrossWPM(elapsed),
		Accuracy:      s.Accuracy(),
		WeightedScore: s.WeightedScore(elapsed),
		TimeMode:      s.timeMode,
		Language:      s.language,
		UserID:        s.userID,
	}
	return s.handler(ctx, out)
}

// Abort stops the session without invoking the outcome handler (give up).
func (s *Session) Abort() {
	s.running = false
}

// Running reports whether keystrokes are currently accepted.
func (s *Session) Running() bool {
	return s.running
}

// Cursor returns the index of the next character to judge.
func (s *Session) Cursor() int {
	return s.cursor
}

// Target returns the active batch's characters. Callers must not mutate it.
func (s *Session) Target() []rune {
	return s.target
}

// Status returns the per-character judgments. Callers must not mutate it.
func (s *Session) Status() []CharState {
	return s.status
}

// BatchDone reports whether every character of the batch has been judged.
func (s *Session) BatchDone() bool {
	return s.cursor >= len(s.target)
}

// Elapsed returns time since the session clock was last reset.
func (s *Session) Elapsed() time.Duration {
	return s.now().Sub(s.startedAt)
}

// TotalErrors sums errors across history and the active batch.
func (s *Session) TotalErrors() int {
	return s.historyErrors + s.batchErrors
}

// TotalCorrectChars sums correct characters across history and the batch.
func (s *Session) TotalCorrectChars() int {
	return s.historyCorrect + s.batchCorrect
}

func (s *Session) resetCounters() {
	s.cursor = 0
	s.batchCorrect = 0
	s.batchErrors = 0
	s.batchKeystrokes = 0
	s.batchCorrectstrokes = 0
	s.historyCorrect = 0
	s.historyErrors = 0
	s.historyKeystrokes = 0
	s.historyCorrectstroke = 0
	s.running = false
}
