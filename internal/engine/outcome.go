package engine

import "context"

// Outcome carries the final metrics handed to the outcome handler at Finish.
type Outcome struct {
	NetWPM        int
	GrossWPM      int
	Accuracy      float64
	WeightedScore float64
	TimeMode      int
	Language      string
	UserID        int64
}

// OutcomeHandler decides what happens to a finished session's result.
// Persisting vs discarding is a configuration choice made by the caller,
// not a property of the session.
type OutcomeHandler func(ctx context.Context, out Outcome) error

// DiscardOutcome drops the result. Sandbox mode and guest play use it.
func DiscardOutcome(context.Context, Outcome) error {
	return nil
}
