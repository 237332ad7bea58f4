// Package model defines shared data structures.
package model

// Config defines play settings for a typing run.
type Config struct {
	Lang      string
	TimeMode  int
	BatchSize int
	User      string
}

// User identifies a registered player. ID 0 means guest.
type User struct {
	ID       int64
	Username string
}

// Guest reports whether the user has no persisted account.
func (u User) Guest() bool {
	return u.ID <= 0
}

// Score is one persisted game result, joined with its player's name.
type Score struct {
	Username      string
	NetWPM        int
	GrossWPM      int
	Accuracy      float64
	WeightedScore float64
	TimeMode      int
	Language      string
	PlayedAt      string
}

// BoardFilter narrows leaderboard queries.
type BoardFilter struct {
	TimeMode   int
	Language   string
	NameSearch string
	Limit      int
}
