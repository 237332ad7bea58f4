package engine

import (
	"math"
	"time"
)

// Scoring constants.
const (
	// CharsPerWord is the industry-standard normalization: 5 chars = 1 word.
	CharsPerWord = 5
	// MinMinutesForWPM floors the elapsed time (~1 second) so WPM never
	// blows up right after the first keystroke.
	MinMinutesForWPM = 0.0167
	// AccuracyWeight is the exponent of the weighted-score penalty. Larger
	// values punish low accuracy more steeply.
	AccuracyWeight = 1.5
)

// GrossWPM is the raw speed over all typed characters, correct or not.
func (s *Session) GrossWPM(elapsed time.Duration) int {
	minutes := float64(elapsed.Milliseconds()) / 60000.0
	if minutes < MinMinutesForWPM {
		return 0
	}
	typed := s.historyCorrect + s.batchCorrect + s.historyErrors + s.batchErrors
	return int((float64(typed) / CharsPerWord) / minutes)
}

// NetWPM counts only correctly typed characters.
func (s *Session) NetWPM(elapsed time.Duration) int {
	minutes := float64(elapsed.Milliseconds()) / 60000.0
	if minutes < MinMinutesForWPM {
		return 0
	}
	correct := s.historyCorrect + s.batchCorrect
	return int((float64(correct) / CharsPerWord) / minutes)
}

// Accuracy is the permanent keystroke ratio in percent. Backspace cannot
// repair it. With no keystrokes yet it is 100 by convention.
func (s *Session) Accuracy() float64 {
	total := s.historyKeystrokes + s.batchKeystrokes
	correct := s.historyCorrectstroke + s.batchCorrectstrokes
	if total == 0 {
		return 100.0
	}
	return float64(correct) / float64(total) * 100.0
}

// WeightedScore scales net WPM by an accuracy penalty factor, used for
// leaderboard ranking.
func (s *Session) WeightedScore(elapsed time.Duration) float64 {
	net := s.NetWPM(elapsed)
	factor := math.Pow(s.Accuracy()/100.0, AccuracyWeight)
	return float64(net) * factor
}
