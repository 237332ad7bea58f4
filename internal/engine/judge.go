package engine

// Judge decides whether a typed character counts as correct for a target
// character. Policies are injected per session instead of subclassing the
// keystroke handler.
type Judge func(input, target rune) bool

// LenientJudge is plain equality. Used for custom/sandbox text.
func LenientJudge(input, target rune) bool {
	return input == target
}

// StrictSpaceJudge is equality with hard space rules: space for a non-space
// target is wrong, and a non-space for a space target is wrong. Used for
// timed/competitive play so word boundaries cannot be skipped.
func StrictSpaceJudge(input, target rune) bool {
	if input == ' ' && target != ' ' {
		return false
	}
	if input != ' ' && target == ' ' {
		return false
	}
	return input == target
}
