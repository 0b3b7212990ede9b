// Package session runs one attempt at a level: tile selection, match
// checks, the countdown, hints, victory and defeat, and the rewarded-ad
// flows that follow them.
//
// A Session is driven by a single host loop: input handlers and Update are
// called from one goroutine and never overlap.
package session

// State is the phase of a session.
type State int

const (
	Playing State = iota
	CheckingMatch
	Victory
	Defeat
	Paused
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case Playing:
		return "Playing"
	case CheckingMatch:
		return "CheckingMatch"
	case Victory:
		return "Victory"
	case Defeat:
		return "Defeat"
	case Paused:
		return "Paused"
	default:
		return "Unknown"
	}
}

// Over reports whether the attempt has ended.
func (s State) Over() bool {
	return s == Victory || s == Defeat
}

// InPlay reports whether the countdown runs in this state.
func (s State) InPlay() bool {
	return s == Playing || s == CheckingMatch
}
