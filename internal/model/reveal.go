package model

// RevealState gates a book's link behind two clicks. It counts the clicks
// seen since the link was last revealed.
type RevealState int

const (
	RevealIdle  RevealState = 0
	RevealArmed RevealState = 1
)

// revealClicks is the click count at which the link is shown.
const revealClicks = 2

// Click applies one click on the book's control and reports whether the
// link is revealed by it. Reaching two clicks reveals and folds back to idle.
func (s RevealState) Click() (RevealState, bool) {
	next := s + 1
	if next >= revealClicks {
		return RevealIdle, true
	}
	return next, false
}

func (s RevealState) String() string {
	switch s {
	case RevealIdle:
		return "idle"
	case RevealArmed:
		return "armed"
	default:
		return "unknown"
	}
}
