package payment

import "fmt"

// State is the outcome of a payment session.
type State int

const (
	StatePending State = iota
	StateSucceeded
	StateFailed
	StateCancelled
	StateNotificationReceived
)

// IsTerminal reports whether s has no outgoing transitions.
func (s State) IsTerminal() bool {
	return s != StatePending
}

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	case StateCancelled:
		return "cancelled"
	case StateNotificationReceived:
		return "notificationReceived"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Policy tells the embedded browser whether to follow a navigation.
type Policy int

const (
	PolicyAllow Policy = iota
	PolicyCancel
)

func (p Policy) String() string {
	if p == PolicyAllow {
		return "allow"
	}
	return "cancel"
}
