package orchestration

import "fmt"

// State is the lifecycle state of an Orchestrator.
type State int

const (
	// StateIdle accepts a new submission.
	StateIdle State = iota
	// StateRunning has one Transport call in flight.
	StateRunning
	// StateSucceeded holds a successful outcome until acknowledged.
	StateSucceeded
	// StateFailed holds a failure message until acknowledged.
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// IsTerminal reports whether s is Succeeded or Failed.
func (s State) IsTerminal() bool {
	return s == StateSucceeded || s == StateFailed
}

func isAllowedTransition(from, to State) bool {
	switch from {
	case StateIdle:
		return to == StateRunning
	case StateRunning:
		return to == StateSucceeded || to == StateFailed
	case StateSucceeded, StateFailed:
		return to == StateIdle
	default:
		return false
	}
}

func transition(cur *State, to State) error {
	if !isAllowedTransition(*cur, to) {
		return fmt.Errorf("disallowed transition: %s -> %s", *cur, to)
	}
	*cur = to
	return nil
}

// Snapshot is a consistent view of an orchestrator.
type Snapshot struct {
	State State
	// Cycle counts submissions that reached Running.
	Cycle uint64
	// Percent is the last percent delivered to the presenter in this cycle.
	Percent int
	// Message is the failure message of a Failed cycle.
	Message string
}
