package project

import "fmt"

// transitions lists the states reachable from each state.
var transitions = map[State][]State{
	StateProposed:    {StateInReview, StateApproved, StateCancelled},
	StateInReview:    {StateProposed, StateApproved, StateCancelled},
	StateApproved:    {StateInReview, StateInExecution, StateCancelled},
	StateInExecution: {StateFinished, StateCancelled},
	StateCancelled:   {StateProposed},
	StateFinished:    nil,
}

// NextStates returns the states a project may move to from s.
func NextStates(s State) []State {
	return append([]State(nil), transitions[s]...)
}

// ValidateTransition validates a requested state change. With strict off,
// any move between known states is accepted.
func ValidateTransition(from, to State, strict bool) error {
	if from == to {
		return nil
	}
	if _, ok := transitions[to]; !ok {
		return fmt.Errorf("%w: unknown state %q", ErrInvalidTransition, to)
	}
	if !strict {
		return nil
	}
	for _, next := range transitions[from] {
		if next == to {
			return nil
		}
	}
	return fmt.Errorf("%w: %s to %s", ErrInvalidTransition, from, to)
}

func stateValues() []string {
	out := make([]string, len(States))
	for i, s := range States {
		out[i] = string(s)
	}
	return out
}
