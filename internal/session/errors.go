package session

import (
	"errors"
	"fmt"
)

// ErrFinished is returned by any transition after a creation session has been saved.
var ErrFinished = errors.New("session finished")

// TransitionError reports a transition the table does not allow from the current step
type TransitionError struct {
	Variant    Variant
	Step       Step
	Transition Transition
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s not allowed from %s in %s session", e.Transition, e.Step, e.Variant)
}

// StepIndexError reports a jump target outside the workflow
type StepIndexError struct {
	Index int
	Len   int
}

func (e *StepIndexError) Error() string {
	return fmt.Sprintf("step index %d out of range [0,%d)", e.Index, e.Len)
}

// ValidationError is a failed guard or precondition; no request was sent.
type ValidationError struct {
	Step    Step
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
