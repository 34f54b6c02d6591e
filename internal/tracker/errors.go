package tracker

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownGoal          = errors.New("tracker: unknown goal")
	ErrGoalAlreadyCompleted = errors.New("tracker: goal already completed")
)

// GoalError reports which goal operation failed.
type GoalError struct {
	Op  string
	ID  string
	Err error
}

func (e *GoalError) Error() string {
	if e == nil {
		return ""
	}
	if e.ID != "" {
		return fmt.Sprintf("%s goal %s: %v", e.Op, e.ID, e.Err)
	}
	return fmt.Sprintf("%s goal: %v", e.Op, e.Err)
}

func (e *GoalError) Unwrap() error { return e.Err }

func wrapGoalErr(op, id string, err error) error {
	if err == nil {
		return nil
	}
	return &GoalError{Op: op, ID: id, Err: err}
}
