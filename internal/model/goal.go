package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	MinGoalPoints     = 1
	MaxGoalPoints     = 100
	DefaultGoalPoints = 10
)

var ErrInvalidPoints = errors.New("model: goal points out of range")

type Goal struct {
	ID          string
	Title       string
	Category    string
	IsCompleted bool
	Points      int
	CreatedAt   time.Time
	CompletedAt *time.Time
}

// ClampPoints bounds n to the range the add-goal stepper allows.
func ClampPoints(n int) int {
	if n < MinGoalPoints {
		return MinGoalPoints
	}
	if n > MaxGoalPoints {
		return MaxGoalPoints
	}
	return n
}

func (g Goal) Validate() error {
	if strings.TrimSpace(g.ID) == "" {
		return errors.New("model: goal id is required")
	}
	if strings.TrimSpace(g.Title) == "" {
		return errors.New("model: goal title is required")
	}
	if g.Points < MinGoalPoints || g.Points > MaxGoalPoints {
		return fmt.Errorf("%w: %d", ErrInvalidPoints, g.Points)
	}
	if g.IsCompleted && g.CompletedAt == nil {
		return errors.New("model: completed_at is required when goal is completed")
	}
	if !g.IsCompleted && g.CompletedAt != nil {
		return errors.New("model: completed_at must be nil when goal is not completed")
	}
	return nil
}
