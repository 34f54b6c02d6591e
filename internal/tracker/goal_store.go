package tracker

import (
	"time"

	"github.com/sandeepkv93/goalquest/internal/model"
)

// GoalStore keeps goals in insertion order, which is also display order.
type GoalStore struct {
	goals []model.Goal
	index map[string]int
}

func NewGoalStore() *GoalStore {
	return &GoalStore{index: make(map[string]int)}
}

// Add appends an open goal. Points are taken as given; range checks belong to
// the input form.
func (s *GoalStore) Add(id, title, category string, points int, at time.Time) model.Goal {
	goal := model.Goal{
		ID:        id,
		Title:     title,
		Category:  category,
		Points:    points,
		CreatedAt: at,
	}
	s.index[id] = len(s.goals)
	s.goals = append(s.goals, goal)
	return goal
}

// Complete marks the goal done and returns its points. A goal completes at most
// once; a failed call leaves the store untouched.
func (s *GoalStore) Complete(id string, at time.Time) (int, error) {
	i, ok := s.index[id]
	if !ok {
		return 0, wrapGoalErr("complete", id, ErrUnknownGoal)
	}
	if s.goals[i].IsCompleted {
		return 0, wrapGoalErr("complete", id, ErrGoalAlreadyCompleted)
	}
	done := at
	s.goals[i].IsCompleted = true
	s.goals[i].CompletedAt = &done
	return s.goals[i].Points, nil
}

func (s *GoalStore) Get(id string) (model.Goal, bool) {
	i, ok := s.index[id]
	if !ok {
		return model.Goal{}, false
	}
	return s.goals[i], true
}

// List returns a snapshot; callers may not mutate the store through it.
func (s *GoalStore) List() []model.Goal {
	out := make([]model.Goal, len(s.goals))
	copy(out, s.goals)
	return out
}

func (s *GoalStore) Len() int {
	return len(s.goals)
}
