package storage

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("storage: not found")

type Repository interface {
	CreateGoal(ctx context.Context, in Goal) error
	GetGoal(ctx context.Context, id string) (Goal, error)
	UpdateGoal(ctx context.Context, in Goal) error
	ListGoals(ctx context.Context, filter GoalListFilter) ([]Goal, error)

	CreateBadge(ctx context.Context, in Badge) error
	ListBadges(ctx context.Context) ([]Badge, error)

	AppendEvent(ctx context.Context, in Event) (int64, error)
	ListEvents(ctx context.Context, filter EventListFilter) ([]Event, error)
	CountEvents(ctx context.Context, kind string) (int, error)
}
