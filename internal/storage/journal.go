package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/sandeepkv93/goalquest/internal/model"
	"github.com/sandeepkv93/goalquest/internal/tracker"
)

var _ Repository = (*SQLiteRepository)(nil)

// Journal mirrors session events into a Repository so the history view can
// page through them.
type Journal struct {
	repo Repository
}

func NewJournal(repo Repository) (*Journal, error) {
	if repo == nil {
		return nil, errors.New("storage: nil repository")
	}
	return &Journal{repo: repo}, nil
}

func (j *Journal) Record(ctx context.Context, ev tracker.Event) error {
	if !ev.Kind.IsValid() {
		return fmt.Errorf("storage: unknown event kind %q", ev.Kind)
	}
	switch ev.Kind {
	case tracker.EventGoalAdded:
		if ev.Goal != nil {
			if err := ev.Goal.Validate(); err != nil {
				return fmt.Errorf("journal goal %s: %w", ev.GoalID, err)
			}
			if err := j.repo.CreateGoal(ctx, goalRow(*ev.Goal)); err != nil {
				return fmt.Errorf("journal goal %s: %w", ev.GoalID, err)
			}
		}
	case tracker.EventGoalCompleted:
		if ev.Goal != nil {
			if err := j.repo.UpdateGoal(ctx, goalRow(*ev.Goal)); err != nil {
				return fmt.Errorf("journal completion %s: %w", ev.GoalID, err)
			}
		}
	case tracker.EventBadgeUnlocked:
		if ev.Badge != nil {
			b := ev.Badge
			if err := b.Validate(); err != nil {
				return fmt.Errorf("journal badge: %w", err)
			}
			if err := j.repo.CreateBadge(ctx, Badge{
				ID:          b.ID,
				Title:       b.Title,
				Description: b.Description,
				ImageName:   b.ImageName,
				UnlockedAt:  b.UnlockedAt,
			}); err != nil {
				return fmt.Errorf("journal badge %q: %w", b.Title, err)
			}
		}
	}
	_, err := j.repo.AppendEvent(ctx, Event{
		Kind:       string(ev.Kind),
		GoalID:     ev.GoalID,
		Title:      ev.Title,
		Points:     ev.Points,
		Total:      ev.Total,
		OccurredAt: ev.At,
	})
	return err
}

// Recent returns up to limit events, newest first.
func (j *Journal) Recent(ctx context.Context, limit int) ([]Event, error) {
	return j.repo.ListEvents(ctx, EventListFilter{Newest: true, Limit: limit})
}

func (j *Journal) Goals(ctx context.Context) ([]Goal, error) {
	return j.repo.ListGoals(ctx, GoalListFilter{})
}

func (j *Journal) Badges(ctx context.Context) ([]Badge, error) {
	return j.repo.ListBadges(ctx)
}

func goalRow(g model.Goal) Goal {
	return Goal{
		ID:          g.ID,
		Title:       g.Title,
		Category:    g.Category,
		Points:      g.Points,
		IsCompleted: g.IsCompleted,
		CreatedAt:   g.CreatedAt,
		CompletedAt: g.CompletedAt,
	}
}
