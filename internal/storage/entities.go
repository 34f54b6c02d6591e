package storage

import "time"

type Goal struct {
	ID          string
	Title       string
	Category    string
	Points      int
	IsCompleted bool
	CreatedAt   time.Time
	CompletedAt *time.Time
}

type Badge struct {
	ID          string
	Title       string
	Description string
	ImageName   string
	UnlockedAt  time.Time
}

type Event struct {
	ID         int64
	Kind       string
	GoalID     string
	Title      string
	Points     int
	Total      int
	OccurredAt time.Time
}

type GoalListFilter struct {
	Completed *bool
	Limit     int
	Offset    int
}

type EventListFilter struct {
	Kind   string
	Newest bool
	Limit  int
	Offset int
}
