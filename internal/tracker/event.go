package tracker

import (
	"time"

	"github.com/sandeepkv93/goalquest/internal/model"
)

type EventKind string

const (
	EventGoalAdded             EventKind = "goal_added"
	EventGoalCompleted         EventKind = "goal_completed"
	EventPointsAwarded         EventKind = "points_awarded"
	EventBadgeUnlocked         EventKind = "badge_unlocked"
	EventNotificationDismissed EventKind = "notification_dismissed"
)

func (k EventKind) IsValid() bool {
	switch k {
	case EventGoalAdded, EventGoalCompleted, EventPointsAwarded, EventBadgeUnlocked, EventNotificationDismissed:
		return true
	default:
		return false
	}
}

// Event describes one state change of a Session. Total is the point total
// after the change. Goal is set for goal events, Badge for badge events.
type Event struct {
	Kind   EventKind
	GoalID string
	Title  string
	Points int
	Total  int
	Goal   *model.Goal
	Badge  *model.Badge
	At     time.Time
}

type Observer interface {
	Notify(Event)
}

type ObserverFunc func(Event)

func (f ObserverFunc) Notify(ev Event) { f(ev) }
