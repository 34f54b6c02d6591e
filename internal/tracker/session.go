// Package tracker holds the in-memory state of one goal-tracking session:
// the ordered goal list, the point total and the unlocked badges.
//
// A Session has a single writer. All mutations run synchronously on the
// caller's goroutine and observers are notified before the call returns.
package tracker

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/sandeepkv93/goalquest/internal/model"
)

type Session struct {
	goals     *GoalStore
	score     ScoreTracker
	unlocker  *BadgeUnlocker
	unlocked  []model.Badge
	titles    map[string]bool
	pending   []model.Badge
	observers []Observer
	newID     func() string
	now       func() time.Time
	log       *slog.Logger
}

type Option func(*Session)

func WithIDGenerator(fn func() string) Option {
	return func(s *Session) {
		if fn != nil {
			s.newID = fn
		}
	}
}

func WithClock(fn func() time.Time) Option {
	return func(s *Session) {
		if fn != nil {
			s.now = fn
		}
	}
}

func WithRules(rules ...model.BadgeRule) Option {
	return func(s *Session) {
		s.unlocker = NewBadgeUnlocker(rules...)
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.log = l
		}
	}
}

// Snapshot is everything the presentation layer needs to draw one frame.
type Snapshot struct {
	Points  int
	Rank    string
	Goals   []model.Goal
	Badges  []model.Badge
	Pending *model.Badge
}

func NewSession(opts ...Option) *Session {
	s := &Session{
		goals:    NewGoalStore(),
		unlocker: NewBadgeUnlocker(),
		titles:   make(map[string]bool),
		newID:    uuid.NewString,
		now:      func() time.Time { return time.Now().UTC() },
		log:      slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Session) Subscribe(obs Observer) {
	if obs == nil {
		return
	}
	s.observers = append(s.observers, obs)
}

func (s *Session) AddGoal(title, category string, points int) string {
	at := s.now()
	goal := s.goals.Add(s.newID(), title, category, points, at)
	s.log.Info("goal added", "goal_id", goal.ID, "title", goal.Title, "points", goal.Points)
	s.emit(Event{
		Kind:   EventGoalAdded,
		GoalID: goal.ID,
		Title:  goal.Title,
		Points: goal.Points,
		Total:  s.score.Total(),
		Goal:   &goal,
		At:     at,
	})
	return goal.ID
}

// CompleteGoal awards the goal's points and unlocks every badge the new total
// qualifies for. Unknown or already completed goals return an error and
// change nothing.
func (s *Session) CompleteGoal(id string) (int, []model.Badge, error) {
	at := s.now()
	awarded, err := s.goals.Complete(id, at)
	if err != nil {
		s.log.Warn("goal completion rejected", "goal_id", id, "err", err)
		return 0, nil, err
	}
	s.score.Add(awarded)
	goal, _ := s.goals.Get(id)
	total := s.score.Total()
	s.log.Info("goal completed", "goal_id", id, "points", awarded, "total", total)

	s.emit(Event{Kind: EventGoalCompleted, GoalID: id, Title: goal.Title, Points: awarded, Total: total, Goal: &goal, At: at})
	s.emit(Event{Kind: EventPointsAwarded, GoalID: id, Points: awarded, Total: total, At: at})

	var unlocked []model.Badge
	for {
		rule, ok := s.unlocker.Evaluate(total, s.titles)
		if !ok {
			break
		}
		badge := rule.Badge(s.newID(), at)
		s.titles[badge.Title] = true
		s.unlocked = append(s.unlocked, badge)
		s.pending = append(s.pending, badge)
		unlocked = append(unlocked, badge)
		s.log.Info("badge unlocked", "badge", badge.Title, "total", total)
		b := badge
		s.emit(Event{Kind: EventBadgeUnlocked, Title: badge.Title, Total: total, Badge: &b, At: at})
	}
	return awarded, unlocked, nil
}

// PendingNotification is the badge the presentation should announce next.
// Only one is exposed at a time.
func (s *Session) PendingNotification() (model.Badge, bool) {
	if len(s.pending) == 0 {
		return model.Badge{}, false
	}
	return s.pending[0], true
}

// DismissBadgeNotification consumes the pending notification. It reports
// false when nothing was pending.
func (s *Session) DismissBadgeNotification() bool {
	if len(s.pending) == 0 {
		return false
	}
	badge := s.pending[0]
	s.pending = s.pending[1:]
	s.emit(Event{Kind: EventNotificationDismissed, Title: badge.Title, Total: s.score.Total(), Badge: &badge, At: s.now()})
	return true
}

func (s *Session) Points() int {
	return s.score.Total()
}

func (s *Session) Goals() []model.Goal {
	return s.goals.List()
}

func (s *Session) Goal(id string) (model.Goal, bool) {
	return s.goals.Get(id)
}

func (s *Session) UnlockedBadges() []model.Badge {
	out := make([]model.Badge, len(s.unlocked))
	copy(out, s.unlocked)
	return out
}

func (s *Session) Rules() []model.BadgeRule {
	return s.unlocker.Rules()
}

func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		Points: s.score.Total(),
		Rank:   model.RankForPoints(s.score.Total()),
		Goals:  s.Goals(),
		Badges: s.UnlockedBadges(),
	}
	if b, ok := s.PendingNotification(); ok {
		snap.Pending = &b
	}
	return snap
}

func (s *Session) emit(ev Event) {
	for _, obs := range s.observers {
		obs.Notify(ev)
	}
}
