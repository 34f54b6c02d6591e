package model

import (
	"errors"
	"strings"
	"time"
)

type Badge struct {
	ID          string
	Title       string
	Description string
	ImageName   string
	UnlockedAt  time.Time
}

func (b Badge) Validate() error {
	if strings.TrimSpace(b.ID) == "" {
		return errors.New("model: badge id is required")
	}
	if strings.TrimSpace(b.Title) == "" {
		return errors.New("model: badge title is required")
	}
	return nil
}

// BadgeRule unlocks a badge the first time the point total reaches Threshold.
type BadgeRule struct {
	Threshold   int
	Title       string
	Description string
	ImageName   string
}

func (r BadgeRule) Qualifies(total int) bool {
	return total >= r.Threshold
}

func (r BadgeRule) Badge(id string, at time.Time) Badge {
	return Badge{
		ID:          id,
		Title:       r.Title,
		Description: r.Description,
		ImageName:   r.ImageName,
		UnlockedAt:  at,
	}
}

func DefaultBadgeRules() []BadgeRule {
	return []BadgeRule{
		{
			Threshold:   100,
			Title:       "First 100 Points",
			Description: "You've earned 100 points!",
			ImageName:   "star",
		},
	}
}
