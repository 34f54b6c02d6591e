package tracker

import "github.com/sandeepkv93/goalquest/internal/model"

// BadgeUnlocker evaluates an ordered threshold table. New rules only extend
// the table; Evaluate never changes.
type BadgeUnlocker struct {
	rules []model.BadgeRule
}

func NewBadgeUnlocker(rules ...model.BadgeRule) *BadgeUnlocker {
	if len(rules) == 0 {
		rules = model.DefaultBadgeRules()
	}
	table := make([]model.BadgeRule, len(rules))
	copy(table, rules)
	return &BadgeUnlocker{rules: table}
}

// Evaluate returns the first rule in table order that qualifies for total and
// whose title is not yet unlocked.
func (u *BadgeUnlocker) Evaluate(total int, alreadyUnlocked map[string]bool) (model.BadgeRule, bool) {
	for _, rule := range u.rules {
		if alreadyUnlocked[rule.Title] {
			continue
		}
		if rule.Qualifies(total) {
			return rule, true
		}
	}
	return model.BadgeRule{}, false
}

func (u *BadgeUnlocker) Rules() []model.BadgeRule {
	out := make([]model.BadgeRule, len(u.rules))
	copy(out, u.rules)
	return out
}
