package update

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/goalquest/internal/commands"
	"github.com/sandeepkv93/goalquest/internal/model"
	"github.com/sandeepkv93/goalquest/internal/tracker"
)

func (m Model) handleGoalsKey(msg tea.KeyMsg) Model {
	goals := m.Session.Goals()
	switch msg.String() {
	case "j", "down":
		if m.Goals.Cursor < len(goals)-1 {
			m.Goals.Cursor++
		}
	case "k", "up":
		if m.Goals.Cursor > 0 {
			m.Goals.Cursor--
		}
	case "g", "home":
		m.Goals.Cursor = 0
	case "G", "end":
		if len(goals) > 0 {
			m.Goals.Cursor = len(goals) - 1
		}
	case "enter", "c":
		g, ok := m.selectedGoal()
		if !ok {
			m.Status = StatusBar{Text: "no goal selected", IsError: true}
			return m
		}
		m.completeGoal(g.ID)
	}
	return m
}

func (m Model) selectedGoal() (model.Goal, bool) {
	goals := m.Session.Goals()
	if len(goals) == 0 {
		return model.Goal{}, false
	}
	cursor := m.Goals.Cursor
	if cursor < 0 || cursor >= len(goals) {
		cursor = 0
	}
	return goals[cursor], true
}

func (m *Model) clampGoalsCursor() {
	n := m.Session.Goals()
	if m.Goals.Cursor >= len(n) {
		m.Goals.Cursor = len(n) - 1
	}
	if m.Goals.Cursor < 0 {
		m.Goals.Cursor = 0
	}
}

// addGoal only checks that a title is present; points are clamped into range.
func (m *Model) addGoal(title, category string, points int) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", errors.New("title is required")
	}
	id := m.Session.AddGoal(title, strings.TrimSpace(category), model.ClampPoints(points))
	m.Goals.Cursor = len(m.Session.Goals()) - 1
	m.Status = StatusBar{Text: fmt.Sprintf("added goal: %s (%d pts)", title, model.ClampPoints(points))}
	return id, nil
}

func (m *Model) completeGoal(id string) bool {
	awarded, badges, err := m.Session.CompleteGoal(id)
	if err != nil {
		m.LastError = err
		m.Status = StatusBar{Text: describeCompleteError(err), IsError: true}
		m.notify("Error", m.Status.Text, "error")
		return false
	}
	g, _ := m.Session.Goal(id)
	m.Status = StatusBar{Text: fmt.Sprintf("completed %s: +%d points (total %d)", g.Title, awarded, m.Session.Points())}
	for _, b := range badges {
		m.notify("Badge Unlocked!", "You unlocked: "+b.Title, levelBadge)
	}
	return true
}

func (m *Model) dismissBadge() {
	pending, ok := m.Session.PendingNotification()
	if !m.Session.DismissBadgeNotification() {
		return
	}
	if ok {
		m.Status = StatusBar{Text: fmt.Sprintf("badge acknowledged: %s", pending.Title)}
	}
}

// resolveGoal accepts a 1-based list position, a goal id or a unique id prefix.
func (m Model) resolveGoal(target string) (model.Goal, error) {
	target = strings.TrimSpace(target)
	goals := m.Session.Goals()
	if n, err := strconv.Atoi(target); err == nil {
		if n < 1 || n > len(goals) {
			return model.Goal{}, &tracker.GoalError{Op: "resolve", ID: target, Err: tracker.ErrUnknownGoal}
		}
		return goals[n-1], nil
	}
	if g, ok := m.Session.Goal(target); ok {
		return g, nil
	}
	var match []model.Goal
	for _, g := range goals {
		if target != "" && strings.HasPrefix(g.ID, target) {
			match = append(match, g)
		}
	}
	if len(match) == 1 {
		return match[0], nil
	}
	if len(match) > 1 {
		return model.Goal{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("goal id prefix %q is ambiguous", target)}
	}
	return model.Goal{}, &tracker.GoalError{Op: "resolve", ID: target, Err: tracker.ErrUnknownGoal}
}

func describeCompleteError(err error) string {
	switch {
	case errors.Is(err, tracker.ErrGoalAlreadyCompleted):
		return "goal already completed"
	case errors.Is(err, tracker.ErrUnknownGoal):
		return "unknown goal"
	default:
		return err.Error()
	}
}
