package update

import (
	"math"
	"strings"
	"time"

	"github.com/sandeepkv93/goalquest/internal/model"
	"github.com/sandeepkv93/goalquest/internal/views"
)

func (m Model) renderCharacterView() string {
	total := m.Session.Points()
	pct := model.Progress(total)
	badges := m.Session.UnlockedBadges()
	data := views.CharacterPanelData{
		Points:       total,
		Rank:         model.RankForPoints(total),
		ProgressView: m.pointsProgress.ViewAs(pct),
		ProgressPct:  int(math.Round(pct * 100)),
		Target:       model.ProgressTarget,
		Badges:       make([]views.BadgeData, 0, len(badges)),
	}
	for _, b := range badges {
		data.Badges = append(data.Badges, badgeData(b))
	}
	return views.RenderCharacterPanel(data)
}

func (m Model) renderBadgeCard() string {
	badges := m.Session.UnlockedBadges()
	if len(badges) == 0 {
		return views.RenderBadgeCard(nil)
	}
	latest := badgeData(badges[len(badges)-1])
	return views.RenderBadgeCard(&latest)
}

func (m Model) renderGoalsView() string {
	goals := m.Session.Goals()
	data := views.GoalsPanelData{
		Goals:  make([]views.GoalRowData, 0, len(goals)),
		Cursor: m.Goals.Cursor,
	}
	for _, g := range goals {
		if g.IsCompleted {
			data.Completed++
		}
		data.Goals = append(data.Goals, goalRow(g))
	}
	return views.RenderGoalsPanel(data)
}

func (m Model) renderGoalDetail() string {
	g, ok := m.selectedGoal()
	if !ok {
		return views.RenderGoalDetail(nil)
	}
	row := goalRow(g)
	return views.RenderGoalDetail(&row)
}

func (m Model) renderAddGoalForm() string {
	return views.RenderAddGoalForm(views.AddGoalFormData{
		TitleView:    m.titleInput.View(),
		CategoryView: m.categoryInput.View(),
		Points:       m.Form.Points,
		MinPoints:    model.MinGoalPoints,
		MaxPoints:    model.MaxGoalPoints,
		FocusedField: m.Form.Field.String(),
		ErrorText:    m.Form.Err,
	})
}

func (m Model) renderHistoryView() string {
	data := views.HistoryPanelData{
		Rows:         m.historyRows(),
		ViewportView: m.historyViewport.View(),
		Unavailable:  m.Journal == nil,
	}
	if m.Bus != nil {
		data.Dropped = m.Bus.Dropped()
	}
	return views.RenderHistoryPanel(data)
}

func (m Model) renderBadgeAlertIfPending() string {
	b, ok := m.Session.PendingNotification()
	if !ok {
		return ""
	}
	return views.RenderBadgeAlert(badgeData(b))
}

func (m Model) renderCommandPalette() string {
	return views.RenderCommandPalette(m.Palette.Active, m.Palette.Input)
}

func (m Model) renderNotificationsView() string {
	if len(m.Notifications) == 0 {
		return ""
	}
	n := m.Notifications[len(m.Notifications)-1]
	return views.RenderNotification(n.Level, n.Body)
}

func (m *Model) notify(title, body, level string) {
	if strings.TrimSpace(body) == "" {
		return
	}
	n := Notification{
		Title: title,
		Body:  body,
		Level: level,
		At:    m.now(),
	}
	m.Notifications = append(m.Notifications, n)
	if len(m.Notifications) > 40 {
		m.Notifications = m.Notifications[len(m.Notifications)-40:]
	}
	if level == levelBadge && m.DesktopEnabled && m.notifier != nil {
		if err := m.notifier.Send(n); err != nil {
			m.log.Warn("desktop notification failed", "title", title, "err", err)
		}
	}
}

func badgeData(b model.Badge) views.BadgeData {
	return views.BadgeData{
		Title:       b.Title,
		Description: b.Description,
		ImageName:   b.ImageName,
		UnlockedAt:  b.UnlockedAt.Local().Format(time.Kitchen),
	}
}

func goalRow(g model.Goal) views.GoalRowData {
	return views.GoalRowData{
		ID:        g.ID,
		Title:     g.Title,
		Category:  g.Category,
		Points:    g.Points,
		Completed: g.IsCompleted,
	}
}
