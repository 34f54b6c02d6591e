package update

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/goalquest/internal/tracker"
	"github.com/sandeepkv93/goalquest/internal/views"
)

const historyLimit = 100

func waitForSessionEventCmd(ch <-chan tracker.Event) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return SessionEventMsg{Event: ev}
	}
}

func (m Model) sessionEvents() <-chan tracker.Event {
	if m.Bus == nil {
		return nil
	}
	return m.Bus.C()
}

func (m *Model) recordSessionEvent(ev tracker.Event) {
	if m.Journal == nil {
		return
	}
	if err := m.Journal.Record(context.Background(), ev); err != nil {
		m.log.Error("journal write failed", "kind", ev.Kind, "goal_id", ev.GoalID, "err", err)
		m.LastError = err
		m.Status = StatusBar{Text: "journal: " + err.Error(), IsError: true}
		return
	}
	m.refreshHistory()
}

func (m *Model) refreshHistory() {
	if m.Journal == nil {
		return
	}
	rows, err := m.Journal.Recent(context.Background(), historyLimit)
	if err != nil {
		m.log.Warn("history refresh failed", "err", err)
		return
	}
	m.History = rows
	m.historyViewport.SetContent(views.RenderHistoryLines(m.historyRows()))
}

func (m Model) historyRows() []views.HistoryRowData {
	out := make([]views.HistoryRowData, 0, len(m.History))
	for _, ev := range m.History {
		out = append(out, views.HistoryRowData{
			At:     ev.OccurredAt.Local().Format("15:04:05"),
			Kind:   ev.Kind,
			Title:  ev.Title,
			Points: ev.Points,
			Total:  ev.Total,
		})
	}
	return out
}

func (m Model) handleHistoryKey(msg tea.KeyMsg) Model {
	next, _ := m.historyViewport.Update(msg)
	m.historyViewport = next
	return m
}
