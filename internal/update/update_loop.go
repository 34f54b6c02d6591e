package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/goalquest/internal/model"
	"github.com/sandeepkv93/goalquest/internal/views"
)

func (m Model) Init() tea.Cmd {
	return waitForSessionEventCmd(m.sessionEvents())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		keyStr := typed.String()
		if keyStr == "ctrl+c" {
			m.Quitting = true
			return m, tea.Quit
		}

		// The badge alert is modal until acknowledged.
		if _, pending := m.Session.PendingNotification(); pending {
			if keyStr == "enter" || keyStr == "esc" || keyStr == " " {
				return m, func() tea.Msg { return DismissBadgeNotificationMsg{} }
			}
			return m, nil
		}

		if m.Form.Active {
			return m.handleFormKey(typed), nil
		}

		if m.Palette.Active {
			if keyStr == m.Keys.Help {
				m.HelpVisible = !m.HelpVisible
				return m, nil
			}
			return m.handlePaletteKey(typed), nil
		}

		switch keyStr {
		case "/":
			m.Palette.Active = true
			m.Palette.Input = ""
			m.commandInput.Focus()
			m.commandInput.SetValue("")
			m.Status = StatusBar{Text: "command palette active"}
			return m, nil
		case m.Keys.Character:
			m.CurrentView = ViewCharacter
			return m, nil
		case m.Keys.Goals:
			m.CurrentView = ViewGoals
			m.clampGoalsCursor()
			return m, nil
		case m.Keys.History:
			m.CurrentView = ViewHistory
			m.refreshHistory()
			return m, nil
		case m.Keys.Add, "+":
			m.openAddGoalForm()
			return m, nil
		case m.Keys.Export:
			m.exportReport("")
			return m, nil
		case m.Keys.Help:
			m.HelpVisible = !m.HelpVisible
			if m.HelpVisible {
				m.Status = StatusBar{Text: "help shown"}
			} else {
				m.Status = StatusBar{Text: "help hidden"}
			}
			return m, nil
		case m.Keys.Quit:
			m.Quitting = true
			return m, tea.Quit
		}
		switch m.CurrentView {
		case ViewGoals:
			return m.handleGoalsKey(typed), nil
		case ViewHistory:
			return m.handleHistoryKey(typed), nil
		}
	case SwitchViewMsg:
		if isKnownView(typed.View) {
			m.CurrentView = typed.View
			if typed.View == ViewHistory {
				m.refreshHistory()
			}
		}
		return m, nil
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		m.notify("Status", typed.Text, levelFromError(typed.IsError))
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
			m.notify("Error", typed.Err.Error(), "error")
		}
		return m, nil
	case AddGoalMsg:
		if _, err := m.addGoal(typed.Title, typed.Category, typed.Points); err != nil {
			m.Status = StatusBar{Text: err.Error(), IsError: true}
		}
		return m, nil
	case CompleteGoalMsg:
		m.completeGoal(typed.ID)
		return m, nil
	case DismissBadgeNotificationMsg:
		m.dismissBadge()
		return m, nil
	case SessionEventMsg:
		m.recordSessionEvent(typed.Event)
		return m, waitForSessionEventCmd(m.sessionEvents())
	}

	return m, nil
}

func (m Model) View() string {
	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}

	leftPane := ""
	rightPane := ""
	switch m.CurrentView {
	case ViewCharacter:
		leftPane = m.renderCharacterView()
		rightPane = m.renderBadgeCard()
	case ViewGoals:
		leftPane = m.renderGoalsView()
		if m.Form.Active {
			rightPane = m.renderAddGoalForm()
		} else {
			rightPane = m.renderGoalDetail()
		}
	case ViewHistory:
		leftPane = m.renderHistoryView()
		rightPane = m.renderCharacterView()
	}
	if palette := m.renderCommandPalette(); palette != "" {
		rightPane = strings.TrimSpace(rightPane + "\n\n" + palette)
	}
	if help := m.renderHelpIfVisible(); help != "" {
		rightPane = strings.TrimSpace(rightPane + "\n\n" + help)
	}
	if alert := m.renderBadgeAlertIfPending(); alert != "" {
		rightPane = alert
	}

	return views.RenderApp(views.AppData{
		Header:       fmt.Sprintf("goalquest | view: %s | points: %d | rank: %s", m.CurrentView, m.Session.Points(), model.RankForPoints(m.Session.Points())),
		LeftPane:     leftPane,
		RightPane:    rightPane,
		StatusLine:   status,
		StatusError:  m.Status.IsError,
		Notification: strings.TrimSpace(m.renderNotificationsView()),
		Footer: fmt.Sprintf("keys: %s character | %s goals | %s history | %s add | %s export | / cmd | %s help | %s quit",
			m.Keys.Character, m.Keys.Goals, m.Keys.History, m.Keys.Add, m.Keys.Export, m.Keys.Help, m.Keys.Quit),
	})
}

func isKnownView(v View) bool {
	switch v {
	case ViewCharacter, ViewGoals, ViewHistory:
		return true
	default:
		return false
	}
}
