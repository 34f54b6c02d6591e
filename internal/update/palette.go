package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/goalquest/internal/commands"
	"github.com/sandeepkv93/goalquest/internal/report"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.Palette.Active = false
		m.Palette.Input = ""
		m.commandInput.SetValue("")
		m.commandInput.Blur()
		m.Status = StatusBar{Text: "command palette closed"}
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		m = m.executePaletteCommand()
	default:
		if msg.Type == tea.KeyRunes {
			m.commandInput.SetValue(m.commandInput.Value() + string(msg.Runes))
			m.Palette.Input = m.commandInput.Value()
			return m
		}
		var cmd tea.Cmd
		m.commandInput, cmd = m.commandInput.Update(msg)
		_ = cmd
		m.Palette.Input = m.commandInput.Value()
	}
	return m
}

func (m Model) executePaletteCommand() Model {
	raw := strings.TrimSpace(m.Palette.Input)
	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.closePalette()
		return m
	}

	res, err := commands.Execute(cmd, commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			if _, err := m.addGoal(a.Title, a.Category, a.Points); err != nil {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: err.Error()}
			}
			m.CurrentView = ViewGoals
			return commands.Result{Message: m.Status.Text}, nil
		},
		Complete: func(a commands.CompleteArgs) (commands.Result, error) {
			g, err := m.resolveGoal(a.Target)
			if err != nil {
				return commands.Result{}, err
			}
			if !m.completeGoal(g.ID) {
				return commands.Result{}, m.LastError
			}
			return commands.Result{Message: m.Status.Text}, nil
		},
		Dismiss: func() (commands.Result, error) {
			if _, ok := m.Session.PendingNotification(); !ok {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "no badge notification pending"}
			}
			m.dismissBadge()
			return commands.Result{Message: m.Status.Text}, nil
		},
		Show: func(s commands.ShowArgs) (commands.Result, error) {
			switch s.Subject {
			case "goals":
				m.CurrentView = ViewGoals
			case "history":
				m.CurrentView = ViewHistory
				m.refreshHistory()
			default:
				m.CurrentView = ViewCharacter
			}
			return commands.Result{Message: fmt.Sprintf("showing %s", strings.ToLower(string(m.CurrentView)))}, nil
		},
		Export: func(e commands.ExportArgs) (commands.Result, error) {
			if !m.exportReport(e.Path) {
				return commands.Result{}, m.LastError
			}
			return commands.Result{Message: m.Status.Text}, nil
		},
	})
	if err != nil {
		m.Status = StatusBar{Text: describeCommandError(err), IsError: true}
		m.notify("Command Failed", m.Status.Text, "error")
	} else {
		m.Status = StatusBar{Text: res.Message}
		m.notify("Command", res.Message, "info")
	}

	m.closePalette()
	return m
}

func (m *Model) closePalette() {
	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.commandInput.Blur()
}

// exportReport writes the PDF summary to path, or the configured default.
func (m *Model) exportReport(path string) bool {
	if strings.TrimSpace(path) == "" {
		path = m.reportPath
	}
	written, err := report.Export(path, m.Session.Snapshot(), m.now())
	if err != nil {
		m.log.Error("report export failed", "path", path, "err", err)
		m.LastError = err
		m.Status = StatusBar{Text: "export failed: " + err.Error(), IsError: true}
		return false
	}
	m.log.Info("report exported", "path", written)
	m.LastReport = written
	m.Status = StatusBar{Text: "report written to " + written}
	return true
}

func describeCommandError(err error) string {
	if msg := describeCompleteError(err); msg != err.Error() {
		return msg
	}
	return err.Error()
}
