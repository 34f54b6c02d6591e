package update

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/goalquest/internal/model"
)

func (m *Model) openAddGoalForm() {
	m.Form = AddGoalForm{Active: true, Field: FieldTitle, Points: m.defaultPoints}
	m.titleInput.SetValue("")
	m.categoryInput.SetValue("")
	m.titleInput.Focus()
	m.categoryInput.Blur()
	m.CurrentView = ViewGoals
	m.Status = StatusBar{Text: "adding goal"}
}

func (m *Model) closeAddGoalForm() {
	m.Form.Active = false
	m.Form.Err = ""
	m.titleInput.Blur()
	m.categoryInput.Blur()
}

func (m Model) handleFormKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.closeAddGoalForm()
		m.Status = StatusBar{Text: "add goal cancelled"}
		return m
	case "enter":
		return m.saveAddGoalForm()
	case "tab", "shift+tab":
		step := 1
		if msg.String() == "shift+tab" {
			step = 2
		}
		m.focusFormField(FormField((int(m.Form.Field) + step) % 3))
		return m
	}

	if m.Form.Field == FieldPoints {
		switch msg.String() {
		case "+", "=", "right", "up", "l", "k":
			m.Form.Points = model.ClampPoints(m.Form.Points + 1)
		case "-", "_", "left", "down", "h", "j":
			m.Form.Points = model.ClampPoints(m.Form.Points - 1)
		}
		return m
	}

	input := &m.titleInput
	if m.Form.Field == FieldCategory {
		input = &m.categoryInput
	}
	if msg.Type == tea.KeyRunes {
		input.SetValue(input.Value() + string(msg.Runes))
		m.Form.Err = ""
		return m
	}
	next, _ := input.Update(msg)
	*input = next
	return m
}

func (m *Model) focusFormField(f FormField) {
	m.Form.Field = f
	m.titleInput.Blur()
	m.categoryInput.Blur()
	switch f {
	case FieldTitle:
		m.titleInput.Focus()
	case FieldCategory:
		m.categoryInput.Focus()
	}
}

func (m Model) saveAddGoalForm() Model {
	if _, err := m.addGoal(m.titleInput.Value(), m.categoryInput.Value(), m.Form.Points); err != nil {
		m.Form.Err = err.Error()
		m.focusFormField(FieldTitle)
		return m
	}
	m.closeAddGoalForm()
	return m
}
