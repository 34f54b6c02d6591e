package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/sandeepkv93/goalquest/internal/views"
)

type KeyBinding struct {
	Key    string
	Action string
}

type helpKeyMap struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding  { return k.short }
func (k helpKeyMap) FullHelp() [][]key.Binding { return k.full }

func (m Model) renderHelpIfVisible() string {
	if !m.HelpVisible {
		return ""
	}
	return m.renderHelpView()
}

func (m Model) renderHelpView() string {
	bindings := m.helpBindings()
	var plain []string
	for _, kb := range m.viewBindings() {
		plain = append(plain, fmt.Sprintf("- %s: %s", kb.Key, kb.Action))
	}
	return views.RenderHelpPanel(views.HelpPanelData{
		CurrentView: string(m.CurrentView),
		Bindings:    plain,
		HelpView: m.helpModel.View(helpKeyMap{
			short: bindings,
			full:  [][]key.Binding{bindings},
		}),
	})
}

func (m Model) globalBindings() []KeyBinding {
	return []KeyBinding{
		{Key: m.Keys.Character, Action: "character"},
		{Key: m.Keys.Goals, Action: "goals"},
		{Key: m.Keys.History, Action: "history"},
		{Key: m.Keys.Add, Action: "add goal"},
		{Key: m.Keys.Export, Action: "export pdf"},
		{Key: "/", Action: "command palette"},
		{Key: m.Keys.Help, Action: "help"},
		{Key: m.Keys.Quit, Action: "quit"},
	}
}

func (m Model) viewBindings() []KeyBinding {
	if m.Form.Active {
		return []KeyBinding{
			{Key: "tab", Action: "next field"},
			{Key: "+/-", Action: "adjust points"},
			{Key: "enter", Action: "save goal"},
			{Key: "esc", Action: "cancel"},
		}
	}
	switch m.CurrentView {
	case ViewCharacter:
		return []KeyBinding{
			{Key: "a", Action: "add a goal to start earning points"},
		}
	case ViewGoals:
		return []KeyBinding{
			{Key: "j/k", Action: "move selection"},
			{Key: "enter/c", Action: "complete selected goal"},
		}
	case ViewHistory:
		return []KeyBinding{
			{Key: "j/k", Action: "scroll journal"},
		}
	default:
		return []KeyBinding{{Key: "-", Action: "no contextual bindings"}}
	}
}

func (m Model) helpBindings() []key.Binding {
	out := make([]key.Binding, 0, len(m.globalBindings())+len(m.viewBindings()))
	for _, kb := range m.globalBindings() {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	for _, kb := range m.viewBindings() {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	return out
}
