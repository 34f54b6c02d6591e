package views

import (
	"fmt"
	"strings"
)

// titleWidth leaves room in a pane for the cursor, points and status columns.
const titleWidth = 30

type BadgeData struct {
	Title       string
	Description string
	ImageName   string
	UnlockedAt  string
}

type CharacterPanelData struct {
	Points       int
	Rank         string
	ProgressView string
	ProgressPct  int
	Target       int
	Badges       []BadgeData
}

type GoalRowData struct {
	ID        string
	Title     string
	Category  string
	Points    int
	Completed bool
}

type GoalsPanelData struct {
	Goals     []GoalRowData
	Cursor    int
	Completed int
}

type AddGoalFormData struct {
	TitleView    string
	CategoryView string
	Points       int
	MinPoints    int
	MaxPoints    int
	FocusedField string
	ErrorText    string
}

type HistoryRowData struct {
	At     string
	Kind   string
	Title  string
	Points int
	Total  int
}

type HistoryPanelData struct {
	Rows         []HistoryRowData
	ViewportView string
	Dropped      uint64
	Unavailable  bool
}

type HelpPanelData struct {
	CurrentView string
	Bindings    []string
	HelpView    string
}

func RenderCharacterPanel(data CharacterPanelData) string {
	var b strings.Builder
	b.WriteString("Your Character\n\n")
	b.WriteString(avatarFor(data.Rank) + "\n\n")
	b.WriteString(fmt.Sprintf("Points: %d\n", data.Points))
	b.WriteString(fmt.Sprintf("Rank: %s\n", data.Rank))
	b.WriteString(fmt.Sprintf("progress: %s %d%% of %d\n", data.ProgressView, data.ProgressPct, data.Target))
	b.WriteString("\nbadges:\n")
	if len(data.Badges) == 0 {
		b.WriteString(mutedStyle.Render("  (none yet)"))
		return b.String()
	}
	for _, badge := range data.Badges {
		b.WriteString(fmt.Sprintf("  %s %s", glyphFor(badge.ImageName), Truncate(badge.Title, titleWidth)))
		if badge.UnlockedAt != "" {
			b.WriteString(mutedStyle.Render(" @" + badge.UnlockedAt))
		}
		b.WriteString("\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func RenderGoalsPanel(data GoalsPanelData) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("goals: %d of %d completed\n", data.Completed, len(data.Goals)))
	b.WriteString("actions: [a]add [j/k]move [enter/c]complete\n\n")
	if len(data.Goals) == 0 {
		b.WriteString(mutedStyle.Render("(no goals yet, press a to add one)"))
		return b.String()
	}
	for i, g := range data.Goals {
		cursor := " "
		if i == data.Cursor {
			cursor = ">"
		}
		state := "[Complete]"
		if g.Completed {
			state = doneStyle.Render("Completed")
		}
		b.WriteString(fmt.Sprintf("%s %d. %s (%d pts) %s\n", cursor, i+1, Truncate(g.Title, titleWidth), g.Points, state))
		if g.Category != "" {
			b.WriteString(mutedStyle.Render("     "+Truncate(g.Category, titleWidth)) + "\n")
		}
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func RenderGoalDetail(g *GoalRowData) string {
	if g == nil {
		return "goal:\n(no selection)"
	}
	category := g.Category
	if category == "" {
		category = "-"
	}
	state := "open"
	if g.Completed {
		state = "completed"
	}
	return fmt.Sprintf("goal:\nid: %s\ntitle: %s\ncategory: %s\npoints: %d\nstate: %s",
		g.ID,
		Truncate(g.Title, PaneWidth-8),
		Truncate(category, PaneWidth-11),
		g.Points,
		state,
	)
}

func RenderAddGoalForm(data AddGoalFormData) string {
	mark := func(field string) string {
		if data.FocusedField == field {
			return ">"
		}
		return " "
	}
	var b strings.Builder
	b.WriteString("Add Goal\n")
	b.WriteString("keys: [tab] field [+/-] points [enter] Save [esc] Cancel\n\n")
	b.WriteString(fmt.Sprintf("%s Title:    %s\n", mark("title"), data.TitleView))
	b.WriteString(fmt.Sprintf("%s Category: %s\n", mark("category"), data.CategoryView))
	b.WriteString(fmt.Sprintf("%s Points: %d  (%d-%d)\n", mark("points"), data.Points, data.MinPoints, data.MaxPoints))
	if data.ErrorText != "" {
		b.WriteString("\n" + errorStyle.Render("error: "+data.ErrorText))
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func RenderBadgeAlert(b BadgeData) string {
	body := fmt.Sprintf("%s Badge Unlocked!\n\nYou unlocked: %s\n\n[enter] Awesome!", glyphFor(b.ImageName), b.Title)
	return alertStyle.Render(body)
}

// RenderBadgeCard shows the most recent badge as rendered markdown.
func RenderBadgeCard(b *BadgeData) string {
	if b == nil {
		return "latest badge:\n" + mutedStyle.Render("(complete goals to earn badges)")
	}
	md := fmt.Sprintf("### %s\n\n%s\n", b.Title, b.Description)
	return "latest badge:\n" + RenderMarkdown(md)
}

func RenderHistoryPanel(data HistoryPanelData) string {
	var b strings.Builder
	b.WriteString("history (newest first):\n")
	if data.Unavailable {
		b.WriteString(mutedStyle.Render("(journal disabled)"))
		return b.String()
	}
	if data.Dropped > 0 {
		b.WriteString(errorStyle.Render(fmt.Sprintf("%d event(s) dropped before journaling", data.Dropped)) + "\n")
	}
	if len(data.Rows) == 0 {
		b.WriteString(mutedStyle.Render("(nothing yet)"))
		return b.String()
	}
	if data.ViewportView != "" {
		b.WriteString(data.ViewportView)
		return b.String()
	}
	b.WriteString(RenderHistoryLines(data.Rows))
	return b.String()
}

// RenderHistoryLines is the raw content scrolled by the history viewport.
func RenderHistoryLines(rows []HistoryRowData) string {
	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		line := fmt.Sprintf("[%s] %-22s", r.At, r.Kind)
		if r.Title != "" {
			line += " " + Truncate(r.Title, 20)
		}
		if r.Points > 0 {
			line += fmt.Sprintf(" +%d", r.Points)
		}
		line += fmt.Sprintf(" (total %d)", r.Total)
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: /%s", input)
}

func RenderNotification(level string, body string) string {
	if strings.TrimSpace(body) == "" {
		return ""
	}
	return fmt.Sprintf("notification: [%s] %s", strings.ToUpper(level), body)
}

func RenderHelpPanel(data HelpPanelData) string {
	return fmt.Sprintf("help:\n%s view:\n%s\n%s",
		strings.ToLower(data.CurrentView),
		strings.Join(data.Bindings, "\n"),
		data.HelpView,
	)
}

func avatarFor(rank string) string {
	if rank == "Super Achiever" {
		return "  \\(^o^)/"
	}
	return "   (•_•)"
}

func glyphFor(imageName string) string {
	switch imageName {
	case "star":
		return "★"
	case "trophy":
		return "🏆"
	case "flame":
		return "🔥"
	default:
		return "◆"
	}
}
