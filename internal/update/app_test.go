package update

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/golang/mock/gomock"
	"github.com/sandeepkv93/goalquest/internal/events"
	"github.com/sandeepkv93/goalquest/internal/storage"
	"github.com/sandeepkv93/goalquest/internal/tracker"
)

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		updated, _ := m.Update(msg)
		m = updated.(Model)
	}
	return m
}

func TestNewModelDefaults(t *testing.T) {
	m := NewModel()
	if m.CurrentView != ViewCharacter {
		t.Fatalf("expected default view %q, got %q", ViewCharacter, m.CurrentView)
	}
	if m.Keys.Quit != "q" || m.Keys.Add != "a" {
		t.Fatalf("unexpected keys: %+v", m.Keys)
	}
	if m.Session == nil || m.Session.Points() != 0 || len(m.Session.Goals()) != 0 {
		t.Fatal("expected a fresh session")
	}
	if m.Form.Points != 10 {
		t.Fatalf("expected default form points 10, got %d", m.Form.Points)
	}
}

func TestUpdateKeySwitchesView(t *testing.T) {
	m := NewModel()
	next := send(t, m, keyRunes("2"))
	if next.CurrentView != ViewGoals {
		t.Fatalf("expected goals view, got %q", next.CurrentView)
	}
	next = send(t, next, keyRunes("3"))
	if next.CurrentView != ViewHistory {
		t.Fatalf("expected history view, got %q", next.CurrentView)
	}
	next = send(t, next, keyRunes("1"))
	if next.CurrentView != ViewCharacter {
		t.Fatalf("expected character view, got %q", next.CurrentView)
	}
}

func TestUpdateSwitchViewMsg(t *testing.T) {
	next := send(t, NewModel(), SwitchViewMsg{View: ViewGoals})
	if next.CurrentView != ViewGoals {
		t.Fatalf("expected goals view, got %q", next.CurrentView)
	}
	next = send(t, next, SwitchViewMsg{View: View("Unknown")})
	if next.CurrentView != ViewGoals {
		t.Fatalf("expected view unchanged for unknown view, got %q", next.CurrentView)
	}
}

func TestUpdateStatusAndError(t *testing.T) {
	next := send(t, NewModel(), SetStatusMsg{Text: "ready"})
	if next.Status.Text != "ready" || next.Status.IsError {
		t.Fatalf("unexpected status: %+v", next.Status)
	}

	next = send(t, next, AppErrorMsg{Err: errors.New("boom")})
	if next.LastError == nil || next.LastError.Error() != "boom" {
		t.Fatalf("expected last error boom, got: %v", next.LastError)
	}
	if !next.Status.IsError || next.Status.Text != "boom" {
		t.Fatalf("unexpected error status: %+v", next.Status)
	}

	next = send(t, next, ClearStatusMsg{})
	if next.Status.Text != "" || next.Status.IsError {
		t.Fatalf("expected cleared status, got: %+v", next.Status)
	}
}

func TestUpdateQuitKey(t *testing.T) {
	updated, cmd := NewModel().Update(keyRunes("q"))
	next := updated.(Model)
	if !next.Quitting {
		t.Fatal("expected quitting flag true")
	}
	if cmd == nil {
		t.Fatal("expected quit command")
	}
}

func TestViewContainsCoreState(t *testing.T) {
	m := NewModel()
	m.Status = StatusBar{Text: "all good"}
	out := m.View()
	for _, want := range []string{"view: Character", "Your Character", "Points: 0", "Rank: Beginner", "status: all good"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output: %q", want, out)
		}
	}
}

func TestAddGoalFormWithKeyboard(t *testing.T) {
	m := send(t, NewModel(), keyRunes("a"))
	if !m.Form.Active || m.CurrentView != ViewGoals {
		t.Fatalf("expected open form on goals view, got active=%v view=%q", m.Form.Active, m.CurrentView)
	}

	m = send(t, m,
		keyRunes("Run 5k"),
		tea.KeyMsg{Type: tea.KeyTab},
		keyRunes("fitness"),
		tea.KeyMsg{Type: tea.KeyTab},
	)
	if m.Form.Field != FieldPoints {
		t.Fatalf("expected points field focused, got %s", m.Form.Field)
	}
	for i := 0; i < 5; i++ {
		m = send(t, m, keyRunes("+"))
	}
	m = send(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.Form.Active {
		t.Fatal("expected form closed after save")
	}
	goals := m.Session.Goals()
	if len(goals) != 1 {
		t.Fatalf("expected 1 goal, got %d", len(goals))
	}
	g := goals[0]
	if g.Title != "Run 5k" || g.Category != "fitness" || g.Points != 14 || g.IsCompleted {
		t.Fatalf("unexpected goal: %+v", g)
	}
}

func TestAddGoalFormRequiresTitle(t *testing.T) {
	m := send(t, NewModel(), keyRunes("a"), keyRunes("   "), tea.KeyMsg{Type: tea.KeyEnter})
	if !m.Form.Active {
		t.Fatal("form must stay open without a title")
	}
	if m.Form.Err != "title is required" {
		t.Fatalf("unexpected form error: %q", m.Form.Err)
	}
	if len(m.Session.Goals()) != 0 {
		t.Fatal("no goal should be added")
	}
	if !strings.Contains(m.View(), "title is required") {
		t.Fatal("expected error in rendered form")
	}
}

func TestAddGoalFormCancelAndClamp(t *testing.T) {
	m := send(t, NewModel(), keyRunes("a"), tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.Form.Field != FieldPoints {
		t.Fatalf("shift+tab from title should wrap to points, got %s", m.Form.Field)
	}
	for i := 0; i < 20; i++ {
		m = send(t, m, keyRunes("-"))
	}
	if m.Form.Points != 1 {
		t.Fatalf("expected points clamped to 1, got %d", m.Form.Points)
	}
	for i := 0; i < 150; i++ {
		m = send(t, m, tea.KeyMsg{Type: tea.KeyRight})
	}
	if m.Form.Points != 100 {
		t.Fatalf("expected points clamped to 100, got %d", m.Form.Points)
	}

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.Form.Active || len(m.Session.Goals()) != 0 {
		t.Fatalf("expected cancelled form and no goals, active=%v", m.Form.Active)
	}

	m = send(t, m, keyRunes("a"))
	if m.Form.Points != 10 {
		t.Fatalf("reopened form should reset points, got %d", m.Form.Points)
	}
}

func TestFormSwallowsGlobalKeys(t *testing.T) {
	m := send(t, NewModel(), keyRunes("a"), keyRunes("q"), keyRunes("1"))
	if m.Quitting || m.CurrentView != ViewGoals {
		t.Fatalf("form keys leaked to global handler: quitting=%v view=%q", m.Quitting, m.CurrentView)
	}
	if m.titleInput.Value() != "q1" {
		t.Fatalf("expected typed title q1, got %q", m.titleInput.Value())
	}
}

func TestCompleteGoalFlowUnlocksBadgeOnce(t *testing.T) {
	m := send(t, NewModel(),
		AddGoalMsg{Title: "Run 5k", Points: 60},
		AddGoalMsg{Title: "Read book", Points: 50},
		keyRunes("2"),
		keyRunes("k"),
		tea.KeyMsg{Type: tea.KeyEnter},
	)
	if m.Session.Points() != 60 {
		t.Fatalf("expected 60 points, got %d", m.Session.Points())
	}
	if _, ok := m.Session.PendingNotification(); ok {
		t.Fatal("no badge expected at 60 points")
	}

	m = send(t, m, keyRunes("j"), keyRunes("c"))
	if m.Session.Points() != 110 {
		t.Fatalf("expected 110 points, got %d", m.Session.Points())
	}
	out := m.View()
	if !strings.Contains(out, "Badge Unlocked!") || !strings.Contains(out, "You unlocked: First 100 Points") {
		t.Fatalf("expected badge alert in view: %q", out)
	}

	// Alert is modal.
	updated, cmd := m.Update(keyRunes("q"))
	m = updated.(Model)
	if m.Quitting || cmd != nil {
		t.Fatal("keys other than enter/esc must be ignored while the alert is shown")
	}

	updated, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)
	if cmd == nil {
		t.Fatal("expected dismiss command")
	}
	msg := cmd()
	if _, ok := msg.(DismissBadgeNotificationMsg); !ok {
		t.Fatalf("expected DismissBadgeNotificationMsg, got %T", msg)
	}
	m = send(t, m, msg)
	if _, ok := m.Session.PendingNotification(); ok {
		t.Fatal("notification should be consumed")
	}
	if strings.Contains(m.View(), "Badge Unlocked!") {
		t.Fatal("alert must not reappear after dismissal")
	}

	m = send(t, m, AddGoalMsg{Title: "Stretch", Points: 5})
	m = send(t, m, CompleteGoalMsg{ID: m.Session.Goals()[2].ID})
	if _, ok := m.Session.PendingNotification(); ok {
		t.Fatal("badge must not fire again")
	}
}

func TestCompleteGoalErrorsSurfaceInStatus(t *testing.T) {
	m := send(t, NewModel(), AddGoalMsg{Title: "Run 5k", Points: 60})
	id := m.Session.Goals()[0].ID

	m = send(t, m, CompleteGoalMsg{ID: id}, CompleteGoalMsg{ID: id})
	if !m.Status.IsError || m.Status.Text != "goal already completed" {
		t.Fatalf("unexpected status: %+v", m.Status)
	}
	if m.Session.Points() != 60 {
		t.Fatalf("points must not double count, got %d", m.Session.Points())
	}
	if !errors.Is(m.LastError, tracker.ErrGoalAlreadyCompleted) {
		t.Fatalf("unexpected last error: %v", m.LastError)
	}

	m = send(t, m, CompleteGoalMsg{ID: "missing"})
	if !m.Status.IsError || m.Status.Text != "unknown goal" {
		t.Fatalf("unexpected status for unknown goal: %+v", m.Status)
	}
}

func TestAddGoalMsgRequiresTitle(t *testing.T) {
	m := send(t, NewModel(), AddGoalMsg{Title: "  ", Points: 10})
	if len(m.Session.Goals()) != 0 || !m.Status.IsError {
		t.Fatalf("expected rejected add, status=%+v", m.Status)
	}
}

func TestDesktopNotifierFiresOnBadgeUnlock(t *testing.T) {
	ctrl := gomock.NewController(t)
	notifier := NewMockDesktopNotifier(ctrl)
	notifier.EXPECT().Send(gomock.Any()).DoAndReturn(func(n Notification) error {
		if n.Title != "Badge Unlocked!" || n.Body != "You unlocked: First 100 Points" {
			t.Errorf("unexpected notification: %+v", n)
		}
		return errors.New("no notification daemon")
	}).Times(1)

	cfg := DefaultRuntimeConfig()
	cfg.DesktopNotifications = true
	m := NewModelWithRuntime(Runtime{Notifier: notifier}, cfg)
	m = send(t, m, AddGoalMsg{Title: "Marathon", Points: 100})
	m = send(t, m, CompleteGoalMsg{ID: m.Session.Goals()[0].ID})
	m = send(t, m, CompleteGoalMsg{ID: "missing"})

	if len(m.Notifications) == 0 {
		t.Fatal("expected in-app notifications")
	}
}

func TestDesktopNotifierDisabled(t *testing.T) {
	ctrl := gomock.NewController(t)
	notifier := NewMockDesktopNotifier(ctrl)

	m := NewModelWithRuntime(Runtime{Notifier: notifier}, DefaultRuntimeConfig())
	m = send(t, m, AddGoalMsg{Title: "Marathon", Points: 100})
	m = send(t, m, CompleteGoalMsg{ID: m.Session.Goals()[0].ID})
	if _, ok := m.Session.PendingNotification(); !ok {
		t.Fatal("expected pending badge")
	}
}

func TestPaletteCommands(t *testing.T) {
	m := send(t, NewModel(), keyRunes("/"))
	if !m.Palette.Active {
		t.Fatal("expected palette active")
	}
	m = send(t, m, keyRunes("add Stretch cat:health pts:20"), tea.KeyMsg{Type: tea.KeyEnter})
	if m.Palette.Active {
		t.Fatal("palette should close after executing")
	}
	goals := m.Session.Goals()
	if len(goals) != 1 || goals[0].Category != "health" || goals[0].Points != 20 {
		t.Fatalf("unexpected goals after add: %+v", goals)
	}
	if m.CurrentView != ViewGoals {
		t.Fatalf("expected goals view after add, got %q", m.CurrentView)
	}

	m = send(t, m, keyRunes("/"), keyRunes("done 1"), tea.KeyMsg{Type: tea.KeyEnter})
	if m.Session.Points() != 20 || m.Status.IsError {
		t.Fatalf("expected 20 points, got %d status=%+v", m.Session.Points(), m.Status)
	}

	m = send(t, m, keyRunes("/"), keyRunes("complete 9"), tea.KeyMsg{Type: tea.KeyEnter})
	if !m.Status.IsError || m.Status.Text != "unknown goal" {
		t.Fatalf("expected unknown goal error, got %+v", m.Status)
	}

	m = send(t, m, keyRunes("/"), keyRunes("dismiss"), tea.KeyMsg{Type: tea.KeyEnter})
	if !m.Status.IsError || !strings.Contains(m.Status.Text, "no badge notification pending") {
		t.Fatalf("expected dismiss error, got %+v", m.Status)
	}

	m = send(t, m, keyRunes("/"), keyRunes("show history"), tea.KeyMsg{Type: tea.KeyEnter})
	if m.CurrentView != ViewHistory {
		t.Fatalf("expected history view, got %q", m.CurrentView)
	}

	m = send(t, m, keyRunes("/"), keyRunes("fly away"), tea.KeyMsg{Type: tea.KeyEnter})
	if !m.Status.IsError || !strings.Contains(m.Status.Text, "unknown_command") {
		t.Fatalf("expected unknown command error, got %+v", m.Status)
	}
}

func TestPaletteEscCloses(t *testing.T) {
	m := send(t, NewModel(), keyRunes("/"), keyRunes("add x"), tea.KeyMsg{Type: tea.KeyEsc})
	if m.Palette.Active || m.Palette.Input != "" || len(m.Session.Goals()) != 0 {
		t.Fatalf("unexpected palette state: %+v", m.Palette)
	}
}

func TestExportWritesReport(t *testing.T) {
	cfg := DefaultRuntimeConfig()
	cfg.ReportPath = filepath.Join(t.TempDir(), "default.pdf")
	m := NewModelWithRuntime(Runtime{}, cfg)
	m = send(t, m, AddGoalMsg{Title: "Run 5k", Points: 60}, keyRunes("e"))
	if m.Status.IsError || m.LastReport == "" {
		t.Fatalf("export failed: %+v", m.Status)
	}
	if _, err := os.Stat(cfg.ReportPath); err != nil {
		t.Fatalf("expected default report: %v", err)
	}

	custom := filepath.Join(t.TempDir(), "custom.pdf")
	m = send(t, m, keyRunes("/"), keyRunes("export "+custom), tea.KeyMsg{Type: tea.KeyEnter})
	if m.Status.IsError {
		t.Fatalf("palette export failed: %+v", m.Status)
	}
	if _, err := os.Stat(custom); err != nil {
		t.Fatalf("expected custom report: %v", err)
	}
}

func TestSessionEventsAreJournaledThroughBus(t *testing.T) {
	repo, err := storage.OpenInMemory()
	if err != nil {
		t.Fatalf("open journal: %v", err)
	}
	defer repo.Close()
	journal, err := storage.NewJournal(repo)
	if err != nil {
		t.Fatalf("new journal: %v", err)
	}
	bus := events.NewBus(16)
	defer bus.Close()
	session := tracker.NewSession()
	session.Subscribe(bus)

	m := NewModelWithRuntime(Runtime{Session: session, Bus: bus, Journal: journal}, DefaultRuntimeConfig())
	if cmd := m.Init(); cmd == nil {
		t.Fatal("expected session event wait cmd when a bus is attached")
	}

	m = send(t, m, AddGoalMsg{Title: "Run 5k", Points: 60})
	m = send(t, m, CompleteGoalMsg{ID: session.Goals()[0].ID})

	for i := 0; i < 3; i++ {
		ev := <-bus.C()
		updated, cmd := m.Update(SessionEventMsg{Event: ev})
		m = updated.(Model)
		if cmd == nil {
			t.Fatal("expected listener rearm cmd")
		}
	}

	if len(m.History) != 3 {
		t.Fatalf("expected 3 journaled events, got %d", len(m.History))
	}
	if m.History[0].Kind != string(tracker.EventPointsAwarded) || m.History[2].Kind != string(tracker.EventGoalAdded) {
		t.Fatalf("unexpected history order: %+v", m.History)
	}

	m = send(t, m, keyRunes("3"))
	if !strings.Contains(m.View(), "goal_completed") {
		t.Fatal("expected journal rows in history view")
	}
}

func TestInitWithoutBusReturnsNil(t *testing.T) {
	if cmd := NewModel().Init(); cmd != nil {
		t.Fatal("expected no listener without a bus")
	}
}

func TestHistoryWithoutJournal(t *testing.T) {
	m := send(t, NewModel(), keyRunes("3"))
	if !strings.Contains(m.View(), "journal disabled") {
		t.Fatal("expected disabled journal hint")
	}
}

func TestHelpToggle(t *testing.T) {
	m := send(t, NewModel(), keyRunes("2"), keyRunes("?"))
	if !m.HelpVisible {
		t.Fatal("expected help visible")
	}
	out := m.View()
	if !strings.Contains(out, "help:") || !strings.Contains(out, "complete selected goal") {
		t.Fatalf("expected goals help in view: %q", out)
	}
	m = send(t, m, keyRunes("?"))
	if m.HelpVisible {
		t.Fatal("expected help hidden")
	}
}

func TestResolveGoalByPrefix(t *testing.T) {
	n := 0
	ids := []string{"aaa-111", "aab-222", "bbb-333"}
	session := tracker.NewSession(tracker.WithIDGenerator(func() string { id := ids[n]; n++; return id }))
	m := NewModelWithRuntime(Runtime{Session: session}, DefaultRuntimeConfig())
	m = send(t, m,
		AddGoalMsg{Title: "one", Points: 1},
		AddGoalMsg{Title: "two", Points: 2},
		AddGoalMsg{Title: "three", Points: 3},
	)

	g, err := m.resolveGoal("bb")
	if err != nil || g.Title != "three" {
		t.Fatalf("expected prefix match on three, got %+v err=%v", g, err)
	}
	if _, err := m.resolveGoal("aa"); err == nil || !strings.Contains(err.Error(), "ambiguous") {
		t.Fatalf("expected ambiguous prefix error, got %v", err)
	}
	if g, err := m.resolveGoal("2"); err != nil || g.Title != "two" {
		t.Fatalf("expected index match on two, got %+v err=%v", g, err)
	}
	if _, err := m.resolveGoal("0"); !errors.Is(err, tracker.ErrUnknownGoal) {
		t.Fatalf("expected unknown goal for index 0, got %v", err)
	}
}
