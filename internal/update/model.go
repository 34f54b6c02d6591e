package update

import (
	"fmt"
	"log/slog"
	"os/exec"
	"runtime"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/sandeepkv93/goalquest/internal/events"
	"github.com/sandeepkv93/goalquest/internal/model"
	"github.com/sandeepkv93/goalquest/internal/storage"
	"github.com/sandeepkv93/goalquest/internal/tracker"
)

type View string

const (
	ViewCharacter View = "Character"
	ViewGoals     View = "Goals"
	ViewHistory   View = "History"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Character string
	Goals     string
	History   string
	Add       string
	Export    string
	Help      string
	Quit      string
}

// Runtime is the set of collaborators a Model drives. Only Session is
// required; the rest may be nil.
type Runtime struct {
	Session  *tracker.Session
	Bus      *events.Bus
	Journal  *storage.Journal
	Notifier DesktopNotifier
	Logger   *slog.Logger
}

type Model struct {
	CurrentView    View
	Session        *tracker.Session
	Bus            *events.Bus
	Journal        *storage.Journal
	Goals          GoalsState
	Form           AddGoalForm
	Palette        CommandPaletteState
	History        []storage.Event
	HelpVisible    bool
	Notifications  []Notification
	DesktopEnabled bool
	notifier       DesktopNotifier
	Status         StatusBar
	Keys           GlobalKeyMap
	Quitting       bool
	LastError      error
	LastReport     string
	reportPath     string
	defaultPoints  int
	log            *slog.Logger
	now            func() time.Time

	titleInput      textinput.Model
	categoryInput   textinput.Model
	commandInput    textinput.Model
	pointsProgress  progress.Model
	helpModel       help.Model
	historyViewport viewport.Model
}

type GoalsState struct {
	Cursor int
}

type FormField int

const (
	FieldTitle FormField = iota
	FieldCategory
	FieldPoints
)

func (f FormField) String() string {
	switch f {
	case FieldCategory:
		return "category"
	case FieldPoints:
		return "points"
	default:
		return "title"
	}
}

type AddGoalForm struct {
	Active bool
	Field  FormField
	Points int
	Err    string
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type Notification struct {
	Title string
	Body  string
	Level string
	At    time.Time
}

type DesktopNotifier interface {
	Send(Notification) error
}

type NoopDesktopNotifier struct{}

func (NoopDesktopNotifier) Send(Notification) error { return nil }

type ExecDesktopNotifier struct{}

func (ExecDesktopNotifier) Send(n Notification) error {
	switch runtime.GOOS {
	case "linux":
		return exec.Command("notify-send", n.Title, n.Body).Run()
	case "darwin":
		script := fmt.Sprintf(`display notification "%s" with title "%s"`, escapeAppleScript(n.Body), escapeAppleScript(n.Title))
		return exec.Command("osascript", "-e", script).Run()
	default:
		return nil
	}
}

type SwitchViewMsg struct {
	View View
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

type AddGoalMsg struct {
	Title    string
	Category string
	Points   int
}

type CompleteGoalMsg struct {
	ID string
}

type DismissBadgeNotificationMsg struct{}

// SessionEventMsg carries one session event off the bus into the loop.
type SessionEventMsg struct {
	Event tracker.Event
}

func NewModel() Model {
	return NewModelWithRuntime(Runtime{}, DefaultRuntimeConfig())
}

func NewModelWithRuntime(rt Runtime, cfg RuntimeConfig) Model {
	session := rt.Session
	if session == nil {
		session = tracker.NewSession(tracker.WithLogger(rt.Logger))
	}
	log := rt.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	m := Model{
		CurrentView:    ViewCharacter,
		Session:        session,
		Bus:            rt.Bus,
		Journal:        rt.Journal,
		DesktopEnabled: cfg.DesktopNotifications,
		notifier:       NoopDesktopNotifier{},
		reportPath:     cfg.ReportPath,
		defaultPoints:  model.ClampPoints(cfg.DefaultGoalPoints),
		log:            log,
		now:            func() time.Time { return time.Now().UTC() },
		Keys: GlobalKeyMap{
			Character: "1",
			Goals:     "2",
			History:   "3",
			Add:       "a",
			Export:    "e",
			Help:      "?",
			Quit:      "q",
		},
	}
	if rt.Notifier != nil {
		m.notifier = rt.Notifier
	}
	m.Form.Points = m.defaultPoints
	m.initBubbleComponents()
	m.refreshHistory()
	return m
}

func (m *Model) initBubbleComponents() {
	m.titleInput = textinput.New()
	m.titleInput.Prompt = ""
	m.titleInput.Placeholder = "Title"
	m.titleInput.CharLimit = 120
	m.titleInput.Width = 36

	m.categoryInput = textinput.New()
	m.categoryInput.Prompt = ""
	m.categoryInput.Placeholder = "Category"
	m.categoryInput.CharLimit = 60
	m.categoryInput.Width = 36

	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 48

	m.pointsProgress = progress.New(progress.WithDefaultGradient(), progress.WithWidth(30))
	m.helpModel = help.New()
	m.historyViewport = viewport.New(54, 14)
}
