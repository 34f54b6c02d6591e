package main

import (
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/goalquest/internal/events"
	"github.com/sandeepkv93/goalquest/internal/logger"
	"github.com/sandeepkv93/goalquest/internal/storage"
	"github.com/sandeepkv93/goalquest/internal/tracker"
	"github.com/sandeepkv93/goalquest/internal/update"
	"golang.org/x/term"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "goalquest failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("an interactive terminal is required")
	}

	cfg, err := update.LoadRuntimeConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, closeLog, err := logger.Open(cfg.LogLevel, cfg.LogJSON, cfg.LogFile, cfg.ErrorLogFile)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer closeLog()
	slog.SetDefault(log)

	session := tracker.NewSession(tracker.WithLogger(log))
	rt := update.Runtime{
		Session: session,
		Logger:  log,
	}
	if cfg.DesktopNotifications {
		rt.Notifier = update.ExecDesktopNotifier{}
	}

	if cfg.Journal {
		repo, err := storage.OpenInMemory()
		if err != nil {
			return fmt.Errorf("open journal: %w", err)
		}
		defer repo.Close()
		journal, err := storage.NewJournal(repo)
		if err != nil {
			return err
		}
		bus := events.NewBus(cfg.EventBuffer)
		defer bus.Close()
		session.Subscribe(bus)
		rt.Journal = journal
		rt.Bus = bus
	}

	log.Info("starting goalquest", "journal", cfg.Journal, "desktop_notifications", cfg.DesktopNotifications)
	program := tea.NewProgram(update.NewModelWithRuntime(rt, cfg), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return err
	}
	log.Info("goalquest exited")
	return nil
}
