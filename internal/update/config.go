package update

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sandeepkv93/goalquest/internal/model"
)

type RuntimeConfig struct {
	DesktopNotifications bool
	DefaultGoalPoints    int
	EventBuffer          int
	LogFile              string
	ErrorLogFile         string
	LogLevel             string
	LogJSON              bool
	ReportPath           string
	Journal              bool
}

func DefaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{
		DesktopNotifications: false,
		DefaultGoalPoints:    model.DefaultGoalPoints,
		EventBuffer:          64,
		LogLevel:             "info",
		ReportPath:           "goalquest-report.pdf",
		Journal:              true,
	}
}

// LoadRuntimeConfig reads the given .env files (".env" when none are given)
// into the process environment and then applies RuntimeConfigFromEnv.
// Missing files are ignored and variables already set win.
func LoadRuntimeConfig(files ...string) (RuntimeConfig, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return RuntimeConfig{}, err
		}
	}
	return RuntimeConfigFromEnv(DefaultRuntimeConfig()), nil
}

func RuntimeConfigFromEnv(base RuntimeConfig) RuntimeConfig {
	cfg := base
	if v, ok := getEnvBool("GOALQUEST_DESKTOP_NOTIFICATIONS"); ok {
		cfg.DesktopNotifications = v
	}
	if v, ok := getEnvInt("GOALQUEST_DEFAULT_GOAL_POINTS"); ok {
		cfg.DefaultGoalPoints = model.ClampPoints(v)
	}
	if v, ok := getEnvInt("GOALQUEST_EVENT_BUFFER"); ok && v > 0 {
		cfg.EventBuffer = v
	}
	if v, ok := getEnvString("GOALQUEST_LOG_FILE"); ok {
		cfg.LogFile = v
	}
	if v, ok := getEnvString("GOALQUEST_ERROR_LOG_FILE"); ok {
		cfg.ErrorLogFile = v
	}
	if v, ok := getEnvString("GOALQUEST_LOG_LEVEL"); ok {
		cfg.LogLevel = strings.ToLower(v)
	}
	if v, ok := getEnvBool("GOALQUEST_LOG_JSON"); ok {
		cfg.LogJSON = v
	}
	if v, ok := getEnvString("GOALQUEST_REPORT_PATH"); ok {
		cfg.ReportPath = v
	}
	if v, ok := getEnvBool("GOALQUEST_JOURNAL"); ok {
		cfg.Journal = v
	}
	return cfg
}

func getEnvString(name string) (string, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	return raw, raw != ""
}

func getEnvInt(name string) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func getEnvBool(name string) (bool, bool) {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return false, false
	}
	switch raw {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}
