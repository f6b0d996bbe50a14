package logging

import (
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"
)

// Config controls where component loggers write and at what level.
type Config struct {
	// Level is the minimum level ("debug", "info", "warn", "error").
	// DROPNAV_LOG_LEVEL overrides it.
	Level string
	// File is the log file path. Empty discards output so the terminal UI
	// is never written over. DROPNAV_LOG_FILE overrides it.
	File string
	// JSON switches the formatter to logrus.JSONFormatter.
	JSON bool
}

var (
	loggers   = make(map[string]*logrus.Entry)
	loggersMu sync.Mutex
	base      *logrus.Logger
	cfg       Config
	// sink is the open log file, if any. It is closed when replaced.
	sink io.Closer
)

// Configure replaces the logging configuration. Loggers handed out before
// the call keep working and pick up the new output and level.
func Configure(c Config) {
	loggersMu.Lock()
	defer loggersMu.Unlock()
	cfg = c
	if base != nil {
		apply(base)
	}
}

// NewLogger returns the logger for a component, creating the shared logger
// on first use.
func NewLogger(component string) *logrus.Entry {
	loggersMu.Lock()
	defer loggersMu.Unlock()

	if logger, exists := loggers[component]; exists {
		return logger
	}
	if base == nil {
		base = logrus.New()
		apply(base)
	}
	entry := base.WithField("component", component)
	loggers[component] = entry
	return entry
}

func apply(logger *logrus.Logger) {
	levelStr := "info"
	if env := os.Getenv("DROPNAV_LOG_LEVEL"); env != "" {
		levelStr = env
	} else if cfg.Level != "" {
		levelStr = cfg.Level
	}
	level, err := logrus.ParseLevel(levelStr)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if cfg.JSON {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	}

	path := cfg.File
	if env := os.Getenv("DROPNAV_LOG_FILE"); env != "" {
		path = env
	}
	out := openSink(expandPath(path))
	logger.SetOutput(out)
	if sink != nil {
		sink.Close()
		sink = nil
	}
	if f, ok := out.(*os.File); ok {
		sink = f
	}
}

func openSink(path string) io.Writer {
	if path == "" {
		return io.Discard
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return io.Discard
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return io.Discard
	}
	return file
}

// expandPath expands tilde in file paths
func expandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
