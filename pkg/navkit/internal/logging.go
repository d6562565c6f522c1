package internal

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

var (
	logFile *os.File
	logPath string
	output  io.Writer

	setupOnce sync.Once
	sink      io.Writer

	appLoggerOnce sync.Once
	appLogger     *slog.Logger
	appLevel      = &slog.LevelVar{}

	engineLoggerOnce sync.Once
	engineLogger     *slog.Logger
	engineLevel      = levelVar(slog.LevelError)
)

func levelVar(level slog.Level) *slog.LevelVar {
	v := &slog.LevelVar{}
	v.Set(level)
	return v
}

// SetLogPath sets the full path of the log file. Parent directories are
// created on first use. Must be called before the first logger is requested.
func SetLogPath(path string) {
	logPath = path
}

// SetLogOutput replaces stdout as the console destination. Tests use this to
// capture or silence output.
func SetLogOutput(w io.Writer) {
	output = w
}

func setup() {
	setupOnce.Do(func() {
		console := output
		if console == nil {
			console = os.Stdout
		}

		if logPath == "" {
			sink = console
			return
		}

		if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
			sink = console
			return
		}

		var err error
		logFile, err = os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			// Console only.
			sink = console
			return
		}

		sink = io.MultiWriter(console, logFile)
	})
}

// GetLogger returns the application logger handed to feature code.
func GetLogger() *slog.Logger {
	appLoggerOnce.Do(func() {
		setup()
		appLogger = slog.New(slog.NewJSONHandler(sink, &slog.HandlerOptions{Level: appLevel}))
	})
	return appLogger
}

// GetInternalLogger returns the logger used by the engine's own components.
// It defaults to error level so routine navigation stays quiet.
func GetInternalLogger() *slog.Logger {
	engineLoggerOnce.Do(func() {
		setup()
		engineLogger = slog.New(slog.NewJSONHandler(sink, &slog.HandlerOptions{Level: engineLevel})).
			With("component", "navkit")
	})
	return engineLogger
}

func SetLogLevel(level slog.Level) {
	appLevel.Set(level)
}

func SetInternalLogLevel(level slog.Level) {
	engineLevel.Set(level)
}

// ParseLevel maps a config string to a slog level. Unknown values map to info.
func ParseLevel(raw string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func SetRawLogLevel(raw string) {
	SetLogLevel(ParseLevel(raw))
}

func CloseLogger() {
	if logFile != nil {
		logFile.Close()
	}
}

// DiscardLogger returns a logger that drops everything.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
