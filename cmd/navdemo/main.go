// Command navdemo drives the navigation engine from a terminal. It renders
// the back stack, the popup channels and a simulated checkout so the
// engine's behavior can be exercised by hand.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/BrandonKowalski/navkit/pkg/navkit"
)

func main() {
	configPath := flag.String("config", "", "settings file (default $NAVKIT_CONFIG or navkit.toml)")
	logPath := flag.String("log", "logs/navdemo.log", "log file")
	locale := flag.String("locale", "", "label language, e.g. es")
	flag.Parse()

	logger, closeLog, err := openLog(*logPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "log: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	shell, err := navkit.Init(navkit.Options{
		ConfigPath: *configPath,
		Locale:     *locale,
		Logger:     logger,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "init: %v\n", err)
		os.Exit(1)
	}
	defer shell.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		if err := shell.Run(ctx); err != nil {
			logger.Error("loop exited", "error", err)
		}
	}()

	a, err := newApp(ctx, shell, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "app: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(newModel(ctx, a), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("error: %v\n", err)
	}
}

// openLog keeps engine logs out of the terminal the UI draws on.
func openLog(path string) (*slog.Logger, func(), error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	logger := slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})).
		With("component", "navdemo")
	return logger, func() { f.Close() }, nil
}
