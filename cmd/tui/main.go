// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package tui

import (
	"fmt"
	"os"

	"job-tracker/internal/config"
	"job-tracker/internal/logger"
	"job-tracker/internal/tracker"
	"job-tracker/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
)

// RunTUI loads the applications and runs the Bubble Tea browser.
func RunTUI() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Resolve("", "")
	if err != nil {
		return err
	}
	dataPath, err := cfg.ResolvedDataPath()
	if err != nil {
		return err
	}
	logPath, err := cfg.ResolvedLogPath()
	if err != nil {
		return err
	}
	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v. Using info.\n", err)
	}

	// The TUI owns the terminal, so logs go to the file only.
	log, closer := logger.New(logger.Options{FilePath: logPath, Level: level})
	defer closer.Close()

	store, err := tracker.Open(dataPath, log)
	if err != nil {
		if !tracker.IsUserFacing(err) {
			log.Error("Unhandled error", "error", err)
			return fmt.Errorf("unexpected failure. Check %s", logPath)
		}
		return err
	}

	log.Info("Starting TUI", "data", dataPath, "applications", len(store.Applications()))
	p := tea.NewProgram(ui.New(store, log), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Error("TUI failed", "error", err)
		return fmt.Errorf("alas, there's been an error: %w", err)
	}
	return nil
}
