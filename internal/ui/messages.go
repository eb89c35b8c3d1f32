// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package ui

import (
	"log/slog"

	"job-tracker/internal/tracker"

	tea "github.com/charmbracelet/bubbletea"
)

// state represents the different views of the TUI.
type state int

const (
	stateTable state = iota
	stateSummary
)

// statusUpdatedMsg reports the result of a status change on the selected row.
// On success store holds the freshly saved table and replaces the model's store.
type statusUpdatedMsg struct {
	store *tracker.Store
	app   tracker.Application
	err   error
}

// reloadedMsg reports the result of re-reading the data file.
type reloadedMsg struct {
	store *tracker.Store
	err   error
}

// Store commands run off the main goroutine. Each works on its own Store read
// from path and hands it back in the result message, so the model's store is
// only read and replaced inside Update and View.

func updateStatusCmd(path string, log *slog.Logger, company, role string, status tracker.Status) tea.Cmd {
	return func() tea.Msg {
		s, err := tracker.Open(path, log)
		if err != nil {
			return statusUpdatedMsg{err: err}
		}
		app, err := s.Update(company, role, tracker.Changes{Status: string(status)})
		if err != nil {
			return statusUpdatedMsg{err: err}
		}
		return statusUpdatedMsg{store: s, app: app}
	}
}

func reloadCmd(path string, log *slog.Logger) tea.Cmd {
	return func() tea.Msg {
		s, err := tracker.Open(path, log)
		return reloadedMsg{store: s, err: err}
	}
}
