// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

// Package ui implements the interactive application browser on top of the
// tracker store using the Bubble Tea Model-View-Update architecture.
package ui

import (
	"fmt"
	"log/slog"

	"job-tracker/internal/tracker"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	headerHeight = 1
	footerHeight = 3
)

var columns = []table.Column{
	{Title: "Company", Width: 18},
	{Title: "Role", Width: 22},
	{Title: "Location", Width: 14},
	{Title: "Applied", Width: 10},
	{Title: "Status", Width: 9},
	{Title: "Source", Width: 12},
	{Title: "Notes", Width: 30},
}

// Model is the Bubble Tea model for the application browser.
type Model struct {
	store *tracker.Store
	log   *slog.Logger
	keys  KeyMap

	table        table.Model
	visible      []tracker.Application // rows currently shown, in table order
	statusFilter int                   // -1 for all, otherwise an index into tracker.Statuses
	currentState state

	busy    bool // a store command is in flight; at most one runs at a time
	message string
	err     error

	width  int
	height int
}

// New returns a model browsing the applications already loaded into s.
func New(s *tracker.Store, log *slog.Logger) Model {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57"))
	t.SetStyles(styles)

	m := Model{
		store:        s,
		log:          log,
		keys:         DefaultKeyMap,
		table:        t,
		statusFilter: -1,
		currentState: stateTable,
	}
	m.refreshRows()
	return m
}

func (m Model) Init() tea.Cmd { return nil }

// filterStatus returns the active status filter, or "" for all.
func (m Model) filterStatus() tracker.Status {
	if m.statusFilter < 0 {
		return ""
	}
	return tracker.Statuses[m.statusFilter]
}

// refreshRows rebuilds the table from the store, keeping the cursor in range.
func (m *Model) refreshRows() {
	apps, err := m.store.List(tracker.Filter{Status: string(m.filterStatus())})
	if err != nil {
		m.err = err
		return
	}
	m.visible = apps

	rows := make([]table.Row, len(apps))
	for i, a := range apps {
		rows[i] = table.Row{a.Company, a.Role, a.Location, a.DateApplied, string(a.Status), a.Source, a.Notes}
	}
	m.table.SetRows(rows)
	if c := m.table.Cursor(); c >= len(rows) {
		m.table.SetCursor(max(len(rows)-1, 0))
	}
}

// selected returns the application under the cursor.
func (m Model) selected() (tracker.Application, bool) {
	c := m.table.Cursor()
	if c < 0 || c >= len(m.visible) {
		return tracker.Application{}, false
	}
	return m.visible[c], true
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetWidth(msg.Width - 2)
		m.table.SetHeight(max(msg.Height-headerHeight-footerHeight-2, 3))
		return m, nil

	case statusUpdatedMsg:
		m.busy = false
		if msg.err != nil {
			m.err = msg.err
			m.message = ""
			if !tracker.IsUserFacing(msg.err) {
				m.log.Error("Unhandled error", "error", msg.err)
			}
			return m, nil
		}
		m.store = msg.store
		m.err = nil
		m.message = fmt.Sprintf("%s / %s marked %s", msg.app.Company, msg.app.Role, msg.app.Status)
		m.refreshRows()
		return m, nil

	case reloadedMsg:
		m.busy = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.store = msg.store
		m.err = nil
		m.message = fmt.Sprintf("Reloaded %d applications", len(m.store.Applications()))
		m.refreshRows()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	if m.currentState == stateSummary {
		if key.Matches(msg, m.keys.Back) || key.Matches(msg, m.keys.Summary) {
			m.currentState = stateTable
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Summary):
		m.currentState = stateSummary
		return m, nil

	case key.Matches(msg, m.keys.Filter):
		m.statusFilter++
		if m.statusFilter >= len(tracker.Statuses) {
			m.statusFilter = -1
		}
		m.table.SetCursor(0)
		m.refreshRows()
		return m, nil

	case key.Matches(msg, m.keys.Reload):
		if m.busy {
			return m, nil
		}
		m.busy = true
		return m, reloadCmd(m.store.Path(), m.log)

	case key.Matches(msg, m.keys.MarkApplied):
		return m.markSelected(tracker.StatusApplied)
	case key.Matches(msg, m.keys.MarkInterview):
		return m.markSelected(tracker.StatusInterview)
	case key.Matches(msg, m.keys.MarkOffer):
		return m.markSelected(tracker.StatusOffer)
	case key.Matches(msg, m.keys.MarkRejected):
		return m.markSelected(tracker.StatusRejected)
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) markSelected(status tracker.Status) (tea.Model, tea.Cmd) {
	app, ok := m.selected()
	if !ok || m.busy || app.Status == status {
		return m, nil
	}
	m.busy = true
	m.message = fmt.Sprintf("Saving %s / %s...", app.Company, app.Role)
	return m, updateStatusCmd(m.store.Path(), m.log, app.Company, app.Role, status)
}
