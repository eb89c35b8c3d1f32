// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package ui

import (
	"fmt"
	"strings"

	"job-tracker/internal/tracker"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	var body, footer string
	switch m.currentState {
	case stateSummary:
		body, footer = m.renderSummaryView()
	default:
		body, footer = m.renderTableView()
	}

	header := titleStyle.Render("Job Tracker") + dimStyle.Render("  "+m.store.Path())
	if m.width > 0 {
		body = mainContentBorderStyle.Width(m.width - 2).Render(body)
	} else {
		body = mainContentBorderStyle.Render(body)
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

func (m Model) renderTableView() (string, string) {
	var b strings.Builder

	filter := "all"
	if s := m.filterStatus(); s != "" {
		filter = renderStatus(s)
	}
	fmt.Fprintf(&b, "Status: %s  %s\n", filter,
		dimStyle.Render(fmt.Sprintf("(%d of %d)", len(m.visible), len(m.store.Applications()))))

	if len(m.visible) == 0 {
		if len(m.store.Applications()) == 0 {
			b.WriteString(infoStyle.Render("No applications found. Add one with 'jt add'."))
		} else {
			b.WriteString(infoStyle.Render("No applications match the given filters."))
		}
	} else {
		b.WriteString(m.table.View())
	}

	return b.String(), m.renderFooter(
		helpItem(m.keys.Filter),
		helpItem(m.keys.Summary),
		footerKeyStyle.Render("1-4")+" "+footerDescStyle.Render("set status"),
		helpItem(m.keys.Reload),
		helpItem(m.keys.Quit),
	)
}

func (m Model) renderSummaryView() (string, string) {
	sum := m.store.Summarize()

	var b strings.Builder
	fmt.Fprintf(&b, "Total applications: %s\n\n", identifierStyle.Render(fmt.Sprint(sum.Total)))

	b.WriteString(titleStyle.Render("By status") + "\n")
	for _, bucket := range sum.ByStatus {
		label := statusStyle(tracker.Status(bucket.Label)).Render(fmt.Sprintf("%-12s", bucket.Label))
		fmt.Fprintf(&b, "  %s %d\n", label, bucket.Count)
	}
	b.WriteString("\n" + titleStyle.Render("By source") + "\n")
	for _, bucket := range sum.BySource {
		fmt.Fprintf(&b, "  %-12s %d\n", bucket.Label, bucket.Count)
	}

	return b.String(), m.renderFooter(helpItem(m.keys.Back), helpItem(m.keys.Quit))
}

func helpItem(b key.Binding) string {
	h := b.Help()
	return footerKeyStyle.Render(h.Key) + " " + footerDescStyle.Render(h.Desc)
}

// renderFooter shows the last message or error above the key help line.
func (m Model) renderFooter(items ...string) string {
	status := ""
	switch {
	case m.err != nil && tracker.IsUserFacing(m.err):
		status = errorStyle.Render("Error: " + m.err.Error())
	case m.err != nil:
		status = errorStyle.Render("Error: unexpected failure. See the log file for details.")
	case m.message != "":
		status = successStyle.Render(m.message)
	}

	help := strings.Join(items, footerSeparatorStyle.Render(" | "))
	if m.width > 0 {
		help = lipgloss.NewStyle().Width(m.width).Render(help)
	}
	return status + "\n" + help
}
