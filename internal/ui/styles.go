// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package ui

import (
	"job-tracker/internal/tracker"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle             = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("62"))
	errorStyle             = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	infoStyle              = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	successStyle           = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	dimStyle               = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	identifierStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	mainContentBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("238")) // Light grey border

	// Footer / Status Bar Styles
	footerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250")) // Default light grey text

	footerKeyStyle = lipgloss.NewStyle().
			Inherit(footerStyle).
			Foreground(lipgloss.Color("39")) // Bright blue for key

	footerDescStyle = lipgloss.NewStyle().
			Inherit(footerStyle).
			Foreground(lipgloss.Color("250")) // Light grey for description

	footerSeparatorStyle = lipgloss.NewStyle().
				Inherit(footerStyle).
				Foreground(lipgloss.Color("240")) // Dim grey for separator "|"
)

var statusStyles = map[tracker.Status]lipgloss.Style{
	tracker.StatusApplied:   lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	tracker.StatusInterview: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	tracker.StatusOffer:     lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	tracker.StatusRejected:  lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
}

func statusStyle(s tracker.Status) lipgloss.Style {
	if style, ok := statusStyles[s]; ok {
		return style
	}
	return dimStyle
}

func renderStatus(s tracker.Status) string {
	return statusStyle(s).Render(string(s))
}
