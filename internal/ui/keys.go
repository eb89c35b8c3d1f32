// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

// This file defines the keyboard bindings for the TUI application.
// Row navigation (up/down/page/home/end) is handled by the table bubble's own keymap.

package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings for the application.
type KeyMap struct {
	// General UI control
	Quit   key.Binding // Exit the application
	Back   key.Binding // Return to the table from the summary
	Reload key.Binding // Re-read the data file

	// Views
	Filter  key.Binding // Cycle the status filter
	Summary key.Binding // Toggle the summary view

	// Status changes for the selected application
	MarkApplied   key.Binding
	MarkInterview key.Binding
	MarkOffer     key.Binding
	MarkRejected  key.Binding
}

// DefaultKeyMap provides the default keybindings.
var DefaultKeyMap = KeyMap{
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q/ctrl+c", "quit"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc", "b"),
		key.WithHelp("esc/b", "back"),
	),
	Reload: key.NewBinding(
		key.WithKeys("ctrl+r"),
		key.WithHelp("ctrl+r", "reload"),
	),

	Filter: key.NewBinding(
		key.WithKeys("f"),
		key.WithHelp("f", "filter status"),
	),
	Summary: key.NewBinding(
		key.WithKeys("s", "tab"),
		key.WithHelp("s", "summary"),
	),

	MarkApplied: key.NewBinding(
		key.WithKeys("1"),
		key.WithHelp("1", "applied"),
	),
	MarkInterview: key.NewBinding(
		key.WithKeys("2"),
		key.WithHelp("2", "interview"),
	),
	MarkOffer: key.NewBinding(
		key.WithKeys("3"),
		key.WithHelp("3", "offer"),
	),
	MarkRejected: key.NewBinding(
		key.WithKeys("4"),
		key.WithHelp("4", "rejected"),
	),
}
