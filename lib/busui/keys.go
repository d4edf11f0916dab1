// Copyright 2026 The Paribahan Authors
// SPDX-License-Identifier: Apache-2.0

package busui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings for the paribahan TUI. Text fields
// capture plain character input when focused; the bindings here use
// keys that never collide with typing (tab, enter, escape, control
// chords) except the view-switch digits, which only apply when no
// text field has focus.
type KeyMap struct {
	// Field and list navigation.
	NextField key.Binding
	PrevField key.Binding
	Up        key.Binding
	Down      key.Binding

	// Form actions.
	Submit key.Binding
	Back   key.Binding

	// View switching (inactive while a text field has focus).
	ViewSearch    key.Binding
	ViewBookings  key.Binding
	ViewAssistant key.Binding

	// Assistant transcript.
	ClearChat key.Binding

	Quit key.Binding
}

// DefaultKeyMap is the built-in key binding set.
var DefaultKeyMap = KeyMap{
	NextField: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next field"),
	),
	PrevField: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("S-tab", "previous field"),
	),
	Up: key.NewBinding(
		key.WithKeys("up"),
		key.WithHelp("↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down"),
		key.WithHelp("↓", "down"),
	),
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "submit"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
	ViewSearch: key.NewBinding(
		key.WithKeys("1"),
		key.WithHelp("1", "search"),
	),
	ViewBookings: key.NewBinding(
		key.WithKeys("2"),
		key.WithHelp("2", "my bookings"),
	),
	ViewAssistant: key.NewBinding(
		key.WithKeys("3"),
		key.WithHelp("3", "assistant"),
	),
	ClearChat: key.NewBinding(
		key.WithKeys("ctrl+l"),
		key.WithHelp("C-l", "clear chat"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("C-c", "quit"),
	),
}
