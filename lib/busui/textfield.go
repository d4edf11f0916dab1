// Copyright 2026 The Paribahan Authors
// SPDX-License-Identifier: Apache-2.0

package busui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// TextField is a single-line text input with cursor tracking. It
// holds its content as a rune slice so multi-byte input edits
// correctly at any cursor position.
type TextField struct {
	// Placeholder is shown faintly while the field is empty. It
	// never becomes part of the value.
	Placeholder string

	runes  []rune
	cursor int
}

// Value returns the current text content.
func (field TextField) Value() string {
	return string(field.runes)
}

// SetValue replaces the content and moves the cursor to the end.
func (field *TextField) SetValue(value string) {
	field.runes = []rune(value)
	field.cursor = len(field.runes)
}

// Clear empties the field.
func (field *TextField) Clear() {
	field.runes = nil
	field.cursor = 0
}

// Update processes a key message. Keys that are not editing keys
// (enter, tab, escape) are ignored so the owning view can handle
// them as actions.
func (field *TextField) Update(message tea.KeyMsg) {
	switch message.Type {
	case tea.KeyRunes, tea.KeySpace:
		for _, character := range message.Runes {
			field.insertRune(character)
		}

	case tea.KeyBackspace:
		if field.cursor > 0 {
			field.runes = append(field.runes[:field.cursor-1], field.runes[field.cursor:]...)
			field.cursor--
		}

	case tea.KeyDelete:
		if field.cursor < len(field.runes) {
			field.runes = append(field.runes[:field.cursor], field.runes[field.cursor+1:]...)
		}

	case tea.KeyLeft:
		if field.cursor > 0 {
			field.cursor--
		}

	case tea.KeyRight:
		if field.cursor < len(field.runes) {
			field.cursor++
		}

	case tea.KeyHome, tea.KeyCtrlA:
		field.cursor = 0

	case tea.KeyEnd, tea.KeyCtrlE:
		field.cursor = len(field.runes)

	case tea.KeyCtrlU:
		field.runes = nil
		field.cursor = 0
	}
}

func (field *TextField) insertRune(character rune) {
	newRunes := make([]rune, len(field.runes)+1)
	copy(newRunes, field.runes[:field.cursor])
	newRunes[field.cursor] = character
	copy(newRunes[field.cursor+1:], field.runes[field.cursor:])
	field.runes = newRunes
	field.cursor++
}

// View renders the field at the given width. A focused field shows a
// block cursor at the cursor position; an empty field shows its
// placeholder faintly. Content longer than the width scrolls so the
// cursor stays visible.
func (field TextField) View(theme Theme, width int, focused bool) string {
	if width < 4 {
		width = 4
	}

	textStyle := lipgloss.NewStyle().Foreground(theme.NormalText)
	faintStyle := lipgloss.NewStyle().Foreground(theme.FaintText)
	cursorStyle := lipgloss.NewStyle().
		Background(theme.SelectedForeground).
		Foreground(theme.SelectedBackground)

	if len(field.runes) == 0 {
		placeholder := ansi.Truncate(field.Placeholder, width, "…")
		if !focused {
			return faintStyle.Render(placeholder)
		}
		// Cursor block over the first placeholder cell.
		placeholderRunes := []rune(placeholder)
		if len(placeholderRunes) == 0 {
			return cursorStyle.Render(" ")
		}
		return cursorStyle.Render(string(placeholderRunes[0])) +
			faintStyle.Render(string(placeholderRunes[1:]))
	}

	// Window the content so the cursor is always on screen. Reserve
	// one cell for the cursor block at the end of the text.
	start := 0
	if field.cursor >= width {
		start = field.cursor - width + 1
	}
	end := start + width
	if end > len(field.runes) {
		end = len(field.runes)
	}
	visible := field.runes[start:end]
	cursorAt := field.cursor - start

	if !focused {
		return textStyle.Render(string(visible))
	}

	before := string(visible[:cursorAt])
	if cursorAt >= len(visible) {
		return textStyle.Render(before) + cursorStyle.Render(" ")
	}
	under := string(visible[cursorAt])
	after := string(visible[cursorAt+1:])
	return textStyle.Render(before) + cursorStyle.Render(under) + textStyle.Render(after)
}
