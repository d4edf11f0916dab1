// Copyright 2026 The Paribahan Authors
// SPDX-License-Identifier: Apache-2.0

package busui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	scrollThumbGlyph = "┃"
	scrollTrackGlyph = "│"
)

// RenderScrollbar draws the one-column scrollbar beside a scrolling
// list. The thumb marks the slice of totalItems currently on screen:
// its size is proportional to visibleItems and its position follows
// scrollOffset, rounded so the last page of results puts the thumb
// flush against the bottom of the track. When everything fits the
// thumb fills the whole track. Focus swaps the thumb to the accent
// color.
func RenderScrollbar(theme Theme, height, totalItems, visibleItems, scrollOffset int, focused bool) string {
	if height <= 0 {
		return ""
	}

	thumbTop, thumbRows := scrollThumbSpan(height, totalItems, visibleItems, scrollOffset)

	thumbColor := theme.BorderColor
	if focused {
		thumbColor = theme.AccentForeground
	}
	thumb := lipgloss.NewStyle().Foreground(thumbColor).Render(scrollThumbGlyph)
	track := lipgloss.NewStyle().Foreground(theme.BorderColor).Render(scrollTrackGlyph)

	var column strings.Builder
	for row := 0; row < height; row++ {
		if row > 0 {
			column.WriteString("\n")
		}
		if row >= thumbTop && row < thumbTop+thumbRows {
			column.WriteString(thumb)
		} else {
			column.WriteString(track)
		}
	}
	return column.String()
}

// scrollThumbSpan computes the thumb's first row and row count for a
// track of the given height.
func scrollThumbSpan(height, totalItems, visibleItems, scrollOffset int) (top, rows int) {
	if totalItems <= 0 || totalItems <= visibleItems {
		return 0, height
	}

	rows = height * visibleItems / totalItems
	if rows < 1 {
		rows = 1
	}

	hidden := totalItems - visibleItems
	if scrollOffset < 0 {
		scrollOffset = 0
	}
	if scrollOffset > hidden {
		scrollOffset = hidden
	}

	travel := height - rows
	if travel > 0 {
		// Round to nearest so a fully-scrolled list lands exactly at
		// the bottom row.
		top = (scrollOffset*travel + hidden/2) / hidden
	}
	if top+rows > height {
		top = height - rows
	}
	return top, rows
}
