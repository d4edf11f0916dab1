// Copyright 2026 The Paribahan Authors
// SPDX-License-Identifier: Apache-2.0

package busui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func scrollbarGlyphs(height, total, visible, offset int) string {
	rendered := RenderScrollbar(DefaultTheme, height, total, visible, offset, false)
	return strings.ReplaceAll(ansi.Strip(rendered), "\n", "")
}

func TestScrollbarFullThumbWhenContentFits(t *testing.T) {
	if got := scrollbarGlyphs(4, 3, 8, 0); got != "┃┃┃┃" {
		t.Errorf("content that fits should fill the track, got %q", got)
	}
}

func TestScrollbarThumbTracksOffset(t *testing.T) {
	// 20 items, 5 visible, track of 8 rows: thumb is 2 rows and rides
	// from top to bottom as the offset crosses the hidden range.
	if got := scrollbarGlyphs(8, 20, 5, 0); got != "┃┃││││││" {
		t.Errorf("offset 0 should pin the thumb to the top, got %q", got)
	}
	if got := scrollbarGlyphs(8, 20, 5, 15); got != "││││││┃┃" {
		t.Errorf("full offset should pin the thumb to the bottom, got %q", got)
	}
	middle := scrollbarGlyphs(8, 20, 5, 7)
	if strings.HasPrefix(middle, "┃") || strings.HasSuffix(middle, "┃") {
		t.Errorf("mid-list offset should leave track at both ends, got %q", middle)
	}
}

func TestScrollbarZeroHeight(t *testing.T) {
	if got := RenderScrollbar(DefaultTheme, 0, 10, 5, 0, true); got != "" {
		t.Errorf("expected empty render for zero height, got %q", got)
	}
}
