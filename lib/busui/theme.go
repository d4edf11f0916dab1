// Copyright 2026 The Paribahan Authors
// SPDX-License-Identifier: Apache-2.0

package busui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/paribahan/paribahan/lib/busapi"
)

// Theme defines the color palette and visual properties for the
// paribahan TUI. All colors use lipgloss ANSI 256-color codes for
// broad terminal compatibility.
type Theme struct {
	// Text colors.
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	// Selected row or focused control.
	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	// Booking status colors.
	StatusActive    lipgloss.Color
	StatusCancelled lipgloss.Color

	// Inline feedback. ErrorText covers validation and service
	// failures; NoticeText covers empty-result notices, which share
	// the error styling slot but are a distinct, softer condition.
	ErrorText   lipgloss.Color
	SuccessText lipgloss.Color
	NoticeText  lipgloss.Color

	// UI chrome.
	AccentForeground lipgloss.Color // Brand accent: view titles, prices.
	HeaderForeground lipgloss.Color
	BorderColor      lipgloss.Color
	HelpText         lipgloss.Color

	// Overlays (dropdowns, the cancel confirmation modal).
	OverlayForeground lipgloss.Color
	OverlayBackground lipgloss.Color
}

// StatusColor returns the color for a booking status. Unknown values
// render faint, which keeps the list readable if the service grows a
// status this client doesn't know yet.
func (theme Theme) StatusColor(status busapi.BookingStatus) lipgloss.Color {
	switch status {
	case busapi.StatusActive:
		return theme.StatusActive
	case busapi.StatusCancelled:
		return theme.StatusCancelled
	default:
		return theme.FaintText
	}
}

// DefaultTheme is the built-in dark-terminal color scheme. Designed
// for 256-color terminals with a dark background.
var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("245"),

	SelectedBackground: lipgloss.Color("236"),
	SelectedForeground: lipgloss.Color("255"),

	StatusActive:    lipgloss.Color("114"), // green
	StatusCancelled: lipgloss.Color("245"), // gray

	ErrorText:   lipgloss.Color("196"), // red
	SuccessText: lipgloss.Color("114"), // green
	NoticeText:  lipgloss.Color("220"), // amber

	AccentForeground: lipgloss.Color("105"), // periwinkle, after the web UI's brand color
	HeaderForeground: lipgloss.Color("255"),
	BorderColor:      lipgloss.Color("240"),
	HelpText:         lipgloss.Color("241"),

	OverlayForeground: lipgloss.Color("252"),
	OverlayBackground: lipgloss.Color("237"),
}
