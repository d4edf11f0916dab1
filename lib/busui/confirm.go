// Copyright 2026 The Paribahan Authors
// SPDX-License-Identifier: Apache-2.0

package busui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// ConfirmModal is a centered yes/no overlay gating a destructive
// action. All keyboard input routes to the modal while it is active;
// enter confirms the highlighted choice, escape always declines.
// "No" starts highlighted so a reflexive enter is safe.
type ConfirmModal struct {
	// Question is the prompt text, e.g. "Cancel this booking?".
	Question string

	// Detail is an optional second line identifying the target,
	// e.g. the provider and travel date of the booking.
	Detail string

	yesSelected bool
}

// NewConfirmModal creates a ConfirmModal with "No" highlighted.
func NewConfirmModal(question, detail string) ConfirmModal {
	return ConfirmModal{Question: question, Detail: detail}
}

// Update processes a key message. It returns (confirmed, dismissed):
// dismissed is true when the modal should close, and confirmed is
// true only when the user chose yes.
func (modal *ConfirmModal) Update(message tea.KeyMsg) (confirmed, dismissed bool) {
	switch message.Type {
	case tea.KeyEsc:
		return false, true
	case tea.KeyEnter:
		return modal.yesSelected, true
	case tea.KeyLeft, tea.KeyRight, tea.KeyTab:
		modal.yesSelected = !modal.yesSelected
	case tea.KeyRunes:
		switch string(message.Runes) {
		case "y", "Y":
			return true, true
		case "n", "N":
			return false, true
		}
	}
	return false, false
}

// Render produces the modal overlay lines and the anchor position
// (top-left corner in screen coordinates) for splicing onto the view.
func (modal ConfirmModal) Render(theme Theme, screenWidth, screenHeight int) ([]string, int, int) {
	backgroundStyle := lipgloss.NewStyle().
		Background(theme.OverlayBackground)
	questionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.HeaderForeground).
		Background(theme.OverlayBackground)
	detailStyle := lipgloss.NewStyle().
		Foreground(theme.FaintText).
		Background(theme.OverlayBackground)
	choiceStyle := lipgloss.NewStyle().
		Foreground(theme.NormalText).
		Background(theme.OverlayBackground)
	selectedStyle := lipgloss.NewStyle().
		Bold(true).
		Background(theme.SelectedBackground).
		Foreground(theme.SelectedForeground)

	yes := "  Yes  "
	no := "  No  "
	if modal.yesSelected {
		yes = selectedStyle.Render(yes)
		no = choiceStyle.Render(no)
	} else {
		yes = choiceStyle.Render(yes)
		no = selectedStyle.Render(no)
	}
	choices := yes + backgroundStyle.Render("   ") + no

	contentLines := []string{questionStyle.Render(modal.Question)}
	if modal.Detail != "" {
		contentLines = append(contentLines, detailStyle.Render(modal.Detail))
	}
	contentLines = append(contentLines, "", choices)

	// Pad every line to a common inner width with background-colored
	// spaces so the modal reads as a solid box.
	innerWidth := 0
	for _, line := range contentLines {
		if lineWidth := ansi.StringWidth(line); lineWidth > innerWidth {
			innerWidth = lineWidth
		}
	}
	for index, line := range contentLines {
		contentLines[index] = PadOverlayLine(line, innerWidth, innerWidth+2, backgroundStyle)
	}

	borderStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.BorderColor).
		Background(theme.OverlayBackground)

	rendered := borderStyle.Render(strings.Join(contentLines, "\n"))
	resultLines := strings.Split(rendered, "\n")

	renderedWidth := 0
	if len(resultLines) > 0 {
		renderedWidth = ansi.StringWidth(resultLines[0])
	}
	anchorX := (screenWidth - renderedWidth) / 2
	anchorY := (screenHeight - len(resultLines)) / 2
	if anchorX < 0 {
		anchorX = 0
	}
	if anchorY < 0 {
		anchorY = 0
	}
	return resultLines, anchorX, anchorY
}
