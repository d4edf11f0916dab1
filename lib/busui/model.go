// Copyright 2026 The Paribahan Authors
// SPDX-License-Identifier: Apache-2.0

package busui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// View identifies one of the top-level views.
type View int

const (
	ViewSearch View = iota
	ViewBookings
	ViewAssistant
)

// viewTitles are the tab labels, in display order.
var viewTitles = []string{"Search", "My Bookings", "Assistant"}

// Model is the root bubbletea model. It owns the three views plus
// the booking form, routes keys to whichever is active, and routes
// result messages to their owner regardless of which view is
// showing.
type Model struct {
	service Service
	theme   Theme
	keys    KeyMap

	width  int
	height int
	ready  bool

	active    View
	search    SearchModel
	bookings  BookingsModel
	assistant AssistantModel

	// bookingForm is non-nil while a booking is in progress. It
	// replaces the search view until the flow completes or the user
	// backs out.
	bookingForm *BookingFormModel
	// formGeneration stamps each booking form so delayed ticks from
	// a dismissed form are ignored.
	formGeneration int
}

// NewModel creates the root model over the given service.
func NewModel(service Service) Model {
	theme := DefaultTheme
	keys := DefaultKeyMap
	return Model{
		service:   service,
		theme:     theme,
		keys:      keys,
		search:    NewSearchModel(service, theme, keys),
		bookings:  NewBookingsModel(service, theme, keys),
		assistant: NewAssistantModel(service, theme, keys),
	}
}

// Init implements tea.Model.
func (model Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (model Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.WindowSizeMsg:
		model.width = message.Width
		model.height = message.Height
		model.ready = true
		return model, nil

	case tea.KeyMsg:
		return model.handleKey(message)

	// Result messages go to their owning component even when
	// another view is showing; a slow response must not be lost to
	// a tab switch.
	case searchResultMsg:
		var command tea.Cmd
		model.search, command = model.search.Update(message)
		return model, command

	case bookingResultMsg, bookingAdvanceMsg:
		if model.bookingForm == nil {
			return model, nil
		}
		updated, command := model.bookingForm.Update(message)
		model.bookingForm = &updated
		return model, command

	case bookingsResultMsg, cancelResultMsg, successFadeMsg:
		var command tea.Cmd
		model.bookings, command = model.bookings.Update(message)
		return model, command

	case askResultMsg:
		var command tea.Cmd
		model.assistant, command = model.assistant.Update(message)
		return model, command

	case offerSelectedMsg:
		model.formGeneration++
		form := NewBookingFormModel(model.service, model.theme, model.keys,
			message.offer, model.formGeneration)
		model.bookingForm = &form
		model.active = ViewSearch
		return model, nil

	case bookingDoneMsg:
		model.bookingForm = nil
		model.search = model.search.Reset()
		return model, nil

	case bookingCancelledMsg:
		// Backing out keeps the search results so the user can pick
		// a different offer.
		model.bookingForm = nil
		return model, nil
	}
	return model, nil
}

func (model Model) handleKey(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(message, model.keys.Quit) {
		return model, tea.Quit
	}

	// View-switch digits and q apply only when no text input would
	// swallow them and no booking is mid-flow.
	if model.bookingForm == nil && !model.activeTextFocused() {
		switch {
		case message.String() == "q":
			return model, tea.Quit
		case key.Matches(message, model.keys.ViewSearch):
			model.active = ViewSearch
			return model, nil
		case key.Matches(message, model.keys.ViewBookings):
			model.active = ViewBookings
			return model, nil
		case key.Matches(message, model.keys.ViewAssistant):
			model.active = ViewAssistant
			return model, nil
		}
	}

	if model.bookingForm != nil && model.active == ViewSearch {
		updated, command := model.bookingForm.Update(message)
		model.bookingForm = &updated
		return model, command
	}

	var command tea.Cmd
	switch model.active {
	case ViewSearch:
		model.search, command = model.search.Update(message)
	case ViewBookings:
		model.bookings, command = model.bookings.Update(message)
	case ViewAssistant:
		model.assistant, command = model.assistant.Update(message)
	}
	return model, command
}

// activeTextFocused reports whether the active view has a text
// input capturing keystrokes.
func (model Model) activeTextFocused() bool {
	switch model.active {
	case ViewSearch:
		return model.search.textFocused()
	case ViewBookings:
		return model.bookings.textFocused()
	case ViewAssistant:
		return model.assistant.textFocused()
	}
	return false
}

// View implements tea.Model.
func (model Model) View() string {
	if !model.ready {
		return "Loading..."
	}

	header := model.renderHeader()
	body := model.renderBody()
	help := model.renderHelp()

	separator := lipgloss.NewStyle().
		Foreground(model.theme.BorderColor).
		Render(strings.Repeat("─", model.width))

	return strings.Join([]string{header, separator, body, "", help}, "\n")
}

func (model Model) renderHeader() string {
	activeStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(model.theme.SelectedForeground).
		Background(model.theme.SelectedBackground).
		Padding(0, 1)
	inactiveStyle := lipgloss.NewStyle().
		Foreground(model.theme.FaintText).
		Padding(0, 1)
	brandStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(model.theme.AccentForeground).
		Padding(0, 1)

	parts := []string{brandStyle.Render("Paribahan")}
	for index, title := range viewTitles {
		label := title
		if index < 9 {
			label = string(rune('1'+index)) + " " + title
		}
		if View(index) == model.active {
			parts = append(parts, activeStyle.Render(label))
		} else {
			parts = append(parts, inactiveStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (model Model) renderBody() string {
	bodyHeight := model.height - 4
	if bodyHeight < 1 {
		bodyHeight = 1
	}

	var body string
	switch model.active {
	case ViewSearch:
		if model.bookingForm != nil {
			body = model.bookingForm.View(model.width)
		} else {
			body = model.search.View(model.width, bodyHeight)
		}
	case ViewBookings:
		body = model.bookings.View(model.width, bodyHeight)
	case ViewAssistant:
		body = model.assistant.View(model.width, bodyHeight)
	}

	// Pad or trim to a fixed body height so the help line stays put.
	lines := strings.Split(body, "\n")
	if len(lines) > bodyHeight {
		lines = lines[:bodyHeight]
	}
	for len(lines) < bodyHeight {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

func (model Model) renderHelp() string {
	helpStyle := lipgloss.NewStyle().Foreground(model.theme.HelpText)

	var hints []string
	if model.bookingForm != nil && model.active == ViewSearch {
		hints = []string{"tab: next field", "enter: book", "esc: back"}
	} else {
		switch model.active {
		case ViewSearch:
			hints = []string{"1/2/3: view", "tab: next field", "enter: select"}
		case ViewBookings:
			hints = []string{"1/2/3: view", "tab: list/phone", "enter: lookup or cancel"}
		case ViewAssistant:
			hints = []string{"1/2/3: view", "enter: ask", "ctrl+l: clear chat"}
		}
	}
	hints = append(hints, "ctrl+c: quit")
	return helpStyle.Render(strings.Join(hints, "  ·  "))
}
