// Copyright 2026 The Paribahan Authors
// SPDX-License-Identifier: Apache-2.0

package busui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/paribahan/paribahan/lib/busapi"
)

// bookingFieldCount is the number of text inputs on the form.
const bookingFieldCount = 3

const (
	bookingFieldName = iota
	bookingFieldPhone
	bookingFieldDate
)

// bookingSuccessDelay is how long the confirmation stays on screen
// before the flow returns to a fresh search.
const bookingSuccessDelay = 2 * time.Second

// bookingResultMsg delivers the outcome of a booking submission.
type bookingResultMsg struct {
	booking busapi.Booking
	err     error
}

// bookingAdvanceMsg fires after the post-success delay. The
// generation guards against a tick that outlives the form it was
// scheduled for: a newer form ignores ticks from an older one.
type bookingAdvanceMsg struct {
	generation int
}

// bookingDoneMsg tells the top-level model that the booking flow
// finished and the search view should reset.
type bookingDoneMsg struct{}

// bookingCancelledMsg tells the top-level model that the user backed
// out of the form without booking.
type bookingCancelledMsg struct{}

// BookingFormModel owns the booking form shown after the user picks
// an offer. It holds its own copy of the offer; changes to search
// results cannot reach a form already in progress.
type BookingFormModel struct {
	service Service
	theme   Theme
	keys    KeyMap

	offer busapi.BusOffer

	fields [bookingFieldCount]TextField
	focus  int

	busy    bool
	success bool
	booking busapi.Booking

	errorText string

	// generation increments each time a form is created so that a
	// delayed advance tick from a dismissed form is recognized as
	// stale and dropped.
	generation int

	// now is the clock used for travel-date validation. Tests inject
	// a fixed time.
	now func() time.Time
}

// NewBookingFormModel creates a booking form for the given offer.
func NewBookingFormModel(service Service, theme Theme, keys KeyMap, offer busapi.BusOffer, generation int) BookingFormModel {
	model := BookingFormModel{
		service:    service,
		theme:      theme,
		keys:       keys,
		offer:      offer,
		generation: generation,
		now:        time.Now,
	}
	model.fields[bookingFieldName].Placeholder = "your full name"
	model.fields[bookingFieldPhone].Placeholder = "+8801XXXXXXXXX"
	model.fields[bookingFieldDate].Placeholder = "YYYY-MM-DD"
	return model
}

// textFocused reports whether the form is capturing keystrokes. It
// is true whenever the form accepts input, so the top-level model
// routes digits here instead of switching views.
func (model BookingFormModel) textFocused() bool {
	return !model.busy && !model.success
}

// Update processes a message for the booking form.
func (model BookingFormModel) Update(message tea.Msg) (BookingFormModel, tea.Cmd) {
	switch message := message.(type) {
	case tea.KeyMsg:
		return model.handleKey(message)

	case bookingResultMsg:
		model.busy = false
		if message.err != nil {
			model.errorText = serviceErrorMessage(message.err, "Failed to create booking")
			return model, nil
		}
		model.success = true
		model.booking = message.booking
		generation := model.generation
		return model, tea.Tick(bookingSuccessDelay, func(time.Time) tea.Msg {
			return bookingAdvanceMsg{generation: generation}
		})

	case bookingAdvanceMsg:
		// Stale ticks belong to a form the user already left.
		if message.generation != model.generation || !model.success {
			return model, nil
		}
		return model, func() tea.Msg { return bookingDoneMsg{} }
	}
	return model, nil
}

func (model BookingFormModel) handleKey(message tea.KeyMsg) (BookingFormModel, tea.Cmd) {
	// While a submission is in flight or the confirmation is showing,
	// the inputs are frozen.
	if model.busy || model.success {
		return model, nil
	}

	switch {
	case key.Matches(message, model.keys.Back):
		return model, func() tea.Msg { return bookingCancelledMsg{} }

	case key.Matches(message, model.keys.NextField), key.Matches(message, model.keys.Down):
		model.focus = (model.focus + 1) % bookingFieldCount
		return model, nil

	case key.Matches(message, model.keys.PrevField), key.Matches(message, model.keys.Up):
		model.focus = (model.focus + bookingFieldCount - 1) % bookingFieldCount
		return model, nil

	case key.Matches(message, model.keys.Submit):
		return model.submit()
	}

	model.fields[model.focus].Update(message)
	return model, nil
}

// submit validates the form and sends the booking. Invalid input
// never reaches the service.
func (model BookingFormModel) submit() (BookingFormModel, tea.Cmd) {
	model.errorText = ""

	name := strings.TrimSpace(model.fields[bookingFieldName].Value())
	phone := strings.TrimSpace(model.fields[bookingFieldPhone].Value())
	date := strings.TrimSpace(model.fields[bookingFieldDate].Value())

	if name == "" || phone == "" || date == "" {
		model.errorText = "Please fill in all fields"
		return model, nil
	}
	if !busapi.ValidPhone(phone) {
		model.errorText = "Please enter a valid phone number"
		return model, nil
	}

	request := busapi.BookingRequest{
		UserName:     name,
		Phone:        phone,
		FromDistrict: string(model.offer.FromDistrict),
		ToDistrict:   string(model.offer.ToDistrict),
		BusProvider:  model.offer.ProviderName,
		TravelDate:   date,
	}
	if err := request.Validate(model.now()); err != nil {
		model.errorText = err.Error()
		return model, nil
	}

	model.busy = true
	service := model.service
	return model, func() tea.Msg {
		booking, err := service.CreateBooking(context.Background(), request)
		if err != nil {
			return bookingResultMsg{err: err}
		}
		return bookingResultMsg{booking: *booking}
	}
}

// View renders the booking form.
func (model BookingFormModel) View(width int) string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(model.theme.AccentForeground)
	labelStyle := lipgloss.NewStyle().Foreground(model.theme.FaintText).Width(12)
	faintStyle := lipgloss.NewStyle().Foreground(model.theme.FaintText)
	focusMarker := lipgloss.NewStyle().Foreground(model.theme.AccentForeground)

	var sections []string
	sections = append(sections, titleStyle.Render("Book Ticket"))
	sections = append(sections, faintStyle.Render(fmt.Sprintf("%s  %s → %s  ৳%d",
		model.offer.ProviderName, model.offer.FromDistrict, model.offer.ToDistrict, model.offer.Price)))
	sections = append(sections, "")

	if model.success {
		successStyle := lipgloss.NewStyle().Foreground(model.theme.SuccessText).Bold(true)
		sections = append(sections, successStyle.Render("Booking confirmed!"))
		sections = append(sections, faintStyle.Render(fmt.Sprintf("Booking ID: %s", model.booking.ID)))
		sections = append(sections, faintStyle.Render("Returning to search..."))
		return strings.Join(sections, "\n")
	}

	labels := [bookingFieldCount]string{"Name:", "Phone:", "Travel date:"}
	fieldWidth := width - 16
	for index := range model.fields {
		marker := "  "
		focused := index == model.focus && !model.busy
		if focused {
			marker = focusMarker.Render("> ")
		}
		sections = append(sections, marker+labelStyle.Render(labels[index])+
			model.fields[index].View(model.theme, fieldWidth, focused))
	}
	sections = append(sections, "")

	if model.busy {
		sections = append(sections, faintStyle.Render("Booking..."))
	} else if model.errorText != "" {
		sections = append(sections, lipgloss.NewStyle().Foreground(model.theme.ErrorText).Render(model.errorText))
	} else {
		sections = append(sections, faintStyle.Render("enter to book, esc to go back"))
	}

	return strings.Join(sections, "\n")
}
