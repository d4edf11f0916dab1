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

// cancelNoticeDuration is how long the cancellation confirmation
// notice stays visible before fading.
const cancelNoticeDuration = 3 * time.Second

// bookingsResultMsg delivers the outcome of a bookings lookup.
type bookingsResultMsg struct {
	bookings []busapi.Booking
	err      error
}

// cancelResultMsg delivers the outcome of a cancellation request.
type cancelResultMsg struct {
	bookingID string
	ack       busapi.CancelAck
	err       error
}

// successFadeMsg fires when the cancellation notice should
// disappear. The generation drops ticks scheduled for an earlier
// notice.
type successFadeMsg struct {
	generation int
}

// BookingsModel owns the "my bookings" view: phone lookup, the
// booking list, and cancellation with confirmation.
type BookingsModel struct {
	service Service
	theme   Theme
	keys    KeyMap

	phone TextField

	bookings     []busapi.Booking
	cursor       int
	scrollOffset int
	// listFocused is true when navigation keys move the list cursor
	// instead of editing the phone field.
	listFocused bool

	confirm *ConfirmModal
	// pendingCancelID is the booking the open confirmation modal is
	// about.
	pendingCancelID string

	// blurred is true after esc; keystrokes then fall through to the
	// view-switch keys instead of the phone field.
	blurred bool

	busy       bool
	cancelBusy bool

	notice        string
	noticeIsError bool
	// fadeGeneration stamps the current success notice so an old
	// fade tick cannot clear a newer notice.
	fadeGeneration int
}

// NewBookingsModel creates a BookingsModel in its initial state.
func NewBookingsModel(service Service, theme Theme, keys KeyMap) BookingsModel {
	model := BookingsModel{
		service: service,
		theme:   theme,
		keys:    keys,
	}
	model.phone.Placeholder = "+8801XXXXXXXXX"
	return model
}

// ApplyCancellation returns a copy of bookings with the status of
// the booking matching bookingID set to cancelled. All other
// bookings are untouched. The input slice is not modified.
func ApplyCancellation(bookings []busapi.Booking, bookingID string) []busapi.Booking {
	patched := make([]busapi.Booking, len(bookings))
	copy(patched, bookings)
	for index := range patched {
		if patched[index].ID == bookingID {
			patched[index].Status = busapi.StatusCancelled
		}
	}
	return patched
}

// textFocused reports whether the phone field is capturing
// keystrokes.
func (model BookingsModel) textFocused() bool {
	return !model.listFocused && !model.blurred && model.confirm == nil
}

// Update processes a message for the bookings view.
func (model BookingsModel) Update(message tea.Msg) (BookingsModel, tea.Cmd) {
	switch message := message.(type) {
	case tea.KeyMsg:
		return model.handleKey(message)

	case bookingsResultMsg:
		model.busy = false
		if message.err != nil {
			model.notice = serviceErrorMessage(message.err, "Failed to fetch bookings")
			model.noticeIsError = true
			return model, nil
		}
		model.bookings = message.bookings
		model.cursor = 0
		model.scrollOffset = 0
		if len(model.bookings) == 0 {
			model.notice = "No bookings found for this phone number"
			model.noticeIsError = false
		} else {
			model.listFocused = true
		}
		return model, nil

	case cancelResultMsg:
		model.cancelBusy = false
		if message.err != nil {
			model.notice = serviceErrorMessage(message.err, "Failed to cancel booking")
			model.noticeIsError = true
			return model, nil
		}
		// Patch the local copy rather than re-fetching; the server
		// already confirmed the new status.
		model.bookings = ApplyCancellation(model.bookings, message.bookingID)
		model.notice = "Booking cancelled successfully"
		model.noticeIsError = false
		model.fadeGeneration++
		generation := model.fadeGeneration
		return model, tea.Tick(cancelNoticeDuration, func(time.Time) tea.Msg {
			return successFadeMsg{generation: generation}
		})

	case successFadeMsg:
		if message.generation != model.fadeGeneration {
			return model, nil
		}
		if !model.noticeIsError {
			model.notice = ""
		}
		return model, nil
	}
	return model, nil
}

func (model BookingsModel) handleKey(message tea.KeyMsg) (BookingsModel, tea.Cmd) {
	// An open confirmation modal captures all input.
	if model.confirm != nil {
		confirmed, dismissed := model.confirm.Update(message)
		if confirmed {
			bookingID := model.pendingCancelID
			model.confirm = nil
			model.pendingCancelID = ""
			return model.startCancel(bookingID)
		}
		if dismissed {
			model.confirm = nil
			model.pendingCancelID = ""
		}
		return model, nil
	}

	switch {
	case key.Matches(message, model.keys.Back):
		if model.listFocused {
			model.listFocused = false
		} else {
			model.blurred = true
		}
		return model, nil

	case key.Matches(message, model.keys.NextField), key.Matches(message, model.keys.PrevField):
		model.blurred = false
		if len(model.bookings) > 0 {
			model.listFocused = !model.listFocused
		}
		return model, nil

	case key.Matches(message, model.keys.Up):
		if model.listFocused && model.cursor > 0 {
			model.cursor--
			model.clampScroll()
		}
		return model, nil

	case key.Matches(message, model.keys.Down):
		if model.listFocused && model.cursor < len(model.bookings)-1 {
			model.cursor++
			model.clampScroll()
		}
		return model, nil

	case key.Matches(message, model.keys.Submit):
		if model.listFocused {
			return model.requestCancel()
		}
		return model.startLookup()
	}

	if !model.listFocused && !model.blurred {
		model.phone.Update(message)
	}
	return model, nil
}

// startLookup validates the phone field and fetches bookings for
// it. A phone that is obviously too short never reaches the network.
// An in-flight cancel also blocks: the view runs one request at a
// time.
func (model BookingsModel) startLookup() (BookingsModel, tea.Cmd) {
	if model.busy || model.cancelBusy {
		return model, nil
	}

	model.notice = ""
	model.noticeIsError = false
	model.bookings = nil
	model.cursor = 0
	model.scrollOffset = 0
	model.listFocused = false
	model.blurred = false

	phone := strings.TrimSpace(model.phone.Value())
	if len(phone) < 10 {
		model.notice = "Please enter a valid phone number"
		model.noticeIsError = true
		return model, nil
	}

	model.busy = true
	service := model.service
	return model, func() tea.Msg {
		bookings, err := service.BookingsByPhone(context.Background(), phone)
		return bookingsResultMsg{bookings: bookings, err: err}
	}
}

// requestCancel opens the confirmation modal for the booking under
// the cursor. Cancelled bookings cannot be cancelled again.
func (model BookingsModel) requestCancel() (BookingsModel, tea.Cmd) {
	if model.cancelBusy || model.cursor >= len(model.bookings) {
		return model, nil
	}
	booking := model.bookings[model.cursor]
	if booking.Status != busapi.StatusActive {
		return model, nil
	}

	modal := NewConfirmModal(
		"Cancel this booking?",
		fmt.Sprintf("%s  %s → %s on %s", booking.BusProvider, booking.FromDistrict, booking.ToDistrict, booking.TravelDate),
	)
	model.confirm = &modal
	model.pendingCancelID = booking.ID
	return model, nil
}

func (model BookingsModel) startCancel(bookingID string) (BookingsModel, tea.Cmd) {
	model.cancelBusy = true
	service := model.service
	return model, func() tea.Msg {
		ack, err := service.CancelBooking(context.Background(), bookingID)
		if err != nil {
			return cancelResultMsg{bookingID: bookingID, err: err}
		}
		return cancelResultMsg{bookingID: bookingID, ack: *ack}
	}
}

const bookingsVisibleRows = 8

func (model *BookingsModel) clampScroll() {
	if model.cursor < model.scrollOffset {
		model.scrollOffset = model.cursor
	}
	if model.cursor >= model.scrollOffset+bookingsVisibleRows {
		model.scrollOffset = model.cursor - bookingsVisibleRows + 1
	}
}

// View renders the bookings view.
func (model BookingsModel) View(width, height int) string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(model.theme.AccentForeground)
	labelStyle := lipgloss.NewStyle().Foreground(model.theme.FaintText).Width(8)
	faintStyle := lipgloss.NewStyle().Foreground(model.theme.FaintText)
	focusMarker := lipgloss.NewStyle().Foreground(model.theme.AccentForeground)

	var sections []string
	sections = append(sections, titleStyle.Render("My Bookings"))
	sections = append(sections, "")

	phoneFocused := !model.listFocused && !model.blurred
	marker := "  "
	if phoneFocused {
		marker = focusMarker.Render("> ")
	}
	sections = append(sections, marker+labelStyle.Render("Phone:")+
		model.phone.View(model.theme, width-12, phoneFocused))
	sections = append(sections, "")

	if model.busy {
		sections = append(sections, faintStyle.Render("Loading bookings..."))
	} else if model.cancelBusy {
		sections = append(sections, faintStyle.Render("Cancelling..."))
	} else if model.notice != "" {
		noticeColor := model.theme.SuccessText
		if model.noticeIsError {
			noticeColor = model.theme.ErrorText
		} else if model.notice != "Booking cancelled successfully" {
			noticeColor = model.theme.NoticeText
		}
		sections = append(sections, lipgloss.NewStyle().Foreground(noticeColor).Render(model.notice))
	}

	if len(model.bookings) > 0 {
		sections = append(sections, model.renderBookings(width))
		if model.listFocused && model.cursor < len(model.bookings) &&
			model.bookings[model.cursor].Status == busapi.StatusActive {
			sections = append(sections, "")
			sections = append(sections, faintStyle.Render("enter to cancel the selected booking"))
		}
	}

	view := strings.Join(sections, "\n")
	if model.confirm != nil {
		lines, anchorX, anchorY := model.confirm.Render(model.theme, width, height)
		view = SpliceOverlay(view, lines, anchorX, anchorY)
	}
	return view
}

func (model BookingsModel) renderBookings(width int) string {
	rowWidth := width - 2
	normalStyle := lipgloss.NewStyle().Foreground(model.theme.NormalText).Width(rowWidth).MaxWidth(rowWidth)
	selectedStyle := lipgloss.NewStyle().
		Background(model.theme.SelectedBackground).
		Foreground(model.theme.SelectedForeground).
		Width(rowWidth).MaxWidth(rowWidth)

	var rows []string
	for index := model.scrollOffset; index < model.scrollOffset+bookingsVisibleRows && index < len(model.bookings); index++ {
		booking := model.bookings[index]
		statusStyle := lipgloss.NewStyle().Foreground(model.theme.StatusColor(booking.Status))
		line := fmt.Sprintf("%-20s %s → %s  %s  ", booking.BusProvider,
			booking.FromDistrict, booking.ToDistrict, booking.TravelDate)
		if index == model.cursor && model.listFocused {
			rows = append(rows, selectedStyle.Render(line+string(booking.Status)))
		} else {
			rows = append(rows, normalStyle.Render(line)+statusStyle.Render(string(booking.Status)))
		}
	}

	scrollbar := RenderScrollbar(model.theme, len(rows),
		len(model.bookings), bookingsVisibleRows, model.scrollOffset,
		model.listFocused)

	return lipgloss.JoinHorizontal(lipgloss.Top, strings.Join(rows, "\n"), scrollbar)
}
