// Copyright 2026 The Paribahan Authors
// SPDX-License-Identifier: Apache-2.0

package busui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/paribahan/paribahan/lib/busapi"
)

func newTestModel(service Service) Model {
	model := NewModel(service)
	updated, _ := model.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return updated.(Model)
}

func TestModelViewSwitching(t *testing.T) {
	t.Parallel()
	model := newTestModel(&fakeService{})

	// The search view's default focus is the from selector, so the
	// digit keys reach the view switcher.
	updated, _ := model.Update(keyRunes("2"))
	model = updated.(Model)
	if model.active != ViewBookings {
		t.Fatalf("active = %v, want ViewBookings", model.active)
	}

	// The bookings phone field has focus now; "3" must be typed, not
	// switch views.
	updated, _ = model.Update(keyRunes("3"))
	model = updated.(Model)
	if model.active != ViewBookings {
		t.Fatal("digit should go to the phone field, not switch views")
	}
	if model.bookings.phone.Value() != "3" {
		t.Errorf("phone = %q, want the typed digit", model.bookings.phone.Value())
	}

	// Esc blurs the field, after which digits switch views again.
	updated, _ = model.Update(keyEsc())
	model = updated.(Model)
	updated, _ = model.Update(keyRunes("3"))
	model = updated.(Model)
	if model.active != ViewAssistant {
		t.Errorf("active = %v, want ViewAssistant", model.active)
	}
}

func TestModelOfferSelectionOpensForm(t *testing.T) {
	t.Parallel()
	offer := busapi.BusOffer{ProviderName: "Green Line", FromDistrict: "Dhaka", ToDistrict: "Khulna", Price: 700}
	model := newTestModel(&fakeService{})

	updated, _ := model.Update(offerSelectedMsg{offer: offer})
	model = updated.(Model)

	if model.bookingForm == nil {
		t.Fatal("selecting an offer should open the booking form")
	}
	if model.bookingForm.offer != offer {
		t.Errorf("form offer = %+v", model.bookingForm.offer)
	}
}

func TestModelBookingDoneResetsSearch(t *testing.T) {
	t.Parallel()
	model := newTestModel(&fakeService{})
	model.search.from = busapi.Dhaka
	model.search.offers = []busapi.BusOffer{{ProviderName: "Hanif Bus"}}

	updated, _ := model.Update(offerSelectedMsg{offer: model.search.offers[0]})
	model = updated.(Model)
	updated, _ = model.Update(bookingDoneMsg{})
	model = updated.(Model)

	if model.bookingForm != nil {
		t.Error("form should close when the booking flow finishes")
	}
	if model.search.from != "" || len(model.search.offers) != 0 {
		t.Error("search should reset when the booking flow finishes")
	}
}

func TestModelBackingOutKeepsResults(t *testing.T) {
	t.Parallel()
	model := newTestModel(&fakeService{})
	model.search.offers = []busapi.BusOffer{{ProviderName: "Hanif Bus"}}

	updated, _ := model.Update(offerSelectedMsg{offer: model.search.offers[0]})
	model = updated.(Model)
	updated, _ = model.Update(bookingCancelledMsg{})
	model = updated.(Model)

	if model.bookingForm != nil {
		t.Error("form should close when the user backs out")
	}
	if len(model.search.offers) != 1 {
		t.Error("search results should survive backing out of the form")
	}
}

func TestModelRoutesResultsToOwner(t *testing.T) {
	t.Parallel()
	// A slow answer must reach the assistant even when another view
	// is showing.
	model := newTestModel(&fakeService{})
	model.assistant.turns = []ConversationTurn{{Role: "user", Content: "q"}}
	model.assistant.busy = true
	model.active = ViewSearch

	updated, _ := model.Update(askResultMsg{answer: "a"})
	model = updated.(Model)

	if len(model.assistant.turns) != 2 {
		t.Errorf("assistant turns = %d, want 2", len(model.assistant.turns))
	}
	if model.assistant.busy {
		t.Error("assistant busy should clear")
	}
}

func TestModelStaleFormMessagesDropped(t *testing.T) {
	t.Parallel()
	model := newTestModel(&fakeService{})

	// No form is open; a leftover advance tick must be a no-op.
	updated, command := model.Update(bookingAdvanceMsg{generation: 1})
	model = updated.(Model)
	if command != nil {
		t.Error("advance tick without a form must be ignored")
	}
	if model.bookingForm != nil {
		t.Error("no form should appear")
	}
}

func TestModelQuit(t *testing.T) {
	t.Parallel()
	model := newTestModel(&fakeService{})

	_, command := model.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if command == nil {
		t.Fatal("ctrl+c should quit")
	}
	if message := command(); message != (tea.QuitMsg{}) {
		t.Errorf("message = %T, want tea.QuitMsg", message)
	}
}

func TestModelQKeyQuitsOnlyWhenUnfocused(t *testing.T) {
	t.Parallel()
	model := newTestModel(&fakeService{})

	// Search view, selector focus: q quits.
	_, command := model.Update(keyRunes("q"))
	if command == nil {
		t.Fatal("q should quit when no text field has focus")
	}

	// Bookings phone field has focus: q is typed, not quit.
	updated, _ := model.Update(keyRunes("2"))
	model = updated.(Model)
	updated, command = model.Update(keyRunes("q"))
	model = updated.(Model)
	if command != nil {
		t.Error("q must not quit while a text field has focus")
	}
	if model.bookings.phone.Value() != "q" {
		t.Errorf("phone = %q, want the typed q", model.bookings.phone.Value())
	}
}

func TestModelViewRendersWithoutSize(t *testing.T) {
	t.Parallel()
	model := NewModel(&fakeService{})
	if view := model.View(); view == "" {
		t.Error("view must render a placeholder before the first size message")
	}
}
