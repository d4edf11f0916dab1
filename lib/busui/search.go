// Copyright 2026 The Paribahan Authors
// SPDX-License-Identifier: Apache-2.0

package busui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/paribahan/paribahan/lib/busapi"
)

// searchFocus identifies which control in the search view has
// keyboard focus.
type searchFocus int

const (
	// focusFrom is the origin district selector.
	focusFrom searchFocus = iota
	// focusTo is the destination district selector.
	focusTo
	// focusMaxPrice is the optional price cap text field.
	focusMaxPrice
	// focusOffers means navigation keys move the result list cursor.
	focusOffers
)

// searchResultMsg delivers the outcome of an asynchronous bus search.
type searchResultMsg struct {
	offers []busapi.BusOffer
	err    error
}

// offerSelectedMsg tells the top-level model that the user picked an
// offer to book. The offer travels by value; the booking form owns
// its copy from here on.
type offerSelectedMsg struct {
	offer busapi.BusOffer
}

// SearchModel owns the route search view: the from/to/price inputs,
// the result list, and the transition into booking. It resets to its
// initial state when a booking completes.
type SearchModel struct {
	service Service
	theme   Theme
	keys    KeyMap

	from     busapi.District
	to       busapi.District
	maxPrice TextField

	focus    searchFocus
	dropdown *DropdownOverlay

	offers       []busapi.BusOffer
	cursor       int
	scrollOffset int

	busy bool
	// notice is the inline feedback line: validation errors, service
	// failures, and the "no buses" empty-result notice all render
	// here. noticeIsError distinguishes the styling.
	notice        string
	noticeIsError bool
}

// NewSearchModel creates a SearchModel in its initial state.
func NewSearchModel(service Service, theme Theme, keys KeyMap) SearchModel {
	model := SearchModel{
		service: service,
		theme:   theme,
		keys:    keys,
	}
	model.maxPrice.Placeholder = "no limit"
	return model
}

// Reset returns the search view to its initial state: no query, no
// results, no notice. Called when a booking completes so the next
// search starts clean.
func (model SearchModel) Reset() SearchModel {
	return NewSearchModel(model.service, model.theme, model.keys)
}

// textFocused reports whether a text field is capturing keystrokes.
func (model SearchModel) textFocused() bool {
	return model.focus == focusMaxPrice && model.dropdown == nil
}

// Update processes a message for the search view.
func (model SearchModel) Update(message tea.Msg) (SearchModel, tea.Cmd) {
	switch message := message.(type) {
	case tea.KeyMsg:
		return model.handleKey(message)

	case searchResultMsg:
		model.busy = false
		if message.err != nil {
			model.notice = serviceErrorMessage(message.err, "Failed to search buses")
			model.noticeIsError = true
			return model, nil
		}
		model.offers = message.offers
		model.cursor = 0
		model.scrollOffset = 0
		if len(model.offers) == 0 {
			// A valid search with zero hits is a notice, not an
			// error: nothing failed and the user may search again.
			model.notice = "No buses found for this route"
			model.noticeIsError = false
		} else {
			model.focus = focusOffers
		}
		return model, nil
	}
	return model, nil
}

func (model SearchModel) handleKey(message tea.KeyMsg) (SearchModel, tea.Cmd) {
	// An open district dropdown captures all input.
	if model.dropdown != nil {
		return model.handleDropdownKey(message)
	}

	switch {
	case key.Matches(message, model.keys.NextField):
		model.focus = model.nextFocus(1)
		return model, nil

	case key.Matches(message, model.keys.PrevField):
		model.focus = model.nextFocus(-1)
		return model, nil

	case key.Matches(message, model.keys.Back):
		if model.focus == focusMaxPrice {
			model.focus = focusFrom
		}
		return model, nil

	case key.Matches(message, model.keys.Up):
		if model.focus == focusOffers && model.cursor > 0 {
			model.cursor--
			model.clampScroll()
		}
		return model, nil

	case key.Matches(message, model.keys.Down):
		if model.focus == focusOffers && model.cursor < len(model.offers)-1 {
			model.cursor++
			model.clampScroll()
		}
		return model, nil

	case key.Matches(message, model.keys.Submit):
		return model.handleSubmit()
	}

	if model.focus == focusMaxPrice {
		model.maxPrice.Update(message)
	}
	return model, nil
}

// handleSubmit runs the enter action for the current focus: open a
// district dropdown, run the search, or select an offer for booking.
func (model SearchModel) handleSubmit() (SearchModel, tea.Cmd) {
	switch model.focus {
	case focusFrom, focusTo:
		model.dropdown = model.districtDropdown()
		return model, nil

	case focusMaxPrice:
		return model.startSearch()

	case focusOffers:
		if model.busy || model.cursor >= len(model.offers) {
			return model, nil
		}
		offer := model.offers[model.cursor]
		return model, func() tea.Msg { return offerSelectedMsg{offer: offer} }
	}
	return model, nil
}

// districtDropdown builds the dropdown overlay for the focused
// district selector, anchored next to its form row.
func (model SearchModel) districtDropdown() *DropdownOverlay {
	fieldName := "from"
	current := model.from
	anchorY := searchFormTop
	if model.focus == focusTo {
		fieldName = "to"
		current = model.to
		anchorY = searchFormTop + 1
	}

	dropdown := &DropdownOverlay{
		Field:   fieldName,
		AnchorX: searchLabelWidth,
		AnchorY: anchorY,
	}
	for index, district := range busapi.Districts() {
		dropdown.Options = append(dropdown.Options, DropdownOption{
			Label: string(district),
			Value: string(district),
		})
		if district == current {
			dropdown.Cursor = index
		}
	}
	return dropdown
}

func (model SearchModel) handleDropdownKey(message tea.KeyMsg) (SearchModel, tea.Cmd) {
	switch message.Type {
	case tea.KeyEsc:
		model.dropdown = nil
	case tea.KeyUp:
		model.dropdown.MoveUp()
	case tea.KeyDown:
		model.dropdown.MoveDown()
	case tea.KeyEnter:
		selected := busapi.District(model.dropdown.Selected().Value)
		if model.dropdown.Field == "from" {
			model.from = selected
		} else {
			model.to = selected
		}
		model.dropdown = nil
	}
	return model, nil
}

// startSearch validates the query and launches the remote search.
// Validation failures never reach the network: the notice is set and
// the service is not called.
func (model SearchModel) startSearch() (SearchModel, tea.Cmd) {
	if model.busy {
		return model, nil
	}

	model.notice = ""
	model.noticeIsError = false
	model.offers = nil
	model.cursor = 0
	model.scrollOffset = 0

	if model.from == "" || model.to == "" {
		model.notice = "Please select both origin and destination districts"
		model.noticeIsError = true
		return model, nil
	}
	if model.from == model.to {
		model.notice = "Origin and destination must be different"
		model.noticeIsError = true
		return model, nil
	}

	maxPrice := 0
	if priceText := strings.TrimSpace(model.maxPrice.Value()); priceText != "" {
		parsed, err := strconv.Atoi(priceText)
		if err != nil || parsed < 0 {
			model.notice = "Max price must be a non-negative number"
			model.noticeIsError = true
			return model, nil
		}
		maxPrice = parsed
	}

	model.busy = true
	from, to := model.from, model.to
	service := model.service
	return model, func() tea.Msg {
		offers, err := service.SearchBuses(context.Background(), from, to, maxPrice)
		return searchResultMsg{offers: offers, err: err}
	}
}

// nextFocus cycles focus through the form controls and, when results
// exist, the offer list.
func (model SearchModel) nextFocus(direction int) searchFocus {
	order := []searchFocus{focusFrom, focusTo, focusMaxPrice}
	if len(model.offers) > 0 {
		order = append(order, focusOffers)
	}
	current := 0
	for index, focus := range order {
		if focus == model.focus {
			current = index
		}
	}
	next := (current + direction + len(order)) % len(order)
	return order[next]
}

func (model *SearchModel) clampScroll() {
	visible := searchVisibleRows
	if model.cursor < model.scrollOffset {
		model.scrollOffset = model.cursor
	}
	if model.cursor >= model.scrollOffset+visible {
		model.scrollOffset = model.cursor - visible + 1
	}
}

// Layout constants for the search view. The form occupies a fixed
// header region; the offer list scrolls below it.
const (
	searchFormTop     = 2
	searchLabelWidth  = 14
	searchVisibleRows = 8
)

// View renders the search view at the given width and height.
func (model SearchModel) View(width, height int) string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(model.theme.AccentForeground)
	labelStyle := lipgloss.NewStyle().Foreground(model.theme.FaintText).Width(searchLabelWidth)
	valueStyle := lipgloss.NewStyle().Foreground(model.theme.NormalText)
	focusMarker := lipgloss.NewStyle().Foreground(model.theme.AccentForeground)

	var sections []string
	sections = append(sections, titleStyle.Render("Search Buses"))
	sections = append(sections, "")

	renderSelector := func(label string, value busapi.District, focused bool) string {
		marker := "  "
		if focused {
			marker = focusMarker.Render("> ")
		}
		display := "(select)"
		if value != "" {
			display = string(value)
		}
		return marker + labelStyle.Render(label) + valueStyle.Render(display)
	}

	sections = append(sections, renderSelector("From:", model.from, model.focus == focusFrom))
	sections = append(sections, renderSelector("To:", model.to, model.focus == focusTo))

	priceMarker := "  "
	if model.focus == focusMaxPrice {
		priceMarker = focusMarker.Render("> ")
	}
	fieldWidth := width - searchLabelWidth - 4
	sections = append(sections, priceMarker+labelStyle.Render("Max price:")+
		model.maxPrice.View(model.theme, fieldWidth, model.focus == focusMaxPrice))
	sections = append(sections, "")

	if model.busy {
		sections = append(sections, lipgloss.NewStyle().Foreground(model.theme.FaintText).Render("Searching..."))
	} else if model.notice != "" {
		noticeColor := model.theme.NoticeText
		if model.noticeIsError {
			noticeColor = model.theme.ErrorText
		}
		sections = append(sections, lipgloss.NewStyle().Foreground(noticeColor).Render(model.notice))
	}

	if len(model.offers) > 0 {
		countLabel := "bus"
		if len(model.offers) > 1 {
			countLabel = "buses"
		}
		sections = append(sections, lipgloss.NewStyle().
			Foreground(model.theme.HeaderForeground).
			Render(fmt.Sprintf("Found %d %s", len(model.offers), countLabel)))
		sections = append(sections, model.renderOffers(width))
	}

	view := strings.Join(sections, "\n")
	if model.dropdown != nil {
		view = SpliceOverlay(view, model.dropdown.Render(model.theme), model.dropdown.AnchorX, model.dropdown.AnchorY)
	}
	return view
}

// renderOffers renders the scrolling offer list with a scrollbar.
func (model SearchModel) renderOffers(width int) string {
	rowWidth := width - 2
	normalStyle := lipgloss.NewStyle().Foreground(model.theme.NormalText).Width(rowWidth).MaxWidth(rowWidth)
	selectedStyle := lipgloss.NewStyle().
		Background(model.theme.SelectedBackground).
		Foreground(model.theme.SelectedForeground).
		Width(rowWidth).MaxWidth(rowWidth)
	priceStyle := lipgloss.NewStyle().Foreground(model.theme.AccentForeground)

	visible := searchVisibleRows
	var rows []string
	for index := model.scrollOffset; index < model.scrollOffset+visible && index < len(model.offers); index++ {
		offer := model.offers[index]
		line := fmt.Sprintf("%-20s %s → %s  drop: %-18s ",
			offer.ProviderName, offer.FromDistrict, offer.ToDistrict, offer.DropPoint)
		price := priceStyle.Render(fmt.Sprintf("৳%d", offer.Price))
		if index == model.cursor && model.focus == focusOffers {
			rows = append(rows, selectedStyle.Render(line+fmt.Sprintf("৳%d", offer.Price)))
		} else {
			rows = append(rows, normalStyle.Render(line)+price)
		}
	}

	scrollbar := RenderScrollbar(model.theme, len(rows),
		len(model.offers), visible, model.scrollOffset,
		model.focus == focusOffers)

	return lipgloss.JoinHorizontal(lipgloss.Top, strings.Join(rows, "\n"), scrollbar)
}
