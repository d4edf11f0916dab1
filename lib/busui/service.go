// Copyright 2026 The Paribahan Authors
// SPDX-License-Identifier: Apache-2.0

package busui

import (
	"context"
	"errors"

	"github.com/paribahan/paribahan/lib/busapi"
)

// Service abstracts the booking service for the TUI. [busapi.Client]
// implements it; tests substitute in-memory fakes so controller
// behavior can be checked without a network.
type Service interface {
	// SearchBuses returns the offers for a route, in service order.
	// A maxPrice of zero or less means no price filter.
	SearchBuses(ctx context.Context, from, to busapi.District, maxPrice int) ([]busapi.BusOffer, error)

	// CreateBooking submits a booking and returns the created record.
	CreateBooking(ctx context.Context, request busapi.BookingRequest) (*busapi.Booking, error)

	// BookingsByPhone returns every booking under a phone number.
	BookingsByPhone(ctx context.Context, phone string) ([]busapi.Booking, error)

	// CancelBooking cancels a booking and returns the acknowledgment.
	CancelBooking(ctx context.Context, bookingID string) (*busapi.CancelAck, error)

	// AskQuestion answers a free-form question about providers and
	// routes.
	AskQuestion(ctx context.Context, question string) (*busapi.Answer, error)
}

// serviceErrorMessage extracts the user-facing message for a failed
// remote call: the service's own detail message when it sent one,
// otherwise the caller's fallback. Transport errors (connection
// refused, timeouts) always use the fallback; their Go error text is
// not something to put in front of a user.
func serviceErrorMessage(err error, fallback string) string {
	var apiError *busapi.APIError
	if errors.As(err, &apiError) && apiError.Detail != "" {
		return apiError.Detail
	}
	return fallback
}
