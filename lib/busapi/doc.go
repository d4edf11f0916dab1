// Copyright 2026 The Paribahan Authors
// SPDX-License-Identifier: Apache-2.0

// Package busapi is the client for the bus-ticket marketplace service.
// It covers the five operations the terminal UI needs: searching
// routes, creating a booking, listing bookings by phone, cancelling a
// booking, and asking the provider assistant a question, plus the
// provider directory.
//
// The package also holds the domain types shared between the client
// and the UI ([District], [BusOffer], [Booking]) and the client-side
// validation that mirrors the service's constraints
// ([BookingRequest.Validate], [ValidPhone]), so forms can reject bad
// input without a round trip.
//
// Service failures carry the service's own message when it sent one:
//
//	offers, err := client.SearchBuses(ctx, busapi.Dhaka, busapi.Sylhet, 500)
//	var apiErr *busapi.APIError
//	if errors.As(err, &apiErr) {
//	    show(apiErr.Detail)
//	}
package busapi
