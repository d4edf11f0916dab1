// Copyright 2026 The Paribahan Authors
// SPDX-License-Identifier: Apache-2.0

// Package busui implements the paribahan terminal user interface.
// Built on bubbletea (Elm architecture), it provides three views
// (bus search, my bookings, and the provider assistant) plus the
// booking form reached from search results. Each view owns its own
// state machine.
//
// Views talk to the booking service through the [Service] interface,
// satisfied by the busapi client in production and by in-memory fakes
// in tests. Every remote call runs as a tea.Cmd and delivers its
// result as a message; the triggering control is disabled while the
// call is in flight, so each view has at most one request
// outstanding and its transcript/result state is updated in call
// order.
//
// Data flow:
//
//	[booking service over HTTP]
//	        | (Service interface)
//	    [Model] <- bubbletea event loop
//	        |
//	  [terminal output]
package busui
