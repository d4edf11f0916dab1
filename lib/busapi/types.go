// Copyright 2026 The Paribahan Authors
// SPDX-License-Identifier: Apache-2.0

package busapi

import (
	"encoding/json"
	"fmt"
	"regexp"
	"time"
	"unicode/utf8"
)

// District is one of the fixed origin/destination units the service
// knows routes between. The service validates district names on
// search; the client restricts input to this list up front so a
// search can never fail on an unknown district.
type District string

// The supported districts, in display order.
const (
	Dhaka      District = "Dhaka"
	Chattogram District = "Chattogram"
	Khulna     District = "Khulna"
	Rajshahi   District = "Rajshahi"
	Sylhet     District = "Sylhet"
	Barishal   District = "Barishal"
	Rangpur    District = "Rangpur"
	Mymensingh District = "Mymensingh"
	Comilla    District = "Comilla"
	Bogra      District = "Bogra"
)

// Districts returns the fixed ordered list of supported districts.
// The order matches the service's seed data and is the order the
// selection dropdowns present.
func Districts() []District {
	return []District{
		Dhaka, Chattogram, Khulna, Rajshahi, Sylhet,
		Barishal, Rangpur, Mymensingh, Comilla, Bogra,
	}
}

// IsValid reports whether the district is one of the supported names.
func (district District) IsValid() bool {
	for _, known := range Districts() {
		if district == known {
			return true
		}
	}
	return false
}

// BusOffer is one provider's service on a searched route. Offers are
// produced only by [Client.SearchBuses], returned in service order,
// and never modified by the client.
type BusOffer struct {
	ProviderName string `json:"provider_name"`
	FromDistrict string `json:"from_district"`
	ToDistrict   string `json:"to_district"`
	DropPoint    string `json:"drop_point"`
	Price        int    `json:"price"`
}

// BookingStatus is the lifecycle state of a booking. The only
// transition is active to cancelled; cancelled is terminal.
type BookingStatus string

const (
	// StatusActive is a live booking that can still be cancelled.
	StatusActive BookingStatus = "active"
	// StatusCancelled is the terminal state after a cancel request.
	StatusCancelled BookingStatus = "cancelled"
)

// Booking is a confirmed reservation as the service holds it. The
// client never constructs one: bookings arrive from the service and
// the only local mutation is mirroring the status after a cancel
// acknowledgment.
type Booking struct {
	ID           string        `json:"id"`
	UserName     string        `json:"user_name"`
	Phone        string        `json:"phone"`
	FromDistrict string        `json:"from_district"`
	ToDistrict   string        `json:"to_district"`
	BusProvider  string        `json:"bus_provider"`
	TravelDate   string        `json:"travel_date"`
	BookingDate  time.Time     `json:"booking_date"`
	Status       BookingStatus `json:"status"`
}

// wireID decodes a booking identifier. The service emits integer IDs
// from its database; the client holds them as opaque strings, so both
// a JSON number and a JSON string are accepted.
type wireID string

func (id *wireID) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return err
		}
		*id = wireID(text)
		return nil
	}
	var number json.Number
	if err := json.Unmarshal(data, &number); err != nil {
		return fmt.Errorf("booking id must be a number or string: %w", err)
	}
	*id = wireID(number.String())
	return nil
}

// wireDateTime decodes the service's timestamps. The service stores
// naive UTC datetimes and emits them without a zone offset
// ("2026-03-10T12:00:00"), which the RFC 3339 decoder rejects; both
// forms are accepted and a missing offset means UTC.
type wireDateTime time.Time

func (moment *wireDateTime) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var text string
	if err := json.Unmarshal(data, &text); err != nil {
		return err
	}
	parsed, err := time.Parse(time.RFC3339, text)
	if err != nil {
		parsed, err = time.Parse("2006-01-02T15:04:05", text)
	}
	if err != nil {
		return fmt.Errorf("unrecognized timestamp %q", text)
	}
	*moment = wireDateTime(parsed)
	return nil
}

// UnmarshalJSON decodes a booking from the service's wire shape,
// tolerating integer IDs and offset-less timestamps.
func (booking *Booking) UnmarshalJSON(data []byte) error {
	var wire struct {
		ID           wireID        `json:"id"`
		UserName     string        `json:"user_name"`
		Phone        string        `json:"phone"`
		FromDistrict string        `json:"from_district"`
		ToDistrict   string        `json:"to_district"`
		BusProvider  string        `json:"bus_provider"`
		TravelDate   string        `json:"travel_date"`
		BookingDate  wireDateTime  `json:"booking_date"`
		Status       BookingStatus `json:"status"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	*booking = Booking{
		ID:           string(wire.ID),
		UserName:     wire.UserName,
		Phone:        wire.Phone,
		FromDistrict: wire.FromDistrict,
		ToDistrict:   wire.ToDistrict,
		BusProvider:  wire.BusProvider,
		TravelDate:   wire.TravelDate,
		BookingDate:  time.Time(wire.BookingDate),
		Status:       wire.Status,
	}
	return nil
}

// phonePattern matches the service's phone constraint: an optional
// leading plus followed by 10 to 15 digits.
var phonePattern = regexp.MustCompile(`^\+?[0-9]{10,15}$`)

// ValidPhone reports whether phone satisfies the service's phone
// number constraint.
func ValidPhone(phone string) bool {
	return phonePattern.MatchString(phone)
}

// travelDateLayout is the wire format for travel dates.
const travelDateLayout = "2006-01-02"

// BookingRequest is the payload for creating a booking. Route fields
// are copied from the selected [BusOffer]; the rest comes from the
// booking form.
type BookingRequest struct {
	UserName     string `json:"user_name"`
	Phone        string `json:"phone"`
	FromDistrict string `json:"from_district"`
	ToDistrict   string `json:"to_district"`
	BusProvider  string `json:"bus_provider"`
	TravelDate   string `json:"travel_date"`
}

// Validate checks the request against the service's constraints so
// that a request known to be rejected is never sent: name at least
// two characters, phone in the digit/plus pattern, travel date in
// YYYY-MM-DD and not before today. The today parameter is injected
// so callers (and tests) control the clock.
func (request BookingRequest) Validate(today time.Time) error {
	if utf8.RuneCountInString(request.UserName) < 2 {
		return fmt.Errorf("user name must be at least 2 characters")
	}
	if !ValidPhone(request.Phone) {
		return fmt.Errorf("phone must be 10-15 digits with optional leading +")
	}
	// Parse in today's zone: comparing a UTC-midnight travel date
	// against a local start-of-day rejects today's date anywhere
	// west of UTC.
	travelDate, err := time.ParseInLocation(travelDateLayout, request.TravelDate, today.Location())
	if err != nil {
		return fmt.Errorf("travel date must be in YYYY-MM-DD format")
	}
	startOfToday := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())
	if travelDate.Before(startOfToday) {
		return fmt.Errorf("travel date cannot be in the past")
	}
	return nil
}

// CancelAck is the service's acknowledgment of a cancel request. The
// client treats it as authoritative and patches the local copy of the
// booking rather than re-fetching the list.
type CancelAck struct {
	Message   string `json:"message"`
	BookingID string `json:"booking_id"`
}

// UnmarshalJSON decodes the acknowledgment, accepting the service's
// integer booking ID as well as a string.
func (ack *CancelAck) UnmarshalJSON(data []byte) error {
	var wire struct {
		Message   string `json:"message"`
		BookingID wireID `json:"booking_id"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	*ack = CancelAck{Message: wire.Message, BookingID: string(wire.BookingID)}
	return nil
}

// Answer is the question-answering response: formatted markdown text
// plus the documents it was drawn from.
type Answer struct {
	Answer  string   `json:"answer"`
	Sources []string `json:"sources,omitempty"`
}

// Provider is a bus operator known to the service.
type Provider struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}
