// Copyright 2026 The Paribahan Authors
// SPDX-License-Identifier: Apache-2.0

package busapi

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDistrictIsValid(t *testing.T) {
	t.Parallel()

	if !Dhaka.IsValid() {
		t.Error("Dhaka.IsValid() = false, want true")
	}
	if District("Narnia").IsValid() {
		t.Error(`District("Narnia").IsValid() = true, want false`)
	}
	if District("").IsValid() {
		t.Error("empty district reported valid")
	}
}

func TestDistrictsOrder(t *testing.T) {
	t.Parallel()

	districts := Districts()
	if len(districts) != 10 {
		t.Fatalf("got %d districts, want 10", len(districts))
	}
	if districts[0] != Dhaka || districts[9] != Bogra {
		t.Errorf("district order changed: first=%s last=%s", districts[0], districts[9])
	}
}

func TestValidPhone(t *testing.T) {
	t.Parallel()

	cases := []struct {
		phone string
		want  bool
	}{
		{"01712345678", true},
		{"+8801712345678", true},
		{"017123456", false},       // 9 digits, too short
		{"0171234567890123", false}, // 16 digits, too long
		{"01712-45678", false},
		{"", false},
		{"+", false},
	}
	for _, testCase := range cases {
		if got := ValidPhone(testCase.phone); got != testCase.want {
			t.Errorf("ValidPhone(%q) = %v, want %v", testCase.phone, got, testCase.want)
		}
	}
}

func TestBookingRequestValidate(t *testing.T) {
	t.Parallel()

	today := time.Date(2026, time.March, 15, 9, 30, 0, 0, time.UTC)
	valid := BookingRequest{
		UserName:     "Ana",
		Phone:        "01712345678",
		FromDistrict: "Dhaka",
		ToDistrict:   "Sylhet",
		BusProvider:  "Green Line",
		TravelDate:   "2099-01-01",
	}

	if err := valid.Validate(today); err != nil {
		t.Errorf("valid request rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*BookingRequest)
	}{
		{"short name", func(request *BookingRequest) { request.UserName = "A" }},
		{"empty name", func(request *BookingRequest) { request.UserName = "" }},
		{"short phone", func(request *BookingRequest) { request.Phone = "0171234" }},
		{"bad date format", func(request *BookingRequest) { request.TravelDate = "01/01/2099" }},
		{"past date", func(request *BookingRequest) { request.TravelDate = "2026-03-14" }},
	}
	for _, testCase := range cases {
		t.Run(testCase.name, func(t *testing.T) {
			request := valid
			testCase.mutate(&request)
			if err := request.Validate(today); err == nil {
				t.Error("Validate accepted invalid request")
			}
		})
	}
}

func TestBookingRequestValidateTodayIsValid(t *testing.T) {
	t.Parallel()

	// Travel on the current date is allowed; only strictly past dates
	// are rejected, regardless of the time of day "now" is.
	today := time.Date(2026, time.March, 15, 23, 45, 0, 0, time.UTC)
	request := BookingRequest{
		UserName:   "Ana",
		Phone:      "01712345678",
		TravelDate: "2026-03-15",
	}
	if err := request.Validate(today); err != nil {
		t.Errorf("same-day travel rejected: %v", err)
	}
}

func TestBookingRequestValidateTodayWestOfUTC(t *testing.T) {
	t.Parallel()

	// Same-day travel must stay valid in zones behind UTC, where a
	// UTC-parsed travel date would sit before the local start of day.
	westernZone := time.FixedZone("UTC-5", -5*60*60)
	today := time.Date(2026, time.March, 10, 12, 0, 0, 0, westernZone)
	request := BookingRequest{
		UserName:   "Ana",
		Phone:      "01712345678",
		TravelDate: "2026-03-10",
	}
	if err := request.Validate(today); err != nil {
		t.Errorf("same-day travel rejected west of UTC: %v", err)
	}

	request.TravelDate = "2026-03-09"
	if err := request.Validate(today); err == nil {
		t.Error("yesterday accepted west of UTC")
	}
}

func TestBookingDecodesServiceWireShape(t *testing.T) {
	t.Parallel()

	// The service emits integer IDs and naive UTC timestamps with no
	// zone offset; both must decode.
	wire := `{
		"id": 7,
		"user_name": "Rahim Uddin",
		"phone": "+8801712345678",
		"from_district": "Dhaka",
		"to_district": "Sylhet",
		"bus_provider": "Hanif Bus",
		"travel_date": "2026-03-15",
		"booking_date": "2026-03-10T12:00:00.123456",
		"status": "active"
	}`
	var booking Booking
	if err := json.Unmarshal([]byte(wire), &booking); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if booking.ID != "7" {
		t.Errorf("ID = %q, want 7", booking.ID)
	}
	want := time.Date(2026, time.March, 10, 12, 0, 0, 123456000, time.UTC)
	if !booking.BookingDate.Equal(want) {
		t.Errorf("BookingDate = %v, want %v", booking.BookingDate, want)
	}
	if booking.Status != StatusActive {
		t.Errorf("Status = %q", booking.Status)
	}
}

func TestBookingDecodesStringIDAndRFC3339(t *testing.T) {
	t.Parallel()

	wire := `{"id": "B100", "booking_date": "2026-03-10T12:00:00Z", "status": "cancelled"}`
	var booking Booking
	if err := json.Unmarshal([]byte(wire), &booking); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if booking.ID != "B100" {
		t.Errorf("ID = %q, want B100", booking.ID)
	}
	if !booking.BookingDate.Equal(time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)) {
		t.Errorf("BookingDate = %v", booking.BookingDate)
	}
}

func TestCancelAckDecodesIntegerBookingID(t *testing.T) {
	t.Parallel()

	var ack CancelAck
	if err := json.Unmarshal([]byte(`{"message": "Booking cancelled successfully", "booking_id": 42}`), &ack); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if ack.BookingID != "42" {
		t.Errorf("BookingID = %q, want 42", ack.BookingID)
	}
}
