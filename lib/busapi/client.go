// Copyright 2026 The Paribahan Authors
// SPDX-License-Identifier: Apache-2.0

package busapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// Client issues booking, search, and question-answering requests
// against the marketplace service. All methods take a context and
// return either a decoded response or an error; non-2xx responses
// become an [*APIError] carrying the service's detail message.
//
// The client never retries. Callers own retry and timeout policy.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a Client for the service at baseURL (scheme and
// host, no trailing slash required). A nil httpClient uses
// [http.DefaultClient].
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// APIError is a service-reported failure: the HTTP status and the
// human-readable detail message from the response body, when the
// service provided one.
type APIError struct {
	StatusCode int
	Detail     string
}

func (err *APIError) Error() string {
	if err.Detail != "" {
		return fmt.Sprintf("busapi: %s (status %d)", err.Detail, err.StatusCode)
	}
	return fmt.Sprintf("busapi: request failed with status %d", err.StatusCode)
}

// searchRequest is the wire shape for the bus search operation.
// MaxPrice is a pointer so that "no price filter" is omitted rather
// than sent as zero: the service treats any present value as a
// filter bound.
type searchRequest struct {
	FromDistrict string `json:"from_district"`
	ToDistrict   string `json:"to_district"`
	MaxPrice     *int   `json:"max_price,omitempty"`
}

// SearchBuses returns the offers for a route, in service order. A
// maxPrice of zero or less means no price filter. The client does not
// re-filter the results; whatever the service returns is shown.
func (client *Client) SearchBuses(ctx context.Context, from, to District, maxPrice int) ([]BusOffer, error) {
	wireRequest := searchRequest{
		FromDistrict: string(from),
		ToDistrict:   string(to),
	}
	if maxPrice > 0 {
		wireRequest.MaxPrice = &maxPrice
	}

	var offers []BusOffer
	if err := client.post(ctx, "/api/buses/search", wireRequest, &offers); err != nil {
		return nil, err
	}
	return offers, nil
}

// CreateBooking submits a booking request and returns the booking the
// service created, including its assigned ID and booking timestamp.
// Callers should run [BookingRequest.Validate] first; the service
// enforces the same constraints and rejects violations with a 4xx.
func (client *Client) CreateBooking(ctx context.Context, request BookingRequest) (*Booking, error) {
	var booking Booking
	if err := client.post(ctx, "/api/bookings", request, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

// BookingsByPhone returns every booking made under the given phone
// number, in service order. An empty slice with a nil error means the
// phone has no bookings.
func (client *Client) BookingsByPhone(ctx context.Context, phone string) ([]Booking, error) {
	var bookings []Booking
	if err := client.get(ctx, "/api/bookings/"+url.PathEscape(phone), &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

// CancelBooking asks the service to cancel a booking. The returned
// acknowledgment confirms the one-way active to cancelled transition;
// cancelling an already-cancelled booking is a service-side error.
func (client *Client) CancelBooking(ctx context.Context, bookingID string) (*CancelAck, error) {
	var ack CancelAck
	if err := client.do(ctx, http.MethodDelete, "/api/bookings/"+url.PathEscape(bookingID), nil, &ack); err != nil {
		return nil, err
	}
	return &ack, nil
}

// AskQuestion sends a free-form question about providers and routes
// and returns the formatted answer with its source citations.
func (client *Client) AskQuestion(ctx context.Context, question string) (*Answer, error) {
	wireRequest := struct {
		Question string `json:"question"`
	}{Question: question}

	var answer Answer
	if err := client.post(ctx, "/api/providers/ask", wireRequest, &answer); err != nil {
		return nil, err
	}
	return &answer, nil
}

// Providers returns all bus operators known to the service.
func (client *Client) Providers(ctx context.Context) ([]Provider, error) {
	var providers []Provider
	if err := client.get(ctx, "/api/buses/providers", &providers); err != nil {
		return nil, err
	}
	return providers, nil
}

func (client *Client) get(ctx context.Context, path string, response any) error {
	return client.do(ctx, http.MethodGet, path, nil, response)
}

func (client *Client) post(ctx context.Context, path string, request, response any) error {
	return client.do(ctx, http.MethodPost, path, request, response)
}

// do sends one request and decodes the JSON response into response.
// A non-nil request body is marshaled as JSON. Non-2xx statuses are
// returned as [*APIError] with the body's detail message when present.
func (client *Client) do(ctx context.Context, method, path string, request, response any) error {
	var body io.Reader
	if request != nil {
		encoded, err := json.Marshal(request)
		if err != nil {
			return fmt.Errorf("busapi: marshaling request: %w", err)
		}
		body = bytes.NewReader(encoded)
	}

	httpRequest, err := http.NewRequestWithContext(ctx, method, client.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("busapi: creating request: %w", err)
	}
	if request != nil {
		httpRequest.Header.Set("Content-Type", "application/json")
	}

	httpResponse, err := client.httpClient.Do(httpRequest)
	if err != nil {
		return fmt.Errorf("busapi: sending request: %w", err)
	}
	defer httpResponse.Body.Close()

	if httpResponse.StatusCode < 200 || httpResponse.StatusCode > 299 {
		return readAPIError(httpResponse)
	}

	if response == nil {
		return nil
	}
	if err := json.NewDecoder(httpResponse.Body).Decode(response); err != nil {
		return fmt.Errorf("busapi: decoding response: %w", err)
	}
	return nil
}

// readAPIError parses an error response body in the service's error
// format: {"detail": "..."}. Bodies that don't parse (proxies, HTML
// error pages) fall back to the raw text, truncated.
func readAPIError(httpResponse *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(httpResponse.Body, 4096))

	var wireError struct {
		Detail string `json:"detail"`
	}
	if json.Unmarshal(body, &wireError) == nil && wireError.Detail != "" {
		return &APIError{
			StatusCode: httpResponse.StatusCode,
			Detail:     wireError.Detail,
		}
	}

	return &APIError{
		StatusCode: httpResponse.StatusCode,
		Detail:     strings.TrimSpace(string(body)),
	}
}
