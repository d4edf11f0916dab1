// Copyright 2026 The Paribahan Authors
// SPDX-License-Identifier: Apache-2.0

// paribahan is a terminal client for the Paribahan bus-ticket
// marketplace. It talks to the marketplace HTTP API and presents
// three views: route search with booking, booking lookup and
// cancellation by phone number, and a provider assistant that
// answers free-form questions with cited sources.
//
// The service endpoint resolves in order: the --endpoint flag, the
// config file (via --config or PARIBAHAN_CONFIG), then the built-in
// default of http://localhost:8001.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"github.com/paribahan/paribahan/lib/busapi"
	"github.com/paribahan/paribahan/lib/busui"
	"github.com/paribahan/paribahan/lib/config"
)

const appVersion = "0.1.0"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var endpoint string
	var configPath string
	var logOutput string
	var listProviders bool

	flagSet := pflag.NewFlagSet("paribahan", pflag.ContinueOnError)
	flagSet.StringVar(&endpoint, "endpoint", "", "marketplace API base URL (overrides config)")
	flagSet.StringVar(&configPath, "config", "", "path to YAML config file (default: $PARIBAHAN_CONFIG)")
	flagSet.StringVar(&logOutput, "log-output", "", "write JSON log records to this file")
	flagSet.BoolVar(&listProviders, "providers", false, "list the bus providers the marketplace knows and exit")
	flagSet.BoolP("help", "h", false, "show help")

	if len(os.Args) > 1 && os.Args[1] == "--version" {
		fmt.Printf("paribahan %s\n", appVersion)
		return nil
	}

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			printHelp(flagSet)
			return nil
		}
		return err
	}

	if help, _ := flagSet.GetBool("help"); help {
		printHelp(flagSet)
		return nil
	}

	args := flagSet.Args()
	if len(args) > 0 {
		return fmt.Errorf("unexpected argument: %s", args[0])
	}

	var configuration *config.Config
	var err error
	if configPath != "" {
		configuration, err = config.LoadFile(configPath)
	} else {
		configuration, err = config.Load()
	}
	if err != nil {
		return err
	}

	if endpoint != "" {
		configuration.Service.Endpoint = endpoint
	}
	if logOutput != "" {
		configuration.Log.Output = logOutput
	}
	if err := configuration.Validate(); err != nil {
		return err
	}

	// Logging goes to a file or nowhere. Writing to stderr would
	// corrupt the alt-screen display while the program runs.
	logger := slog.New(discardHandler{})
	if configuration.Log.Output != "" {
		fileHandler, fileCloser, fileErr := openFileLogHandler(configuration.Log.Output)
		if fileErr != nil {
			return fmt.Errorf("cannot open log file %s: %w", configuration.Log.Output, fileErr)
		}
		defer fileCloser()
		logger = slog.New(fileHandler)
	}

	httpClient := &http.Client{Timeout: configuration.Service.RequestTimeout.Std()}
	client := busapi.NewClient(configuration.Service.Endpoint, httpClient)

	if listProviders {
		return printProviders(client)
	}

	service := &loggingService{client: client, logger: logger}

	logger.Info("starting", "endpoint", configuration.Service.Endpoint, "version", appVersion)

	model := busui.NewModel(service)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err = program.Run()
	return err
}

// printProviders writes the marketplace's provider directory to
// stdout, one per line. Used by `paribahan --providers` for a quick
// look without entering the TUI.
func printProviders(client *busapi.Client) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	providers, err := client.Providers(ctx)
	if err != nil {
		return err
	}
	for _, provider := range providers {
		fmt.Println(provider.Name)
	}
	return nil
}

func printHelp(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `Paribahan — terminal client for the bus-ticket marketplace.

Search buses between districts, book tickets, look up and cancel
bookings by phone number, and ask the provider assistant free-form
questions.

Usage:
  paribahan [flags]

Examples:
  # Connect to the default local endpoint
  paribahan

  # Connect to a remote marketplace
  paribahan --endpoint https://api.example.com

  # Use a config file and capture logs
  paribahan --config ~/.config/paribahan.yaml --log-output /tmp/paribahan.log

  # Print the provider directory and exit
  paribahan --providers

Flags:
`)
	flagSet.SetOutput(os.Stderr)
	flagSet.PrintDefaults()
}

// openFileLogHandler creates a slog.JSONHandler that writes to the
// given file path. Returns the handler, a cleanup function to close
// the file, and any error. The file is created or truncated.
func openFileLogHandler(path string) (slog.Handler, func(), error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	handler := slog.NewJSONHandler(file, &slog.HandlerOptions{Level: slog.LevelDebug})
	return handler, func() { file.Close() }, nil
}

// discardHandler drops every record. Used when no log file is
// configured.
type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (discardHandler) WithAttrs([]slog.Attr) slog.Handler        { return discardHandler{} }
func (discardHandler) WithGroup(string) slog.Handler             { return discardHandler{} }

// loggingService wraps the API client so every remote call and its
// outcome is visible in the log file.
type loggingService struct {
	client *busapi.Client
	logger *slog.Logger
}

func (service *loggingService) SearchBuses(ctx context.Context, from, to busapi.District, maxPrice int) ([]busapi.BusOffer, error) {
	offers, err := service.client.SearchBuses(ctx, from, to, maxPrice)
	if err != nil {
		service.logger.Error("search failed", "from", from, "to", to, "error", err)
		return nil, err
	}
	service.logger.Info("search", "from", from, "to", to, "max_price", maxPrice, "offers", len(offers))
	return offers, nil
}

func (service *loggingService) CreateBooking(ctx context.Context, request busapi.BookingRequest) (*busapi.Booking, error) {
	booking, err := service.client.CreateBooking(ctx, request)
	if err != nil {
		service.logger.Error("booking failed", "provider", request.BusProvider, "error", err)
		return nil, err
	}
	service.logger.Info("booking created", "id", booking.ID, "provider", booking.BusProvider)
	return booking, nil
}

func (service *loggingService) BookingsByPhone(ctx context.Context, phone string) ([]busapi.Booking, error) {
	bookings, err := service.client.BookingsByPhone(ctx, phone)
	if err != nil {
		service.logger.Error("bookings lookup failed", "error", err)
		return nil, err
	}
	service.logger.Info("bookings lookup", "count", len(bookings))
	return bookings, nil
}

func (service *loggingService) CancelBooking(ctx context.Context, bookingID string) (*busapi.CancelAck, error) {
	ack, err := service.client.CancelBooking(ctx, bookingID)
	if err != nil {
		service.logger.Error("cancel failed", "id", bookingID, "error", err)
		return nil, err
	}
	service.logger.Info("booking cancelled", "id", bookingID)
	return ack, nil
}

func (service *loggingService) AskQuestion(ctx context.Context, question string) (*busapi.Answer, error) {
	answer, err := service.client.AskQuestion(ctx, question)
	if err != nil {
		service.logger.Error("ask failed", "error", err)
		return nil, err
	}
	service.logger.Info("ask", "sources", len(answer.Sources))
	return answer, nil
}
