// Package ics fetches the public iCal feed of a holiday calendar and turns
// its VEVENTs into holiday records. No API key is needed.
package ics

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/rickgao/holiday-data/internal/api"
	"github.com/rickgao/holiday-data/internal/countries"
	"github.com/rickgao/holiday-data/internal/model"
	"github.com/rickgao/holiday-data/internal/source"
)

// DefaultBaseURL is the public iCal root for Google calendars.
const DefaultBaseURL = "https://calendar.google.com/calendar/ical"

// Fetcher downloads basic.ics feeds.
type Fetcher struct {
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(f *Fetcher) {
		f.client = client
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Fetcher) {
		f.logger = logger
	}
}

// NewFetcher creates a Fetcher rooted at baseURL. An empty baseURL uses
// DefaultBaseURL.
func NewFetcher(baseURL string, opts ...Option) *Fetcher {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	f := &Fetcher{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Name implements source.Source.
func (f *Fetcher) Name() string {
	return "ics"
}

// FetchHolidays implements source.Source.
func (f *Fetcher) FetchHolidays(ctx context.Context, entry countries.Entry, years model.YearRange) ([]model.Record, error) {
	body, err := f.fetch(ctx, entry)
	if err != nil {
		return nil, err
	}

	events, err := Parse(body)
	if err != nil {
		return nil, fmt.Errorf("parse %s feed: %w", entry.Code, err)
	}

	records := Expand(events, years)
	f.logger.Debug("ics feed parsed",
		"country", entry.Code,
		"events", len(events),
		"records", len(records),
	)

	return source.Finalize(records, years), nil
}

func (f *Fetcher) fetch(ctx context.Context, entry countries.Entry) ([]byte, error) {
	u := entry.ICSURL(f.baseURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "text/calendar")
	req.Header.Set("User-Agent", api.DefaultUserAgent)
	if lang := entry.AcceptLanguage(); lang != "" {
		req.Header.Set("Accept-Language", lang)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s feed: %w", entry.Code, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("fetch %s feed: %w", entry.Code, source.ErrNotFound)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("fetch %s feed: unexpected status %s", entry.Code, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s feed: %w", entry.Code, err)
	}
	return body, nil
}

var _ source.Source = (*Fetcher)(nil)
