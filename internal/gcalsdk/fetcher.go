package gcalsdk

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/rickgao/holiday-data/internal/api"
	"github.com/rickgao/holiday-data/internal/countries"
	"github.com/rickgao/holiday-data/internal/model"
	"github.com/rickgao/holiday-data/internal/source"
)

// Fetcher lists holiday events with the Calendar SDK.
type Fetcher struct {
	svc      *calendar.Service
	logger   *slog.Logger
	pageSize int64
}

type settings struct {
	endpoint   string
	httpClient *http.Client
	logger     *slog.Logger
	pageSize   int64
	userAgent  string
}

// Option configures a Fetcher.
type Option func(*settings)

// WithEndpoint overrides the API base URL. The value must end in a slash.
func WithEndpoint(endpoint string) Option {
	return func(s *settings) {
		s.endpoint = endpoint
	}
}

// WithHTTPClient sets a custom HTTP client. The SDK does not add the API
// key to requests made through a caller-supplied client.
func WithHTTPClient(client *http.Client) Option {
	return func(s *settings) {
		s.httpClient = client
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) {
		s.logger = logger
	}
}

// WithPageSize sets maxResults per page.
func WithPageSize(n int) Option {
	return func(s *settings) {
		if n > 0 && n <= api.DefaultPageSize {
			s.pageSize = int64(n)
		}
	}
}

// New creates a Fetcher. An empty apiKey disables authentication, which is
// only useful against a test endpoint.
func New(ctx context.Context, apiKey string, opts ...Option) (*Fetcher, error) {
	s := settings{
		logger:    slog.Default(),
		pageSize:  api.DefaultPageSize,
		userAgent: api.DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(&s)
	}

	clientOpts := []option.ClientOption{option.WithUserAgent(s.userAgent)}
	switch {
	case s.httpClient != nil:
		clientOpts = append(clientOpts, option.WithHTTPClient(s.httpClient))
	case apiKey != "":
		clientOpts = append(clientOpts, option.WithAPIKey(apiKey))
	default:
		clientOpts = append(clientOpts, option.WithoutAuthentication())
	}
	if s.endpoint != "" {
		clientOpts = append(clientOpts, option.WithEndpoint(s.endpoint))
	}

	svc, err := calendar.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("create calendar service: %w", err)
	}

	return &Fetcher{
		svc:      svc,
		logger:   s.logger,
		pageSize: s.pageSize,
	}, nil
}

// Name implements source.Source.
func (f *Fetcher) Name() string {
	return "sdk"
}

// FetchHolidays implements source.Source.
func (f *Fetcher) FetchHolidays(ctx context.Context, entry countries.Entry, years model.YearRange) ([]model.Record, error) {
	call := f.svc.Events.List(entry.CalendarID).
		TimeMin(years.TimeMin().Format(time.RFC3339)).
		TimeMax(years.TimeMax().Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		MaxResults(f.pageSize)
	if lang := entry.AcceptLanguage(); lang != "" {
		call.Header().Set("Accept-Language", lang)
	}

	var records []model.Record
	page := 0
	err := call.Pages(ctx, func(events *calendar.Events) error {
		page++
		f.logger.Debug("fetched events page",
			"calendar_id", entry.CalendarID,
			"page", page,
			"items", len(events.Items),
		)
		for _, ev := range events.Items {
			r, ok := EventToRecord(ev)
			if !ok {
				continue
			}
			records = append(records, r)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list events %s: %w", entry.CalendarID, mapError(err))
	}

	return source.Finalize(records, years), nil
}

// EventToRecord converts an SDK event using the same rules as the REST
// client.
func EventToRecord(ev *calendar.Event) (model.Record, bool) {
	if ev == nil {
		return model.Record{}, false
	}
	converted := api.APIEvent{
		ID:      ev.Id,
		Status:  ev.Status,
		Summary: ev.Summary,
	}
	if ev.Start != nil {
		converted.Start = api.APIEventTime{
			Date:     ev.Start.Date,
			DateTime: ev.Start.DateTime,
			TimeZone: ev.Start.TimeZone,
		}
	}
	return api.EventToRecord(converted)
}

func mapError(err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) && gerr.Code == http.StatusNotFound {
		return fmt.Errorf("%w: %s", source.ErrNotFound, gerr.Message)
	}
	return err
}

var _ source.Source = (*Fetcher)(nil)
