package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rickgao/holiday-data/internal/countries"
	"github.com/rickgao/holiday-data/internal/model"
	"github.com/rickgao/holiday-data/internal/source"
)

// ListEvents fetches a page of events from a calendar.
func (c *Client) ListEvents(ctx context.Context, calendarID string, opts ListEventsOptions) (*EventsResponse, error) {
	query := url.Values{}
	query.Set("singleEvents", "true")
	query.Set("orderBy", "startTime")

	if opts.MaxResults > 0 {
		query.Set("maxResults", strconv.Itoa(opts.MaxResults))
	}
	if opts.TimeMin != "" {
		query.Set("timeMin", opts.TimeMin)
	}
	if opts.TimeMax != "" {
		query.Set("timeMax", opts.TimeMax)
	}
	if opts.PageToken != "" {
		query.Set("pageToken", opts.PageToken)
	}

	var header http.Header
	if opts.Locale != "" {
		header = http.Header{"Accept-Language": []string{opts.Locale}}
	}

	var resp EventsResponse
	if err := c.get(ctx, eventsPath(calendarID), query, header, &resp); err != nil {
		return nil, fmt.Errorf("list events %s: %w", calendarID, err)
	}

	return &resp, nil
}

// ListAllEvents fetches all events by following nextPageToken.
// Uses DefaultPaginationTimeout (10m) if the context has no deadline.
func (c *Client) ListAllEvents(ctx context.Context, calendarID string, opts ListEventsOptions) ([]APIEvent, error) {
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, DefaultPaginationTimeout)
		defer cancel()
	}

	var allEvents []APIEvent
	if opts.MaxResults == 0 {
		opts.MaxResults = c.pageSize
	}

	for page := 1; ; page++ {
		resp, err := c.ListEvents(ctx, calendarID, opts)
		if err != nil {
			return nil, err
		}

		allEvents = append(allEvents, resp.Items...)

		c.logger.Debug("fetched events page",
			"calendar_id", calendarID,
			"page", page,
			"items", len(resp.Items),
		)

		if resp.NextPageToken == "" {
			break
		}
		opts.PageToken = resp.NextPageToken
	}

	return allEvents, nil
}

// Name implements source.Source.
func (c *Client) Name() string {
	return "rest"
}

// FetchHolidays implements source.Source. It lists every event of the
// entry's calendar inside years and converts them to records.
func (c *Client) FetchHolidays(ctx context.Context, entry countries.Entry, years model.YearRange) ([]model.Record, error) {
	events, err := c.ListAllEvents(ctx, entry.CalendarID, ListEventsOptions{
		TimeMin: years.TimeMin().Format(time.RFC3339),
		TimeMax: years.TimeMax().Format(time.RFC3339),
		Locale:  entry.AcceptLanguage(),
	})
	if err != nil {
		return nil, err
	}

	records := make([]model.Record, 0, len(events))
	for _, ev := range events {
		r, ok := EventToRecord(ev)
		if !ok {
			c.logger.Debug("skipping event without usable start",
				"calendar_id", entry.CalendarID,
				"event_id", ev.ID,
			)
			continue
		}
		records = append(records, r)
	}

	return source.Finalize(records, years), nil
}

func eventsPath(calendarID string) string {
	return "/calendars/" + url.PathEscape(calendarID) + "/events"
}

var _ source.Source = (*Client)(nil)
