package api

import (
	"github.com/rickgao/holiday-data/internal/model"
)

// EventDate returns the calendar date of an event: start.date for all-day
// events, otherwise the date part of start.dateTime. Returns "" when neither
// is usable.
func EventDate(ev APIEvent) string {
	if ev.Start.Date != "" {
		return ev.Start.Date
	}
	if len(ev.Start.DateTime) >= 10 {
		return ev.Start.DateTime[:10]
	}
	return ""
}

// EventToRecord converts an event to a holiday record. Cancelled events and
// events without a parsable date are rejected.
func EventToRecord(ev APIEvent) (model.Record, bool) {
	if ev.Status == "cancelled" {
		return model.Record{}, false
	}

	d := EventDate(ev)
	if d == "" {
		return model.Record{}, false
	}

	date, err := model.ParseDate(d)
	if err != nil {
		return model.Record{}, false
	}

	return model.NewRecord(date, ev.Summary), true
}
