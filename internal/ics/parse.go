package ics

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
)

// ErrEmptyFeed is returned for a zero-length body.
var ErrEmptyFeed = errors.New("empty ICS body")

// Event is the subset of a VEVENT needed to build holiday records.
type Event struct {
	UID     string
	Summary string
	Status  string
	// Start is the calendar date of DTSTART at midnight UTC.
	Start    time.Time
	RawRRule string
	ExDates  []time.Time
}

// Parse decodes an ICS payload. VEVENTs without a readable DTSTART are
// skipped.
func Parse(body []byte) ([]Event, error) {
	if len(body) == 0 {
		return nil, ErrEmptyFeed
	}

	cal, err := ical.ParseCalendar(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	events := make([]Event, 0)
	for _, ve := range cal.Events() {
		ev, err := parseVEvent(ve)
		if err != nil {
			continue
		}
		events = append(events, ev)
	}
	return events, nil
}

func parseVEvent(ve *ical.VEvent) (Event, error) {
	var out Event

	if p := ve.GetProperty(ical.ComponentPropertyUniqueId); p != nil {
		out.UID = p.Value
	}
	if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil {
		out.Summary = unescapeText(p.Value)
	}
	if p := ve.GetProperty(ical.ComponentPropertyStatus); p != nil {
		out.Status = strings.ToUpper(strings.TrimSpace(p.Value))
	}

	dt := ve.GetProperty(ical.ComponentPropertyDtStart)
	if dt == nil {
		return out, errors.New("missing DTSTART")
	}
	start, err := parseDate(dt.Value, tzid(dt.ICalParameters))
	if err != nil {
		return out, err
	}
	out.Start = start

	if p := ve.GetProperty(ical.ComponentPropertyRrule); p != nil {
		out.RawRRule = p.Value
	}

	for _, p := range ve.GetProperties(ical.ComponentPropertyExdate) {
		loc := tzid(p.ICalParameters)
		for _, part := range strings.Split(p.Value, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			if t, err := parseDate(part, loc); err == nil {
				out.ExDates = append(out.ExDates, t)
			}
		}
	}

	return out, nil
}

func tzid(params map[string][]string) string {
	if vs, ok := params["TZID"]; ok && len(vs) > 0 {
		return vs[0]
	}
	return ""
}

// parseDate reads a DATE or DATE-TIME value and returns the calendar date
// it falls on, at midnight UTC. DATE-TIME values are read in tz when set.
func parseDate(v, tz string) (time.Time, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}, errors.New("empty time value")
	}

	var (
		t   time.Time
		err error
	)
	switch {
	case strings.HasSuffix(v, "Z"):
		t, err = time.Parse("20060102T150405Z", v)
	case strings.Contains(v, "T"):
		loc := time.UTC
		if tz != "" {
			if l, lerr := time.LoadLocation(tz); lerr == nil {
				loc = l
			}
		}
		t, err = time.ParseInLocation("20060102T150405", v, loc)
	default:
		t, err = time.Parse("20060102", v)
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("parse ICS time %q: %w", v, err)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

var textUnescaper = strings.NewReplacer(`\\`, `\`, `\,`, ",", `\;`, ";", `\n`, " ", `\N`, " ")

func unescapeText(s string) string {
	return textUnescaper.Replace(s)
}
