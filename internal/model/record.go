package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
)

// DateLayout is the on-disk date format: midnight UTC with millisecond precision.
const DateLayout = "2006-01-02T15:04:05.000Z"

// Record validation errors. All of them match ErrMalformedRecord via errors.Is.
var (
	ErrMalformedRecord = errors.New("malformed holiday record")
	ErrMissingDate     = fmt.Errorf("%w: missing date", ErrMalformedRecord)
	ErrMissingName     = fmt.Errorf("%w: missing name", ErrMalformedRecord)
)

// Record is a single public holiday occurrence.
type Record struct {
	Date time.Time // Midnight UTC
	Name string    // Localized label
}

// NewRecord builds a Record with the date normalized to midnight UTC and the
// name trimmed and NFC-normalized.
func NewRecord(date time.Time, name string) Record {
	return Record{
		Date: Day(date),
		Name: NormalizeName(name),
	}
}

// Day returns midnight UTC of t's calendar date, as seen in t's own location.
// A zero time stays zero.
func Day(t time.Time) time.Time {
	if t.IsZero() {
		return time.Time{}
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// NormalizeName trims surrounding whitespace and applies Unicode NFC so that
// visually identical names compare equal.
func NormalizeName(name string) string {
	return norm.NFC.String(strings.TrimSpace(name))
}

// ParseDate parses a holiday date. It accepts the on-disk layout, any
// RFC 3339 timestamp and a bare YYYY-MM-DD date. Timestamps with an offset
// keep their local calendar date.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrMissingDate
	}

	for _, layout := range []string{DateLayout, time.RFC3339Nano, time.DateOnly} {
		if t, err := time.Parse(layout, s); err == nil {
			return Day(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: invalid date %q", ErrMalformedRecord, s)
}

// FormatDate renders t in DateLayout.
func FormatDate(t time.Time) string {
	return Day(t).Format(DateLayout)
}

// Validate reports whether the record has both a date and a name.
func (r Record) Validate() error {
	if r.Date.IsZero() {
		return ErrMissingDate
	}
	if strings.TrimSpace(r.Name) == "" {
		return ErrMissingName
	}
	return nil
}

// String implements fmt.Stringer.
func (r Record) String() string {
	return FormatDate(r.Date) + " " + r.Name
}

type wireRecord struct {
	Date string `json:"date"`
	Name string `json:"name"`
}

// MarshalJSON writes {"date":...,"name":...} without HTML escaping, so
// non-ASCII and '&' survive byte for byte.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(wireRecord{Date: FormatDate(r.Date), Name: r.Name}); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// UnmarshalJSON requires both fields to be present.
func (r *Record) UnmarshalJSON(data []byte) error {
	var raw struct {
		Date *string `json:"date"`
		Name *string `json:"name"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}
	if raw.Date == nil {
		return ErrMissingDate
	}
	if raw.Name == nil || strings.TrimSpace(*raw.Name) == "" {
		return ErrMissingName
	}

	date, err := ParseDate(*raw.Date)
	if err != nil {
		return err
	}

	r.Date = date
	r.Name = *raw.Name
	return nil
}
