package model

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidYearRange is returned when Start is after End.
var ErrInvalidYearRange = errors.New("start year must be <= end year")

// YearRange is an inclusive range of calendar years.
type YearRange struct {
	Start int
	End   int
}

// Validate checks that the range is non-empty.
func (y YearRange) Validate() error {
	if y.Start <= 0 || y.End <= 0 {
		return fmt.Errorf("year range %d-%d: years must be positive", y.Start, y.End)
	}
	if y.Start > y.End {
		return fmt.Errorf("%w: %d > %d", ErrInvalidYearRange, y.Start, y.End)
	}
	return nil
}

// TimeMin is midnight UTC on January 1 of Start.
func (y YearRange) TimeMin() time.Time {
	return time.Date(y.Start, time.January, 1, 0, 0, 0, 0, time.UTC)
}

// TimeMax is midnight UTC on January 1 of the year after End (exclusive).
func (y YearRange) TimeMax() time.Time {
	return time.Date(y.End+1, time.January, 1, 0, 0, 0, 0, time.UTC)
}

// Contains reports whether t's calendar year is inside the range.
func (y YearRange) Contains(t time.Time) bool {
	year := t.Year()
	return year >= y.Start && year <= y.End
}

// Filter returns the records whose date falls inside the range, keeping order.
func (y YearRange) Filter(records []Record) []Record {
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if y.Contains(r.Date) {
			out = append(out, r)
		}
	}
	return out
}

func (y YearRange) String() string {
	return fmt.Sprintf("%d-%d", y.Start, y.End)
}
