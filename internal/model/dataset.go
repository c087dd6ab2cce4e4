package model

import (
	"errors"
	"fmt"
)

// Dataset errors.
var (
	ErrInvalidCountryCode = errors.New("country code must be two uppercase letters")
	ErrUnsorted           = errors.New("records are not sorted by date")
	ErrDuplicateDate      = errors.New("records contain a duplicate date")
)

// Dataset is the full set of holiday records for one country.
//
// Invariants: Records is sorted ascending by Date and holds at most one
// record per date.
type Dataset struct {
	CountryCode string
	Records     []Record
}

// ValidCountryCode reports whether code is two ASCII uppercase letters.
func ValidCountryCode(code string) bool {
	if len(code) != 2 {
		return false
	}
	for i := 0; i < len(code); i++ {
		if code[i] < 'A' || code[i] > 'Z' {
			return false
		}
	}
	return true
}

// Validate checks the country code, every record, and the ordering invariants.
func (d Dataset) Validate() error {
	if !ValidCountryCode(d.CountryCode) {
		return fmt.Errorf("%w: %q", ErrInvalidCountryCode, d.CountryCode)
	}

	for i, r := range d.Records {
		if err := r.Validate(); err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
		if i == 0 {
			continue
		}
		prev := d.Records[i-1].Date
		switch {
		case r.Date.Equal(prev):
			return fmt.Errorf("%w: %s", ErrDuplicateDate, FormatDate(r.Date))
		case r.Date.Before(prev):
			return fmt.Errorf("%w: %s after %s", ErrUnsorted, FormatDate(r.Date), FormatDate(prev))
		}
	}
	return nil
}

// Len returns the number of records.
func (d Dataset) Len() int {
	return len(d.Records)
}
