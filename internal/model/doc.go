// Package model defines the holiday types shared across the updater.
//
// Conventions:
//   - Dates: time.Time normalized to midnight UTC
//   - Wire format: "2006-01-02T00:00:00.000Z" (ISO 8601, millisecond precision)
//   - Country codes: two-letter uppercase (e.g. "JP", "US")
package model
