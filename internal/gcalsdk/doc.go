// Package gcalsdk fetches holiday calendars through the official Google
// API client (google.golang.org/api/calendar/v3).
//
// It implements the same source.Source contract as the hand-written REST
// client in internal/api, so the two can be swapped from the command line.
// Pagination is handled by the SDK's Pages helper and 404 responses map to
// source.ErrNotFound.
package gcalsdk
