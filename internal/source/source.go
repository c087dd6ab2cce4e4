// Package source defines the contract every holiday fetcher implements.
package source

import (
	"context"
	"errors"

	"github.com/rickgao/holiday-data/internal/countries"
	"github.com/rickgao/holiday-data/internal/merge"
	"github.com/rickgao/holiday-data/internal/model"
)

// ErrNotFound is matched (via errors.Is) by fetcher errors meaning the
// calendar does not exist at the source.
var ErrNotFound = errors.New("calendar not found at source")

// Source fetches holiday records for one country and year range. Pagination
// is handled inside the implementation; callers see one flat sequence.
type Source interface {
	Name() string
	FetchHolidays(ctx context.Context, entry countries.Entry, years model.YearRange) ([]model.Record, error)
}

// Finalize drops records outside years and collapses same-date records,
// keeping the last one. Sources call it on their raw results since calendars
// occasionally return events on the window boundary.
func Finalize(records []model.Record, years model.YearRange) []model.Record {
	return merge.Dedupe(years.Filter(records))
}
