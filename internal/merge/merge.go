package merge

import (
	"slices"

	"github.com/rickgao/holiday-data/internal/model"
)

// Stats describes how a merge changed the existing records.
type Stats struct {
	Added     int // Dates only present in fetched
	Replaced  int // Dates present in both whose name changed
	Unchanged int // Dates present in both with the same name, plus dates only in existing
	Total     int // Length of the output
}

// Merge combines existing and fetched into one sorted, date-unique sequence.
// Neither input needs to be sorted; neither is modified.
func Merge(existing, fetched []model.Record) []model.Record {
	out, _ := MergeWithStats(existing, fetched)
	return out
}

// MergeWithStats is Merge plus a summary of what changed.
func MergeWithStats(existing, fetched []model.Record) ([]model.Record, Stats) {
	byDate := make(map[int64]model.Record, len(existing)+len(fetched))
	for _, r := range existing {
		byDate[key(r)] = r
	}
	seeded := make(map[int64]string, len(byDate))
	for k, r := range byDate {
		seeded[k] = r.Name
	}

	for _, r := range fetched {
		byDate[key(r)] = r
	}

	out := make([]model.Record, 0, len(byDate))
	var stats Stats
	for k, r := range byDate {
		out = append(out, r)

		name, ok := seeded[k]
		switch {
		case !ok:
			stats.Added++
		case name != r.Name:
			stats.Replaced++
		default:
			stats.Unchanged++
		}
	}

	slices.SortFunc(out, func(a, b model.Record) int {
		return a.Date.Compare(b.Date)
	})
	stats.Total = len(out)

	return out, stats
}

// Dedupe collapses records sharing a date, keeping the last one, and sorts
// the result. It is Merge against an empty existing sequence.
func Dedupe(records []model.Record) []model.Record {
	return Merge(nil, records)
}

// key identifies a record by its calendar date.
func key(r model.Record) int64 {
	return model.Day(r.Date).Unix()
}
