package ics

import (
	"github.com/teambition/rrule-go"

	"github.com/rickgao/holiday-data/internal/model"
)

// maxOccurrences caps RRULE expansion per event.
const maxOccurrences = 1000

// Expand turns parsed events into records inside years. Recurring events
// are expanded with their RRULE minus EXDATEs; cancelled events and events
// with an unparsable RRULE are dropped.
func Expand(events []Event, years model.YearRange) []model.Record {
	lo, hi := years.TimeMin(), years.TimeMax()
	out := make([]model.Record, 0, len(events))

	for _, ev := range events {
		if ev.Status == "CANCELLED" {
			continue
		}

		if ev.RawRRule == "" {
			if !ev.Start.Before(lo) && ev.Start.Before(hi) {
				out = append(out, model.NewRecord(ev.Start, ev.Summary))
			}
			continue
		}

		r, err := rrule.StrToRRule(ev.RawRRule)
		if err != nil {
			continue
		}
		r.DTStart(ev.Start)

		var set rrule.Set
		set.RRule(r)
		for _, ex := range ev.ExDates {
			set.ExDate(ex)
		}

		occ := set.Between(lo, hi, true)
		if len(occ) > maxOccurrences {
			occ = occ[:maxOccurrences]
		}
		for _, t := range occ {
			if t.Equal(hi) {
				continue
			}
			out = append(out, model.NewRecord(t, ev.Summary))
		}
	}

	return out
}
