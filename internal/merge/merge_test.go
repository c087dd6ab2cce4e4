package merge

import (
	"math/rand/v2"
	"slices"
	"testing"
	"time"

	"github.com/rickgao/holiday-data/internal/model"
)

func rec(s, name string) model.Record {
	d, err := model.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return model.Record{Date: d, Name: name}
}

func TestMerge_Scenarios(t *testing.T) {
	tests := []struct {
		name     string
		existing []model.Record
		fetched  []model.Record
		want     []model.Record
	}{
		{
			name:     "fetched name replaces existing placeholder",
			existing: []model.Record{rec("2025-01-01", "元日(old)")},
			fetched: []model.Record{
				rec("2025-01-01", "元日"),
				rec("2025-07-04", "Independence Day"),
			},
			want: []model.Record{
				rec("2025-01-01", "元日"),
				rec("2025-07-04", "Independence Day"),
			},
		},
		{
			name:     "empty existing",
			existing: nil,
			fetched:  []model.Record{rec("2026-12-25", "Christmas")},
			want:     []model.Record{rec("2026-12-25", "Christmas")},
		},
		{
			name:     "empty fetched keeps existing sorted",
			existing: []model.Record{rec("2025-12-25", "Christmas"), rec("2025-01-01", "New Year's Day")},
			fetched:  nil,
			want:     []model.Record{rec("2025-01-01", "New Year's Day"), rec("2025-12-25", "Christmas")},
		},
		{
			name:     "both empty",
			existing: []model.Record{},
			fetched:  []model.Record{},
			want:     []model.Record{},
		},
		{
			name:     "later fetched duplicate wins",
			existing: nil,
			fetched: []model.Record{
				rec("2025-02-11", "建国記念の日"),
				rec("2025-02-11", "National Foundation Day"),
			},
			want: []model.Record{rec("2025-02-11", "National Foundation Day")},
		},
		{
			name:     "unaffected existing dates preserved",
			existing: []model.Record{rec("2024-12-25", "Christmas"), rec("2025-01-01", "New Year's Day")},
			fetched:  []model.Record{rec("2025-07-04", "Independence Day")},
			want: []model.Record{
				rec("2024-12-25", "Christmas"),
				rec("2025-01-01", "New Year's Day"),
				rec("2025-07-04", "Independence Day"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Merge(tt.existing, tt.fetched)
			if !equal(got, tt.want) {
				t.Errorf("Merge() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMerge_DoesNotModifyInputs(t *testing.T) {
	existing := []model.Record{rec("2025-12-25", "Christmas"), rec("2025-01-01", "New Year's Day")}
	fetched := []model.Record{rec("2025-12-25", "Christmas Day")}
	existingCopy := slices.Clone(existing)
	fetchedCopy := slices.Clone(fetched)

	Merge(existing, fetched)

	if !equal(existing, existingCopy) {
		t.Errorf("existing modified: %v", existing)
	}
	if !equal(fetched, fetchedCopy) {
		t.Errorf("fetched modified: %v", fetched)
	}
}

func TestMergeWithStats(t *testing.T) {
	existing := []model.Record{
		rec("2025-01-01", "元日(old)"),
		rec("2025-05-05", "こどもの日"),
		rec("2024-11-23", "勤労感謝の日"),
	}
	fetched := []model.Record{
		rec("2025-01-01", "元日"),
		rec("2025-05-05", "こどもの日"),
		rec("2025-07-21", "海の日"),
	}

	got, stats := MergeWithStats(existing, fetched)

	want := Stats{Added: 1, Replaced: 1, Unchanged: 2, Total: 4}
	if stats != want {
		t.Errorf("stats = %+v, want %+v", stats, want)
	}
	if len(got) != 4 {
		t.Errorf("len = %d, want 4", len(got))
	}
}

func TestDedupe(t *testing.T) {
	got := Dedupe([]model.Record{
		rec("2025-12-25", "Christmas"),
		rec("2025-01-01", "New Year's Day"),
		rec("2025-12-25", "Christmas Day"),
	})
	want := []model.Record{rec("2025-01-01", "New Year's Day"), rec("2025-12-25", "Christmas Day")}
	if !equal(got, want) {
		t.Errorf("Dedupe() = %v, want %v", got, want)
	}
}

// TestMerge_Properties checks the ordering, union, tie-break and idempotence
// guarantees against random inputs.
func TestMerge_Properties(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	names := []string{"A", "B", "C", "D"}
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	randomRecords := func() []model.Record {
		n := rng.IntN(30)
		out := make([]model.Record, n)
		for i := range out {
			out[i] = model.Record{
				Date: base.AddDate(0, 0, rng.IntN(60)),
				Name: names[rng.IntN(len(names))],
			}
		}
		return out
	}

	for i := 0; i < 200; i++ {
		existing := randomRecords()
		fetched := randomRecords()

		got := Merge(existing, fetched)

		// Sorted with unique dates.
		for j := 1; j < len(got); j++ {
			if !got[j-1].Date.Before(got[j].Date) {
				t.Fatalf("iteration %d: output not strictly ascending at %d: %v", i, j, got)
			}
		}

		// Date set is the union of the inputs.
		union := make(map[int64]bool)
		for _, r := range existing {
			union[r.Date.Unix()] = true
		}
		lastFetched := make(map[int64]string)
		for _, r := range fetched {
			union[r.Date.Unix()] = true
			lastFetched[r.Date.Unix()] = r.Name
		}
		if len(got) != len(union) {
			t.Fatalf("iteration %d: got %d dates, want %d", i, len(got), len(union))
		}
		for _, r := range got {
			if !union[r.Date.Unix()] {
				t.Fatalf("iteration %d: unexpected date %v", i, r.Date)
			}
			// Fetched wins on shared dates.
			if name, ok := lastFetched[r.Date.Unix()]; ok && r.Name != name {
				t.Fatalf("iteration %d: %v has name %q, want fetched %q", i, r.Date, r.Name, name)
			}
		}

		// Idempotent.
		again := Merge(got, fetched)
		if !equal(again, got) {
			t.Fatalf("iteration %d: merge not idempotent:\n%v\n%v", i, got, again)
		}
	}
}

func equal(a, b []model.Record) bool {
	return slices.EqualFunc(a, b, func(x, y model.Record) bool {
		return x.Date.Equal(y.Date) && x.Name == y.Name
	})
}
