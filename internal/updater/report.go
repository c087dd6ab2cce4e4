package updater

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/rickgao/holiday-data/internal/merge"
	"github.com/rickgao/holiday-data/internal/model"
)

// Kind classifies a per-country failure.
type Kind string

// Failure kinds.
const (
	KindUnsupported   Kind = "unsupported"
	KindAlreadyExists Kind = "already_exists"
	KindNotFound      Kind = "not_found"
	KindTransport     Kind = "transport"
	KindMalformed     Kind = "malformed"
	KindStorage       Kind = "storage"
	KindMirror        Kind = "mirror"
	KindCanceled      Kind = "canceled"
)

// Failure records why one country could not be updated.
type Failure struct {
	Country string
	Kind    Kind
	Err     error
}

func (f Failure) Error() string {
	return fmt.Sprintf("%s (%s): %v", f.Country, f.Kind, f.Err)
}

func (f Failure) Unwrap() error {
	return f.Err
}

// Outcome describes what happened to a country that did not fail.
type Outcome string

// Outcomes.
const (
	OutcomeWritten Outcome = "written"
	OutcomeEmpty   Outcome = "empty" // source returned nothing, file untouched
)

// Result is the outcome for one successfully processed country.
type Result struct {
	Country string
	Outcome Outcome
	Fetched int
	Stats   merge.Stats
}

// Report summarizes one update run.
type Report struct {
	RunID      uuid.UUID
	Source     string
	Mode       Mode
	Force      bool
	Years      model.YearRange
	StartedAt  time.Time
	FinishedAt time.Time
	Results    []Result
	Failures   []Failure
}

// Succeeded returns the number of countries without a failure.
func (r *Report) Succeeded() int {
	failed := make(map[string]bool, len(r.Failures))
	for _, f := range r.Failures {
		failed[f.Country] = true
	}
	n := 0
	for _, res := range r.Results {
		if !failed[res.Country] {
			n++
		}
	}
	return n
}

// Failed returns the number of failures.
func (r *Report) Failed() int {
	return len(r.Failures)
}

// Duration is the wall time of the run.
func (r *Report) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// Err joins every failure, or returns nil when the run was clean.
func (r *Report) Err() error {
	if len(r.Failures) == 0 {
		return nil
	}
	errs := make([]error, len(r.Failures))
	for i, f := range r.Failures {
		errs[i] = f
	}
	return errors.Join(errs...)
}

// LogSummary writes the end-of-run summary, one line per failure.
func (r *Report) LogSummary(logger *slog.Logger) {
	logger.Info("update run complete",
		"run_id", r.RunID,
		"source", r.Source,
		"mode", r.Mode,
		"years", r.Years.String(),
		"succeeded", r.Succeeded(),
		"failed", r.Failed(),
		"duration", r.Duration(),
	)
	for _, f := range r.Failures {
		logger.Error("country failed",
			"country", f.Country,
			"kind", f.Kind,
			"error", f.Err,
		)
	}
}

// Summary is the JSON view of a report served by the health endpoint.
type Summary struct {
	RunID      string           `json:"run_id"`
	Source     string           `json:"source"`
	Mode       Mode             `json:"mode"`
	Years      string           `json:"years"`
	StartedAt  time.Time        `json:"started_at"`
	FinishedAt time.Time        `json:"finished_at"`
	Succeeded  int              `json:"succeeded"`
	Failed     int              `json:"failed"`
	Failures   []FailureSummary `json:"failures,omitempty"`
}

// FailureSummary is the JSON view of a Failure.
type FailureSummary struct {
	Country string `json:"country"`
	Kind    Kind   `json:"kind"`
	Error   string `json:"error"`
}

// Summary returns the JSON view of r.
func (r *Report) Summary() Summary {
	s := Summary{
		RunID:      r.RunID.String(),
		Source:     r.Source,
		Mode:       r.Mode,
		Years:      r.Years.String(),
		StartedAt:  r.StartedAt,
		FinishedAt: r.FinishedAt,
		Succeeded:  r.Succeeded(),
		Failed:     r.Failed(),
	}
	for _, f := range r.Failures {
		s.Failures = append(s.Failures, FailureSummary{
			Country: f.Country,
			Kind:    f.Kind,
			Error:   f.Err.Error(),
		})
	}
	return s
}
