package updater

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/rickgao/holiday-data/internal/countries"
	"github.com/rickgao/holiday-data/internal/merge"
	"github.com/rickgao/holiday-data/internal/model"
	"github.com/rickgao/holiday-data/internal/source"
)

// Mode selects how fetched records combine with the stored dataset.
type Mode string

// Modes.
const (
	ModeAppend   Mode = "append"
	ModeRecreate Mode = "recreate"
)

// ParseMode converts a config or flag value to a Mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeAppend, ModeRecreate:
		return Mode(s), nil
	}
	return "", fmt.Errorf("unknown mode %q (want append or recreate)", s)
}

// Errors reported inside Failure.Err.
var (
	ErrUnsupportedCountry = errors.New("unsupported country")
	ErrDestinationExists  = errors.New("destination already has data; use force to overwrite")
	ErrNoCountries        = errors.New("no countries to update")
)

// Store is the dataset storage the updater reads and writes.
type Store interface {
	Load(code string) ([]model.Record, error)
	Save(code string, records []model.Record) error
	HasData(code string) (bool, error)
	Codes() ([]string, error)
}

// Mirror receives every dataset after it was saved.
type Mirror interface {
	Write(ctx context.Context, ds model.Dataset, runID uuid.UUID) error
}

// Options configures what a run does.
type Options struct {
	Years     model.YearRange
	Mode      Mode
	Force     bool
	Countries []string // used when Run gets no codes; empty means every stored code
}

// Updater runs update passes.
type Updater struct {
	src    source.Source
	store  Store
	mirror Mirror
	opts   Options
	logger *slog.Logger
	lookup func(code string) (countries.Entry, bool)
	now    func() time.Time
}

// Option configures an Updater.
type Option func(*Updater)

// WithMirror enables the database mirror.
func WithMirror(m Mirror) Option {
	return func(u *Updater) {
		u.mirror = m
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(u *Updater) {
		u.logger = logger
	}
}

// WithLookup replaces the country table lookup.
func WithLookup(fn func(code string) (countries.Entry, bool)) Option {
	return func(u *Updater) {
		u.lookup = fn
	}
}

// New creates an Updater.
func New(src source.Source, store Store, opts Options, options ...Option) *Updater {
	if opts.Mode == "" {
		opts.Mode = ModeAppend
	}
	u := &Updater{
		src:    src,
		store:  store,
		opts:   opts,
		logger: slog.Default(),
		lookup: countries.Lookup,
		now:    time.Now,
	}
	for _, o := range options {
		o(u)
	}
	return u
}

// Run updates codes, or the configured countries, or every stored country,
// in that order of preference. The returned error is only for problems that
// prevent the run from starting; per-country failures are in the report.
func (u *Updater) Run(ctx context.Context, codes []string) (*Report, error) {
	if err := u.opts.Years.Validate(); err != nil {
		return nil, err
	}

	codes, err := u.resolveCodes(codes)
	if err != nil {
		return nil, err
	}

	report := &Report{
		RunID:     uuid.New(),
		Source:    u.src.Name(),
		Mode:      u.opts.Mode,
		Force:     u.opts.Force,
		Years:     u.opts.Years,
		StartedAt: u.now(),
	}

	logger := u.logger.With("run_id", report.RunID)
	logger.Info("update run started",
		"source", report.Source,
		"mode", report.Mode,
		"force", report.Force,
		"years", report.Years.String(),
		"countries", len(codes),
	)

	for i, code := range codes {
		if ctx.Err() != nil {
			for _, rest := range codes[i:] {
				report.Failures = append(report.Failures, Failure{Country: rest, Kind: KindCanceled, Err: ctx.Err()})
			}
			break
		}

		res, fail := u.updateCountry(ctx, logger, report.RunID, code)
		if res != nil {
			report.Results = append(report.Results, *res)
		}
		if fail != nil {
			logger.Warn("country update failed",
				"country", code,
				"kind", fail.Kind,
				"error", fail.Err,
			)
			report.Failures = append(report.Failures, *fail)
		}
	}

	report.FinishedAt = u.now()
	return report, nil
}

func (u *Updater) resolveCodes(codes []string) ([]string, error) {
	if len(codes) == 0 {
		codes = u.opts.Countries
	}
	if len(codes) == 0 {
		stored, err := u.store.Codes()
		if err != nil {
			return nil, fmt.Errorf("discover countries: %w", err)
		}
		codes = stored
	}
	if len(codes) == 0 {
		return nil, ErrNoCountries
	}
	return codes, nil
}

// updateCountry runs the pipeline for one code. A mirror failure returns
// both a Result (the file was written) and a Failure.
func (u *Updater) updateCountry(ctx context.Context, logger *slog.Logger, runID uuid.UUID, code string) (*Result, *Failure) {
	fail := func(kind Kind, err error) *Failure {
		return &Failure{Country: code, Kind: kind, Err: err}
	}

	entry, ok := u.lookup(code)
	if !ok {
		return nil, fail(KindUnsupported, fmt.Errorf("%w: %s", ErrUnsupportedCountry, code))
	}

	logger = logger.With("country", code)
	logger.Info("updating country", "calendar_id", entry.CalendarID, "locale", entry.Locale)

	var existing []model.Record
	switch u.opts.Mode {
	case ModeRecreate:
		if !u.opts.Force {
			has, err := u.store.HasData(code)
			if err != nil {
				return nil, fail(KindStorage, err)
			}
			if has {
				return nil, fail(KindAlreadyExists, fmt.Errorf("%w: %s", ErrDestinationExists, code))
			}
		}
	default:
		records, err := u.store.Load(code)
		if err != nil {
			if errors.Is(err, model.ErrMalformedRecord) {
				return nil, fail(KindMalformed, err)
			}
			return nil, fail(KindStorage, err)
		}
		existing = records
	}

	fetched, err := u.src.FetchHolidays(ctx, entry, u.opts.Years)
	if err != nil {
		return nil, fail(classifyFetchError(ctx, err), err)
	}
	for i, r := range fetched {
		if err := r.Validate(); err != nil {
			return nil, fail(KindMalformed, fmt.Errorf("fetched record %d: %w", i, err))
		}
	}
	fetched = u.opts.Years.Filter(fetched)

	if len(fetched) == 0 {
		msg := "source returned no holidays, leaving file untouched"
		if u.opts.Mode == ModeRecreate && u.opts.Force {
			if has, _ := u.store.HasData(code); has {
				msg = "source returned no holidays, keeping stale dataset despite force"
			}
		}
		logger.Warn(msg)
		return &Result{Country: code, Outcome: OutcomeEmpty}, nil
	}

	merged, stats := merge.MergeWithStats(existing, fetched)
	ds := model.Dataset{CountryCode: code, Records: merged}
	if err := ds.Validate(); err != nil {
		return nil, fail(KindMalformed, err)
	}

	if err := u.store.Save(code, ds.Records); err != nil {
		return nil, fail(KindStorage, err)
	}

	res := &Result{Country: code, Outcome: OutcomeWritten, Fetched: len(fetched), Stats: stats}
	logger.Info("country updated",
		"fetched", len(fetched),
		"added", stats.Added,
		"replaced", stats.Replaced,
		"total", stats.Total,
	)

	if u.mirror != nil {
		if err := u.mirror.Write(ctx, ds, runID); err != nil {
			return res, fail(KindMirror, err)
		}
	}

	return res, nil
}

func classifyFetchError(ctx context.Context, err error) Kind {
	switch {
	case ctx.Err() != nil, errors.Is(err, context.Canceled):
		return KindCanceled
	case errors.Is(err, source.ErrNotFound):
		return KindNotFound
	case errors.Is(err, model.ErrMalformedRecord):
		return KindMalformed
	default:
		return KindTransport
	}
}
