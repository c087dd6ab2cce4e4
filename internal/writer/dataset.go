package writer

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/rickgao/holiday-data/internal/model"
)

// Schema creates the mirror table.
const Schema = `
CREATE TABLE IF NOT EXISTS holidays (
	country_code CHAR(2)     NOT NULL,
	date         DATE        NOT NULL,
	name         TEXT        NOT NULL,
	run_id       UUID        NOT NULL,
	updated_at   TIMESTAMPTZ NOT NULL,
	PRIMARY KEY (country_code, date)
)`

const (
	deleteCountrySQL = `DELETE FROM holidays WHERE country_code = $1`
	upsertHolidaySQL = `
		INSERT INTO holidays (country_code, date, name, run_id, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (country_code, date) DO UPDATE
		SET name = EXCLUDED.name, run_id = EXCLUDED.run_id, updated_at = EXCLUDED.updated_at
	`
)

// DB is the subset of *pgxpool.Pool the writer needs.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Metrics counts writer activity.
type Metrics struct {
	Writes int64
	Rows   int64
	Errors int64
}

// DatasetWriter replaces a country's rows with a dataset.
type DatasetWriter struct {
	db     DB
	logger *slog.Logger
	now    func() time.Time

	mu      sync.Mutex
	metrics Metrics
}

// NewDatasetWriter creates a DatasetWriter.
func NewDatasetWriter(db DB, logger *slog.Logger) *DatasetWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &DatasetWriter{
		db:     db,
		logger: logger,
		now:    time.Now,
	}
}

// EnsureSchema creates the holidays table if it does not exist.
func (w *DatasetWriter) EnsureSchema(ctx context.Context) error {
	if _, err := w.db.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("create holidays table: %w", err)
	}
	return nil
}

// Write replaces ds.CountryCode's rows with ds.Records in one transaction.
func (w *DatasetWriter) Write(ctx context.Context, ds model.Dataset, runID uuid.UUID) error {
	start := time.Now()

	if err := w.write(ctx, ds, runID); err != nil {
		w.mu.Lock()
		w.metrics.Errors++
		w.mu.Unlock()
		return fmt.Errorf("mirror %s: %w", ds.CountryCode, err)
	}

	w.mu.Lock()
	w.metrics.Writes++
	w.metrics.Rows += int64(len(ds.Records))
	w.mu.Unlock()

	w.logger.Debug("mirrored dataset",
		"country", ds.CountryCode,
		"rows", len(ds.Records),
		"duration", time.Since(start),
	)
	return nil
}

func (w *DatasetWriter) write(ctx context.Context, ds model.Dataset, runID uuid.UUID) error {
	tx, err := w.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	batch := buildBatch(ds, runID, w.now().UTC())
	results := tx.SendBatch(ctx, batch)
	for i := 0; i < batch.Len(); i++ {
		if _, err := results.Exec(); err != nil {
			results.Close()
			return fmt.Errorf("batch statement %d: %w", i, err)
		}
	}
	if err := results.Close(); err != nil {
		return fmt.Errorf("close batch: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Stats returns current metrics.
func (w *DatasetWriter) Stats() Metrics {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.metrics
}

// buildBatch queues the delete of the country's rows followed by one
// upsert per record.
func buildBatch(ds model.Dataset, runID uuid.UUID, updatedAt time.Time) *pgx.Batch {
	batch := &pgx.Batch{}
	batch.Queue(deleteCountrySQL, ds.CountryCode)
	for _, r := range ds.Records {
		batch.Queue(upsertHolidaySQL,
			ds.CountryCode,
			model.Day(r.Date),
			r.Name,
			runID,
			updatedAt,
		)
	}
	return batch
}
