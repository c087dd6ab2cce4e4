// Command holidayfetch exports holidays from Google public holiday
// calendars to CSV or JSON without touching the datasets.
//
//	holidayfetch -countries JP_ja,US,GB -out holidays.csv
//	holidayfetch -calendar-id 'ja.japanese.official#holiday@group.v.calendar.google.com' -out jp.csv
//	holidayfetch -countries JP_ja -format json -out jp.json
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rickgao/holiday-data/internal/api"
	"github.com/rickgao/holiday-data/internal/auth"
	"github.com/rickgao/holiday-data/internal/config"
	"github.com/rickgao/holiday-data/internal/countries"
	"github.com/rickgao/holiday-data/internal/model"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("holidayfetch", flag.ContinueOnError)
	apiKey := fs.String("api-key", "", "Google API key (default: $"+auth.EnvAPIKey+" or the env file)")
	envFile := fs.String("env-file", config.DefaultEnvFile, "dotenv file consulted for the API key")
	countryList := fs.String("countries", "", "comma-separated calendar keys, e.g. JP_ja,JP_en,US,GB")
	calendarID := fs.String("calendar-id", "", "fetch one specific calendar ID (ignores -countries)")
	startYear := fs.Int("start-year", 2025, "first year to fetch (inclusive)")
	endYear := fs.Int("end-year", 2027, "last year to fetch (inclusive)")
	format := fs.String("format", "csv", "output format: csv or json")
	out := fs.String("out", "holidays.csv", "output file path, - for stdout")
	baseURL := fs.String("base-url", config.DefaultAPIBaseURL, "Calendar API base URL")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	years := model.YearRange{Start: *startYear, End: *endYear}
	if err := years.Validate(); err != nil {
		logger.Error("invalid years", "error", err)
		return 2
	}
	if *format != "csv" && *format != "json" {
		logger.Error("invalid format", "format", *format)
		return 2
	}

	targets, skipped := resolveTargets(*calendarID, *countryList)
	for _, hint := range skipped {
		logger.Warn("unknown calendar key, skipping; pass -calendar-id instead", "key", hint)
	}
	if len(targets) == 0 {
		logger.Error("provide -countries or -calendar-id",
			"example", "-countries JP_ja,US,GB",
		)
		return 2
	}

	key, _, err := auth.ResolveAPIKey(*apiKey, *envFile)
	if err != nil {
		logger.Error("missing credentials", "error", err)
		return 2
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	client := api.NewClient(*baseURL, key,
		api.WithLogger(logger),
		api.WithTimeout(30*time.Second),
	)

	rows, err := fetchAll(ctx, client, targets, years, logger)
	if err != nil {
		logger.Error("fetch failed", "error", err)
		return 1
	}
	sortRows(rows)

	var w io.WriteCloser = nopCloser{os.Stdout}
	if *out != "-" {
		f, err := os.Create(*out)
		if err != nil {
			logger.Error("create output", "error", err)
			return 1
		}
		w = f
	}

	if err := writeOutput(w, *format, rows); err != nil {
		logger.Error("write output", "error", err)
		return 1
	}

	logger.Info("wrote rows", "count", len(rows), "out", *out, "format", *format)
	return 0
}

// Target is one calendar to export.
type Target struct {
	Key   string
	Entry countries.Entry
}

// resolveTargets returns the calendars to fetch and the keys it could not
// resolve. A calendar ID wins over the key list.
func resolveTargets(calendarID, list string) ([]Target, []string) {
	if calendarID != "" {
		return []Target{{Key: "custom", Entry: countries.Custom("", calendarID, localeOf(calendarID))}}, nil
	}

	var targets []Target
	var skipped []string
	for _, hint := range strings.Split(list, ",") {
		hint = strings.TrimSpace(hint)
		if hint == "" {
			continue
		}
		entry, ok := countries.LookupHint(hint)
		if !ok {
			skipped = append(skipped, hint)
			continue
		}
		targets = append(targets, Target{Key: hint, Entry: entry})
	}
	return targets, skipped
}

// localeOf reads the locale prefix of a Google holiday calendar ID.
func localeOf(calendarID string) string {
	prefix, _, found := strings.Cut(calendarID, ".")
	if !found {
		return ""
	}
	return prefix
}

// fetchAll fetches every target in order and concatenates the rows.
func fetchAll(ctx context.Context, client *api.Client, targets []Target, years model.YearRange, logger *slog.Logger) ([]Row, error) {
	var rows []Row
	for _, tgt := range targets {
		logger.Info("fetching", "key", tgt.Key, "calendar_id", tgt.Entry.CalendarID)
		fetched, err := fetchRows(ctx, client, tgt, years)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", tgt.Key, err)
		}
		rows = append(rows, fetched...)
	}
	return rows, nil
}

// fetchRows lists a target's events and keeps those inside years.
func fetchRows(ctx context.Context, client *api.Client, tgt Target, years model.YearRange) ([]Row, error) {
	events, err := client.ListAllEvents(ctx, tgt.Entry.CalendarID, api.ListEventsOptions{
		TimeMin: years.TimeMin().Format(time.RFC3339),
		TimeMax: years.TimeMax().Format(time.RFC3339),
		Locale:  tgt.Entry.AcceptLanguage(),
	})
	if err != nil {
		return nil, err
	}

	rows := make([]Row, 0, len(events))
	for _, ev := range events {
		if ev.Status == "cancelled" {
			continue
		}
		date := api.EventDate(ev)
		if date == "" {
			continue
		}
		d, err := time.Parse(time.DateOnly, date)
		if err != nil || !years.Contains(d) {
			continue
		}
		rows = append(rows, Row{
			Date:        date,
			Name:        ev.Summary,
			CalendarID:  tgt.Entry.CalendarID,
			EventID:     ev.ID,
			CalendarKey: tgt.Key,
		})
	}
	return rows, nil
}
