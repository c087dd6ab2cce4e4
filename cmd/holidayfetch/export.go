package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"
)

// Row is one exported holiday.
type Row struct {
	Date        string `json:"date"`
	Name        string `json:"name"`
	CalendarID  string `json:"calendarId"`
	EventID     string `json:"gcal_event_id"`
	CalendarKey string `json:"calendarKey"`
}

var csvHeader = []string{"date", "name", "calendarId", "gcal_event_id", "calendarKey"}

// sortRows orders by date, then calendar key.
func sortRows(rows []Row) {
	slices.SortStableFunc(rows, func(a, b Row) int {
		if c := strings.Compare(a.Date, b.Date); c != 0 {
			return c
		}
		return strings.Compare(a.CalendarKey, b.CalendarKey)
	})
}

func writeCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write([]string{r.Date, r.Name, r.CalendarID, r.EventID, r.CalendarKey}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeJSON(w io.Writer, rows []Row) error {
	if rows == nil {
		rows = []Row{}
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}

// writeOutput renders rows in format and closes w. A write error takes
// precedence over a close error.
func writeOutput(w io.WriteCloser, format string, rows []Row) error {
	var err error
	switch format {
	case "csv":
		err = writeCSV(w, rows)
	default:
		err = writeJSON(w, rows)
	}
	if cerr := w.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("close output: %w", cerr)
	}
	return err
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
