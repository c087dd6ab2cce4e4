// Package countries holds the static mapping from country code to the public
// holiday calendar that serves it.
//
// JP is requested in Japanese; every other country uses the English calendar.
package countries

import (
	"net/url"
	"slices"
	"strings"

	"golang.org/x/text/language"
)

// Entry addresses one country's holiday calendar.
type Entry struct {
	Code       string // Two-letter code used for the dataset file name
	CalendarID string // Google Calendar ID of the public holiday calendar
	Locale     string // Language of the holiday names ("ja", "en")
}

// Tag parses Locale as a BCP 47 language tag.
func (e Entry) Tag() (language.Tag, error) {
	return language.Parse(e.Locale)
}

// AcceptLanguage returns Locale in canonical BCP 47 form for the
// Accept-Language header, or "" when Locale is empty or not a valid tag.
func (e Entry) AcceptLanguage() string {
	if e.Locale == "" {
		return ""
	}
	tag, err := e.Tag()
	if err != nil {
		return ""
	}
	return tag.String()
}

// ICSURL returns the public iCal feed of the entry's calendar under base,
// e.g. https://calendar.google.com/calendar/ical/<id>/public/basic.ics.
func (e Entry) ICSURL(base string) string {
	return strings.TrimRight(base, "/") + "/" + url.PathEscape(e.CalendarID) + "/public/basic.ics"
}

var index = func() map[string]Entry {
	m := make(map[string]Entry, len(table))
	for _, e := range table {
		if _, dup := m[e.Code]; dup {
			panic("countries: duplicate code " + e.Code)
		}
		m[e.Code] = e
	}
	return m
}()

// Lookup returns the entry for an uppercase country code.
func Lookup(code string) (Entry, bool) {
	e, ok := index[code]
	return e, ok
}

// Codes returns every supported code, sorted.
func Codes() []string {
	codes := make([]string, 0, len(index))
	for code := range index {
		codes = append(codes, code)
	}
	slices.Sort(codes)
	return codes
}

// Custom builds an entry for a calendar that is not in the table.
func Custom(code, calendarID, locale string) Entry {
	if locale == "" {
		locale = "en"
	}
	return Entry{Code: code, CalendarID: calendarID, Locale: locale}
}

// LookupHint resolves a fetch-tool hint ("JP_ja", "US") to an entry. Hints
// fall back to the main table for plain country codes.
func LookupHint(hint string) (Entry, bool) {
	if id, ok := Hints[hint]; ok {
		code, locale, found := strings.Cut(hint, "_")
		if !found {
			locale = strings.SplitN(id, ".", 2)[0]
		}
		return Entry{Code: code, CalendarID: id, Locale: locale}, true
	}
	return Lookup(hint)
}
