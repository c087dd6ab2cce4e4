// Package api provides the Google Calendar v3 REST client used to fetch
// public holiday calendars.
//
// REST endpoint:
//   - https://www.googleapis.com/calendar/v3
//
// Only GET /calendars/{calendarId}/events is used. Public holiday calendars
// need an API key (query parameter "key"), not OAuth.
package api
