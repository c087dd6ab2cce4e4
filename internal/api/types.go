package api

// EventsResponse from GET /calendars/{calendarId}/events
type EventsResponse struct {
	Kind          string     `json:"kind"`
	Summary       string     `json:"summary"`
	TimeZone      string     `json:"timeZone"`
	NextPageToken string     `json:"nextPageToken"`
	Items         []APIEvent `json:"items"`
}

// APIEvent represents a calendar event. Holiday calendars publish all-day
// events, so Start.Date is normally set and Start.DateTime is empty.
type APIEvent struct {
	ID          string       `json:"id"`
	Status      string       `json:"status"`
	Summary     string       `json:"summary"`
	Description string       `json:"description"`
	Start       APIEventTime `json:"start"`
	End         APIEventTime `json:"end"`
}

// APIEventTime is either an all-day date ("2025-01-01") or an RFC 3339
// date-time.
type APIEventTime struct {
	Date     string `json:"date,omitempty"`
	DateTime string `json:"dateTime,omitempty"`
	TimeZone string `json:"timeZone,omitempty"`
}

// ListEventsOptions configures a ListEvents request.
type ListEventsOptions struct {
	TimeMin    string // RFC 3339, inclusive
	TimeMax    string // RFC 3339, exclusive
	PageToken  string
	MaxResults int
	Locale     string // Sent as Accept-Language
}
