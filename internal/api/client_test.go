package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rickgao/holiday-data/internal/countries"
	"github.com/rickgao/holiday-data/internal/model"
	"github.com/rickgao/holiday-data/internal/source"
)

// TestNewClient tests client construction with various options.
func TestNewClient(t *testing.T) {
	t.Run("default values", func(t *testing.T) {
		c := NewClient("https://api.example.com", "test-key")

		if c.baseURL != "https://api.example.com" {
			t.Errorf("baseURL = %q, want %q", c.baseURL, "https://api.example.com")
		}
		if c.apiKey != "test-key" {
			t.Errorf("apiKey = %q, want %q", c.apiKey, "test-key")
		}
		if c.httpClient.Timeout != 30*time.Second {
			t.Errorf("Timeout = %v, want %v", c.httpClient.Timeout, 30*time.Second)
		}
		if c.maxRetries != 3 {
			t.Errorf("maxRetries = %d, want %d", c.maxRetries, 3)
		}
		if c.retryBackoff != time.Second {
			t.Errorf("retryBackoff = %v, want %v", c.retryBackoff, time.Second)
		}
		if c.userAgent != DefaultUserAgent {
			t.Errorf("userAgent = %q, want %q", c.userAgent, DefaultUserAgent)
		}
		if c.pageSize != DefaultPageSize {
			t.Errorf("pageSize = %d, want %d", c.pageSize, DefaultPageSize)
		}
		if c.logger == nil {
			t.Error("logger should not be nil")
		}
	})

	t.Run("with timeout option", func(t *testing.T) {
		c := NewClient("https://api.example.com", "", WithTimeout(5*time.Second))
		if c.httpClient.Timeout != 5*time.Second {
			t.Errorf("Timeout = %v, want %v", c.httpClient.Timeout, 5*time.Second)
		}
	})

	t.Run("with retries option", func(t *testing.T) {
		c := NewClient("https://api.example.com", "", WithRetries(5, 2*time.Second))
		if c.maxRetries != 5 {
			t.Errorf("maxRetries = %d, want %d", c.maxRetries, 5)
		}
		if c.retryBackoff != 2*time.Second {
			t.Errorf("retryBackoff = %v, want %v", c.retryBackoff, 2*time.Second)
		}
	})

	t.Run("with logger option", func(t *testing.T) {
		logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
		c := NewClient("https://api.example.com", "", WithLogger(logger))
		if c.logger != logger {
			t.Error("logger not set correctly")
		}
	})

	t.Run("with custom HTTP client", func(t *testing.T) {
		customClient := &http.Client{Timeout: 10 * time.Second}
		c := NewClient("https://api.example.com", "", WithHTTPClient(customClient))
		if c.httpClient != customClient {
			t.Error("custom HTTP client not set")
		}
	})

	t.Run("page size bounds", func(t *testing.T) {
		if c := NewClient("https://api.example.com", "", WithPageSize(100)); c.pageSize != 100 {
			t.Errorf("pageSize = %d, want 100", c.pageSize)
		}
		if c := NewClient("https://api.example.com", "", WithPageSize(5000)); c.pageSize != DefaultPageSize {
			t.Errorf("pageSize = %d, want %d", c.pageSize, DefaultPageSize)
		}
		if c := NewClient("https://api.example.com", "", WithPageSize(0)); c.pageSize != DefaultPageSize {
			t.Errorf("pageSize = %d, want %d", c.pageSize, DefaultPageSize)
		}
	})
}

// TestAPIError tests the APIError type.
func TestAPIError(t *testing.T) {
	t.Run("Error method", func(t *testing.T) {
		err := &APIError{StatusCode: 404, Message: "Not Found"}
		expected := "calendar api error 404: Not Found"
		if err.Error() != expected {
			t.Errorf("Error() = %q, want %q", err.Error(), expected)
		}
	})

	t.Run("IsRetryable", func(t *testing.T) {
		tests := []struct {
			code     int
			expected bool
		}{
			{500, true},
			{502, true},
			{503, true},
			{429, true},
			{400, false},
			{403, false},
			{404, false},
			{200, false},
		}

		for _, tt := range tests {
			err := &APIError{StatusCode: tt.code}
			if got := err.IsRetryable(); got != tt.expected {
				t.Errorf("IsRetryable() for status %d = %v, want %v", tt.code, got, tt.expected)
			}
		}
	})

	t.Run("404 matches source.ErrNotFound", func(t *testing.T) {
		var err error = &APIError{StatusCode: 404}
		if !errors.Is(err, source.ErrNotFound) {
			t.Error("404 should match source.ErrNotFound")
		}
		err = &APIError{StatusCode: 500}
		if errors.Is(err, source.ErrNotFound) {
			t.Error("500 should not match source.ErrNotFound")
		}
	})

	t.Run("message from error envelope", func(t *testing.T) {
		err := newAPIError(403, []byte(`{"error":{"code":403,"message":"API key not valid."}}`))
		if err.Message != "API key not valid." {
			t.Errorf("Message = %q, want %q", err.Message, "API key not valid.")
		}
		err = newAPIError(502, []byte(`<html>bad gateway</html>`))
		if err.Message != "Bad Gateway" {
			t.Errorf("Message = %q, want %q", err.Message, "Bad Gateway")
		}
	})
}

// TestDoRequest tests the HTTP request functionality.
func TestDoRequest(t *testing.T) {
	t.Run("successful request", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Accept") != "application/json" {
				t.Errorf("Accept header = %q, want %q", r.Header.Get("Accept"), "application/json")
			}
			if r.Header.Get("User-Agent") != DefaultUserAgent {
				t.Errorf("User-Agent = %q, want %q", r.Header.Get("User-Agent"), DefaultUserAgent)
			}
			if r.URL.Query().Get("key") != "test-key" {
				t.Errorf("key = %q, want %q", r.URL.Query().Get("key"), "test-key")
			}
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{"status": "ok"}`))
		}))
		defer server.Close()

		c := NewClient(server.URL, "test-key")
		body, err := c.doRequest(context.Background(), http.MethodGet, "/test", nil, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(body) != `{"status": "ok"}` {
			t.Errorf("body = %q, want %q", string(body), `{"status": "ok"}`)
		}
	})

	t.Run("request without API key", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Query().Has("key") {
				t.Errorf("key should be absent, got %q", r.URL.Query().Get("key"))
			}
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{}`))
		}))
		defer server.Close()

		c := NewClient(server.URL, "")
		if _, err := c.doRequest(context.Background(), http.MethodGet, "/test", nil, nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("extra headers", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Accept-Language") != "ja" {
				t.Errorf("Accept-Language = %q, want %q", r.Header.Get("Accept-Language"), "ja")
			}
			w.Write([]byte(`{}`))
		}))
		defer server.Close()

		c := NewClient(server.URL, "key")
		header := http.Header{"Accept-Language": []string{"ja"}}
		if _, err := c.doRequest(context.Background(), http.MethodGet, "/test", nil, header); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("4xx error returns APIError", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"error":{"code":404,"message":"Not Found"}}`))
		}))
		defer server.Close()

		c := NewClient(server.URL, "key")
		_, err := c.doRequest(context.Background(), http.MethodGet, "/test", nil, nil)
		if err == nil {
			t.Fatal("expected error, got nil")
		}

		apiErr, ok := err.(*APIError)
		if !ok {
			t.Fatalf("expected *APIError, got %T", err)
		}
		if apiErr.StatusCode != 404 {
			t.Errorf("StatusCode = %d, want %d", apiErr.StatusCode, 404)
		}
		if !strings.Contains(string(apiErr.Body), "Not Found") {
			t.Errorf("Body should contain 'Not Found', got %q", string(apiErr.Body))
		}
	})

	t.Run("context cancellation redacts key", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(100 * time.Millisecond)
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		c := NewClient(server.URL, "secret-key")
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := c.doRequest(ctx, http.MethodGet, "/test", nil, nil)
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if !strings.Contains(err.Error(), "context canceled") {
			t.Errorf("error should contain 'context canceled', got %v", err)
		}
		if strings.Contains(err.Error(), "secret-key") {
			t.Errorf("error leaks API key: %v", err)
		}
	})
}

// TestDoWithRetry tests the retry logic.
func TestDoWithRetry(t *testing.T) {
	t.Run("retries on 5xx and succeeds", func(t *testing.T) {
		var attempts int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			n := atomic.AddInt32(&attempts, 1)
			if n < 3 {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			w.Write([]byte(`{"ok": true}`))
		}))
		defer server.Close()

		c := NewClient(server.URL, "key", WithRetries(3, 10*time.Millisecond))
		if _, err := c.doWithRetry(context.Background(), http.MethodGet, "/test", nil, nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if attempts != 3 {
			t.Errorf("attempts = %d, want 3", attempts)
		}
	})

	t.Run("retries on 429 and succeeds", func(t *testing.T) {
		var attempts int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if atomic.AddInt32(&attempts, 1) == 1 {
				w.WriteHeader(http.StatusTooManyRequests)
				return
			}
			w.Write([]byte(`{}`))
		}))
		defer server.Close()

		c := NewClient(server.URL, "key", WithRetries(3, 10*time.Millisecond))
		if _, err := c.doWithRetry(context.Background(), http.MethodGet, "/test", nil, nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if attempts != 2 {
			t.Errorf("attempts = %d, want 2", attempts)
		}
	})

	t.Run("does not retry on 404", func(t *testing.T) {
		var attempts int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&attempts, 1)
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		c := NewClient(server.URL, "key", WithRetries(3, 10*time.Millisecond))
		_, err := c.doWithRetry(context.Background(), http.MethodGet, "/test", nil, nil)
		if !errors.Is(err, source.ErrNotFound) {
			t.Errorf("err = %v, want source.ErrNotFound", err)
		}
		if attempts != 1 {
			t.Errorf("attempts = %d, want 1", attempts)
		}
	})

	t.Run("max retries exceeded", func(t *testing.T) {
		var attempts int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&attempts, 1)
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		c := NewClient(server.URL, "key", WithRetries(2, 10*time.Millisecond))
		_, err := c.doWithRetry(context.Background(), http.MethodGet, "/test", nil, nil)
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if !strings.Contains(err.Error(), "max retries exceeded") {
			t.Errorf("error should contain 'max retries exceeded', got %v", err)
		}
		// 1 initial + 2 retries = 3 attempts
		if attempts != 3 {
			t.Errorf("attempts = %d, want 3", attempts)
		}
	})

	t.Run("context cancellation during retry", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		c := NewClient(server.URL, "key", WithRetries(5, 50*time.Millisecond))
		ctx, cancel := context.WithTimeout(context.Background(), 80*time.Millisecond)
		defer cancel()

		_, err := c.doWithRetry(ctx, http.MethodGet, "/test", nil, nil)
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if !strings.Contains(err.Error(), "context") {
			t.Errorf("error should be context-related, got %v", err)
		}
	})
}

const usCalendar = "en.usa.official#holiday@group.v.calendar.google.com"

// TestListEvents tests the ListEvents method.
func TestListEvents(t *testing.T) {
	t.Run("request shape", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			wantPath := "/calendars/" + usCalendar + "/events"
			if r.URL.Path != wantPath {
				t.Errorf("path = %q, want %q", r.URL.Path, wantPath)
			}
			q := r.URL.Query()
			checks := map[string]string{
				"timeMin":      "2025-01-01T00:00:00Z",
				"timeMax":      "2028-01-01T00:00:00Z",
				"singleEvents": "true",
				"maxResults":   "2500",
				"orderBy":      "startTime",
				"pageToken":    "tok",
				"key":          "key",
			}
			for k, want := range checks {
				if got := q.Get(k); got != want {
					t.Errorf("%s = %q, want %q", k, got, want)
				}
			}
			json.NewEncoder(w).Encode(EventsResponse{
				Items: []APIEvent{
					{ID: "a", Summary: "New Year's Day", Start: APIEventTime{Date: "2025-01-01"}},
				},
				NextPageToken: "next",
			})
		}))
		defer server.Close()

		c := NewClient(server.URL, "key")
		resp, err := c.ListEvents(context.Background(), usCalendar, ListEventsOptions{
			TimeMin:    "2025-01-01T00:00:00Z",
			TimeMax:    "2028-01-01T00:00:00Z",
			PageToken:  "tok",
			MaxResults: 2500,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(resp.Items) != 1 || resp.Items[0].Summary != "New Year's Day" {
			t.Errorf("Items = %+v", resp.Items)
		}
		if resp.NextPageToken != "next" {
			t.Errorf("NextPageToken = %q, want %q", resp.NextPageToken, "next")
		}
	})

	t.Run("invalid JSON response", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`not valid json`))
		}))
		defer server.Close()

		c := NewClient(server.URL, "key")
		_, err := c.ListEvents(context.Background(), usCalendar, ListEventsOptions{})
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if !strings.Contains(err.Error(), "unmarshal") {
			t.Errorf("error should contain 'unmarshal', got %v", err)
		}
	})
}

// TestListAllEvents tests pagination.
func TestListAllEvents(t *testing.T) {
	t.Run("multiple pages", func(t *testing.T) {
		var requestCount int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			count := atomic.AddInt32(&requestCount, 1)
			token := r.URL.Query().Get("pageToken")

			switch {
			case count == 1 && token == "":
				json.NewEncoder(w).Encode(EventsResponse{
					Items:         []APIEvent{{ID: "1"}, {ID: "2"}},
					NextPageToken: "page2",
				})
			case count == 2 && token == "page2":
				json.NewEncoder(w).Encode(EventsResponse{
					Items:         []APIEvent{{ID: "3"}},
					NextPageToken: "page3",
				})
			case count == 3 && token == "page3":
				json.NewEncoder(w).Encode(EventsResponse{
					Items: []APIEvent{{ID: "4"}},
				})
			default:
				t.Errorf("unexpected request: count=%d token=%q", count, token)
			}
		}))
		defer server.Close()

		c := NewClient(server.URL, "key")
		events, err := c.ListAllEvents(context.Background(), usCalendar, ListEventsOptions{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(events) != 4 {
			t.Errorf("len(events) = %d, want 4", len(events))
		}
		if requestCount != 3 {
			t.Errorf("requestCount = %d, want 3", requestCount)
		}
	})

	t.Run("respects existing context deadline", func(t *testing.T) {
		requestCh := make(chan struct{}, 1)
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestCh <- struct{}{}
			time.Sleep(100 * time.Millisecond)
			json.NewEncoder(w).Encode(EventsResponse{})
		}))
		defer server.Close()

		c := NewClient(server.URL, "key")
		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		if _, err := c.ListAllEvents(ctx, usCalendar, ListEventsOptions{}); err == nil {
			t.Fatal("expected timeout error")
		}
		<-requestCh
	})
}

// TestFetchHolidays tests the source.Source implementation end to end.
func TestFetchHolidays(t *testing.T) {
	t.Run("flattens pages, filters years, dedupes by date", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Accept-Language") != "ja" {
				t.Errorf("Accept-Language = %q, want %q", r.Header.Get("Accept-Language"), "ja")
			}
			if r.URL.Query().Get("pageToken") == "" {
				json.NewEncoder(w).Encode(EventsResponse{
					Items: []APIEvent{
						{Summary: "大晦日", Start: APIEventTime{Date: "2024-12-31"}},
						{Summary: "元日", Start: APIEventTime{Date: "2025-01-01"}},
						{Summary: "成人の日", Start: APIEventTime{DateTime: "2025-01-13T00:00:00+09:00"}},
					},
					NextPageToken: "p2",
				})
				return
			}
			json.NewEncoder(w).Encode(EventsResponse{
				Items: []APIEvent{
					{Summary: "元日 ", Start: APIEventTime{Date: "2025-01-01"}},
					{Summary: "no start"},
					{Summary: "取り消し", Status: "cancelled", Start: APIEventTime{Date: "2025-02-01"}},
				},
			})
		}))
		defer server.Close()

		entry, _ := countries.Lookup("JP")
		c := NewClient(server.URL, "key")
		got, err := c.FetchHolidays(context.Background(), entry, model.YearRange{Start: 2025, End: 2025})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := []string{
			"2025-01-01T00:00:00.000Z 元日",
			"2025-01-13T00:00:00.000Z 成人の日",
		}
		if len(got) != len(want) {
			t.Fatalf("got %v, want %v", got, want)
		}
		for i := range want {
			if got[i].String() != want[i] {
				t.Errorf("record %d = %q, want %q", i, got[i].String(), want[i])
			}
		}
	})

	t.Run("canonicalizes locale for Accept-Language", func(t *testing.T) {
		tests := []struct {
			locale string
			want   string
		}{
			{"EN-us", "en-US"},
			{"123456789", ""},
		}
		for _, tt := range tests {
			var got []string
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = r.Header.Values("Accept-Language")
				w.Write([]byte(`{"items":[]}`))
			}))

			c := NewClient(server.URL, "key")
			entry := countries.Custom("US", "en.usa.official#holiday@group.v.calendar.google.com", tt.locale)
			if _, err := c.FetchHolidays(context.Background(), entry, model.YearRange{Start: 2025, End: 2025}); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			server.Close()

			if tt.want == "" {
				if len(got) != 0 {
					t.Errorf("locale %q: Accept-Language = %v, want none", tt.locale, got)
				}
				continue
			}
			if len(got) != 1 || got[0] != tt.want {
				t.Errorf("locale %q: Accept-Language = %v, want %q", tt.locale, got, tt.want)
			}
		}
	})

	t.Run("unknown calendar", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"error":{"code":404,"message":"Not Found"}}`))
		}))
		defer server.Close()

		c := NewClient(server.URL, "key")
		_, err := c.FetchHolidays(context.Background(), countries.Custom("XX", "en.nowhere#holiday@group.v.calendar.google.com", "en"), model.YearRange{Start: 2025, End: 2025})
		if !errors.Is(err, source.ErrNotFound) {
			t.Errorf("err = %v, want source.ErrNotFound", err)
		}
	})
}
