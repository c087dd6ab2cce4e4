package main

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/rickgao/holiday-data/internal/poller"
	"github.com/rickgao/holiday-data/internal/updater"
	"github.com/rickgao/holiday-data/internal/version"
)

type statusSource interface {
	Status() poller.Status
}

type pinger interface {
	Ping(ctx context.Context) error
}

type healthResponse struct {
	Status     string           `json:"status"`
	Version    version.Info     `json:"version"`
	Components map[string]any   `json:"components"`
	LastRun    *updater.Summary `json:"last_run,omitempty"`
}

// newHealthHandler serves GET /health. The status is "starting" until the
// first run finishes, "degraded" when the last run had failures, and
// "unhealthy" (503) when the mirror database is unreachable.
func newHealthHandler(p statusSource, db pinger) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		st := p.Status()
		health := healthResponse{
			Status:  "healthy",
			Version: version.Get(),
			Components: map[string]any{
				"poller": map[string]any{
					"runs":       st.Runs,
					"skipped":    st.Skipped,
					"running":    st.Running,
					"last_start": st.LastStart,
				},
			},
		}

		switch {
		case st.Err != nil:
			health.Status = "degraded"
			health.Components["last_error"] = st.Err.Error()
		case st.Report == nil:
			health.Status = "starting"
		case st.Report.Failed() > 0:
			health.Status = "degraded"
		}
		if st.Report != nil {
			sum := st.Report.Summary()
			health.LastRun = &sum
		}

		if db != nil {
			if err := db.Ping(ctx); err != nil {
				health.Status = "unhealthy"
				health.Components["postgres"] = map[string]string{
					"status": "disconnected",
					"error":  err.Error(),
				}
			} else {
				health.Components["postgres"] = "connected"
			}
		}

		w.Header().Set("Content-Type", "application/json")
		if health.Status == "unhealthy" {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		json.NewEncoder(w).Encode(health)
	})

	return mux
}
