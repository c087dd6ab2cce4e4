package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/rickgao/holiday-data/internal/api"
	"github.com/rickgao/holiday-data/internal/config"
	"github.com/rickgao/holiday-data/internal/gcalsdk"
	"github.com/rickgao/holiday-data/internal/ics"
	"github.com/rickgao/holiday-data/internal/source"
)

func needsAPIKey(name string) bool {
	return name != "ics"
}

// newSource builds the fetch backend named by cfg.Source.
func newSource(ctx context.Context, cfg *config.Config, apiKey string, logger *slog.Logger) (source.Source, error) {
	switch cfg.Source {
	case "rest":
		return api.NewClient(
			cfg.API.BaseURL,
			apiKey,
			api.WithLogger(logger),
			api.WithTimeout(cfg.API.Timeout),
			api.WithRetries(cfg.API.MaxRetries, cfg.API.RetryBackoff),
			api.WithUserAgent(cfg.API.UserAgent),
			api.WithPageSize(cfg.API.PageSize),
		), nil
	case "sdk":
		opts := []gcalsdk.Option{
			gcalsdk.WithLogger(logger),
			gcalsdk.WithPageSize(cfg.API.PageSize),
		}
		if cfg.API.BaseURL != config.DefaultAPIBaseURL {
			opts = append(opts, gcalsdk.WithEndpoint(strings.TrimRight(cfg.API.BaseURL, "/")+"/"))
		}
		return gcalsdk.New(ctx, apiKey, opts...)
	case "ics":
		return ics.NewFetcher(
			cfg.ICS.BaseURL,
			ics.WithLogger(logger),
			ics.WithHTTPClient(&http.Client{Timeout: cfg.ICS.Timeout}),
		), nil
	}
	return nil, fmt.Errorf("unknown source %q", cfg.Source)
}
