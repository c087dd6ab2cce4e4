package config

import (
	"errors"
	"fmt"
	"slices"

	"github.com/robfig/cron/v3"

	"github.com/rickgao/holiday-data/internal/model"
)

var (
	validSources   = []string{"rest", "sdk", "ics"}
	validModes     = []string{"append", "recreate"}
	validLogLevels = []string{"debug", "info", "warn", "error"}
)

// Validate checks that all required fields are set and values are valid.
func (c *Config) Validate() error {
	if !slices.Contains(validSources, c.Source) {
		return fmt.Errorf("source must be one of rest, sdk, ics, got %q", c.Source)
	}

	if c.API.BaseURL == "" {
		return errors.New("api.base_url is required")
	}
	if c.API.MaxRetries < 0 {
		return errors.New("api.max_retries must be >= 0")
	}
	if c.API.PageSize < 1 || c.API.PageSize > DefaultPageSize {
		return fmt.Errorf("api.page_size must be between 1 and %d, got %d", DefaultPageSize, c.API.PageSize)
	}

	if c.Store.Dir == "" {
		return errors.New("store.dir is required")
	}

	if err := c.Update.validate(); err != nil {
		return err
	}

	if c.Schedule.Cron != "" {
		if _, err := cron.ParseStandard(c.Schedule.Cron); err != nil {
			return fmt.Errorf("schedule.cron is invalid: %w", err)
		}
		if c.Schedule.HealthPort < 1 || c.Schedule.HealthPort > 65535 {
			return fmt.Errorf("schedule.health_port must be between 1 and 65535, got %d", c.Schedule.HealthPort)
		}
	}

	if c.Database.Enabled() {
		if err := c.Database.Postgres.validate("database.postgres"); err != nil {
			return err
		}
	}

	if !slices.Contains(validLogLevels, c.Log.Level) {
		return fmt.Errorf("log.level must be one of debug, info, warn, error, got %q", c.Log.Level)
	}

	return nil
}

func (u *UpdateConfig) validate() error {
	if u.StartYear == 0 {
		return errors.New("update.start_year is required")
	}
	if u.EndYear == 0 {
		return errors.New("update.end_year is required")
	}
	if err := u.Years().Validate(); err != nil {
		return fmt.Errorf("update: %w", err)
	}
	if !slices.Contains(validModes, u.Mode) {
		return fmt.Errorf("update.mode must be append or recreate, got %q", u.Mode)
	}
	for i, code := range u.Countries {
		if !model.ValidCountryCode(code) {
			return fmt.Errorf("update.countries[%d] %q is not a two-letter uppercase code", i, code)
		}
	}
	return nil
}

func (db *DBConfig) validate(prefix string) error {
	if db.Host == "" {
		return fmt.Errorf("%s.host is required", prefix)
	}
	if db.Name == "" {
		return fmt.Errorf("%s.name is required", prefix)
	}
	if db.User == "" {
		return fmt.Errorf("%s.user is required", prefix)
	}
	if db.Password == "" {
		return fmt.Errorf("%s.password is required", prefix)
	}
	if db.MaxConns < 1 {
		return fmt.Errorf("%s.max_conns must be >= 1", prefix)
	}
	if db.MinConns < 0 {
		return fmt.Errorf("%s.min_conns must be >= 0", prefix)
	}
	if db.MinConns > db.MaxConns {
		return fmt.Errorf("%s.min_conns (%d) cannot exceed max_conns (%d)", prefix, db.MinConns, db.MaxConns)
	}
	return nil
}
