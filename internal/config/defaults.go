package config

import "time"

// Default values for optional configuration fields.
const (
	DefaultSource       = "rest"
	DefaultAPIBaseURL   = "https://www.googleapis.com/calendar/v3"
	DefaultEnvFile      = ".env"
	DefaultUserAgent    = "holiday-updater/1.0"
	DefaultAPITimeout   = 30 * time.Second
	DefaultMaxRetries   = 3
	DefaultRetryBackoff = 1 * time.Second
	DefaultPageSize     = 2500
	DefaultICSBaseURL   = "https://calendar.google.com/calendar/ical"
	DefaultICSTimeout   = 15 * time.Second
	DefaultStoreDir     = "json"
	DefaultMode         = "append"
	DefaultHealthPort   = 8080
	DefaultLogLevel     = "info"
	DefaultDBPort       = 5432
	DefaultDBSSLMode    = "prefer"
	DefaultMaxConns     = 4
)

// ApplyDefaults fills unset optional fields.
func (c *Config) ApplyDefaults() {
	if c.Source == "" {
		c.Source = DefaultSource
	}

	// API defaults
	if c.API.BaseURL == "" {
		c.API.BaseURL = DefaultAPIBaseURL
	}
	if c.API.EnvFile == "" {
		c.API.EnvFile = DefaultEnvFile
	}
	if c.API.UserAgent == "" {
		c.API.UserAgent = DefaultUserAgent
	}
	if c.API.Timeout == 0 {
		c.API.Timeout = DefaultAPITimeout
	}
	if c.API.MaxRetries == 0 {
		c.API.MaxRetries = DefaultMaxRetries
	}
	if c.API.RetryBackoff == 0 {
		c.API.RetryBackoff = DefaultRetryBackoff
	}
	if c.API.PageSize == 0 {
		c.API.PageSize = DefaultPageSize
	}

	// ICS defaults
	if c.ICS.BaseURL == "" {
		c.ICS.BaseURL = DefaultICSBaseURL
	}
	if c.ICS.Timeout == 0 {
		c.ICS.Timeout = DefaultICSTimeout
	}

	if c.Store.Dir == "" {
		c.Store.Dir = DefaultStoreDir
	}
	if c.Update.Mode == "" {
		c.Update.Mode = DefaultMode
	}
	if c.Schedule.HealthPort == 0 {
		c.Schedule.HealthPort = DefaultHealthPort
	}
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}

	if c.Database.Enabled() {
		applyDBDefaults(&c.Database.Postgres)
	}
}

func applyDBDefaults(db *DBConfig) {
	if db.Port == 0 {
		db.Port = DefaultDBPort
	}
	if db.SSLMode == "" {
		db.SSLMode = DefaultDBSSLMode
	}
	if db.MaxConns == 0 {
		db.MaxConns = DefaultMaxConns
	}
}
