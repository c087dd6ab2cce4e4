package config

import (
	"log/slog"
	"strings"
	"time"

	"github.com/rickgao/holiday-data/internal/model"
)

// Config is the root configuration for the holiday updater.
type Config struct {
	Source   string         `yaml:"source"` // rest, sdk or ics
	API      APIConfig      `yaml:"api"`
	ICS      ICSConfig      `yaml:"ics"`
	Store    StoreConfig    `yaml:"store"`
	Update   UpdateConfig   `yaml:"update"`
	Schedule ScheduleConfig `yaml:"schedule"`
	Database DatabaseConfig `yaml:"database"`
	Log      LogConfig      `yaml:"log"`
}

// APIConfig holds Google Calendar API settings.
type APIConfig struct {
	BaseURL      string        `yaml:"base_url"`
	APIKey       string        `yaml:"api_key"`
	EnvFile      string        `yaml:"env_file"` // dotenv file consulted for GCAL_API_KEY
	UserAgent    string        `yaml:"user_agent"`
	Timeout      time.Duration `yaml:"timeout"`
	MaxRetries   int           `yaml:"max_retries"`
	RetryBackoff time.Duration `yaml:"retry_backoff"`
	PageSize     int           `yaml:"page_size"`
}

// ICSConfig holds settings for the public iCal feed source.
type ICSConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

// StoreConfig holds the flat-file store location.
type StoreConfig struct {
	Dir string `yaml:"dir"`
}

// UpdateConfig controls what a run fetches and how it writes.
type UpdateConfig struct {
	StartYear int      `yaml:"start_year"`
	EndYear   int      `yaml:"end_year"`
	Mode      string   `yaml:"mode"` // append or recreate
	Force     bool     `yaml:"force"`
	Countries []string `yaml:"countries"` // empty means every file in the store
}

// Years returns the configured inclusive year range.
func (u UpdateConfig) Years() model.YearRange {
	return model.YearRange{Start: u.StartYear, End: u.EndYear}
}

// ScheduleConfig enables periodic runs. An empty Cron runs once and exits.
type ScheduleConfig struct {
	Cron       string `yaml:"cron"`
	HealthPort int    `yaml:"health_port"`
}

// DatabaseConfig holds the optional Postgres mirror.
type DatabaseConfig struct {
	Postgres DBConfig `yaml:"postgres"`
}

// Enabled reports whether the mirror is configured.
func (d DatabaseConfig) Enabled() bool {
	return d.Postgres.Host != ""
}

// DBConfig holds a single database connection.
type DBConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"ssl_mode"`
	MaxConns int    `yaml:"max_conns"`
	MinConns int    `yaml:"min_conns"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `yaml:"level"`
}

// SlogLevel returns the configured level, or info when unset or unknown.
func (l LogConfig) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(l.Level))); err != nil {
		return slog.LevelInfo
	}
	return level
}
