// Package config loads server settings from an optional YAML file and
// VOLUNTEERHUB_* environment overrides.
package config

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is prepended to every environment override.
const EnvPrefix = "VOLUNTEERHUB_"

// Defaults.
const (
	DefaultListen        = ":8080"
	DefaultWeekStart     = "sunday"
	DefaultTimezone      = "UTC"
	DefaultRefreshCron   = "*/15 * * * *"
	DefaultSlowRequestMs = 200
	DefaultSlowQueryMs   = 50
	DefaultRateLimit     = 10
	DefaultEnv           = "development"
)

// Validation errors.
var (
	ErrInvalidWeekStart = errors.New("week_start must be sunday or monday")
	ErrInvalidTimezone  = errors.New("timezone is not a known IANA location")
	ErrInvalidCron      = errors.New("refresh is not a valid cron schedule")
	ErrInvalidCSRFKey   = errors.New("csrf_key must be 64 hex characters")
	ErrInvalidRateLimit = errors.New("rate_limit must be positive")
	ErrSQLQueryMissing  = errors.New("sqlite_query is required when sqlite_path is set")
)

// ICSFeed is one subscribed calendar feed merged into the event source.
type ICSFeed struct {
	ID  string `yaml:"id"`
	URL string `yaml:"url"`
}

// Config is the server configuration.
type Config struct {
	Listen        string    `yaml:"listen"`
	Env           string    `yaml:"env"`
	LogLevel      string    `yaml:"log_level"`
	FixturesPath  string    `yaml:"fixtures"`     // empty uses the embedded demo set
	SQLitePath    string    `yaml:"sqlite_path"`  // optional read-only event database
	SQLiteQuery   string    `yaml:"sqlite_query"` // SELECT whose columns become event fields
	ICS           []ICSFeed `yaml:"ics"`
	RefreshCron   string    `yaml:"refresh"`
	WeekStart     string    `yaml:"week_start"`
	Timezone      string    `yaml:"timezone"`
	SlowRequestMs int       `yaml:"slow_request_ms"`
	SlowQueryMs   int       `yaml:"slow_query_ms"`
	RateLimit     int       `yaml:"rate_limit"` // requests per second per IP
	CSRFKey       string    `yaml:"csrf_key"`   // hex, 32 bytes
}

// Default returns the configuration used when no file or env is present.
func Default() Config {
	return Config{
		Listen:        DefaultListen,
		Env:           DefaultEnv,
		LogLevel:      "info",
		RefreshCron:   DefaultRefreshCron,
		WeekStart:     DefaultWeekStart,
		Timezone:      DefaultTimezone,
		SlowRequestMs: DefaultSlowRequestMs,
		SlowQueryMs:   DefaultSlowQueryMs,
		RateLimit:     DefaultRateLimit,
	}
}

// Load reads path (if non-empty) over the defaults, then applies env overrides.
// PRE: path is empty or names a readable YAML file
// POST: returned Config has passed Validate
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	cfg.applyEnv(os.Getenv)
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// applyEnv overrides fields from VOLUNTEERHUB_* variables. Unparsable
// numbers keep the current value.
func (c *Config) applyEnv(getenv func(string) string) {
	env := func(key, fallback string) string {
		if v := getenv(EnvPrefix + key); v != "" {
			return v
		}
		return fallback
	}
	envInt := func(key string, fallback int) int {
		if n, err := strconv.Atoi(getenv(EnvPrefix + key)); err == nil {
			return n
		}
		return fallback
	}

	c.Listen = env("ADDR", c.Listen)
	c.Env = env("ENV", c.Env)
	c.LogLevel = env("LOG_LEVEL", c.LogLevel)
	c.FixturesPath = env("FIXTURES", c.FixturesPath)
	c.SQLitePath = env("SQLITE_PATH", c.SQLitePath)
	c.SQLiteQuery = env("SQLITE_QUERY", c.SQLiteQuery)
	c.RefreshCron = env("REFRESH", c.RefreshCron)
	c.WeekStart = env("WEEK_START", c.WeekStart)
	c.Timezone = env("TIMEZONE", c.Timezone)
	c.CSRFKey = env("CSRF_KEY", c.CSRFKey)
	c.SlowRequestMs = envInt("SLOW_REQUEST_MS", c.SlowRequestMs)
	c.SlowQueryMs = envInt("SLOW_QUERY_MS", c.SlowQueryMs)
	c.RateLimit = envInt("RATE_LIMIT", c.RateLimit)

	// Comma separated list of URLs; ids are assigned by position.
	if urls := getenv(EnvPrefix + "ICS_URLS"); urls != "" {
		c.ICS = nil
		for i, u := range strings.Split(urls, ",") {
			if u = strings.TrimSpace(u); u != "" {
				c.ICS = append(c.ICS, ICSFeed{ID: "ics-" + strconv.Itoa(i+1), URL: u})
			}
		}
	}
}

func (c *Config) normalize() {
	c.WeekStart = strings.ToLower(strings.TrimSpace(c.WeekStart))
	if c.WeekStart == "" {
		c.WeekStart = DefaultWeekStart
	}
	if c.Timezone == "" {
		c.Timezone = DefaultTimezone
	}
	if c.SlowRequestMs <= 0 {
		c.SlowRequestMs = DefaultSlowRequestMs
	}
	if c.SlowQueryMs <= 0 {
		c.SlowQueryMs = DefaultSlowQueryMs
	}
	for i := range c.ICS {
		if c.ICS[i].ID == "" {
			c.ICS[i].ID = "ics-" + strconv.Itoa(i+1)
		}
	}
}

// Validate checks the settings that would otherwise fail at startup.
// PRE: none
// POST: returns nil or one of the Err* values wrapped with context
func (c Config) Validate() error {
	if c.WeekStart != "sunday" && c.WeekStart != "monday" {
		return ErrInvalidWeekStart
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidTimezone, c.Timezone)
	}
	if c.RefreshCron != "" {
		if _, err := cron.ParseStandard(c.RefreshCron); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidCron, err)
		}
	}
	if c.CSRFKey != "" {
		if key, err := hex.DecodeString(c.CSRFKey); err != nil || len(key) != 32 {
			return ErrInvalidCSRFKey
		}
	}
	if c.RateLimit <= 0 {
		return ErrInvalidRateLimit
	}
	if c.SQLitePath != "" && strings.TrimSpace(c.SQLiteQuery) == "" {
		return ErrSQLQueryMissing
	}
	return nil
}

// IsProduction reports whether Env names the production environment.
func (c Config) IsProduction() bool {
	return c.Env == "production"
}

// Location returns the configured timezone, falling back to UTC.
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// FirstWeekday maps WeekStart onto a time.Weekday.
func (c Config) FirstWeekday() time.Weekday {
	if c.WeekStart == "monday" {
		return time.Monday
	}
	return time.Sunday
}

// SlowRequest returns the slow request threshold as a duration.
func (c Config) SlowRequest() time.Duration {
	return time.Duration(c.SlowRequestMs) * time.Millisecond
}

// SlowQuery returns the slow query threshold as a duration.
func (c Config) SlowQuery() time.Duration {
	return time.Duration(c.SlowQueryMs) * time.Millisecond
}

// CSRFKeyBytes decodes CSRFKey. ok is false when no key is configured.
func (c Config) CSRFKeyBytes() (key []byte, ok bool) {
	if c.CSRFKey == "" {
		return nil, false
	}
	key, err := hex.DecodeString(c.CSRFKey)
	if err != nil {
		return nil, false
	}
	return key, true
}
