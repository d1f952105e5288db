package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the overall application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Booking  BookingConfig  `yaml:"booking"`
}

// ServerConfig holds the server-related configuration.
type ServerConfig struct {
	Port            int     `yaml:"port"`
	RateLimitPerSec float64 `yaml:"rate_limit_per_sec"`
	RateLimitBurst  int     `yaml:"rate_limit_burst"`
	CacheTTLSeconds int     `yaml:"cache_ttl_seconds"`
}

// DatabaseConfig holds the database connection configuration.
type DatabaseConfig struct {
	Driver                 string `yaml:"driver"` // "sqlite" or "postgres"
	DSN                    string `yaml:"dsn"`
	MaxOpenConns           int    `yaml:"max_open_conns"`
	MaxIdleConns           int    `yaml:"max_idle_conns"`
	ConnMaxLifetimeMinutes int    `yaml:"conn_max_lifetime_minutes"`
}

// BookingConfig holds the break-booking rules.
type BookingConfig struct {
	// Timezone is the fixed civil timezone for all date and booked-at
	// computations, independent of server locale.
	Timezone          string `yaml:"timezone"`
	DefaultLunchLimit int    `yaml:"default_lunch_limit"`
	DefaultTeaLimit   int    `yaml:"default_tea_limit"`
	// RebookCutoff is the local time ("HH:MM") at or after which an agent's
	// same-day booking is cleared once, letting a new shift rebook.
	RebookCutoff           string `yaml:"rebook_cutoff"`
	ClearConfirmTTLSeconds int    `yaml:"clear_confirm_ttl_seconds"`
	SelectionTTLHours      int    `yaml:"selection_ttl_hours"`
}

// Load reads the configuration from the given path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg Config
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, err
	}

	cfg.ApplyDefaults()
	return &cfg, nil
}

// ApplyDefaults fills unset fields with their defaults.
func (cfg *Config) ApplyDefaults() {
	if cfg.Server.Port <= 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.RateLimitPerSec <= 0 {
		cfg.Server.RateLimitPerSec = 10
	}
	if cfg.Server.RateLimitBurst <= 0 {
		cfg.Server.RateLimitBurst = 5
	}
	if cfg.Server.CacheTTLSeconds <= 0 {
		cfg.Server.CacheTTLSeconds = 30
	}

	if cfg.Database.Driver == "" {
		cfg.Database.Driver = "sqlite"
	}
	if cfg.Database.DSN == "" {
		cfg.Database.DSN = "data/breakdesk.db"
	}

	if cfg.Booking.Timezone == "" {
		cfg.Booking.Timezone = "Africa/Casablanca"
	}
	if cfg.Booking.DefaultLunchLimit <= 0 {
		cfg.Booking.DefaultLunchLimit = 5
	}
	if cfg.Booking.DefaultTeaLimit <= 0 {
		cfg.Booking.DefaultTeaLimit = 3
	}
	if cfg.Booking.RebookCutoff == "" {
		cfg.Booking.RebookCutoff = "11:59"
	}
	if cfg.Booking.ClearConfirmTTLSeconds <= 0 {
		cfg.Booking.ClearConfirmTTLSeconds = 120
	}
	if cfg.Booking.SelectionTTLHours <= 0 {
		cfg.Booking.SelectionTTLHours = 12
	}
}
