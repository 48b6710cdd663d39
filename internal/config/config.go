// Package config provides configuration management for MediDonate.
// Configurations are loaded from TOML files with XDG-compliant paths and
// may be overridden from the environment.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Config holds the complete application configuration.
type Config struct {
	API       APIConfig       `toml:"api"`
	Display   DisplayConfig   `toml:"display"`
	Logging   LoggingConfig   `toml:"logging"`
	Journal   JournalConfig   `toml:"journal"`
	Directory DirectoryConfig `toml:"directory"`
}

// APIConfig points the client at the MediDonate service.
type APIConfig struct {
	BaseURL   string `toml:"base_url" env:"MEDIDONATE_API_URL, overwrite"`
	UserAgent string `toml:"user_agent"`
}

// DisplayConfig controls TUI appearance.
type DisplayConfig struct {
	ColorScheme ColorScheme `toml:"color_scheme" env:"MEDIDONATE_COLOR_SCHEME, overwrite"`
	DateFormat  string      `toml:"date_format"`
}

// ColorScheme defines the terminal color palette.
type ColorScheme string

const (
	ColorSchemeClinic ColorScheme = "clinic"
	ColorSchemeAmber  ColorScheme = "amber"
	ColorSchemeMono   ColorScheme = "mono"
)

// LoggingConfig controls application logging.
type LoggingConfig struct {
	Level      LogLevel `toml:"level" env:"MEDIDONATE_LOG_LEVEL, overwrite"`
	File       string   `toml:"file" env:"MEDIDONATE_LOG_FILE, overwrite"`
	MaxSizeMB  int      `toml:"max_size_mb"`
	MaxBackups int      `toml:"max_backups"`
	MaxAgeDays int      `toml:"max_age_days"`
}

// LogLevel defines logging verbosity.
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// JournalConfig controls the local activity journal.
type JournalConfig struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path" env:"MEDIDONATE_JOURNAL_PATH, overwrite"`
	// RetentionDays drops older entries at startup. Zero keeps everything.
	RetentionDays int `toml:"retention_days"`
}

// DirectoryConfig holds the fixed pick lists offered by the forms.
type DirectoryConfig struct {
	DonorCities    []CityOption `toml:"donor_cities"`
	DonationCities []string     `toml:"donation_cities"`
}

// CityOption is a selectable city with the id the service expects.
type CityOption struct {
	ID   string `toml:"id"`
	Name string `toml:"name"`
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	var errs []error

	if err := c.API.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("api: %w", err))
	}

	if err := c.Display.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("display: %w", err))
	}

	if err := c.Logging.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("logging: %w", err))
	}

	if err := c.Journal.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("journal: %w", err))
	}

	if err := c.Directory.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("directory: %w", err))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// Validate checks that the API configuration is valid.
func (a *APIConfig) Validate() error {
	if a.BaseURL == "" {
		return errors.New("base_url is required")
	}

	u, err := url.Parse(a.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base_url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid base_url scheme: %q", u.Scheme)
	}
	if u.Host == "" {
		return errors.New("base_url must include a host")
	}

	return nil
}

// Validate checks that the display configuration is valid.
func (d *DisplayConfig) Validate() error {
	var errs []error

	validSchemes := map[ColorScheme]bool{
		ColorSchemeClinic: true,
		ColorSchemeAmber:  true,
		ColorSchemeMono:   true,
	}

	if !validSchemes[d.ColorScheme] && d.ColorScheme != "" {
		errs = append(errs, fmt.Errorf("invalid color_scheme: %s", d.ColorScheme))
	}

	if d.DateFormat != "" {
		sample := time.Date(2001, 11, 23, 18, 30, 45, 0, time.UTC)
		if sample.Format(d.DateFormat) == d.DateFormat {
			errs = append(errs, fmt.Errorf("date_format %q contains no layout elements", d.DateFormat))
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// Validate checks that the logging configuration is valid.
func (l *LoggingConfig) Validate() error {
	var errs []error

	validLevels := map[LogLevel]bool{
		LogLevelDebug: true,
		LogLevelInfo:  true,
		LogLevelWarn:  true,
		LogLevelError: true,
	}

	if !validLevels[l.Level] && l.Level != "" {
		errs = append(errs, fmt.Errorf("invalid log level: %s", l.Level))
	}

	if l.MaxSizeMB < 0 {
		errs = append(errs, errors.New("max_size_mb must be non-negative"))
	}

	if l.MaxBackups < 0 {
		errs = append(errs, errors.New("max_backups must be non-negative"))
	}

	if l.MaxAgeDays < 0 {
		errs = append(errs, errors.New("max_age_days must be non-negative"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// Validate checks that the journal configuration is valid.
func (j *JournalConfig) Validate() error {
	var errs []error

	if j.Enabled && j.Path == "" {
		errs = append(errs, errors.New("path is required when the journal is enabled"))
	}

	if j.RetentionDays < 0 {
		errs = append(errs, errors.New("retention_days must be non-negative"))
	}

	return errors.Join(errs...)
}

// Validate checks that the directory lists are usable.
func (d *DirectoryConfig) Validate() error {
	var errs []error

	seen := make(map[string]bool, len(d.DonorCities))
	for i, c := range d.DonorCities {
		if strings.TrimSpace(c.ID) == "" || strings.TrimSpace(c.Name) == "" {
			errs = append(errs, fmt.Errorf("donor_cities[%d]: id and name are required", i))
			continue
		}
		if seen[c.ID] {
			errs = append(errs, fmt.Errorf("donor_cities[%d]: duplicate id %q", i, c.ID))
		}
		seen[c.ID] = true
	}

	for i, name := range d.DonationCities {
		if strings.TrimSpace(name) == "" {
			errs = append(errs, fmt.Errorf("donation_cities[%d]: empty name", i))
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// Default returns a configuration with sensible default values.
func Default() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:   "http://localhost:3000/api",
			UserAgent: "medidonate-tui",
		},
		Display: DisplayConfig{
			ColorScheme: ColorSchemeClinic,
			DateFormat:  "Jan 02, 2006",
		},
		Logging: LoggingConfig{
			Level:      LogLevelInfo,
			File:       "logs/medidonate.log",
			MaxSizeMB:  10,
			MaxBackups: 5,
			MaxAgeDays: 28,
		},
		Journal: JournalConfig{
			Enabled:       true,
			Path:          "activity.db",
			RetentionDays: 90,
		},
		Directory: DirectoryConfig{
			DonorCities: []CityOption{
				{ID: "1", Name: "Cairo"},
				{ID: "2", Name: "Alexandria"},
				{ID: "3", Name: "Giza"},
				{ID: "4", Name: "Luxor"},
				{ID: "5", Name: "Aswan"},
			},
			DonationCities: []string{
				"Cairo",
				"Alexandria",
				"Giza",
				"Shubra El-Kheima",
				"Port Said",
				"Suez",
				"Luxor",
				"Mansoura",
				"Tanta",
				"Asyut",
			},
		},
	}
}
