package config

import (
	"fmt"
	"net/url"
)

// Validate checks the configuration for invalid values.
func Validate(cfg *Config) error {
	u, err := url.Parse(cfg.Portal.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid portal.base_url %q: %w", cfg.Portal.BaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("portal.base_url scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("portal.base_url must have a host")
	}

	if cfg.Portal.MaxPages < 1 {
		return fmt.Errorf("portal.max_pages must be >= 1, got %d", cfg.Portal.MaxPages)
	}
	if cfg.Portal.NavTimeout <= 0 {
		return fmt.Errorf("portal.nav_timeout must be > 0")
	}
	for _, y := range cfg.Portal.Years {
		if y < 2000 || y > 2100 {
			return fmt.Errorf("portal.years entries must be 2000-2100, got %d", y)
		}
	}
	if len(cfg.Portal.CourseSelectors) == 0 {
		return fmt.Errorf("portal.course_selectors must not be empty")
	}

	if cfg.Renewals.ValidityDays < 1 {
		return fmt.Errorf("renewals.validity_days must be >= 1, got %d", cfg.Renewals.ValidityDays)
	}
	if cfg.Renewals.WindowDays < 0 {
		return fmt.Errorf("renewals.window_days must be >= 0, got %d", cfg.Renewals.WindowDays)
	}
	if cfg.Renewals.CourseColumnFirst < 0 || cfg.Renewals.CourseColumnLast < cfg.Renewals.CourseColumnFirst {
		return fmt.Errorf("renewals course column range %d..%d is invalid",
			cfg.Renewals.CourseColumnFirst, cfg.Renewals.CourseColumnLast)
	}

	if cfg.Export.CSVPath == "" {
		return fmt.Errorf("export.csv_path must not be empty")
	}

	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLogLevels[cfg.Logging.Level] {
		return fmt.Errorf("logging.level must be debug/info/warn/error, got %q", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "text" && cfg.Logging.Format != "json" {
		return fmt.Errorf("logging.format must be 'text' or 'json', got %q", cfg.Logging.Format)
	}

	return nil
}
