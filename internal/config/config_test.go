package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfigValid(t *testing.T) {
	if err := Validate(DefaultConfig()); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Renewals.ValidityDays != 1095 {
		t.Errorf("validity_days = %d, want 1095", cfg.Renewals.ValidityDays)
	}
	if cfg.Renewals.WindowDays != 90 {
		t.Errorf("window_days = %d, want 90", cfg.Renewals.WindowDays)
	}
	if cfg.Portal.MaxPages != 100 {
		t.Errorf("max_pages = %d, want 100", cfg.Portal.MaxPages)
	}
	if len(cfg.Portal.CourseSelectors) == 0 {
		t.Error("expected default course selectors")
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scoutsie.yaml")
	yaml := `
portal:
  base_url: https://portal.example.ie
  max_pages: 7
  nav_timeout: 30s
renewals:
  window_days: 30
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Portal.BaseURL != "https://portal.example.ie" {
		t.Errorf("base_url = %q", cfg.Portal.BaseURL)
	}
	if cfg.Portal.MaxPages != 7 {
		t.Errorf("max_pages = %d", cfg.Portal.MaxPages)
	}
	if cfg.Portal.NavTimeout != 30*time.Second {
		t.Errorf("nav_timeout = %v", cfg.Portal.NavTimeout)
	}
	if cfg.Renewals.WindowDays != 30 {
		t.Errorf("window_days = %d", cfg.Renewals.WindowDays)
	}
	// Untouched keys keep their defaults.
	if cfg.Renewals.ValidityDays != 1095 {
		t.Errorf("validity_days = %d, want default", cfg.Renewals.ValidityDays)
	}
}

func TestLoadCredentialsFromEnv(t *testing.T) {
	t.Setenv("SCOUTSIE_PORTAL_USERNAME", "ann@example.ie")
	t.Setenv("SCOUTSIE_PORTAL_PASSWORD", "hunter2")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Portal.Username != "ann@example.ie" {
		t.Errorf("username = %q", cfg.Portal.Username)
	}
	if cfg.Portal.Password != "hunter2" {
		t.Errorf("password not read from environment")
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing explicit config file")
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"bad scheme", func(c *Config) { c.Portal.BaseURL = "ftp://example.ie" }, "scheme"},
		{"no host", func(c *Config) { c.Portal.BaseURL = "https://" }, "host"},
		{"zero max pages", func(c *Config) { c.Portal.MaxPages = 0 }, "max_pages"},
		{"zero nav timeout", func(c *Config) { c.Portal.NavTimeout = 0 }, "nav_timeout"},
		{"absurd year", func(c *Config) { c.Portal.Years = []int{1999} }, "years"},
		{"no selectors", func(c *Config) { c.Portal.CourseSelectors = nil }, "course_selectors"},
		{"zero validity", func(c *Config) { c.Renewals.ValidityDays = 0 }, "validity_days"},
		{"negative window", func(c *Config) { c.Renewals.WindowDays = -1 }, "window_days"},
		{"inverted columns", func(c *Config) { c.Renewals.CourseColumnLast = 2 }, "column range"},
		{"no csv path", func(c *Config) { c.Export.CSVPath = "" }, "csv_path"},
		{"bad log level", func(c *Config) { c.Logging.Level = "loud" }, "logging.level"},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }, "logging.format"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(cfg)
			err := Validate(cfg)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("error %q does not mention %q", err, tc.wantErr)
			}
		})
	}
}
