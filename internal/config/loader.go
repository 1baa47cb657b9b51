package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Load reads configuration from file, environment, and defaults.
// Priority (highest to lowest): env vars > config file > defaults.
// Credentials are normally supplied as SCOUTSIE_PORTAL_USERNAME and
// SCOUTSIE_PORTAL_PASSWORD rather than committed to a config file.
func Load(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	v.SetConfigType("yaml")

	setDefaults(v, cfg)

	v.SetEnvPrefix("SCOUTSIE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("scoutsie")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		home, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(filepath.Join(home, ".scoutsie"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && configPath != "" {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found is okay if not explicitly specified
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return cfg, nil
}

// setDefaults registers default values in viper.
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("portal.base_url", cfg.Portal.BaseURL)
	v.SetDefault("portal.login_path", cfg.Portal.LoginPath)
	// Credentials must be registered for the env override to reach Unmarshal.
	v.SetDefault("portal.username", cfg.Portal.Username)
	v.SetDefault("portal.password", cfg.Portal.Password)
	v.SetDefault("portal.years", cfg.Portal.Years)
	v.SetDefault("portal.max_pages", cfg.Portal.MaxPages)
	v.SetDefault("portal.nav_timeout", cfg.Portal.NavTimeout)
	v.SetDefault("portal.settle_delay", cfg.Portal.SettleDelay)
	v.SetDefault("portal.probe_timeout", cfg.Portal.ProbeTimeout)
	v.SetDefault("portal.manage_group_label", cfg.Portal.ManageGroupLabel)
	v.SetDefault("portal.events_label", cfg.Portal.EventsLabel)
	v.SetDefault("portal.filter_labels", cfg.Portal.FilterLabels)
	v.SetDefault("portal.filter_exclude_labels", cfg.Portal.FilterExcludeLabels)
	v.SetDefault("portal.course_selectors", cfg.Portal.CourseSelectors)
	v.SetDefault("portal.next_selectors", cfg.Portal.NextSelectors)
	v.SetDefault("portal.course_keywords", cfg.Portal.CourseKeywords)
	v.SetDefault("portal.overlay_selector", cfg.Portal.OverlaySelector)
	v.SetDefault("portal.screenshot_dir", cfg.Portal.ScreenshotDir)

	v.SetDefault("browser.headless", cfg.Browser.Headless)
	v.SetDefault("browser.stealth", cfg.Browser.Stealth)
	v.SetDefault("browser.no_sandbox", cfg.Browser.NoSandbox)
	v.SetDefault("browser.window_size", cfg.Browser.WindowSize)
	v.SetDefault("browser.user_data_dir", cfg.Browser.UserDataDir)
	v.SetDefault("browser.page_timeout", cfg.Browser.PageTimeout)

	v.SetDefault("renewals.reports_dir", cfg.Renewals.ReportsDir)
	v.SetDefault("renewals.training_prefix", cfg.Renewals.TrainingPrefix)
	v.SetDefault("renewals.vetting_prefix", cfg.Renewals.VettingPrefix)
	v.SetDefault("renewals.validity_days", cfg.Renewals.ValidityDays)
	v.SetDefault("renewals.window_days", cfg.Renewals.WindowDays)
	v.SetDefault("renewals.course_column_first", cfg.Renewals.CourseColumnFirst)
	v.SetDefault("renewals.course_column_last", cfg.Renewals.CourseColumnLast)

	v.SetDefault("export.csv_path", cfg.Export.CSVPath)
	v.SetDefault("export.ics_path", cfg.Export.ICSPath)

	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("logging.format", cfg.Logging.Format)
	v.SetDefault("logging.output", cfg.Logging.Output)
}
