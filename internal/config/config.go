package config

import (
	"time"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Config is the root configuration for scoutsie.
type Config struct {
	Portal   PortalConfig   `mapstructure:"portal"   yaml:"portal"`
	Browser  BrowserConfig  `mapstructure:"browser"  yaml:"browser"`
	Renewals RenewalsConfig `mapstructure:"renewals" yaml:"renewals"`
	Export   ExportConfig   `mapstructure:"export"   yaml:"export"`
	Logging  LoggingConfig  `mapstructure:"logging"  yaml:"logging"`
}

// PortalConfig controls the member-portal scraping session.
//
// The portal is an unversioned third-party web application, so every element
// lookup is a ladder of strategies rather than a single selector. The ladders
// live here as configuration: when the site's markup changes the fix is a
// config edit, not a rebuild.
type PortalConfig struct {
	BaseURL   string `mapstructure:"base_url"   yaml:"base_url"`
	LoginPath string `mapstructure:"login_path" yaml:"login_path"`
	Username  string `mapstructure:"username"   yaml:"username"`
	Password  string `mapstructure:"password"   yaml:"password"`

	// Years to request through the Event Year filter.
	Years []int `mapstructure:"years" yaml:"years"`

	// MaxPages bounds the pagination walk per year.
	MaxPages int `mapstructure:"max_pages" yaml:"max_pages"`

	// NavTimeout bounds each element lookup; SettleDelay is the pause after
	// actions that trigger an async page update.
	NavTimeout   time.Duration `mapstructure:"nav_timeout"   yaml:"nav_timeout"`
	SettleDelay  time.Duration `mapstructure:"settle_delay"  yaml:"settle_delay"`
	ProbeTimeout time.Duration `mapstructure:"probe_timeout" yaml:"probe_timeout"`

	// Navigation labels clicked on the way to the events list.
	ManageGroupLabel string `mapstructure:"manage_group_label" yaml:"manage_group_label"`
	EventsLabel      string `mapstructure:"events_label"       yaml:"events_label"`

	// Event-type filter: accept a radio/label whose text matches one of
	// FilterLabels and none of FilterExcludeLabels.
	FilterLabels        []string `mapstructure:"filter_labels"         yaml:"filter_labels"`
	FilterExcludeLabels []string `mapstructure:"filter_exclude_labels" yaml:"filter_exclude_labels"`

	// CSS selector candidates for course containers and next-page controls.
	CourseSelectors []string `mapstructure:"course_selectors" yaml:"course_selectors"`
	NextSelectors   []string `mapstructure:"next_selectors"   yaml:"next_selectors"`

	// CourseKeywords gate which text blocks are treated as course listings.
	CourseKeywords []string `mapstructure:"course_keywords" yaml:"course_keywords"`

	// OverlaySelector matches loading scrims that intercept clicks.
	OverlaySelector string `mapstructure:"overlay_selector" yaml:"overlay_selector"`

	// ScreenshotDir receives diagnostic screenshots on lookup failures.
	ScreenshotDir string `mapstructure:"screenshot_dir" yaml:"screenshot_dir"`
}

// BrowserConfig controls the Chromium instance.
type BrowserConfig struct {
	Headless    bool          `mapstructure:"headless"      yaml:"headless"`
	Stealth     bool          `mapstructure:"stealth"       yaml:"stealth"`
	NoSandbox   bool          `mapstructure:"no_sandbox"    yaml:"no_sandbox"`
	WindowSize  string        `mapstructure:"window_size"   yaml:"window_size"`
	UserDataDir string        `mapstructure:"user_data_dir" yaml:"user_data_dir"`
	PageTimeout time.Duration `mapstructure:"page_timeout"  yaml:"page_timeout"`
}

// RenewalsConfig controls the compliance checker.
type RenewalsConfig struct {
	// ReportsDir is searched for the two exported workbooks by prefix.
	ReportsDir     string `mapstructure:"reports_dir"     yaml:"reports_dir"`
	TrainingPrefix string `mapstructure:"training_prefix" yaml:"training_prefix"`
	VettingPrefix  string `mapstructure:"vetting_prefix"  yaml:"vetting_prefix"`

	// ValidityDays is how long a completed credential remains valid;
	// WindowDays is the renewal lookahead.
	ValidityDays int `mapstructure:"validity_days" yaml:"validity_days"`
	WindowDays   int `mapstructure:"window_days"   yaml:"window_days"`

	// Training-course free text lives at a fixed column range in the export.
	CourseColumnFirst int `mapstructure:"course_column_first" yaml:"course_column_first"`
	CourseColumnLast  int `mapstructure:"course_column_last"  yaml:"course_column_last"`
}

// ExportConfig controls scraper output.
type ExportConfig struct {
	CSVPath string `mapstructure:"csv_path" yaml:"csv_path"`
	// ICSPath enables iCalendar export when non-empty.
	ICSPath string `mapstructure:"ics_path" yaml:"ics_path"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	Level  string `mapstructure:"level"  yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
	Output string `mapstructure:"output" yaml:"output"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Portal: PortalConfig{
			BaseURL:          "https://my.scouts.ie",
			LoginPath:        "/login",
			Years:            []int{2026, 2027},
			MaxPages:         100,
			NavTimeout:       15 * time.Second,
			SettleDelay:      3 * time.Second,
			ProbeTimeout:     10 * time.Second,
			ManageGroupLabel: "Manage Group",
			EventsLabel:      "Events",
			FilterLabels:     []string{"Training"},
			FilterExcludeLabels: []string{
				"My Training",
			},
			CourseSelectors: []string{
				"table tr",
				"ul li",
				"[class*='course']",
				"[class*='event']",
				"[class*='training']",
				"[class*='card']",
				"[class*='item']",
			},
			NextSelectors: []string{
				`button[aria-label="Next page"]`,
				`button[aria-label="Next"]`,
				`a[rel="next"]`,
				`li.next a`,
			},
			CourseKeywords: []string{
				"safeguarding", "training", "course", "workshop",
				"first aid", "adult", "leader", "scouter",
				"woodbadge", "youth programme", "scouting together",
			},
			OverlaySelector: "[class*='overlay-scrim'], [class*='backdrop']",
			ScreenshotDir:   "./screenshots",
		},
		Browser: BrowserConfig{
			Headless:    true,
			Stealth:     true,
			NoSandbox:   true,
			WindowSize:  "1920,1080",
			PageTimeout: 30 * time.Second,
		},
		Renewals: RenewalsConfig{
			ReportsDir:        ".",
			TrainingPrefix:    "Member-Trainings-Report",
			VettingPrefix:     "Member-Vetting-Report",
			ValidityDays:      1095,
			WindowDays:        90,
			CourseColumnFirst: 5,
			CourseColumnLast:  25,
		},
		Export: ExportConfig{
			CSVPath: "./training_courses.csv",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: "stderr",
		},
	}
}
