package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"scoutsie/internal/config"
	"scoutsie/internal/export"
	"scoutsie/internal/portal"
)

var (
	csvPath  string
	icsPath  string
	years    []int
	headful  bool
	maxPages int
)

// coursesCmd creates the "courses" subcommand.
func coursesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "courses",
		Short: "Scrape training-course offerings from the member portal",
		Long: `Logs into the member portal, navigates to the group events list, filters
to training events, walks the pagination for each configured year, and
exports the course offerings to CSV (and optionally iCalendar).

Credentials come from the config file or the SCOUTSIE_PORTAL_USERNAME and
SCOUTSIE_PORTAL_PASSWORD environment variables.`,
		RunE: runCourses,
	}

	cmd.Flags().StringVarP(&csvPath, "output", "o", "", "CSV output path")
	cmd.Flags().StringVar(&icsPath, "ics", "", "also write an iCalendar file to this path")
	cmd.Flags().IntSliceVar(&years, "years", nil, "event years to scrape (default from config)")
	cmd.Flags().BoolVar(&headful, "headful", false, "run the browser with a visible window")
	cmd.Flags().IntVar(&maxPages, "max-pages", 0, "pagination limit per year (0 = config default)")

	return cmd
}

// runCourses executes the courses command.
func runCourses(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if csvPath != "" {
		cfg.Export.CSVPath = csvPath
	}
	if icsPath != "" {
		cfg.Export.ICSPath = icsPath
	}
	if len(years) > 0 {
		cfg.Portal.Years = years
	}
	if headful {
		cfg.Browser.Headless = false
	}
	if maxPages > 0 {
		cfg.Portal.MaxPages = maxPages
	}
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if cfg.Portal.Username == "" || cfg.Portal.Password == "" {
		return fmt.Errorf("portal credentials required: set portal.username/portal.password or SCOUTSIE_PORTAL_USERNAME/SCOUTSIE_PORTAL_PASSWORD")
	}

	logger := setupLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Cheap reachability check before a browser is launched.
	if err := portal.Probe(ctx, &cfg.Portal, logger); err != nil {
		return err
	}

	browser, err := portal.Launch(cfg, logger)
	if err != nil {
		return err
	}
	defer browser.Close()

	start := time.Now()
	scraper := portal.NewScraper(browser, cfg, logger)
	courses, err := scraper.Run(ctx)
	if err != nil {
		if len(courses) == 0 {
			return err
		}
		// Partial results are still worth exporting.
		logger.Warn("scrape ended early, exporting partial results", "error", err, "courses", len(courses))
	}
	if len(courses) == 0 {
		return fmt.Errorf("no courses found")
	}

	if err := export.WriteCSV(cfg.Export.CSVPath, courses, logger); err != nil {
		return err
	}
	if cfg.Export.ICSPath != "" {
		if err := export.WriteICS(cfg.Export.ICSPath, courses, logger); err != nil {
			return err
		}
	}

	fmt.Printf("\nScrape complete in %s\n", time.Since(start).Round(time.Millisecond))
	fmt.Printf("   Courses:  %d unique\n", len(courses))
	fmt.Printf("   CSV:      %s\n", cfg.Export.CSVPath)
	if cfg.Export.ICSPath != "" {
		fmt.Printf("   ICS:      %s\n", cfg.Export.ICSPath)
	}

	return nil
}
