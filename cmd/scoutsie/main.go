package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"scoutsie/internal/config"
)

var (
	cfgFile string
	verbose bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "scoutsie",
		Short: "Scout group compliance and training-course tooling",
		Long: `scoutsie automates two chores for a volunteer Scout group:

  renewals   read the exported member training and vetting reports and
             list who needs a safeguarding or vetting renewal soon, and
             who has already lapsed
  courses    log into the member portal, walk the training events list,
             and export the course offerings to CSV (and optionally
             iCalendar)`,
	}

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(renewalsCmd())
	rootCmd.AddCommand(coursesCmd())
	rootCmd.AddCommand(versionCmd())
	rootCmd.AddCommand(configCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// versionCmd creates the "version" subcommand.
func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("scoutsie %s\n", config.Version)
		},
	}
}

// configCmd creates the "config" subcommand for inspecting configuration.
func configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			fmt.Printf("Portal:\n")
			fmt.Printf("  Base URL:        %s\n", cfg.Portal.BaseURL)
			fmt.Printf("  Username set:    %v\n", cfg.Portal.Username != "")
			fmt.Printf("  Years:           %v\n", cfg.Portal.Years)
			fmt.Printf("  Max Pages:       %d\n", cfg.Portal.MaxPages)
			fmt.Printf("  Nav Timeout:     %s\n", cfg.Portal.NavTimeout)
			fmt.Printf("  Settle Delay:    %s\n", cfg.Portal.SettleDelay)
			fmt.Printf("\nBrowser:\n")
			fmt.Printf("  Headless:        %v\n", cfg.Browser.Headless)
			fmt.Printf("  Stealth:         %v\n", cfg.Browser.Stealth)
			fmt.Printf("  Window Size:     %s\n", cfg.Browser.WindowSize)
			fmt.Printf("\nRenewals:\n")
			fmt.Printf("  Reports Dir:     %s\n", cfg.Renewals.ReportsDir)
			fmt.Printf("  Validity:        %d days\n", cfg.Renewals.ValidityDays)
			fmt.Printf("  Window:          %d days\n", cfg.Renewals.WindowDays)
			fmt.Printf("\nExport:\n")
			fmt.Printf("  CSV Path:        %s\n", cfg.Export.CSVPath)
			fmt.Printf("  ICS Path:        %s\n", cfg.Export.ICSPath)
			return nil
		},
	}
}

// setupLogger creates a structured logger from the logging config.
func setupLogger(cfg *config.Config) *slog.Logger {
	level := slog.LevelInfo
	switch cfg.Logging.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	if verbose {
		level = slog.LevelDebug
	}

	out := os.Stderr
	if cfg.Logging.Output == "stdout" {
		out = os.Stdout
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler = slog.NewTextHandler(out, opts)
	if cfg.Logging.Format == "json" {
		handler = slog.NewJSONHandler(out, opts)
	}
	return slog.New(handler)
}
