package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"scoutsie/internal/config"
	"scoutsie/internal/renewal"
	"scoutsie/internal/roster"
)

var (
	reportsDir string
	windowDays int
)

// renewalsCmd creates the "renewals" subcommand.
func renewalsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "renewals",
		Short: "Report safeguarding and vetting renewals due soon or expired",
		Long: `Reads the Member Trainings and Member Vetting reports exported from the
portal (located by filename prefix) and prints who needs a renewal within
the lookahead window and who has already lapsed.`,
		RunE: runRenewals,
	}

	cmd.Flags().StringVarP(&reportsDir, "reports-dir", "r", "", "directory containing the exported reports")
	cmd.Flags().IntVar(&windowDays, "window", 0, "renewal lookahead in days (0 = config default)")

	return cmd
}

// runRenewals executes the renewals command.
func runRenewals(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if reportsDir != "" {
		cfg.Renewals.ReportsDir = reportsDir
	}
	if windowDays > 0 {
		cfg.Renewals.WindowDays = windowDays
	}
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger := setupLogger(cfg)

	// A missing report is fatal and reported immediately.
	trainingPath, err := roster.FindReport(cfg.Renewals.ReportsDir, cfg.Renewals.TrainingPrefix)
	if err != nil {
		return fmt.Errorf("trainings report: %w", err)
	}
	vettingPath, err := roster.FindReport(cfg.Renewals.ReportsDir, cfg.Renewals.VettingPrefix)
	if err != nil {
		return fmt.Errorf("vetting report: %w", err)
	}

	training, err := roster.LoadTraining(trainingPath, cfg.Renewals.CourseColumnFirst, cfg.Renewals.CourseColumnLast, logger)
	if err != nil {
		return err
	}
	vetting, err := roster.LoadVetting(vettingPath, logger)
	if err != nil {
		return err
	}

	checker := renewal.NewChecker(cfg.Renewals, logger)
	report := checker.Check(training, vetting, time.Now())
	renewal.Render(os.Stdout, report)

	return nil
}
