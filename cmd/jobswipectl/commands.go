package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"jobswipe/internal/database/migration"
	"jobswipe/internal/database/seeder"
	"jobswipe/internal/maintenance"

	"github.com/spf13/cobra"
)

// Actual version can be specified in build command.
var version = "unknown"

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending schema migrations",
	RunE: func(cmd *cobra.Command, _ []string) error {
		e, err := setup()
		if err != nil {
			return err
		}
		defer e.close()

		r := migration.Embedded()
		r.Logger = e.logger
		if err := r.Run(cmd.Context(), e.container.DB); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		e.logger.Info("migrations applied")
		return nil
	},
}

var seedDemo bool

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load reference data (cities, job categories), optionally demo employers",
	RunE: func(cmd *cobra.Command, _ []string) error {
		e, err := setup()
		if err != nil {
			return err
		}
		defer e.close()

		seeders := seeder.Defaults()
		if seedDemo {
			seeders = append(seeders, seeder.DemoSeeder{})
		}
		r := seeder.Runner{Seeders: seeders, Logger: e.logger}
		return r.Run(cmd.Context(), e.container.DB)
	},
}

var cleanExpiredCmd = &cobra.Command{
	Use:   "clean-expired",
	Short: "Delete matches whose contact window has passed",
	RunE: func(cmd *cobra.Command, _ []string) error {
		e, err := setup()
		if err != nil {
			return err
		}
		defer e.close()

		n, err := e.container.Cleaner.CleanExpired(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "deleted %d expired matches\n", n)
		return nil
	},
}

var scheduleSpec string

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Run expired match cleanup on a cron schedule until interrupted",
	RunE: func(cmd *cobra.Command, _ []string) error {
		e, err := setup()
		if err != nil {
			return err
		}
		defer e.close()

		spec := scheduleSpec
		if spec == "" {
			spec = e.cfg.Maintenance.CleanupSchedule
		}
		if spec == "" {
			spec = "@every 1h"
		}

		s, err := maintenance.NewScheduler(e.container.Cleaner, spec, e.logger)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return s.Run(ctx)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "%s version: %s\n", appName, version)
	},
}

func init() {
	seedCmd.Flags().BoolVar(&seedDemo, "demo", false, "also create demo employers with vacancies")
	scheduleCmd.Flags().StringVar(&scheduleSpec, "spec", "", "cron spec (default CLEANUP_SCHEDULE, then @every 1h)")

	rootCmd.AddCommand(migrateCmd, seedCmd, cleanExpiredCmd, scheduleCmd, versionCmd)
}
