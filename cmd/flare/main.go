package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/terraincognita07/flare/internal/cli"
	"github.com/terraincognita07/flare/internal/config"
	"github.com/terraincognita07/flare/internal/db"
	"github.com/terraincognita07/flare/internal/logging"
	"github.com/terraincognita07/flare/internal/services"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "flare",
		Short: "Self-hosted endometriosis and IBS symptom tracker",
		Long: `flare tracks period intervals and daily endo/IBS symptom severity.

Run without a subcommand to start the HTTP server.`,
		SilenceUsage: true,
		RunE:         runServe,
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE:  runServe,
	}

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Export all tracked data as JSON or YAML",
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, _ := cmd.Flags().GetString("format")
			outPath, _ := cmd.Flags().GetString("out")
			return withTracker(func(tracker *services.TrackerService) error {
				return cli.RunExportCommand(tracker, format, outPath, cmd.OutOrStdout())
			})
		},
	}
	exportCmd.Flags().String("format", services.ExportFormatJSON, "Export format: json or yaml")
	exportCmd.Flags().String("out", "", "Write to this file instead of stdout")

	importCmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Replace all tracked data with an export file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withTracker(func(tracker *services.TrackerService) error {
				return cli.RunImportCommand(tracker, args[0], cmd.OutOrStdout())
			})
		},
	}

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show cycle day, phase and symptom averages",
		RunE: func(cmd *cobra.Command, _ []string) error {
			day, _ := cmd.Flags().GetString("date")
			return withTracker(func(tracker *services.TrackerService) error {
				return cli.RunStatusCommand(tracker, day, cmd.OutOrStdout())
			})
		},
	}
	statusCmd.Flags().String("date", "", "Day to show (YYYY-MM-DD, default today)")

	periodCmd := &cobra.Command{
		Use:       "period <start|end> <YYYY-MM-DD>",
		Short:     "Toggle a period start or end",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{cli.PeriodActionStart, cli.PeriodActionEnd},
		RunE: func(cmd *cobra.Command, args []string) error {
			return withTracker(func(tracker *services.TrackerService) error {
				return cli.RunPeriodCommand(tracker, args[0], args[1], cmd.OutOrStdout())
			})
		},
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all tracked data",
		RunE: func(cmd *cobra.Command, _ []string) error {
			confirmed, _ := cmd.Flags().GetBool("yes")
			return withTracker(func(tracker *services.TrackerService) error {
				return cli.RunClearCommand(tracker, confirmed, cmd.OutOrStdout())
			})
		},
	}
	clearCmd.Flags().Bool("yes", false, "Confirm deletion")

	passphraseCmd := &cobra.Command{
		Use:   "passphrase",
		Short: "Print a PASSPHRASE_HASH value for the unlock screen",
		RunE: func(cmd *cobra.Command, _ []string) error {
			generate, _ := cmd.Flags().GetBool("generate")
			return cli.RunPassphraseCommand(cli.PassphraseOptions{
				Generate: generate,
				Stdin:    os.Stdin,
				Stdout:   cmd.OutOrStdout(),
			})
		},
	}
	passphraseCmd.Flags().Bool("generate", false, "Generate a random passphrase instead of prompting")

	rootCmd.AddCommand(serveCmd, exportCmd, importCmd, statusCmd, periodCmd, clearCmd, passphraseCmd)
	return rootCmd
}

// withTracker opens the configured database for a one-shot CLI command.
func withTracker(run func(tracker *services.TrackerService) error) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	logger := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stderr)

	tracker, closeDB, err := openTracker(cfg, logger)
	if err != nil {
		return err
	}
	defer closeDB()

	return run(tracker)
}

func openTracker(cfg *config.Config, logger *logrus.Logger) (*services.TrackerService, func(), error) {
	database, err := db.OpenSQLite(cfg.DBPath, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("database init failed: %w", err)
	}
	closeDB := func() {
		if sqlDB, err := database.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}

	repositories := db.NewRepositories(database)
	tracker, err := services.NewTrackerService(repositories.Store, services.SystemClock{}, cfg.Location)
	if err != nil {
		closeDB()
		return nil, nil, fmt.Errorf("tracker init failed: %w", err)
	}
	return tracker, closeDB, nil
}
