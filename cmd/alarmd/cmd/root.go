package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/alarm-clock/internal/config"
	"github.com/oshokin/alarm-clock/internal/service/daemon"
	"github.com/oshokin/alarm-clock/internal/version"
)

var (
	// configPath to the configuration YAML file.
	configPath string
	// stateFile path where the alarm list is persisted.
	stateFile string

	// rootCmd represents the base command for running the alarm daemon.
	rootCmd = &cobra.Command{
		Use:   "alarmd",
		Short: "Run the alarm daemon that schedules and rings alarms.",
		Long: `Starts the alarm daemon that owns the notification schedule.

At startup every alarm in the state file is re-synced: the next occurrence
is recomputed and scheduled on the in-process notification timer. When an
alarm fires the daemon logs the ring and dismisses it, which re-schedules
weekly alarms onto their next occurrence and disables fired one-shots.

Alarms are managed with the alarmctl companion binary; the daemon picks up
its edits on the next start.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			options := &daemon.Options{
				ConfigPath: configPath,
				StateFile:  stateFile,
			}

			return daemon.Run(ctx, options)
		},
	}
)

// Execute runs the alarmd CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	// Setup command flags with consistent naming and descriptions.
	rootCmd.Flags().StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	rootCmd.Flags().
		StringVarP(&stateFile, "state-file", "s", "", "path to the alarm list JSON (defaults to the configured state file)")
}
