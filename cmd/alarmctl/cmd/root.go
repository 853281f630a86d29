package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/oshokin/alarm-clock/internal/config"
	"github.com/oshokin/alarm-clock/internal/service/ctl"
	"github.com/oshokin/alarm-clock/internal/version"
)

var (
	// configPath to the configuration YAML file.
	configPath string
	// stateFile path where the alarm list is persisted.
	stateFile string

	// rootCmd represents the base command for managing alarms.
	rootCmd = &cobra.Command{
		Use:   "alarmctl",
		Short: "Manage the alarm list used by the alarm daemon.",
		Long: `Creates, lists, edits, toggles and removes alarms in the shared state file.

alarmctl edits the state file directly and does not talk to a running
daemon: restart alarmd (or start it) to pick up the changes and schedule
notifications for them.`,
	}
)

// ctlOptions assembles the shared options for every subcommand.
func ctlOptions() *ctl.Options {
	return &ctl.Options{
		ConfigPath: configPath,
		StateFile:  stateFile,
	}
}

// Execute runs the alarmctl CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	// Setup shared flags with consistent naming and descriptions.
	rootCmd.PersistentFlags().
		StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	rootCmd.PersistentFlags().
		StringVarP(&stateFile, "state-file", "s", "", "path to the alarm list JSON (defaults to the configured state file)")
}
