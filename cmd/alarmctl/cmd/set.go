package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/oshokin/alarm-clock/internal/service/ctl"
)

var (
	// setEnabled sets the alarm's enabled state when the flag is provided.
	setEnabled bool

	// setCmd merges the provided flags into an existing alarm.
	setCmd = &cobra.Command{
		Use:   "set <alarm-id>",
		Short: "Edit fields of an existing alarm.",
		Long: `Merges the provided flags into the alarm. Omitted flags leave their
fields unchanged. Editing an enabled alarm re-schedules it; a re-enabled
one-shot whose date has passed stays silent until given a new date.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			patch, err := patchFromFlags(cmd)
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("enabled") {
				enabled := setEnabled
				patch.Enabled = &enabled
			}

			return ctl.Set(context.Background(), ctlOptions(), args[0], patch)
		},
	}
)

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	attachAlarmFieldFlags(setCmd)
	setCmd.Flags().BoolVar(&setEnabled, "enabled", true, "enable or disable the alarm")

	rootCmd.AddCommand(setCmd)
}
