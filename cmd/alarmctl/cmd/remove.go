package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/oshokin/alarm-clock/internal/service/ctl"
)

// removeCmd deletes an alarm, cancelling anything scheduled for it.
var removeCmd = &cobra.Command{
	Use:     "rm <alarm-id>",
	Aliases: []string{"remove", "delete"},
	Short:   "Delete an alarm.",
	Args:    cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return ctl.Remove(context.Background(), ctlOptions(), args[0])
	},
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	rootCmd.AddCommand(removeCmd)
}
