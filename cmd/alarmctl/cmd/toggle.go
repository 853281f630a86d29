package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/oshokin/alarm-clock/internal/service/ctl"
)

// toggleCmd flips an alarm's enabled state.
var toggleCmd = &cobra.Command{
	Use:   "toggle <alarm-id>",
	Short: "Enable or disable an alarm.",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return ctl.Toggle(context.Background(), ctlOptions(), args[0])
	},
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	rootCmd.AddCommand(toggleCmd)
}
