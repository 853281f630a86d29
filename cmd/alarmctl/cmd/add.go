package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	domain "github.com/oshokin/alarm-clock/internal/domain/alarm"
	"github.com/oshokin/alarm-clock/internal/service/alarms"
	"github.com/oshokin/alarm-clock/internal/service/ctl"
)

var (
	// addLabel is the user-facing alarm name.
	addLabel string
	// addTime is the "HH:MM" fire time.
	addTime string
	// addRepeat is the recurrence kind: once or weekly.
	addRepeat string
	// addDays are the weekdays a weekly alarm fires on (0=Sunday).
	addDays []int
	// addDate is the "YYYY-MM-DD" date of a one-shot alarm.
	addDate string
	// addDisabled creates the alarm switched off.
	addDisabled bool

	// addCmd creates a new alarm from flags and documented defaults.
	addCmd = &cobra.Command{
		Use:   "add",
		Short: "Create a new alarm.",
		Long: `Creates an alarm from the provided flags. Omitted flags fall back to the
defaults: label "Alarm", 07:00, weekly on Monday through Friday, enabled.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			patch, err := patchFromFlags(cmd)
			if err != nil {
				return err
			}

			if addDisabled {
				enabled := false
				patch.Enabled = &enabled
			}

			return ctl.Add(context.Background(), ctlOptions(), patch)
		},
	}
)

// patchFromFlags builds an alarm patch from whichever flags were provided.
// Shared by add and set so both accept the same field flags.
func patchFromFlags(cmd *cobra.Command) (alarms.Patch, error) {
	var patch alarms.Patch

	flags := cmd.Flags()

	if flags.Changed("label") {
		patch.Label = &addLabel
	}

	if flags.Changed("time") {
		patch.Time = &addTime
	}

	if flags.Changed("repeat") {
		repeatType := domain.RepeatType(addRepeat)
		if repeatType != domain.RepeatOnce && repeatType != domain.RepeatWeekly {
			return patch, fmt.Errorf("invalid repeat type %q: expected %q or %q",
				addRepeat, domain.RepeatOnce, domain.RepeatWeekly)
		}

		patch.RepeatType = &repeatType
	}

	if flags.Changed("days") {
		days := addDays
		patch.DaysActive = &days
	}

	if flags.Changed("date") {
		patch.DateISO = &addDate
	}

	return patch, nil
}

// attachAlarmFieldFlags registers the shared alarm field flags on a command.
func attachAlarmFieldFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&addLabel, "label", "l", "", "alarm label")
	cmd.Flags().StringVarP(&addTime, "time", "t", "", `fire time as "HH:MM" (24-hour)`)
	cmd.Flags().StringVarP(&addRepeat, "repeat", "r", "", "repeat kind: once or weekly")
	cmd.Flags().IntSliceVarP(&addDays, "days", "d", nil, "weekdays for weekly alarms (0=Sunday..6=Saturday)")
	cmd.Flags().StringVar(&addDate, "date", "", `date for one-shot alarms as "YYYY-MM-DD"`)
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	attachAlarmFieldFlags(addCmd)
	addCmd.Flags().BoolVar(&addDisabled, "disabled", false, "create the alarm switched off")

	rootCmd.AddCommand(addCmd)
}
