package ctl

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/oshokin/alarm-clock/internal/config"
	domain "github.com/oshokin/alarm-clock/internal/domain/alarm"
	"github.com/oshokin/alarm-clock/internal/logger"
	repository "github.com/oshokin/alarm-clock/internal/repository/alarms"
	"github.com/oshokin/alarm-clock/internal/scheduler"
	alarmsvc "github.com/oshokin/alarm-clock/internal/service/alarms"
)

// Options configures the alarmctl operations.
type Options struct {
	// ConfigPath specifies the path to the settings YAML file.
	ConfigPath string
	// StateFile overrides the alarm list path from the settings.
	StateFile string
	// Out receives human-readable command output, os.Stdout when nil.
	Out io.Writer
}

// out returns the configured output writer.
func (o *Options) out() io.Writer {
	if o.Out != nil {
		return o.Out
	}

	return os.Stdout
}

// newManager builds a lifecycle manager over the state file. alarmctl has
// no live notification platform, so it runs with the noop scheduler:
// handles are (re)established by alarmd the next time it starts.
func newManager(ctx context.Context, opts *Options) (*alarmsvc.Manager, error) {
	settings, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	stateFile := settings.StateFile
	if opts.StateFile != "" {
		stateFile = opts.StateFile
	}

	manager, err := alarmsvc.NewManager(ctx, repository.NewFileRepository(stateFile), scheduler.Noop{})
	if err != nil {
		return nil, fmt.Errorf("initialise alarm manager: %w", err)
	}

	return manager, nil
}

// Add creates an alarm from the provided partial definition and prints it.
func Add(ctx context.Context, opts *Options, patch alarmsvc.Patch) error {
	ctx = logger.WithName(ctx, "alarmctl")

	manager, err := newManager(ctx, opts)
	if err != nil {
		return err
	}

	a, err := manager.Create(ctx, patch)
	if err != nil {
		return err
	}

	fmt.Fprintf(opts.out(), "Created alarm %s: %s at %s (%s)\n",
		a.ID, a.Label, Clock12(a.Time), repeatSummary(a))

	return nil
}

// List prints the next upcoming alarm followed by the full alarm table.
func List(ctx context.Context, opts *Options) error {
	ctx = logger.WithName(ctx, "alarmctl")

	manager, err := newManager(ctx, opts)
	if err != nil {
		return err
	}

	w := opts.out()
	now := time.Now()

	if next, at, ok := manager.Next(ctx); ok {
		fmt.Fprintf(w, "Next alarm: %s at %s (%s)\n\n", next.Label, Clock12(next.Time), Until(now, at))
	} else {
		fmt.Fprintf(w, "No upcoming alarms.\n\n")
	}

	list := manager.List(ctx)
	if len(list) == 0 {
		fmt.Fprintln(w, "No alarms yet.")

		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tLABEL\tTIME\tREPEAT\tENABLED\tNEXT")

	for _, a := range list {
		next := "-"
		if at, ok := domain.NextOccurrence(a, now); ok {
			next = Until(now, at)
		}

		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%t\t%s\n",
			a.ID, a.Label, Clock12(a.Time), repeatSummary(a), a.Enabled, next)
	}

	return tw.Flush()
}

// Set merges the patch into an existing alarm.
func Set(ctx context.Context, opts *Options, id string, patch alarmsvc.Patch) error {
	ctx = logger.WithName(ctx, "alarmctl")

	manager, err := newManager(ctx, opts)
	if err != nil {
		return err
	}

	if manager.Get(ctx, id) == nil {
		fmt.Fprintf(opts.out(), "Alarm %s not found.\n", id)

		return nil
	}

	if err = manager.Update(ctx, id, patch); err != nil {
		return err
	}

	a := manager.Get(ctx, id)
	fmt.Fprintf(opts.out(), "Updated alarm %s: %s at %s (%s)\n",
		a.ID, a.Label, Clock12(a.Time), repeatSummary(a))

	return nil
}

// Toggle flips an alarm's enabled state.
func Toggle(ctx context.Context, opts *Options, id string) error {
	ctx = logger.WithName(ctx, "alarmctl")

	manager, err := newManager(ctx, opts)
	if err != nil {
		return err
	}

	if manager.Get(ctx, id) == nil {
		fmt.Fprintf(opts.out(), "Alarm %s not found.\n", id)

		return nil
	}

	if err = manager.Toggle(ctx, id); err != nil {
		return err
	}

	a := manager.Get(ctx, id)
	state := "disabled"
	if a.Enabled {
		state = "enabled"
	}

	fmt.Fprintf(opts.out(), "Alarm %s is now %s.\n", a.ID, state)

	return nil
}

// Remove deletes an alarm.
func Remove(ctx context.Context, opts *Options, id string) error {
	ctx = logger.WithName(ctx, "alarmctl")

	manager, err := newManager(ctx, opts)
	if err != nil {
		return err
	}

	if manager.Get(ctx, id) == nil {
		fmt.Fprintf(opts.out(), "Alarm %s not found.\n", id)

		return nil
	}

	if err = manager.Delete(ctx, id); err != nil {
		return err
	}

	fmt.Fprintf(opts.out(), "Deleted alarm %s.\n", id)

	return nil
}
