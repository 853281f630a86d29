package daemon

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-ps"

	"github.com/oshokin/alarm-clock/internal/config"
	"github.com/oshokin/alarm-clock/internal/logger"
	repository "github.com/oshokin/alarm-clock/internal/repository/alarms"
	"github.com/oshokin/alarm-clock/internal/scheduler"
	alarmsvc "github.com/oshokin/alarm-clock/internal/service/alarms"
	"github.com/oshokin/alarm-clock/internal/service/ring"
)

// Options controls the alarmd process and configuration.
type Options struct {
	// ConfigPath specifies the path to the settings YAML file.
	ConfigPath string
	// StateFile overrides the alarm list path from the settings.
	StateFile string
}

// ErrAlreadyRunning indicates another alarmd instance owns the schedule.
var ErrAlreadyRunning = errors.New("another alarmd instance is already running")

// Run starts the alarm daemon and blocks until the context is canceled.
// It re-syncs every alarm at startup (in-process notification handles do
// not survive restarts), then consumes deliveries: each one opens the ring
// view, and non-snooze deliveries are dismissed, which re-schedules weekly
// alarms and disables fired one-shots.
func Run(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "alarmd")

	settings, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	if level, ok := logger.ParseLogLevel(settings.LogLevel); ok {
		logger.SetLevel(level)
	}

	// Use the state file from config unless overridden on the command line.
	stateFile := settings.StateFile
	if opts.StateFile != "" {
		stateFile = opts.StateFile
	}

	// Two daemons would fight over the same state file and double-ring.
	if err = refuseSecondInstance(ctx); err != nil {
		return err
	}

	sched := scheduler.NewTimerScheduler(0)
	defer sched.Close()

	// One-shot, best effort: a denied permission only means silent alarms.
	if err = sched.RequestPermission(ctx); err != nil {
		logger.WarnKV(ctx, "Notification permission not granted", "error", err)
	}

	manager, err := alarmsvc.NewManager(ctx, repository.NewFileRepository(stateFile), sched)
	if err != nil {
		return fmt.Errorf("initialise alarm manager: %w", err)
	}

	resolver := ring.NewResolver(manager, sched,
		ring.WithSnoozeDuration(settings.SnoozeDuration))

	if err = manager.ResyncAll(ctx); err != nil {
		return fmt.Errorf("re-sync alarms: %w", err)
	}

	logger.InfoKV(ctx, "Alarm daemon started", "state_file", stateFile)

	if next, at, ok := manager.Next(ctx); ok {
		logger.InfoKV(ctx, "Next alarm", "alarm_id", next.ID, "label", next.Label, "fire_at", at)
	} else {
		logger.Info(ctx, "No upcoming alarms")
	}

	for {
		select {
		case <-ctx.Done():
			logger.Info(ctx, "Shutting down alarm daemon")

			return nil
		case delivery, ok := <-sched.Deliveries():
			if !ok {
				return nil
			}

			handleDelivery(ctx, resolver, delivery)
		}
	}
}

// handleDelivery opens the ring view for a fired notification and, since
// the daemon has no screen for the user to act on, applies the dismiss
// transition in their stead. Snooze deliveries only ring: they carry no
// schedule of their own to dismiss.
func handleDelivery(ctx context.Context, resolver *ring.Resolver, delivery scheduler.Delivery) {
	payload := delivery.Notification.Data

	resolver.OnRing(ctx, payload)

	if payload.Snooze || payload.AlarmID == "" {
		return
	}

	if err := resolver.Dismiss(ctx, payload.AlarmID); err != nil {
		logger.ErrorKV(ctx, "Dismiss after ring failed", "alarm_id", payload.AlarmID, "error", err)
	}
}

// refuseSecondInstance scans the process table for another process with
// this executable's name. A failed scan is logged and ignored: starting
// anyway beats refusing to start on a flaky platform.
func refuseSecondInstance(ctx context.Context) error {
	exePath, err := os.Executable()
	if err != nil {
		logger.WarnKV(ctx, "Cannot resolve own executable, skipping instance check", "error", err)

		return nil
	}

	processList, err := ps.Processes()
	if err != nil {
		logger.WarnKV(ctx, "Cannot list processes, skipping instance check", "error", err)

		return nil
	}

	var (
		name    = filepath.Base(exePath)
		selfPID = os.Getpid()
	)

	for _, process := range processList {
		if process.Pid() == selfPID {
			continue
		}

		if process.Executable() == name {
			return fmt.Errorf("%w: pid %d", ErrAlreadyRunning, process.Pid())
		}
	}

	return nil
}
