package ring

import (
	"context"
	"time"

	domain "github.com/oshokin/alarm-clock/internal/domain/alarm"
	"github.com/oshokin/alarm-clock/internal/logger"
	"github.com/oshokin/alarm-clock/internal/scheduler"
	alarmsvc "github.com/oshokin/alarm-clock/internal/service/alarms"
)

// DefaultSnoozeDuration is how far a snoozed alarm is pushed when the
// resolver is not configured otherwise.
const DefaultSnoozeDuration = 5 * time.Minute

// AlarmService is the slice of the lifecycle manager the resolver needs.
type AlarmService interface {
	Get(ctx context.Context, id string) *domain.Alarm
	Update(ctx context.Context, id string, p alarmsvc.Patch) error
}

// NavigateFunc presents the ring view for a delivered alarm. On the mobile
// host this pushed the ring screen; the daemon substitutes a log handler.
type NavigateFunc func(ctx context.Context, a *domain.Alarm)

// Resolver interprets notification deliveries and drives the post-ring
// state transitions: snooze schedules a transient parallel notification,
// dismiss either auto-disables a one-shot or re-syncs a weekly alarm onto
// its next occurrence.
type Resolver struct {
	// alarms is the lifecycle manager.
	alarms AlarmService
	// sched schedules snooze notifications.
	sched scheduler.Scheduler
	// navigate presents the ring view.
	navigate NavigateFunc
	// snooze is the snooze delay.
	snooze time.Duration
	// now produces the reference instant; overridable for tests.
	now func() time.Time
}

// Option customizes a Resolver.
type Option func(*Resolver)

// WithNavigate sets the ring view callback.
func WithNavigate(navigate NavigateFunc) Option {
	return func(r *Resolver) {
		r.navigate = navigate
	}
}

// WithSnoozeDuration sets the snooze delay.
func WithSnoozeDuration(d time.Duration) Option {
	return func(r *Resolver) {
		if d > 0 {
			r.snooze = d
		}
	}
}

// WithClock overrides the resolver's time source.
func WithClock(now func() time.Time) Option {
	return func(r *Resolver) {
		r.now = now
	}
}

// NewResolver wires the resolver over the lifecycle manager and scheduler.
func NewResolver(alarms AlarmService, sched scheduler.Scheduler, opts ...Option) *Resolver {
	r := &Resolver{
		alarms: alarms,
		sched:  sched,
		navigate: func(ctx context.Context, a *domain.Alarm) {
			logger.InfoKV(ctx, "Ringing", "alarm_id", a.ID, "label", a.Label, "time", a.Time)
		},
		snooze: DefaultSnoozeDuration,
		now:    time.Now,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// OnRing dispatches a delivered payload to the ring view. Payloads without
// an alarm id, or referencing an alarm that no longer exists, are ignored.
func (r *Resolver) OnRing(ctx context.Context, p scheduler.Payload) {
	if p.AlarmID == "" {
		logger.DebugKV(ctx, "Delivery without alarm id ignored")

		return
	}

	a := r.alarms.Get(ctx, p.AlarmID)
	if a == nil {
		logger.DebugKV(ctx, "Delivery for unknown alarm ignored", "alarm_id", p.AlarmID)

		return
	}

	if p.Snooze {
		logger.InfoKV(ctx, "Snoozed alarm ringing again", "alarm_id", a.ID)
	}

	r.navigate(ctx, a)
}

// Snooze schedules a one-off notification at now plus the snooze delay,
// tagged as a snooze and carrying the same alarm id. The underlying record
// is left untouched: the fired one-shot notification is already consumed
// by the platform, and the alarm's primary schedule is independent.
// Scheduling failures are logged only.
func (r *Resolver) Snooze(ctx context.Context, id string) {
	a := r.alarms.Get(ctx, id)
	if a == nil {
		logger.DebugKV(ctx, "Snooze of unknown alarm ignored", "alarm_id", id)

		return
	}

	title := a.Label
	if title == "" {
		title = domain.DefaultLabel
	}

	notification := scheduler.Notification{
		Title: title,
		Body:  "Snoozed",
		Sound: true,
		Data:  scheduler.Payload{AlarmID: a.ID, Snooze: true},
	}

	fireAt := r.now().Add(r.snooze)

	if _, err := r.sched.Schedule(ctx, fireAt, notification); err != nil {
		logger.WarnKV(ctx, "Snooze scheduling failed", "alarm_id", a.ID, "error", err)

		return
	}

	logger.InfoKV(ctx, "Alarm snoozed", "alarm_id", a.ID, "fire_at", fireAt)
}

// Dismiss finishes a ring. A one-shot alarm is permanently disabled (its
// handle cancelled and cleared) until manually re-enabled with a fresh
// date; a weekly alarm stays enabled and is re-synced onto its next
// occurrence. Unknown ids are a no-op.
func (r *Resolver) Dismiss(ctx context.Context, id string) error {
	a := r.alarms.Get(ctx, id)
	if a == nil {
		logger.DebugKV(ctx, "Dismiss of unknown alarm ignored", "alarm_id", id)

		return nil
	}

	if a.RepeatType == domain.RepeatOnce {
		enabled := false

		logger.InfoKV(ctx, "One-shot alarm dismissed, disabling", "alarm_id", a.ID)

		return r.alarms.Update(ctx, a.ID, alarmsvc.Patch{Enabled: &enabled})
	}

	// Weekly: keep enabled; the update path re-syncs onto next week.
	enabled := true

	logger.InfoKV(ctx, "Weekly alarm dismissed, rescheduling", "alarm_id", a.ID)

	return r.alarms.Update(ctx, a.ID, alarmsvc.Patch{Enabled: &enabled})
}
