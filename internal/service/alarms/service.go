package alarms

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	domain "github.com/oshokin/alarm-clock/internal/domain/alarm"
	"github.com/oshokin/alarm-clock/internal/logger"
	repo "github.com/oshokin/alarm-clock/internal/repository/alarms"
	"github.com/oshokin/alarm-clock/internal/scheduler"
)

// Patch is a partial alarm: nil fields are left unchanged when merged.
// DaysActive is a pointer to a slice so "not provided" and "set to empty"
// stay distinguishable. ID, CreatedAt and NotificationID are never patched
// directly; the manager owns them.
type Patch struct {
	Label      *string
	Enabled    *bool
	Time       *string
	RepeatType *domain.RepeatType
	DaysActive *[]int
	DateISO    *string
}

// Manager owns the in-memory alarm list and keeps each alarm's scheduled
// notification handle consistent with its definition. The list is the
// single source of truth, mirrored to the repository after every mutation
// as a whole-list overwrite.
//
// All operations serialize behind one mutex, so back-to-back mutations
// cannot clobber each other's snapshots.
type Manager struct {
	// repo persists the alarm list. Nil keeps the manager in-memory only.
	repo repo.Repository
	// sched is the platform notification capability.
	sched scheduler.Scheduler
	// now produces the reference instant; overridable for tests.
	now func() time.Time
	// mu protects alarms and serializes mutations end to end,
	// scheduler calls and persistence included.
	mu sync.Mutex
	// alarms is the current list, insertion order, newest first.
	alarms []*domain.Alarm
}

// Option customizes a Manager.
type Option func(*Manager)

// WithClock overrides the manager's time source.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		m.now = now
	}
}

// NewManager creates a manager backed by the provided repository and
// scheduler, loading the persisted list. A missing state file starts
// empty; a corrupt one is logged and also starts empty.
func NewManager(
	ctx context.Context,
	repository repo.Repository,
	sched scheduler.Scheduler,
	opts ...Option,
) (*Manager, error) {
	if sched == nil {
		sched = scheduler.Noop{}
	}

	m := &Manager{
		repo:  repository,
		sched: sched,
		now:   time.Now,
	}

	for _, opt := range opts {
		opt(m)
	}

	if repository == nil {
		return m, nil
	}

	list, err := repository.Load(ctx)
	switch {
	case err == nil:
		now := m.now()
		for _, a := range list {
			a.Normalize(now)
		}

		m.alarms = list
	case errors.Is(err, repo.ErrNotFound):
		// First run, empty list.
	case errors.Is(err, repo.ErrCorrupt):
		logger.WarnKV(ctx, "Stored alarms are unreadable, starting empty", "error", err)
	default:
		return nil, fmt.Errorf("load alarms: %w", err)
	}

	return m, nil
}

// Create builds a full alarm from the provided partial and the creation
// defaults, schedules it if enabled, inserts it at the front of the list
// and persists. The finalized record is returned.
func (m *Manager) Create(ctx context.Context, p Patch) (*domain.Alarm, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()

	a := &domain.Alarm{
		ID:         uuid.NewString(),
		Label:      domain.DefaultLabel,
		Enabled:    true,
		Time:       domain.DefaultTime,
		RepeatType: domain.RepeatWeekly,
		DaysActive: domain.DefaultDaysActive(),
		DateISO:    now.Format(domain.DateLayout),
		CreatedAt:  now.UnixMilli(),
	}
	applyPatch(a, p)

	if a.Enabled {
		m.resync(ctx, a)
	}

	m.alarms = append([]*domain.Alarm{a}, m.alarms...)

	if err := m.persist(ctx); err != nil {
		return nil, err
	}

	logger.InfoKV(ctx, "Alarm created", "alarm_id", a.ID, "label", a.Label, "time", a.Time)

	return a.Clone(), nil
}

// Update merges the patch into the alarm and re-establishes the handle
// invariant: enabled alarms are re-synced, disabled ones lose their
// handle. Unknown ids are a no-op.
func (m *Manager) Update(ctx context.Context, id string, p Patch) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	a := m.find(id)
	if a == nil {
		logger.DebugKV(ctx, "Update of unknown alarm ignored", "alarm_id", id)

		return nil
	}

	applyPatch(a, p)

	if a.Enabled {
		m.resync(ctx, a)
	} else {
		m.cancelHandle(ctx, a)
	}

	return m.persist(ctx)
}

// Toggle flips the alarm's enabled state: disabling cancels its handle,
// enabling re-syncs it. Unknown ids are a no-op.
func (m *Manager) Toggle(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	a := m.find(id)
	if a == nil {
		logger.DebugKV(ctx, "Toggle of unknown alarm ignored", "alarm_id", id)

		return nil
	}

	if a.Enabled {
		a.Enabled = false
		m.cancelHandle(ctx, a)
	} else {
		a.Enabled = true
		m.resync(ctx, a)
	}

	logger.InfoKV(ctx, "Alarm toggled", "alarm_id", a.ID, "enabled", a.Enabled)

	return m.persist(ctx)
}

// Delete cancels the alarm's handle if present, removes the record and
// persists. Unknown ids are a no-op.
func (m *Manager) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, a := range m.alarms {
		if a.ID != id {
			continue
		}

		m.cancelHandle(ctx, a)
		m.alarms = append(m.alarms[:i], m.alarms[i+1:]...)

		logger.InfoKV(ctx, "Alarm deleted", "alarm_id", id)

		return m.persist(ctx)
	}

	logger.DebugKV(ctx, "Delete of unknown alarm ignored", "alarm_id", id)

	return nil
}

// Get returns a copy of the alarm, or nil when the id is unknown.
func (m *Manager) Get(_ context.Context, id string) *domain.Alarm {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.find(id).Clone()
}

// List returns copies of all alarms, insertion order, newest first.
func (m *Manager) List(context.Context) []*domain.Alarm {
	m.mu.Lock()
	defer m.mu.Unlock()

	result := make([]*domain.Alarm, 0, len(m.alarms))
	for _, a := range m.alarms {
		result = append(result, a.Clone())
	}

	return result
}

// Next returns the alarm with the earliest upcoming occurrence and that
// instant. The third return value is false when nothing is due.
func (m *Manager) Next(context.Context) (*domain.Alarm, time.Time, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var (
		best   *domain.Alarm
		bestAt time.Time
	)

	now := m.now()

	for _, a := range m.alarms {
		at, ok := domain.NextOccurrence(a, now)
		if !ok {
			continue
		}

		if best == nil || at.Before(bestAt) {
			best, bestAt = a, at
		}
	}

	if best == nil {
		return nil, time.Time{}, false
	}

	return best.Clone(), bestAt, true
}

// ResyncAll re-runs the re-sync procedure for every alarm and persists
// once. The daemon calls it at startup: in-process handles do not survive
// a restart, and recomputing also absorbs clock and timezone changes.
func (m *Manager) ResyncAll(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, a := range m.alarms {
		if a.Enabled {
			m.resync(ctx, a)
		} else {
			m.cancelHandle(ctx, a)
		}
	}

	return m.persist(ctx)
}

// resync is the only path that may produce a non-empty NotificationID:
// cancel the previous handle, recompute the next occurrence, schedule if
// one exists. A scheduling failure is logged and leaves the handle empty,
// so the alarm is marked enabled but will not ring.
func (m *Manager) resync(ctx context.Context, a *domain.Alarm) {
	m.cancelHandle(ctx, a)

	occurrence, ok := domain.NextOccurrence(a, m.now())
	if !ok {
		return
	}

	handle, err := m.sched.Schedule(ctx, occurrence, notificationFor(a))
	if err != nil {
		logger.WarnKV(ctx, "Scheduling failed, alarm will not ring",
			"alarm_id", a.ID, "fire_at", occurrence, "error", err)

		return
	}

	a.NotificationID = handle

	logger.DebugKV(ctx, "Alarm scheduled", "alarm_id", a.ID, "fire_at", occurrence, "handle", handle)
}

// cancelHandle revokes the alarm's pending notification, if any.
// Cancellation is fire-and-forget: failures are logged, never propagated.
func (m *Manager) cancelHandle(ctx context.Context, a *domain.Alarm) {
	if a.NotificationID == "" {
		return
	}

	if err := m.sched.Cancel(ctx, a.NotificationID); err != nil {
		logger.WarnKV(ctx, "Cancel failed", "alarm_id", a.ID, "handle", a.NotificationID, "error", err)
	}

	a.NotificationID = ""
}

// persist mirrors the in-memory list to the repository.
func (m *Manager) persist(ctx context.Context) error {
	if m.repo == nil {
		return nil
	}

	if err := m.repo.Save(ctx, m.alarms); err != nil {
		logger.ErrorKV(ctx, "Failed to persist alarms", "error", err)

		return fmt.Errorf("persist alarms: %w", err)
	}

	return nil
}

// find returns the live record for id, or nil. Callers hold mu.
func (m *Manager) find(id string) *domain.Alarm {
	for _, a := range m.alarms {
		if a.ID == id {
			return a
		}
	}

	return nil
}

// applyPatch merges non-nil patch fields into the alarm.
func applyPatch(a *domain.Alarm, p Patch) {
	if p.Label != nil {
		a.Label = *p.Label
	}

	if p.Enabled != nil {
		a.Enabled = *p.Enabled
	}

	if p.Time != nil {
		a.Time = *p.Time
	}

	if p.RepeatType != nil {
		a.RepeatType = *p.RepeatType
	}

	if p.DaysActive != nil {
		days := make([]int, len(*p.DaysActive))
		copy(days, *p.DaysActive)
		a.DaysActive = days
	}

	if p.DateISO != nil {
		a.DateISO = *p.DateISO
	}
}

// notificationFor builds the notification content for an alarm's primary schedule.
func notificationFor(a *domain.Alarm) scheduler.Notification {
	title := a.Label
	if title == "" {
		title = domain.DefaultLabel
	}

	return scheduler.Notification{
		Title: title,
		Body:  "Time's up!",
		Sound: true,
		Data:  scheduler.Payload{AlarmID: a.ID},
	}
}
