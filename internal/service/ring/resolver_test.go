package ring

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	domain "github.com/oshokin/alarm-clock/internal/domain/alarm"
	"github.com/oshokin/alarm-clock/internal/scheduler"
	alarmsvc "github.com/oshokin/alarm-clock/internal/service/alarms"
)

// mondayMorning is Monday 2024-01-01 06:00:00 UTC.
var mondayMorning = time.Date(2024, time.January, 1, 6, 0, 0, 0, time.UTC)

// recordingScheduler mints sequential handles and records every call.
type recordingScheduler struct {
	nextHandle int
	scheduled  map[string]time.Time
	payloads   map[string]scheduler.Payload
	cancelled  []string
}

func newRecordingScheduler() *recordingScheduler {
	return &recordingScheduler{
		scheduled: make(map[string]time.Time),
		payloads:  make(map[string]scheduler.Payload),
	}
}

func (f *recordingScheduler) Schedule(_ context.Context, fireAt time.Time, n scheduler.Notification) (string, error) {
	f.nextHandle++
	handle := fmt.Sprintf("n-%d", f.nextHandle)
	f.scheduled[handle] = fireAt
	f.payloads[handle] = n.Data

	return handle, nil
}

func (f *recordingScheduler) Cancel(_ context.Context, handle string) error {
	f.cancelled = append(f.cancelled, handle)
	delete(f.scheduled, handle)
	delete(f.payloads, handle)

	return nil
}

// newTestStack builds a real manager over an in-memory list plus a resolver.
func newTestStack(t *testing.T) (*alarmsvc.Manager, *recordingScheduler, *Resolver) {
	t.Helper()

	sched := newRecordingScheduler()
	clock := func() time.Time { return mondayMorning }

	manager, err := alarmsvc.NewManager(context.Background(), nil, sched, alarmsvc.WithClock(clock))
	require.NoError(t, err)

	resolver := NewResolver(manager, sched, WithClock(clock))

	return manager, sched, resolver
}

// TestOnRing_Dispatch verifies delivery payloads reach the ring view and
// that empty or unknown ids are ignored.
func TestOnRing_Dispatch(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	manager, sched, _ := newTestStack(t)

	a, err := manager.Create(ctx, alarmsvc.Patch{})
	require.NoError(t, err)

	var rangFor []string

	resolver := NewResolver(manager, sched, WithNavigate(func(_ context.Context, a *domain.Alarm) {
		rangFor = append(rangFor, a.ID)
	}))

	resolver.OnRing(ctx, scheduler.Payload{AlarmID: a.ID})
	resolver.OnRing(ctx, scheduler.Payload{})
	resolver.OnRing(ctx, scheduler.Payload{AlarmID: "no-such-id"})

	require.Equal(t, []string{a.ID}, rangFor)
}

// TestSnooze schedules a tagged one-off and leaves the record untouched.
func TestSnooze(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	manager, sched, resolver := newTestStack(t)

	a, err := manager.Create(ctx, alarmsvc.Patch{})
	require.NoError(t, err)

	before := manager.Get(ctx, a.ID)

	resolver.Snooze(ctx, a.ID)

	// A second notification exists: the primary handle plus the snooze.
	require.Len(t, sched.scheduled, 2)
	require.Equal(t, mondayMorning.Add(DefaultSnoozeDuration), sched.scheduled["n-2"])
	require.Equal(t, scheduler.Payload{AlarmID: a.ID, Snooze: true}, sched.payloads["n-2"])

	// Record untouched: same handle, same enabled state.
	after := manager.Get(ctx, a.ID)
	require.Equal(t, before, after)

	// Unknown id: nothing scheduled.
	resolver.Snooze(ctx, "no-such-id")
	require.Len(t, sched.scheduled, 2)
}

// TestDismiss_Weekly keeps the alarm enabled and re-schedules it: the
// handle changes, pointing at the next weekly occurrence.
func TestDismiss_Weekly(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	manager, sched, resolver := newTestStack(t)

	a, err := manager.Create(ctx, alarmsvc.Patch{})
	require.NoError(t, err)
	require.Equal(t, "n-1", a.NotificationID)

	require.NoError(t, resolver.Dismiss(ctx, a.ID))

	got := manager.Get(ctx, a.ID)
	require.True(t, got.Enabled)
	require.NotEmpty(t, got.NotificationID)
	require.NotEqual(t, a.NotificationID, got.NotificationID)
	require.Contains(t, sched.cancelled, "n-1")

	// Monday 06:00, alarm at 07:00 weekdays: still today 07:00.
	require.Equal(t, time.Date(2024, time.January, 1, 7, 0, 0, 0, time.UTC),
		sched.scheduled[got.NotificationID])
}

// TestDismiss_Once permanently disables the alarm and clears its handle.
func TestDismiss_Once(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	manager, sched, resolver := newTestStack(t)

	once := domain.RepeatOnce
	date := "2024-01-01"
	at := "07:00"

	a, err := manager.Create(ctx, alarmsvc.Patch{RepeatType: &once, DateISO: &date, Time: &at})
	require.NoError(t, err)
	require.Equal(t, "n-1", a.NotificationID)

	require.NoError(t, resolver.Dismiss(ctx, a.ID))

	got := manager.Get(ctx, a.ID)
	require.False(t, got.Enabled)
	require.Empty(t, got.NotificationID)
	require.Contains(t, sched.cancelled, "n-1")

	// Unknown id is a no-op.
	require.NoError(t, resolver.Dismiss(ctx, "no-such-id"))
}
