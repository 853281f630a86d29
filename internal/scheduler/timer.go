package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/oshokin/alarm-clock/internal/logger"
)

// defaultDeliveryBuffer is the delivery channel capacity used when the
// caller does not specify one.
const defaultDeliveryBuffer = 16

// TimerScheduler is an in-process Scheduler backed by one time.AfterFunc
// timer per pending notification. Handles are uuids and do not survive the
// process: callers re-sync their schedules at startup.
type TimerScheduler struct {
	// mu protects timers, closed and sends on deliveries.
	mu sync.Mutex
	// timers maps handle to its pending timer.
	timers map[string]*time.Timer
	// deliveries carries fired notifications to the consumer.
	deliveries chan Delivery
	// closed blocks further scheduling and delivery after Close.
	closed bool
}

// NewTimerScheduler creates a scheduler whose delivery channel holds up to
// buffer fired notifications. A non-positive buffer selects the default.
func NewTimerScheduler(buffer int) *TimerScheduler {
	if buffer <= 0 {
		buffer = defaultDeliveryBuffer
	}

	return &TimerScheduler{
		timers:     make(map[string]*time.Timer),
		deliveries: make(chan Delivery, buffer),
	}
}

// Schedule registers a notification and returns its handle.
// A fire time in the past delivers immediately.
func (s *TimerScheduler) Schedule(_ context.Context, fireAt time.Time, n Notification) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return "", ErrUnavailable
	}

	handle := uuid.NewString()

	delay := time.Until(fireAt)
	if delay < 0 {
		delay = 0
	}

	s.timers[handle] = time.AfterFunc(delay, func() {
		s.fire(handle, n)
	})

	return handle, nil
}

// Cancel stops a pending notification. Unknown, empty and already-fired
// handles are no-ops.
func (s *TimerScheduler) Cancel(_ context.Context, handle string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t, ok := s.timers[handle]; ok {
		t.Stop()
		delete(s.timers, handle)
	}

	return nil
}

// Deliveries returns the channel fired notifications arrive on.
// The channel is closed by Close.
func (s *TimerScheduler) Deliveries() <-chan Delivery {
	return s.deliveries
}

// RequestPermission mirrors the platform's one-shot permission probe.
// The in-process scheduler is always allowed to deliver.
func (s *TimerScheduler) RequestPermission(_ context.Context) error {
	return nil
}

// Close stops every pending timer and closes the delivery channel.
func (s *TimerScheduler) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}

	s.closed = true

	for handle, t := range s.timers {
		t.Stop()
		delete(s.timers, handle)
	}

	close(s.deliveries)
}

// fire hands a fired notification to the consumer. Sends happen under mu so
// they cannot race Close; a full delivery channel drops the notification,
// since delivery timing is best-effort by contract.
func (s *TimerScheduler) fire(handle string, n Notification) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}

	delete(s.timers, handle)

	select {
	case s.deliveries <- Delivery{Handle: handle, Notification: n, FiredAt: time.Now()}:
	default:
		logger.WarnKV(context.Background(), "Delivery dropped: consumer not draining",
			"handle", handle, "alarm_id", n.Data.AlarmID)
	}
}
