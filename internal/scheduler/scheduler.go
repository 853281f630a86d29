package scheduler

import (
	"context"
	"errors"
	"time"
)

// Payload is the opaque correlation data a notification carries through the
// platform and back. The alarm ID is the only contract: delivery hands it
// to the ring-event resolver.
type Payload struct {
	// AlarmID identifies the alarm this notification belongs to.
	AlarmID string `json:"alarmId"`
	// Snooze marks one-off notifications issued by the snooze flow.
	Snooze bool `json:"snooze,omitempty"`
}

// Notification is the content handed to the platform for delivery.
type Notification struct {
	// Title is the notification headline, usually the alarm label.
	Title string
	// Body is the notification text.
	Body string
	// Sound requests an audible delivery.
	Sound bool
	// Data is the correlation payload returned on delivery.
	Data Payload
}

// Delivery is a fired notification as observed by the consumer.
type Delivery struct {
	// Handle is the identifier the notification was scheduled under.
	Handle string
	// Notification is the content that was scheduled.
	Notification Notification
	// FiredAt is when the delivery was produced.
	FiredAt time.Time
}

// Scheduler is the platform notification capability the lifecycle manager
// and the ring resolver depend on. Implementations must treat Cancel of an
// unknown or already-fired handle as a no-op, never an error.
type Scheduler interface {
	// Schedule registers a notification for delivery at approximately
	// fireAt and returns an opaque handle usable to cancel it.
	Schedule(ctx context.Context, fireAt time.Time, n Notification) (string, error)
	// Cancel revokes a pending notification by handle.
	Cancel(ctx context.Context, handle string) error
}

// ErrUnavailable is returned by Schedule when no live platform exists.
// Callers treat it as a degraded state: the alarm stays enabled with no
// scheduled handle.
var ErrUnavailable = errors.New("notification scheduler unavailable")
