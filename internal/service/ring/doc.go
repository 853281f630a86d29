// Package ring implements the ring-event resolver.
//
// It interprets notification deliveries (the payload carries the alarm id
// back from the platform) and drives the snooze and dismiss transitions of
// a ringing alarm.
package ring
