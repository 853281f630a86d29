// Package scheduler defines the notification scheduling contract the alarm
// engine consumes, plus two implementations: an in-process TimerScheduler
// that delivers over a channel, and a Noop used where no live platform
// exists.
//
// On a mobile host the same contract would be satisfied by the OS
// notification API; everything above it only sees opaque handles.
package scheduler
