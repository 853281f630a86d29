// Package daemon runs the alarmd process: it owns the live in-process
// notification scheduler, re-syncs persisted alarms at startup and drives
// the ring resolver for every delivery.
package daemon
