// Package alarms implements the alarm lifecycle manager.
//
// The Manager owns the in-memory alarm list, applies create, update,
// toggle and delete operations, and keeps each alarm's scheduled
// notification handle consistent with its definition through a single
// re-sync procedure. Every mutation persists the whole list.
package alarms
