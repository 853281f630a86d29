// Package ctl implements the alarmctl operations: adding, listing,
// editing, toggling and removing alarms in the shared state file.
//
// The operations run against the same lifecycle manager the daemon uses,
// but with the noop scheduler: alarmd re-establishes notification handles
// the next time it starts.
package ctl
