// Package alarm contains the core domain types for the alarm clock.
//
// It defines the Alarm record (recurrence rule plus scheduled-notification
// handle), creation defaults, tolerant wall-clock parsing, and the
// occurrence calculator that maps an alarm and a reference instant to the
// next time it should ring.
package alarm
