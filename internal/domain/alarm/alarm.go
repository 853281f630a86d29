package alarm

import (
	"strconv"
	"strings"
	"time"
)

// RepeatType selects how an alarm recurs.
type RepeatType string

const (
	// RepeatOnce fires at most one time, on a specific calendar date.
	RepeatOnce RepeatType = "once"
	// RepeatWeekly fires on a recurring set of weekdays until disabled.
	RepeatWeekly RepeatType = "weekly"
)

const (
	// DefaultLabel is the user-facing name assigned when none is provided.
	DefaultLabel = "Alarm"
	// DefaultTime is the wall-clock fire time assigned when none is provided.
	DefaultTime = "07:00"
	// DateLayout is the calendar date format used by one-shot alarms.
	DateLayout = "2006-01-02"
)

// Alarm is the single persisted entity: one alarm definition together with
// the handle of its currently scheduled notification, if any.
//
// The JSON field names match the persisted layout of the stored alarm list,
// so records written by earlier versions of the app load unchanged.
type Alarm struct {
	// ID is the stable identity of the alarm, assigned at creation and never reused.
	ID string `json:"id"`
	// Label is the user-facing name.
	Label string `json:"label"`
	// Enabled reports whether the alarm currently participates in scheduling.
	Enabled bool `json:"enabled"`
	// Time is the local wall-clock fire time as "HH:MM", minute resolution.
	Time string `json:"time"`
	// RepeatType selects which recurrence fields are meaningful.
	RepeatType RepeatType `json:"repeatType"`
	// DaysActive holds the weekdays (0=Sunday..6=Saturday) a weekly alarm fires on.
	// Membership is what matters, not position. Empty means the alarm never fires.
	DaysActive []int `json:"daysActive"`
	// DateISO is the "YYYY-MM-DD" calendar date of a one-shot alarm.
	// Ignored for weekly alarms.
	DateISO string `json:"dateISO"`
	// NotificationID is the opaque handle of the currently scheduled
	// notification, or empty when none is scheduled.
	NotificationID string `json:"notificationId"`
	// CreatedAt is the creation instant in epoch milliseconds, for display ordering only.
	CreatedAt int64 `json:"createdAt"`
}

// DefaultDaysActive returns the weekday set assigned to new weekly alarms
// when none is provided: Monday through Friday.
func DefaultDaysActive() []int {
	return []int{1, 2, 3, 4, 5}
}

// Clone returns a deep copy of the alarm to avoid leaking internal references.
func (a *Alarm) Clone() *Alarm {
	if a == nil {
		return nil
	}

	cloned := *a

	if a.DaysActive != nil {
		cloned.DaysActive = make([]int, len(a.DaysActive))
		copy(cloned.DaysActive, a.DaysActive)
	}

	return &cloned
}

// Normalize fills missing fields with creation defaults.
// It is applied to records reconstructed from storage, where older or
// partial payloads may lack fields. Enabled is left as decoded: a stored
// false is a legitimate state, not a gap.
func (a *Alarm) Normalize(now time.Time) {
	if a.Label == "" {
		a.Label = DefaultLabel
	}

	if a.Time == "" {
		a.Time = DefaultTime
	}

	if a.RepeatType == "" {
		a.RepeatType = RepeatWeekly
	}

	if a.DaysActive == nil {
		a.DaysActive = DefaultDaysActive()
	}

	if a.DateISO == "" {
		a.DateISO = now.Format(DateLayout)
	}

	if a.CreatedAt == 0 {
		a.CreatedAt = now.UnixMilli()
	}
}

// FiresOn reports whether the provided weekday is in the alarm's active set.
func (a *Alarm) FiresOn(day time.Weekday) bool {
	for _, d := range a.DaysActive {
		if d == int(day) {
			return true
		}
	}

	return false
}

// ParseClock splits an "HH:MM" wall-clock string into hour and minute.
// Missing or non-numeric parts degrade to zero rather than erroring, so a
// malformed time means midnight, never a failed alarm.
func ParseClock(s string) (hour, minute int) {
	if s == "" {
		return 0, 0
	}

	parts := strings.SplitN(s, ":", 2)

	hour, _ = strconv.Atoi(strings.TrimSpace(parts[0]))
	if len(parts) > 1 {
		minute, _ = strconv.Atoi(strings.TrimSpace(parts[1]))
	}

	return hour, minute
}
