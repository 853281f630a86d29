package alarm

import "time"

// occurrenceScanDays is the window scanned for the next weekly occurrence.
// A seven day window revisits every weekday exactly once, so a non-empty
// active set always produces a hit.
const occurrenceScanDays = 7

// NextOccurrence computes the next instant the alarm should ring strictly
// after now, in now's location. The second return value is false when the
// alarm never rings again: it is disabled, a one-shot whose date has
// passed, or a weekly alarm with an empty weekday set.
//
// An occurrence equal to now is treated as already past, not due, so an
// instant that was just observed is never re-fired. Seconds and
// sub-seconds are always zeroed.
func NextOccurrence(a *Alarm, now time.Time) (time.Time, bool) {
	if a == nil || !a.Enabled {
		return time.Time{}, false
	}

	hour, minute := ParseClock(a.Time)

	if a.RepeatType == RepeatOnce {
		return nextOnce(a, now, hour, minute)
	}

	// Any repeat type other than "once" follows the weekly rules.
	return nextWeekly(a, now, hour, minute)
}

// nextOnce resolves a one-shot alarm: its date at the parsed wall-clock
// time, unless that instant is absent, malformed or already past.
func nextOnce(a *Alarm, now time.Time, hour, minute int) (time.Time, bool) {
	if a.DateISO == "" {
		return time.Time{}, false
	}

	day, err := time.ParseInLocation(DateLayout, a.DateISO, now.Location())
	if err != nil {
		return time.Time{}, false
	}

	occurrence := time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, now.Location())
	if !occurrence.After(now) {
		// A past one-shot never fires again.
		return time.Time{}, false
	}

	return occurrence, true
}

// nextWeekly scans today plus the following six days and returns the first
// candidate whose weekday is active and whose instant is strictly after
// now. Today is checked first, so a same-day future time wins over next
// week's occurrence.
func nextWeekly(a *Alarm, now time.Time, hour, minute int) (time.Time, bool) {
	if len(a.DaysActive) == 0 {
		return time.Time{}, false
	}

	for add := 0; add < occurrenceScanDays; add++ {
		day := now.AddDate(0, 0, add)
		candidate := time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, now.Location())

		if a.FiresOn(candidate.Weekday()) && candidate.After(now) {
			return candidate, true
		}
	}

	return time.Time{}, false
}
