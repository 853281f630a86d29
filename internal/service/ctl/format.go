package ctl

import (
	"fmt"
	"sort"
	"strings"
	"time"

	domain "github.com/oshokin/alarm-clock/internal/domain/alarm"
)

// dayNames maps weekday numbers (0=Sunday) to display abbreviations.
var dayNames = [...]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// Clock12 renders an "HH:MM" wall-clock string as a 12-hour display,
// e.g. "19:05" -> "07:05 PM". Malformed input degrades to midnight the
// same way the occurrence calculator does.
func Clock12(hhmm string) string {
	hour, minute := domain.ParseClock(hhmm)

	meridiem := "AM"
	if hour >= 12 {
		meridiem = "PM"
	}

	hour12 := (hour+11)%12 + 1

	return fmt.Sprintf("%02d:%02d %s", hour12, minute, meridiem)
}

// Until renders the distance to a future instant as "In 2d 3h",
// "In 3h 15m" or "In 42m". A target not in the future renders as "Now".
func Until(now, target time.Time) string {
	if !target.After(now) {
		return "Now"
	}

	totalMinutes := int(target.Sub(now) / time.Minute)

	var (
		days    = totalMinutes / (60 * 24)
		hours   = (totalMinutes % (60 * 24)) / 60
		minutes = totalMinutes % 60
	)

	switch {
	case days > 0:
		return fmt.Sprintf("In %dd %dh", days, hours)
	case hours > 0:
		return fmt.Sprintf("In %dh %dm", hours, minutes)
	default:
		return fmt.Sprintf("In %dm", minutes)
	}
}

// repeatSummary renders an alarm's recurrence rule for display.
func repeatSummary(a *domain.Alarm) string {
	if a.RepeatType == domain.RepeatOnce {
		return "once on " + a.DateISO
	}

	if len(a.DaysActive) == 0 {
		return "weekly, no days"
	}

	days := make([]int, len(a.DaysActive))
	copy(days, a.DaysActive)
	sort.Ints(days)

	names := make([]string, 0, len(days))
	for _, d := range days {
		if d >= 0 && d < len(dayNames) {
			names = append(names, dayNames[d])
		}
	}

	return strings.Join(names, ",")
}
