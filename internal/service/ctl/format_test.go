package ctl

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	domain "github.com/oshokin/alarm-clock/internal/domain/alarm"
)

// TestClock12 covers 12-hour display conversion, midnight and noon included.
func TestClock12(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in, want string
	}{
		{"00:00", "12:00 AM"},
		{"00:30", "12:30 AM"},
		{"07:05", "07:05 AM"},
		{"12:00", "12:00 PM"},
		{"19:05", "07:05 PM"},
		{"23:59", "11:59 PM"},
		{"garbage", "12:00 AM"},
	}

	for _, tc := range cases {
		require.Equal(t, tc.want, Clock12(tc.in), "input %q", tc.in)
	}
}

// TestUntil covers the three display granularities and the past case.
func TestUntil(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, time.January, 1, 6, 0, 0, 0, time.UTC)

	require.Equal(t, "Now", Until(now, now))
	require.Equal(t, "Now", Until(now, now.Add(-time.Hour)))
	require.Equal(t, "In 42m", Until(now, now.Add(42*time.Minute)))
	require.Equal(t, "In 3h 15m", Until(now, now.Add(3*time.Hour+15*time.Minute)))
	require.Equal(t, "In 2d 5h", Until(now, now.Add(2*24*time.Hour+5*time.Hour)))
}

// TestRepeatSummary covers once, weekly and empty-day rendering.
func TestRepeatSummary(t *testing.T) {
	t.Parallel()

	once := &domain.Alarm{RepeatType: domain.RepeatOnce, DateISO: "2024-02-14"}
	require.Equal(t, "once on 2024-02-14", repeatSummary(once))

	weekly := &domain.Alarm{RepeatType: domain.RepeatWeekly, DaysActive: []int{5, 1, 3}}
	require.Equal(t, "Mon,Wed,Fri", repeatSummary(weekly))

	empty := &domain.Alarm{RepeatType: domain.RepeatWeekly}
	require.Equal(t, "weekly, no days", repeatSummary(empty))
}
