package ctl

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	repository "github.com/oshokin/alarm-clock/internal/repository/alarms"
	alarmsvc "github.com/oshokin/alarm-clock/internal/service/alarms"
)

// testOptions returns Options writing to a buffer over a temp state file.
func testOptions(t *testing.T) (*Options, *bytes.Buffer) {
	t.Helper()

	out := new(bytes.Buffer)
	opts := &Options{
		ConfigPath: filepath.Join(t.TempDir(), "missing-settings.yaml"),
		StateFile:  filepath.Join(t.TempDir(), "state.json"),
		Out:        out,
	}

	return opts, out
}

// firstAlarmID loads the state file directly and returns the first record's id.
func firstAlarmID(t *testing.T, stateFile string) string {
	t.Helper()

	list, err := repository.NewFileRepository(stateFile).Load(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, list)

	return list[0].ID
}

// TestAddAndList exercises the create-then-list flow end to end over the
// real file repository.
func TestAddAndList(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	opts, out := testOptions(t)

	label := "Gym"
	at := "06:30"

	require.NoError(t, Add(ctx, opts, patchOf(label, at)))
	require.Contains(t, out.String(), "Gym")
	require.Contains(t, out.String(), "06:30 AM")

	out.Reset()

	require.NoError(t, List(ctx, opts))
	require.Contains(t, out.String(), "Gym")
	require.Contains(t, out.String(), "Mon,Tue,Wed,Thu,Fri")
}

// TestSetToggleRemove walks an alarm through edit, toggle and removal.
func TestSetToggleRemove(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	opts, out := testOptions(t)

	require.NoError(t, Add(ctx, opts, patchOf("Work", "07:00")))

	id := firstAlarmID(t, opts.StateFile)
	out.Reset()

	// Edit the time.
	newTime := "08:15"

	require.NoError(t, Set(ctx, opts, id, patchOfTime(newTime)))
	require.Contains(t, out.String(), "08:15 AM")

	out.Reset()

	// Toggle off.
	require.NoError(t, Toggle(ctx, opts, id))
	require.Contains(t, out.String(), "disabled")

	out.Reset()

	// Remove.
	require.NoError(t, Remove(ctx, opts, id))
	require.Contains(t, out.String(), "Deleted alarm")

	list, err := repository.NewFileRepository(opts.StateFile).Load(ctx)
	require.NoError(t, err)
	require.Empty(t, list)
}

// TestUnknownID verifies operations on unknown ids report politely and do
// not error.
func TestUnknownID(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	opts, out := testOptions(t)

	require.NoError(t, Add(ctx, opts, patchOf("Work", "07:00")))
	out.Reset()

	require.NoError(t, Toggle(ctx, opts, "no-such-id"))
	require.Contains(t, out.String(), "not found")

	out.Reset()

	require.NoError(t, Remove(ctx, opts, "no-such-id"))
	require.Contains(t, out.String(), "not found")

	out.Reset()

	require.NoError(t, Set(ctx, opts, "no-such-id", patchOfTime("09:00")))
	require.Contains(t, out.String(), "not found")
}

// patchOf builds a label+time patch for test alarms.
func patchOf(label, at string) alarmsvc.Patch {
	return alarmsvc.Patch{Label: &label, Time: &at}
}

// patchOfTime builds a time-only patch.
func patchOfTime(at string) alarmsvc.Patch {
	return alarmsvc.Patch{Time: &at}
}
