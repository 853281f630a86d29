package alarms

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	domain "github.com/oshokin/alarm-clock/internal/domain/alarm"
)

// TestFileRepository_NotFound verifies Load returns ErrNotFound for a missing file.
func TestFileRepository_NotFound(t *testing.T) {
	t.Parallel()

	repo := NewFileRepository(filepath.Join(t.TempDir(), "missing.json"))

	list, err := repo.Load(context.Background())
	require.ErrorIs(t, err, ErrNotFound)
	require.Nil(t, list)
}

// TestFileRepository_Corrupt verifies Load maps undecodable payloads to ErrCorrupt.
func TestFileRepository_Corrupt(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := NewFileRepository(path).Load(context.Background())
	require.ErrorIs(t, err, ErrCorrupt)
}

// TestFileRepository_SaveLoad_Roundtrip ensures Save followed by Load returns equal records.
func TestFileRepository_SaveLoad_Roundtrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "state.json")
	repo := NewFileRepository(path)

	want := []*domain.Alarm{
		{
			ID:             "a1",
			Label:          "Work",
			Enabled:        true,
			Time:           "07:00",
			RepeatType:     domain.RepeatWeekly,
			DaysActive:     []int{1, 2, 3, 4, 5},
			DateISO:        "2024-01-01",
			NotificationID: "n-123",
			CreatedAt:      1704067200000,
		},
		{
			ID:         "a2",
			Label:      "Dentist",
			Enabled:    false,
			Time:       "09:30",
			RepeatType: domain.RepeatOnce,
			DaysActive: []int{},
			DateISO:    "2024-02-14",
			CreatedAt:  1704067300000,
		},
	}

	require.NoError(t, repo.Save(context.Background(), want))

	got, err := repo.Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, want, got)
}

// TestFileRepository_Load_LegacyLayout ensures records written by the mobile
// app (null notificationId, missing fields, null entries) still load.
func TestFileRepository_Load_LegacyLayout(t *testing.T) {
	t.Parallel()

	payload := `[
		{"id":"a1","label":"Work","enabled":true,"time":"07:00",
		 "repeatType":"weekly","daysActive":[1,2,3,4,5],
		 "dateISO":"2024-01-01","notificationId":null,"createdAt":1704067200000},
		null,
		{"id":"a2","enabled":false}
	]`

	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte(payload), 0o600))

	got, err := NewFileRepository(path).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)

	require.Equal(t, "a1", got[0].ID)
	require.Empty(t, got[0].NotificationID)

	// Sparse record decodes to zero values; the manager normalizes later.
	require.Equal(t, "a2", got[1].ID)
	require.Empty(t, got[1].Time)
	require.Nil(t, got[1].DaysActive)
}

// TestFileRepository_Save_NilList writes an empty array rather than JSON null.
func TestFileRepository_Save_NilList(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "state.json")
	repo := NewFileRepository(path)

	require.NoError(t, repo.Save(context.Background(), nil))

	got, err := repo.Load(context.Background())
	require.NoError(t, err)
	require.Empty(t, got)
	require.NotNil(t, got)
}
