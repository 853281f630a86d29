package alarms

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/oshokin/alarm-clock/internal/config"
	domain "github.com/oshokin/alarm-clock/internal/domain/alarm"
)

// Repository defines persistence operations for the alarm list.
// The list is always loaded and saved as a whole: there are no partial updates.
type Repository interface {
	Load(ctx context.Context) ([]*domain.Alarm, error)
	Save(ctx context.Context, alarms []*domain.Alarm) error
}

var (
	// ErrNotFound is returned when the state file does not exist yet.
	ErrNotFound = errors.New("alarm state not found")
	// ErrCorrupt is returned when the state file cannot be decoded.
	// Callers recover by starting from an empty list.
	ErrCorrupt = errors.New("alarm state is corrupt")
)

// FileRepository persists the alarm list to a JSON file on disk.
// The layout is a plain JSON array of alarm records, compatible with the
// list the mobile app stored under its alarms key.
type FileRepository struct {
	// path is the filesystem location of the JSON state file.
	path string
	// mu protects concurrent access to the state file.
	mu sync.Mutex
}

// NewFileRepository creates a repository that reads/writes JSON at the provided path.
func NewFileRepository(path string) *FileRepository {
	return &FileRepository{
		path: filepath.Clean(path),
	}
}

// Load reads the alarm list from disk.
func (r *FileRepository) Load(_ context.Context) ([]*domain.Alarm, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	contents, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("read state file: %w", err)
	}

	var list []*domain.Alarm
	if err = json.Unmarshal(contents, &list); err != nil {
		return nil, fmt.Errorf("decode state file: %w", ErrCorrupt)
	}

	// Drop null entries so callers never see nil records.
	result := make([]*domain.Alarm, 0, len(list))
	for _, a := range list {
		if a != nil {
			result = append(result, a)
		}
	}

	return result, nil
}

// Save writes the entire alarm list to disk, replacing the previous contents.
func (r *FileRepository) Save(_ context.Context, alarms []*domain.Alarm) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if alarms == nil {
		alarms = []*domain.Alarm{}
	}

	data, err := json.MarshalIndent(alarms, "", "  ")
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}

	if err = os.WriteFile(r.path, data, config.DefaultFilePermissions); err != nil {
		return fmt.Errorf("write state file: %w", err)
	}

	return nil
}
