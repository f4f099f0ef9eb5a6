// Package jsonfile provides a JSON file-backed profile repository.
//
// The whole custom-profile list is serialized into a single file under a
// fixed path. Writes go through a temp file and rename so a crash mid-write
// never corrupts the stored list. There is no schema versioning and no
// cross-process locking: concurrent sessions are last-write-wins.
package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/AuroraMediaLabs/pipedash/profile"
)

// Compile-time interface check
var _ profile.Repository = (*Repository)(nil)

// Repository stores the custom-profile list in a JSON file.
type Repository struct {
	path string
}

// NewRepository creates a file-backed repository at the given path.
// The parent directory is created on first save.
func NewRepository(path string) *Repository {
	return &Repository{path: path}
}

// Load reads the stored list. A missing file reads as an empty list.
func (r *Repository) Load(ctx context.Context) ([]profile.Profile, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read profile file: %w", err)
	}
	var profiles []profile.Profile
	if err := json.Unmarshal(data, &profiles); err != nil {
		return nil, fmt.Errorf("failed to parse profile file: %w", err)
	}
	return profiles, nil
}

// Save atomically replaces the stored list.
func (r *Repository) Save(ctx context.Context, profiles []profile.Profile) error {
	if profiles == nil {
		profiles = []profile.Profile{}
	}
	data, err := json.MarshalIndent(profiles, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal profiles: %w", err)
	}

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create profile directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".profiles-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write profiles: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpName, r.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace profile file: %w", err)
	}
	return nil
}
