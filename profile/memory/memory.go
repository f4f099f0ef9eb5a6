// Package memory provides an in-memory profile repository.
//
// It is thread-safe and suitable for tests and single-session use. Nothing
// survives process exit; use the jsonfile or redis repositories for durable
// storage.
package memory

import (
	"context"
	"sync"

	"github.com/AuroraMediaLabs/pipedash/profile"
)

// Compile-time interface check
var _ profile.Repository = (*Repository)(nil)

// Repository stores the custom-profile list in memory.
type Repository struct {
	mu       sync.RWMutex
	profiles []profile.Profile
}

// NewRepository creates an empty in-memory repository.
func NewRepository() *Repository {
	return &Repository{}
}

// Load returns a deep copy of the stored list.
func (r *Repository) Load(ctx context.Context) ([]profile.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return cloneList(r.profiles), nil
}

// Save replaces the stored list with a deep copy of profiles.
func (r *Repository) Save(ctx context.Context, profiles []profile.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles = cloneList(profiles)
	return nil
}

func cloneList(in []profile.Profile) []profile.Profile {
	if in == nil {
		return nil
	}
	out := make([]profile.Profile, len(in))
	for i, p := range in {
		out[i] = p.Clone()
	}
	return out
}
