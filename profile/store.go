package profile

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/AuroraMediaLabs/pipedash/logger"
	"github.com/AuroraMediaLabs/pipedash/workflow"
)

// Repository provides durable storage for the custom-profile list.
//
// Writes replace the entire list — the granularity of the underlying
// client-side stores. Implementations must not retain or alias the slices
// they are handed.
type Repository interface {
	// Load returns the full custom-profile list. A missing store reads as an
	// empty list, not an error.
	Load(ctx context.Context) ([]Profile, error)

	// Save replaces the full custom-profile list.
	Save(ctx context.Context, profiles []Profile) error
}

// Store manages built-in and custom workflow profiles.
type Store struct {
	repo Repository
}

// NewStore creates a profile store over the given repository.
func NewStore(repo Repository) *Store {
	return &Store{repo: repo}
}

// List returns all profiles: built-ins first in fixed order, then custom
// profiles in storage order.
func (s *Store) List(ctx context.Context) ([]Profile, error) {
	custom, err := s.repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load custom profiles: %w", err)
	}
	out := BuiltinProfiles()
	for _, p := range custom {
		out = append(out, p.Clone())
	}
	return out, nil
}

// SaveProfile snapshots the workflow as a new custom profile. Stage ids are
// stripped — profiles store type, order and config only — and every config is
// deep-cloned so the profile never aliases live editor state.
func (s *Store) SaveProfile(ctx context.Context, name, description string, w *workflow.Workflow) (*Profile, error) {
	if name == "" {
		return nil, fmt.Errorf("profile name required")
	}
	now := time.Now().UTC()
	p := Profile{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		CreatedAt:   &now,
	}
	for _, st := range w.Stages {
		tmpl := StageTemplate{Type: st.Type, Order: st.Order}
		if st.Config != nil {
			tmpl.Config = st.Config.Clone()
		}
		p.Stages = append(p.Stages, tmpl)
	}

	custom, err := s.repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load custom profiles: %w", err)
	}
	custom = append(custom, p)
	if err := s.repo.Save(ctx, custom); err != nil {
		return nil, fmt.Errorf("failed to persist profiles: %w", err)
	}

	logger.Info("profile saved", "id", p.ID, "name", p.Name, "stages", len(p.Stages))
	out := p.Clone()
	return &out, nil
}

// Get returns the profile with the given id, built-in or custom.
func (s *Store) Get(ctx context.Context, id string) (*Profile, error) {
	for _, p := range builtins {
		if p.ID == id {
			out := p.Clone()
			return &out, nil
		}
	}
	custom, err := s.repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load custom profiles: %w", err)
	}
	for _, p := range custom {
		if p.ID == id {
			out := p.Clone()
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

// Apply constructs a fresh workflow from the profile with the given id.
// Every stage gets a newly generated id and a deep-cloned config, so
// applying the same profile twice never yields colliding ids or shared
// mutable state.
func (s *Store) Apply(ctx context.Context, id string) (*workflow.Workflow, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	w := workflow.New(p.Name)
	for _, tmpl := range p.Stages {
		st := &workflow.Stage{
			ID:    uuid.NewString(),
			Type:  tmpl.Type,
			Order: tmpl.Order,
		}
		if tmpl.Config != nil {
			st.Config = tmpl.Config.Clone()
		}
		w.Stages = append(w.Stages, st)
	}
	return w, nil
}

// Delete removes a custom profile. Built-in profiles reject deletion with
// ErrBuiltIn.
func (s *Store) Delete(ctx context.Context, id string) error {
	for _, p := range builtins {
		if p.ID == id {
			return ErrBuiltIn
		}
	}
	custom, err := s.repo.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load custom profiles: %w", err)
	}
	for i, p := range custom {
		if p.ID == id {
			custom = append(custom[:i], custom[i+1:]...)
			if err := s.repo.Save(ctx, custom); err != nil {
				return fmt.Errorf("failed to persist profiles: %w", err)
			}
			logger.Info("profile deleted", "id", id)
			return nil
		}
	}
	return ErrNotFound
}

// ExportAll serializes the custom-profile list as JSON.
func (s *Store) ExportAll(ctx context.Context) ([]byte, error) {
	custom, err := s.repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load custom profiles: %w", err)
	}
	if custom == nil {
		custom = []Profile{}
	}
	return json.MarshalIndent(custom, "", "  ")
}

// ImportFrom merges a serialized profile list into the custom store.
// The payload is schema-validated before any decode. Merge is by id with
// first write wins: an imported profile whose id already exists in the
// custom store (or collides with a built-in) is skipped, everything else is
// appended. Returns the number of profiles added.
func (s *Store) ImportFrom(ctx context.Context, data []byte) (int, error) {
	if err := validateProfileList(data); err != nil {
		return 0, fmt.Errorf("invalid profile list: %w", err)
	}
	var incoming []Profile
	if err := json.Unmarshal(data, &incoming); err != nil {
		return 0, fmt.Errorf("failed to parse profile list: %w", err)
	}

	custom, err := s.repo.Load(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to load custom profiles: %w", err)
	}

	existing := make(map[string]bool, len(custom)+len(builtins))
	for _, p := range builtins {
		existing[p.ID] = true
	}
	for _, p := range custom {
		existing[p.ID] = true
	}

	added := 0
	for _, p := range incoming {
		if existing[p.ID] {
			logger.Debug("import skipped existing profile", "id", p.ID)
			continue
		}
		p.IsBuiltIn = false
		custom = append(custom, p.Clone())
		existing[p.ID] = true
		added++
	}
	if added > 0 {
		if err := s.repo.Save(ctx, custom); err != nil {
			return 0, fmt.Errorf("failed to persist profiles: %w", err)
		}
	}
	logger.Info("profiles imported", "added", added, "skipped", len(incoming)-added)
	return added, nil
}
