// Package profile provides named, reusable workflow templates.
//
// A profile stores stage type, order and config only — stage ids are stripped
// on save and assigned fresh at apply-time, so two applications of the same
// profile never produce colliding ids or shared mutable config state.
//
// Built-in profiles ship with the application and are immutable. Custom
// profiles live behind an injected Repository so the storage mechanism
// (memory, file, redis) is swappable and testable without a browser
// environment. Custom-profile persistence is a whole-list replacement:
// concurrent sessions clobber each other last-write-wins, a known limitation
// documented rather than solved here.
package profile

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/AuroraMediaLabs/pipedash/stage"
)

// Sentinel errors.
var (
	// ErrNotFound is returned when no profile has the requested id.
	ErrNotFound = errors.New("profile not found")

	// ErrBuiltIn is returned when a mutation targets a built-in profile.
	ErrBuiltIn = errors.New("built-in profiles cannot be modified")
)

// StageTemplate is one stored stage: kind, position, and config, without an
// id.
type StageTemplate struct {
	Type   stage.Type   `json:"type"`
	Order  int          `json:"order"`
	Config stage.Config `json:"config"`
}

type stageTemplateWire struct {
	Type   stage.Type      `json:"type"`
	Order  int             `json:"order"`
	Config json.RawMessage `json:"config"`
}

// UnmarshalJSON decodes the type tag first, then dispatches the config.
func (t *StageTemplate) UnmarshalJSON(data []byte) error {
	var w stageTemplateWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	t.Type = w.Type
	t.Order = w.Order
	t.Config = nil
	if len(w.Config) == 0 || string(w.Config) == "null" {
		return nil
	}
	cfg, err := stage.UnmarshalConfig(w.Type, w.Config)
	if err != nil {
		return fmt.Errorf("stage template %d: %w", w.Order, err)
	}
	t.Config = cfg
	return nil
}

// Clone returns a deep copy of the template.
func (t StageTemplate) Clone() StageTemplate {
	c := t
	if t.Config != nil {
		c.Config = t.Config.Clone()
	}
	return c
}

// Profile is a named workflow template.
type Profile struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Stages      []StageTemplate `json:"stages"`
	IsBuiltIn   bool            `json:"isBuiltIn"`
	CreatedAt   *time.Time      `json:"createdAt,omitempty"`
}

// Clone returns a deep copy of the profile.
func (p Profile) Clone() Profile {
	c := p
	if p.CreatedAt != nil {
		ts := *p.CreatedAt
		c.CreatedAt = &ts
	}
	if p.Stages != nil {
		c.Stages = make([]StageTemplate, len(p.Stages))
		for i, s := range p.Stages {
			c.Stages[i] = s.Clone()
		}
	}
	return c
}
