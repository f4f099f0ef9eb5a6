// Package workflow models the ordered pipeline a job executes.
//
// A Workflow is a bounded, ordered list of typed stages. Mutations go through
// the CRUD methods, which maintain the invariant that stage Order values are
// always the contiguous sequence 1..N matching list position. Every mutation
// is synchronous; callers re-run Validate in the same logical step so the UI
// never observes a stale verdict.
package workflow

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/AuroraMediaLabs/pipedash/stage"
)

// MaxStages bounds the pipeline length.
const MaxStages = 4

// Stage is one step of a pipeline: an opaque unique id, a kind, a 1-based
// position, and the kind-specific config. A stage is exclusively owned by
// the Workflow that contains it; ids are generated fresh on creation and
// never reused after deletion.
type Stage struct {
	ID     string       `json:"id"`
	Type   stage.Type   `json:"type"`
	Order  int          `json:"order"`
	Config stage.Config `json:"config"`
}

// stageWire mirrors Stage with the config left raw for two-phase decoding.
type stageWire struct {
	ID     string          `json:"id"`
	Type   stage.Type      `json:"type"`
	Order  int             `json:"order"`
	Config json.RawMessage `json:"config"`
}

// UnmarshalJSON decodes the type tag first, then dispatches the config to
// the matching parameter record.
func (s *Stage) UnmarshalJSON(data []byte) error {
	var w stageWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	s.ID = w.ID
	s.Type = w.Type
	s.Order = w.Order
	s.Config = nil
	if len(w.Config) == 0 || string(w.Config) == "null" {
		return nil
	}
	cfg, err := stage.UnmarshalConfig(w.Type, w.Config)
	if err != nil {
		return fmt.Errorf("stage %s: %w", w.ID, err)
	}
	s.Config = cfg
	return nil
}

// Clone returns a deep copy of the stage, id included.
func (s *Stage) Clone() *Stage {
	c := *s
	if s.Config != nil {
		c.Config = s.Config.Clone()
	}
	return &c
}

// Workflow is the ordered stage list a job will execute.
type Workflow struct {
	Name   string   `json:"name,omitempty"`
	Stages []*Stage `json:"stages"`
}

// New creates an empty workflow.
func New(name string) *Workflow {
	return &Workflow{Name: name}
}

// Len returns the number of stages.
func (w *Workflow) Len() int { return len(w.Stages) }

// AddStage appends a stage of the given kind with its default config.
// Returns nil (silent rejection) when the workflow is already at MaxStages,
// when the kind is unknown, or when a reason stage would become the very
// first stage of an empty workflow — there is nothing for it to inspect yet.
func (w *Workflow) AddStage(t stage.Type) *Stage {
	return w.AddStageWithConfig(t, stage.DefaultConfig(t))
}

// AddStageWithConfig appends a stage with the supplied config, under the
// same rejection rules as AddStage. The config type must match t. Used when
// backend settings seed stage defaults.
func (w *Workflow) AddStageWithConfig(t stage.Type, cfg stage.Config) *Stage {
	if len(w.Stages) >= MaxStages {
		return nil
	}
	if cfg == nil || cfg.StageType() != t {
		return nil
	}
	if t == stage.TypeReason && len(w.Stages) == 0 {
		return nil
	}
	s := &Stage{
		ID:     uuid.NewString(),
		Type:   t,
		Order:  len(w.Stages) + 1,
		Config: cfg.Clone(),
	}
	w.Stages = append(w.Stages, s)
	return s
}

// RemoveStage deletes the stage with the given id and renumbers the rest.
// Returns false when no such stage exists.
func (w *Workflow) RemoveStage(id string) bool {
	for i, s := range w.Stages {
		if s.ID == id {
			w.Stages = append(w.Stages[:i], w.Stages[i+1:]...)
			w.renumber()
			return true
		}
	}
	return false
}

// Direction selects which neighbor MoveStage swaps with.
type Direction int

// Move directions.
const (
	MoveUp   Direction = -1
	MoveDown Direction = 1
)

// MoveStage swaps the stage with its neighbor in the given direction.
// No-op at either boundary or for an unknown id; returns whether a swap
// happened. Both stages are renumbered.
func (w *Workflow) MoveStage(id string, dir Direction) bool {
	if dir != MoveUp && dir != MoveDown {
		return false
	}
	for i, s := range w.Stages {
		if s.ID != id {
			continue
		}
		j := i + int(dir)
		if j < 0 || j >= len(w.Stages) {
			return false
		}
		w.Stages[i], w.Stages[j] = w.Stages[j], w.Stages[i]
		w.renumber()
		return true
	}
	return false
}

// UpdateStageConfig replaces a stage's config wholesale. The supplied config
// must match the stage's existing type — there is no type-change operation;
// changing a stage's kind is remove+add. Returns false for an unknown id or
// a type mismatch.
func (w *Workflow) UpdateStageConfig(id string, cfg stage.Config) bool {
	if cfg == nil {
		return false
	}
	for _, s := range w.Stages {
		if s.ID == id {
			if cfg.StageType() != s.Type {
				return false
			}
			s.Config = cfg.Clone()
			return true
		}
	}
	return false
}

// StageByID returns the stage with the given id, or nil.
func (w *Workflow) StageByID(id string) *Stage {
	for _, s := range w.Stages {
		if s.ID == id {
			return s
		}
	}
	return nil
}

// FirstOfType returns the first stage of the given kind, or nil.
func (w *Workflow) FirstOfType(t stage.Type) *Stage {
	for _, s := range w.Stages {
		if s.Type == t {
			return s
		}
	}
	return nil
}

// Clone returns a deep copy of the workflow, stage ids included.
func (w *Workflow) Clone() *Workflow {
	c := &Workflow{Name: w.Name}
	if w.Stages != nil {
		c.Stages = make([]*Stage, len(w.Stages))
		for i, s := range w.Stages {
			c.Stages[i] = s.Clone()
		}
	}
	return c
}

// renumber restores the 1..N order sequence after a structural mutation.
func (w *Workflow) renumber() {
	for i, s := range w.Stages {
		s.Order = i + 1
	}
}
