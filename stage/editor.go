package stage

import (
	"encoding/json"
	"fmt"
)

// EditorMode identifies which editing surface owns a stage config.
type EditorMode string

// Editor modes.
const (
	// ModeStructured means the typed config object is authoritative.
	ModeStructured EditorMode = "structured"

	// ModeRawText means the user is editing the serialized JSON; the typed
	// config stays frozen at its last committed value until Commit or Discard.
	ModeRawText EditorMode = "raw"
)

// Editor is an explicit two-mode state machine over a single stage config.
//
// In Structured mode the config object is the single source of truth. EnterRaw
// serializes it into a text buffer and hands ownership to the user; from then
// on the buffer is never regenerated behind the user's back. Commit parses
// the buffer back into the config and returns to Structured mode; a parse
// failure keeps the malformed text intact so the user can correct it. Discard
// drops the buffer and returns to the last committed config.
type Editor struct {
	config   Config
	mode     EditorMode
	raw      string
	parseErr error
}

// NewEditor creates an editor over cfg, starting in Structured mode.
// The editor takes ownership of a deep copy; caller state is never aliased.
func NewEditor(cfg Config) *Editor {
	return &Editor{
		config: cfg.Clone(),
		mode:   ModeStructured,
	}
}

// Mode returns the current editing mode.
func (e *Editor) Mode() EditorMode { return e.mode }

// Config returns the last committed config. The returned value is a deep
// copy; mutate it via Update, not in place.
func (e *Editor) Config() Config { return e.config.Clone() }

// Err returns the parse error from the last failed Commit, or nil.
func (e *Editor) Err() error { return e.parseErr }

// Raw returns the current text buffer. Meaningful only in RawText mode.
func (e *Editor) Raw() string { return e.raw }

// Update replaces the config while in Structured mode. Rejected in RawText
// mode — the user's text edits own the stage until committed or discarded.
func (e *Editor) Update(cfg Config) error {
	if e.mode != ModeStructured {
		return fmt.Errorf("cannot update config while raw text edit is in progress")
	}
	if cfg.StageType() != e.config.StageType() {
		return fmt.Errorf("config type %q does not match stage type %q",
			cfg.StageType(), e.config.StageType())
	}
	e.config = cfg.Clone()
	return nil
}

// EnterRaw serializes the config into the text buffer and switches to
// RawText mode. No-op if already in RawText mode.
func (e *Editor) EnterRaw() error {
	if e.mode == ModeRawText {
		return nil
	}
	data, err := json.MarshalIndent(e.config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}
	e.raw = string(data)
	e.mode = ModeRawText
	e.parseErr = nil
	return nil
}

// SetRaw replaces the text buffer. Only legal in RawText mode.
func (e *Editor) SetRaw(text string) error {
	if e.mode != ModeRawText {
		return fmt.Errorf("not in raw text mode")
	}
	e.raw = text
	return nil
}

// Commit parses the text buffer and, on success, makes it the committed
// config and returns to Structured mode. On failure the buffer and mode are
// preserved so the malformed input stays on screen, and the error is also
// retained on Err.
func (e *Editor) Commit() error {
	if e.mode != ModeRawText {
		return nil
	}
	cfg, err := UnmarshalConfig(e.config.StageType(), []byte(e.raw))
	if err != nil {
		e.parseErr = err
		return err
	}
	e.config = cfg
	e.mode = ModeStructured
	e.raw = ""
	e.parseErr = nil
	return nil
}

// Discard abandons the text buffer and returns to Structured mode with the
// last committed config.
func (e *Editor) Discard() {
	e.mode = ModeStructured
	e.raw = ""
	e.parseErr = nil
}

// Reset replaces the config with its type's defaults and returns to
// Structured mode, dropping any in-flight text edits.
func (e *Editor) Reset() {
	e.config = DefaultConfig(e.config.StageType())
	e.mode = ModeStructured
	e.raw = ""
	e.parseErr = nil
}
