// Package stage defines the typed parameter schemas for pipeline stages.
//
// A pipeline stage is one of three kinds — predict, transfer, reason — each
// carrying its own parameter record. Configs form a tagged union dispatched
// on Type so that every consumption site (validator, serializer, editor)
// switches exhaustively over the closed set of kinds.
//
// Numeric ranges documented on the param structs are advisory: values are
// stored as-is even when out of range, and only structural workflow rules
// gate submission. Parameter tuning is the inference backend's concern.
package stage

import (
	"encoding/json"
	"fmt"
)

// Type identifies the kind of a pipeline stage.
type Type string

// Stage kinds. The set is closed; adding a kind requires updating
// DefaultConfig and UnmarshalConfig, which the compiler will not let you
// forget as long as consumption sites switch over all three.
const (
	TypePredict  Type = "predict"
	TypeTransfer Type = "transfer"
	TypeReason   Type = "reason"
)

// Valid reports whether t is one of the known stage kinds.
func (t Type) Valid() bool {
	switch t {
	case TypePredict, TypeTransfer, TypeReason:
		return true
	}
	return false
}

// Config is the tagged union of stage parameter records.
type Config interface {
	// StageType returns the kind tag this config belongs to.
	StageType() Type

	// Clone returns a deep copy sharing no mutable state with the receiver.
	Clone() Config
}

// Compile-time union membership checks.
var (
	_ Config = (*PredictParams)(nil)
	_ Config = (*TransferParams)(nil)
	_ Config = (*ReasonParams)(nil)
)

// DefaultConfig returns a fresh config of the given kind populated with
// defaults. Returns nil for an unknown kind.
func DefaultConfig(t Type) Config {
	switch t {
	case TypePredict:
		return DefaultPredictParams()
	case TypeTransfer:
		return DefaultTransferParams()
	case TypeReason:
		return DefaultReasonParams()
	default:
		return nil
	}
}

// UnmarshalConfig decodes raw JSON into the config type matching t.
func UnmarshalConfig(t Type, data []byte) (Config, error) {
	switch t {
	case TypePredict:
		var p PredictParams
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("failed to parse predict config: %w", err)
		}
		return &p, nil
	case TypeTransfer:
		var p TransferParams
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("failed to parse transfer config: %w", err)
		}
		p.SyncControlTypes()
		return &p, nil
	case TypeReason:
		var p ReasonParams
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("failed to parse reason config: %w", err)
		}
		return &p, nil
	default:
		return nil, fmt.Errorf("unknown stage type: %q", t)
	}
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
