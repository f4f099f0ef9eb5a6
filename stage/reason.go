package stage

// Reason model-size presets.
var ReasonModelSizes = []string{"2B", "8B"}

// FilterMode controls what a reason stage does with failing variants.
type FilterMode string

// Filter modes.
const (
	// FilterPassOnly drops failing variants from downstream stages.
	FilterPassOnly FilterMode = "pass_only"

	// FilterTagOnly lets every variant through, annotated with pass/fail.
	FilterTagOnly FilterMode = "tag_only"
)

// ReasonCriteria is the fixed catalogue of validation dimensions a reason
// stage can score against.
var ReasonCriteria = []string{
	"gravity",
	"object_interaction",
	"motion_consistency",
	"lighting_coherence",
	"object_permanence",
	"temporal_consistency",
}

// ReasonParams configures a physics/quality validation gate.
// A variant passes when its physics score meets Threshold.
type ReasonParams struct {
	// Threshold is the pass bar in [0, 1].
	Threshold float64 `json:"threshold"`

	// ModelSize selects the scoring model, from ReasonModelSizes.
	ModelSize string `json:"model_size"`

	// VideoFPS is the sampling rate the scorer inspects footage at.
	VideoFPS int `json:"video_fps"`

	// MaxTokens bounds the scorer's reasoning output.
	MaxTokens int `json:"max_tokens"`

	// Criteria is a non-empty subset of ReasonCriteria.
	Criteria []string `json:"criteria"`

	// FilterMode decides whether failing variants are dropped or tagged.
	FilterMode FilterMode `json:"filter_mode"`
}

// DefaultReasonParams returns reason defaults.
func DefaultReasonParams() *ReasonParams {
	return &ReasonParams{
		Threshold:  0.7,
		ModelSize:  "8B",
		VideoFPS:   4,
		MaxTokens:  512,
		Criteria:   cloneStrings(ReasonCriteria),
		FilterMode: FilterPassOnly,
	}
}

// StageType implements Config.
func (p *ReasonParams) StageType() Type { return TypeReason }

// Clone implements Config.
func (p *ReasonParams) Clone() Config {
	c := *p
	c.Criteria = cloneStrings(p.Criteria)
	return &c
}

// Advisories returns non-blocking warnings about the current values.
func (p *ReasonParams) Advisories() []string {
	var out []string
	if len(p.Criteria) == 0 {
		out = append(out, "at least one criterion is expected")
	}
	if p.Threshold < 0 || p.Threshold > 1 {
		out = append(out, "threshold is expected in [0, 1]")
	}
	return out
}
