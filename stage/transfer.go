package stage

import "fmt"

// Transfer resolution presets (short-edge heights).
var TransferResolutions = []string{"480", "720"}

// Transfer frame-rate presets.
var TransferFPSOptions = []int{16, 24}

// Control channel names, in canonical order.
const (
	ControlDepth = "depth"
	ControlEdge  = "edge"
	ControlSeg   = "seg"
	ControlVis   = "vis"
)

// controlOrder fixes the canonical channel ordering used when deriving
// ControlTypes, so repeated toggling never reorders or duplicates entries.
var controlOrder = []string{ControlDepth, ControlEdge, ControlSeg, ControlVis}

// ControlWeights holds per-modality conditioning influence, each in [0, 1].
// The values need not sum to 1; a sum above 1 is flagged as an advisory
// display hint only and is never normalized in the data model.
type ControlWeights struct {
	Depth float64 `json:"depth"`
	Edge  float64 `json:"edge"`
	Seg   float64 `json:"seg"`
	Vis   float64 `json:"vis"`
}

// Sum returns the total weight across all channels.
func (w ControlWeights) Sum() float64 {
	return w.Depth + w.Edge + w.Seg + w.Vis
}

// weight returns the value for a named channel.
func (w ControlWeights) weight(channel string) float64 {
	switch channel {
	case ControlDepth:
		return w.Depth
	case ControlEdge:
		return w.Edge
	case ControlSeg:
		return w.Seg
	case ControlVis:
		return w.Vis
	}
	return 0
}

// ActiveTypes returns the channels with weight > 0, in canonical order.
func (w ControlWeights) ActiveTypes() []string {
	var out []string
	for _, ch := range controlOrder {
		if w.weight(ch) > 0 {
			out = append(out, ch)
		}
	}
	return out
}

// TransferParams configures a style/environment transformation stage.
//
// Prompts may be authored directly or derived from Styles; the two modes are
// mutually exclusive. When Styles is non-empty, Prompts is the projection of
// each preset's prompt text.
type TransferParams struct {
	// Prompts is the ordered prompt list; minimum length 1.
	Prompts []string `json:"prompts"`

	// Styles names built-in style presets; see BuiltinStyles.
	Styles []string `json:"styles,omitempty"`

	// ControlWeights steers per-modality conditioning.
	ControlWeights ControlWeights `json:"control_weights"`

	// ControlTypes is derived: the channels whose weight is > 0. It is kept
	// consistent with ControlWeights on every mutation; mutate weights via
	// SetControlWeight or call SyncControlTypes after direct edits.
	ControlTypes []string `json:"control_types"`

	// Resolution is a short-edge preset from TransferResolutions.
	Resolution string `json:"resolution"`

	// FPS is the output frame rate, from TransferFPSOptions.
	FPS int `json:"fps"`

	// MaxFrames caps the number of processed frames.
	MaxFrames int `json:"max_frames"`

	// NumSteps is the diffusion step count, typically in [20, 50].
	NumSteps int `json:"num_steps"`

	// Seed selects the noise seed; 0 means randomize.
	Seed int `json:"seed"`

	// Guidance is the classifier-free guidance scale, typically in [1, 10].
	Guidance float64 `json:"guidance"`

	// Advanced conditioning fields.
	ImageContextURL      string `json:"image_context_url,omitempty"`
	ContextFrameIndex    int    `json:"context_frame_index,omitempty"`     // 0..30
	NumConditionalFrames int    `json:"num_conditional_frames,omitempty"`  // 1..5
	SegControlPrompt     string `json:"seg_control_prompt,omitempty"`      // relevant only when seg is active
}

// DefaultTransferParams returns transfer defaults.
func DefaultTransferParams() *TransferParams {
	p := &TransferParams{
		Prompts: []string{""},
		ControlWeights: ControlWeights{
			Depth: 0.5,
			Edge:  0.5,
		},
		Resolution:           "720",
		FPS:                  16,
		MaxFrames:            121,
		NumSteps:             35,
		Guidance:             7,
		NumConditionalFrames: 1,
	}
	p.SyncControlTypes()
	return p
}

// StageType implements Config.
func (p *TransferParams) StageType() Type { return TypeTransfer }

// Clone implements Config.
func (p *TransferParams) Clone() Config {
	c := *p
	c.Prompts = cloneStrings(p.Prompts)
	c.Styles = cloneStrings(p.Styles)
	c.ControlTypes = cloneStrings(p.ControlTypes)
	return &c
}

// SyncControlTypes rederives ControlTypes from ControlWeights.
func (p *TransferParams) SyncControlTypes() {
	p.ControlTypes = p.ControlWeights.ActiveTypes()
}

// SetControlWeight sets a named channel's weight and rederives ControlTypes.
// Unknown channel names are rejected.
func (p *TransferParams) SetControlWeight(channel string, value float64) error {
	switch channel {
	case ControlDepth:
		p.ControlWeights.Depth = value
	case ControlEdge:
		p.ControlWeights.Edge = value
	case ControlSeg:
		p.ControlWeights.Seg = value
	case ControlVis:
		p.ControlWeights.Vis = value
	default:
		return fmt.Errorf("unknown control channel: %q", channel)
	}
	p.SyncControlTypes()
	return nil
}

// ApplyStyles switches the stage into style-derived mode: Styles is set to
// the given preset names and Prompts becomes the projection of their prompt
// text. Unknown style names are rejected and leave the params unchanged.
func (p *TransferParams) ApplyStyles(names []string) error {
	prompts, err := StylePrompts(names)
	if err != nil {
		return err
	}
	p.Styles = cloneStrings(names)
	p.Prompts = prompts
	return nil
}

// SetPrompts switches the stage into directly-authored mode, clearing any
// style selection.
func (p *TransferParams) SetPrompts(prompts []string) {
	p.Styles = nil
	p.Prompts = cloneStrings(prompts)
}

// Advisories returns non-blocking warnings about the current values.
func (p *TransferParams) Advisories() []string {
	var out []string
	if len(p.Prompts) == 0 {
		out = append(out, "at least one prompt is expected")
	}
	if p.ControlWeights.Sum() > 1 {
		out = append(out, "control weights sum exceeds 1 and will be auto-normalized by the backend")
	}
	return out
}
