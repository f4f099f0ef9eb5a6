package stage

// Predict resolution presets, as "height,width" pairs.
var PredictResolutions = []string{
	"480,832",
	"624,1104",
	"704,1280",
	"720,1280",
}

// Predict frame-rate presets.
var PredictFPSOptions = []int{10, 16}

// Predict output length presets. The counts correspond to roughly 4s, 8s and
// 16s of footage at the model's base rate.
var PredictFrameCounts = []int{121, 241, 481}

// PredictParams configures a prompt-to-video generation stage.
// One input produces N outputs, one per prompt.
type PredictParams struct {
	// Prompts is the ordered prompt list; minimum length 1.
	Prompts []string `json:"prompts"`

	// NegativePrompt steers generation away from its content.
	NegativePrompt string `json:"negative_prompt,omitempty"`

	// Seed selects the noise seed; 0 means randomize, per backend convention.
	Seed int `json:"seed"`

	// Guidance is the classifier-free guidance scale, typically in [1, 10].
	Guidance float64 `json:"guidance"`

	// Resolution is a "height,width" pair from PredictResolutions.
	Resolution string `json:"resolution"`

	// FPS is the output frame rate, from PredictFPSOptions.
	FPS int `json:"fps"`

	// NumOutputFrames is the output length, from PredictFrameCounts.
	NumOutputFrames int `json:"num_output_frames"`

	// NumSteps is the diffusion step count, typically in [20, 50].
	NumSteps int `json:"num_steps"`

	// EnableAutoregressive turns on chunked long-video generation. When set,
	// ChunkSize and ChunkOverlap govern the sliding window; overlap must stay
	// strictly below chunk size.
	EnableAutoregressive bool `json:"enable_autoregressive"`
	ChunkSize            int  `json:"chunk_size"`
	ChunkOverlap         int  `json:"chunk_overlap"`
}

// DefaultPredictParams returns predict defaults.
func DefaultPredictParams() *PredictParams {
	return &PredictParams{
		Prompts:         []string{""},
		Seed:            0,
		Guidance:        7,
		Resolution:      "704,1280",
		FPS:             16,
		NumOutputFrames: 121,
		NumSteps:        35,
		ChunkSize:       33,
		ChunkOverlap:    9,
	}
}

// StageType implements Config.
func (p *PredictParams) StageType() Type { return TypePredict }

// Clone implements Config.
func (p *PredictParams) Clone() Config {
	c := *p
	c.Prompts = cloneStrings(p.Prompts)
	return &c
}

// Advisories returns non-blocking warnings about the current values.
// These are display hints only; nothing here gates submission.
func (p *PredictParams) Advisories() []string {
	var out []string
	if len(p.Prompts) == 0 {
		out = append(out, "at least one prompt is expected")
	}
	if p.EnableAutoregressive && p.ChunkOverlap >= p.ChunkSize {
		out = append(out, "chunk overlap must be strictly less than chunk size")
	}
	return out
}
