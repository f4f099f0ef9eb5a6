package stage

import "fmt"

// StylePreset is a named, built-in transfer style with its prompt text.
type StylePreset struct {
	Name   string `json:"name"`
	Prompt string `json:"prompt"`
}

// BuiltinStyles is the shipped style catalogue, in display order.
// Presets are immutable; callers receive copies of their prompt text.
var BuiltinStyles = []StylePreset{
	{Name: "Rain", Prompt: "heavy rain falling, wet reflective surfaces, overcast sky, water droplets streaking"},
	{Name: "Snow", Prompt: "snow covered scene, falling snowflakes, cold diffuse winter light"},
	{Name: "Fog", Prompt: "dense fog, low visibility, soft diffused light, muted colors"},
	{Name: "Night", Prompt: "night time scene, artificial lighting, deep shadows, high contrast"},
	{Name: "Golden Hour", Prompt: "golden hour sunlight, long warm shadows, saturated amber tones"},
	{Name: "Desert", Prompt: "arid desert environment, dust haze, harsh directional sunlight"},
}

// StyleByName looks up a built-in preset by name.
func StyleByName(name string) (StylePreset, bool) {
	for _, s := range BuiltinStyles {
		if s.Name == name {
			return s, true
		}
	}
	return StylePreset{}, false
}

// StylePrompts projects the given preset names onto their prompt text,
// preserving order. An unknown name fails the whole projection.
func StylePrompts(names []string) ([]string, error) {
	out := make([]string, 0, len(names))
	for _, name := range names {
		s, ok := StyleByName(name)
		if !ok {
			return nil, fmt.Errorf("unknown style preset: %q", name)
		}
		out = append(out, s.Prompt)
	}
	return out, nil
}
