package stage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestControlTypes_DerivedFromWeights(t *testing.T) {
	p := DefaultTransferParams()
	assert.Equal(t, []string{ControlDepth, ControlEdge}, p.ControlTypes)

	// Zeroing a weight removes its channel.
	require.NoError(t, p.SetControlWeight(ControlDepth, 0))
	assert.Equal(t, []string{ControlEdge}, p.ControlTypes)

	// Any positive weight re-adds it, in canonical order.
	require.NoError(t, p.SetControlWeight(ControlSeg, 0.2))
	require.NoError(t, p.SetControlWeight(ControlDepth, 0.1))
	assert.Equal(t, []string{ControlDepth, ControlEdge, ControlSeg}, p.ControlTypes)
}

func TestControlTypes_NoDuplicatesAfterToggling(t *testing.T) {
	p := DefaultTransferParams()
	for i := 0; i < 10; i++ {
		require.NoError(t, p.SetControlWeight(ControlSeg, 0))
		assert.NotContains(t, p.ControlTypes, ControlSeg)
		require.NoError(t, p.SetControlWeight(ControlSeg, 0.5))
	}
	count := 0
	for _, ct := range p.ControlTypes {
		if ct == ControlSeg {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestSetControlWeight_UnknownChannel(t *testing.T) {
	p := DefaultTransferParams()
	require.Error(t, p.SetControlWeight("normal", 0.5))
}

func TestApplyStyles_ProjectsPrompts(t *testing.T) {
	p := DefaultTransferParams()
	require.NoError(t, p.ApplyStyles([]string{"Rain", "Snow"}))

	rain, _ := StyleByName("Rain")
	snow, _ := StyleByName("Snow")
	assert.Equal(t, []string{"Rain", "Snow"}, p.Styles)
	assert.Equal(t, []string{rain.Prompt, snow.Prompt}, p.Prompts)
}

func TestApplyStyles_UnknownNameLeavesParamsUnchanged(t *testing.T) {
	p := DefaultTransferParams()
	p.SetPrompts([]string{"authored"})
	require.Error(t, p.ApplyStyles([]string{"Rain", "Blizzard"}))
	assert.Nil(t, p.Styles)
	assert.Equal(t, []string{"authored"}, p.Prompts)
}

func TestSetPrompts_ClearsStyles(t *testing.T) {
	// Styles and directly-authored prompts are mutually exclusive modes.
	p := DefaultTransferParams()
	require.NoError(t, p.ApplyStyles([]string{"Fog"}))
	p.SetPrompts([]string{"my own"})
	assert.Nil(t, p.Styles)
	assert.Equal(t, []string{"my own"}, p.Prompts)
}

func TestAdvisories_WeightSumHint(t *testing.T) {
	p := DefaultTransferParams()
	require.NoError(t, p.SetControlWeight(ControlSeg, 0.8))

	// Sum is now 1.8: advisory only, the stored weights are untouched.
	advisories := p.Advisories()
	require.Len(t, advisories, 1)
	assert.Contains(t, advisories[0], "auto-normalized")
	assert.Equal(t, 0.5, p.ControlWeights.Depth)
	assert.Equal(t, 0.8, p.ControlWeights.Seg)
}

func TestStylePrompts_PreservesOrder(t *testing.T) {
	got, err := StylePrompts([]string{"Night", "Rain"})
	require.NoError(t, err)
	night, _ := StyleByName("Night")
	rain, _ := StyleByName("Rain")
	assert.Equal(t, []string{night.Prompt, rain.Prompt}, got)
}
