package stage

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestType_Valid(t *testing.T) {
	for _, typ := range []Type{TypePredict, TypeTransfer, TypeReason} {
		assert.True(t, typ.Valid())
	}
	assert.False(t, Type("upscale").Valid())
	assert.False(t, Type("").Valid())
}

func TestDefaultConfig_MatchesType(t *testing.T) {
	for _, typ := range []Type{TypePredict, TypeTransfer, TypeReason} {
		cfg := DefaultConfig(typ)
		require.NotNil(t, cfg, "no default for %s", typ)
		assert.Equal(t, typ, cfg.StageType())
	}
	assert.Nil(t, DefaultConfig(Type("upscale")))
}

func TestUnmarshalConfig_Dispatch(t *testing.T) {
	cfg, err := UnmarshalConfig(TypePredict, []byte(`{"prompts":["p"],"seed":3}`))
	require.NoError(t, err)
	p := cfg.(*PredictParams)
	assert.Equal(t, []string{"p"}, p.Prompts)
	assert.Equal(t, 3, p.Seed)

	_, err = UnmarshalConfig(Type("upscale"), []byte(`{}`))
	require.Error(t, err)

	_, err = UnmarshalConfig(TypeReason, []byte(`{"threshold":`))
	require.Error(t, err)
}

func TestUnmarshalConfig_TransferSyncsControlTypes(t *testing.T) {
	// Wire payloads may carry stale or missing control_types; decoding
	// rederives them from the weights.
	cfg, err := UnmarshalConfig(TypeTransfer,
		[]byte(`{"prompts":["p"],"control_weights":{"depth":0.3,"seg":0.4}}`))
	require.NoError(t, err)
	assert.Equal(t, []string{ControlDepth, ControlSeg}, cfg.(*TransferParams).ControlTypes)
}

func TestClone_IsDeep(t *testing.T) {
	p := DefaultPredictParams()
	p.Prompts = []string{"one"}
	c := p.Clone().(*PredictParams)
	c.Prompts[0] = "changed"
	assert.Equal(t, "one", p.Prompts[0])

	tr := DefaultTransferParams()
	tc := tr.Clone().(*TransferParams)
	require.NoError(t, tc.SetControlWeight(ControlVis, 1))
	assert.NotContains(t, tr.ControlTypes, ControlVis)

	r := DefaultReasonParams()
	rc := r.Clone().(*ReasonParams)
	rc.Criteria[0] = "changed"
	assert.Equal(t, ReasonCriteria[0], r.Criteria[0])
}

func TestPredictDefaults(t *testing.T) {
	p := DefaultPredictParams()
	assert.Contains(t, PredictResolutions, p.Resolution)
	assert.Contains(t, PredictFPSOptions, p.FPS)
	assert.Contains(t, PredictFrameCounts, p.NumOutputFrames)
	assert.Equal(t, 0, p.Seed)
	assert.Less(t, p.ChunkOverlap, p.ChunkSize)
}

func TestPredictAdvisories_ChunkOverlap(t *testing.T) {
	p := DefaultPredictParams()
	p.EnableAutoregressive = true
	p.ChunkOverlap = p.ChunkSize
	advisories := p.Advisories()
	require.Len(t, advisories, 1)
	assert.Contains(t, advisories[0], "strictly less")

	// Out-of-range values are stored as-is; advisories never block.
	data, err := json.Marshal(p)
	require.NoError(t, err)
	round, err := UnmarshalConfig(TypePredict, data)
	require.NoError(t, err)
	assert.Equal(t, p.ChunkSize, round.(*PredictParams).ChunkOverlap)
}

func TestReasonDefaults(t *testing.T) {
	r := DefaultReasonParams()
	assert.Equal(t, 0.7, r.Threshold)
	assert.Contains(t, ReasonModelSizes, r.ModelSize)
	assert.Equal(t, FilterPassOnly, r.FilterMode)
	assert.NotEmpty(t, r.Criteria)
	for _, c := range r.Criteria {
		assert.Contains(t, ReasonCriteria, c)
	}
}
