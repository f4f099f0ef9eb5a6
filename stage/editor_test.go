package stage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEditor_StartsStructured(t *testing.T) {
	e := NewEditor(DefaultPredictParams())
	assert.Equal(t, ModeStructured, e.Mode())
	assert.NoError(t, e.Err())
}

func TestEditor_CommitRoundTrip(t *testing.T) {
	e := NewEditor(DefaultPredictParams())
	require.NoError(t, e.EnterRaw())
	assert.Equal(t, ModeRawText, e.Mode())
	assert.Contains(t, e.Raw(), `"prompts"`)

	require.NoError(t, e.SetRaw(`{"prompts":["edited"],"seed":5}`))
	require.NoError(t, e.Commit())
	assert.Equal(t, ModeStructured, e.Mode())

	got := e.Config().(*PredictParams)
	assert.Equal(t, []string{"edited"}, got.Prompts)
	assert.Equal(t, 5, got.Seed)
}

func TestEditor_CommitFailurePreservesRawText(t *testing.T) {
	e := NewEditor(DefaultPredictParams())
	require.NoError(t, e.EnterRaw())
	malformed := `{"prompts":["broken"`
	require.NoError(t, e.SetRaw(malformed))

	err := e.Commit()
	require.Error(t, err)
	// The malformed input stays on screen until corrected or reset.
	assert.Equal(t, ModeRawText, e.Mode())
	assert.Equal(t, malformed, e.Raw())
	assert.Error(t, e.Err())

	// Correcting the text clears the error on the next commit.
	require.NoError(t, e.SetRaw(`{"prompts":["fixed"]}`))
	require.NoError(t, e.Commit())
	assert.NoError(t, e.Err())
	assert.Equal(t, []string{"fixed"}, e.Config().(*PredictParams).Prompts)
}

func TestEditor_DiscardRestoresCommitted(t *testing.T) {
	orig := DefaultPredictParams()
	orig.Prompts = []string{"committed"}
	e := NewEditor(orig)

	require.NoError(t, e.EnterRaw())
	require.NoError(t, e.SetRaw(`{"prompts":["abandoned"]}`))
	e.Discard()

	assert.Equal(t, ModeStructured, e.Mode())
	assert.Equal(t, []string{"committed"}, e.Config().(*PredictParams).Prompts)
}

func TestEditor_ResetToDefaults(t *testing.T) {
	e := NewEditor(DefaultReasonParams())
	require.NoError(t, e.EnterRaw())
	require.NoError(t, e.SetRaw(`{"threshold":`))
	require.Error(t, e.Commit())

	e.Reset()
	assert.Equal(t, ModeStructured, e.Mode())
	assert.NoError(t, e.Err())
	assert.Equal(t, 0.7, e.Config().(*ReasonParams).Threshold)
}

func TestEditor_UpdateRejectedMidEdit(t *testing.T) {
	e := NewEditor(DefaultTransferParams())
	require.NoError(t, e.EnterRaw())
	require.Error(t, e.Update(DefaultTransferParams()))
	e.Discard()
	require.NoError(t, e.Update(DefaultTransferParams()))
}

func TestEditor_UpdateTypeMismatch(t *testing.T) {
	e := NewEditor(DefaultTransferParams())
	require.Error(t, e.Update(DefaultPredictParams()))
}

func TestEditor_SetRawRequiresRawMode(t *testing.T) {
	e := NewEditor(DefaultPredictParams())
	require.Error(t, e.SetRaw("{}"))
}

func TestEditor_ConfigIsIsolatedCopy(t *testing.T) {
	e := NewEditor(DefaultPredictParams())
	got := e.Config().(*PredictParams)
	got.Prompts[0] = "mutated"
	assert.NotEqual(t, "mutated", e.Config().(*PredictParams).Prompts[0])
}
