package jsonfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AuroraMediaLabs/pipedash/profile"
	"github.com/AuroraMediaLabs/pipedash/stage"
)

func TestLoad_MissingFileIsEmpty(t *testing.T) {
	r := NewRepository(filepath.Join(t.TempDir(), "profiles.json"))
	got, err := r.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	r := NewRepository(filepath.Join(t.TempDir(), "nested", "profiles.json"))
	ctx := context.Background()

	in := []profile.Profile{{
		ID:   "p1",
		Name: "weather sweep",
		Stages: []profile.StageTemplate{
			{Type: stage.TypePredict, Order: 1, Config: stage.DefaultPredictParams()},
			{Type: stage.TypeTransfer, Order: 2, Config: stage.DefaultTransferParams()},
		},
	}}
	require.NoError(t, r.Save(ctx, in))

	got, err := r.Load(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "weather sweep", got[0].Name)
	require.Len(t, got[0].Stages, 2)
	assert.IsType(t, &stage.PredictParams{}, got[0].Stages[0].Config)
	assert.IsType(t, &stage.TransferParams{}, got[0].Stages[1].Config)
}

func TestSave_ReplacesWholeList(t *testing.T) {
	r := NewRepository(filepath.Join(t.TempDir(), "profiles.json"))
	ctx := context.Background()

	require.NoError(t, r.Save(ctx, []profile.Profile{{ID: "a", Name: "a"}, {ID: "b", Name: "b"}}))
	require.NoError(t, r.Save(ctx, []profile.Profile{{ID: "c", Name: "c"}}))

	got, err := r.Load(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "c", got[0].ID)
}

func TestLoad_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles.json")
	r := NewRepository(path)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))
	_, err := r.Load(context.Background())
	require.Error(t, err)
}
