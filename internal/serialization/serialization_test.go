package serialization

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yyf710670079/tucker/internal/tensor"
)

func rawFromFloat32(t *testing.T, values []float32, shape tensor.Shape) *tensor.RawTensor {
	t.Helper()
	raw, err := tensor.NewRaw(shape, tensor.Float32)
	require.NoError(t, err)
	copy(raw.AsFloat32(), values)
	return raw
}

func TestWriteReadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.tuck")

	state := StateDict{
		"entity_embeddings": rawFromFloat32(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{3, 2}),
		"core":              rawFromFloat32(t, []float32{-1, 0.5, 0, 7, -2, 3, 1, 1}, tensor.Shape{2, 2, 2}),
	}
	meta := map[string]string{"entity_dim": "2"}

	require.NoError(t, WriteStateDict(path, "tucker", state, meta))

	hdr, loaded, err := ReadStateDict(path)
	require.NoError(t, err)
	assert.Equal(t, FormatVersion, hdr.FormatVersion)
	assert.Equal(t, "tucker", hdr.ModelType)
	assert.Equal(t, meta, hdr.Metadata)
	require.Len(t, loaded, 2)

	for name, want := range state {
		got, ok := loaded[name]
		require.True(t, ok, "missing tensor %s", name)
		assert.True(t, want.Shape().Equal(got.Shape()))
		assert.Equal(t, want.AsFloat32(), got.AsFloat32())
	}
}

func TestWriteIsDeterministic(t *testing.T) {
	dir := t.TempDir()
	state := StateDict{
		"b": rawFromFloat32(t, []float32{1, 2}, tensor.Shape{2}),
		"a": rawFromFloat32(t, []float32{3, 4}, tensor.Shape{2}),
	}

	pathA := filepath.Join(dir, "a.tuck")
	pathB := filepath.Join(dir, "b.tuck")
	require.NoError(t, WriteStateDict(pathA, "tucker", state, nil))
	require.NoError(t, WriteStateDict(pathB, "tucker", state, nil))

	hdrA, _, err := ReadStateDict(pathA)
	require.NoError(t, err)
	hdrB, _, err := ReadStateDict(pathB)
	require.NoError(t, err)
	require.Len(t, hdrA.Tensors, 2)
	assert.Equal(t, "a", hdrA.Tensors[0].Name)
	assert.Equal(t, hdrA.Tensors, hdrB.Tensors)
}

func TestReadRejectsBadMagic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bogus.tuck")
	require.NoError(t, os.WriteFile(path, []byte("NOPEnope more bytes here"), 0o644))

	_, _, err := ReadStateDict(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad magic")
}

func TestReadRejectsMissingFile(t *testing.T) {
	_, _, err := ReadStateDict(filepath.Join(t.TempDir(), "absent.tuck"))
	require.Error(t, err)
}
