package model

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yyf710670079/tucker/internal/backend/cpu"
	"github.com/yyf710670079/tucker/internal/tensor"
)

func TestSaveLoadRestoresScores(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.tuck")

	trained := newTuckER(t, 7, 3, 4, 5)
	want, err := trained.Forward([]int32{0, 4, 6}, []int32{2, 0, 1})
	require.NoError(t, err)

	require.NoError(t, Save[*cpu.CPUBackend](path, trained, map[string]string{"epochs": "10"}))

	fresh := newTuckER(t, 7, 3, 4, 5)
	require.NoError(t, Load[*cpu.CPUBackend](path, fresh))

	got, err := fresh.Forward([]int32{0, 4, 6}, []int32{2, 0, 1})
	require.NoError(t, err)
	assert.Equal(t, want.Data(), got.Data())
}

func TestLoadRejectsModelTypeMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.tuck")

	tucker := newTuckER(t, 4, 2, 3, 3)
	require.NoError(t, Save[*cpu.CPUBackend](path, tucker, nil))

	backend := cpu.New()
	core := tensor.Randn[float32](tensor.Shape{3, 2, 3}, backend)
	rescal, err := NewRESCAL(4, 2, core, RESCALConfig[*cpu.CPUBackend]{}, backend)
	require.NoError(t, err)

	err = Load[*cpu.CPUBackend](path, rescal)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `holds a "tucker" model`)
}

func TestLoadRejectsShapeMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.tuck")

	small := newTuckER(t, 4, 2, 3, 3)
	require.NoError(t, Save[*cpu.CPUBackend](path, small, nil))

	big := newTuckER(t, 4, 2, 5, 3)
	err := Load[*cpu.CPUBackend](path, big)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not match model shape")
}
