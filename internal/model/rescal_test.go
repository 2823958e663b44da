package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yyf710670079/tucker/internal/backend/cpu"
	"github.com/yyf710670079/tucker/internal/tensor"
)

func TestRESCALForwardShapeAndRange(t *testing.T) {
	backend := cpu.New()
	core := tensor.Randn[float32](tensor.Shape{4, 3, 4}, backend)

	m, err := NewRESCAL(8, 3, core, RESCALConfig[*cpu.CPUBackend]{}, backend)
	require.NoError(t, err)

	scores, err := m.Forward([]int32{1, 7, 3}, []int32{0, 2, 1})
	require.NoError(t, err)

	assert.True(t, scores.Shape().Equal(tensor.Shape{3, 8}))
	for _, v := range scores.Data() {
		assert.Greater(t, v, float32(0))
		assert.Less(t, v, float32(1))
	}
}

func TestNewRESCALCoreRelationModeMismatch(t *testing.T) {
	backend := cpu.New()
	core := tensor.Randn[float32](tensor.Shape{4, 5, 4}, backend)

	_, err := NewRESCAL(8, 3, core, RESCALConfig[*cpu.CPUBackend]{}, backend)
	assert.ErrorContains(t, err, "relation mode")
}

func TestRESCALParameters(t *testing.T) {
	backend := cpu.New()
	core := tensor.Randn[float32](tensor.Shape{2, 2, 2}, backend)

	m, err := NewRESCAL(4, 2, core, RESCALConfig[*cpu.CPUBackend]{}, backend)
	require.NoError(t, err)

	// No relation table: just the entity embeddings and the core.
	params := m.Parameters()
	require.Len(t, params, 2)
	assert.Equal(t, "entity_embeddings", params[0].Name())
	assert.Equal(t, "core", params[1].Name())
}

func TestRESCALMaskedSliceFrozen(t *testing.T) {
	backend := cpu.New()
	core := tensor.Randn[float32](tensor.Shape{3, 2, 3}, backend)

	// Freeze relation 1's slice entirely.
	mask := tensor.Ones[float32](tensor.Shape{3, 2, 3}, backend)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			mask.Set(0, i, 1, j)
		}
	}

	m, err := NewRESCAL(5, 2, core, RESCALConfig[*cpu.CPUBackend]{Mask: mask}, backend)
	require.NoError(t, err)

	before, err := m.Forward([]int32{0, 2}, []int32{1, 1})
	require.NoError(t, err)
	beforeData := append([]float32(nil), before.Data()...)

	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			m.Core().Tensor().Set(42, i, 1, j)
		}
	}

	after, err := m.Forward([]int32{0, 2}, []int32{1, 1})
	require.NoError(t, err)
	assert.Equal(t, beforeData, after.Data())

	// A frozen slice scores sigmoid(0) = 0.5 everywhere.
	for _, v := range after.Data() {
		assert.InDelta(t, 0.5, float64(v), 1e-6)
	}
}
