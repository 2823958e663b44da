package cpu

import (
	"fmt"

	"github.com/yyf710670079/tucker/internal/tensor"
)

// Reshape returns a tensor with new shape and copied data.
// The element count must be unchanged.
func (c *CPUBackend) Reshape(t *tensor.RawTensor, newShape tensor.Shape) *tensor.RawTensor {
	if t.NumElements() != newShape.NumElements() {
		panic(fmt.Sprintf("cpu reshape: cannot reshape %v (%d elements) to %v (%d elements)",
			t.Shape(), t.NumElements(), newShape, newShape.NumElements()))
	}

	result, err := tensor.NewRaw(newShape, t.DType())
	if err != nil {
		panic(fmt.Sprintf("cpu reshape: %v", err))
	}
	copy(result.Data(), t.Data())
	return result
}

// Transpose permutes the tensor's axes and materializes the result in
// row-major order. With no axes it reverses all axes.
func (c *CPUBackend) Transpose(t *tensor.RawTensor, axes ...int) *tensor.RawTensor {
	ndim := len(t.Shape())

	if len(axes) == 0 {
		axes = make([]int, ndim)
		for i := range axes {
			axes[i] = ndim - 1 - i
		}
	}

	if len(axes) != ndim {
		panic(fmt.Sprintf("cpu transpose: got %d axes for %dD tensor", len(axes), ndim))
	}
	seen := make([]bool, ndim)
	for _, ax := range axes {
		if ax < 0 || ax >= ndim || seen[ax] {
			panic(fmt.Sprintf("cpu transpose: axes %v is not a permutation of [0, %d)", axes, ndim))
		}
		seen[ax] = true
	}

	oldShape := t.Shape()
	newShape := make(tensor.Shape, ndim)
	for i, ax := range axes {
		newShape[i] = oldShape[ax]
	}

	result, err := tensor.NewRaw(newShape, t.DType())
	if err != nil {
		panic(fmt.Sprintf("cpu transpose: %v", err))
	}

	oldStrides := oldShape.ComputeStrides()
	newStrides := newShape.ComputeStrides()
	n := t.NumElements()

	// For each output position, find the source offset by permuting coordinates.
	srcStrides := make([]int, ndim)
	for i, ax := range axes {
		srcStrides[i] = oldStrides[ax]
	}

	elemSize := t.DType().Size()
	src := t.Data()
	dst := result.Data()
	for i := 0; i < n; i++ {
		rem := i
		srcOff := 0
		for d := 0; d < ndim; d++ {
			coord := rem / newStrides[d]
			rem %= newStrides[d]
			srcOff += coord * srcStrides[d]
		}
		copy(dst[i*elemSize:(i+1)*elemSize], src[srcOff*elemSize:(srcOff+1)*elemSize])
	}
	return result
}
