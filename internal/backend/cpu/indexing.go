package cpu

import (
	"fmt"

	"github.com/yyf710670079/tucker/internal/tensor"
)

// Embedding gathers rows of weight by integer indices.
// For weight [V, D] and indices [N] the result is [N, D].
func (c *CPUBackend) Embedding(weight, indices *tensor.RawTensor) *tensor.RawTensor {
	if len(weight.Shape()) != 2 {
		panic(fmt.Sprintf("cpu embedding: weight must be 2D, got %v", weight.Shape()))
	}
	if len(indices.Shape()) != 1 {
		panic(fmt.Sprintf("cpu embedding: indices must be 1D, got %v", indices.Shape()))
	}
	if indices.DType() != tensor.Int32 {
		panic(fmt.Sprintf("cpu embedding: indices must be int32, got %s", indices.DType()))
	}

	vocab, dim := weight.Shape()[0], weight.Shape()[1]
	idx := indices.AsInt32()
	n := len(idx)

	result, err := tensor.NewRaw(tensor.Shape{n, dim}, weight.DType())
	if err != nil {
		panic(fmt.Sprintf("cpu embedding: %v", err))
	}

	elemSize := weight.DType().Size()
	rowBytes := dim * elemSize
	src := weight.Data()
	dst := result.Data()
	for i, id := range idx {
		if id < 0 || int(id) >= vocab {
			panic(fmt.Sprintf("cpu embedding: index %d out of range [0, %d)", id, vocab))
		}
		copy(dst[i*rowBytes:(i+1)*rowBytes], src[int(id)*rowBytes:(int(id)+1)*rowBytes])
	}
	return result
}
