package ops

import (
	"fmt"

	"github.com/yyf710670079/tucker/internal/tensor"
)

// EmbeddingOp represents a row lookup: output[i] = weight[indices[i]].
//
// Backward pass is a scatter-add: grad_output[i] accumulates into
// grad_weight[indices[i]]. Repeated indices sum their gradients.
type EmbeddingOp struct {
	weight  *tensor.RawTensor // [numEmbeddings, embeddingDim]
	indices *tensor.RawTensor // int32, [n]
	output  *tensor.RawTensor // [n, embeddingDim]
}

// NewEmbeddingOp creates a new embedding operation.
func NewEmbeddingOp(weight, indices, output *tensor.RawTensor) *EmbeddingOp {
	return &EmbeddingOp{
		weight:  weight,
		indices: indices,
		output:  output,
	}
}

// Inputs returns the weight tensor. Indices are integers and receive no
// gradient.
func (op *EmbeddingOp) Inputs() []*tensor.RawTensor {
	return []*tensor.RawTensor{op.weight}
}

// Output returns the gathered rows.
func (op *EmbeddingOp) Output() *tensor.RawTensor {
	return op.output
}

// Backward scatter-adds output gradients into the weight gradient.
func (op *EmbeddingOp) Backward(outputGrad *tensor.RawTensor, _ tensor.Backend) []*tensor.RawTensor {
	weightShape := op.weight.Shape()
	numEmbeddings := weightShape[0]
	embeddingDim := weightShape[1]

	gradWeight, err := tensor.NewRaw(weightShape, op.weight.DType())
	if err != nil {
		panic(fmt.Sprintf("embedding backward: %v", err))
	}

	indices := op.indices.AsInt32()
	gradOut := outputGrad.AsFloat32()
	gradW := gradWeight.AsFloat32()

	for i, id := range indices {
		if id < 0 || int(id) >= numEmbeddings {
			panic(fmt.Sprintf("embedding backward: index %d out of range [0, %d)", id, numEmbeddings))
		}
		src := gradOut[i*embeddingDim : (i+1)*embeddingDim]
		dst := gradW[int(id)*embeddingDim : (int(id)+1)*embeddingDim]
		for j := range src {
			dst[j] += src[j]
		}
	}

	return []*tensor.RawTensor{gradWeight}
}
