package ops

import "github.com/yyf710670079/tucker/internal/tensor"

// BatchMatMulOp represents batched matrix multiplication for 3D tensors:
// output[i] = a[i] @ b[i].
//
// Backward pass (per batch element):
//   - grad_a[i] = outputGrad[i] @ b[i]^T
//   - grad_b[i] = a[i]^T @ outputGrad[i]
type BatchMatMulOp struct {
	inputs []*tensor.RawTensor // [a, b]
	output *tensor.RawTensor
}

// NewBatchMatMulOp creates a new BatchMatMulOp.
func NewBatchMatMulOp(a, b, output *tensor.RawTensor) *BatchMatMulOp {
	return &BatchMatMulOp{
		inputs: []*tensor.RawTensor{a, b},
		output: output,
	}
}

// Backward computes input gradients for batched matrix multiplication.
func (op *BatchMatMulOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	a, b := op.inputs[0], op.inputs[1]

	// Transpose the matrix dimensions of each batch element.
	gradA := backend.BatchMatMul(outputGrad, backend.Transpose(b, 0, 2, 1))
	gradB := backend.BatchMatMul(backend.Transpose(a, 0, 2, 1), outputGrad)

	return []*tensor.RawTensor{gradA, gradB}
}

// Inputs returns the input tensors [a, b].
func (op *BatchMatMulOp) Inputs() []*tensor.RawTensor {
	return op.inputs
}

// Output returns the output tensor.
func (op *BatchMatMulOp) Output() *tensor.RawTensor {
	return op.output
}
