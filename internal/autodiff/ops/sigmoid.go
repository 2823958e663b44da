package ops

import "github.com/yyf710670079/tucker/internal/tensor"

// SigmoidOp represents the logistic activation: output = 1 / (1 + exp(-x)).
//
// Backward pass uses the saved output: d(sigmoid)/dx = s * (1 - s).
type SigmoidOp struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor
}

// NewSigmoidOp creates a new SigmoidOp.
func NewSigmoidOp(input, output *tensor.RawTensor) *SigmoidOp {
	return &SigmoidOp{input: input, output: output}
}

// Backward computes grad_x = outputGrad * s * (1 - s).
func (op *SigmoidOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	s := op.output

	var negOne, one any
	if s.DType() == tensor.Float64 {
		negOne, one = float64(-1), float64(1)
	} else {
		negOne, one = float32(-1), float32(1)
	}

	oneMinusS := backend.AddScalar(backend.MulScalar(s, negOne), one)
	grad := backend.Mul(outputGrad, backend.Mul(s, oneMinusS))
	return []*tensor.RawTensor{grad}
}

// Inputs returns the input tensor.
func (op *SigmoidOp) Inputs() []*tensor.RawTensor {
	return []*tensor.RawTensor{op.input}
}

// Output returns the activation output.
func (op *SigmoidOp) Output() *tensor.RawTensor {
	return op.output
}
