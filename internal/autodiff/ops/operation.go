// Package ops defines the differentiable operations recorded on the
// gradient tape during the forward pass.
//
// Each operation captures its input and output RawTensors and knows how
// to compute input gradients from the output gradient (reverse mode).
package ops

import "github.com/yyf710670079/tucker/internal/tensor"

// Operation represents a differentiable operation in the computation graph.
type Operation interface {
	// Backward computes gradients for inputs given the output gradient.
	// Returns one gradient per entry of Inputs(), in order.
	Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor

	// Inputs returns the input tensors that receive gradients.
	Inputs() []*tensor.RawTensor

	// Output returns the output tensor produced by this operation.
	Output() *tensor.RawTensor
}
