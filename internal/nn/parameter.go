// Package nn provides neural network building blocks: parameters,
// embedding tables, and weight initializers.
package nn

import "github.com/yyf710670079/tucker/internal/tensor"

// Parameter wraps a trainable tensor with its accumulated gradient.
type Parameter[B tensor.Backend] struct {
	name   string
	tensor *tensor.Tensor[float32, B]
	grad   *tensor.RawTensor
}

// NewParameter creates a named parameter from a tensor.
func NewParameter[B tensor.Backend](name string, t *tensor.Tensor[float32, B]) *Parameter[B] {
	return &Parameter[B]{
		name:   name,
		tensor: t,
	}
}

// Name returns the parameter name.
func (p *Parameter[B]) Name() string {
	return p.name
}

// Tensor returns the parameter's value tensor.
func (p *Parameter[B]) Tensor() *tensor.Tensor[float32, B] {
	return p.tensor
}

// Grad returns the current gradient, or nil if none has been set.
func (p *Parameter[B]) Grad() *tensor.RawTensor {
	return p.grad
}

// SetGrad stores a gradient for this parameter.
func (p *Parameter[B]) SetGrad(grad *tensor.RawTensor) {
	p.grad = grad
}

// ZeroGrad clears the stored gradient.
func (p *Parameter[B]) ZeroGrad() {
	p.grad = nil
}
