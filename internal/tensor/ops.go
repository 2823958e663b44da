package tensor

import "fmt"

// Add performs element-wise addition with broadcasting.
func (t *Tensor[T, B]) Add(other *Tensor[T, B]) *Tensor[T, B] {
	raw := t.backend.Add(t.raw, other.raw)
	return New[T, B](raw, t.backend)
}

// Sub performs element-wise subtraction with broadcasting.
func (t *Tensor[T, B]) Sub(other *Tensor[T, B]) *Tensor[T, B] {
	raw := t.backend.Sub(t.raw, other.raw)
	return New[T, B](raw, t.backend)
}

// Mul performs element-wise multiplication with broadcasting.
func (t *Tensor[T, B]) Mul(other *Tensor[T, B]) *Tensor[T, B] {
	raw := t.backend.Mul(t.raw, other.raw)
	return New[T, B](raw, t.backend)
}

// MulScalar multiplies every element by a scalar.
func (t *Tensor[T, B]) MulScalar(scalar T) *Tensor[T, B] {
	raw := t.backend.MulScalar(t.raw, scalar)
	return New[T, B](raw, t.backend)
}

// AddScalar adds a scalar to every element.
func (t *Tensor[T, B]) AddScalar(scalar T) *Tensor[T, B] {
	raw := t.backend.AddScalar(t.raw, scalar)
	return New[T, B](raw, t.backend)
}

// MatMul performs 2D matrix multiplication: [M, K] @ [K, N] -> [M, N].
func (t *Tensor[T, B]) MatMul(other *Tensor[T, B]) *Tensor[T, B] {
	raw := t.backend.MatMul(t.raw, other.raw)
	return New[T, B](raw, t.backend)
}

// BatchMatMul performs batched matrix multiplication for 3D tensors:
// [B, M, K] @ [B, K, N] -> [B, M, N].
func (t *Tensor[T, B]) BatchMatMul(other *Tensor[T, B]) *Tensor[T, B] {
	raw := t.backend.BatchMatMul(t.raw, other.raw)
	return New[T, B](raw, t.backend)
}

// Reshape returns a tensor with the same data and a new shape.
// The number of elements must be unchanged.
func (t *Tensor[T, B]) Reshape(dims ...int) *Tensor[T, B] {
	raw := t.backend.Reshape(t.raw, Shape(dims))
	return New[T, B](raw, t.backend)
}

// Transpose permutes the tensor's axes. With no arguments it reverses
// all axes; otherwise axes must be a permutation of [0, ndim).
func (t *Tensor[T, B]) Transpose(axes ...int) *Tensor[T, B] {
	raw := t.backend.Transpose(t.raw, axes...)
	return New[T, B](raw, t.backend)
}

// T transposes a 2D tensor. Panics for other ranks.
func (t *Tensor[T, B]) T() *Tensor[T, B] {
	if len(t.Shape()) != 2 {
		panic(fmt.Sprintf("T() requires a 2D tensor, got shape %v", t.Shape()))
	}
	return t.Transpose(1, 0)
}

// Embedding looks up rows of t (the weight table) by integer indices.
// For weight [V, D] and indices [N] the result is [N, D].
func (t *Tensor[T, B]) Embedding(indices *Tensor[int32, B]) *Tensor[T, B] {
	raw := t.backend.Embedding(t.raw, indices.Raw())
	return New[T, B](raw, t.backend)
}

// Sigmoid applies the logistic function element-wise.
func (t *Tensor[T, B]) Sigmoid() *Tensor[T, B] {
	raw := t.backend.Sigmoid(t.raw)
	return New[T, B](raw, t.backend)
}
