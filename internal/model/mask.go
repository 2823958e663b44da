package model

import "github.com/yyf710670079/tucker/internal/tensor"

// DistMultMask returns a [dim, dim, dim] mask with ones on the
// superdiagonal and zeros elsewhere. Applied to a core tensor it
// restricts the model to diagonal mixing matrices, recovering DistMult.
func DistMultMask[B tensor.Backend](dim int, backend B) *tensor.Tensor[float32, B] {
	mask := tensor.Zeros[float32](tensor.Shape{dim, dim, dim}, backend)
	for i := 0; i < dim; i++ {
		mask.Set(1, i, i, i)
	}
	return mask
}
