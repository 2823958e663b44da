package ops

import (
	"fmt"

	"github.com/yyf710670079/tucker/internal/tensor"
)

// reduceBroadcast reduces a gradient tensor back to the target shape when
// broadcasting was used in the forward pass.
//
// Example:
//
//	Forward: a[3,1] * b[3,4] -> c[3,4]  (a was broadcast along dim 1)
//	Backward: grad_c[3,4] -> grad_a[3,1] (sum along dim 1)
func reduceBroadcast(grad *tensor.RawTensor, targetShape tensor.Shape, backend tensor.Backend) *tensor.RawTensor {
	gradShape := grad.Shape()

	if gradShape.Equal(targetShape) {
		return grad
	}

	if len(targetShape) == 0 {
		return sumAll(grad)
	}

	// Broadcasting aligns shapes from the right: sum away leading
	// dimensions the target does not have, then sum along dimensions
	// where the target is 1.
	if len(targetShape) < len(gradShape) {
		for i := len(gradShape) - len(targetShape); i > 0; i-- {
			grad = sumAlongDimension(grad, 0)
		}
		gradShape = grad.Shape()
	}

	for i := range targetShape {
		if targetShape[i] == 1 && gradShape[i] > 1 {
			grad = sumAlongDimension(grad, i)
			gradShape = grad.Shape()
		}
	}

	if !grad.Shape().Equal(targetShape) {
		grad = backend.Reshape(grad, targetShape)
	}
	return grad
}

// sumAll sums all elements of a tensor into a scalar tensor.
func sumAll(t *tensor.RawTensor) *tensor.RawTensor {
	result, err := tensor.NewRaw(tensor.Shape{}, t.DType())
	if err != nil {
		panic(fmt.Sprintf("sumAll: %v", err))
	}

	switch t.DType() {
	case tensor.Float32:
		var sum float32
		for _, v := range t.AsFloat32() {
			sum += v
		}
		result.AsFloat32()[0] = sum
	case tensor.Float64:
		var sum float64
		for _, v := range t.AsFloat64() {
			sum += v
		}
		result.AsFloat64()[0] = sum
	default:
		panic(fmt.Sprintf("sumAll: unsupported dtype %s", t.DType()))
	}
	return result
}

// sumAlongDimension sums a tensor along the given dimension, keeping it
// as size 1 in the result.
func sumAlongDimension(t *tensor.RawTensor, dim int) *tensor.RawTensor {
	shape := t.Shape()
	if dim < 0 || dim >= len(shape) {
		panic(fmt.Sprintf("sumAlongDimension: invalid dimension %d for shape %v", dim, shape))
	}

	outShape := shape.Clone()
	outShape[dim] = 1

	result, err := tensor.NewRaw(outShape, t.DType())
	if err != nil {
		panic(fmt.Sprintf("sumAlongDimension: %v", err))
	}

	// outer iterates over dimensions before dim, inner over dimensions after.
	outer, inner := 1, 1
	for i := 0; i < dim; i++ {
		outer *= shape[i]
	}
	for i := dim + 1; i < len(shape); i++ {
		inner *= shape[i]
	}
	n := shape[dim]

	switch t.DType() {
	case tensor.Float32:
		src, dst := t.AsFloat32(), result.AsFloat32()
		for o := 0; o < outer; o++ {
			for k := 0; k < n; k++ {
				base := (o*n + k) * inner
				out := o * inner
				for j := 0; j < inner; j++ {
					dst[out+j] += src[base+j]
				}
			}
		}
	case tensor.Float64:
		src, dst := t.AsFloat64(), result.AsFloat64()
		for o := 0; o < outer; o++ {
			for k := 0; k < n; k++ {
				base := (o*n + k) * inner
				out := o * inner
				for j := 0; j < inner; j++ {
					dst[out+j] += src[base+j]
				}
			}
		}
	default:
		panic(fmt.Sprintf("sumAlongDimension: unsupported dtype %s", t.DType()))
	}
	return result
}

// negateGradient returns -grad.
func negateGradient(grad *tensor.RawTensor, backend tensor.Backend) *tensor.RawTensor {
	zeros, err := tensor.NewRaw(grad.Shape(), grad.DType())
	if err != nil {
		panic(fmt.Sprintf("negateGradient: %v", err))
	}
	return backend.Sub(zeros, grad)
}
