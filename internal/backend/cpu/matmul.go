package cpu

import (
	"fmt"

	"github.com/yyf710670079/tucker/internal/tensor"
)

// MatMul performs 2D matrix multiplication: [M, K] @ [K, N] -> [M, N].
func (c *CPUBackend) MatMul(a, b *tensor.RawTensor) *tensor.RawTensor {
	if len(a.Shape()) != 2 || len(b.Shape()) != 2 {
		panic(fmt.Sprintf("cpu matmul: requires 2D tensors, got %v and %v", a.Shape(), b.Shape()))
	}
	if a.DType() != b.DType() {
		panic(fmt.Sprintf("cpu matmul: dtype mismatch: %s vs %s", a.DType(), b.DType()))
	}

	m, k := a.Shape()[0], a.Shape()[1]
	k2, n := b.Shape()[0], b.Shape()[1]
	if k != k2 {
		panic(fmt.Sprintf("cpu matmul: inner dimensions do not match: [%d, %d] @ [%d, %d]", m, k, k2, n))
	}

	result, err := tensor.NewRaw(tensor.Shape{m, n}, a.DType())
	if err != nil {
		panic(fmt.Sprintf("cpu matmul: %v", err))
	}

	switch a.DType() {
	case tensor.Float32:
		matmulFloat32(a.AsFloat32(), b.AsFloat32(), result.AsFloat32(), m, k, n)
	case tensor.Float64:
		matmulFloat64(a.AsFloat64(), b.AsFloat64(), result.AsFloat64(), m, k, n)
	default:
		panic(fmt.Sprintf("cpu matmul: unsupported dtype %s", a.DType()))
	}
	return result
}

// matmulFloat32 uses the ikj loop order for cache-friendly access to b.
func matmulFloat32(a, b, out []float32, m, k, n int) {
	for i := 0; i < m; i++ {
		for p := 0; p < k; p++ {
			av := a[i*k+p]
			if av == 0 {
				continue
			}
			bRow := b[p*n : (p+1)*n]
			outRow := out[i*n : (i+1)*n]
			for j := 0; j < n; j++ {
				outRow[j] += av * bRow[j]
			}
		}
	}
}

func matmulFloat64(a, b, out []float64, m, k, n int) {
	for i := 0; i < m; i++ {
		for p := 0; p < k; p++ {
			av := a[i*k+p]
			if av == 0 {
				continue
			}
			bRow := b[p*n : (p+1)*n]
			outRow := out[i*n : (i+1)*n]
			for j := 0; j < n; j++ {
				outRow[j] += av * bRow[j]
			}
		}
	}
}
