package cpu

import (
	"fmt"

	"github.com/yyf710670079/tucker/internal/tensor"
)

// BatchMatMul performs batched matrix multiplication for 3D tensors:
// [B, M, K] @ [B, K, N] -> [B, M, N].
func (c *CPUBackend) BatchMatMul(a, b *tensor.RawTensor) *tensor.RawTensor {
	if len(a.Shape()) != 3 || len(b.Shape()) != 3 {
		panic(fmt.Sprintf("cpu batch_matmul: requires 3D tensors, got %v and %v", a.Shape(), b.Shape()))
	}
	if a.DType() != b.DType() {
		panic(fmt.Sprintf("cpu batch_matmul: dtype mismatch: %s vs %s", a.DType(), b.DType()))
	}

	batch, m, k := a.Shape()[0], a.Shape()[1], a.Shape()[2]
	batch2, k2, n := b.Shape()[0], b.Shape()[1], b.Shape()[2]
	if batch != batch2 {
		panic(fmt.Sprintf("cpu batch_matmul: batch sizes do not match: %d vs %d", batch, batch2))
	}
	if k != k2 {
		panic(fmt.Sprintf("cpu batch_matmul: inner dimensions do not match: [%d, %d, %d] @ [%d, %d, %d]",
			batch, m, k, batch2, k2, n))
	}

	result, err := tensor.NewRaw(tensor.Shape{batch, m, n}, a.DType())
	if err != nil {
		panic(fmt.Sprintf("cpu batch_matmul: %v", err))
	}

	switch a.DType() {
	case tensor.Float32:
		ad, bd, rd := a.AsFloat32(), b.AsFloat32(), result.AsFloat32()
		for i := 0; i < batch; i++ {
			matmulFloat32(
				ad[i*m*k:(i+1)*m*k],
				bd[i*k*n:(i+1)*k*n],
				rd[i*m*n:(i+1)*m*n],
				m, k, n)
		}
	case tensor.Float64:
		ad, bd, rd := a.AsFloat64(), b.AsFloat64(), result.AsFloat64()
		for i := 0; i < batch; i++ {
			matmulFloat64(
				ad[i*m*k:(i+1)*m*k],
				bd[i*k*n:(i+1)*k*n],
				rd[i*m*n:(i+1)*m*n],
				m, k, n)
		}
	default:
		panic(fmt.Sprintf("cpu batch_matmul: unsupported dtype %s", a.DType()))
	}
	return result
}
