// Package cpu provides a pure Go CPU backend for tensor operations.
package cpu

import (
	"fmt"

	"github.com/yyf710670079/tucker/internal/tensor"
)

// CPUBackend is a reference implementation of tensor.Backend in pure Go.
// No SIMD, no parallelism. Correctness first.
type CPUBackend struct{}

// New creates a new CPU backend.
func New() *CPUBackend {
	return &CPUBackend{}
}

// Name returns the backend name.
func (c *CPUBackend) Name() string {
	return "cpu"
}

// Add performs element-wise addition with broadcasting.
func (c *CPUBackend) Add(a, b *tensor.RawTensor) *tensor.RawTensor {
	return c.binaryOp(a, b, "add",
		func(x, y float32) float32 { return x + y },
		func(x, y float64) float64 { return x + y },
		func(x, y int32) int32 { return x + y })
}

// Sub performs element-wise subtraction with broadcasting.
func (c *CPUBackend) Sub(a, b *tensor.RawTensor) *tensor.RawTensor {
	return c.binaryOp(a, b, "sub",
		func(x, y float32) float32 { return x - y },
		func(x, y float64) float64 { return x - y },
		func(x, y int32) int32 { return x - y })
}

// Mul performs element-wise multiplication with broadcasting.
func (c *CPUBackend) Mul(a, b *tensor.RawTensor) *tensor.RawTensor {
	return c.binaryOp(a, b, "mul",
		func(x, y float32) float32 { return x * y },
		func(x, y float64) float64 { return x * y },
		func(x, y int32) int32 { return x * y })
}

func (c *CPUBackend) binaryOp(
	a, b *tensor.RawTensor,
	name string,
	f32 func(x, y float32) float32,
	f64 func(x, y float64) float64,
	i32 func(x, y int32) int32,
) *tensor.RawTensor {
	if a.DType() != b.DType() {
		panic(fmt.Sprintf("cpu %s: dtype mismatch: %s vs %s", name, a.DType(), b.DType()))
	}

	outShape, needsBroadcast, err := tensor.BroadcastShapes(a.Shape(), b.Shape())
	if err != nil {
		panic(fmt.Sprintf("cpu %s: %v", name, err))
	}

	result, err := tensor.NewRaw(outShape, a.DType())
	if err != nil {
		panic(fmt.Sprintf("cpu %s: %v", name, err))
	}

	if !needsBroadcast {
		// Fast path: identical shapes, flat loop.
		switch a.DType() {
		case tensor.Float32:
			ad, bd, rd := a.AsFloat32(), b.AsFloat32(), result.AsFloat32()
			for i := range rd {
				rd[i] = f32(ad[i], bd[i])
			}
		case tensor.Float64:
			ad, bd, rd := a.AsFloat64(), b.AsFloat64(), result.AsFloat64()
			for i := range rd {
				rd[i] = f64(ad[i], bd[i])
			}
		case tensor.Int32:
			ad, bd, rd := a.AsInt32(), b.AsInt32(), result.AsInt32()
			for i := range rd {
				rd[i] = i32(ad[i], bd[i])
			}
		}
		return result
	}

	aIdx := newBroadcastIndexer(a.Shape(), outShape)
	bIdx := newBroadcastIndexer(b.Shape(), outShape)
	n := outShape.NumElements()

	switch a.DType() {
	case tensor.Float32:
		ad, bd, rd := a.AsFloat32(), b.AsFloat32(), result.AsFloat32()
		for i := 0; i < n; i++ {
			rd[i] = f32(ad[aIdx.offset(i)], bd[bIdx.offset(i)])
		}
	case tensor.Float64:
		ad, bd, rd := a.AsFloat64(), b.AsFloat64(), result.AsFloat64()
		for i := 0; i < n; i++ {
			rd[i] = f64(ad[aIdx.offset(i)], bd[bIdx.offset(i)])
		}
	case tensor.Int32:
		ad, bd, rd := a.AsInt32(), b.AsInt32(), result.AsInt32()
		for i := 0; i < n; i++ {
			rd[i] = i32(ad[aIdx.offset(i)], bd[bIdx.offset(i)])
		}
	}
	return result
}

// broadcastIndexer maps a flat index in the output tensor to the
// corresponding flat index in a (possibly smaller) input tensor,
// treating broadcast dimensions as stride 0.
type broadcastIndexer struct {
	outStrides []int
	inStrides  []int
}

func newBroadcastIndexer(in, out tensor.Shape) *broadcastIndexer {
	outStrides := out.ComputeStrides()
	inStrides := make([]int, len(out))

	realStrides := in.ComputeStrides()
	offset := len(out) - len(in)
	for i := range out {
		if i < offset {
			inStrides[i] = 0
			continue
		}
		if in[i-offset] == 1 && out[i] != 1 {
			inStrides[i] = 0
		} else {
			inStrides[i] = realStrides[i-offset]
		}
	}

	return &broadcastIndexer{outStrides: outStrides, inStrides: inStrides}
}

func (bi *broadcastIndexer) offset(flatOut int) int {
	offset := 0
	rem := flatOut
	for i := range bi.outStrides {
		coord := rem / bi.outStrides[i]
		rem %= bi.outStrides[i]
		offset += coord * bi.inStrides[i]
	}
	return offset
}
