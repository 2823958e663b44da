package cpu

import (
	"fmt"

	"github.com/yyf710670079/tucker/internal/tensor"
)

// MulScalar multiplies every element by a scalar.
func (c *CPUBackend) MulScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	return c.scalarOp(x, scalar, "mul_scalar",
		func(v, s float32) float32 { return v * s },
		func(v, s float64) float64 { return v * s },
		func(v, s int32) int32 { return v * s })
}

// AddScalar adds a scalar to every element.
func (c *CPUBackend) AddScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	return c.scalarOp(x, scalar, "add_scalar",
		func(v, s float32) float32 { return v + s },
		func(v, s float64) float64 { return v + s },
		func(v, s int32) int32 { return v + s })
}

func (c *CPUBackend) scalarOp(
	x *tensor.RawTensor,
	scalar any,
	name string,
	f32 func(v, s float32) float32,
	f64 func(v, s float64) float64,
	i32 func(v, s int32) int32,
) *tensor.RawTensor {
	result, err := tensor.NewRaw(x.Shape(), x.DType())
	if err != nil {
		panic(fmt.Sprintf("cpu %s: %v", name, err))
	}

	switch x.DType() {
	case tensor.Float32:
		s, ok := scalar.(float32)
		if !ok {
			panic(fmt.Sprintf("cpu %s: scalar type %T does not match tensor dtype float32", name, scalar))
		}
		xd, rd := x.AsFloat32(), result.AsFloat32()
		for i := range rd {
			rd[i] = f32(xd[i], s)
		}
	case tensor.Float64:
		s, ok := scalar.(float64)
		if !ok {
			panic(fmt.Sprintf("cpu %s: scalar type %T does not match tensor dtype float64", name, scalar))
		}
		xd, rd := x.AsFloat64(), result.AsFloat64()
		for i := range rd {
			rd[i] = f64(xd[i], s)
		}
	case tensor.Int32:
		s, ok := scalar.(int32)
		if !ok {
			panic(fmt.Sprintf("cpu %s: scalar type %T does not match tensor dtype int32", name, scalar))
		}
		xd, rd := x.AsInt32(), result.AsInt32()
		for i := range rd {
			rd[i] = i32(xd[i], s)
		}
	}
	return result
}
