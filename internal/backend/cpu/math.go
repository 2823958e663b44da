package cpu

import (
	"fmt"
	"math"

	"github.com/yyf710670079/tucker/internal/tensor"
)

// Sigmoid applies the logistic function 1 / (1 + exp(-x)) element-wise.
func (c *CPUBackend) Sigmoid(x *tensor.RawTensor) *tensor.RawTensor {
	result, err := tensor.NewRaw(x.Shape(), x.DType())
	if err != nil {
		panic(fmt.Sprintf("cpu sigmoid: %v", err))
	}

	switch x.DType() {
	case tensor.Float32:
		xd, rd := x.AsFloat32(), result.AsFloat32()
		for i := range rd {
			rd[i] = float32(1.0 / (1.0 + math.Exp(-float64(xd[i]))))
		}
	case tensor.Float64:
		xd, rd := x.AsFloat64(), result.AsFloat64()
		for i := range rd {
			rd[i] = 1.0 / (1.0 + math.Exp(-xd[i]))
		}
	default:
		panic(fmt.Sprintf("cpu sigmoid: unsupported dtype %s", x.DType()))
	}
	return result
}
