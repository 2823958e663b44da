package ops

import (
	"fmt"
	"math"

	"github.com/yyf710670079/tucker/internal/tensor"
)

// bceEps clamps predictions away from 0 and 1 so the logs stay finite.
const bceEps = 1e-7

// BCEOp represents binary cross-entropy over probabilities:
//
//	loss = -mean(y*log(p) + (1-y)*log(1-p))
//
// Predictions are expected to already be in (0, 1), typically the output
// of a sigmoid. Targets receive no gradient.
//
// Backward pass: grad_p[i] = (p[i] - y[i]) / (p[i] * (1 - p[i])) / n.
type BCEOp struct {
	predictions *tensor.RawTensor
	targets     *tensor.RawTensor
	output      *tensor.RawTensor // scalar-like [1]
}

// NewBCEOp creates a new BCEOp.
func NewBCEOp(predictions, targets, output *tensor.RawTensor) *BCEOp {
	return &BCEOp{
		predictions: predictions,
		targets:     targets,
		output:      output,
	}
}

// ComputeBCE computes the forward loss value as a [1] tensor.
func ComputeBCE(predictions, targets *tensor.RawTensor) *tensor.RawTensor {
	if !predictions.Shape().Equal(targets.Shape()) {
		panic(fmt.Sprintf("bce: shape mismatch: %v vs %v", predictions.Shape(), targets.Shape()))
	}

	result, err := tensor.NewRaw(tensor.Shape{1}, tensor.Float32)
	if err != nil {
		panic(fmt.Sprintf("bce: %v", err))
	}

	p := predictions.AsFloat32()
	y := targets.AsFloat32()

	var sum float64
	for i := range p {
		pi := clampProb(float64(p[i]))
		sum += float64(y[i])*math.Log(pi) + (1-float64(y[i]))*math.Log(1-pi)
	}
	result.AsFloat32()[0] = float32(-sum / float64(len(p)))
	return result
}

// Backward computes the gradient with respect to the predictions.
func (op *BCEOp) Backward(outputGrad *tensor.RawTensor, _ tensor.Backend) []*tensor.RawTensor {
	gradPred, err := tensor.NewRaw(op.predictions.Shape(), tensor.Float32)
	if err != nil {
		panic(fmt.Sprintf("bce backward: %v", err))
	}

	p := op.predictions.AsFloat32()
	y := op.targets.AsFloat32()
	grad := gradPred.AsFloat32()
	scale := float64(outputGrad.AsFloat32()[0]) / float64(len(p))

	for i := range p {
		pi := clampProb(float64(p[i]))
		grad[i] = float32((pi - float64(y[i])) / (pi * (1 - pi)) * scale)
	}

	return []*tensor.RawTensor{gradPred}
}

func clampProb(p float64) float64 {
	if p < bceEps {
		return bceEps
	}
	if p > 1-bceEps {
		return 1 - bceEps
	}
	return p
}

// Inputs returns the predictions tensor. Targets receive no gradient.
func (op *BCEOp) Inputs() []*tensor.RawTensor {
	return []*tensor.RawTensor{op.predictions}
}

// Output returns the loss tensor.
func (op *BCEOp) Output() *tensor.RawTensor {
	return op.output
}
