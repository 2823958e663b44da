package nn

import (
	"math"
	"math/rand"
)

// Initializer fills a weight buffer in place.
type Initializer func(data []float32)

// Normal returns an initializer drawing from N(0, std^2).
func Normal(std float64) Initializer {
	return func(data []float32) {
		for i := range data {
			data[i] = float32(rand.NormFloat64() * std)
		}
	}
}

// Uniform returns an initializer drawing from U[lo, hi).
func Uniform(lo, hi float64) Initializer {
	return func(data []float32) {
		for i := range data {
			data[i] = float32(lo + rand.Float64()*(hi-lo))
		}
	}
}

// Xavier returns the Glorot uniform initializer for the given fan-in
// and fan-out.
func Xavier(fanIn, fanOut int) Initializer {
	limit := math.Sqrt(6.0 / float64(fanIn+fanOut))
	return Uniform(-limit, limit)
}

// Zeros fills the buffer with zeros.
func Zeros() Initializer {
	return func(data []float32) {
		for i := range data {
			data[i] = 0
		}
	}
}
