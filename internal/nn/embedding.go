package nn

import (
	"fmt"

	"github.com/yyf710670079/tucker/internal/tensor"
)

// Embedding is a trainable lookup table mapping integer ids to dense
// vectors. The weight has shape [numEmbeddings, embeddingDim].
type Embedding[B tensor.Backend] struct {
	Weight *Parameter[B]

	NumEmbeddings int
	EmbeddingDim  int
}

// NewEmbedding creates an embedding table initialized from N(0, 1).
func NewEmbedding[B tensor.Backend](name string, numEmbeddings, embeddingDim int, backend B) (*Embedding[B], error) {
	return NewEmbeddingWithInit(name, numEmbeddings, embeddingDim, Normal(1.0), backend)
}

// NewEmbeddingWithInit creates an embedding table with a custom
// initializer.
func NewEmbeddingWithInit[B tensor.Backend](name string, numEmbeddings, embeddingDim int, init Initializer, backend B) (*Embedding[B], error) {
	if numEmbeddings <= 0 {
		return nil, fmt.Errorf("embedding %q: numEmbeddings must be positive, got %d", name, numEmbeddings)
	}
	if embeddingDim <= 0 {
		return nil, fmt.Errorf("embedding %q: embeddingDim must be positive, got %d", name, embeddingDim)
	}

	weight := tensor.Zeros[float32](tensor.Shape{numEmbeddings, embeddingDim}, backend)
	init(weight.Data())

	return &Embedding[B]{
		Weight:        NewParameter(name, weight),
		NumEmbeddings: numEmbeddings,
		EmbeddingDim:  embeddingDim,
	}, nil
}

// Forward looks up the rows for the given indices.
// For indices [n] the result is [n, embeddingDim].
func (e *Embedding[B]) Forward(indices *tensor.Tensor[int32, B]) *tensor.Tensor[float32, B] {
	return e.Weight.Tensor().Embedding(indices)
}

// Parameters returns the trainable parameters.
func (e *Embedding[B]) Parameters() []*Parameter[B] {
	return []*Parameter[B]{e.Weight}
}
