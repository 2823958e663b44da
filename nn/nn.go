// Copyright 2025 The Tucker Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn exposes the neural network building blocks: trainable
// parameters, embedding tables, and weight initializers.
package nn

import (
	"github.com/yyf710670079/tucker/internal/nn"
	"github.com/yyf710670079/tucker/internal/tensor"
)

// Parameter wraps a trainable tensor with its gradient.
type Parameter[B tensor.Backend] = nn.Parameter[B]

// NewParameter creates a named parameter from a tensor.
func NewParameter[B tensor.Backend](name string, t *tensor.Tensor[float32, B]) *Parameter[B] {
	return nn.NewParameter(name, t)
}

// Embedding is a trainable id-to-vector lookup table.
type Embedding[B tensor.Backend] = nn.Embedding[B]

// NewEmbedding creates an embedding table initialized from N(0, 1).
func NewEmbedding[B tensor.Backend](name string, numEmbeddings, embeddingDim int, backend B) (*Embedding[B], error) {
	return nn.NewEmbedding(name, numEmbeddings, embeddingDim, backend)
}

// NewEmbeddingWithInit creates an embedding table with a custom
// initializer.
func NewEmbeddingWithInit[B tensor.Backend](name string, numEmbeddings, embeddingDim int, init Initializer, backend B) (*Embedding[B], error) {
	return nn.NewEmbeddingWithInit(name, numEmbeddings, embeddingDim, init, backend)
}

// Initializer fills a weight buffer in place.
type Initializer = nn.Initializer

// Normal returns an initializer drawing from N(0, std^2).
func Normal(std float64) Initializer {
	return nn.Normal(std)
}

// Uniform returns an initializer drawing from U[lo, hi).
func Uniform(lo, hi float64) Initializer {
	return nn.Uniform(lo, hi)
}

// Xavier returns the Glorot uniform initializer.
func Xavier(fanIn, fanOut int) Initializer {
	return nn.Xavier(fanIn, fanOut)
}
