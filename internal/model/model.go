// Package model implements knowledge graph link prediction scorers
// based on tensor factorization.
//
// A scorer holds an entity embedding table, a relation representation,
// and an order-3 core tensor. Scoring a batch of (head, relation) pairs
// produces a probability for every entity in the graph as the tail:
//
//	score(h, r, :) = sigmoid(e_h @ (W x_r) @ E^T)
//
// where W x_r is the relation-specific mixing matrix obtained from the
// core tensor and E is the full entity table.
package model

import (
	"github.com/yyf710670079/tucker/internal/nn"
	"github.com/yyf710670079/tucker/internal/tensor"
)

// Model is the interface shared by all link prediction scorers.
type Model[B tensor.Backend] interface {
	// Forward scores each (head, relation) pair in the batch against
	// every entity. The result has shape [batch, numEntities] with
	// entries in (0, 1).
	Forward(heads, relations []int32) (*tensor.Tensor[float32, B], error)

	// Parameters returns the trainable parameters.
	Parameters() []*nn.Parameter[B]
}
