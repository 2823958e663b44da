package model

import (
	"fmt"

	"github.com/yyf710670079/tucker/internal/nn"
	"github.com/yyf710670079/tucker/internal/tensor"
)

// TuckER scores triples with a shared core tensor and dense relation
// embeddings (Balazevic et al., 2019). The core has shape
// [entityDim, relationDim, entityDim]; each relation's mixing matrix is
// a learned combination of all relationDim core slices.
type TuckER[B tensor.Backend] struct {
	*scorer[B]

	relationDim int
	relations   *nn.Embedding[B]
}

// TuckERConfig holds optional settings for NewTuckER.
// Zero values select the defaults: an all-ones mask and N(0, 1)
// initialization for both embedding tables.
type TuckERConfig[B tensor.Backend] struct {
	// Mask freezes core entries. Must match the core's shape.
	// Entries equal to zero contribute nothing to scores and receive
	// zero gradient.
	Mask *tensor.Tensor[float32, B]

	EntityInit   nn.Initializer
	RelationInit nn.Initializer
}

// NewTuckER creates a TuckER scorer. The core tensor must have shape
// [entityDim, relationDim, entityDim].
func NewTuckER[B tensor.Backend](
	numEntities, numRelations int,
	core *tensor.Tensor[float32, B],
	cfg TuckERConfig[B],
	backend B,
) (*TuckER[B], error) {
	relationInit := cfg.RelationInit
	if relationInit == nil {
		relationInit = nn.Normal(1.0)
	}

	coreShape := core.Shape()
	if len(coreShape) != 3 {
		return nil, fmt.Errorf("core tensor must be 3D, got shape %v", coreShape)
	}
	relationDim := coreShape[1]

	relations, err := nn.NewEmbeddingWithInit("relation_embeddings", numRelations, relationDim, relationInit, backend)
	if err != nil {
		return nil, err
	}

	resolver := &denseRelations[B]{table: relations}
	s, err := newScorer(numEntities, numRelations, core, cfg.Mask, cfg.EntityInit, resolver, backend)
	if err != nil {
		return nil, err
	}

	return &TuckER[B]{
		scorer:      s,
		relationDim: relationDim,
		relations:   relations,
	}, nil
}

// RelationDim returns the relation embedding dimension.
func (m *TuckER[B]) RelationDim() int {
	return m.relationDim
}

// RelationEmbeddings returns the relation embedding table.
func (m *TuckER[B]) RelationEmbeddings() *nn.Embedding[B] {
	return m.relations
}
