package model

import (
	"fmt"

	"github.com/yyf710670079/tucker/internal/nn"
	"github.com/yyf710670079/tucker/internal/tensor"
)

// RESCAL scores triples with one dedicated core slice per relation
// (Nickel et al., 2011). The core has shape
// [entityDim, numRelations, entityDim] and there is no relation
// embedding table: a relation id directly selects its slice.
//
// RESCAL is the degenerate TuckER where the relation embedding is the
// identity, so the two models share one forward pass.
type RESCAL[B tensor.Backend] struct {
	*scorer[B]
}

// RESCALConfig holds optional settings for NewRESCAL.
type RESCALConfig[B tensor.Backend] struct {
	// Mask freezes core entries. Must match the core's shape.
	Mask *tensor.Tensor[float32, B]

	EntityInit nn.Initializer
}

// NewRESCAL creates a RESCAL scorer. The core tensor must have shape
// [entityDim, numRelations, entityDim].
func NewRESCAL[B tensor.Backend](
	numEntities, numRelations int,
	core *tensor.Tensor[float32, B],
	cfg RESCALConfig[B],
	backend B,
) (*RESCAL[B], error) {
	coreShape := core.Shape()
	if len(coreShape) == 3 && coreShape[1] != numRelations {
		return nil, fmt.Errorf("core relation mode %d does not match numRelations %d", coreShape[1], numRelations)
	}

	s, err := newScorer(numEntities, numRelations, core, cfg.Mask, cfg.EntityInit, sliceRelations[B]{}, backend)
	if err != nil {
		return nil, err
	}

	return &RESCAL[B]{scorer: s}, nil
}
