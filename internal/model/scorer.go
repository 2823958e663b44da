package model

import (
	"fmt"

	"github.com/yyf710670079/tucker/internal/nn"
	"github.com/yyf710670079/tucker/internal/tensor"
)

// scorer implements the shared forward pass for core tensor scorers.
// TuckER and RESCAL differ only in how relations select mixing rows
// from the core, which is delegated to the relationResolver.
type scorer[B tensor.Backend] struct {
	backend B

	numEntities  int
	numRelations int
	entityDim    int

	entities *nn.Embedding[B]
	core     *nn.Parameter[B]
	mask     *tensor.Tensor[float32, B]
	resolver relationResolver[B]
}

func newScorer[B tensor.Backend](
	numEntities, numRelations int,
	core *tensor.Tensor[float32, B],
	mask *tensor.Tensor[float32, B],
	entityInit nn.Initializer,
	resolver relationResolver[B],
	backend B,
) (*scorer[B], error) {
	if numEntities <= 0 {
		return nil, fmt.Errorf("numEntities must be positive, got %d", numEntities)
	}
	if numRelations <= 0 {
		return nil, fmt.Errorf("numRelations must be positive, got %d", numRelations)
	}

	coreShape := core.Shape()
	if len(coreShape) != 3 {
		return nil, fmt.Errorf("core tensor must be 3D, got shape %v", coreShape)
	}
	if coreShape[0] != coreShape[2] {
		return nil, fmt.Errorf("core head and tail modes must match, got shape %v", coreShape)
	}
	entityDim := coreShape[0]

	if mask == nil {
		mask = tensor.Ones[float32](coreShape, backend)
	} else if !mask.Shape().Equal(coreShape) {
		return nil, fmt.Errorf("mask shape %v does not match core shape %v", mask.Shape(), coreShape)
	}

	if entityInit == nil {
		entityInit = nn.Normal(1.0)
	}
	entities, err := nn.NewEmbeddingWithInit("entity_embeddings", numEntities, entityDim, entityInit, backend)
	if err != nil {
		return nil, err
	}

	return &scorer[B]{
		backend:      backend,
		numEntities:  numEntities,
		numRelations: numRelations,
		entityDim:    entityDim,
		entities:     entities,
		core:         nn.NewParameter("core", core),
		mask:         mask,
		resolver:     resolver,
	}, nil
}

// Forward scores each (head, relation) pair against all entities.
//
// The mask is applied to the core on every call, so masked core entries
// contribute nothing to the scores and receive zero gradient during
// backpropagation regardless of their stored values.
func (s *scorer[B]) Forward(heads, relations []int32) (*tensor.Tensor[float32, B], error) {
	if len(heads) != len(relations) {
		return nil, fmt.Errorf("batch length mismatch: %d heads vs %d relations", len(heads), len(relations))
	}
	if len(heads) == 0 {
		return nil, fmt.Errorf("empty batch")
	}
	for i, h := range heads {
		if h < 0 || int(h) >= s.numEntities {
			return nil, fmt.Errorf("head id %d at position %d out of range [0, %d)", h, i, s.numEntities)
		}
	}
	for i, r := range relations {
		if r < 0 || int(r) >= s.numRelations {
			return nil, fmt.Errorf("relation id %d at position %d out of range [0, %d)", r, i, s.numRelations)
		}
	}

	batch := len(heads)
	de := s.entityDim

	headsT, err := tensor.FromSlice[int32](heads, tensor.Shape{batch}, s.backend)
	if err != nil {
		return nil, err
	}
	relsT, err := tensor.FromSlice[int32](relations, tensor.Shape{batch}, s.backend)
	if err != nil {
		return nil, err
	}

	// [batch, de]
	eh := s.entities.Forward(headsT)

	// Freeze masked entries, then flatten the core so each row of the
	// relation mode is one [de * de] mixing matrix.
	masked := s.core.Tensor().Mul(s.mask)
	coreMid := masked.Shape()[1]
	flat := masked.Transpose(1, 0, 2).Reshape(coreMid, de*de)

	// [batch, de * de] -> [batch, de, de]
	wr := s.resolver.resolve(flat, relsT).Reshape(batch, de, de)

	// [batch, 1, de] @ [batch, de, de] -> [batch, de]
	x := eh.Reshape(batch, 1, de).BatchMatMul(wr).Reshape(batch, de)

	// [batch, de] @ [de, numEntities] -> [batch, numEntities]
	scores := x.MatMul(s.entities.Weight.Tensor().T())

	return scores.Sigmoid(), nil
}

// Parameters returns the trainable parameters: the entity table, the
// core tensor, and any relation parameters. The mask is not trainable.
func (s *scorer[B]) Parameters() []*nn.Parameter[B] {
	params := []*nn.Parameter[B]{s.entities.Weight, s.core}
	return append(params, s.resolver.parameters()...)
}

// NumEntities returns the number of entities.
func (s *scorer[B]) NumEntities() int {
	return s.numEntities
}

// NumRelations returns the number of relations.
func (s *scorer[B]) NumRelations() int {
	return s.numRelations
}

// EntityDim returns the entity embedding dimension.
func (s *scorer[B]) EntityDim() int {
	return s.entityDim
}

// EntityEmbeddings returns the entity embedding table.
func (s *scorer[B]) EntityEmbeddings() *nn.Embedding[B] {
	return s.entities
}

// Core returns the core tensor parameter.
func (s *scorer[B]) Core() *nn.Parameter[B] {
	return s.core
}

// Mask returns the gradient mask applied to the core.
func (s *scorer[B]) Mask() *tensor.Tensor[float32, B] {
	return s.mask
}
