package model

import (
	"github.com/yyf710670079/tucker/internal/nn"
	"github.com/yyf710670079/tucker/internal/tensor"
)

// relationResolver produces the per-relation mixing rows from the
// flattened core tensor.
//
// The flattened core has shape [coreMid, entityDim * entityDim] where
// coreMid is the size of the core's relation mode. The result has shape
// [batch, entityDim * entityDim].
type relationResolver[B tensor.Backend] interface {
	resolve(flatCore *tensor.Tensor[float32, B], relations *tensor.Tensor[int32, B]) *tensor.Tensor[float32, B]
	parameters() []*nn.Parameter[B]
}

// denseRelations combines all core slices through a learned relation
// embedding: rows = e_r @ flatCore. Every relation mixes every slice.
type denseRelations[B tensor.Backend] struct {
	table *nn.Embedding[B]
}

func (d *denseRelations[B]) resolve(flatCore *tensor.Tensor[float32, B], relations *tensor.Tensor[int32, B]) *tensor.Tensor[float32, B] {
	return d.table.Forward(relations).MatMul(flatCore)
}

func (d *denseRelations[B]) parameters() []*nn.Parameter[B] {
	return d.table.Parameters()
}

// sliceRelations selects one core slice per relation id. The relation
// mode of the core must equal the number of relations, and there is no
// relation embedding table.
type sliceRelations[B tensor.Backend] struct{}

func (sliceRelations[B]) resolve(flatCore *tensor.Tensor[float32, B], relations *tensor.Tensor[int32, B]) *tensor.Tensor[float32, B] {
	return flatCore.Embedding(relations)
}

func (sliceRelations[B]) parameters() []*nn.Parameter[B] {
	return nil
}
