// Copyright 2025 The Tucker Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package model exposes the knowledge graph link prediction scorers.
//
// Example:
//
//	backend := cpu.New()
//	core := tensor.Randn[float32](tensor.Shape{50, 30, 50}, backend)
//	m, err := model.NewTuckER(numEntities, numRelations, core,
//	    model.TuckERConfig[*cpu.Backend]{}, backend)
//	scores, err := m.Forward(heads, relations)
package model

import (
	"github.com/yyf710670079/tucker/internal/model"
	"github.com/yyf710670079/tucker/internal/tensor"
)

// Model is the interface shared by all link prediction scorers.
type Model[B tensor.Backend] = model.Model[B]

// TuckER scores triples with a shared core tensor and dense relation
// embeddings.
type TuckER[B tensor.Backend] = model.TuckER[B]

// TuckERConfig holds optional settings for NewTuckER.
type TuckERConfig[B tensor.Backend] = model.TuckERConfig[B]

// NewTuckER creates a TuckER scorer. The core tensor must have shape
// [entityDim, relationDim, entityDim].
func NewTuckER[B tensor.Backend](
	numEntities, numRelations int,
	core *tensor.Tensor[float32, B],
	cfg TuckERConfig[B],
	backend B,
) (*TuckER[B], error) {
	return model.NewTuckER(numEntities, numRelations, core, cfg, backend)
}

// RESCAL scores triples with one dedicated core slice per relation.
type RESCAL[B tensor.Backend] = model.RESCAL[B]

// RESCALConfig holds optional settings for NewRESCAL.
type RESCALConfig[B tensor.Backend] = model.RESCALConfig[B]

// NewRESCAL creates a RESCAL scorer. The core tensor must have shape
// [entityDim, numRelations, entityDim].
func NewRESCAL[B tensor.Backend](
	numEntities, numRelations int,
	core *tensor.Tensor[float32, B],
	cfg RESCALConfig[B],
	backend B,
) (*RESCAL[B], error) {
	return model.NewRESCAL(numEntities, numRelations, core, cfg, backend)
}

// DistMultMask returns a [dim, dim, dim] mask with ones on the
// superdiagonal, restricting a core tensor to DistMult form.
func DistMultMask[B tensor.Backend](dim int, backend B) *tensor.Tensor[float32, B] {
	return model.DistMultMask(dim, backend)
}

// Save writes a model's parameters to a .tuck checkpoint file.
func Save[B tensor.Backend](path string, m Model[B], metadata map[string]string) error {
	return model.Save(path, m, metadata)
}

// Load reads parameters from a .tuck checkpoint into a model built with
// the same architecture.
func Load[B tensor.Backend](path string, m Model[B]) error {
	return model.Load(path, m)
}
