// Copyright 2025 The Tucker Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package data exposes knowledge graph dataset loading and 1-to-N
// target construction.
package data

import (
	"github.com/yyf710670079/tucker/internal/data"
)

// Triple is a single (subject, relation, object) fact.
type Triple = data.Triple

// Pair identifies a (subject, relation) query.
type Pair = data.Pair

// Dataset holds the train, valid, and test splits of a knowledge graph.
type Dataset = data.Dataset

// Load reads a dataset directory containing train.txt and optionally
// valid.txt and test.txt, one tab-separated triple per line.
func Load(dir string) (*Dataset, error) {
	return data.Load(dir)
}

// FromTriples builds a dataset from triples with numeric ids already
// assigned.
func FromTriples(train, valid, test []Triple) *Dataset {
	return data.FromTriples(train, valid, test)
}

// Pairs returns the unique (subject, relation) pairs of the triples in
// first-appearance order.
func Pairs(triples []Triple) []Pair {
	return data.Pairs(triples)
}

// GroupObjects maps each (subject, relation) pair to its observed
// objects across the given splits.
func GroupObjects(splits ...[]Triple) map[Pair][]int32 {
	return data.GroupObjects(splits...)
}

// OneToNTargets builds the flat multi-hot target matrix for 1-to-N
// training, with optional label smoothing.
func OneToNTargets(pairs []Pair, objects map[Pair][]int32, numEntities int, smoothing float32) []float32 {
	return data.OneToNTargets(pairs, objects, numEntities, smoothing)
}
