// Package data loads knowledge graph triple files and prepares
// training targets for 1-to-N scoring.
//
// The on-disk format follows the common benchmark layout (FB15k,
// WN18): a directory with train.txt, valid.txt, and test.txt, one
// tab-separated triple per line:
//
//	subject<TAB>relation<TAB>object
//
// Entity and relation ids are assigned in first-appearance order
// across the splits, so loading is deterministic.
package data

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Triple is a single (subject, relation, object) fact.
type Triple struct {
	Subject  int32
	Relation int32
	Object   int32
}

// Pair identifies a (subject, relation) query whose answers are the
// objects observed with it.
type Pair struct {
	Subject  int32
	Relation int32
}

// Dataset holds the triples of one knowledge graph split three ways.
type Dataset struct {
	Train []Triple
	Valid []Triple
	Test  []Triple

	// Entities and Relations map ids back to names. Empty for
	// datasets built directly from triples.
	Entities  []string
	Relations []string

	numEntities  int
	numRelations int
}

// Load reads a dataset directory. train.txt is required; valid.txt and
// test.txt are optional and default to empty splits.
func Load(dir string) (*Dataset, error) {
	d := &Dataset{}
	entityIDs := make(map[string]int32)
	relationIDs := make(map[string]int32)

	splits := []struct {
		file     string
		dest     *[]Triple
		required bool
	}{
		{"train.txt", &d.Train, true},
		{"valid.txt", &d.Valid, false},
		{"test.txt", &d.Test, false},
	}

	for _, split := range splits {
		path := filepath.Join(dir, split.file)
		triples, err := d.loadFile(path, entityIDs, relationIDs)
		if err != nil {
			if os.IsNotExist(err) && !split.required {
				continue
			}
			return nil, fmt.Errorf("load %s: %w", split.file, err)
		}
		*split.dest = triples
	}

	d.numEntities = len(d.Entities)
	d.numRelations = len(d.Relations)
	return d, nil
}

func (d *Dataset) loadFile(path string, entityIDs, relationIDs map[string]int32) ([]Triple, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var triples []Triple
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) != 3 {
			return nil, fmt.Errorf("line %d: expected 3 tab-separated fields, got %d", lineNo, len(fields))
		}

		triples = append(triples, Triple{
			Subject:  d.internEntity(fields[0], entityIDs),
			Relation: d.internRelation(fields[1], relationIDs),
			Object:   d.internEntity(fields[2], entityIDs),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return triples, nil
}

func (d *Dataset) internEntity(name string, ids map[string]int32) int32 {
	if id, ok := ids[name]; ok {
		return id
	}
	id := int32(len(d.Entities))
	ids[name] = id
	d.Entities = append(d.Entities, name)
	return id
}

func (d *Dataset) internRelation(name string, ids map[string]int32) int32 {
	if id, ok := ids[name]; ok {
		return id
	}
	id := int32(len(d.Relations))
	ids[name] = id
	d.Relations = append(d.Relations, name)
	return id
}

// FromTriples builds a dataset from triples with numeric ids already
// assigned. Entity and relation counts are derived from the largest
// ids seen across all splits.
func FromTriples(train, valid, test []Triple) *Dataset {
	d := &Dataset{Train: train, Valid: valid, Test: test}

	var maxEntity, maxRelation int32 = -1, -1
	for _, split := range [][]Triple{train, valid, test} {
		for _, t := range split {
			maxEntity = max(maxEntity, t.Subject, t.Object)
			maxRelation = max(maxRelation, t.Relation)
		}
	}

	d.numEntities = int(maxEntity) + 1
	d.numRelations = int(maxRelation) + 1
	return d
}

// NumEntities returns the number of distinct entities.
func (d *Dataset) NumEntities() int {
	return d.numEntities
}

// NumRelations returns the number of distinct relations.
func (d *Dataset) NumRelations() int {
	return d.numRelations
}

// Pairs returns the unique (subject, relation) pairs of the given
// triples in first-appearance order.
func Pairs(triples []Triple) []Pair {
	seen := make(map[Pair]bool, len(triples))
	var pairs []Pair
	for _, t := range triples {
		p := Pair{Subject: t.Subject, Relation: t.Relation}
		if !seen[p] {
			seen[p] = true
			pairs = append(pairs, p)
		}
	}
	return pairs
}

// GroupObjects maps each (subject, relation) pair to the objects
// observed with it, across all given splits.
func GroupObjects(splits ...[]Triple) map[Pair][]int32 {
	objects := make(map[Pair][]int32)
	for _, split := range splits {
		for _, t := range split {
			p := Pair{Subject: t.Subject, Relation: t.Relation}
			objects[p] = append(objects[p], t.Object)
		}
	}
	return objects
}

// OneToNTargets builds the flat [len(pairs) * numEntities] target
// matrix for 1-to-N training: 1 for every observed object of a pair,
// 0 elsewhere, with optional label smoothing
//
//	y' = (1 - rate) * y + rate / numEntities
func OneToNTargets(pairs []Pair, objects map[Pair][]int32, numEntities int, smoothing float32) []float32 {
	targets := make([]float32, len(pairs)*numEntities)

	background := smoothing / float32(numEntities)
	positive := (1 - smoothing) + background

	if background != 0 {
		for i := range targets {
			targets[i] = background
		}
	}
	for i, p := range pairs {
		row := targets[i*numEntities : (i+1)*numEntities]
		for _, obj := range objects[p] {
			row[obj] = positive
		}
	}
	return targets
}
