package data

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSplit(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeSplit(t, dir, "train.txt",
		"alice\tknows\tbob\n"+
			"bob\tknows\tcarol\n"+
			"alice\tlikes\tcarol\n")
	writeSplit(t, dir, "valid.txt", "carol\tknows\talice\n")
	writeSplit(t, dir, "test.txt", "bob\tlikes\talice\n")

	d, err := Load(dir)
	require.NoError(t, err)

	assert.Len(t, d.Train, 3)
	assert.Len(t, d.Valid, 1)
	assert.Len(t, d.Test, 1)
	assert.Equal(t, 3, d.NumEntities())
	assert.Equal(t, 2, d.NumRelations())

	// Ids follow first appearance: alice=0, bob=1, carol=2.
	assert.Equal(t, []string{"alice", "bob", "carol"}, d.Entities)
	assert.Equal(t, []string{"knows", "likes"}, d.Relations)
	assert.Equal(t, Triple{Subject: 0, Relation: 0, Object: 1}, d.Train[0])
	assert.Equal(t, Triple{Subject: 2, Relation: 0, Object: 0}, d.Valid[0])
}

func TestLoadMissingOptionalSplits(t *testing.T) {
	dir := t.TempDir()
	writeSplit(t, dir, "train.txt", "a\tr\tb\n")

	d, err := Load(dir)
	require.NoError(t, err)
	assert.Len(t, d.Train, 1)
	assert.Empty(t, d.Valid)
	assert.Empty(t, d.Test)
}

func TestLoadMissingTrain(t *testing.T) {
	_, err := Load(t.TempDir())
	assert.ErrorContains(t, err, "train.txt")
}

func TestLoadMalformedLine(t *testing.T) {
	dir := t.TempDir()
	writeSplit(t, dir, "train.txt", "a\tr\tb\nbroken line\n")

	_, err := Load(dir)
	assert.ErrorContains(t, err, "line 2")
}

func TestLoadSkipsBlankLines(t *testing.T) {
	dir := t.TempDir()
	writeSplit(t, dir, "train.txt", "a\tr\tb\n\n\nc\tr\td\n")

	d, err := Load(dir)
	require.NoError(t, err)
	assert.Len(t, d.Train, 2)
}

func TestFromTriples(t *testing.T) {
	d := FromTriples(
		[]Triple{{0, 0, 1}, {1, 1, 2}},
		nil,
		[]Triple{{2, 0, 4}},
	)

	assert.Equal(t, 5, d.NumEntities())
	assert.Equal(t, 2, d.NumRelations())
}

func TestPairsUniqueOrdered(t *testing.T) {
	triples := []Triple{
		{Subject: 1, Relation: 0, Object: 2},
		{Subject: 0, Relation: 1, Object: 3},
		{Subject: 1, Relation: 0, Object: 4}, // duplicate pair
	}

	pairs := Pairs(triples)
	require.Len(t, pairs, 2)
	assert.Equal(t, Pair{Subject: 1, Relation: 0}, pairs[0])
	assert.Equal(t, Pair{Subject: 0, Relation: 1}, pairs[1])
}

func TestGroupObjects(t *testing.T) {
	train := []Triple{{0, 0, 1}, {0, 0, 2}}
	test := []Triple{{0, 0, 3}}

	objects := GroupObjects(train, test)
	assert.Equal(t, []int32{1, 2, 3}, objects[Pair{Subject: 0, Relation: 0}])
}

func TestOneToNTargets(t *testing.T) {
	pairs := []Pair{{Subject: 0, Relation: 0}}
	objects := map[Pair][]int32{{Subject: 0, Relation: 0}: {1, 3}}

	targets := OneToNTargets(pairs, objects, 4, 0)
	assert.Equal(t, []float32{0, 1, 0, 1}, targets)
}

func TestOneToNTargetsLabelSmoothing(t *testing.T) {
	pairs := []Pair{{Subject: 0, Relation: 0}}
	objects := map[Pair][]int32{{Subject: 0, Relation: 0}: {0}}

	targets := OneToNTargets(pairs, objects, 2, 0.1)

	// background = 0.1/2 = 0.05, positive = 0.9 + 0.05 = 0.95
	assert.InDelta(t, 0.95, float64(targets[0]), 1e-6)
	assert.InDelta(t, 0.05, float64(targets[1]), 1e-6)
}
