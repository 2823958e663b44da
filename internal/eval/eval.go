// Package eval computes filtered ranking metrics for link prediction.
package eval

import (
	"fmt"

	"github.com/schollz/progressbar/v3"

	"github.com/yyf710670079/tucker/internal/data"
	"github.com/yyf710670079/tucker/internal/model"
	"github.com/yyf710670079/tucker/internal/tensor"
)

// hitsAt lists the cutoffs reported in Metrics.Hits.
var hitsAt = []int{1, 3, 10}

// Metrics holds filtered ranking results over an evaluation split.
type Metrics struct {
	MRR  float64         // mean reciprocal rank
	Hits map[int]float64 // fraction of test triples ranked within each cutoff
}

func (m Metrics) String() string {
	return fmt.Sprintf("MRR=%.4f Hits@1=%.4f Hits@3=%.4f Hits@10=%.4f",
		m.MRR, m.Hits[1], m.Hits[3], m.Hits[10])
}

// Config controls evaluation batching and progress reporting.
type Config struct {
	BatchSize    int  // triples scored per forward pass (default: 128)
	ShowProgress bool // render a progress bar on stderr
}

// Evaluate computes filtered MRR and Hits@{1,3,10} for the given
// triples.
//
// The filter removes every object known for a (subject, relation) pair
// from the candidate set, except the object under evaluation itself.
// The rank of object o is
//
//	1 + |{e : e != o, e not known for (s, r), score(e) >= score(o)}|
//
// so a model that scores the true object strictly highest attains
// rank 1. known should cover all splits (train, valid, test) for a
// properly filtered setting.
func Evaluate[B tensor.Backend](
	m model.Model[B],
	triples []data.Triple,
	known map[data.Pair][]int32,
	cfg Config,
) (Metrics, error) {
	if len(triples) == 0 {
		return Metrics{}, fmt.Errorf("no triples to evaluate")
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 128
	}

	var bar *progressbar.ProgressBar
	if cfg.ShowProgress {
		bar = progressbar.Default(int64(len(triples)), "eval")
	}

	var sumReciprocal float64
	hitCounts := make(map[int]int, len(hitsAt))

	for start := 0; start < len(triples); start += cfg.BatchSize {
		end := min(start+cfg.BatchSize, len(triples))
		batch := triples[start:end]

		heads := make([]int32, len(batch))
		rels := make([]int32, len(batch))
		for i, t := range batch {
			heads[i] = t.Subject
			rels[i] = t.Relation
		}

		scores, err := m.Forward(heads, rels)
		if err != nil {
			return Metrics{}, fmt.Errorf("score batch at %d: %w", start, err)
		}
		scoreData := scores.Data()
		numEntities := scores.Shape()[1]

		for i, t := range batch {
			row := scoreData[i*numEntities : (i+1)*numEntities]
			rank := filteredRank(row, t, known)

			sumReciprocal += 1.0 / float64(rank)
			for _, k := range hitsAt {
				if rank <= k {
					hitCounts[k]++
				}
			}
		}

		if bar != nil {
			_ = bar.Add(len(batch))
		}
	}

	n := float64(len(triples))
	metrics := Metrics{
		MRR:  sumReciprocal / n,
		Hits: make(map[int]float64, len(hitsAt)),
	}
	for _, k := range hitsAt {
		metrics.Hits[k] = float64(hitCounts[k]) / n
	}
	return metrics, nil
}

// filteredRank ranks the true object among candidates that are not
// known answers for the triple's (subject, relation) pair.
func filteredRank(scores []float32, t data.Triple, known map[data.Pair][]int32) int {
	excluded := make(map[int32]bool)
	for _, obj := range known[data.Pair{Subject: t.Subject, Relation: t.Relation}] {
		excluded[obj] = true
	}

	target := scores[t.Object]
	rank := 1
	for e, s := range scores {
		if int32(e) == t.Object || excluded[int32(e)] {
			continue
		}
		if s >= target {
			rank++
		}
	}
	return rank
}
