package train

import (
	"fmt"
	"log"
	"math/rand"

	"github.com/schollz/progressbar/v3"

	"github.com/yyf710670079/tucker/internal/autodiff"
	"github.com/yyf710670079/tucker/internal/data"
	"github.com/yyf710670079/tucker/internal/eval"
	"github.com/yyf710670079/tucker/internal/model"
	"github.com/yyf710670079/tucker/internal/optim"
	"github.com/yyf710670079/tucker/internal/tensor"
)

// Trainer runs 1-to-N training: each unique (subject, relation) pair
// in the training split is scored against all entities and pushed
// toward a multi-hot target of its observed objects with binary
// cross-entropy.
type Trainer[B tensor.Backend] struct {
	backend   *autodiff.AutodiffBackend[B]
	model     model.Model[*autodiff.AutodiffBackend[B]]
	dataset   *data.Dataset
	cfg       Config
	optimizer optim.Optimizer
	scheduler *optim.ExponentialLR
}

// New creates a trainer from an already constructed model. A nil
// scheduler leaves the learning rate constant.
func New[B tensor.Backend](
	m model.Model[*autodiff.AutodiffBackend[B]],
	dataset *data.Dataset,
	cfg Config,
	backend *autodiff.AutodiffBackend[B],
	opt optim.Optimizer,
	sched *optim.ExponentialLR,
) (*Trainer[B], error) {
	if len(dataset.Train) == 0 {
		return nil, fmt.Errorf("training split is empty")
	}

	return &Trainer[B]{
		backend:   backend,
		model:     m,
		dataset:   dataset,
		cfg:       cfg,
		optimizer: opt,
		scheduler: sched,
	}, nil
}

// Run executes the full training loop. It returns the metrics of the
// final validation evaluation, or zero metrics when no validation
// split is present.
func (t *Trainer[B]) Run() (eval.Metrics, error) {
	pairs := data.Pairs(t.dataset.Train)
	objects := data.GroupObjects(t.dataset.Train)
	numEntities := t.dataset.NumEntities()

	// Known objects across all splits for filtered evaluation.
	known := data.GroupObjects(t.dataset.Train, t.dataset.Valid, t.dataset.Test)

	var metrics eval.Metrics
	for epoch := 1; epoch <= t.cfg.Epochs; epoch++ {
		loss, err := t.runEpoch(epoch, pairs, objects, numEntities)
		if err != nil {
			return metrics, fmt.Errorf("epoch %d: %w", epoch, err)
		}

		if t.scheduler != nil {
			t.scheduler.Step()
		}
		log.Printf("epoch %d/%d loss=%.6f lr=%.6g", epoch, t.cfg.Epochs, loss, t.optimizer.GetLR())

		if t.cfg.EvalEvery > 0 && epoch%t.cfg.EvalEvery == 0 && len(t.dataset.Valid) > 0 {
			metrics, err = eval.Evaluate(t.model, t.dataset.Valid, known, eval.Config{
				ShowProgress: t.cfg.Progress,
			})
			if err != nil {
				return metrics, fmt.Errorf("epoch %d eval: %w", epoch, err)
			}
			log.Printf("epoch %d valid %s", epoch, metrics)
		}
	}

	if len(t.dataset.Valid) > 0 && (t.cfg.EvalEvery == 0 || t.cfg.Epochs%t.cfg.EvalEvery != 0) {
		var err error
		metrics, err = eval.Evaluate(t.model, t.dataset.Valid, known, eval.Config{
			ShowProgress: t.cfg.Progress,
		})
		if err != nil {
			return metrics, fmt.Errorf("final eval: %w", err)
		}
		log.Printf("final valid %s", metrics)
	}
	return metrics, nil
}

func (t *Trainer[B]) runEpoch(epoch int, pairs []data.Pair, objects map[data.Pair][]int32, numEntities int) (float64, error) {
	shuffled := append([]data.Pair(nil), pairs...)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	var bar *progressbar.ProgressBar
	if t.cfg.Progress {
		bar = progressbar.Default(int64(len(shuffled)), fmt.Sprintf("epoch %d", epoch))
	}

	var totalLoss float64
	var batches int

	for start := 0; start < len(shuffled); start += t.cfg.BatchSize {
		end := min(start+t.cfg.BatchSize, len(shuffled))
		batch := shuffled[start:end]

		loss, err := t.step(batch, objects, numEntities)
		if err != nil {
			return 0, err
		}
		totalLoss += loss
		batches++

		if bar != nil {
			_ = bar.Add(len(batch))
		}
	}

	return totalLoss / float64(batches), nil
}

// step runs one optimization step on a batch of (subject, relation)
// pairs.
func (t *Trainer[B]) step(batch []data.Pair, objects map[data.Pair][]int32, numEntities int) (float64, error) {
	heads := make([]int32, len(batch))
	rels := make([]int32, len(batch))
	for i, p := range batch {
		heads[i] = p.Subject
		rels[i] = p.Relation
	}

	targetsFlat := data.OneToNTargets(batch, objects, numEntities, t.cfg.LabelSmoothing)
	targets, err := tensor.NewRaw(tensor.Shape{len(batch), numEntities}, tensor.Float32)
	if err != nil {
		return 0, err
	}
	copy(targets.AsFloat32(), targetsFlat)

	t.optimizer.ZeroGrad()
	t.backend.Tape().Clear()
	t.backend.Tape().StartRecording()

	scores, err := t.model.Forward(heads, rels)
	if err != nil {
		t.backend.Tape().StopRecording()
		return 0, err
	}
	loss := t.backend.BCELoss(scores.Raw(), targets)

	t.backend.Tape().StopRecording()

	seed, err := tensor.NewRaw(tensor.Shape{1}, tensor.Float32)
	if err != nil {
		return 0, err
	}
	seed.AsFloat32()[0] = 1

	grads := t.backend.Tape().Backward(seed, t.backend)
	t.optimizer.Step(grads)
	t.backend.Tape().Clear()

	return float64(loss.AsFloat32()[0]), nil
}
