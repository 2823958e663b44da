package train

import (
	"fmt"

	"github.com/yyf710670079/tucker/internal/data"
	"github.com/yyf710670079/tucker/internal/model"
	"github.com/yyf710670079/tucker/internal/nn"
	"github.com/yyf710670079/tucker/internal/optim"
	"github.com/yyf710670079/tucker/internal/tensor"
)

// BuildModel constructs the scorer described by cfg for the dataset's
// entity and relation counts. Embedding tables use Glorot
// initialization; the core tensor starts from U[-1, 1).
func BuildModel[B tensor.Backend](cfg Config, dataset *data.Dataset, backend B) (model.Model[B], error) {
	numEntities := dataset.NumEntities()
	numRelations := dataset.NumRelations()

	switch cfg.Model {
	case "tucker":
		core := tensor.Zeros[float32](tensor.Shape{cfg.EntityDim, cfg.RelationDim, cfg.EntityDim}, backend)
		nn.Uniform(-1, 1)(core.Data())
		return model.NewTuckER(numEntities, numRelations, core, model.TuckERConfig[B]{
			EntityInit:   nn.Xavier(numEntities, cfg.EntityDim),
			RelationInit: nn.Xavier(numRelations, cfg.RelationDim),
		}, backend)
	case "rescal":
		core := tensor.Zeros[float32](tensor.Shape{cfg.EntityDim, numRelations, cfg.EntityDim}, backend)
		nn.Uniform(-1, 1)(core.Data())
		return model.NewRESCAL(numEntities, numRelations, core, model.RESCALConfig[B]{
			EntityInit: nn.Xavier(numEntities, cfg.EntityDim),
		}, backend)
	default:
		return nil, fmt.Errorf("unknown model %q", cfg.Model)
	}
}

// BuildOptimizer constructs the optimizer and learning rate scheduler
// described by cfg. The scheduler is nil when no decay is configured.
func BuildOptimizer[B tensor.Backend](cfg Config, params []*nn.Parameter[B], backend B) (optim.Optimizer, *optim.ExponentialLR, error) {
	var opt optim.Optimizer
	switch cfg.Optimizer {
	case "adam":
		opt = optim.NewAdam(params, optim.AdamConfig{
			LR:          cfg.LR,
			WeightDecay: cfg.WeightDecay,
		}, backend)
	case "sgd":
		opt = optim.NewSGD(params, optim.SGDConfig{LR: cfg.LR}, backend)
	default:
		return nil, nil, fmt.Errorf("unknown optimizer %q", cfg.Optimizer)
	}

	var sched *optim.ExponentialLR
	if cfg.LRDecay > 0 && cfg.LRDecay != 1 {
		sched = optim.NewExponentialLR(opt, cfg.LRDecay)
	}
	return opt, sched, nil
}
