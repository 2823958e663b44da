package train

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yyf710670079/tucker/internal/autodiff"
	"github.com/yyf710670079/tucker/internal/backend/cpu"
	"github.com/yyf710670079/tucker/internal/data"
	"github.com/yyf710670079/tucker/internal/model"
)

func smallConfig() Config {
	return Config{
		Model:          "tucker",
		EntityDim:      4,
		RelationDim:    4,
		Optimizer:      "adam",
		Epochs:         3,
		BatchSize:      2,
		LR:             0.01,
		LRDecay:        1.0,
		LabelSmoothing: 0.1,
	}
}

func smallDataset() *data.Dataset {
	return data.FromTriples([]data.Triple{
		{Subject: 0, Relation: 0, Object: 1},
		{Subject: 0, Relation: 0, Object: 2},
		{Subject: 1, Relation: 1, Object: 3},
		{Subject: 2, Relation: 0, Object: 4},
		{Subject: 3, Relation: 1, Object: 0},
	}, nil, nil)
}

func TestTrainerRunUpdatesParameters(t *testing.T) {
	backend := autodiff.New(cpu.New())
	ds := smallDataset()
	cfg := smallConfig()

	m, err := BuildModel(cfg, ds, backend)
	require.NoError(t, err)

	tucker, ok := m.(*model.TuckER[*autodiff.AutodiffBackend[*cpu.CPUBackend]])
	require.True(t, ok)
	initial := append([]float32(nil), tucker.EntityEmbeddings().Weight.Tensor().Data()...)

	opt, sched, err := BuildOptimizer(cfg, m.Parameters(), backend)
	require.NoError(t, err)

	tr, err := New(m, ds, cfg, backend, opt, sched)
	require.NoError(t, err)

	_, err = tr.Run()
	require.NoError(t, err)

	assert.NotEqual(t, initial, tucker.EntityEmbeddings().Weight.Tensor().Data())
}

func TestTrainerRunWithValidationEval(t *testing.T) {
	backend := autodiff.New(cpu.New())
	ds := data.FromTriples(
		[]data.Triple{
			{Subject: 0, Relation: 0, Object: 1},
			{Subject: 1, Relation: 0, Object: 2},
			{Subject: 2, Relation: 0, Object: 0},
		},
		[]data.Triple{{Subject: 0, Relation: 0, Object: 2}},
		nil,
	)

	cfg := smallConfig()
	cfg.Epochs = 2
	cfg.EvalEvery = 1

	m, err := BuildModel(cfg, ds, backend)
	require.NoError(t, err)
	opt, sched, err := BuildOptimizer(cfg, m.Parameters(), backend)
	require.NoError(t, err)
	tr, err := New(m, ds, cfg, backend, opt, sched)
	require.NoError(t, err)

	metrics, err := tr.Run()
	require.NoError(t, err)

	assert.Greater(t, metrics.MRR, 0.0)
	assert.LessOrEqual(t, metrics.MRR, 1.0)
}

func TestTrainerRESCAL(t *testing.T) {
	backend := autodiff.New(cpu.New())
	ds := smallDataset()

	cfg := smallConfig()
	cfg.Model = "rescal"
	cfg.Optimizer = "sgd"
	cfg.Epochs = 1

	m, err := BuildModel(cfg, ds, backend)
	require.NoError(t, err)
	opt, sched, err := BuildOptimizer(cfg, m.Parameters(), backend)
	require.NoError(t, err)
	tr, err := New(m, ds, cfg, backend, opt, sched)
	require.NoError(t, err)

	_, err = tr.Run()
	require.NoError(t, err)
}

func TestNewRejectsEmptyTrainSplit(t *testing.T) {
	backend := autodiff.New(cpu.New())
	ds := data.FromTriples(nil, nil, nil)
	cfg := smallConfig()

	_, err := New[*cpu.CPUBackend](nil, ds, cfg, backend, nil, nil)
	assert.ErrorContains(t, err, "empty")
}

func TestLRDecayAppliedPerEpoch(t *testing.T) {
	backend := autodiff.New(cpu.New())
	ds := smallDataset()

	cfg := smallConfig()
	cfg.Epochs = 2
	cfg.LRDecay = 0.5

	m, err := BuildModel(cfg, ds, backend)
	require.NoError(t, err)
	opt, sched, err := BuildOptimizer(cfg, m.Parameters(), backend)
	require.NoError(t, err)
	require.NotNil(t, sched)

	tr, err := New(m, ds, cfg, backend, opt, sched)
	require.NoError(t, err)
	_, err = tr.Run()
	require.NoError(t, err)

	assert.InDelta(t, 0.01*0.25, float64(opt.GetLR()), 1e-7)
}

func TestLoadConfigAppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("model: rescal\nentity_dim: 32\ndata_dir: /tmp/fb15k\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "rescal", cfg.Model)
	assert.Equal(t, 32, cfg.EntityDim)
	assert.Equal(t, "/tmp/fb15k", cfg.DataDir)
	// Untouched fields keep their defaults.
	assert.Equal(t, 128, cfg.BatchSize)
	assert.Equal(t, float32(0.0005), cfg.LR)
}

func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	bad := cfg
	bad.Model = "transe"
	assert.ErrorContains(t, bad.Validate(), "unknown model")

	bad = cfg
	bad.Optimizer = "rmsprop"
	assert.ErrorContains(t, bad.Validate(), "unknown optimizer")

	bad = cfg
	bad.LabelSmoothing = 1.5
	assert.ErrorContains(t, bad.Validate(), "label_smoothing")

	bad = cfg
	bad.LRDecay = 0
	assert.ErrorContains(t, bad.Validate(), "lr_decay")
}
