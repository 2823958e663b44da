// Package train wires a model, a dataset, and an optimizer into a
// 1-to-N training loop with periodic filtered evaluation.
package train

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config describes one training run. Fields left zero fall back to the
// defaults from DefaultConfig.
type Config struct {
	// Model selection.
	Model       string `yaml:"model"`        // "tucker" or "rescal"
	EntityDim   int    `yaml:"entity_dim"`   // entity embedding dimension
	RelationDim int    `yaml:"relation_dim"` // relation mode of the core (tucker only)

	// Data.
	DataDir string `yaml:"data_dir"`

	// Optimization.
	Optimizer      string  `yaml:"optimizer"` // "adam" or "sgd"
	Epochs         int     `yaml:"epochs"`
	BatchSize      int     `yaml:"batch_size"`
	LR             float32 `yaml:"lr"`
	LRDecay        float32 `yaml:"lr_decay"` // per-epoch multiplicative decay
	WeightDecay    float32 `yaml:"weight_decay"`
	LabelSmoothing float32 `yaml:"label_smoothing"`

	// Evaluation cadence: run filtered metrics on the validation
	// split every EvalEvery epochs. Zero disables periodic eval.
	EvalEvery int `yaml:"eval_every"`

	// Progress enables per-epoch progress bars.
	Progress bool `yaml:"progress"`
}

// DefaultConfig returns the hyperparameters used for the FB15k family
// of benchmarks.
func DefaultConfig() Config {
	return Config{
		Model:          "tucker",
		EntityDim:      200,
		RelationDim:    200,
		Optimizer:      "adam",
		Epochs:         500,
		BatchSize:      128,
		LR:             0.0005,
		LRDecay:        1.0,
		LabelSmoothing: 0.1,
		EvalEvery:      10,
	}
}

// LoadConfig reads a YAML config file, filling unset fields from
// DefaultConfig.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks the config for contradictions.
func (c Config) Validate() error {
	switch c.Model {
	case "tucker", "rescal":
	default:
		return fmt.Errorf("unknown model %q (want tucker or rescal)", c.Model)
	}
	switch c.Optimizer {
	case "adam", "sgd":
	default:
		return fmt.Errorf("unknown optimizer %q (want adam or sgd)", c.Optimizer)
	}
	if c.EntityDim <= 0 {
		return fmt.Errorf("entity_dim must be positive, got %d", c.EntityDim)
	}
	if c.Model == "tucker" && c.RelationDim <= 0 {
		return fmt.Errorf("relation_dim must be positive, got %d", c.RelationDim)
	}
	if c.Epochs <= 0 {
		return fmt.Errorf("epochs must be positive, got %d", c.Epochs)
	}
	if c.BatchSize <= 0 {
		return fmt.Errorf("batch_size must be positive, got %d", c.BatchSize)
	}
	if c.LR <= 0 {
		return fmt.Errorf("lr must be positive, got %v", c.LR)
	}
	if c.LRDecay <= 0 || c.LRDecay > 1 {
		return fmt.Errorf("lr_decay must be in (0, 1], got %v", c.LRDecay)
	}
	if c.LabelSmoothing < 0 || c.LabelSmoothing >= 1 {
		return fmt.Errorf("label_smoothing must be in [0, 1), got %v", c.LabelSmoothing)
	}
	return nil
}
