// Package main provides the tucker CLI for training knowledge graph
// link prediction models.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/dustin/go-humanize"

	"github.com/yyf710670079/tucker/internal/autodiff"
	"github.com/yyf710670079/tucker/internal/backend/cpu"
	"github.com/yyf710670079/tucker/internal/data"
	"github.com/yyf710670079/tucker/internal/eval"
	"github.com/yyf710670079/tucker/internal/model"
	"github.com/yyf710670079/tucker/internal/train"
)

const version = "v0.1.0"

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}

	switch os.Args[1] {
	case "version":
		fmt.Printf("tucker %s\n", version)
	case "train":
		if err := runTrain(os.Args[2:]); err != nil {
			log.Fatal(err)
		}
	case "eval":
		if err := runEval(os.Args[2:]); err != nil {
			log.Fatal(err)
		}
	default:
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Println("tucker - knowledge graph link prediction")
	fmt.Printf("Version: %s\n\n", version)
	fmt.Println("Commands:")
	fmt.Println("  train      Train a model (see train -h)")
	fmt.Println("  eval       Evaluate a saved model (see eval -h)")
	fmt.Println("  version    Show version")
}

func runTrain(args []string) error {
	fs := flag.NewFlagSet("train", flag.ExitOnError)
	configPath := fs.String("config", "", "path to a YAML config file")
	dataDir := fs.String("data", "", "dataset directory (overrides config data_dir)")
	epochs := fs.Int("epochs", 0, "number of epochs (overrides config)")
	progress := fs.Bool("progress", false, "show progress bars")
	savePath := fs.String("save", "", "write the trained model to this .tuck file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := train.DefaultConfig()
	if *configPath != "" {
		var err error
		cfg, err = train.LoadConfig(*configPath)
		if err != nil {
			return err
		}
	}
	if *dataDir != "" {
		cfg.DataDir = *dataDir
	}
	if *epochs > 0 {
		cfg.Epochs = *epochs
	}
	if *progress {
		cfg.Progress = true
	}
	if cfg.DataDir == "" {
		return fmt.Errorf("no dataset directory: set -data or data_dir in the config")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	dataset, err := data.Load(cfg.DataDir)
	if err != nil {
		return err
	}
	log.Printf("loaded %s: %s train / %s valid / %s test triples, %s entities, %d relations",
		cfg.DataDir,
		humanize.Comma(int64(len(dataset.Train))),
		humanize.Comma(int64(len(dataset.Valid))),
		humanize.Comma(int64(len(dataset.Test))),
		humanize.Comma(int64(dataset.NumEntities())),
		dataset.NumRelations())

	backend := autodiff.New(cpu.New())

	m, err := train.BuildModel(cfg, dataset, backend)
	if err != nil {
		return err
	}

	var numParams int64
	for _, p := range m.Parameters() {
		numParams += int64(p.Tensor().NumElements())
	}
	log.Printf("%s model with %s trainable parameters", cfg.Model, humanize.Comma(numParams))

	opt, sched, err := train.BuildOptimizer(cfg, m.Parameters(), backend)
	if err != nil {
		return err
	}

	trainer, err := train.New(m, dataset, cfg, backend, opt, sched)
	if err != nil {
		return err
	}
	if _, err := trainer.Run(); err != nil {
		return err
	}

	if len(dataset.Test) > 0 {
		known := data.GroupObjects(dataset.Train, dataset.Valid, dataset.Test)
		metrics, err := eval.Evaluate(m, dataset.Test, known, eval.Config{
			ShowProgress: cfg.Progress,
		})
		if err != nil {
			return err
		}
		log.Printf("test %s", metrics)
	}

	if *savePath != "" {
		meta := map[string]string{
			"data_dir": cfg.DataDir,
			"epochs":   fmt.Sprintf("%d", cfg.Epochs),
		}
		if err := model.Save(*savePath, m, meta); err != nil {
			return err
		}
		log.Printf("saved model to %s", *savePath)
	}
	return nil
}

func runEval(args []string) error {
	fs := flag.NewFlagSet("eval", flag.ExitOnError)
	configPath := fs.String("config", "", "path to the YAML config the model was trained with")
	dataDir := fs.String("data", "", "dataset directory (overrides config data_dir)")
	modelPath := fs.String("model", "", "path to a saved .tuck model")
	split := fs.String("split", "test", "split to evaluate: test or valid")
	progress := fs.Bool("progress", false, "show progress bars")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *modelPath == "" {
		return fmt.Errorf("no model: set -model to a saved .tuck file")
	}

	cfg := train.DefaultConfig()
	if *configPath != "" {
		var err error
		cfg, err = train.LoadConfig(*configPath)
		if err != nil {
			return err
		}
	}
	if *dataDir != "" {
		cfg.DataDir = *dataDir
	}
	if cfg.DataDir == "" {
		return fmt.Errorf("no dataset directory: set -data or data_dir in the config")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	dataset, err := data.Load(cfg.DataDir)
	if err != nil {
		return err
	}

	var triples []data.Triple
	switch *split {
	case "test":
		triples = dataset.Test
	case "valid":
		triples = dataset.Valid
	default:
		return fmt.Errorf("unknown split %q", *split)
	}
	if len(triples) == 0 {
		return fmt.Errorf("dataset has no %s split", *split)
	}

	backend := cpu.New()
	m, err := train.BuildModel(cfg, dataset, backend)
	if err != nil {
		return err
	}
	if err := model.Load(*modelPath, m); err != nil {
		return err
	}

	known := data.GroupObjects(dataset.Train, dataset.Valid, dataset.Test)
	metrics, err := eval.Evaluate(m, triples, known, eval.Config{ShowProgress: *progress})
	if err != nil {
		return err
	}
	log.Printf("%s (%s triples) %s", *split, humanize.Comma(int64(len(triples))), metrics)
	return nil
}
