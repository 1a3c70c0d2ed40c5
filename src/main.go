package main

import (
	"flag"
	"fmt"
	"os"

	"SentiVec/src/analyzer"
	"SentiVec/src/db"
	"SentiVec/src/features"
	"SentiVec/src/library/config"
	"SentiVec/src/library/log"
	"SentiVec/src/metrics"
	"SentiVec/src/mnist"
	"SentiVec/src/nn"
)

func main() {
	mode := flag.String("mode", "vectorize", "run mode: vectorize, store or train-cnn")
	configPath := flag.String("config", "", "yaml config path (defaults apply when empty)")
	dataDir := flag.String("data", "", "data directory override")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *dataDir != "" {
		cfg.DataDir = *dataDir
	}
	if err := log.InitLogger(log.DEBUG, cfg.Log.FilePath, cfg.Log.MaxSizeMB, cfg.Log.ToStdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if cfg.Metrics.Enabled {
		metrics.Serve(cfg.Metrics.Listen)
	}

	switch *mode {
	case "vectorize":
		if err := runVectorize(cfg); err != nil {
			log.Fatal("vectorize failed: %v", err)
		}
	case "store":
		if err := runStore(cfg); err != nil {
			log.Fatal("store failed: %v", err)
		}
	case "train-cnn":
		if err := runTrainCNN(cfg); err != nil {
			log.Fatal("train-cnn failed: %v", err)
		}
	default:
		log.Fatal("unknown mode %q", *mode)
	}
}

// runVectorize writes the gzip design matrices for both corpus files,
// building or reusing the cached lexicon.
func runVectorize(cfg *config.AppConfig) error {
	an, err := analyzer.New(cfg.Segment)
	if err != nil {
		return err
	}
	return features.VectorizeCorpus(cfg, an)
}

// runStore vectorizes the training corpus into the bbolt feature store.
func runStore(cfg *config.AppConfig) error {
	an, err := analyzer.New(cfg.Segment)
	if err != nil {
		return err
	}
	trainPath, _, lex, err := features.Prepare(cfg, an)
	if err != nil {
		return err
	}
	store, err := db.OpenFeatureStore(cfg.Store.Path, cfg.Store.Shards, cfg.Store.NoSync)
	if err != nil {
		return err
	}
	defer store.Close()

	v := features.NewVectorizer(an, lex)
	n, err := store.StoreCorpus(v, trainPath, cfg.ChunkSize, cfg.MaxLines)
	if err != nil {
		return err
	}
	log.Info("stored %d rows in %s", n, cfg.Store.Path)
	return nil
}

// runTrainCNN fits the small convolutional tower on MNIST and reports test
// loss and accuracy.
func runTrainCNN(cfg *config.AppConfig) error {
	train, test, err := mnist.LoadData(cfg.Train.MnistDir)
	if err != nil {
		return err
	}
	yTrain := nn.OneHot(train.Labels, mnist.NumClasses)
	yTest := nn.OneHot(test.Labels, mnist.NumClasses)

	model := nn.NewModel("inception", nn.Shape(train.Shape()),
		nn.ConvTower(cfg.Train.ConvWindow, cfg.Train.ConvFilters)...)
	model.Add(
		&nn.Flatten{},
		&nn.Dense{Out: mnist.NumClasses},
		&nn.Softmax{},
	)
	if err := model.Compile(nn.NewRMSProp(cfg.Train.LearningRate), nn.CategoricalCrossEntropy{}); err != nil {
		return err
	}

	_, err = model.Fit(train.Images, yTrain, nn.FitConfig{
		Epochs:          cfg.Train.Epochs,
		BatchSize:       cfg.Train.BatchSize,
		ValidationSplit: cfg.Train.ValidationSplit,
		Shuffle:         true,
	})
	if err != nil {
		return err
	}

	loss, acc, err := model.Evaluate(test.Images, yTest)
	if err != nil {
		return err
	}
	log.Info("test loss=%.4f accuracy=%.4f", loss, acc)
	return nil
}
