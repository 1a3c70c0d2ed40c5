package config

import "time"

// AppConfig is the root configuration of the pipeline.
type AppConfig struct {
	AppName   string        `yaml:"appName"`
	DataDir   string        `yaml:"dataDir"`
	TrainFile string        `yaml:"trainFile"`
	TestFile  string        `yaml:"testFile"`
	ChunkSize int           `yaml:"chunkSize"` // records per CSV chunk
	MaxLines  int           `yaml:"maxLines"`  // cap on design matrix rows
	Lexicon   LexiconConfig `yaml:"lexicon"`
	Segment   SegmentConfig `yaml:"segment"`
	Store     StoreConfig   `yaml:"store"`
	Metrics   MetricsConfig `yaml:"metrics"`
	Train     TrainConfig   `yaml:"train"`
	Log       LogConfig     `yaml:"log"`
}

type LexiconConfig struct {
	MinCount int           `yaml:"minCount"` // exclusive lower frequency bound
	MaxCount int           `yaml:"maxCount"` // exclusive upper frequency bound
	CacheTTL time.Duration `yaml:"cacheTTL"` // in-memory memoization TTL
}

type SegmentConfig struct {
	Engine       string `yaml:"engine"` // gse, sego or jieba
	SegoDict     string `yaml:"segoDict"`
	JiebaDict    string `yaml:"jiebaDict"`
	MaxTokenLen  int    `yaml:"maxTokenLen"`
	KeepNonAlpha bool   `yaml:"keepNonAlpha"`
}

type StoreConfig struct {
	Path   string `yaml:"path"`
	Shards int    `yaml:"shards"`
	NoSync bool   `yaml:"noSync"`
}

type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Listen  string `yaml:"listen"` // e.g. :2112
}

type TrainConfig struct {
	Epochs          int     `yaml:"epochs"`
	BatchSize       int     `yaml:"batchSize"`
	LearningRate    float64 `yaml:"learningRate"`
	ValidationSplit float64 `yaml:"validationSplit"`
	ConvFilters     int     `yaml:"convFilters"`
	ConvWindow      int     `yaml:"convWindow"`
	MnistDir        string  `yaml:"mnistDir"`
}

type LogConfig struct {
	FilePath  string `yaml:"filePath"`
	MaxSizeMB int64  `yaml:"maxSizeMB"`
	ToStdout  bool   `yaml:"toStdout"`
}

// DefaultConfig mirrors the historical dataset layout.
func DefaultConfig() *AppConfig {
	return &AppConfig{
		AppName:   "SentiVec",
		DataDir:   "./data",
		TrainFile: "training.1600000.processed.noemoticon.csv",
		TestFile:  "testdata.manual.2009.06.14.csv",
		ChunkSize: 10000,
		MaxLines:  int(1e7),
		Lexicon: LexiconConfig{
			MinCount: 50,
			MaxCount: 1000,
			CacheTTL: 30 * time.Minute,
		},
		Segment: SegmentConfig{
			Engine:      "gse",
			MaxTokenLen: 48,
		},
		Store: StoreConfig{
			Path:   "./data/features.db",
			Shards: 16,
		},
		Metrics: MetricsConfig{
			Enabled: false,
			Listen:  ":2112",
		},
		Train: TrainConfig{
			Epochs:          1,
			BatchSize:       32,
			LearningRate:    0.001,
			ValidationSplit: 0.3,
			ConvFilters:     64,
			ConvWindow:      3,
			MnistDir:        "./data/mnist",
		},
		Log: LogConfig{
			ToStdout: true,
		},
	}
}
