package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/hupe1980/hamscan/progress"
	"github.com/shirou/gopsutil/v3/cpu"
	"gopkg.in/yaml.v3"
)

// defaultMaxDistance is the threshold used when neither -d nor the config
// file sets one.
const defaultMaxDistance = 32

// Config holds the command line settings. Every field can be set in a YAML
// file passed with -config; flags given explicitly take precedence.
type Config struct {
	Source            string        `yaml:"source"`
	MaxDistance       int           `yaml:"max_distance" validate:"gte=0"`
	Workers           int           `yaml:"workers" validate:"gte=1"`
	Mode              string        `yaml:"mode" validate:"oneof=full within"`
	Adjacency         bool          `yaml:"adjacency"`
	Strict            bool          `yaml:"strict"`
	Kernel            string        `yaml:"kernel" validate:"oneof=auto popcount bounded"`
	ReportEvery       uint64        `yaml:"report_every" validate:"pow2"`
	ReportMinInterval time.Duration `yaml:"report_min_interval" validate:"gte=0"`
	BucketWidth       int           `yaml:"bucket_width" validate:"gte=1"`
	LogFormat         string        `yaml:"log_format" validate:"oneof=text json"`
	LogLevel          string        `yaml:"log_level" validate:"oneof=debug info warn error"`
	MetricsAddr       string        `yaml:"metrics_addr" validate:"omitempty,hostname_port"`
	MemoryLimit       int64         `yaml:"memory_limit" validate:"gte=0"`
	ReadLimit         int64         `yaml:"read_limit" validate:"gte=0"`
}

func defaultConfig() Config {
	return Config{
		MaxDistance: defaultMaxDistance,
		Workers:     physicalCores(),
		Mode:        "full",
		Kernel:      "auto",
		ReportEvery: progress.DefaultInterval,
		BucketWidth: progress.DefaultBucketWidth,
		LogFormat:   "text",
		LogLevel:    "info",
	}
}

// physicalCores returns the number of physical CPU cores, falling back to
// the logical count when it cannot be determined.
func physicalCores() int {
	n, err := cpu.Counts(false)
	if err != nil || n <= 0 {
		return runtime.NumCPU()
	}
	return n
}

// loadConfigFile overlays the YAML file at path onto cfg.
func loadConfigFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("pow2", func(fl validator.FieldLevel) bool {
		n := fl.Field().Uint()
		return n != 0 && n&(n-1) == 0
	})
	return v
}

// Validate checks cfg for invalid values.
func (c *Config) Validate() error {
	return newValidator().Struct(c)
}

func newFlagSet(cfg *Config, configPath *string, output io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet("hamscan", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(configPath, "config", *configPath, "YAML configuration file")
	fs.StringVar(&cfg.Source, "f", cfg.Source, "input file: local path, s3://bucket/key or minio://endpoint/bucket/key")
	fs.IntVar(&cfg.MaxDistance, "d", cfg.MaxDistance, "maximum Hamming distance of a reported pair")
	fs.IntVar(&cfg.Workers, "workers", cfg.Workers, "number of parallel workers")
	fs.StringVar(&cfg.Mode, "mode", cfg.Mode, "partition mode: full or within (within skips cross-slice pairs)")
	fs.BoolVar(&cfg.Adjacency, "adjacency", cfg.Adjacency, "report matching pairs as an adjacency list")
	fs.BoolVar(&cfg.Strict, "strict", cfg.Strict, "fail on hex round-trip mismatches")
	fs.StringVar(&cfg.Kernel, "kernel", cfg.Kernel, "distance kernel: auto, popcount or bounded")
	fs.Uint64Var(&cfg.ReportEvery, "report-every", cfg.ReportEvery, "pairs between progress reports (power of two)")
	fs.DurationVar(&cfg.ReportMinInterval, "report-min-interval", cfg.ReportMinInterval, "minimum time between progress reports per worker")
	fs.IntVar(&cfg.BucketWidth, "bucket-width", cfg.BucketWidth, "distance range width in progress reports")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "log format: text or json")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn or error")
	fs.StringVar(&cfg.MetricsAddr, "metrics-addr", cfg.MetricsAddr, "serve Prometheus metrics on this address")
	fs.Int64Var(&cfg.MemoryLimit, "memory-limit", cfg.MemoryLimit, "maximum bytes of loaded fingerprints (0 = unlimited)")
	fs.Int64Var(&cfg.ReadLimit, "read-limit", cfg.ReadLimit, "maximum input read rate in bytes per second (0 = unlimited)")
	return fs
}

// parseConfig builds the effective configuration. Values come from the
// defaults, then the -config file, then flags given on the command line.
func parseConfig(args []string, output io.Writer) (Config, error) {
	cfg := defaultConfig()
	var configPath string
	if err := newFlagSet(&cfg, &configPath, output).Parse(args); err != nil {
		return cfg, err
	}
	if configPath == "" {
		return cfg, cfg.Validate()
	}

	fileCfg := defaultConfig()
	if err := loadConfigFile(configPath, &fileCfg); err != nil {
		return cfg, err
	}
	// Parse again so explicit flags win over the file.
	if err := newFlagSet(&fileCfg, &configPath, output).Parse(args); err != nil {
		return fileCfg, err
	}
	return fileCfg, fileCfg.Validate()
}
