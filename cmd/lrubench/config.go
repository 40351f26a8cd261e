package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// config is read from the environment (and an optional .env file);
// command-line flags override individual values.
type config struct {
	Capacity int64  `env:"LRU_CAPACITY" envDefault:"100000"`
	Weight   string `env:"LRU_WEIGHT" envDefault:"unit"`     // unit | bytes
	Guard    string `env:"LRU_GUARD" envDefault:"exclusive"` // exclusive | uncontended

	Workers  int           `env:"LRU_WORKERS"` // 0 = 2*GOMAXPROCS
	Duration time.Duration `env:"LRU_DURATION" envDefault:"10s"`
	ReadPct  int           `env:"LRU_READS" envDefault:"80"`

	Keys     int     `env:"LRU_KEYS" envDefault:"1000000"`
	ZipfS    float64 `env:"LRU_ZIPF_S" envDefault:"1.1"`
	ZipfV    float64 `env:"LRU_ZIPF_V" envDefault:"1.0"`
	Seed     int64   `env:"LRU_SEED"` // 0 = time-based
	Preload  int     `env:"LRU_PRELOAD"`
	ValueMax int     `env:"LRU_VALUE_MAX" envDefault:"256"`

	PprofAddr   string `env:"LRU_PPROF_ADDR"`
	MetricsAddr string `env:"LRU_METRICS_ADDR" envDefault:":8080"`

	LogLevel  slog.Level `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string     `env:"LOG_FORMAT" envDefault:"text"` // text | json
}

// loadConfig loads .env (if present), parses the environment, then applies
// flags from args on top.
func loadConfig(args []string) (config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return config{}, fmt.Errorf("load .env: %w", err)
	}
	cfg, err := env.ParseAs[config]()
	if err != nil {
		return config{}, fmt.Errorf("parse env: %w", err)
	}

	fset := flag.NewFlagSet("lrubench", flag.ContinueOnError)
	fset.Int64Var(&cfg.Capacity, "cap", cfg.Capacity, "cache capacity (entries for unit weight, bytes for byte weight)")
	fset.StringVar(&cfg.Weight, "weight", cfg.Weight, "weight function: unit | bytes")
	fset.StringVar(&cfg.Guard, "guard", cfg.Guard, "guard policy: exclusive | uncontended")
	fset.IntVar(&cfg.Workers, "workers", cfg.Workers, "number of worker goroutines (0 = 2*GOMAXPROCS)")
	fset.DurationVar(&cfg.Duration, "duration", cfg.Duration, "benchmark duration")
	fset.IntVar(&cfg.ReadPct, "reads", cfg.ReadPct, "read percentage [0..100]")
	fset.IntVar(&cfg.Keys, "keys", cfg.Keys, "keyspace size")
	fset.Float64Var(&cfg.ZipfS, "zipf_s", cfg.ZipfS, "Zipf s > 1 (skew)")
	fset.Float64Var(&cfg.ZipfV, "zipf_v", cfg.ZipfV, "Zipf v >= 1")
	fset.Int64Var(&cfg.Seed, "seed", cfg.Seed, "random seed (0 = time-based)")
	fset.IntVar(&cfg.Preload, "preload", cfg.Preload, "preload entries (0 = cap/2)")
	fset.IntVar(&cfg.ValueMax, "value_max", cfg.ValueMax, "max value size in bytes")
	fset.StringVar(&cfg.PprofAddr, "pprof", cfg.PprofAddr, "serve pprof at addr (e.g. :6060); empty = disabled")
	fset.StringVar(&cfg.MetricsAddr, "http", cfg.MetricsAddr, "serve Prometheus metrics at addr; empty = disabled")
	fset.TextVar(&cfg.LogLevel, "log_level", cfg.LogLevel, "log level: debug | info | warn | error")
	fset.StringVar(&cfg.LogFormat, "log_format", cfg.LogFormat, "log format: text | json")
	if err := fset.Parse(args); err != nil {
		return config{}, err
	}

	return cfg, cfg.validate()
}

func (c *config) validate() error {
	var errs []error
	if c.Capacity <= 0 {
		errs = append(errs, fmt.Errorf("capacity must be > 0, got %d", c.Capacity))
	}
	if c.Weight != "unit" && c.Weight != "bytes" {
		errs = append(errs, fmt.Errorf("unknown weight %q (use unit or bytes)", c.Weight))
	}
	if c.Guard != "exclusive" && c.Guard != "uncontended" {
		errs = append(errs, fmt.Errorf("unknown guard %q (use exclusive or uncontended)", c.Guard))
	}
	if c.ReadPct < 0 || c.ReadPct > 100 {
		errs = append(errs, fmt.Errorf("reads must be within [0, 100], got %d", c.ReadPct))
	}
	if c.Keys < 1 {
		errs = append(errs, fmt.Errorf("keys must be >= 1, got %d", c.Keys))
	}
	if c.ZipfS <= 1 || c.ZipfV < 1 {
		errs = append(errs, fmt.Errorf("zipf requires s > 1 and v >= 1, got s=%v v=%v", c.ZipfS, c.ZipfV))
	}
	if c.ValueMax < 1 {
		errs = append(errs, fmt.Errorf("value_max must be >= 1, got %d", c.ValueMax))
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		errs = append(errs, fmt.Errorf("unknown log format %q", c.LogFormat))
	}
	return errors.Join(errs...)
}
