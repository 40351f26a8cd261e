package main

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Environment-dependent tests cannot run in parallel (t.Setenv).

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := loadConfig(nil)
	require.NoError(t, err)

	assert.Equal(t, int64(100_000), cfg.Capacity)
	assert.Equal(t, "unit", cfg.Weight)
	assert.Equal(t, "exclusive", cfg.Guard)
	assert.Equal(t, 10*time.Second, cfg.Duration)
	assert.Equal(t, 80, cfg.ReadPct)
	assert.Equal(t, ":8080", cfg.MetricsAddr)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
}

func TestLoadConfig_EnvThenFlags(t *testing.T) {
	t.Setenv("LRU_CAPACITY", "4096")
	t.Setenv("LRU_WEIGHT", "bytes")
	t.Setenv("LRU_DURATION", "3s")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := loadConfig([]string{"-cap", "512", "-guard", "uncontended"})
	require.NoError(t, err)

	assert.Equal(t, int64(512), cfg.Capacity, "flag overrides env")
	assert.Equal(t, "bytes", cfg.Weight, "env applies when no flag is given")
	assert.Equal(t, "uncontended", cfg.Guard)
	assert.Equal(t, 3*time.Second, cfg.Duration)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
}

func TestLoadConfig_Invalid(t *testing.T) {
	cases := map[string][]string{
		"zero capacity":  {"-cap", "0"},
		"unknown weight": {"-weight", "lines"},
		"unknown guard":  {"-guard", "rw"},
		"reads range":    {"-reads", "120"},
		"zipf skew":      {"-zipf_s", "1"},
		"log format":     {"-log_format", "xml"},
		"unknown flag":   {"-nope"},
	}
	for name, args := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := loadConfig(args)
			assert.Error(t, err)
		})
	}
}

func TestLoadConfig_BadEnv(t *testing.T) {
	t.Setenv("LRU_WORKERS", "many")

	_, err := loadConfig(nil)
	assert.ErrorContains(t, err, "parse env")
}
