// Command lrubench runs a synthetic Zipf workload against a weighted LRU
// cache and exposes optional pprof/Prometheus endpoints.
package main

import (
	"context"
	"errors"
	"log/slog"
	"math/rand"
	"net/http"
	_ "net/http/pprof" // registers /debug/pprof/* on DefaultServeMux
	"os"
	"runtime"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/IvanBrykalov/lrucache/cache"
	pmet "github.com/IvanBrykalov/lrucache/metrics/prom"
	"github.com/IvanBrykalov/lrucache/policy"
)

func main() {
	cfg, err := loadConfig(os.Args[1:])
	if err != nil {
		slog.Error("invalid configuration", slog.Any("error", err))
		os.Exit(2)
	}
	// Every run gets an id so logs and scraped series from concurrent
	// runs can be told apart.
	runID := uuid.NewString()
	log := newLogger(cfg).With(slog.String("run_id", runID))
	slog.SetDefault(log)

	if err := run(context.Background(), cfg, log, runID); err != nil {
		log.Error("benchmark failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func newLogger(cfg config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

// counters aggregates per-run workload totals.
type counters struct {
	reads, writes, hits, misses, rejected atomic.Uint64
}

func run(ctx context.Context, cfg config, log *slog.Logger, runID string) error {
	// ---- pprof / Prometheus (both on DefaultServeMux) ----
	if cfg.PprofAddr != "" {
		serve(log, "pprof", cfg.PprofAddr)
	}
	opt := cache.Options[string, []byte]{
		MaxWeight: cfg.Capacity,
		Logger:    log,
	}
	if cfg.MetricsAddr != "" {
		opt.Metrics = pmet.New(nil, "lru", "bench", prometheus.Labels{"run_id": runID})
		http.Handle("/metrics", promhttp.Handler())
		serve(log, "metrics", cfg.MetricsAddr)
	}

	// ---- Build cache ----
	if cfg.Weight == "bytes" {
		opt.Weight = func(k string, v []byte) int64 { return int64(len(k) + len(v)) }
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = 2 * runtime.GOMAXPROCS(0)
	}
	if cfg.Guard == "uncontended" {
		opt.Guard = policy.NewUncontended()
		if workers != 1 {
			log.Warn("uncontended guard is single-goroutine only; forcing one worker",
				slog.Int("requested_workers", workers))
			workers = 1
		}
	}
	c := cache.New[string, []byte](opt)
	defer func() { _ = c.Close() }()

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	// ---- Preload half capacity to get a realistic hit-rate ----
	pl := cfg.Preload
	if pl == 0 {
		pl = int(min(cfg.Capacity/2, int64(cfg.Keys)))
	}
	pr := rand.New(rand.NewSource(seed))
	for i := 0; i < pl; i++ {
		c.Put("k:"+strconv.Itoa(i), value(pr, cfg.ValueMax))
	}
	log.Info("starting workload",
		slog.Int64("capacity", cfg.Capacity),
		slog.String("weight", cfg.Weight),
		slog.String("guard", cfg.Guard),
		slog.Int("workers", workers),
		slog.Int("keys", cfg.Keys),
		slog.Int("preloaded", c.Len()),
		slog.Duration("duration", cfg.Duration),
		slog.Int64("seed", seed),
	)

	// ---- Load generation ----
	var n counters
	runCtx, cancel := context.WithTimeout(ctx, cfg.Duration)
	defer cancel()

	start := time.Now()
	g, gctx := errgroup.WithContext(runCtx)
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			// Each worker gets its own RNG + Zipf (rand.Rand is NOT goroutine-safe).
			r := rand.New(rand.NewSource(seed + int64(w)*9973))
			zipf := rand.NewZipf(r, cfg.ZipfS, cfg.ZipfV, uint64(cfg.Keys-1))
			for gctx.Err() == nil {
				k := "k:" + strconv.FormatUint(zipf.Uint64(), 10)
				if int(r.Int31n(100)) < cfg.ReadPct {
					n.reads.Add(1)
					if _, ok := c.Get(k); ok {
						n.hits.Add(1)
					} else {
						n.misses.Add(1)
					}
					continue
				}
				n.writes.Add(1)
				if !c.Put(k, value(r, cfg.ValueMax)) {
					n.rejected.Add(1)
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	report(log, &n, time.Since(start), c)
	return nil
}

// value returns a payload of 1..limit bytes.
func value(r *rand.Rand, limit int) []byte {
	return make([]byte, 1+r.Intn(limit))
}

func serve(log *slog.Logger, name, addr string) {
	go func() {
		log.Info("serving", slog.String("endpoint", name), slog.String("addr", addr))
		if err := http.ListenAndServe(addr, nil); err != nil {
			log.Error("http server stopped", slog.String("endpoint", name), slog.Any("error", err))
		}
	}()
}

func report(log *slog.Logger, n *counters, elapsed time.Duration, c *cache.LRU[string, []byte]) {
	reads := n.reads.Load()
	writes := n.writes.Load()
	hits := n.hits.Load()

	hitRate := 0.0
	if reads > 0 {
		hitRate = float64(hits) / float64(reads) * 100
	}
	ops := reads + writes

	log.Info("workload finished",
		slog.Duration("elapsed", elapsed),
		slog.Uint64("ops", ops),
		slog.Float64("ops_per_sec", float64(ops)/elapsed.Seconds()),
		slog.Uint64("reads", reads),
		slog.Uint64("writes", writes),
		slog.Uint64("hits", hits),
		slog.Uint64("misses", n.misses.Load()),
		slog.Uint64("rejected", n.rejected.Load()),
		slog.String("hit_rate", strconv.FormatFloat(hitRate, 'f', 2, 64)+"%"),
		slog.Int("entries", c.Len()),
		slog.Int64("size", c.Size()),
		slog.Int64("capacity", c.Capacity()),
	)
}
