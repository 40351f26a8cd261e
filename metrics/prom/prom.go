// Package prom exports cache signals as Prometheus metrics.
package prom

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/IvanBrykalov/lrucache/cache"
)

// Adapter implements cache.Metrics and exports Prometheus counters/gauges.
// Safe for concurrent use; all Prometheus metric types are goroutine-safe.
type Adapter struct {
	hits       prometheus.Counter
	misses     prometheus.Counter
	rejections prometheus.Counter
	evicts     *prometheus.CounterVec
	sizeEnt    prometheus.Gauge
	sizeWeight prometheus.Gauge
}

// New constructs a Prometheus metrics adapter.
//   - reg:          registry to register metrics with (nil => prometheus.DefaultRegisterer)
//   - ns, sub:      Prometheus namespace and subsystem
//   - constLabels:  static labels applied to all metrics (may be nil)
func New(reg prometheus.Registerer, ns, sub string, constLabels prometheus.Labels) *Adapter {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	counter := func(name, help string) prometheus.Counter {
		return prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        name,
			Help:        help,
			ConstLabels: constLabels,
		})
	}
	gauge := func(name, help string) prometheus.Gauge {
		return prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        name,
			Help:        help,
			ConstLabels: constLabels,
		})
	}

	a := &Adapter{
		hits:       counter("hits_total", "Cache hits"),
		misses:     counter("misses_total", "Cache misses"),
		rejections: counter("rejections_total", "Puts refused because the entry outweighs the capacity"),
		evicts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   ns,
				Subsystem:   sub,
				Name:        "evictions_total",
				Help:        "Entries dropped by the cache, by reason",
				ConstLabels: constLabels,
			},
			[]string{"reason"},
		),
		sizeEnt:    gauge("size_entries", "Number of resident entries"),
		sizeWeight: gauge("size_weight", "Total resident weight"),
	}
	reg.MustRegister(a.hits, a.misses, a.rejections, a.evicts, a.sizeEnt, a.sizeWeight)
	return a
}

// Hit increments the hit counter.
func (a *Adapter) Hit() { a.hits.Inc() }

// Miss increments the miss counter.
func (a *Adapter) Miss() { a.misses.Inc() }

// Reject increments the rejection counter.
func (a *Adapter) Reject() { a.rejections.Inc() }

// Evict increments the eviction counter with a reason label.
func (a *Adapter) Evict(r cache.EvictReason) {
	a.evicts.WithLabelValues(r.String()).Inc()
}

// Size updates gauges for the number of entries and total weight.
func (a *Adapter) Size(entries int, weight int64) {
	a.sizeEnt.Set(float64(entries))
	a.sizeWeight.Set(float64(weight))
}

// Compile-time check: ensure Adapter implements cache.Metrics.
var _ cache.Metrics = (*Adapter)(nil)
