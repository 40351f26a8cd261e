package prom

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IvanBrykalov/lrucache/cache"
)

func TestAdapter_ExportsCacheSignals(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	m := New(reg, "lru", "test", prometheus.Labels{"app": "unit"})

	c := cache.New[string, []byte](cache.Options[string, []byte]{
		MaxWeight: 4,
		Weight:    func(_ string, v []byte) int64 { return int64(len(v)) },
		Metrics:   m,
	})
	c.Put("a", []byte("aa"))
	c.Put("b", []byte("bb"))
	c.Get("a")                   // hit
	c.Get("zzz")                 // miss
	c.Put("c", []byte("cc"))     // evicts b
	c.Put("d", []byte("toobig")) // rejected

	assert.Equal(t, 1.0, read(t, m.hits))
	assert.Equal(t, 1.0, read(t, m.misses))
	assert.Equal(t, 1.0, read(t, m.rejections))
	assert.Equal(t, 1.0, read(t, m.evicts.WithLabelValues("capacity")))
	assert.Equal(t, 2.0, read(t, m.sizeEnt))
	assert.Equal(t, 4.0, read(t, m.sizeWeight))

	c.Clear()
	assert.Equal(t, 2.0, read(t, m.evicts.WithLabelValues("clear")))
	assert.Equal(t, 0.0, read(t, m.sizeEnt))

	families, err := reg.Gather()
	require.NoError(t, err)
	var found bool
	for _, mf := range families {
		if mf.GetName() != "lru_test_hits_total" {
			continue
		}
		found = true
		require.Len(t, mf.GetMetric(), 1)
		labels := mf.GetMetric()[0].GetLabel()
		require.Len(t, labels, 1)
		assert.Equal(t, "app", labels[0].GetName())
		assert.Equal(t, "unit", labels[0].GetValue())
	}
	assert.True(t, found, "lru_test_hits_total must be registered")
}

// read returns the current value of a counter or gauge.
func read(t *testing.T, m prometheus.Metric) float64 {
	t.Helper()
	var pb dto.Metric
	require.NoError(t, m.Write(&pb))
	if pb.Counter != nil {
		return pb.GetCounter().GetValue()
	}
	return pb.GetGauge().GetValue()
}

func TestAdapter_DuplicateRegistrationPanics(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	New(reg, "lru", "dup", nil)
	assert.Panics(t, func() { New(reg, "lru", "dup", nil) })
}
