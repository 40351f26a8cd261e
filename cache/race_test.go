package cache

import (
	"math/rand"
	"runtime"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// A mixed workload of concurrent Put/Get/Peek/Remove/Clear on random keys
// with byte weights. Should pass under `-race` without detector reports and
// leave the structures consistent.
func TestRace_Mixed(t *testing.T) {
	c := New[string, []byte](Options[string, []byte]{
		MaxWeight: 64 << 10,
		Weight:    func(k string, v []byte) int64 { return int64(len(k) + len(v)) },
	})
	t.Cleanup(func() { _ = c.Close() })

	workers := 4 * runtime.GOMAXPROCS(0)
	keyspace := 50_000
	deadline := time.Now().Add(500 * time.Millisecond)

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(id int) {
			defer wg.Done()
			r := rand.New(rand.NewSource(time.Now().UnixNano() + int64(id)*9973))
			for time.Now().Before(deadline) {
				k := "k:" + strconv.Itoa(r.Intn(keyspace))
				switch n := r.Intn(1000); {
				case n < 50: // ~5%: Remove
					c.Remove(k)
				case n < 51: // ~0.1%: Clear
					c.Clear()
				case n < 200: // ~15%: Put
					c.Put(k, make([]byte, r.Intn(256)))
				case n < 250: // ~5%: Peek/Contains
					c.Peek(k)
					c.Contains(k)
				default: // ~75%: Get
					c.Get(k)
				}
			}
		}(w)
	}
	wg.Wait()

	assert.LessOrEqual(t, c.Size(), c.Capacity())
	checkInvariants(t, c)
}
