package benchmark

import (
	"fmt"
	"runtime"
	"testing"

	"github.com/kevadb/keva-go/internal/store"
)

// KeyCounts defines keyspace sizes for full benchmark runs.
var KeyCounts = []int{5000, 10000, 50000, 100000, 500000}

// SmallKeyCounts for quick benchmarks.
var SmallKeyCounts = []int{1000, 10000, 100000}

// ValueSizes covers the payload range seen in practice, from a counter
// to a serialized document.
var ValueSizes = []int{16, 256, 4096}

// benchKey returns a deterministic key for index i.
func benchKey(i int) []byte {
	return []byte(fmt.Sprintf("bench:key:%d", i))
}

// benchValue returns a value of the given size.
func benchValue(size int) []byte {
	v := make([]byte, size)
	for i := range v {
		v[i] = byte('a' + i%26)
	}
	return v
}

// prefillStore fills a store with count keys and returns them.
func prefillStore(st *store.Store, count int) [][]byte {
	keys := make([][]byte, count)
	value := benchValue(64)
	for i := 0; i < count; i++ {
		keys[i] = benchKey(i)
		st.Set(keys[i], value)
	}
	return keys
}

// reportMemory reports memory usage.
func reportMemory(b *testing.B, prefix string) {
	var m runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&m)
	b.ReportMetric(float64(m.Alloc)/(1024*1024), prefix+"_MB")
	b.ReportMetric(float64(m.NumGC), prefix+"_GC")
}
