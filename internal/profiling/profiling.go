package profiling

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

// Lightweight wall-clock profiler for generator runs and viewer frames.

// Stat is the accumulated time and call count of one bucket.
type Stat struct {
	Total time.Duration
	Count int
	Last  time.Duration
}

// Mean returns the average duration per call.
func (s Stat) Mean() time.Duration {
	if s.Count == 0 {
		return 0
	}
	return s.Total / time.Duration(s.Count)
}

var (
	mu      sync.Mutex
	buckets = make(map[string]Stat)
)

// Track returns a stop function that records the elapsed time under the given name.
// Usage: defer profiling.Track("terrain.fault")()
func Track(name string) func() {
	start := time.Now()
	return func() {
		Record(name, time.Since(start))
	}
}

// Record adds d to the named bucket.
func Record(name string, d time.Duration) {
	mu.Lock()
	s := buckets[name]
	s.Total += d
	s.Count++
	s.Last = d
	buckets[name] = s
	mu.Unlock()
}

// Reset clears every bucket.
func Reset() {
	mu.Lock()
	clear(buckets)
	mu.Unlock()
}

// Snapshot returns a copy of the current buckets.
func Snapshot() map[string]Stat {
	mu.Lock()
	defer mu.Unlock()
	out := make(map[string]Stat, len(buckets))
	for k, v := range buckets {
		out[k] = v
	}
	return out
}

// SumWithPrefix totals every bucket whose name starts with prefix.
func SumWithPrefix(prefix string) time.Duration {
	var total time.Duration
	for name, s := range Snapshot() {
		if strings.HasPrefix(name, prefix) {
			total += s.Total
		}
	}
	return total
}

// TopN formats the n buckets with the largest totals.
// Example: "terrain.erosion:412.5ms×3, viewer.upload:2.1ms×40"
func TopN(n int) string {
	ss := Snapshot()
	type pair struct {
		name string
		stat Stat
	}
	list := make([]pair, 0, len(ss))
	for k, v := range ss {
		list = append(list, pair{name: k, stat: v})
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].stat.Total != list[j].stat.Total {
			return list[i].stat.Total > list[j].stat.Total
		}
		return list[i].name < list[j].name
	})
	if n > len(list) {
		n = len(list)
	}
	parts := make([]string, 0, n)
	for i := 0; i < n; i++ {
		parts = append(parts, fmt.Sprintf("%s:%s×%d", list[i].name, formatMs(list[i].stat.Total), list[i].stat.Count))
	}
	return strings.Join(parts, ", ")
}

// formatMs keeps one decimal and drops ".0".
func formatMs(d time.Duration) string {
	ms := float64(d.Microseconds()) / 1000.0
	s := fmt.Sprintf("%.1f", ms)
	return strings.TrimSuffix(s, ".0") + "ms"
}
