package server

import (
	"sync"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
)

// Stats accumulates detection counters and a latency histogram in
// microseconds (1us to 1h, 3 significant digits). Safe for concurrent use.
type Stats struct {
	mu           sync.Mutex
	latency      *hdrhistogram.Histogram
	requests     int64
	failed       int64
	observations int64
	hotspots     int64
}

// NewStats returns an empty Stats.
func NewStats() *Stats {
	return &Stats{latency: hdrhistogram.New(1, 3600000000, 3)}
}

// Record adds one detection run. hotspots is ignored for failed runs.
func (s *Stats) Record(d time.Duration, observations, hotspots int, failed bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_ = s.latency.RecordValue(max(d.Microseconds(), 1))
	s.requests++
	s.observations += int64(observations)
	if failed {
		s.failed++
		return
	}
	s.hotspots += int64(hotspots)
}

// Snapshot is a point-in-time copy of Stats. Latencies are in milliseconds.
type Snapshot struct {
	Requests     int64   `json:"requests"`
	Failed       int64   `json:"failed"`
	Observations int64   `json:"observations"`
	Hotspots     int64   `json:"hotspots"`
	LatencyMean  float64 `json:"latency_mean_ms"`
	LatencyP50   float64 `json:"latency_p50_ms"`
	LatencyP90   float64 `json:"latency_p90_ms"`
	LatencyP99   float64 `json:"latency_p99_ms"`
	LatencyMax   float64 `json:"latency_max_ms"`
}

// Snapshot returns the current counters and latency percentiles.
func (s *Stats) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		Requests:     s.requests,
		Failed:       s.failed,
		Observations: s.observations,
		Hotspots:     s.hotspots,
	}
	if s.latency.TotalCount() == 0 {
		return snap
	}
	ms := func(us int64) float64 { return float64(us) / 1000 }
	snap.LatencyMean = s.latency.Mean() / 1000
	snap.LatencyP50 = ms(s.latency.ValueAtQuantile(50))
	snap.LatencyP90 = ms(s.latency.ValueAtQuantile(90))
	snap.LatencyP99 = ms(s.latency.ValueAtQuantile(99))
	snap.LatencyMax = ms(s.latency.Max())
	return snap
}
