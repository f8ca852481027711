// Package stats aggregates the results of repeated requests.
package stats

import (
	"sync"

	"github.com/HdrHistogram/hdrhistogram-go"

	"github.com/wesleyorama2/restkit/http"
)

// Histogram range in milliseconds: up to one hour, 3 significant figures.
const (
	histogramMax     = 3_600_000
	histogramSigFigs = 3
)

// Summary is a point-in-time view of a Recorder.
type Summary struct {
	Requests   int   `json:"requests" yaml:"requests"`
	Succeeded  int   `json:"succeeded" yaml:"succeeded"`
	NonSuccess int   `json:"nonSuccess" yaml:"nonSuccess"`
	Failed     int   `json:"failed" yaml:"failed"`
	TotalBytes int64 `json:"totalBytes" yaml:"totalBytes"`

	MinMs  int64   `json:"minMs" yaml:"minMs"`
	MeanMs float64 `json:"meanMs" yaml:"meanMs"`
	P50Ms  int64   `json:"p50Ms" yaml:"p50Ms"`
	P95Ms  int64   `json:"p95Ms" yaml:"p95Ms"`
	P99Ms  int64   `json:"p99Ms" yaml:"p99Ms"`
	MaxMs  int64   `json:"maxMs" yaml:"maxMs"`
}

// Recorder collects RequestStats and latency percentiles.
// Recorder is safe for concurrent use.
type Recorder struct {
	mu         sync.Mutex
	hist       *hdrhistogram.Histogram
	succeeded  int
	nonSuccess int
	failed     int
	bytes      int64
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{
		hist: hdrhistogram.New(1, histogramMax, histogramSigFigs),
	}
}

// Record adds one completed exchange.
func (r *Recorder) Record(s http.RequestStats) {
	latency := s.ResponseTimeMs
	if latency > histogramMax {
		latency = histogramMax
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// RecordValue only fails for values outside the range, which was clamped above
	_ = r.hist.RecordValue(latency)
	if s.StatusCode >= 200 && s.StatusCode < 300 {
		r.succeeded++
	} else {
		r.nonSuccess++
	}
	r.bytes += int64(s.ResponseSizeBytes)
}

// RecordFailure counts a request that produced no response.
func (r *Recorder) RecordFailure() {
	r.mu.Lock()
	r.failed++
	r.mu.Unlock()
}

// Summary computes counts and latency percentiles.
func (r *Recorder) Summary() Summary {
	r.mu.Lock()
	defer r.mu.Unlock()

	summary := Summary{
		Requests:   r.succeeded + r.nonSuccess + r.failed,
		Succeeded:  r.succeeded,
		NonSuccess: r.nonSuccess,
		Failed:     r.failed,
		TotalBytes: r.bytes,
	}

	if r.hist.TotalCount() > 0 {
		summary.MinMs = r.hist.Min()
		summary.MeanMs = r.hist.Mean()
		summary.P50Ms = r.hist.ValueAtQuantile(50)
		summary.P95Ms = r.hist.ValueAtQuantile(95)
		summary.P99Ms = r.hist.ValueAtQuantile(99)
		summary.MaxMs = r.hist.Max()
	}

	return summary
}
