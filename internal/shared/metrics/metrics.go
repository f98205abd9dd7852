package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/gin-gonic/gin"
)

var (
	menuAnalysisStartedTotal   atomic.Uint64
	menuAnalysisCompletedTotal atomic.Uint64
	menuAnalysisFailedTotal    atomic.Uint64
	menuItemsExtractedTotal    atomic.Uint64
	recommendationRequests     atomic.Uint64

	menuAnalysisDuration = newHistogram([]float64{100, 250, 500, 1000, 2000, 5000, 10000, 30000, 60000})
)

// IncMenuAnalysisStarted increments the started counter.
func IncMenuAnalysisStarted() {
	menuAnalysisStartedTotal.Add(1)
}

// IncMenuAnalysisCompleted records a finished analysis and the number of items it produced.
func IncMenuAnalysisCompleted(items int) {
	menuAnalysisCompletedTotal.Add(1)
	if items > 0 {
		menuItemsExtractedTotal.Add(uint64(items))
	}
}

// IncMenuAnalysisFailed increments the failed counter.
func IncMenuAnalysisFailed() {
	menuAnalysisFailedTotal.Add(1)
}

// IncRecommendationRequests counts product listing requests.
func IncRecommendationRequests() {
	recommendationRequests.Add(1)
}

// ObserveMenuAnalysisDurationMs records an analysis duration in milliseconds.
func ObserveMenuAnalysisDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	menuAnalysisDuration.Observe(value)
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

// Render renders metrics in Prometheus text format.
func Render() string {
	var buf bytes.Buffer
	writeCounter(&buf, "menu_analysis_started_total", "Total menu analyses started", menuAnalysisStartedTotal.Load())
	writeCounter(&buf, "menu_analysis_completed_total", "Total menu analyses completed", menuAnalysisCompletedTotal.Load())
	writeCounter(&buf, "menu_analysis_failed_total", "Total menu analyses failed", menuAnalysisFailedTotal.Load())
	writeCounter(&buf, "menu_items_extracted_total", "Total menu items extracted", menuItemsExtractedTotal.Load())
	writeCounter(&buf, "recommendation_requests_total", "Total product recommendation requests", recommendationRequests.Load())
	writeHistogram(&buf, "menu_analysis_duration_ms", "Menu analysis duration in milliseconds", menuAnalysisDuration.Snapshot())
	return buf.String()
}

type histogram struct {
	mu      sync.Mutex
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

type histogramSnapshot struct {
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

func newHistogram(buckets []float64) *histogram {
	return &histogram{
		buckets: buckets,
		counts:  make([]uint64, len(buckets)),
	}
}

func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
		}
	}
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
	return out
}

func writeCounter(buf *bytes.Buffer, name, help string, value uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	fmt.Fprintf(buf, "%s %d\n", name, value)
}

func writeHistogram(buf *bytes.Buffer, name, help string, snap histogramSnapshot) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s histogram\n", name)
	var cumulative uint64
	for i, bound := range snap.buckets {
		cumulative += snap.counts[i]
		fmt.Fprintf(buf, "%s_bucket{le=\"%s\"} %d\n", name, formatFloat(bound), cumulative)
	}
	fmt.Fprintf(buf, "%s_bucket{le=\"+Inf\"} %d\n", name, snap.count)
	fmt.Fprintf(buf, "%s_sum %s\n", name, formatFloat(snap.sum))
	fmt.Fprintf(buf, "%s_count %d\n", name, snap.count)
}

func formatFloat(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}
