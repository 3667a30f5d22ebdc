package service

import (
	"sync"
	"time"
)

// Operation names tracked by MetricsCollector.
const (
	OpSessionCreated = "session_created"
	OpEncrypt        = "encrypt"
	OpDecrypt        = "decrypt"
	OpReset          = "reset"
	OpCompareSchemes = "compare_schemes"
)

// MetricsCollector tracks counts and timings for demo operations
type MetricsCollector struct {
	mu         sync.RWMutex
	startedAt  time.Time
	operations map[string]*operationStats
}

type operationStats struct {
	count     int
	failures  int
	totalTime time.Duration
	firstAt   time.Time
	lastAt    time.Time
}

// OperationMetrics contains timing information for an operation
type OperationMetrics struct {
	Count          int       `json:"count"`
	Failures       int       `json:"failures"`
	FirstAt        time.Time `json:"first_at"`
	LastAt         time.Time `json:"last_at"`
	ProcessingTime int64     `json:"processing_time_us"`
}

// MetricsResponse provides the metrics for all operations
type MetricsResponse struct {
	Uptime     int64                       `json:"uptime_ms"`
	Sessions   int                         `json:"active_sessions"`
	Operations map[string]OperationMetrics `json:"operations"`
}

// NewMetricsCollector creates a new metrics collector
func NewMetricsCollector() *MetricsCollector {
	return &MetricsCollector{
		startedAt:  time.Now(),
		operations: make(map[string]*operationStats),
	}
}

// Record adds one completed operation. A non-nil err counts as a failure.
func (mc *MetricsCollector) Record(op string, duration time.Duration, err error) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	stats, ok := mc.operations[op]
	if !ok {
		stats = &operationStats{}
		mc.operations[op] = stats
	}

	now := time.Now()
	if stats.count == 0 {
		stats.firstAt = now
	}
	stats.count++
	stats.lastAt = now
	stats.totalTime += duration
	if err != nil {
		stats.failures++
	}
}

// Track returns a func that records op when called with the outcome.
func (mc *MetricsCollector) Track(op string) func(error) {
	start := time.Now()
	return func(err error) {
		mc.Record(op, time.Since(start), err)
	}
}

// GetMetrics returns current metrics for all operations
func (mc *MetricsCollector) GetMetrics(activeSessions int) MetricsResponse {
	mc.mu.RLock()
	defer mc.mu.RUnlock()

	resp := MetricsResponse{
		Uptime:     time.Since(mc.startedAt).Milliseconds(),
		Sessions:   activeSessions,
		Operations: make(map[string]OperationMetrics, len(mc.operations)),
	}
	for op, stats := range mc.operations {
		resp.Operations[op] = OperationMetrics{
			Count:          stats.count,
			Failures:       stats.failures,
			FirstAt:        stats.firstAt,
			LastAt:         stats.lastAt,
			ProcessingTime: stats.totalTime.Microseconds(),
		}
	}
	return resp
}

// Reset clears all metrics
func (mc *MetricsCollector) Reset() {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	mc.startedAt = time.Now()
	mc.operations = make(map[string]*operationStats)
}
