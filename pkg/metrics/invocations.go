package metrics

import (
	"sync"
	"time"
)

// InvocationMetrics tracks how tool invocations fare.
type InvocationMetrics struct {
	mu sync.RWMutex

	totalInvocations  int64
	failedInvocations int64
	duration          time.Duration

	byTool map[string]int64
	byKind map[string]int64
}

// NewInvocationMetrics creates a new InvocationMetrics instance
func NewInvocationMetrics() *InvocationMetrics {
	return &InvocationMetrics{
		byTool: make(map[string]int64),
		byKind: make(map[string]int64),
	}
}

// RecordInvocation records one finished invocation. kind is ignored on success.
func (m *InvocationMetrics) RecordInvocation(tool string, success bool, kind string, duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.totalInvocations++
	m.duration += duration
	m.byTool[tool]++

	if !success {
		m.failedInvocations++
		m.byKind[kind]++
	}
}

// GetMetrics returns a snapshot of the current metrics
func (m *InvocationMetrics) GetMetrics() map[string]any {
	m.mu.RLock()
	defer m.mu.RUnlock()

	avg := 0.0

	if m.totalInvocations > 0 {
		avg = m.duration.Seconds() / float64(m.totalInvocations)
	}

	return map[string]any{
		"total_invocations":  m.totalInvocations,
		"failed_invocations": m.failedInvocations,
		"avg_duration":       avg,
		"by_tool":            copyCounts(m.byTool),
		"failures_by_kind":   copyCounts(m.byKind),
	}
}

func copyCounts(counts map[string]int64) map[string]int64 {
	out := make(map[string]int64, len(counts))

	for key, value := range counts {
		out[key] = value
	}

	return out
}
