// Package metrics provides metrics implementations for AgriAssist
package metrics

import (
	"sort"
	"strings"
	"sync"

	"github.com/hemanthcodecrit50/agriAssist-sub000/pkg/interfaces"
)

// NoOpMetrics is a no-operation metrics implementation
type NoOpMetrics struct{}

// Counter increments a counter metric
func (m *NoOpMetrics) Counter(name string, value float64, labels map[string]string) {}

// Gauge sets a gauge metric
func (m *NoOpMetrics) Gauge(name string, value float64, labels map[string]string) {}

// Timer records timing metrics in seconds
func (m *NoOpMetrics) Timer(name string, seconds float64, labels map[string]string) {}

// InMemoryMetrics accumulates metrics in process memory. Suitable for the
// single-process deployments AgriAssist targets; values are readable back
// for inspection and tests.
type InMemoryMetrics struct {
	mu       sync.RWMutex
	counters map[string]float64
	gauges   map[string]float64
	timers   map[string][]float64
}

// NewInMemoryMetrics creates an in-memory metrics collector
func NewInMemoryMetrics() *InMemoryMetrics {
	return &InMemoryMetrics{
		counters: make(map[string]float64),
		gauges:   make(map[string]float64),
		timers:   make(map[string][]float64),
	}
}

// Counter increments a counter metric
func (m *InMemoryMetrics) Counter(name string, value float64, labels map[string]string) {
	key := metricKey(name, labels)
	m.mu.Lock()
	m.counters[key] += value
	m.mu.Unlock()
}

// Gauge sets a gauge metric
func (m *InMemoryMetrics) Gauge(name string, value float64, labels map[string]string) {
	key := metricKey(name, labels)
	m.mu.Lock()
	m.gauges[key] = value
	m.mu.Unlock()
}

// Timer records timing metrics in seconds
func (m *InMemoryMetrics) Timer(name string, seconds float64, labels map[string]string) {
	key := metricKey(name, labels)
	m.mu.Lock()
	m.timers[key] = append(m.timers[key], seconds)
	m.mu.Unlock()
}

// CounterValue returns the accumulated counter value for name+labels
func (m *InMemoryMetrics) CounterValue(name string, labels map[string]string) float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.counters[metricKey(name, labels)]
}

// GaugeValue returns the last gauge value for name+labels
func (m *InMemoryMetrics) GaugeValue(name string, labels map[string]string) float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.gauges[metricKey(name, labels)]
}

// TimerCount returns how many observations a timer holds
func (m *InMemoryMetrics) TimerCount(name string, labels map[string]string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.timers[metricKey(name, labels)])
}

// metricKey renders name plus sorted labels into a stable map key
func metricKey(name string, labels map[string]string) string {
	if len(labels) == 0 {
		return name
	}
	keys := make([]string, 0, len(labels))
	for k := range labels {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	sb.WriteString(name)
	for _, k := range keys {
		sb.WriteByte('{')
		sb.WriteString(k)
		sb.WriteByte('=')
		sb.WriteString(labels[k])
		sb.WriteByte('}')
	}
	return sb.String()
}

var _ interfaces.Metrics = (*NoOpMetrics)(nil)
var _ interfaces.Metrics = (*InMemoryMetrics)(nil)

// NewNoOpMetrics creates a new no-op metrics implementation
func NewNoOpMetrics() interfaces.Metrics {
	return &NoOpMetrics{}
}
