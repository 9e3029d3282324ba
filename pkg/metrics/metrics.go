package metrics

import (
	"context"
	"fmt"

	"github.com/haguru/bookstore/internal/interfaces"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

// Metrics is a flexible Prometheus metrics collector.
type Metrics struct {
	Registry      *prometheus.Registry
	namespace     string
	counters      map[string]prometheus.Counter
	counterVecs   map[string]*prometheus.CounterVec
	histograms    map[string]prometheus.Histogram
	histogramVecs map[string]*prometheus.HistogramVec
}

// NewMetrics creates a new flexible Metrics instance.
// Every registered metric is prefixed with serviceName.
func NewMetrics(serviceName string) interfaces.Metrics {
	registry := prometheus.NewRegistry()
	return &Metrics{
		Registry:      registry,
		namespace:     serviceName,
		counters:      make(map[string]prometheus.Counter),
		histograms:    make(map[string]prometheus.Histogram),
		counterVecs:   make(map[string]*prometheus.CounterVec),
		histogramVecs: make(map[string]*prometheus.HistogramVec),
	}
}

// GetRegistry returns the Prometheus registry.
func (m *Metrics) GetRegistry() *prometheus.Registry {
	return m.Registry
}

// RegisterCounter registers a new counter metric.
func (m *Metrics) RegisterCounter(name, help string) {
	counter := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      name,
		Help:      help,
	})
	m.Registry.MustRegister(counter)
	m.counters[name] = counter
}

// RegisterCounterVec registers a new counter metric with labels.
func (m *Metrics) RegisterCounterVec(name, help string, labels []string) {
	counterVec := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      name,
		Help:      help,
	}, labels)
	m.Registry.MustRegister(counterVec)
	m.counterVecs[name] = counterVec
}

// RegisterHistogram registers a new histogram metric.
func (m *Metrics) RegisterHistogram(name, help string, buckets []float64) {
	histogram := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Name:      name,
		Help:      help,
		Buckets:   buckets,
	})
	m.Registry.MustRegister(histogram)
	m.histograms[name] = histogram
}

// RegisterHistogramVec registers a new histogram metric with labels.
func (m *Metrics) RegisterHistogramVec(name, help string, buckets []float64, labels []string) {
	histogramVec := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Name:      name,
		Help:      help,
		Buckets:   buckets,
	}, labels)
	m.Registry.MustRegister(histogramVec)
	m.histogramVecs[name] = histogramVec
}

// IncCounter increments a counter by 1.
func (m *Metrics) IncCounter(name string) {
	if counter, ok := m.counters[name]; ok {
		counter.Inc()
	}
}

// IncCounterVec increments a counter in a CounterVec with labels.
func (m *Metrics) IncCounterVec(name string, labels ...string) {
	if counterVec, ok := m.counterVecs[name]; ok {
		counterVec.WithLabelValues(labels...).Inc()
	}
}

// ObserveHistogram observes a value in a histogram.
func (m *Metrics) ObserveHistogram(name string, value float64) {
	if histogram, ok := m.histograms[name]; ok {
		histogram.Observe(value)
	}
}

// ObserveHistogramVec observes a value in a histogram with labels.
func (m *Metrics) ObserveHistogramVec(name string, value float64, labels ...string) {
	if histogramVec, ok := m.histogramVecs[name]; ok {
		histogramVec.WithLabelValues(labels...).Observe(value)
	}
}

// Push sends everything in the registry to a Prometheus Pushgateway under job.
// An empty url disables the push.
func (m *Metrics) Push(ctx context.Context, url, job string) error {
	if url == "" {
		return nil
	}
	if err := push.New(url, job).Gatherer(m.Registry).PushContext(ctx); err != nil {
		return fmt.Errorf("failed to push metrics to %s: %w", url, err)
	}
	return nil
}
