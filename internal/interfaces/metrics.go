package interfaces

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
)

type Metrics interface {
	GetRegistry() *prometheus.Registry
	IncCounter(name string)
	ObserveHistogram(name string, value float64)
	ObserveHistogramVec(name string, value float64, labels ...string)
	IncCounterVec(name string, labels ...string)
	// RegisterCounter registers a new counter metric.
	RegisterCounter(name, help string)
	// RegisterCounterVec registers a new counter metric with labels.
	RegisterCounterVec(name, help string, labels []string)
	// RegisterHistogram registers a new histogram metric.
	RegisterHistogram(name, help string, buckets []float64)
	// RegisterHistogramVec registers a new histogram metric with labels.
	RegisterHistogramVec(name, help string, buckets []float64, labels []string)
	// Push exports the registry to a Pushgateway. An empty url is a no-op.
	Push(ctx context.Context, url, job string) error
}
