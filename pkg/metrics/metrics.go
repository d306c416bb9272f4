package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Задержка операций шлюза каталога (мс) — пишется metricsink.Prometheus.
var OperationDuration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "catalog_operation_duration_ms",
		Help:    "Caller-observed latency of catalog read operations, milliseconds",
		Buckets: []float64{1, 2, 5, 10, 25, 50, 100, 250, 500, 1000, 2500},
	},
	[]string{"operation", "outcome"}, // outcome: hit|miss|error
)

var (
	CacheOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_operations_total",
			Help: "Cache operations",
		},
		[]string{"backend", "op"}, // op: hit|miss|evicted|expired|error
	)
	CacheSize = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "cache_size",
			Help: "Number of items currently in the in-process cache",
		},
	)
)

var (
	LatencySamplesPublished = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "latency_samples_published_total",
			Help: "Latency samples delivered to Kafka",
		},
		[]string{"topic"},
	)
	LatencySamplesFailed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "latency_samples_failed_total",
			Help: "Latency samples that could not be delivered to Kafka",
		},
		[]string{"topic"},
	)
)

var registerOnce sync.Once

// MustRegister — регистрирует метрики в глобальном реестре; повторный вызов безопасен.
func MustRegister() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			OperationDuration,
			CacheOps, CacheSize,
			LatencySamplesPublished, LatencySamplesFailed,
		)
	})
}
