// Пакет metricsink — приёмники замеров задержки: Prometheus-гистограмма и веер из нескольких приёмников.
package metricsink

import (
	"context"
	"errors"
	"fmt"

	"github.com/Gunvolt24/price_catalog/internal/ports"
	"github.com/Gunvolt24/price_catalog/pkg/metrics"
)

var (
	_ ports.MetricsSink = Prometheus{}
	_ ports.MetricsSink = Multi(nil)
)

// Prometheus — пишет замер в metrics.OperationDuration.
type Prometheus struct{}

// NewPrometheus — регистрирует метрики (идемпотентно) и возвращает приёмник.
func NewPrometheus() Prometheus {
	metrics.MustRegister()
	return Prometheus{}
}

func (Prometheus) Record(_ context.Context, sample ports.LatencySample) error {
	outcome, _ := sample.Context[ports.OutcomeKey].(string)
	if outcome == "" {
		outcome = "unknown"
	}
	metrics.OperationDuration.WithLabelValues(sample.Operation, outcome).Observe(float64(sample.DurationMs))
	return nil
}

// Multi — отдаёт замер каждому приёмнику; ошибки собираются через errors.Join.
type Multi []ports.MetricsSink

func (m Multi) Record(ctx context.Context, sample ports.LatencySample) error {
	var errs []error
	for i, sink := range m {
		if sink == nil {
			continue
		}
		if err := sink.Record(ctx, sample); err != nil {
			errs = append(errs, fmt.Errorf("sink #%d: %w", i, err))
		}
	}
	return errors.Join(errs...)
}

// Nop — приёмник, который ничего не делает.
type Nop struct{}

func (Nop) Record(context.Context, ports.LatencySample) error { return nil }
