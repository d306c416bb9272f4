// Пакет telemetry — OTLP-трассировка сервиса каталога и спаны операций шлюза.
package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
	"go.opentelemetry.io/otel/trace"
)

// TracerName — имя инструментирующей библиотеки для спанов шлюза.
const TracerName = "github.com/Gunvolt24/price_catalog"

const defaultEndpoint = "localhost:4318"

// TracingOptions — параметры экспорта.
type TracingOptions struct {
	ServiceName string
	Endpoint    string  // host:port OTLP/HTTP, без схемы
	SampleRatio float64 // доля трасс [0..1]
}

// SetupTracing — OTLP/HTTP экспорт, семплинг по доле и глобальные пропагаторы.
// Возвращает Shutdown провайдера для graceful stop.
func SetupTracing(ctx context.Context, opts TracingOptions) (func(context.Context) error, error) {
	endpoint := opts.Endpoint
	if endpoint == "" {
		endpoint = defaultEndpoint
	}

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpoint(endpoint),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		return nil, err
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(ClampRatio(opts.SampleRatio)))),
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(opts.ServiceName),
			attribute.String("telemetry.sdk", "opentelemetry"),
		)),
	)

	otel.SetTracerProvider(provider)
	otel.SetTextMapPropagator(
		propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{}, propagation.Baggage{},
		),
	)

	return provider.Shutdown, nil
}

// StartSpan — внутренний спан операции от глобального провайдера (noop, если трассировка выключена).
func StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return otel.Tracer(TracerName).Start(ctx, name,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attrs...),
	)
}

// ClampRatio — доля семплинга в границах [0..1].
func ClampRatio(r float64) float64 {
	switch {
	case r < 0:
		return 0
	case r > 1:
		return 1
	default:
		return r
	}
}
