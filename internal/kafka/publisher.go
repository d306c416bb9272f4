// Пакет kafka — публикация замеров задержки операций каталога в Kafka.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/Gunvolt24/price_catalog/internal/ports"
	"github.com/Gunvolt24/price_catalog/pkg/metrics"
	"github.com/segmentio/kafka-go"
)

//go:generate mockgen -source=publisher.go -destination=./mocks/mock_writer.go -package=mocks

// Проверка, что Publisher удовлетворяет порту MetricsSink.
var _ ports.MetricsSink = (*Publisher)(nil)

// writer — минимальный контракт над kafka.Writer, чтобы подменять его моками в тестах.
type writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// LatencyMessage — тело сообщения в топике.
type LatencyMessage struct {
	Operation  string         `json:"operation"`
	DurationMs int64          `json:"duration_ms"`
	Context    map[string]any `json:"context,omitempty"`
	RecordedAt time.Time      `json:"recorded_at"`
}

// Publisher — MetricsSink поверх асинхронного kafka.Writer.
// Record только ставит сообщение в очередь writer'а; результат доставки приходит в onCompletion.
type Publisher struct {
	writer    writer
	topic     string
	log       ports.Logger
	now       func() time.Time
	closeOnce sync.Once
}

// NewPublisher — конструктор с настоящим kafka.Writer.
func NewPublisher(cfg *PublisherConfig, log ports.Logger) *Publisher {
	p := &Publisher{topic: cfg.Topic, log: log, now: time.Now}
	p.writer = cfg.Writer(p.onCompletion)
	return p
}

// Record — сериализует замер и отдаёт его writer'у.
func (p *Publisher) Record(ctx context.Context, sample ports.LatencySample) error {
	body, err := json.Marshal(LatencyMessage{
		Operation:  sample.Operation,
		DurationMs: sample.DurationMs,
		Context:    sample.Context,
		RecordedAt: p.now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("marshal latency sample %s: %w", sample.Operation, err)
	}

	if err := p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(sample.Operation),
		Value: body,
	}); err != nil {
		metrics.LatencySamplesFailed.WithLabelValues(p.topic).Inc()
		return fmt.Errorf("enqueue latency sample %s: %w", sample.Operation, err)
	}
	return nil
}

// onCompletion — итог асинхронной отправки пачки.
func (p *Publisher) onCompletion(messages []kafka.Message, err error) {
	if err != nil {
		metrics.LatencySamplesFailed.WithLabelValues(p.topic).Add(float64(len(messages)))
		p.log.Warnf(context.Background(), "kafka publish failed topic=%s messages=%d: %v", p.topic, len(messages), err)
		return
	}
	metrics.LatencySamplesPublished.WithLabelValues(p.topic).Add(float64(len(messages)))
}

// Close — сбрасывает буфер writer'а и закрывает соединения. Вызывается при остановке приложения.
func (p *Publisher) Close() (retErr error) {
	p.closeOnce.Do(func() {
		retErr = p.writer.Close()
	})
	return retErr
}
