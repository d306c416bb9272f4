//go:build integration

package kafka_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"

	ikafka "github.com/Gunvolt24/price_catalog/internal/kafka"
	"github.com/Gunvolt24/price_catalog/internal/ports"
	"github.com/Gunvolt24/price_catalog/internal/testutil"
	"github.com/Gunvolt24/price_catalog/pkg/logger"
)

// Замер, отданный Publisher'у, читается из топика
func TestKafka_Publisher_Delivers_TC(t *testing.T) {
	// длинный контекст только на старт контейнера
	ctxStart, cancelStart := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancelStart()

	kf, stopKF, err := testutil.StartKafkaTC(ctxStart, "latency-itc")
	require.NoError(t, err)
	t.Cleanup(func() { _ = stopKF(context.Background()) })

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	topic, group := testutil.LatencyTopic(kf.BaseTopic, t.Name())
	require.NoError(t, testutil.EnsureTopic(ctx, kf.Brokers[0], topic))

	logg, cleanup, err := logger.NewZapLogger(false)
	require.NoError(t, err)
	t.Cleanup(func() { _ = cleanup() })

	pub := ikafka.NewPublisher(&ikafka.PublisherConfig{
		Brokers:      kf.Brokers,
		Topic:        topic,
		RequiredAcks: "all",
		BatchTimeout: 10 * time.Millisecond,
	}, logg)

	require.NoError(t, pub.Record(ctx, ports.LatencySample{
		Operation:  "categoryProducts",
		DurationMs: 17,
		Context:    map[string]any{"category_id": 10, "outcome": "miss"},
	}))
	// Close дожидается отправки буфера
	require.NoError(t, pub.Close())

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     kf.Brokers,
		Topic:       topic,
		GroupID:     group,
		StartOffset: kafka.FirstOffset,
	})
	t.Cleanup(func() { _ = reader.Close() })

	msg, err := reader.ReadMessage(ctx)
	require.NoError(t, err)
	require.Equal(t, "categoryProducts", string(msg.Key))

	var got ikafka.LatencyMessage
	require.NoError(t, json.Unmarshal(msg.Value, &got))
	require.Equal(t, int64(17), got.DurationMs)
	require.Equal(t, "miss", got.Context["outcome"])
	require.False(t, got.RecordedAt.IsZero())
}
