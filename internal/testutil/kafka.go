//go:build integration

package testutil

import (
	"context"
	"errors"
	"fmt"
	"net"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
)

var reTopicUnsafe = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// LatencyTopic — уникальные топик замеров и группа читателя для одного теста.
// Пример: base="catalog-latency", test="TestX/sub" → "catalog-latency-TestX-sub-lx3k9q...".
func LatencyTopic(base, testName string) (topic, group string) {
	suffix := strconv.FormatInt(time.Now().UnixNano(), 36)
	topic = fmt.Sprintf("%s-%s-%s", base, reTopicUnsafe.ReplaceAllString(testName, "-"), suffix)
	return topic, topic + "-reader"
}

// EnsureTopic — создаёт топик с одной партицией через контроллер кластера
// (уже существующий — не ошибка) и ждёт, пока партиция появится в метаданных.
// broker — "host:port" или "PLAINTEXT://host:port"; из списка берётся первый.
func EnsureTopic(ctx context.Context, broker, topic string) error {
	addr := bootstrapAddr(broker)
	var dialer kafka.Dialer

	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("dial %s: %w", addr, err)
	}
	defer conn.Close()

	ctrl, err := conn.Controller()
	if err != nil {
		return fmt.Errorf("controller: %w", err)
	}
	admin, err := dialer.DialContext(ctx, "tcp", net.JoinHostPort(ctrl.Host, strconv.Itoa(ctrl.Port)))
	if err != nil {
		return fmt.Errorf("dial controller: %w", err)
	}
	defer admin.Close()

	err = admin.CreateTopics(kafka.TopicConfig{Topic: topic, NumPartitions: 1, ReplicationFactor: 1})
	if err != nil && !errors.Is(err, kafka.TopicAlreadyExists) {
		return fmt.Errorf("create topic %q: %w", topic, err)
	}

	return waitPartitions(ctx, &dialer, addr, topic)
}

// bootstrapAddr — первый адрес bootstrap-строки без схемы.
func bootstrapAddr(raw string) string {
	first, _, _ := strings.Cut(raw, ",")
	first = strings.TrimSpace(first)
	if _, rest, ok := strings.Cut(first, "://"); ok {
		return rest
	}
	return first
}

func waitPartitions(ctx context.Context, dialer *kafka.Dialer, addr, topic string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tick := time.NewTicker(200 * time.Millisecond)
	defer tick.Stop()

	var lastErr error
	for {
		partitions, err := dialer.LookupPartitions(ctx, "tcp", addr, topic)
		if err == nil && len(partitions) > 0 {
			return nil
		}
		lastErr = err

		select {
		case <-ctx.Done():
			if lastErr != nil {
				return fmt.Errorf("topic %q not ready: %w", topic, lastErr)
			}
			return fmt.Errorf("topic %q not ready: %w", topic, ctx.Err())
		case <-tick.C:
		}
	}
}
