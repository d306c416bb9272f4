package kafka

import (
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
)

// PublisherConfig — параметры асинхронного writer'а замеров задержки.
type PublisherConfig struct {
	Brokers      []string
	Topic        string
	RequiredAcks string // none|one|all, по умолчанию one
	BatchTimeout time.Duration
	WriteTimeout time.Duration
}

// Writer — асинхронный kafka.Writer; completion вызывается на каждую отправленную пачку.
// Ключ сообщения — имя операции, поэтому замеры одной операции попадают в одну партицию.
func (c *PublisherConfig) Writer(completion func(messages []kafka.Message, err error)) *kafka.Writer {
	bt := c.BatchTimeout
	if bt <= 0 {
		bt = 100 * time.Millisecond
	}
	wt := c.WriteTimeout
	if wt <= 0 {
		wt = 5 * time.Second
	}

	return &kafka.Writer{
		Addr:                   kafka.TCP(c.Brokers...),
		Topic:                  c.Topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           c.requiredAcks(),
		BatchTimeout:           bt,
		WriteTimeout:           wt,
		Async:                  true,
		AllowAutoTopicCreation: true,
		Completion:             completion,
	}
}

func (c *PublisherConfig) requiredAcks() kafka.RequiredAcks {
	switch strings.ToLower(strings.TrimSpace(c.RequiredAcks)) {
	case "none":
		return kafka.RequireNone
	case "all":
		return kafka.RequireAll
	default:
		return kafka.RequireOne
	}
}
