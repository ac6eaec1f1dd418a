package kafka

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/iamcryptofennec/simple-store/internal/domain"
)

type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
}

func NewWriter(brokers []string, topic string) *kafkago.Writer {
	return &kafkago.Writer{
		Addr:         kafkago.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafkago.Hash{},
		BatchTimeout: 10 * time.Millisecond,
		BatchSize:    100,
	}
}

// PublishProduct writes p keyed by its id, so changes to one product stay
// on one partition.
func PublishProduct(ctx context.Context, w Writer, p domain.Product) error {
	value, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return w.WriteMessages(ctx, kafkago.Message{
		Key:   []byte(strconv.Itoa(p.ID)),
		Value: value,
		Time:  time.Now(),
	})
}
