package storage

import (
	"context"
	"encoding/json"

	"restaurant-catalog/internal/domain"

	"github.com/segmentio/kafka-go"
)

type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

type KafkaPublisher struct {
	Writer MessageWriter
}

func NewKafkaPublisher(writer MessageWriter) *KafkaPublisher {
	return &KafkaPublisher{Writer: writer}
}

// PublishFilterEvent keys messages by session so one session's events stay ordered.
func (p *KafkaPublisher) PublishFilterEvent(ctx context.Context, event domain.FilterEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.Writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.SessionID),
		Value: payload,
	})
}

type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

var (
	_ MessageWriter = (*kafka.Writer)(nil)
	_ MessageReader = (*kafka.Reader)(nil)
)
