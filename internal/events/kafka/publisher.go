package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/corebank/ledger-service/internal/events"
	"github.com/segmentio/kafka-go"
)

const transferCompletedTopic = "transfer_completed"

type Publisher struct {
	writer *kafka.Writer
}

func NewPublisher(brokers []string) *Publisher {
	return &Publisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    transferCompletedTopic,
			Balancer: &kafka.LeastBytes{},
		},
	}
}

func (p *Publisher) PublishTransferCompleted(ctx context.Context, event events.TransferCompleted) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal transfer completed event: %w", err)
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.TransferID),
		Value: data,
	})
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}
