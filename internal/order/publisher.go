package order

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"

	"github.com/SAILENDHRAB21/PriceBite/internal/domain"
)

// KafkaPublisher emits order status transitions to the order-status topic
// for downstream consumers (notifications, analytics).
type KafkaPublisher struct {
	writer *kafka.Writer
}

func NewKafkaPublisher(brokers ...string) *KafkaPublisher {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  "order-status",
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
	return &KafkaPublisher{writer: w}
}

func (p *KafkaPublisher) PublishStatusChange(ctx context.Context, o *domain.Order) error {
	payload, err := json.Marshal(map[string]interface{}{
		"order_id":    o.OrderID,
		"user_id":     o.UserID,
		"status":      o.Status,
		"total":       o.Total,
		"occurred_at": o.UpdatedAt,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal status event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(o.OrderID), // order_id for ordering
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte("order_status_changed")},
		},
	}
	return p.writer.WriteMessages(ctx, msg)
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
