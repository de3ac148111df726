package notify

import (
	"context"

	"storefront/internal/domain/model"

	"github.com/segmentio/kafka-go"
)

// Publisher は1イベントを外部チャネルへ送る。
// 失敗してもよい（未配信のままポーラーが次回やり直す）。
type Publisher interface {
	Publish(ctx context.Context, event model.OutboxEvent) error
}

type KafkaPublisher struct {
	writer *kafka.Writer
}

func NewKafkaPublisher(topic string, brokers ...string) *KafkaPublisher {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
	return &KafkaPublisher{writer: w}
}

func (p *KafkaPublisher) Publish(ctx context.Context, event model.OutboxEvent) error {
	msg := kafka.Message{
		Key:   []byte(event.ID),
		Value: event.Payload, // DBに積んだ時点のJSONをそのまま送る
		Headers: []kafka.Header{
			{Key: "event_name", Value: []byte(event.EventName)},
		},
	}
	return p.writer.WriteMessages(ctx, msg)
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
