package notify

import (
	"context"
	"time"

	repo "storefront/internal/repository"

	"go.uber.org/zap"
)

// OutboxPoller は未配信のアウトボックス行を定期的に拾って配信する。
// 配信失敗はログに残すだけで、行は未配信のまま次のtickで再試行される。
// 本処理（注文の書き込み）には構造上影響しない。
type OutboxPoller struct {
	tick      time.Duration
	batchSize int
	outbox    repo.OutboxRepository
	publisher Publisher
	log       *zap.Logger
}

func NewOutboxPoller(outbox repo.OutboxRepository, publisher Publisher, log *zap.Logger) *OutboxPoller {
	return &OutboxPoller{
		tick:      time.Second,
		batchSize: 100,
		outbox:    outbox,
		publisher: publisher,
		log:       log,
	}
}

func (p *OutboxPoller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.tick)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			p.processUnpublished(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (p *OutboxPoller) processUnpublished(ctx context.Context) {
	events, err := p.outbox.ListUnpublished(ctx, p.batchSize)
	if err != nil {
		p.log.Error("failed to fetch outbox events", zap.Error(err))
		return
	}

	for _, event := range events {
		if err := p.publisher.Publish(ctx, event); err != nil {
			p.log.Error("failed to publish event",
				zap.String("event_id", event.ID),
				zap.String("event_name", event.EventName),
				zap.Error(err))
			continue
		}

		if err := p.outbox.MarkPublished(ctx, event.ID); err != nil {
			p.log.Error("failed to mark event as published",
				zap.String("event_id", event.ID),
				zap.Error(err))
			continue
		}
	}
}
