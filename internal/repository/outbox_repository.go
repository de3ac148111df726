package repository

import (
	"context"

	"storefront/internal/domain/model"
)

// 通知イベントのアウトボックス。Createは業務トランザクションの中で呼ぶ。
// ListUnpublished/MarkPublishedはポーラー専用。
type OutboxRepository interface {
	Create(ctx context.Context, event model.OutboxEvent) error
	ListUnpublished(ctx context.Context, limit int) ([]model.OutboxEvent, error)
	MarkPublished(ctx context.Context, eventID string) error
}
