package repository

import (
	"context"
	"time"

	"storefront/internal/domain/model"
)

type AdminOrderListFilter struct {
	Page   int
	Limit  int
	Status string
	UserID *int64
	From   *time.Time
	To     *time.Time
}

type OrderRepository interface {
	FindByID(ctx context.Context, orderID int64) (model.Order, error)
	ListByUserID(ctx context.Context, userID int64, page int, limit int) ([]model.Order, int64, error)
	Create(ctx context.Context, order model.Order) (int64, error)

	// 読んだ時点のステータスからの条件付き更新。別の書き込みが先行して
	// いた場合はErrConflictを返す（二重処理防止）。
	UpdateStatusFrom(ctx context.Context, orderID int64, from model.OrderStatus, to model.OrderStatus) error

	// Confirmedで在庫を引いたことを記録する
	SetStockReserved(ctx context.Context, orderID int64, reserved bool) error

	// 管理者用の注文一覧
	ListAdmin(ctx context.Context, f AdminOrderListFilter) ([]model.Order, int64, error)

	// ステータスごとの件数（管理画面用）
	CountByStatus(ctx context.Context) (map[model.OrderStatus]int64, error)
}
