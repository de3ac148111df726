package model

import "time"

// 在庫変動の理由
const (
	AdjustmentReasonOrderConfirmed = "ORDER_CONFIRMED"
	AdjustmentReasonOrderCancelled = "ORDER_CANCELLED"
	AdjustmentReasonAdminSetStock  = "ADMIN_SET_STOCK"
)

// 在庫調整の履歴。注文起因ならOrderID、管理者操作ならAdminUserIDが入る
type InventoryAdjustment struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID   int64     `gorm:"not null;index" json:"product_id"`
	Delta       int64     `gorm:"not null" json:"delta"`
	Reason      string    `gorm:"type:varchar(255);not null" json:"reason"`
	OrderID     *int64    `gorm:"index" json:"order_id,omitempty"`
	AdminUserID *int64    `gorm:"index" json:"admin_user_id,omitempty"`
	CreatedAt   time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
