package model

import "time"

const (
	EventNewOrder           = "new_order"
	EventOrderStatusUpdated = "order_status_updated"
)

// 通知イベントのアウトボックス。業務トランザクションの中で行を積み、
// 配信は別のポーラーが行う。配信失敗は本処理に影響しない。
type OutboxEvent struct {
	ID          string     `gorm:"type:varchar(36);primaryKey" json:"id"`
	EventName   string     `gorm:"type:varchar(100);not null" json:"event_name"`
	Payload     []byte     `gorm:"type:jsonb;not null" json:"payload"`
	CreatedAt   time.Time  `gorm:"not null;autoCreateTime;index" json:"created_at"`
	PublishedAt *time.Time `gorm:"index" json:"published_at,omitempty"`
}
