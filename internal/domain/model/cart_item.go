package model

import "time"

// カートの明細
// 追加時点の価格・表示名・画像を必ずスナップショットとして保存。
// quantityは常に正。0以下になる更新は行を削除する。
type CartItem struct {
	ID              int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	CartID          int64     `gorm:"not null;index" json:"cart_id"`
	ProductID       int64     `gorm:"not null;index" json:"product_id"`
	Name            string    `gorm:"type:varchar(255);not null" json:"name"`
	ImageURL        string    `gorm:"type:varchar(512)" json:"image_url"`
	Price           float64   `gorm:"not null" json:"price"`
	Quantity        int64     `gorm:"not null" json:"quantity"`
	DiscountPercent float64   `gorm:"not null;default:0" json:"discount"`
	CreatedAt       time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
