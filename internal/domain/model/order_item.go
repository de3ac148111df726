package model

import "time"

// 注文明細。作成時のカート明細をそのままコピーしたスナップショットで、
// 以後商品側が変わっても書き換えない。
type OrderItem struct {
	ID              int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID         int64     `gorm:"not null;index" json:"order_id"`
	ProductID       int64     `gorm:"not null;index" json:"product_id"`
	Name            string    `gorm:"type:varchar(255);not null" json:"name"`
	ImageURL        string    `gorm:"type:varchar(512)" json:"image_url"`
	Price           float64   `gorm:"not null" json:"price"`
	Quantity        int64     `gorm:"not null" json:"quantity"`
	DiscountPercent float64   `gorm:"not null;default:0" json:"discount"`
	CreatedAt       time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
