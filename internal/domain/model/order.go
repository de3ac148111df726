package model

import "time"

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "Pending"
	OrderStatusProcessing OrderStatus = "Processing"
	OrderStatusConfirmed  OrderStatus = "Confirmed"
	OrderStatusShipped    OrderStatus = "Shipped"
	OrderStatusDelivered  OrderStatus = "Delivered"
	OrderStatusCancelled  OrderStatus = "Cancelled"
)

// 終端ステータスからは遷移不可
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

func ValidOrderStatus(s string) bool {
	switch OrderStatus(s) {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusConfirmed,
		OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

func AllOrderStatuses() []OrderStatus {
	return []OrderStatus{
		OrderStatusPending,
		OrderStatusProcessing,
		OrderStatusConfirmed,
		OrderStatusShipped,
		OrderStatusDelivered,
		OrderStatusCancelled,
	}
}

// 注文時の住所スナップショット（住所帳とは独立）
type OrderAddress struct {
	AddressLine1 string `gorm:"type:varchar(255)" json:"address_line1"`
	AddressLine2 string `gorm:"type:varchar(255)" json:"address_line2"`
	City         string `gorm:"type:varchar(255)" json:"city"`
	State        string `gorm:"type:varchar(255)" json:"state"`
	PostalCode   string `gorm:"type:varchar(20)" json:"postal_code"`
	Country      string `gorm:"type:varchar(100)" json:"country"`
	Landmark     string `gorm:"type:varchar(255)" json:"landmark"`
}

// 金額は作成時に一度だけ計算して保存（以後再計算しない）
type Order struct {
	ID              int64        `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID          int64        `gorm:"not null;index" json:"user_id"`
	ShippingAddress OrderAddress `gorm:"embedded;embeddedPrefix:shipping_" json:"shipping_address"`
	BillingAddress  OrderAddress `gorm:"embedded;embeddedPrefix:billing_" json:"billing_address"`
	PaymentMethod   string       `gorm:"type:varchar(100);not null" json:"payment_method"`
	Subtotal        float64      `gorm:"not null" json:"subtotal"`
	TotalDiscount   float64      `gorm:"not null;default:0" json:"total_discount"`
	GSTAmount       float64      `gorm:"column:gst_amount;not null" json:"gst_amount"`
	ShippingCharge  float64      `gorm:"not null" json:"shipping_charge"`
	TotalAmount     float64      `gorm:"not null" json:"total_amount"`
	Status          OrderStatus  `gorm:"type:varchar(20);not null;index" json:"order_status"`

	// Confirmedで在庫を引いたか。キャンセル時の戻し判定に使う
	StockReserved bool `gorm:"not null;default:false" json:"-"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
