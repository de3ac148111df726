package model

import (
	"time"

	"gorm.io/gorm"
)

type Product struct {
	ID              int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	Name            string         `gorm:"type:varchar(255);not null" json:"name"`
	Description     string         `gorm:"type:text" json:"description"`
	OriginalPrice   float64        `gorm:"not null" json:"original_price"`
	DiscountPrice   float64        `gorm:"not null;default:0" json:"discount_price"`
	DiscountPercent float64        `gorm:"not null;default:0" json:"discount"`
	CategoryID      int64          `gorm:"index" json:"category_id"`
	SubCategory     string         `gorm:"type:varchar(255)" json:"sub_category"`
	ImageURL        string         `gorm:"type:varchar(512)" json:"image_url"`
	Quantity        int64          `gorm:"not null;default:0" json:"quantity"`
	Rating          float64        `gorm:"not null;default:0" json:"rating"`
	Likes           int64          `gorm:"not null;default:0" json:"likes"`
	Weight          string         `gorm:"type:varchar(50)" json:"weight"`
	CreatedAt       time.Time      `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"not null;autoUpdateTime" json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

// カートに積む単価。割引価格があればそちらを使う
func (p Product) EffectivePrice() float64 {
	if p.DiscountPrice > 0 {
		return p.DiscountPrice
	}
	return p.OriginalPrice
}
