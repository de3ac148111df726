package model

import "time"

// 配送先住所。デフォルトは1ユーザーにつき最大1件
// （切り替えはAddressRepository.SetDefaultで必ず一括で行う）。
type Address struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID       int64     `gorm:"not null;index" json:"user_id"`
	AddressLine1 string    `gorm:"type:varchar(255);not null" json:"address_line1"`
	AddressLine2 string    `gorm:"type:varchar(255)" json:"address_line2"`
	City         string    `gorm:"type:varchar(255);not null" json:"city"`
	State        string    `gorm:"type:varchar(255)" json:"state"`
	PostalCode   string    `gorm:"type:varchar(20);not null" json:"postal_code"`
	Country      string    `gorm:"type:varchar(100)" json:"country"`
	Landmark     string    `gorm:"type:varchar(255)" json:"landmark"`
	IsDefault    bool      `gorm:"not null;default:false" json:"is_default"`
	CreatedAt    time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (a Address) ToOrderAddress() OrderAddress {
	return OrderAddress{
		AddressLine1: a.AddressLine1,
		AddressLine2: a.AddressLine2,
		City:         a.City,
		State:        a.State,
		PostalCode:   a.PostalCode,
		Country:      a.Country,
		Landmark:     a.Landmark,
	}
}
