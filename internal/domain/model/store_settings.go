package model

import "time"

// ストア設定は1行だけ。無ければデフォルト値で作る
type StoreSettings struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	StoreName string    `gorm:"type:varchar(255);not null" json:"store_name"`
	Address   string    `gorm:"type:varchar(512)" json:"address"`
	Phone     string    `gorm:"type:varchar(30)" json:"phone"`
	Email     string    `gorm:"type:varchar(255)" json:"email"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func DefaultStoreSettings() StoreSettings {
	return StoreSettings{
		StoreName: "D-Mart",
		Address:   "123 Main Street, Anytown, USA",
		Phone:     "123-456-7890",
		Email:     "support@dmart.com",
	}
}
