package repository

import (
	"context"

	"storefront/internal/domain/model"
)

// 住所(Address)を保存・取得する窓口
type AddressRepository interface {
	Create(ctx context.Context, address model.Address) (model.Address, error)
	ListByUserID(ctx context.Context, userID int64) ([]model.Address, error)
	FindByID(ctx context.Context, addressID int64) (model.Address, error)
	Update(ctx context.Context, address model.Address) error
	Delete(ctx context.Context, addressID int64) error
	IsOwnedByUser(ctx context.Context, addressID, userID int64) (bool, error)

	// デフォルトの切り替え。他の住所のデフォルトを必ず同時に外す
	SetDefault(ctx context.Context, userID, addressID int64) error

	FindDefaultByUserID(ctx context.Context, userID int64) (model.Address, error)

	// デフォルトが1つも無ければ最古の住所をデフォルトにする
	// （デフォルト住所を削除した後の繰り上げ）
	EnsureDefault(ctx context.Context, userID int64) error
}
