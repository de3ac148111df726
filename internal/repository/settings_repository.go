package repository

import (
	"context"

	"storefront/internal/domain/model"
)

type SettingsRepository interface {
	// 無ければデフォルト値で作って返す
	Get(ctx context.Context) (model.StoreSettings, error)
	Update(ctx context.Context, s model.StoreSettings) (model.StoreSettings, error)
}
