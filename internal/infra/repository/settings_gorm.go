package repository

import (
	"context"
	"errors"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"gorm.io/gorm"
)

type settingsGormRepository struct {
	db *gorm.DB
}

// DI
func NewSettingsGormRepository(db *gorm.DB) repo.SettingsRepository {
	return &settingsGormRepository{db: db}
}

// 設定行を取得。無ければデフォルトで作る
func (r *settingsGormRepository) Get(ctx context.Context) (model.StoreSettings, error) {
	var s model.StoreSettings

	err := r.db.WithContext(ctx).Order("id asc").First(&s).Error
	if err == nil {
		return s, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return model.StoreSettings{}, err
	}

	s = model.DefaultStoreSettings()
	if err := r.db.WithContext(ctx).Create(&s).Error; err != nil {
		return model.StoreSettings{}, err
	}
	return s, nil
}

func (r *settingsGormRepository) Update(ctx context.Context, s model.StoreSettings) (model.StoreSettings, error) {
	current, err := r.Get(ctx)
	if err != nil {
		return model.StoreSettings{}, err
	}

	res := r.db.WithContext(ctx).
		Model(&model.StoreSettings{}).
		Where("id = ?", current.ID).
		Updates(map[string]interface{}{
			"store_name": s.StoreName,
			"address":    s.Address,
			"phone":      s.Phone,
			"email":      s.Email,
		})

	if res.Error != nil {
		return model.StoreSettings{}, res.Error
	}

	s.ID = current.ID
	return s, nil
}
