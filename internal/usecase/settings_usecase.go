package usecase

import (
	"context"
	"net/http"
	"strings"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

type SettingsUsecase struct {
	settingsRepo repo.SettingsRepository
}

func NewSettingsUsecase(settingsRepo repo.SettingsRepository) *SettingsUsecase {
	return &SettingsUsecase{settingsRepo: settingsRepo}
}

type SettingsInput struct {
	StoreName string `json:"store_name"`
	Address   string `json:"address"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
}

func (u *SettingsUsecase) Get(ctx context.Context) (model.StoreSettings, error) {
	s, err := u.settingsRepo.Get(ctx)
	if err != nil {
		return model.StoreSettings{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return s, nil
}

func (u *SettingsUsecase) Update(ctx context.Context, in SettingsInput) (model.StoreSettings, error) {
	if strings.TrimSpace(in.StoreName) == "" {
		return model.StoreSettings{}, NewHTTPError(http.StatusBadRequest, "store_name is required")
	}

	s, err := u.settingsRepo.Update(ctx, model.StoreSettings{
		StoreName: strings.TrimSpace(in.StoreName),
		Address:   in.Address,
		Phone:     in.Phone,
		Email:     in.Email,
	})
	if err != nil {
		return model.StoreSettings{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return s, nil
}
