package usecase

import (
	"context"
	"errors"
	"net/http"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

type WishlistUsecase struct {
	wishlistRepo repo.WishlistRepository
	productRepo  repo.ProductRepository
}

func NewWishlistUsecase(wishlistRepo repo.WishlistRepository, productRepo repo.ProductRepository) *WishlistUsecase {
	return &WishlistUsecase{wishlistRepo: wishlistRepo, productRepo: productRepo}
}

type WishlistEntry struct {
	ProductID int64         `json:"product_id"`
	Product   model.Product `json:"product"`
}

func (u *WishlistUsecase) List(ctx context.Context, userID int64) ([]WishlistEntry, error) {
	if userID <= 0 {
		return nil, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	items, err := u.wishlistRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	out := make([]WishlistEntry, 0, len(items))
	for _, it := range items {
		entry := WishlistEntry{ProductID: it.ProductID}

		//商品が消えていてもエントリ自体は返す
		p, err := u.productRepo.FindByID(ctx, it.ProductID)
		if err == nil {
			entry.Product = p
		} else if !errors.Is(err, repo.ErrNotFound) {
			return nil, NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = append(out, entry)
	}
	return out, nil
}

// Add は重複追加を400にする
func (u *WishlistUsecase) Add(ctx context.Context, userID int64, productID int64) error {
	if userID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if productID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}

	if _, err := u.productRepo.FindByID(ctx, productID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "product not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	exists, err := u.wishlistRepo.Exists(ctx, userID, productID)
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if exists {
		return NewHTTPError(http.StatusBadRequest, "product already in wishlist")
	}

	if err := u.wishlistRepo.Add(ctx, model.WishlistItem{UserID: userID, ProductID: productID}); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func (u *WishlistUsecase) Remove(ctx context.Context, userID int64, productID int64) error {
	if userID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if productID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}

	err := u.wishlistRepo.Remove(ctx, userID, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}
