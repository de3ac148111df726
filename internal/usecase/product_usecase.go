package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

type ProductUsecase struct {
	productRepo repo.ProductRepository
	tx          repo.TransactionManager
}

// DI
func NewProductUsecase(
	productRepo repo.ProductRepository,
	tx repo.TransactionManager,
) *ProductUsecase {
	return &ProductUsecase{
		productRepo: productRepo,
		tx:          tx,
	}
}

// GET /productsの入力DTO
type ListProductsInput struct {
	Page        int
	Limit       int
	Q           string
	CategoryID  *int64
	SubCategory string
	MinPrice    *float64
	MaxPrice    *float64
	Sort        string
}

type ProductListOutput struct {
	Products   []model.Product `json:"products"`
	Total      int64           `json:"total"`
	Page       int             `json:"page"`
	TotalPages int64           `json:"total_pages"`
}

func (u *ProductUsecase) List(ctx context.Context, in ListProductsInput) (ProductListOutput, error) {
	if in.Page <= 0 {
		in.Page = 1
	}
	if in.Limit <= 0 || in.Limit > 100 {
		in.Limit = 20
	}

	products, total, err := u.productRepo.ListPublic(ctx, repo.ProductListQuery{
		Page:        in.Page,
		Limit:       in.Limit,
		Q:           in.Q,
		CategoryID:  in.CategoryID,
		SubCategory: in.SubCategory,
		MinPrice:    in.MinPrice,
		MaxPrice:    in.MaxPrice,
		Sort:        in.Sort,
	})
	if err != nil {
		return ProductListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	totalPages := total / int64(in.Limit)
	if total%int64(in.Limit) != 0 {
		totalPages++
	}

	return ProductListOutput{
		Products:   products,
		Total:      total,
		Page:       in.Page,
		TotalPages: totalPages,
	}, nil
}

func (u *ProductUsecase) Get(ctx context.Context, id int64) (model.Product, error) {
	if id <= 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	p, err := u.productRepo.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return p, nil
}

type AdminProductInput struct {
	Name            string  `json:"name"`
	Description     string  `json:"description"`
	OriginalPrice   float64 `json:"original_price"`
	DiscountPrice   float64 `json:"discount_price"`
	DiscountPercent float64 `json:"discount"`
	CategoryID      int64   `json:"category_id"`
	SubCategory     string  `json:"sub_category"`
	ImageURL        string  `json:"image_url"`
	Quantity        int64   `json:"quantity"`
	Weight          string  `json:"weight"`
}

func (in AdminProductInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return NewHTTPError(http.StatusBadRequest, "name is required")
	}
	if in.OriginalPrice <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid original_price")
	}
	if in.DiscountPrice < 0 || in.DiscountPrice > in.OriginalPrice {
		return NewHTTPError(http.StatusBadRequest, "invalid discount_price")
	}
	if in.DiscountPercent < 0 || in.DiscountPercent > 100 {
		return NewHTTPError(http.StatusBadRequest, "invalid discount")
	}
	if in.Quantity < 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid quantity")
	}
	return nil
}

func (u *ProductUsecase) Create(ctx context.Context, in AdminProductInput) (model.Product, error) {
	if err := in.validate(); err != nil {
		return model.Product{}, err
	}

	created, err := u.productRepo.Create(ctx, model.Product{
		Name:            strings.TrimSpace(in.Name),
		Description:     in.Description,
		OriginalPrice:   in.OriginalPrice,
		DiscountPrice:   in.DiscountPrice,
		DiscountPercent: in.DiscountPercent,
		CategoryID:      in.CategoryID,
		SubCategory:     in.SubCategory,
		ImageURL:        in.ImageURL,
		Quantity:        in.Quantity,
		Weight:          in.Weight,
	})
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return created, nil
}

func (u *ProductUsecase) Update(ctx context.Context, id int64, in AdminProductInput) (model.Product, error) {
	if id <= 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := in.validate(); err != nil {
		return model.Product{}, err
	}

	err := u.productRepo.Update(ctx, model.Product{
		ID:              id,
		Name:            strings.TrimSpace(in.Name),
		Description:     in.Description,
		OriginalPrice:   in.OriginalPrice,
		DiscountPrice:   in.DiscountPrice,
		DiscountPercent: in.DiscountPercent,
		CategoryID:      in.CategoryID,
		SubCategory:     in.SubCategory,
		ImageURL:        in.ImageURL,
		Weight:          in.Weight,
	})
	if errors.Is(err, repo.ErrNotFound) {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.Get(ctx, id)
}

func (u *ProductUsecase) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	err := u.productRepo.SoftDelete(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

// SetStock は在庫の絶対値設定。読み取り・更新・調整履歴を
// 1トランザクションで行う（差分は読んだ時点の在庫から計算する）。
func (u *ProductUsecase) SetStock(ctx context.Context, adminUserID int64, productID int64, newStock int64) (model.Product, error) {
	if adminUserID <= 0 {
		return model.Product{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if productID <= 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if newStock < 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid quantity")
	}

	var out model.Product

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		before, err := r.Products().FindByID(ctx, productID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if err := r.Inventory().SetStock(ctx, productID, newStock); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if err := r.Inventory().CreateAdjustment(ctx, model.InventoryAdjustment{
			ProductID:   productID,
			Delta:       newStock - before.Quantity,
			Reason:      model.AdjustmentReasonAdminSetStock,
			AdminUserID: &adminUserID,
		}); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		before.Quantity = newStock
		out = before
		return nil
	})

	if err != nil {
		return model.Product{}, err
	}
	return out, nil
}
