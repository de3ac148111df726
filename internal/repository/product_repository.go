package repository

import (
	"context"
	"errors"

	"storefront/internal/domain/model"
)

var (
	ErrNotFound = errors.New("not found")

	// 条件付き更新が空振りしたとき（他の書き込みが先行した）
	ErrConflict = errors.New("conflict")
)

// 一覧検索
type ProductListQuery struct {
	Page        int
	Limit       int
	Q           string
	CategoryID  *int64
	SubCategory string
	MinPrice    *float64
	MaxPrice    *float64
	Sort        string
}

// 商品の永続化（保存・取得）だけを約束。
type ProductRepository interface {
	ListPublic(ctx context.Context, q ProductListQuery) ([]model.Product, int64, error)
	FindByID(ctx context.Context, id int64) (model.Product, error)

	Create(ctx context.Context, p model.Product) (model.Product, error)
	Update(ctx context.Context, p model.Product) error
	SoftDelete(ctx context.Context, id int64) error
}
