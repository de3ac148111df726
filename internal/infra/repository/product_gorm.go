package repository

import (
	"context"
	"errors"
	"strings"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"gorm.io/gorm"
)

type ProductGormRepository struct {
	db *gorm.DB
}

func NewProductGormRepository(db *gorm.DB) *ProductGormRepository {
	return &ProductGormRepository{db: db}
}

// 公開商品一覧（検索・絞り込み・ページング）
func (r *ProductGormRepository) ListPublic(ctx context.Context, q repo.ProductListQuery) ([]model.Product, int64, error) {
	if q.Page <= 0 {
		q.Page = 1
	}
	if q.Limit <= 0 || q.Limit > 100 {
		q.Limit = 20
	}

	base := r.db.WithContext(ctx).Model(&model.Product{})

	if s := strings.TrimSpace(q.Q); s != "" {
		like := "%" + s + "%"
		base = base.Where("name ILIKE ? OR description ILIKE ?", like, like)
	}
	if q.CategoryID != nil {
		base = base.Where("category_id = ?", *q.CategoryID)
	}
	if q.SubCategory != "" {
		base = base.Where("sub_category = ?", q.SubCategory)
	}
	if q.MinPrice != nil {
		base = base.Where("original_price >= ?", *q.MinPrice)
	}
	if q.MaxPrice != nil {
		base = base.Where("original_price <= ?", *q.MaxPrice)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return []model.Product{}, 0, err
	}

	order := "id desc"
	switch q.Sort {
	case "price_asc":
		order = "original_price asc"
	case "price_desc":
		order = "original_price desc"
	case "rating":
		order = "rating desc"
	}

	var items []model.Product
	offset := (q.Page - 1) * q.Limit
	if err := base.Order(order).Limit(q.Limit).Offset(offset).Find(&items).Error; err != nil {
		return []model.Product{}, 0, err
	}

	return items, total, nil
}

func (r *ProductGormRepository) FindByID(ctx context.Context, id int64) (model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Product{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Product{}, err
	}
	return p, nil
}

func (r *ProductGormRepository) Create(ctx context.Context, p model.Product) (model.Product, error) {
	if err := r.db.WithContext(ctx).Create(&p).Error; err != nil {
		return model.Product{}, err
	}
	return p, nil
}

func (r *ProductGormRepository) Update(ctx context.Context, p model.Product) error {
	res := r.db.WithContext(ctx).
		Model(&model.Product{}).
		Where("id = ?", p.ID).
		Updates(map[string]interface{}{
			"name":             p.Name,
			"description":      p.Description,
			"original_price":   p.OriginalPrice,
			"discount_price":   p.DiscountPrice,
			"discount_percent": p.DiscountPercent,
			"category_id":      p.CategoryID,
			"sub_category":     p.SubCategory,
			"image_url":        p.ImageURL,
			"rating":           p.Rating,
			"weight":           p.Weight,
		})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *ProductGormRepository) SoftDelete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&model.Product{}, id)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
