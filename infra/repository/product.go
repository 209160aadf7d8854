package repository

import (
	"context"

	"github.com/amirasaad/shoplist/pkg/domain/shopping"
	"github.com/amirasaad/shoplist/pkg/repository"
	"gorm.io/gorm"
)

type productRepository struct {
	db *gorm.DB
	mapper
}

// NewProductRepository creates a gorm backed product repository.
func NewProductRepository(db *gorm.DB, formats shopping.Formats) repository.ProductRepository {
	return &productRepository{db: db, mapper: mapper{formats: formats}}
}

func (r *productRepository) Upsert(ctx context.Context, p *shopping.Product) error {
	m := r.fromProduct(p)
	if err := WrapError(func() error {
		return upsertByUID(r.db.WithContext(ctx)).Create(m).Error
	}); err != nil {
		return err
	}
	if m.ID != 0 {
		p.ID = m.ID
	}
	return nil
}

func (r *productRepository) ListByShopping(ctx context.Context, shoppingUID string) ([]shopping.Product, error) {
	return r.ListByShoppings(ctx, []string{shoppingUID})
}

func (r *productRepository) ListByShoppings(ctx context.Context, shoppingUIDs []string) ([]shopping.Product, error) {
	if len(shoppingUIDs) == 0 {
		return nil, nil
	}
	var models []Product
	err := WrapError(func() error {
		return r.db.WithContext(ctx).
			Where("shopping_uid IN ?", shoppingUIDs).
			Order("position, id").
			Find(&models).Error
	})
	if err != nil {
		return nil, err
	}
	out := make([]shopping.Product, 0, len(models))
	for i := range models {
		out = append(out, r.toProduct(&models[i]))
	}
	return out, nil
}

func (r *productRepository) UpdatePositions(ctx context.Context, positions map[string]int) error {
	return updatePositions(ctx, r.db, &Product{}, positions)
}

func (r *productRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := WrapError(func() error {
		return r.db.WithContext(ctx).Model(&Product{}).Count(&n).Error
	})
	return n, err
}
