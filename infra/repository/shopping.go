package repository

import (
	"context"

	"github.com/amirasaad/shoplist/pkg/domain/shopping"
	"github.com/amirasaad/shoplist/pkg/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type shoppingRepository struct {
	db *gorm.DB
	mapper
}

// NewShoppingRepository creates a gorm backed shopping repository.
func NewShoppingRepository(db *gorm.DB, formats shopping.Formats) repository.ShoppingRepository {
	return &shoppingRepository{db: db, mapper: mapper{formats: formats}}
}

func upsertByUID(db *gorm.DB) *gorm.DB {
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "uid"}},
		UpdateAll: true,
	})
}

func (r *shoppingRepository) Upsert(ctx context.Context, s *shopping.Shopping) error {
	m := r.fromShopping(s)
	if err := WrapError(func() error {
		return upsertByUID(r.db.WithContext(ctx)).Create(m).Error
	}); err != nil {
		return err
	}
	if m.ID != 0 {
		s.ID = m.ID
	}
	return nil
}

func (r *shoppingRepository) Get(ctx context.Context, uid string) (*shopping.Shopping, error) {
	var m Shopping
	if err := WrapError(func() error {
		return r.db.WithContext(ctx).Where("uid = ?", uid).First(&m).Error
	}); err != nil {
		return nil, err
	}
	s := r.toShopping(&m)
	return &s, nil
}

func (r *shoppingRepository) List(ctx context.Context, location shopping.Location) ([]shopping.Shopping, error) {
	var models []Shopping
	err := WrapError(func() error {
		return r.db.WithContext(ctx).
			Where("archived = ? AND deleted = ?", location.Archived(), location.Deleted()).
			Order("position, id").
			Find(&models).Error
	})
	if err != nil {
		return nil, err
	}
	out := make([]shopping.Shopping, 0, len(models))
	for i := range models {
		out = append(out, r.toShopping(&models[i]))
	}
	return out, nil
}

func (r *shoppingRepository) UpdatePositions(ctx context.Context, positions map[string]int) error {
	return updatePositions(ctx, r.db, &Shopping{}, positions)
}

func (r *shoppingRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := WrapError(func() error {
		return r.db.WithContext(ctx).Model(&Shopping{}).Count(&n).Error
	})
	return n, err
}

func updatePositions(ctx context.Context, db *gorm.DB, model any, positions map[string]int) error {
	for uid, position := range positions {
		if err := WrapError(func() error {
			return db.WithContext(ctx).Model(model).Where("uid = ?", uid).Update("position", position).Error
		}); err != nil {
			return err
		}
	}
	return nil
}
