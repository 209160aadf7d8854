package repository

import (
	"context"

	"github.com/amirasaad/shoplist/pkg/domain/shopping"
	"github.com/amirasaad/shoplist/pkg/repository"
	"gorm.io/gorm"
)

type autocompleteRepository struct {
	db *gorm.DB
	mapper
}

// NewAutocompleteRepository creates a gorm backed autocomplete repository.
func NewAutocompleteRepository(db *gorm.DB, formats shopping.Formats) repository.AutocompleteRepository {
	return &autocompleteRepository{db: db, mapper: mapper{formats: formats}}
}

func (r *autocompleteRepository) Upsert(ctx context.Context, a *shopping.Autocomplete) error {
	m := r.fromAutocomplete(a)
	if err := WrapError(func() error {
		return upsertByUID(r.db.WithContext(ctx)).Create(m).Error
	}); err != nil {
		return err
	}
	if m.ID != 0 {
		a.ID = m.ID
	}
	return nil
}

func (r *autocompleteRepository) List(ctx context.Context) ([]shopping.Autocomplete, error) {
	var models []Autocomplete
	if err := WrapError(func() error {
		return r.db.WithContext(ctx).Order("name, id").Find(&models).Error
	}); err != nil {
		return nil, err
	}
	out := make([]shopping.Autocomplete, 0, len(models))
	for i := range models {
		out = append(out, r.toAutocomplete(&models[i]))
	}
	return out, nil
}

func (r *autocompleteRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := WrapError(func() error {
		return r.db.WithContext(ctx).Model(&Autocomplete{}).Count(&n).Error
	})
	return n, err
}
