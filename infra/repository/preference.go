package repository

import (
	"context"
	"errors"

	"github.com/amirasaad/shoplist/pkg/domain"
	"github.com/amirasaad/shoplist/pkg/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type preferenceRepository struct {
	db *gorm.DB
}

// NewPreferenceRepository creates a gorm backed preference store.
func NewPreferenceRepository(db *gorm.DB) repository.PreferenceRepository {
	return &preferenceRepository{db: db}
}

func (r *preferenceRepository) Get(ctx context.Context, key string) (string, bool, error) {
	var m Preference
	err := WrapError(func() error {
		return r.db.WithContext(ctx).Where("name = ?", key).First(&m).Error
	})
	if errors.Is(err, domain.ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return m.Value, true, nil
}

func (r *preferenceRepository) Set(ctx context.Context, key, value string) error {
	return WrapError(func() error {
		return r.db.WithContext(ctx).Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{"value"}),
		}).Create(&Preference{Name: key, Value: value}).Error
	})
}

func (r *preferenceRepository) All(ctx context.Context) (map[string]string, error) {
	var models []Preference
	if err := WrapError(func() error {
		return r.db.WithContext(ctx).Find(&models).Error
	}); err != nil {
		return nil, err
	}
	out := make(map[string]string, len(models))
	for _, m := range models {
		out[m.Name] = m.Value
	}
	return out, nil
}
