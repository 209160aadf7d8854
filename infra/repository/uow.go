package repository

import (
	"context"
	"fmt"
	"reflect"

	"github.com/amirasaad/shoplist/pkg/domain/shopping"
	"github.com/amirasaad/shoplist/pkg/repository"
	"gorm.io/gorm"
)

// UoW provides transaction boundary and repository access in one abstraction.
// Repositories obtained inside Do share the transaction session.
type UoW struct {
	db           *gorm.DB
	tx           *gorm.DB
	repoRegistry map[reflect.Type]func(*gorm.DB) any
}

// NewUoW creates a new UoW for the given *gorm.DB. Monetary columns are
// decorated with formats when read.
func NewUoW(db *gorm.DB, formats shopping.Formats) *UoW {
	return &UoW{
		db: db,
		repoRegistry: map[reflect.Type]func(*gorm.DB) any{
			reflect.TypeOf((*repository.ShoppingRepository)(nil)).Elem(): func(db *gorm.DB) any {
				return NewShoppingRepository(db, formats)
			},
			reflect.TypeOf((*repository.ProductRepository)(nil)).Elem(): func(db *gorm.DB) any {
				return NewProductRepository(db, formats)
			},
			reflect.TypeOf((*repository.AutocompleteRepository)(nil)).Elem(): func(db *gorm.DB) any {
				return NewAutocompleteRepository(db, formats)
			},
			reflect.TypeOf((*repository.PreferenceRepository)(nil)).Elem(): func(db *gorm.DB) any {
				return NewPreferenceRepository(db)
			},
		},
	}
}

// Do runs the given function in a transaction boundary, providing a UoW with repository access.
func (u *UoW) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txnUow := &UoW{db: u.db, tx: tx, repoRegistry: u.repoRegistry}
		return fn(txnUow)
	})
}

// GetRepository returns the repository registered for repoType, bound to the
// transaction when called inside Do.
func (u *UoW) GetRepository(repoType reflect.Type) (any, error) {
	constructor, ok := u.repoRegistry[repoType]
	if !ok {
		return nil, fmt.Errorf("unsupported repository type: %v", repoType)
	}
	session := u.tx
	if session == nil {
		session = u.db
	}
	return constructor(session), nil
}

func getTyped[T any](u *UoW) (T, error) {
	var zero T
	repoAny, err := u.GetRepository(reflect.TypeOf((*T)(nil)).Elem())
	if err != nil {
		return zero, err
	}
	repo, ok := repoAny.(T)
	if !ok {
		return zero, fmt.Errorf("repository type mismatch: %T", repoAny)
	}
	return repo, nil
}

// ShoppingRepository returns the list repository.
func (u *UoW) ShoppingRepository() (repository.ShoppingRepository, error) {
	return getTyped[repository.ShoppingRepository](u)
}

// ProductRepository returns the product repository.
func (u *UoW) ProductRepository() (repository.ProductRepository, error) {
	return getTyped[repository.ProductRepository](u)
}

// AutocompleteRepository returns the autocomplete repository.
func (u *UoW) AutocompleteRepository() (repository.AutocompleteRepository, error) {
	return getTyped[repository.AutocompleteRepository](u)
}

// PreferenceRepository returns the preference store.
func (u *UoW) PreferenceRepository() (repository.PreferenceRepository, error) {
	return getTyped[repository.PreferenceRepository](u)
}
