package repository

import (
	"context"

	"github.com/amirasaad/shoplist/pkg/domain/shopping"
)

// ShoppingRepository defines data access for list headers.
type ShoppingRepository interface {
	// Upsert inserts the list or updates the one with the same UID.
	Upsert(ctx context.Context, s *shopping.Shopping) error
	Get(ctx context.Context, uid string) (*shopping.Shopping, error)
	List(ctx context.Context, location shopping.Location) ([]shopping.Shopping, error)
	// UpdatePositions stores new positions keyed by uid.
	UpdatePositions(ctx context.Context, positions map[string]int) error
	Count(ctx context.Context) (int64, error)
}

// ProductRepository defines data access for products.
type ProductRepository interface {
	Upsert(ctx context.Context, p *shopping.Product) error
	ListByShopping(ctx context.Context, shoppingUID string) ([]shopping.Product, error)
	ListByShoppings(ctx context.Context, shoppingUIDs []string) ([]shopping.Product, error)
	UpdatePositions(ctx context.Context, positions map[string]int) error
	Count(ctx context.Context) (int64, error)
}

// AutocompleteRepository defines data access for autocompletes.
type AutocompleteRepository interface {
	Upsert(ctx context.Context, a *shopping.Autocomplete) error
	List(ctx context.Context) ([]shopping.Autocomplete, error)
	Count(ctx context.Context) (int64, error)
}

// PreferenceRepository is the canonical key-value preference store. It
// satisfies settings.Store.
type PreferenceRepository interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	All(ctx context.Context) (map[string]string, error)
}
