package shopping

import (
	"time"

	"github.com/amirasaad/shoplist/pkg/money"
)

// Autocomplete is a remembered product used to prefill new products.
type Autocomplete struct {
	ID           int64
	UID          string
	Created      time.Time
	LastModified time.Time
	Name         string
	Quantity     money.Value
	Price        money.Value
	Discount     money.Value
	TaxRate      money.Value
	Manufacturer string
	Brand        string
	Size         string
	Color        string
	Provider     string
}

// AutocompleteFromProduct copies the reusable fields of a product.
func AutocompleteFromProduct(p Product, uid string) Autocomplete {
	return Autocomplete{
		UID:          uid,
		Created:      p.LastModified,
		LastModified: p.LastModified,
		Name:         p.Name,
		Quantity:     p.Quantity,
		Price:        p.Price,
		Discount:     p.Discount,
		TaxRate:      p.TaxRate,
		Manufacturer: p.Manufacturer,
		Brand:        p.Brand,
		Size:         p.Size,
		Color:        p.Color,
		Provider:     p.Provider,
	}
}
