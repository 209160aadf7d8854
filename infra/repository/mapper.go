package repository

import (
	"github.com/amirasaad/shoplist/pkg/domain/shopping"
	"github.com/amirasaad/shoplist/pkg/listing"
	"github.com/amirasaad/shoplist/pkg/money"
)

// mapper converts between gorm models and the domain model. Stored floats
// are decorated with the configured formats on the way out.
type mapper struct {
	formats shopping.Formats
}

func (m mapper) total(amount float64, frozen bool) shopping.Total {
	if frozen {
		return shopping.Frozen(m.formats.Money(amount))
	}
	return shopping.Derived()
}

func (m mapper) toShopping(s *Shopping) shopping.Shopping {
	out := shopping.Shopping{
		ID:           s.ID,
		Position:     s.Position,
		UID:          s.UID,
		Created:      fromMillis(s.Created),
		LastModified: fromMillis(s.LastModified),
		Name:         s.Name,
		Total:        m.total(s.Total, s.TotalFormatted),
		Location:     shopping.LocationFrom(s.Archived, s.Deleted),
		Sort: listing.Sort{
			By:        listing.ParseSortBy(s.SortBy),
			Ascending: s.SortAscending,
		},
		SortFormatted: s.SortFormatted,
		Pinned:        s.Pinned,
	}
	if s.Reminder != nil {
		reminder := fromMillis(*s.Reminder)
		out.Reminder = &reminder
	}
	return out
}

func (m mapper) fromShopping(s *shopping.Shopping) *Shopping {
	total, frozen := s.Total.Frozen()
	out := &Shopping{
		ID:             s.ID,
		UID:            s.UID,
		Position:       s.Position,
		Created:        toMillis(s.Created),
		LastModified:   toMillis(s.LastModified),
		Name:           s.Name,
		Total:          total.Float64(),
		TotalFormatted: frozen,
		Archived:       s.Location.Archived(),
		Deleted:        s.Location.Deleted(),
		SortBy:         s.Sort.By.String(),
		SortAscending:  s.Sort.Ascending,
		SortFormatted:  s.SortFormatted,
		Pinned:         s.Pinned,
	}
	if s.Reminder != nil {
		reminder := toMillis(*s.Reminder)
		out.Reminder = &reminder
	}
	return out
}

func (m mapper) rate(amount float64, asPercent bool) money.Value {
	return m.formats.Rate(amount, asPercent)
}

func (m mapper) toProduct(p *Product) shopping.Product {
	return shopping.Product{
		ID:           p.ID,
		Position:     p.Position,
		UID:          p.UID,
		ShoppingUID:  p.ShoppingUID,
		LastModified: fromMillis(p.LastModified),
		Name:         p.Name,
		Quantity:     m.formats.Quantity(p.Quantity, p.QuantitySymbol),
		Price:        m.formats.Money(p.Price),
		Discount:     m.rate(p.Discount, p.DiscountAsPercent),
		TaxRate:      m.rate(p.TaxRate, p.TaxRateAsPercent),
		Total:        m.total(p.Total, p.TotalFormatted),
		Completed:    p.Completed,
		Pinned:       p.Pinned,
		Note:         p.Note,
		Manufacturer: p.Manufacturer,
		Brand:        p.Brand,
		Size:         p.Size,
		Color:        p.Color,
		Provider:     p.Provider,
	}
}

// fromProduct stores the derived total for unfrozen products so the column
// is meaningful to other readers of the table.
func (m mapper) fromProduct(p *shopping.Product) *Product {
	return &Product{
		ID:                p.ID,
		UID:               p.UID,
		ShoppingUID:       p.ShoppingUID,
		Position:          p.Position,
		LastModified:      toMillis(p.LastModified),
		Name:              p.Name,
		Quantity:          p.Quantity.Float64(),
		QuantitySymbol:    unitSymbol(p.Quantity),
		Price:             p.Price.Float64(),
		Discount:          p.Discount.Float64(),
		DiscountAsPercent: p.Discount.IsPercent(),
		TaxRate:           p.TaxRate.Float64(),
		TaxRateAsPercent:  p.TaxRate.IsPercent(),
		Total:             p.TotalValue().Float64(),
		TotalFormatted:    p.Total.IsFrozen(),
		Completed:         p.Completed,
		Pinned:            p.Pinned,
		Note:              p.Note,
		Manufacturer:      p.Manufacturer,
		Brand:             p.Brand,
		Size:              p.Size,
		Color:             p.Color,
		Provider:          p.Provider,
	}
}

func (m mapper) toAutocomplete(a *Autocomplete) shopping.Autocomplete {
	return shopping.Autocomplete{
		ID:           a.ID,
		UID:          a.UID,
		Created:      fromMillis(a.Created),
		LastModified: fromMillis(a.LastModified),
		Name:         a.Name,
		Quantity:     m.formats.Quantity(a.Quantity, a.QuantitySymbol),
		Price:        m.formats.Money(a.Price),
		Discount:     m.rate(a.Discount, a.DiscountAsPercent),
		TaxRate:      m.rate(a.TaxRate, a.TaxRateAsPercent),
		Manufacturer: a.Manufacturer,
		Brand:        a.Brand,
		Size:         a.Size,
		Color:        a.Color,
		Provider:     a.Provider,
	}
}

func (m mapper) fromAutocomplete(a *shopping.Autocomplete) *Autocomplete {
	return &Autocomplete{
		ID:                a.ID,
		UID:               a.UID,
		Created:           toMillis(a.Created),
		LastModified:      toMillis(a.LastModified),
		Name:              a.Name,
		Quantity:          a.Quantity.Float64(),
		QuantitySymbol:    unitSymbol(a.Quantity),
		Price:             a.Price.Float64(),
		Discount:          a.Discount.Float64(),
		DiscountAsPercent: a.Discount.IsPercent(),
		TaxRate:           a.TaxRate.Float64(),
		TaxRateAsPercent:  a.TaxRate.IsPercent(),
		Manufacturer:      a.Manufacturer,
		Brand:             a.Brand,
		Size:              a.Size,
		Color:             a.Color,
		Provider:          a.Provider,
	}
}

func unitSymbol(v money.Value) string {
	if v.Sign().Kind == money.KindUnit {
		return v.Sign().Symbol
	}
	return ""
}
