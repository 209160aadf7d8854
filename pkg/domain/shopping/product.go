package shopping

import (
	"time"

	"github.com/amirasaad/shoplist/pkg/listing"
	"github.com/amirasaad/shoplist/pkg/money"
)

// Product is one line of a shopping list.
type Product struct {
	ID           int64
	Position     int
	UID          string
	ShoppingUID  string
	LastModified time.Time
	Name         string
	Quantity     money.Value
	Price        money.Value
	Discount     money.Value
	TaxRate      money.Value
	Total        Total
	Completed    bool
	Pinned       bool
	Note         string
	Manufacturer string
	Brand        string
	Size         string
	Color        string
	Provider     string
}

// BaseTotal is quantity * price. An empty quantity (zero or negative)
// counts as a single unit, so the base is the price alone.
func (p Product) BaseTotal() money.Value {
	if p.Quantity.IsEmpty() {
		return p.Price
	}
	return p.Price.Mul(p.Quantity)
}

// DiscountAmount resolves the discount against the base total.
func (p Product) DiscountAmount() money.Value {
	base := p.BaseTotal()
	return money.Zero(base.Sign(), base.Style()).Add(p.Discount.FromPercent(base))
}

// TaxAmount resolves the tax rate against the base total.
func (p Product) TaxAmount() money.Value {
	base := p.BaseTotal()
	return money.Zero(base.Sign(), base.Style()).Add(p.TaxRate.FromPercent(base))
}

// DerivedTotal is base - discount + tax, ignoring any frozen total.
func (p Product) DerivedTotal() money.Value {
	return p.BaseTotal().Sub(p.DiscountAmount()).Add(p.TaxAmount())
}

// TotalValue returns the frozen total when there is one, otherwise the
// derived total.
func (p Product) TotalValue() money.Value {
	if v, ok := p.Total.Frozen(); ok {
		return v
	}
	return p.DerivedTotal()
}

// Entry implements listing.Item. Products carry no creation time, so a
// Created sort keeps their stored order.
func (p Product) Entry() listing.Entry {
	return listing.Entry{
		UID:          p.UID,
		Position:     p.Position,
		LastModified: p.LastModified,
		Name:         p.Name,
		Total:        p.TotalValue().Decimal(),
		Pinned:       p.Pinned,
		Completed:    p.Completed,
	}
}
