// Package shopping holds the canonical shopping list model every legacy
// generation is migrated into.
package shopping

import (
	"time"

	"github.com/amirasaad/shoplist/pkg/listing"
	"github.com/shopspring/decimal"
)

// Shopping is a list header.
type Shopping struct {
	ID           int64
	Position     int
	UID          string
	Created      time.Time
	LastModified time.Time
	Name         string
	Reminder     *time.Time
	Total        Total
	Location     Location
	Sort         listing.Sort
	// SortFormatted enables automatic sorting; when false the stored Sort
	// is ignored and manual Position order applies.
	SortFormatted bool
	Pinned        bool
}

// ShoppingList is a list together with the products whose ShoppingUID
// equals its UID.
type ShoppingList struct {
	Shopping Shopping
	Products []Product
}

// Completed reports whether the list has products and all are completed.
func (l ShoppingList) Completed() bool {
	if len(l.Products) == 0 {
		return false
	}
	for _, p := range l.Products {
		if !p.Completed {
			return false
		}
	}
	return true
}

// ProductSort returns the sort products are presented with.
func (l ShoppingList) ProductSort() listing.Sort {
	if l.Shopping.SortFormatted {
		return l.Shopping.Sort
	}
	return listing.DefaultSort
}

// Entry implements listing.Item. The total is the frozen list total or the
// sum of product totals.
func (l ShoppingList) Entry() listing.Entry {
	total := decimal.Zero
	if v, ok := l.Shopping.Total.Frozen(); ok {
		total = v.Decimal()
	} else {
		for _, p := range l.Products {
			total = total.Add(p.TotalValue().Decimal())
		}
	}
	return listing.Entry{
		UID:          l.Shopping.UID,
		Position:     l.Shopping.Position,
		Created:      l.Shopping.Created,
		LastModified: l.Shopping.LastModified,
		Name:         l.Shopping.Name,
		Total:        total,
		Pinned:       l.Shopping.Pinned,
		Completed:    l.Completed(),
	}
}
