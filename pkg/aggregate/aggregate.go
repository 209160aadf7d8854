// Package aggregate computes list and product totals split into all,
// completed and active partitions.
package aggregate

import (
	"github.com/amirasaad/shoplist/pkg/domain/shopping"
	"github.com/amirasaad/shoplist/pkg/money"
)

// Totals holds the three running sums of one quantity. All always equals
// Completed + Active.
type Totals struct {
	All       money.Value
	Completed money.Value
	Active    money.Value
}

// Get selects one of the sums.
func (t Totals) Get(mode shopping.DisplayTotal) money.Value {
	switch mode {
	case shopping.DisplayTotalCompleted:
		return t.Completed
	case shopping.DisplayTotalActive:
		return t.Active
	default:
		return t.All
	}
}

func (t *Totals) add(v money.Value, completed bool) {
	t.All = t.All.Add(v)
	if completed {
		t.Completed = t.Completed.Add(v)
	} else {
		t.Active = t.Active.Add(v)
	}
}

// Summary is the aggregate of a product collection.
type Summary struct {
	Total    Totals
	Discount Totals
	TaxRate  Totals
}

// Engine sums totals using one set of display formats.
type Engine struct {
	formats shopping.Formats
}

// New creates an Engine.
func New(formats shopping.Formats) *Engine {
	return &Engine{formats: formats}
}

func (e *Engine) zero() Totals {
	z := e.formats.ZeroMoney()
	return Totals{All: z, Completed: z, Active: z}
}

// Products sums every product in one pass. Discount and tax are resolved
// against each product's own base total.
func (e *Engine) Products(products []shopping.Product) Summary {
	s := Summary{Total: e.zero(), Discount: e.zero(), TaxRate: e.zero()}
	for _, p := range products {
		s.Total.add(p.TotalValue(), p.Completed)
		s.Discount.add(p.DiscountAmount(), p.Completed)
		s.TaxRate.add(p.TaxAmount(), p.Completed)
	}
	return s
}

// ProductsByUIDs sums only the products whose uid is in uids.
func (e *Engine) ProductsByUIDs(products []shopping.Product, uids []string) Summary {
	selected := make(map[string]struct{}, len(uids))
	for _, uid := range uids {
		selected[uid] = struct{}{}
	}
	subset := make([]shopping.Product, 0, len(uids))
	for _, p := range products {
		if _, ok := selected[p.UID]; ok {
			subset = append(subset, p)
		}
	}
	return e.Products(subset)
}

// ShoppingList returns the list total for mode. A frozen list total is
// returned as is for DisplayTotalAll. It carries no completed/active
// breakdown, so the other modes are always recomputed from the products
// and may disagree with it.
func (e *Engine) ShoppingList(list shopping.ShoppingList, mode shopping.DisplayTotal) money.Value {
	if v, ok := list.Shopping.Total.Frozen(); ok && mode == shopping.DisplayTotalAll {
		return e.formats.ZeroMoney().Add(v)
	}
	return e.Products(list.Products).Total.Get(mode)
}

// ShoppingLists sums list totals. A list counts as completed when it has
// products and every one of them is completed.
func (e *Engine) ShoppingLists(lists []shopping.ShoppingList) Totals {
	t := e.zero()
	for _, l := range lists {
		t.add(e.ShoppingList(l, shopping.DisplayTotalAll), l.Completed())
	}
	return t
}
