package legacy

import (
	"cmp"
	"slices"
	"strings"

	"github.com/amirasaad/shoplist/pkg/domain/shopping"
	"github.com/amirasaad/shoplist/pkg/listing"
	"github.com/amirasaad/shoplist/pkg/money"
	"github.com/amirasaad/shoplist/pkg/settings"
)

// Generation 2 table names.
const (
	Gen2TableShoppings     = "shoppings"
	Gen2TableProducts      = "products"
	Gen2TableAutocompletes = "autocompletes"
)

// Generation 2 columns. The schema lost its created column in an automatic
// migration, so creation times are unknown.
const (
	gen2ID                = "id"
	gen2Position          = "position"
	gen2LastModified      = "last_modified"
	gen2Name              = "name"
	gen2Reminder          = "reminder"
	gen2Total             = "total"
	gen2TotalFormatted    = "total_formatted"
	gen2Archived          = "archived"
	gen2Deleted           = "deleted"
	gen2SortBy            = "sort_by"
	gen2SortAscending     = "sort_ascending"
	gen2SortFormatted     = "sort_formatted"
	gen2Pinned            = "pinned"
	gen2ShoppingID        = "shopping_id"
	gen2Quantity          = "quantity"
	gen2QuantitySymbol    = "quantity_symbol"
	gen2Price             = "price"
	gen2Discount          = "discount"
	gen2DiscountAsPercent = "discount_as_percent"
	gen2TaxRate           = "tax_rate"
	gen2TaxRateAsPercent  = "tax_rate_as_percent"
	gen2Completed         = "completed"
	gen2Note              = "note"
	gen2Manufacturer      = "manufacturer"
	gen2Brand             = "brand"
	gen2Size              = "size"
	gen2Color             = "color"
	gen2Provider          = "provider"
)

var (
	gen2ShoppingColumns = []string{
		gen2ID, gen2Position, gen2LastModified, gen2Name, gen2Reminder, gen2Total,
		gen2TotalFormatted, gen2Archived, gen2Deleted, gen2SortBy, gen2SortAscending,
		gen2SortFormatted, gen2Pinned,
	}
	gen2ProductColumns = []string{
		gen2ID, gen2ShoppingID, gen2Position, gen2LastModified, gen2Name, gen2Quantity,
		gen2QuantitySymbol, gen2Price, gen2Discount, gen2DiscountAsPercent, gen2TaxRate,
		gen2TaxRateAsPercent, gen2Total, gen2TotalFormatted, gen2Completed, gen2Pinned,
	}
	gen2AutocompleteColumns = []string{
		gen2ID, gen2LastModified, gen2Name, gen2Quantity, gen2QuantitySymbol, gen2Price,
		gen2Discount, gen2DiscountAsPercent, gen2TaxRate, gen2TaxRateAsPercent,
	}
)

// Gen2Columns returns the required columns of a generation 2 table. The
// descriptive text columns (note, manufacturer, brand, size, color,
// provider) are optional.
func Gen2Columns(table string) []string {
	switch table {
	case Gen2TableShoppings:
		return slices.Clone(gen2ShoppingColumns)
	case Gen2TableProducts:
		return slices.Clone(gen2ProductColumns)
	case Gen2TableAutocompletes:
		return slices.Clone(gen2AutocompleteColumns)
	default:
		return nil
	}
}

type gen2 struct {
	values
	settings settings.Settings
}

func newGen2(base settings.Settings) *gen2 {
	s := base
	s.MoneyStyle = money.Style{MinFractionDigits: 2, MaxFractionDigits: 3}
	s.QuantityStyle = money.Style{MinFractionDigits: 0, MaxFractionDigits: 3}
	return &gen2{values: values{formats: s.Formats(nil)}, settings: s}
}

func (c *gen2) Generation() Generation { return Gen2 }

func (c *gen2) Validate(s Snapshot) error {
	if err := s.Shoppings.Require(gen2ShoppingColumns...); err != nil {
		return err
	}
	if err := s.Products.Require(gen2ProductColumns...); err != nil {
		return err
	}
	return s.Autocompletes.Require(gen2AutocompleteColumns...)
}

func (c *gen2) ShoppingKey(r Row) string      { return r.String(gen2ID) }
func (c *gen2) ProductKey(r Row) string       { return r.String(gen2ID) }
func (c *gen2) ProductParentKey(r Row) string { return r.String(gen2ShoppingID) }
func (c *gen2) AutocompleteKey(r Row) string  { return r.String(gen2ID) }

func (c *gen2) total(r Row) shopping.Total {
	if r.Bool(gen2TotalFormatted, false) {
		return shopping.Frozen(c.money(r.Decimal(gen2Total)))
	}
	return shopping.Derived()
}

func (c *gen2) Shopping(r Row) shopping.Shopping {
	s := shopping.Shopping{
		ID:           r.Int64(gen2ID, 0),
		Position:     int(r.Int64(gen2Position, 0)),
		LastModified: r.Millis(gen2LastModified),
		Name:         strings.TrimSpace(r.String(gen2Name)),
		Total:        c.total(r),
		Location:     shopping.LocationFrom(r.Bool(gen2Archived, false), r.Bool(gen2Deleted, false)),
		Sort: listing.Sort{
			By:        listing.ParseSortBy(r.String(gen2SortBy)),
			Ascending: r.Bool(gen2SortAscending, true),
		},
		SortFormatted: r.Bool(gen2SortFormatted, false),
		Pinned:        r.Bool(gen2Pinned, false),
	}
	if reminder := r.Millis(gen2Reminder); !reminder.IsZero() {
		s.Reminder = &reminder
	}
	return s
}

func (c *gen2) Product(r Row) shopping.Product {
	return shopping.Product{
		ID:           r.Int64(gen2ID, 0),
		Position:     int(r.Int64(gen2Position, 0)),
		LastModified: r.Millis(gen2LastModified),
		Name:         strings.TrimSpace(r.String(gen2Name)),
		Quantity:     c.quantity(r.Decimal(gen2Quantity), r.String(gen2QuantitySymbol)),
		Price:        c.money(r.Decimal(gen2Price)),
		Discount:     c.rate(r.Decimal(gen2Discount), r.Bool(gen2DiscountAsPercent, true)),
		TaxRate:      c.rate(r.Decimal(gen2TaxRate), r.Bool(gen2TaxRateAsPercent, true)),
		Total:        c.total(r),
		Completed:    r.Bool(gen2Completed, false),
		Pinned:       r.Bool(gen2Pinned, false),
		Note:         r.String(gen2Note),
		Manufacturer: r.String(gen2Manufacturer),
		Brand:        r.String(gen2Brand),
		Size:         r.String(gen2Size),
		Color:        r.String(gen2Color),
		Provider:     r.String(gen2Provider),
	}
}

func (c *gen2) Autocomplete(r Row) shopping.Autocomplete {
	return shopping.Autocomplete{
		ID:           r.Int64(gen2ID, 0),
		LastModified: r.Millis(gen2LastModified),
		Name:         strings.TrimSpace(r.String(gen2Name)),
		Quantity:     c.quantity(r.Decimal(gen2Quantity), r.String(gen2QuantitySymbol)),
		Price:        c.money(r.Decimal(gen2Price)),
		Discount:     c.rate(r.Decimal(gen2Discount), r.Bool(gen2DiscountAsPercent, true)),
		TaxRate:      c.rate(r.Decimal(gen2TaxRate), r.Bool(gen2TaxRateAsPercent, true)),
		Manufacturer: r.String(gen2Manufacturer),
		Brand:        r.String(gen2Brand),
		Size:         r.String(gen2Size),
		Color:        r.String(gen2Color),
		Provider:     r.String(gen2Provider),
	}
}

// FinalizeList renumbers products by stored position, then legacy id.
func (c *gen2) FinalizeList(list shopping.ShoppingList) shopping.ShoppingList {
	products := slices.Clone(list.Products)
	slices.SortStableFunc(products, func(a, b shopping.Product) int {
		return cmp.Or(cmp.Compare(a.Position, b.Position), cmp.Compare(a.ID, b.ID))
	})
	renumberProducts(products)
	list.Products = products
	return list
}

func (c *gen2) FinalizeLists(lists []shopping.ShoppingList) []shopping.ShoppingList {
	sorted := slices.Clone(lists)
	slices.SortStableFunc(sorted, func(a, b shopping.ShoppingList) int {
		return cmp.Or(cmp.Compare(a.Shopping.Position, b.Shopping.Position), cmp.Compare(a.Shopping.ID, b.Shopping.ID))
	})
	renumberLists(sorted)
	return sorted
}

func (c *gen2) Settings() settings.Settings { return c.settings }
func (c *gen2) SaveAutocompletes() bool     { return c.settings.SaveAutocompletes }
