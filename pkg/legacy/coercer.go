package legacy

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/amirasaad/shoplist/pkg/domain/shopping"
	"github.com/amirasaad/shoplist/pkg/money"
	"github.com/amirasaad/shoplist/pkg/settings"
	"github.com/shopspring/decimal"
)

// Coercer converts the rows of one generation. Coerced records keep the
// legacy integer id in their ID field so finalization can order by it;
// callers must clear it and assign a uid before persisting.
type Coercer interface {
	Generation() Generation
	// Validate fails with ErrSchemaMismatch when a table or column the
	// coercer reads is absent.
	Validate(s Snapshot) error

	ShoppingKey(r Row) string
	ProductKey(r Row) string
	ProductParentKey(r Row) string
	AutocompleteKey(r Row) string

	Shopping(r Row) shopping.Shopping
	Product(r Row) shopping.Product
	Autocomplete(r Row) shopping.Autocomplete

	// FinalizeList orders the products of one list and renumbers their
	// positions densely from zero.
	FinalizeList(list shopping.ShoppingList) shopping.ShoppingList
	// FinalizeLists orders lists and renumbers their positions.
	FinalizeLists(lists []shopping.ShoppingList) []shopping.ShoppingList

	// Settings returns base with the preferences carried over from the
	// legacy generation.
	Settings() settings.Settings
	// SaveAutocompletes reports whether every product should also be
	// remembered as an autocomplete.
	SaveAutocompletes() bool
}

// NewCoercer returns the coercer of a generation. prefs may be nil.
func NewCoercer(gen Generation, prefs Preferences, base settings.Settings) (Coercer, error) {
	switch gen {
	case Gen1:
		return newGen1(prefs, base), nil
	case Gen2:
		return newGen2(base), nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownGeneration, int(gen))
	}
}

// values builds money values from decimals read out of legacy rows.
type values struct {
	formats shopping.Formats
}

func (v values) money(d decimal.Decimal) money.Value {
	return money.New(d, v.formats.Currency, v.formats.MoneyStyle)
}

func (v values) quantity(d decimal.Decimal, unit string) money.Value {
	return money.New(d, money.Unit(strings.TrimSpace(unit)), v.formats.QuantityStyle)
}

func (v values) rate(d decimal.Decimal, asPercent bool) money.Value {
	if asPercent {
		return money.New(d, money.Percent(), v.formats.PercentStyle)
	}
	return v.money(d)
}

func productID(p shopping.Product) int64   { return p.ID }
func listID(l shopping.ShoppingList) int64 { return l.Shopping.ID }

func renumberProducts(products []shopping.Product) {
	for i := range products {
		products[i].Position = i
	}
}

func renumberLists(lists []shopping.ShoppingList) {
	for i := range lists {
		lists[i].Shopping.Position = i
	}
}

// sortedByID orders records by the legacy id kept in ID.
func sortedByID[T any](items []T, id func(T) int64) []T {
	sorted := slices.Clone(items)
	slices.SortStableFunc(sorted, func(a, b T) int { return cmp.Compare(id(a), id(b)) })
	return sorted
}
