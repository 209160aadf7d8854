package legacy

import (
	"strconv"
	"strings"

	"github.com/amirasaad/shoplist/pkg/domain/shopping"
	"github.com/amirasaad/shoplist/pkg/listing"
	"github.com/amirasaad/shoplist/pkg/money"
	"github.com/amirasaad/shoplist/pkg/settings"
	"github.com/shopspring/decimal"
)

// Generation 1 table and column names.
const (
	Gen1TableList     = "list"
	Gen1TableGoods    = "goods"
	Gen1TableComplete = "complete"

	gen1ID            = "_id"
	gen1ListName      = "listname"
	gen1Alarm         = "alarm"
	gen1ListID        = "listid"
	gen1GoodsName     = "goodsname"
	gen1Number        = "number"
	gen1NumberMeasure = "numbermeasure"
	gen1PriceMeasure  = "pricemeasure"
	gen1GoodsBuy      = "goodsbuy"
	gen1CompleteName  = "completename"
)

// Generation 1 preference keys.
const (
	Gen1PrefCurrency     = "currency"
	Gen1PrefShowCurrency = "show_currency"
	Gen1PrefTaxRate      = "tax_rate"
	Gen1PrefSizeMainText = "size_main_text"
	Gen1PrefSizeDopText  = "size_dop_text"
	Gen1PrefCapitalText  = "capital_text"
	Gen1PrefCellText     = "cell_text"
	Gen1PrefSortDefault  = "sort_default"
	Gen1PrefShowPrice    = "show_price"
	Gen1PrefSumDefault   = "sum_default"
	Gen1PrefEditAfterBuy = "edit_after_buy"
	Gen1PrefAutoText     = "auto_text"
	Gen1PrefFirst        = "pref_first"
)

// Gen1CompletedCode is the goodsbuy value of a bought product. Every other
// value means not bought.
const Gen1CompletedCode int64 = 1

// Gen1 sort codes.
var gen1Sorts = map[int64]listing.Sort{
	1: {By: listing.SortByName, Ascending: true},
	2: {By: listing.SortByTotal, Ascending: true},
	3: {By: listing.SortByName, Ascending: false},
	4: {By: listing.SortByTotal, Ascending: false},
}

// Gen1 display total codes.
var gen1DisplayTotals = map[int64]shopping.DisplayTotal{
	0: shopping.DisplayTotalAll,
	1: shopping.DisplayTotalActive,
	2: shopping.DisplayTotalCompleted,
}

// Gen1ImportRequested reports whether the preferences show a used
// installation. pref_first is true until the first run completes.
func Gen1ImportRequested(prefs Preferences) bool {
	return !prefs.Bool(Gen1PrefFirst, true)
}

// Gen1Completed decodes goodsbuy.
func Gen1Completed(code int64) bool {
	return code == Gen1CompletedCode
}

// Gen1CompletionCode encodes a completion flag as goodsbuy.
func Gen1CompletionCode(completed bool) int64 {
	if completed {
		return Gen1CompletedCode
	}
	return 0
}

// Gen1Sort decodes sort_default. Code 0 and unknown codes mean id order,
// which is a manual (unformatted) sort.
func Gen1Sort(code int64) (listing.Sort, bool) {
	if s, ok := gen1Sorts[code]; ok {
		return s, true
	}
	return listing.DefaultSort, false
}

// Gen1SortCode encodes a sort as sort_default. Sorts with no code map to 0.
func Gen1SortCode(s listing.Sort, formatted bool) int64 {
	if !formatted {
		return 0
	}
	for code, candidate := range gen1Sorts {
		if candidate == s {
			return code
		}
	}
	return 0
}

// Gen1DisplayTotal decodes sum_default, defaulting to all.
func Gen1DisplayTotal(code int64) shopping.DisplayTotal {
	if d, ok := gen1DisplayTotals[code]; ok {
		return d
	}
	return shopping.DisplayTotalAll
}

// Gen1DisplayTotalCode encodes a display total as sum_default.
func Gen1DisplayTotalCode(d shopping.DisplayTotal) int64 {
	for code, candidate := range gen1DisplayTotals {
		if candidate == d {
			return code
		}
	}
	return 0
}

// gen1FontSize maps a text size in sp to a font size.
func gen1FontSize(raw string, def shopping.FontSize) shopping.FontSize {
	sp, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return def
	}
	switch {
	case sp < 16:
		return shopping.FontSizeSmall
	case sp < 20:
		return shopping.FontSizeMedium
	case sp < 24:
		return shopping.FontSizeLarge
	default:
		return shopping.FontSizeHuge
	}
}

type gen1 struct {
	values
	settings  settings.Settings
	sort      listing.Sort
	formatted bool
}

func newGen1(prefs Preferences, base settings.Settings) *gen1 {
	s := base
	s.MoneyStyle = money.Style{MinFractionDigits: 2, MaxFractionDigits: 2}
	s.QuantityStyle = money.Style{MinFractionDigits: 0, MaxFractionDigits: 3}
	if symbol := strings.TrimSpace(prefs.String(Gen1PrefCurrency, "")); symbol != "" {
		s.CurrencySymbol = symbol
	}
	s.DisplayCurrency = prefs.Bool(Gen1PrefShowCurrency, s.DisplayCurrency)
	s.TaxRate = prefs.Float64(Gen1PrefTaxRate, s.TaxRate)
	s.ProductsFontSize = gen1FontSize(prefs.String(Gen1PrefSizeMainText, ""), s.ProductsFontSize)
	s.SecondaryFontSize = gen1FontSize(prefs.String(Gen1PrefSizeDopText, ""), s.SecondaryFontSize)
	s.CapitalizeNames = prefs.Bool(Gen1PrefCapitalText, s.CapitalizeNames)
	s.MultilineNames = prefs.Bool(Gen1PrefCellText, s.MultilineNames)
	s.DisplayMoney = prefs.Bool(Gen1PrefShowPrice, s.DisplayMoney)
	s.EditProductAfterCompleted = prefs.Bool(Gen1PrefEditAfterBuy, s.EditProductAfterCompleted)
	s.SaveAutocompletes = prefs.Bool(Gen1PrefAutoText, s.SaveAutocompletes)

	sort, formatted := Gen1Sort(prefs.Int64(Gen1PrefSortDefault, 0))
	if prefs.Has(Gen1PrefSortDefault) {
		s.DefaultSort = sort
	}
	if prefs.Has(Gen1PrefSumDefault) {
		s.DisplayTotal = Gen1DisplayTotal(prefs.Int64(Gen1PrefSumDefault, 0))
	}

	return &gen1{
		values:    values{formats: s.Formats(nil)},
		settings:  s,
		sort:      sort,
		formatted: formatted,
	}
}

func (c *gen1) Generation() Generation { return Gen1 }

func (c *gen1) Validate(s Snapshot) error {
	if err := s.Shoppings.Require(gen1ID, gen1ListName, gen1Alarm); err != nil {
		return err
	}
	if err := s.Products.Require(gen1ID, gen1ListID, gen1GoodsName, gen1Number,
		gen1NumberMeasure, gen1PriceMeasure, gen1GoodsBuy); err != nil {
		return err
	}
	return s.Autocompletes.Require(gen1ID, gen1CompleteName)
}

func (c *gen1) ShoppingKey(r Row) string      { return r.String(gen1ID) }
func (c *gen1) ProductKey(r Row) string       { return r.String(gen1ID) }
func (c *gen1) ProductParentKey(r Row) string { return r.String(gen1ListID) }
func (c *gen1) AutocompleteKey(r Row) string  { return r.String(gen1ID) }

func (c *gen1) name(raw string) string {
	name := strings.TrimSpace(raw)
	if c.settings.CapitalizeNames {
		return shopping.CapitalizeName(name)
	}
	return name
}

func (c *gen1) Shopping(r Row) shopping.Shopping {
	s := shopping.Shopping{
		ID:            r.Int64(gen1ID, 0),
		Name:          c.name(r.String(gen1ListName)),
		Total:         shopping.Derived(),
		Location:      shopping.LocationPurchases,
		Sort:          c.sort,
		SortFormatted: c.formatted,
	}
	if alarm := r.Millis(gen1Alarm); !alarm.IsZero() {
		s.Reminder = &alarm
	}
	return s
}

func (c *gen1) Product(r Row) shopping.Product {
	return shopping.Product{
		ID:        r.Int64(gen1ID, 0),
		Name:      c.name(r.String(gen1GoodsName)),
		Quantity:  c.quantity(r.Decimal(gen1Number), r.String(gen1NumberMeasure)),
		Price:     c.money(r.Decimal(gen1PriceMeasure)),
		Discount:  c.rate(decimal.Zero, true),
		TaxRate:   c.rate(decimal.Zero, true),
		Total:     shopping.Derived(),
		Completed: Gen1Completed(r.Int64(gen1GoodsBuy, 0)),
	}
}

func (c *gen1) Autocomplete(r Row) shopping.Autocomplete {
	return shopping.Autocomplete{
		ID:       r.Int64(gen1ID, 0),
		Name:     c.name(r.String(gen1CompleteName)),
		Quantity: c.quantity(decimal.Zero, ""),
		Price:    c.money(decimal.Zero),
		Discount: c.rate(decimal.Zero, true),
		TaxRate:  c.rate(decimal.Zero, true),
	}
}

// FinalizeList renumbers products by the sort_default code in force at
// import time: id order, or name/total in either direction.
func (c *gen1) FinalizeList(list shopping.ShoppingList) shopping.ShoppingList {
	products := sortedByID(list.Products, productID)
	if c.formatted {
		products = listing.SortItems(products, c.sort)
	}
	renumberProducts(products)
	list.Products = products
	return list
}

func (c *gen1) FinalizeLists(lists []shopping.ShoppingList) []shopping.ShoppingList {
	sorted := sortedByID(lists, listID)
	if c.formatted {
		sorted = listing.SortItems(sorted, c.sort)
	}
	renumberLists(sorted)
	return sorted
}

func (c *gen1) Settings() settings.Settings { return c.settings }
func (c *gen1) SaveAutocompletes() bool     { return c.settings.SaveAutocompletes }
