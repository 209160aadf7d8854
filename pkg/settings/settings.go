// Package settings holds the canonical user preferences. A Settings value is
// loaded once per run from a key-value Store and passed by value to every
// component that needs it.
package settings

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/amirasaad/shoplist/pkg/currency"
	"github.com/amirasaad/shoplist/pkg/domain/shopping"
	"github.com/amirasaad/shoplist/pkg/listing"
	"github.com/amirasaad/shoplist/pkg/money"
)

// Store is a string key-value preference store.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
}

// Settings is an immutable snapshot of the user preferences.
type Settings struct {
	MoneyStyle                money.Style
	QuantityStyle             money.Style
	CurrencyCode              string
	CurrencySymbol            string // overrides the symbol of CurrencyCode when set
	CurrencyPosition          string // PositionBefore, PositionAfter or "" for the currency default
	DisplayCurrency           bool
	TaxRate                   float64
	ProductsFontSize          shopping.FontSize
	SecondaryFontSize         shopping.FontSize
	CapitalizeNames           bool
	MultilineNames            bool
	DisplayCompleted          listing.DisplayCompleted
	DisplayTotal              shopping.DisplayTotal
	DisplayMoney              bool
	SaveAutocompletes         bool
	EditProductAfterCompleted bool
	DefaultSort               listing.Sort
}

// Default returns the settings used for every absent key.
func Default() Settings {
	return Settings{
		MoneyStyle:        money.MoneyStyle,
		QuantityStyle:     money.QuantityStyle,
		CurrencyCode:      currency.DefaultCode,
		DisplayCurrency:   true,
		ProductsFontSize:  shopping.FontSizeMedium,
		SecondaryFontSize: shopping.FontSizeMedium,
		CapitalizeNames:   true,
		DisplayCompleted:  listing.DisplayCompletedLast,
		DisplayTotal:      shopping.DisplayTotalAll,
		DisplayMoney:      true,
		SaveAutocompletes: true,
		DefaultSort:       listing.DefaultSort,
	}
}

// Load reads every key from store, substituting defaults for absent or
// malformed values. Only store failures are returned.
func Load(ctx context.Context, store Store) (Settings, error) {
	raw := make(map[string]string, len(allKeys))
	for _, key := range allKeys {
		v, ok, err := store.Get(ctx, key)
		if err != nil {
			return Settings{}, fmt.Errorf("load setting %q: %w", key, err)
		}
		if ok {
			raw[key] = v
		}
	}
	return FromValues(raw), nil
}

// Save writes every key of s to store.
func Save(ctx context.Context, store Store, s Settings) error {
	values := s.Values()
	for _, key := range allKeys {
		if err := store.Set(ctx, key, values[key]); err != nil {
			return fmt.Errorf("save setting %q: %w", key, err)
		}
	}
	return nil
}

// IsMigrated reads the marker of a legacy generation.
func IsMigrated(ctx context.Context, store Store, generation int) (bool, error) {
	v, ok, err := store.Get(ctx, MarkerKey(generation))
	if err != nil || !ok {
		return false, err
	}
	return parseBool(v, false), nil
}

var allKeys = []string{
	KeyMoneyMinFractionDigits, KeyMoneyMaxFractionDigits,
	KeyQuantityMinFractionDigits, KeyQuantityMaxFractionDigits,
	KeyCurrencyCode, KeyCurrencySymbol, KeyCurrencyPosition, KeyDisplayCurrency,
	KeyTaxRate, KeyProductsFontSize, KeySecondaryFontSize,
	KeyCapitalizeNames, KeyMultilineNames, KeyDisplayCompleted, KeyDisplayTotal,
	KeyDisplayMoney, KeySaveAutocompletes, KeyEditProductAfterCompleted,
	KeySortBy, KeySortAscending,
}

// Keys returns every preference key Settings is made of.
func Keys() []string {
	return append([]string(nil), allKeys...)
}

// FromValues builds Settings from raw string values.
func FromValues(raw map[string]string) Settings {
	d := Default()
	get := func(key string) (string, bool) {
		v, ok := raw[key]
		return strings.TrimSpace(v), ok
	}
	str := func(key, def string) string {
		if v, ok := get(key); ok {
			return v
		}
		return def
	}
	boolean := func(key string, def bool) bool {
		v, _ := get(key)
		return parseBool(v, def)
	}
	integer := func(key string, def int) int {
		v, _ := get(key)
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		return def
	}

	s := Settings{
		MoneyStyle: money.Style{
			MinFractionDigits: integer(KeyMoneyMinFractionDigits, d.MoneyStyle.MinFractionDigits),
			MaxFractionDigits: integer(KeyMoneyMaxFractionDigits, d.MoneyStyle.MaxFractionDigits),
		},
		QuantityStyle: money.Style{
			MinFractionDigits: integer(KeyQuantityMinFractionDigits, d.QuantityStyle.MinFractionDigits),
			MaxFractionDigits: integer(KeyQuantityMaxFractionDigits, d.QuantityStyle.MaxFractionDigits),
		},
		CurrencyCode:              strings.ToUpper(str(KeyCurrencyCode, d.CurrencyCode)),
		CurrencySymbol:            str(KeyCurrencySymbol, d.CurrencySymbol),
		CurrencyPosition:          parsePosition(str(KeyCurrencyPosition, "")),
		DisplayCurrency:           boolean(KeyDisplayCurrency, d.DisplayCurrency),
		TaxRate:                   d.TaxRate,
		ProductsFontSize:          d.ProductsFontSize,
		SecondaryFontSize:         d.SecondaryFontSize,
		CapitalizeNames:           boolean(KeyCapitalizeNames, d.CapitalizeNames),
		MultilineNames:            boolean(KeyMultilineNames, d.MultilineNames),
		DisplayCompleted:          d.DisplayCompleted,
		DisplayTotal:              d.DisplayTotal,
		DisplayMoney:              boolean(KeyDisplayMoney, d.DisplayMoney),
		SaveAutocompletes:         boolean(KeySaveAutocompletes, d.SaveAutocompletes),
		EditProductAfterCompleted: boolean(KeyEditProductAfterCompleted, d.EditProductAfterCompleted),
		DefaultSort: listing.Sort{
			By:        d.DefaultSort.By,
			Ascending: boolean(KeySortAscending, d.DefaultSort.Ascending),
		},
	}
	if s.CurrencyCode == "" {
		s.CurrencyCode = d.CurrencyCode
	}
	if v, ok := get(KeyTaxRate); ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			s.TaxRate = f
		}
	}
	if v, ok := get(KeyProductsFontSize); ok {
		s.ProductsFontSize = shopping.ParseFontSize(v)
	}
	if v, ok := get(KeySecondaryFontSize); ok {
		s.SecondaryFontSize = shopping.ParseFontSize(v)
	}
	if v, ok := get(KeyDisplayCompleted); ok {
		s.DisplayCompleted = listing.ParseDisplayCompleted(v)
	}
	if v, ok := get(KeyDisplayTotal); ok {
		s.DisplayTotal = shopping.ParseDisplayTotal(v)
	}
	if v, ok := get(KeySortBy); ok {
		s.DefaultSort.By = listing.ParseSortBy(v)
	}
	return s
}

// Values serializes s into the canonical string form.
func (s Settings) Values() map[string]string {
	return map[string]string{
		KeyMoneyMinFractionDigits:    strconv.Itoa(s.MoneyStyle.MinFractionDigits),
		KeyMoneyMaxFractionDigits:    strconv.Itoa(s.MoneyStyle.MaxFractionDigits),
		KeyQuantityMinFractionDigits: strconv.Itoa(s.QuantityStyle.MinFractionDigits),
		KeyQuantityMaxFractionDigits: strconv.Itoa(s.QuantityStyle.MaxFractionDigits),
		KeyCurrencyCode:              s.CurrencyCode,
		KeyCurrencySymbol:            s.CurrencySymbol,
		KeyCurrencyPosition:          s.CurrencyPosition,
		KeyDisplayCurrency:           strconv.FormatBool(s.DisplayCurrency),
		KeyTaxRate:                   strconv.FormatFloat(s.TaxRate, 'f', -1, 64),
		KeyProductsFontSize:          s.ProductsFontSize.String(),
		KeySecondaryFontSize:         s.SecondaryFontSize.String(),
		KeyCapitalizeNames:           strconv.FormatBool(s.CapitalizeNames),
		KeyMultilineNames:            strconv.FormatBool(s.MultilineNames),
		KeyDisplayCompleted:          s.DisplayCompleted.String(),
		KeyDisplayTotal:              s.DisplayTotal.String(),
		KeyDisplayMoney:              strconv.FormatBool(s.DisplayMoney),
		KeySaveAutocompletes:         strconv.FormatBool(s.SaveAutocompletes),
		KeyEditProductAfterCompleted: strconv.FormatBool(s.EditProductAfterCompleted),
		KeySortBy:                    s.DefaultSort.By.String(),
		KeySortAscending:             strconv.FormatBool(s.DefaultSort.Ascending),
	}
}

// Formats resolves the display formats. A nil registry uses the built-in
// currencies.
func (s Settings) Formats(reg *currency.Registry) shopping.Formats {
	if reg == nil {
		reg = currency.NewRegistry()
	}
	sign := money.None()
	if s.DisplayCurrency {
		sign = s.currencySign(reg)
	}
	return shopping.Formats{
		Currency:      sign,
		MoneyStyle:    s.MoneyStyle,
		QuantityStyle: s.QuantityStyle,
		PercentStyle:  money.PercentStyle,
	}
}

func (s Settings) currencySign(reg *currency.Registry) money.Sign {
	meta := reg.Get(s.CurrencyCode)
	if s.CurrencySymbol != "" {
		if bySymbol, ok := reg.BySymbol(s.CurrencySymbol); ok {
			meta = bySymbol
		} else {
			meta.Symbol = s.CurrencySymbol
			meta.SymbolBefore = false
		}
	}
	switch s.CurrencyPosition {
	case PositionBefore:
		meta.SymbolBefore = true
	case PositionAfter:
		meta.SymbolBefore = false
	}
	return meta.Sign()
}

func parseBool(raw string, def bool) bool {
	if b, err := strconv.ParseBool(strings.TrimSpace(raw)); err == nil {
		return b
	}
	return def
}

func parsePosition(raw string) string {
	switch p := strings.ToUpper(raw); p {
	case PositionBefore, PositionAfter:
		return p
	default:
		return ""
	}
}
