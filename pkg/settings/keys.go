package settings

import "fmt"

// Preference keys of the canonical store.
const (
	KeyMoneyMinFractionDigits    = "money_min_fraction_digits"
	KeyMoneyMaxFractionDigits    = "money_max_fraction_digits"
	KeyQuantityMinFractionDigits = "quantity_min_fraction_digits"
	KeyQuantityMaxFractionDigits = "quantity_max_fraction_digits"
	KeyCurrencyCode              = "currency_code"
	KeyCurrencySymbol            = "currency_symbol"
	KeyCurrencyPosition          = "currency_position"
	KeyDisplayCurrency           = "display_currency"
	KeyTaxRate                   = "tax_rate"
	KeyProductsFontSize          = "products_font_size"
	KeySecondaryFontSize         = "secondary_font_size"
	KeyCapitalizeNames           = "capitalize_names"
	KeyMultilineNames            = "multiline_names"
	KeyDisplayCompleted          = "display_completed"
	KeyDisplayTotal              = "display_total"
	KeyDisplayMoney              = "display_money"
	KeySaveAutocompletes         = "save_autocompletes"
	KeyEditProductAfterCompleted = "edit_product_after_completed"
	KeySortBy                    = "sort_by"
	KeySortAscending             = "sort_ascending"
)

// Currency symbol placement values of KeyCurrencyPosition.
const (
	PositionBefore = "BEFORE"
	PositionAfter  = "AFTER"
)

// MarkerKey is the boolean preference recording that a legacy generation
// has been imported.
func MarkerKey(generation int) string {
	return fmt.Sprintf("legacy_gen%d_migrated", generation)
}
