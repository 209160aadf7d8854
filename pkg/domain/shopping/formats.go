package shopping

import "github.com/amirasaad/shoplist/pkg/money"

// Formats bundles the signs and styles used to turn stored floats into
// money values.
type Formats struct {
	Currency      money.Sign
	MoneyStyle    money.Style
	QuantityStyle money.Style
	PercentStyle  money.Style
}

// DefaultFormats is used when no settings have been loaded.
var DefaultFormats = Formats{
	Currency:      money.Currency("$", true),
	MoneyStyle:    money.MoneyStyle,
	QuantityStyle: money.QuantityStyle,
	PercentStyle:  money.PercentStyle,
}

// Money returns a currency value.
func (f Formats) Money(amount float64) money.Value {
	return money.FromFloat(amount, f.Currency, f.MoneyStyle)
}

// ZeroMoney returns a zero currency value.
func (f Formats) ZeroMoney() money.Value {
	return money.Zero(f.Currency, f.MoneyStyle)
}

// Quantity returns a quantity with an optional unit symbol.
func (f Formats) Quantity(amount float64, unit string) money.Value {
	return money.FromFloat(amount, money.Unit(unit), f.QuantityStyle)
}

// Rate returns a discount or tax value, either a percent or an absolute
// amount in the currency.
func (f Formats) Rate(amount float64, asPercent bool) money.Value {
	if asPercent {
		return money.FromFloat(amount, money.Percent(), f.PercentStyle)
	}
	return f.Money(amount)
}
