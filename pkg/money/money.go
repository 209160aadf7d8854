// Package money provides the decimal value object shared by prices,
// quantities, discounts, tax rates and totals.
//
// A Value couples an exact decimal amount with the Sign it is displayed with
// (currency symbol, percent or measurement unit) and the Style that controls
// how many fraction digits are shown.
// Invariants:
//   - Rounding is HALF_UP (half away from zero) at Style.MaxFractionDigits.
//   - Parse(v.FormatRoundTrip()) equals v for every v whose scale does not
//     exceed Style.MaxFractionDigits.
//   - IsEmpty reports true when the amount is <= 0 or the value is invalid.
package money

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Value is an immutable decimal amount with display metadata.
type Value struct {
	amount decimal.Decimal
	sign   Sign
	style  Style
	nan    bool
}

// New creates a Value from an exact decimal amount.
func New(amount decimal.Decimal, sign Sign, style Style) Value {
	return Value{
		amount: amount,
		sign:   sign,
		style:  style.normalize(),
	}
}

// FromFloat creates a Value from a float64 as read from the canonical store.
// NaN and infinite inputs produce an invalid Value that formats as "".
func FromFloat(amount float64, sign Sign, style Style) Value {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return Value{sign: sign, style: style.normalize(), nan: true}
	}
	return New(decimal.NewFromFloat(amount), sign, style)
}

// Zero returns a zero amount with the given sign and style.
func Zero(sign Sign, style Style) Value {
	return New(decimal.Zero, sign, style)
}

// Parse reads a round-trip (edit field) string: optional minus, digits and
// a period decimal separator, no grouping and no symbol.
func Parse(s string, sign Sign, style Style) (Value, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Value{}, fmt.Errorf("%w: empty string", ErrInvalidAmount)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Value{}, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return New(d, sign, style), nil
}

// Decimal returns the exact amount.
func (v Value) Decimal() decimal.Decimal {
	return v.amount
}

// Float64 returns the amount as float64 for persistence.
func (v Value) Float64() float64 {
	if v.nan {
		return 0
	}
	f, _ := v.amount.Float64()
	return f
}

// Sign returns how the value is decorated on display.
func (v Value) Sign() Sign {
	return v.sign
}

// Style returns the fraction digit configuration.
func (v Value) Style() Style {
	return v.style
}

// IsValid reports whether the value holds a finite amount. The zero Value
// is a valid zero.
func (v Value) IsValid() bool {
	return !v.nan
}

// IsPercent reports whether the amount is a percentage of some base.
func (v Value) IsPercent() bool {
	return v.sign.Kind == KindPercent
}

// IsEmpty reports whether the amount is <= 0.
func (v Value) IsEmpty() bool {
	return v.nan || v.amount.Sign() <= 0
}

// IsNotEmpty is the negation of IsEmpty.
func (v Value) IsNotEmpty() bool {
	return !v.IsEmpty()
}

// WithSign returns a copy decorated with another sign.
func (v Value) WithSign(sign Sign) Value {
	v.sign = sign
	return v
}

// WithStyle returns a copy formatted with another style.
func (v Value) WithStyle(style Style) Value {
	v.style = style.normalize()
	return v
}

// Add returns v + other, keeping the sign and style of v.
func (v Value) Add(other Value) Value {
	return v.combine(other, v.amount.Add(other.amount))
}

// Sub returns v - other, keeping the sign and style of v.
func (v Value) Sub(other Value) Value {
	return v.combine(other, v.amount.Sub(other.amount))
}

// Mul returns v * other, keeping the sign and style of v.
func (v Value) Mul(other Value) Value {
	return v.combine(other, v.amount.Mul(other.amount))
}

func (v Value) combine(other Value, amount decimal.Decimal) Value {
	if v.nan || other.nan {
		return Value{sign: v.sign, style: v.style, nan: true}
	}
	v.amount = amount
	return v
}

// FromPercent resolves v against base. A percent value returns
// base * v / 100 with the sign and style of base; any other value is
// returned unchanged.
func (v Value) FromPercent(base Value) Value {
	if !v.IsPercent() {
		return v
	}
	if v.nan || base.nan {
		return Value{sign: base.sign, style: base.style, nan: true}
	}
	return Value{
		amount: base.amount.Mul(v.amount).Shift(-2),
		sign:   base.sign,
		style:  base.style,
	}
}

// Equal compares amounts only.
func (v Value) Equal(other Value) bool {
	return v.nan == other.nan && v.amount.Equal(other.amount)
}

// Cmp compares amounts; invalid values sort before valid ones.
func (v Value) Cmp(other Value) int {
	switch {
	case !v.nan && other.nan:
		return 1
	case v.nan && !other.nan:
		return -1
	}
	return v.amount.Cmp(other.amount)
}

// Format returns the display string: grouped digits, locale separators,
// at least MinFractionDigits and the sign decoration. Invalid values
// format as "".
func (v Value) Format() string {
	if v.nan {
		return ""
	}
	return v.sign.decorate(v.style.display(v.amount))
}

// FormatRoundTrip returns the edit-field string: no grouping, period
// separator, no decoration. Trailing zeros up to MinFractionDigits are only
// kept when the rounded value is not an integer.
func (v Value) FormatRoundTrip() string {
	if v.nan {
		return ""
	}
	return v.style.roundTrip(v.amount)
}

// String implements fmt.Stringer with the display format.
func (v Value) String() string {
	return v.Format()
}
