package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

const maxFractionDigits = 8

// Style controls fraction digits and separators of the display format.
type Style struct {
	MinFractionDigits int    `validate:"gte=0,lte=8"`
	MaxFractionDigits int    `validate:"gte=0,lte=8"`
	DecimalSeparator  string // "." when empty
	GroupingSeparator string // "," when empty
}

// Common styles.
var (
	MoneyStyle    = Style{MinFractionDigits: 2, MaxFractionDigits: 2}
	QuantityStyle = Style{MinFractionDigits: 0, MaxFractionDigits: 3}
	PercentStyle  = Style{MinFractionDigits: 0, MaxFractionDigits: 3}
)

// normalize clamps digits into 0 <= min <= max <= 8 and fills separators.
func (s Style) normalize() Style {
	s.MaxFractionDigits = clamp(s.MaxFractionDigits, 0, maxFractionDigits)
	s.MinFractionDigits = clamp(s.MinFractionDigits, 0, s.MaxFractionDigits)
	if s.DecimalSeparator == "" {
		s.DecimalSeparator = "."
	}
	if s.GroupingSeparator == "" {
		s.GroupingSeparator = ","
	}
	return s
}

func clamp(n, lo, hi int) int {
	return max(lo, min(n, hi))
}

// split rounds HALF_UP and returns the sign, integer digits and fraction
// digits without trailing zeros.
func (s Style) split(d decimal.Decimal) (negative bool, whole, frac string, integer bool) {
	rounded := d.Round(int32(s.MaxFractionDigits))
	whole, frac, _ = strings.Cut(rounded.Abs().String(), ".")
	frac = strings.TrimRight(frac, "0")
	return rounded.Sign() < 0, whole, frac, frac == ""
}

func (s Style) pad(frac string) string {
	if n := s.MinFractionDigits - len(frac); n > 0 {
		return frac + strings.Repeat("0", n)
	}
	return frac
}

func (s Style) display(d decimal.Decimal) string {
	negative, whole, frac, _ := s.split(d)
	frac = s.pad(frac)

	var b strings.Builder
	if negative {
		b.WriteByte('-')
	}
	b.WriteString(group(whole, s.GroupingSeparator))
	if frac != "" {
		b.WriteString(s.DecimalSeparator)
		b.WriteString(frac)
	}
	return b.String()
}

func (s Style) roundTrip(d decimal.Decimal) string {
	negative, whole, frac, integer := s.split(d)
	if !integer {
		frac = s.pad(frac)
	}

	var b strings.Builder
	if negative {
		b.WriteByte('-')
	}
	b.WriteString(whole)
	if frac != "" {
		b.WriteByte('.')
		b.WriteString(frac)
	}
	return b.String()
}

// group inserts sep between every three digits counted from the right.
func group(digits, sep string) string {
	if len(digits) <= 3 || sep == "" {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteString(sep)
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
