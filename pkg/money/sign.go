package money

// Kind tags the decoration of a Value.
type Kind int

const (
	KindNone Kind = iota
	KindCurrency
	KindPercent
	KindUnit
)

// Sign is a tagged variant: no decoration, a currency symbol placed before
// or after the number, a percent suffix, or a measurement unit suffix.
type Sign struct {
	Kind   Kind
	Symbol string
	Before bool
}

// None returns a sign without decoration.
func None() Sign { return Sign{} }

// Currency returns a currency sign.
func Currency(symbol string, before bool) Sign {
	return Sign{Kind: KindCurrency, Symbol: symbol, Before: before}
}

// Percent returns the percent sign.
func Percent() Sign { return Sign{Kind: KindPercent, Symbol: "%"} }

// Unit returns a measurement unit sign such as "kg".
func Unit(symbol string) Sign { return Sign{Kind: KindUnit, Symbol: symbol} }

func (s Sign) decorate(number string) string {
	switch s.Kind {
	case KindPercent:
		return number + "%"
	case KindCurrency:
		if s.Symbol == "" {
			return number
		}
		if !s.Before {
			return number + " " + s.Symbol
		}
		if len(number) > 0 && number[0] == '-' {
			return "-" + s.Symbol + number[1:]
		}
		return s.Symbol + number
	case KindUnit:
		if s.Symbol == "" {
			return number
		}
		return number + " " + s.Symbol
	default:
		return number
	}
}
