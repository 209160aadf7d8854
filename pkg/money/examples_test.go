package money_test

import (
	"fmt"

	"github.com/amirasaad/shoplist/pkg/money"
	"github.com/shopspring/decimal"
)

// ExampleValue_Format shows display and edit strings side by side
func ExampleValue_Format() {
	price := money.New(decimal.RequireFromString("1234.5"), money.Currency("€", false), money.Style{
		MinFractionDigits: 2,
		MaxFractionDigits: 2,
		DecimalSeparator:  ",",
		GroupingSeparator: ".",
	})
	whole := money.New(decimal.NewFromInt(3), money.Currency("€", false), money.MoneyStyle)

	fmt.Println(price.Format())
	fmt.Println(price.FormatRoundTrip())
	fmt.Println(whole.Format())
	fmt.Println(whole.FormatRoundTrip())
	// Output:
	// 1.234,50 €
	// 1234.50
	// 3.00 €
	// 3
}

// ExampleValue_FromPercent resolves a percent discount against a line total
func ExampleValue_FromPercent() {
	line := money.New(decimal.NewFromInt(80), money.Currency("$", true), money.MoneyStyle)
	discount := money.New(decimal.NewFromInt(15), money.Percent(), money.PercentStyle)

	fmt.Println(discount.Format())
	fmt.Println(discount.FromPercent(line).Format())
	// Output:
	// 15%
	// $12.00
}
