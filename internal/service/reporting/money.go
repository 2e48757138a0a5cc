package reporting

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Currency of every amount in a season document.
const Currency = money.USD

var hundred = decimal.NewFromInt(100)

// cents converts an engine figure to a decimal rounded to the cent.
func cents(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(2)
}

// FormatUSD renders an amount as "$1,234.56".
func FormatUSD(amount decimal.Decimal) string {
	cur := money.GetCurrency(Currency)
	minor := amount.Shift(int32(cur.Fraction)).Round(0).IntPart()
	return money.New(minor, Currency).Display()
}

// FormatUSDFloat renders an engine figure as "$1,234.56".
func FormatUSDFloat(amount float64) string {
	return FormatUSD(decimal.NewFromFloat(amount))
}

// percent returns part/whole*100 rounded to one decimal, 0 for an empty whole.
func percent(part, whole float64) float64 {
	if whole <= 0 {
		return 0
	}
	return decimal.NewFromFloat(part).Div(decimal.NewFromFloat(whole)).Mul(hundred).Round(1).InexactFloat64()
}
