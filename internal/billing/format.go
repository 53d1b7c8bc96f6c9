package billing

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// CurrencySymbol prefixes amounts in human-readable messages.
const CurrencySymbol = "₹"

var displayLocale = language.MustParse("en-IN")

// FormatAmount renders v with exactly two fraction digits. Arithmetic stays in
// float64; rounding happens only here.
func FormatAmount(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "0.00"
	}
	return decimal.NewFromFloat(v).StringFixed(2)
}

// FormatMoneyText renders v with locale digit grouping and at most two
// fraction digits, prefixed with the currency symbol (₹20,000 / ₹1,234.5).
func FormatMoneyText(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		v = 0
	}
	p := message.NewPrinter(displayLocale)
	return CurrencySymbol + p.Sprint(number.Decimal(v, number.MaxFractionDigits(2)))
}

// FormatBillNumber zero-pads a sequential bill number to three digits.
func FormatBillNumber(n int) string {
	return fmt.Sprintf("%03d", n)
}
