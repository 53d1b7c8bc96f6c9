// Package billing holds the pure bill arithmetic, the garment catalog and the
// display helpers shared by the order and dashboard views.
package billing

import "math"

// Line is the minimum a bill line needs to be priced.
type Line struct {
	Quantity float64
	Rate     float64
}

// Totals is the derived money state of a bill.
type Totals struct {
	Subtotal float64 `json:"subtotal"`
	Discount float64 `json:"discount"`
	Total    float64 `json:"total"`
	Advance  float64 `json:"advance"`
	Balance  float64 `json:"balance"`
}

// ItemTotal returns quantity × rate. Negative, NaN and infinite inputs count as 0.
func ItemTotal(quantity, rate float64) float64 {
	return nonNegative(quantity) * nonNegative(rate)
}

// Subtotal sums ItemTotal over lines.
func Subtotal(lines []Line) float64 {
	var sum float64
	for _, l := range lines {
		sum += ItemTotal(l.Quantity, l.Rate)
	}
	return sum
}

// Total is subtotal minus discount. A discount larger than the subtotal yields
// a negative total; no floor is applied.
func Total(subtotal, discount float64) float64 {
	return subtotal - discount
}

// Balance is total minus advance.
func Balance(total, advance float64) float64 {
	return total - advance
}

// Compute derives the full Totals for lines with the given adjustments.
func Compute(lines []Line, discount, advance float64) Totals {
	subtotal := Subtotal(lines)
	total := Total(subtotal, discount)
	return Totals{
		Subtotal: subtotal,
		Discount: discount,
		Total:    total,
		Advance:  advance,
		Balance:  Balance(total, advance),
	}
}

func nonNegative(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
