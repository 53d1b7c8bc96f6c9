// Package reports loads the backend's revenue, customer, tailor and
// outstanding reports and derives the headline summary.
package reports

import (
	"strings"
	"time"

	"github.com/startailors/tailorshop/internal/shop"
)

const (
	dateLayout   = "2006-01-02"
	defaultRange = 30 * 24 * time.Hour
)

// Range bounds the revenue report, as YYYY-MM-DD dates.
type Range struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// DefaultRange covers the thirty days up to now.
func DefaultRange(now time.Time) Range {
	return Range{From: now.Add(-defaultRange).Format(dateLayout), To: now.Format(dateLayout)}
}

// withDefaults fills missing bounds from DefaultRange.
func (r Range) withDefaults(now time.Time) Range {
	def := DefaultRange(now)
	if r.From == "" {
		r.From = def.From
	}
	if r.To == "" {
		r.To = def.To
	}
	return r
}

func (r Range) valid() bool {
	from, err := time.Parse(dateLayout, r.From)
	if err != nil {
		return false
	}
	to, err := time.Parse(dateLayout, r.To)
	if err != nil {
		return false
	}
	return !to.Before(from)
}

// Summary is the headline row of the reports view.
type Summary struct {
	TotalRevenue     float64 `json:"total_revenue"`
	TotalBills       int     `json:"total_bills"`
	AvgOrderValue    float64 `json:"avg_order_value"`
	TotalOutstanding float64 `json:"total_outstanding"`
}

// Summarize totals revenue and bills across periods; the average is 0 when
// there are no bills.
func Summarize(revenue []shop.RevenuePoint, outstanding []shop.OutstandingReport) Summary {
	var s Summary
	for _, p := range revenue {
		s.TotalRevenue += p.Revenue
		s.TotalBills += p.Orders
	}
	if s.TotalBills > 0 {
		s.AvgOrderValue = s.TotalRevenue / float64(s.TotalBills)
	}
	for _, o := range outstanding {
		s.TotalOutstanding += o.OutstandingAmount
	}
	return s
}

// Report is the full reports view.
type Report struct {
	Range       Range                    `json:"range"`
	Summary     Summary                  `json:"summary"`
	Revenue     []shop.RevenuePoint      `json:"revenue"`
	Customers   []shop.CustomerReport    `json:"customers"`
	Tailors     []shop.TailorReport      `json:"tailors"`
	Outstanding []shop.OutstandingReport `json:"outstanding"`
}

func matches(term, name, phone string) bool {
	return strings.Contains(strings.ToLower(name), term) || strings.Contains(phone, term)
}

// Search narrows the customer, tailor and outstanding tables to rows whose
// name contains term (case-insensitive) or whose phone contains it. Revenue
// and Summary are left as loaded.
func (r Report) Search(term string) Report {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return r
	}
	out := r
	out.Customers = filter(r.Customers, func(c shop.CustomerReport) bool { return matches(term, c.Name, c.Phone) })
	out.Tailors = filter(r.Tailors, func(t shop.TailorReport) bool { return matches(term, t.Name, t.Phone) })
	out.Outstanding = filter(r.Outstanding, func(o shop.OutstandingReport) bool { return matches(term, o.CustomerName, o.Phone) })
	return out
}

func filter[T any](rows []T, keep func(T) bool) []T {
	out := make([]T, 0, len(rows))
	for _, row := range rows {
		if keep(row) {
			out = append(out, row)
		}
	}
	return out
}
