package dashboard

import (
	"time"

	"github.com/startailors/tailorshop/internal/shop"
)

// Stats are the dashboard counters.
type Stats struct {
	TotalCustomers    int     `json:"total_customers"`
	ActiveOrders      int     `json:"active_orders"`
	CompletedOrders   int     `json:"completed_orders"`
	TotalRevenue      float64 `json:"total_revenue"`
	MonthlyRevenue    float64 `json:"monthly_revenue"`
	OutstandingAmount float64 `json:"outstanding_amount"`
	ActiveTailors     int     `json:"active_tailors"`
	PendingJobs       int     `json:"pending_jobs"`
}

// Aggregate computes Stats. Monthly revenue covers bills created in the
// calendar month and year of now, in now's location. Outstanding counts
// pending bills only.
func Aggregate(customers []shop.Customer, bills []shop.Bill, tailors []shop.Tailor, jobs []shop.Job, now time.Time) Stats {
	s := Stats{TotalCustomers: len(customers)}
	year, month, _ := now.Date()
	for _, b := range bills {
		total := b.Total()
		switch b.Status {
		case shop.BillPending:
			s.ActiveOrders++
			s.OutstandingAmount += b.Balance()
		case shop.BillInProgress:
			s.ActiveOrders++
		case shop.BillCompleted:
			s.CompletedOrders++
		}
		s.TotalRevenue += total
		if !b.CreatedAt.IsZero() {
			by, bm, _ := b.CreatedAt.In(now.Location()).Date()
			if by == year && bm == month {
				s.MonthlyRevenue += total
			}
		}
	}
	for _, t := range tailors {
		if t.Status == shop.TailorActive {
			s.ActiveTailors++
		}
	}
	for _, j := range jobs {
		if j.Status.Waiting() {
			s.PendingJobs++
		}
	}
	return s
}
