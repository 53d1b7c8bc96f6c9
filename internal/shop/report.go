package shop

import "time"

// RevenuePoint is one period of the revenue report.
type RevenuePoint struct {
	Period        string  `json:"period"`
	Revenue       float64 `json:"revenue"`
	Orders        int     `json:"orders"`
	AvgOrderValue float64 `json:"avg_order_value"`
}

// CustomerReport summarises one customer's orders.
type CustomerReport struct {
	CustomerID        string     `json:"customer_id"`
	Name              string     `json:"name"`
	Phone             string     `json:"phone"`
	Email             string     `json:"email,omitempty"`
	TotalOrders       int        `json:"total_orders"`
	TotalSpent        float64    `json:"total_spent"`
	OutstandingAmount float64    `json:"outstanding_amount"`
	LastOrderDate     *time.Time `json:"last_order_date,omitempty"`
	Status            string     `json:"status,omitempty"`
}

// TailorReport summarises one tailor's throughput.
type TailorReport struct {
	TailorID          string  `json:"tailor_id"`
	Name              string  `json:"name"`
	Phone             string  `json:"phone"`
	Specialization    string  `json:"specialization,omitempty"`
	TotalJobs         int     `json:"total_jobs"`
	CompletedJobs     int     `json:"completed_jobs"`
	PendingJobs       int     `json:"pending_jobs"`
	CompletionRate    float64 `json:"completion_rate"`
	AvgCompletionTime float64 `json:"avg_completion_time"`
	Revenue           float64 `json:"revenue,omitempty"`
}

// OutstandingOrder is one unpaid bill inside an outstanding report row.
type OutstandingOrder struct {
	BillID      string     `json:"bill_id"`
	Amount      float64    `json:"amount"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	DaysOverdue int        `json:"days_overdue"`
}

// OutstandingReport groups a customer's unpaid pending bills.
type OutstandingReport struct {
	CustomerID        string             `json:"customer_id"`
	CustomerName      string             `json:"customer_name"`
	Phone             string             `json:"phone"`
	OutstandingAmount float64            `json:"outstanding_amount"`
	OldestDue         *time.Time         `json:"oldest_due,omitempty"`
	OverdueDays       int                `json:"overdue_days"`
	Orders            []OutstandingOrder `json:"orders,omitempty"`
}

// BackendStats is the backend's own dashboard summary.
type BackendStats struct {
	TotalCustomers int     `json:"total_customers"`
	TotalBills     int     `json:"total_bills"`
	TotalTailors   int     `json:"total_tailors"`
	TotalJobs      int     `json:"total_jobs"`
	PendingJobs    int     `json:"pending_jobs"`
	TodayBills     int     `json:"today_bills"`
	TotalRevenue   float64 `json:"total_revenue"`
}

// CustomerStats is the backend's customer summary.
type CustomerStats struct {
	TotalCustomers           int     `json:"total_customers"`
	CustomersWithOutstanding int     `json:"customers_with_outstanding"`
	TotalOutstandingAmount   float64 `json:"total_outstanding_amount"`
}
