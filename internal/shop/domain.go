// Package shop defines the typed tailoring-shop model used past the API
// ingestion boundary.
package shop

import (
	"time"

	"github.com/startailors/tailorshop/internal/billing"
)

// BillStatus tracks the payment/production state recorded on a bill.
type BillStatus string

const (
	BillPending    BillStatus = "pending"
	BillInProgress BillStatus = "in_progress"
	BillCompleted  BillStatus = "completed"
)

// ValidBillStatus reports whether s can be sent to the bill status endpoint.
func ValidBillStatus(s BillStatus) bool {
	switch s {
	case BillPending, BillInProgress, BillCompleted:
		return true
	}
	return false
}

// TailorStatus marks whether a tailor takes new work.
type TailorStatus string

const (
	TailorActive   TailorStatus = "active"
	TailorInactive TailorStatus = "inactive"
)

// Priority ranks jobs for tailors.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// ValidPriority reports whether p is one of the three known priorities.
func ValidPriority(p Priority) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Customer is a shop customer.
type Customer struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	Phone              string    `json:"phone"`
	Email              string    `json:"email,omitempty"`
	Address            string    `json:"address,omitempty"`
	Notes              string    `json:"notes,omitempty"`
	OutstandingBalance float64   `json:"outstanding_balance,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
}

// BillItem is one garment line on a bill.
type BillItem struct {
	Type         string            `json:"type"`
	Description  string            `json:"description"`
	Quantity     int               `json:"quantity"`
	Rate         float64           `json:"rate"`
	Measurements map[string]string `json:"measurements,omitempty"`
}

// Total is quantity × rate.
func (i BillItem) Total() float64 {
	return billing.ItemTotal(float64(i.Quantity), i.Rate)
}

// Line converts the item for the calculator.
func (i BillItem) Line() billing.Line {
	return billing.Line{Quantity: float64(i.Quantity), Rate: i.Rate}
}

// Bill is a customer order with line items and payment state. Total and
// Balance are always derived from Subtotal, Discount and Advance.
type Bill struct {
	ID                  string     `json:"id"`
	Number              string     `json:"bill_no,omitempty"`
	CustomerID          string     `json:"customer_id"`
	CustomerName        string     `json:"customer_name"`
	CustomerPhone       string     `json:"customer_phone,omitempty"`
	CustomerAddress     string     `json:"customer_address,omitempty"`
	Items               []BillItem `json:"items"`
	Subtotal            float64    `json:"subtotal"`
	Discount            float64    `json:"discount"`
	Advance             float64    `json:"advance"`
	Status              BillStatus `json:"status"`
	DueDate             string     `json:"due_date,omitempty"`
	SpecialInstructions string     `json:"special_instructions,omitempty"`
	DesignImages        []string   `json:"design_images,omitempty"`
	Drawings            []string   `json:"drawings,omitempty"`
	Signature           string     `json:"signature,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
}

// Total is subtotal − discount.
func (b Bill) Total() float64 {
	return billing.Total(b.Subtotal, b.Discount)
}

// Balance is total − advance.
func (b Bill) Balance() float64 {
	return billing.Balance(b.Total(), b.Advance)
}

// Lines returns the items in calculator form.
func (b Bill) Lines() []billing.Line {
	lines := make([]billing.Line, len(b.Items))
	for i, item := range b.Items {
		lines[i] = item.Line()
	}
	return lines
}

// Tailor is a member of the workshop.
type Tailor struct {
	ID             string       `json:"id"`
	Name           string       `json:"name"`
	Phone          string       `json:"phone"`
	Email          string       `json:"email,omitempty"`
	Specialization string       `json:"specialization,omitempty"`
	Experience     string       `json:"experience,omitempty"`
	Status         TailorStatus `json:"status"`
	TotalJobs      int          `json:"total_jobs"`
	CompletedJobs  int          `json:"completed_jobs"`
	PendingJobs    int          `json:"pending_jobs"`
	CreatedAt      time.Time    `json:"created_at"`
}

// CompletionRate is completed/total × 100, or 0 when the tailor has no jobs.
func (t Tailor) CompletionRate() float64 {
	if t.TotalJobs <= 0 {
		return 0
	}
	return float64(t.CompletedJobs) / float64(t.TotalJobs) * 100
}

// JobItem is the garment detail handed to a tailor.
type JobItem struct {
	Type         string            `json:"type"`
	Description  string            `json:"description"`
	Measurements map[string]string `json:"measurements,omitempty"`
}

// Job is a work assignment, optionally linked to a bill.
type Job struct {
	ID            string     `json:"id"`
	BillID        string     `json:"bill_id,omitempty"`
	TailorID      string     `json:"tailor_id"`
	TailorName    string     `json:"tailor_name,omitempty"`
	CustomerName  string     `json:"customer_name,omitempty"`
	CustomerPhone string     `json:"customer_phone,omitempty"`
	ItemType      string     `json:"item_type"`
	Items         []JobItem  `json:"items,omitempty"`
	Priority      Priority   `json:"priority"`
	Status        JobStatus  `json:"status"`
	Instructions  string     `json:"instructions,omitempty"`
	AssignedAt    *time.Time `json:"assigned_date,omitempty"`
	DueDate       *time.Time `json:"due_date,omitempty"`
	CompletedAt   *time.Time `json:"completed_date,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// UPISettings carries the payee used for payment QR codes.
type UPISettings struct {
	UPIID        string `json:"upi_id"`
	BusinessName string `json:"business_name"`
}

// BusinessSettings is the letterhead printed on bills.
type BusinessSettings struct {
	BusinessName string `json:"business_name"`
	Address      string `json:"address,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Email        string `json:"email,omitempty"`
}

const (
	DefaultUPIID        = "startailors@paytm"
	DefaultBusinessName = "STAR TAILORS"
)

// DefaultUPISettings is substituted when settings cannot be loaded.
func DefaultUPISettings() UPISettings {
	return UPISettings{UPIID: DefaultUPIID, BusinessName: DefaultBusinessName}
}

// DefaultBusinessSettings is substituted when settings cannot be loaded.
func DefaultBusinessSettings() BusinessSettings {
	return BusinessSettings{BusinessName: DefaultBusinessName}
}

// User is the signed-in operator.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// Pagination mirrors the backend list envelope.
type Pagination struct {
	Page       int  `json:"current_page"`
	TotalPages int  `json:"total_pages"`
	Total      int  `json:"total"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
}
