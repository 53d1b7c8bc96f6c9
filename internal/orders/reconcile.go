// Package orders joins bills with their tailoring jobs into the order view
// and drives order checkout.
package orders

import (
	"encoding/json"

	"github.com/startailors/tailorshop/internal/shop"
)

// DefaultStatus is shown for a bill with no job and no status of its own.
const DefaultStatus = "pending"

// Order is a bill with the status of the job that references it.
type Order struct {
	shop.Bill
	JobID     string `json:"job_id,omitempty"`
	JobStatus string `json:"job_status"`
}

// MarshalJSON adds the derived money fields to the bill's own.
func (o Order) MarshalJSON() ([]byte, error) {
	type plain Order
	return json.Marshal(struct {
		plain
		Total   float64 `json:"total"`
		Balance float64 `json:"balance"`
	}{plain: plain(o), Total: o.Total(), Balance: o.Balance()})
}

// Reconcile produces one Order per bill, in bill order. Each bill takes the
// status of the first job whose BillID matches its ID; later matches are
// ignored.
func Reconcile(bills []shop.Bill, jobs []shop.Job) []Order {
	first := make(map[string]int, len(jobs))
	for i, job := range jobs {
		if job.BillID == "" {
			continue
		}
		if _, seen := first[job.BillID]; !seen {
			first[job.BillID] = i
		}
	}
	out := make([]Order, len(bills))
	for i, bill := range bills {
		o := Order{Bill: bill}
		if idx, ok := first[bill.ID]; ok && bill.ID != "" {
			job := jobs[idx]
			o.JobID = job.ID
			o.JobStatus = string(job.Status)
		}
		if o.JobStatus == "" {
			o.JobStatus = string(bill.Status)
		}
		if o.JobStatus == "" {
			o.JobStatus = DefaultStatus
		}
		out[i] = o
	}
	return out
}
