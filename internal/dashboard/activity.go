package dashboard

import (
	"time"

	"github.com/startailors/tailorshop/internal/shop"
)

const (
	activityBills = 3
	activityJobs  = 2
	activityMax   = 5
)

// Activity is one line of the recent-activity feed.
type Activity struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Status    string    `json:"status"`
}

// RecentActivity takes the first three bills and first two jobs in input
// order.
func RecentActivity(bills []shop.Bill, jobs []shop.Job) []Activity {
	out := make([]Activity, 0, activityMax)
	for i, b := range bills {
		if i == activityBills {
			break
		}
		item := "Order"
		if len(b.Items) > 0 && b.Items[0].Type != "" {
			item = b.Items[0].Type
		}
		out = append(out, Activity{
			ID:        "bill-" + b.ID,
			Type:      "order",
			Message:   "New order from " + b.CustomerName + " - " + item,
			Timestamp: b.CreatedAt,
			Status:    "info",
		})
	}
	for i, j := range jobs {
		if i == activityJobs {
			break
		}
		verb, status := "assigned", "info"
		if j.Status == shop.JobCompleted {
			verb, status = "completed", "success"
		}
		out = append(out, Activity{
			ID:        "job-" + j.ID,
			Type:      "job",
			Message:   "Job " + verb + " - " + j.ItemType,
			Timestamp: j.CreatedAt,
			Status:    status,
		})
	}
	if len(out) > activityMax {
		out = out[:activityMax]
	}
	return out
}
