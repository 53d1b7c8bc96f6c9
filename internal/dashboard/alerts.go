package dashboard

import (
	"fmt"

	"github.com/startailors/tailorshop/internal/billing"
)

const (
	pendingJobsHigh = 5
	outstandingHigh = 20000
)

// Alert is a dashboard notice.
type Alert struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	Title    string `json:"title"`
	Message  string `json:"message"`
	Priority string `json:"priority"`
}

// Alerts derives notices from stats: waiting jobs (high above 5) and
// outstanding payments (high above 20,000).
func Alerts(s Stats) []Alert {
	alerts := []Alert{}
	if s.PendingJobs > 0 {
		alerts = append(alerts, Alert{
			ID:       "pending-jobs",
			Type:     "job",
			Title:    "Pending Jobs",
			Message:  fmt.Sprintf("%d jobs are waiting for tailor attention", s.PendingJobs),
			Priority: priority(float64(s.PendingJobs) > pendingJobsHigh),
		})
	}
	if s.OutstandingAmount > 0 {
		alerts = append(alerts, Alert{
			ID:       "outstanding-payments",
			Type:     "payment",
			Title:    "Outstanding Payments",
			Message:  billing.FormatMoneyText(s.OutstandingAmount) + " in outstanding payments",
			Priority: priority(s.OutstandingAmount > outstandingHigh),
		})
	}
	return alerts
}

func priority(high bool) string {
	if high {
		return "high"
	}
	return "medium"
}
