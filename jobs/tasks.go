package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskDashboardRefresh rebuilds the cached dashboard snapshot.
	TaskDashboardRefresh = "dashboard:refresh"
)

// DashboardRefreshPayload records why a refresh was requested.
type DashboardRefreshPayload struct {
	Reason string `json:"reason"`
}

// NewDashboardRefreshTask constructs an Asynq task. Reason defaults to
// "scheduled".
func NewDashboardRefreshTask(reason string) (*asynq.Task, error) {
	if reason == "" {
		reason = "scheduled"
	}
	data, err := json.Marshal(DashboardRefreshPayload{Reason: reason})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskDashboardRefresh, data, asynq.Queue(QueueDefault)), nil
}
