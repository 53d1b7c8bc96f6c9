package shop

// JobStatus is a step in the job lifecycle.
type JobStatus string

const (
	JobAssigned     JobStatus = "assigned"
	JobAcknowledged JobStatus = "acknowledged"
	JobInProgress   JobStatus = "in_progress"
	JobCompleted    JobStatus = "completed"
	JobDelivered    JobStatus = "delivered"
	JobCancelled    JobStatus = "cancelled"
)

var jobLifecycle = []JobStatus{JobAssigned, JobAcknowledged, JobInProgress, JobCompleted, JobDelivered}

// Rank is the position of s in the lifecycle, or -1 for cancelled and unknown values.
func (s JobStatus) Rank() int {
	for i, step := range jobLifecycle {
		if step == s {
			return i
		}
	}
	return -1
}

// Known reports whether s is a lifecycle step or cancelled.
func (s JobStatus) Known() bool {
	return s == JobCancelled || s.Rank() >= 0
}

// Terminal reports whether no further transition is allowed.
func (s JobStatus) Terminal() bool {
	return s == JobDelivered || s == JobCancelled
}

// Waiting reports whether the job still waits for a tailor to start.
func (s JobStatus) Waiting() bool {
	return s == JobAssigned || s == JobAcknowledged
}

// Next returns the following lifecycle step.
func (s JobStatus) Next() (JobStatus, bool) {
	r := s.Rank()
	if r < 0 || r+1 >= len(jobLifecycle) {
		return "", false
	}
	return jobLifecycle[r+1], true
}
