// Package tailors manages the workshop: tailors, job assignment and the job
// lifecycle.
package tailors

import "github.com/startailors/tailorshop/internal/shop"

// CanTransition reports whether a job may move from one status to another.
// Jobs only move forward through the lifecycle (skipping steps is allowed) and
// any non-terminal job may be cancelled.
func CanTransition(from, to shop.JobStatus) bool {
	if !from.Known() || !to.Known() || from.Terminal() || from == to {
		return false
	}
	if to == shop.JobCancelled {
		return true
	}
	return to.Rank() > from.Rank()
}
