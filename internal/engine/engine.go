// Package engine implements the assignment and categorization scoring rules.
// All functions are pure over their inputs; persistence and notification side
// effects are composed by the service layer.
package engine

import "time"

const (
	// CategorizeThreshold is the minimum match score (exclusive) required to
	// record a task categorization.
	CategorizeThreshold = 30

	// AutoAssignThreshold is the minimum candidate score (exclusive) required
	// for the auto-assignment sweep to assign a task.
	AutoAssignThreshold = 60

	// WorkloadPerTask is the workload percentage one active task consumes.
	WorkloadPerTask = 15

	// WorkloadExclusionBound excludes employees at or above this workload from
	// the recommendation candidate pool.
	WorkloadExclusionBound = 90

	// OverloadAlertBound is the workload at which an overload alert fires.
	OverloadAlertBound = 80

	// CompletedTaskRetention is how long completed tasks are kept before the
	// cleanup sweep purges them.
	CompletedTaskRetention = 15 * 24 * time.Hour
)

// ClampWorkload bounds a workload value to the valid 0-100 range.
func ClampWorkload(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
