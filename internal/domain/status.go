package domain

import "fmt"

// ExecutionStatus represents the last known execution outcome of a test case
type ExecutionStatus string

const (
	StatusPending    ExecutionStatus = "Pending"
	StatusInProgress ExecutionStatus = "In Progress"
	StatusPassed     ExecutionStatus = "Passed"
	StatusFailed     ExecutionStatus = "Failed"
)

// AllExecutionStatuses returns every valid status in form/filter order
func AllExecutionStatuses() []ExecutionStatus {
	return []ExecutionStatus{
		StatusPending,
		StatusInProgress,
		StatusPassed,
		StatusFailed,
	}
}

// IsValid checks if the status is one of the known values
func (s ExecutionStatus) IsValid() bool {
	switch s {
	case StatusPending,
		StatusInProgress,
		StatusPassed,
		StatusFailed:
		return true
	default:
		return false
	}
}

// Normalize returns the status, treating empty as StatusPending.
func (s ExecutionStatus) Normalize() ExecutionStatus {
	if s == "" {
		return StatusPending
	}
	return s
}

func (s ExecutionStatus) String() string {
	return string(s)
}

// ParseExecutionStatus parses a string into an ExecutionStatus
func ParseExecutionStatus(s string) (ExecutionStatus, error) {
	status := ExecutionStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid execution status: %s", s)
	}
	return status, nil
}
