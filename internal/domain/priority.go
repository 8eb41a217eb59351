package domain

import "fmt"

// Priority represents how important a test case is
type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

// AllPriorities returns every valid priority, lowest first
func AllPriorities() []Priority {
	return []Priority{
		PriorityLow,
		PriorityMedium,
		PriorityHigh,
	}
}

// IsValid checks if the priority is one of the known values
func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow,
		PriorityMedium,
		PriorityHigh:
		return true
	default:
		return false
	}
}

// Normalize returns the priority, treating empty as PriorityMedium.
func (p Priority) Normalize() Priority {
	if p == "" {
		return PriorityMedium
	}
	return p
}

// Rank orders priorities Low < Medium < High. Unknown values rank 0.
func (p Priority) Rank() int {
	switch p {
	case PriorityLow:
		return 1
	case PriorityMedium:
		return 2
	case PriorityHigh:
		return 3
	default:
		return 0
	}
}

func (p Priority) String() string {
	return string(p)
}

// ParsePriority parses a string into a Priority
func ParsePriority(s string) (Priority, error) {
	priority := Priority(s)
	if !priority.IsValid() {
		return "", fmt.Errorf("invalid priority: %s", s)
	}
	return priority, nil
}
