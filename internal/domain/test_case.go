package domain

// Unassigned is shown when a suite or user reference cannot be resolved
const Unassigned = "Unassigned"

// TestCase represents a single test case as exchanged with the backend.
// TestSuiteName and AssignedUserName are filled in on the client when the
// collection is fetched and are never sent back.
type TestCase struct {
	ID              string          `json:"id,omitempty"`
	Title           string          `json:"title"`
	Description     string          `json:"description"`
	Priority        Priority        `json:"priority"`
	ExecutionStatus ExecutionStatus `json:"executionStatus"`
	TestSuiteID     string          `json:"testSuiteId"`
	AssignedUserID  string          `json:"assignedUserId,omitempty"`

	TestSuiteName    string `json:"testSuiteName,omitempty"`
	AssignedUserName string `json:"assignedUserName,omitempty"`
}

// NewTestCase returns an empty draft with default priority and status
func NewTestCase() TestCase {
	return TestCase{
		Priority:        PriorityMedium,
		ExecutionStatus: StatusPending,
	}
}

// WithDefaults fills empty priority and status with their defaults
func (tc TestCase) WithDefaults() TestCase {
	tc.Priority = tc.Priority.Normalize()
	tc.ExecutionStatus = tc.ExecutionStatus.Normalize()
	return tc
}

// Record returns the persisted attribute set, without the display-only names
func (tc TestCase) Record() TestCase {
	tc.TestSuiteName = ""
	tc.AssignedUserName = ""
	return tc
}

// IsAssigned reports whether the test case references a user
func (tc TestCase) IsAssigned() bool {
	return tc.AssignedUserID != ""
}
