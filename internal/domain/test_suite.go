package domain

// TestSuite groups test cases. Cases point at their suite through
// TestCase.TestSuiteID; the suite does not list them.
type TestSuite struct {
	ID          string `json:"id,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// NewTestSuite returns an empty draft
func NewTestSuite() TestSuite {
	return TestSuite{}
}

// User is a person test cases can be assigned to
type User struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
}
