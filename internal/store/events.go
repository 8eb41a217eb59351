package store

import "tcm/internal/domain"

// Event describes a state change. Each slice reducer handles the events it
// knows and ignores the rest.
type Event interface {
	Kind() string
}

// TestCasesFetched replaces the whole test-case slice
type TestCasesFetched struct{ TestCases []domain.TestCase }

// TestCaseAdded appends one test case
type TestCaseAdded struct{ TestCase domain.TestCase }

// TestCaseUpdated replaces the test case with ID by Data
type TestCaseUpdated struct {
	ID   string
	Data domain.TestCase
}

// TestCaseDeleted removes the test case with ID
type TestCaseDeleted struct{ ID string }

// TestSuitesFetched replaces the whole test-suite slice
type TestSuitesFetched struct{ TestSuites []domain.TestSuite }

// TestSuiteAdded appends one test suite
type TestSuiteAdded struct{ TestSuite domain.TestSuite }

// TestSuiteUpdated replaces the test suite with ID by Data
type TestSuiteUpdated struct {
	ID   string
	Data domain.TestSuite
}

// TestSuiteDeleted removes the test suite with ID
type TestSuiteDeleted struct{ ID string }

// UsersFetched replaces the whole user slice
type UsersFetched struct{ Users []domain.User }

func (TestCasesFetched) Kind() string  { return "FETCH_TEST_CASES" }
func (TestCaseAdded) Kind() string     { return "ADD_TEST_CASE" }
func (TestCaseUpdated) Kind() string   { return "UPDATE_TEST_CASE" }
func (TestCaseDeleted) Kind() string   { return "DELETE_TEST_CASE" }
func (TestSuitesFetched) Kind() string { return "FETCH_TEST_SUITES" }
func (TestSuiteAdded) Kind() string    { return "ADD_TEST_SUITE" }
func (TestSuiteUpdated) Kind() string  { return "UPDATE_TEST_SUITE" }
func (TestSuiteDeleted) Kind() string  { return "DELETE_TEST_SUITE" }
func (UsersFetched) Kind() string      { return "FETCH_USERS" }
