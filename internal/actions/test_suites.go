package actions

import (
	"context"
	"strings"

	"tcm/internal/domain"
	"tcm/internal/store"
)

// ListTestSuites replaces the test-suite slice
func (a *Actions) ListTestSuites(ctx context.Context) error {
	suites, err := a.gateway.ListTestSuites(ctx)
	if err != nil {
		return a.fail(ctx, err, "Error fetching test suites", "Failed to load test suites. Please try again.")
	}
	return a.dispatch(ctx, store.TestSuitesFetched{TestSuites: suites})
}

// CreateTestSuite creates a test suite and appends the stored record
func (a *Actions) CreateTestSuite(ctx context.Context, ts domain.TestSuite) (domain.TestSuite, error) {
	if strings.TrimSpace(ts.Title) == "" {
		return domain.TestSuite{}, a.invalid("Title is required for a test suite.")
	}

	created, err := a.gateway.CreateTestSuite(ctx, ts)
	if err != nil {
		return domain.TestSuite{}, a.fail(ctx, err, "Error adding test suite", "Failed to add test suite. Please try again.")
	}
	return created, a.dispatch(ctx, store.TestSuiteAdded{TestSuite: created})
}

// UpdateTestSuite replaces the test suite with id. No refetch follows.
func (a *Actions) UpdateTestSuite(ctx context.Context, id string, ts domain.TestSuite) error {
	ts.ID = id
	if _, err := a.gateway.UpdateTestSuite(ctx, id, ts); err != nil {
		return a.fail(ctx, err, "Error updating test suite", "Failed to update test suite. Please try again.")
	}
	return a.dispatch(ctx, store.TestSuiteUpdated{ID: id, Data: ts})
}

// DeleteTestSuite removes the test suite with id. No refetch follows.
func (a *Actions) DeleteTestSuite(ctx context.Context, id string) error {
	if err := a.gateway.DeleteTestSuite(ctx, id); err != nil {
		return a.fail(ctx, err, "Error deleting test suite", "Failed to delete test suite. Please try again.")
	}
	return a.dispatch(ctx, store.TestSuiteDeleted{ID: id})
}

// ListUsers replaces the user slice
func (a *Actions) ListUsers(ctx context.Context) error {
	users, err := a.gateway.ListUsers(ctx)
	if err != nil {
		return a.fail(ctx, err, "Error fetching users", "Failed to fetch users. Please try again.")
	}
	return a.dispatch(ctx, store.UsersFetched{Users: users})
}
