package api

import (
	"context"

	"tcm/internal/domain"
)

// ListTestCases fetches every test case
func (c *Client) ListTestCases(ctx context.Context) ([]domain.TestCase, error) {
	return getAll[domain.TestCase](ctx, c, PathTestCases)
}

// CreateTestCase creates a test case and returns the stored record
func (c *Client) CreateTestCase(ctx context.Context, tc domain.TestCase) (domain.TestCase, error) {
	tc = tc.Record()
	tc.ID = ""
	return create(ctx, c, PathTestCases, tc)
}

// UpdateTestCase replaces the test case with the given id
func (c *Client) UpdateTestCase(ctx context.Context, id string, tc domain.TestCase) (domain.TestCase, error) {
	tc = tc.Record()
	tc.ID = id
	return update(ctx, c, PathTestCases, id, tc)
}

// DeleteTestCase removes the test case with the given id
func (c *Client) DeleteTestCase(ctx context.Context, id string) error {
	return remove(ctx, c, PathTestCases, id)
}

// ListTestSuites fetches every test suite
func (c *Client) ListTestSuites(ctx context.Context) ([]domain.TestSuite, error) {
	return getAll[domain.TestSuite](ctx, c, PathTestSuites)
}

// CreateTestSuite creates a test suite and returns the stored record
func (c *Client) CreateTestSuite(ctx context.Context, ts domain.TestSuite) (domain.TestSuite, error) {
	ts.ID = ""
	return create(ctx, c, PathTestSuites, ts)
}

// UpdateTestSuite replaces the test suite with the given id
func (c *Client) UpdateTestSuite(ctx context.Context, id string, ts domain.TestSuite) (domain.TestSuite, error) {
	ts.ID = id
	return update(ctx, c, PathTestSuites, id, ts)
}

// DeleteTestSuite removes the test suite with the given id
func (c *Client) DeleteTestSuite(ctx context.Context, id string) error {
	return remove(ctx, c, PathTestSuites, id)
}

// ListUsers fetches every user
func (c *Client) ListUsers(ctx context.Context) ([]domain.User, error) {
	return getAll[domain.User](ctx, c, PathUsers)
}

// CreateUser creates a user
func (c *Client) CreateUser(ctx context.Context, u domain.User) (domain.User, error) {
	u.ID = ""
	return create(ctx, c, PathUsers, u)
}
