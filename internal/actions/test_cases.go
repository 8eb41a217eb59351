package actions

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"tcm/internal/domain"
	"tcm/internal/store"
)

// ListTestCases fetches test cases, suites and users concurrently and stores
// the denormalized test cases. If any request fails nothing is stored.
func (a *Actions) ListTestCases(ctx context.Context) error {
	var (
		cases  []domain.TestCase
		suites []domain.TestSuite
		users  []domain.User
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		cases, err = a.gateway.ListTestCases(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		suites, err = a.gateway.ListTestSuites(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		users, err = a.gateway.ListUsers(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return a.fail(ctx, err, "Error fetching test cases", "Failed to fetch test cases. Please try again.")
	}

	denormalized := Denormalize(cases, suites, users)
	a.logger.Debug("fetched test cases",
		zap.Int("test_cases", len(denormalized)),
		zap.Int("test_suites", len(suites)),
		zap.Int("users", len(users)),
	)
	return a.dispatch(ctx, store.TestCasesFetched{TestCases: denormalized})
}

// CreateTestCase creates a test case and refreshes the list. A blank title
// aborts before any request.
func (a *Actions) CreateTestCase(ctx context.Context, tc domain.TestCase) (domain.TestCase, error) {
	if strings.TrimSpace(tc.Title) == "" {
		return domain.TestCase{}, a.invalid("Title is required for a test case.")
	}

	created, err := a.gateway.CreateTestCase(ctx, tc.WithDefaults().Record())
	if err != nil {
		return domain.TestCase{}, a.fail(ctx, err, "Error adding test case", "Failed to add test case. Please try again.")
	}
	if err := a.dispatch(ctx, store.TestCaseAdded{TestCase: created}); err != nil {
		return created, err
	}

	if err := a.ListTestCases(ctx); err != nil {
		return created, fmt.Errorf("refresh after create: %w", err)
	}
	return created, nil
}

// UpdateTestCase replaces the test case with id and refreshes the list
func (a *Actions) UpdateTestCase(ctx context.Context, id string, tc domain.TestCase) error {
	data := tc.Record()
	data.ID = id
	if _, err := a.gateway.UpdateTestCase(ctx, id, data); err != nil {
		return a.fail(ctx, err, "Error updating test case", "Failed to update test case. Please try again.")
	}
	if err := a.dispatch(ctx, store.TestCaseUpdated{ID: id, Data: data}); err != nil {
		return err
	}

	if err := a.ListTestCases(ctx); err != nil {
		return fmt.Errorf("refresh after update: %w", err)
	}
	return nil
}

// DeleteTestCase removes the test case with id and refreshes the list
func (a *Actions) DeleteTestCase(ctx context.Context, id string) error {
	if err := a.gateway.DeleteTestCase(ctx, id); err != nil {
		return a.fail(ctx, err, "Error deleting test case", "Failed to delete test case. Please try again.")
	}
	if err := a.dispatch(ctx, store.TestCaseDeleted{ID: id}); err != nil {
		return err
	}

	if err := a.ListTestCases(ctx); err != nil {
		return fmt.Errorf("refresh after delete: %w", err)
	}
	return nil
}
