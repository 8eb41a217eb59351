package actions

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"tcm/internal/domain"
	"tcm/internal/store"
)

// ErrValidation is returned when a client-side precondition fails before any request
var ErrValidation = errors.New("validation failed")

// Gateway is the backend API used by the action creators
type Gateway interface {
	ListTestCases(ctx context.Context) ([]domain.TestCase, error)
	CreateTestCase(ctx context.Context, tc domain.TestCase) (domain.TestCase, error)
	UpdateTestCase(ctx context.Context, id string, tc domain.TestCase) (domain.TestCase, error)
	DeleteTestCase(ctx context.Context, id string) error

	ListTestSuites(ctx context.Context) ([]domain.TestSuite, error)
	CreateTestSuite(ctx context.Context, ts domain.TestSuite) (domain.TestSuite, error)
	UpdateTestSuite(ctx context.Context, id string, ts domain.TestSuite) (domain.TestSuite, error)
	DeleteTestSuite(ctx context.Context, id string) error

	ListUsers(ctx context.Context) ([]domain.User, error)
}

// Notifier surfaces errors and confirmations to the user
type Notifier interface {
	Error(title, message string)
	Success(message string)
}

type nopNotifier struct{}

func (nopNotifier) Error(string, string) {}
func (nopNotifier) Success(string)       {}

// Actions performs backend calls and dispatches the resulting events.
// Failures are logged, reported to the notifier and returned; the store is
// left untouched.
type Actions struct {
	gateway  Gateway
	store    *store.Store
	notifier Notifier
	logger   *zap.Logger
}

// New creates the action creators
func New(gateway Gateway, st *store.Store, notifier Notifier, logger *zap.Logger) *Actions {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Actions{
		gateway:  gateway,
		store:    st,
		notifier: notifier,
		logger:   logger.Named("actions"),
	}
}

// Store returns the store the actions dispatch into
func (a *Actions) Store() *store.Store {
	return a.store
}

// SetNotifier replaces the notifier, e.g. once a UI is running
func (a *Actions) SetNotifier(n Notifier) {
	if n == nil {
		n = nopNotifier{}
	}
	a.notifier = n
}

// dispatch applies ev unless the caller has lost interest
func (a *Actions) dispatch(ctx context.Context, ev store.Event) error {
	if err := ctx.Err(); err != nil {
		a.logger.Debug("dropping event for cancelled caller", zap.String("event", ev.Kind()))
		return err
	}
	a.store.Dispatch(ev)
	return nil
}

// fail logs and reports a failed operation. Cancellation is not reported.
func (a *Actions) fail(ctx context.Context, err error, logMsg, userMsg string) error {
	if ctx.Err() != nil && errors.Is(err, ctx.Err()) {
		return err
	}
	a.logger.Error(logMsg, zap.Error(err))
	a.notifier.Error("Error", userMsg)
	return fmt.Errorf("%s: %w", strings.ToLower(logMsg), err)
}

func (a *Actions) invalid(message string) error {
	a.notifier.Error("Validation", message)
	return fmt.Errorf("%w: %s", ErrValidation, message)
}
