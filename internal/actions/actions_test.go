package actions_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tcm/internal/actions"
	"tcm/internal/analytics"
	"tcm/internal/api"
	"tcm/internal/config"
	"tcm/internal/devserver"
	"tcm/internal/domain"
	"tcm/internal/store"
)

type notification struct {
	title   string
	message string
}

type recordingNotifier struct {
	mu     sync.Mutex
	errors []notification
	ok     []string
}

func (n *recordingNotifier) Error(title, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.errors = append(n.errors, notification{title, message})
}

func (n *recordingNotifier) Success(message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.ok = append(n.ok, message)
}

// fakeGateway serves fixed data and fails the named operations
type fakeGateway struct {
	mu     sync.Mutex
	cases  []domain.TestCase
	suites []domain.TestSuite
	users  []domain.User
	fail   map[string]error
	calls  []string
}

func (g *fakeGateway) record(op string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls = append(g.calls, op)
	return g.fail[op]
}

func (g *fakeGateway) ListTestCases(context.Context) ([]domain.TestCase, error) {
	return g.cases, g.record("ListTestCases")
}

func (g *fakeGateway) CreateTestCase(_ context.Context, tc domain.TestCase) (domain.TestCase, error) {
	tc.ID = "new"
	return tc, g.record("CreateTestCase")
}

func (g *fakeGateway) UpdateTestCase(_ context.Context, _ string, tc domain.TestCase) (domain.TestCase, error) {
	return tc, g.record("UpdateTestCase")
}

func (g *fakeGateway) DeleteTestCase(context.Context, string) error {
	return g.record("DeleteTestCase")
}

func (g *fakeGateway) ListTestSuites(context.Context) ([]domain.TestSuite, error) {
	return g.suites, g.record("ListTestSuites")
}

func (g *fakeGateway) CreateTestSuite(_ context.Context, ts domain.TestSuite) (domain.TestSuite, error) {
	ts.ID = "new"
	return ts, g.record("CreateTestSuite")
}

func (g *fakeGateway) UpdateTestSuite(_ context.Context, _ string, ts domain.TestSuite) (domain.TestSuite, error) {
	return ts, g.record("UpdateTestSuite")
}

func (g *fakeGateway) DeleteTestSuite(context.Context, string) error {
	return g.record("DeleteTestSuite")
}

func (g *fakeGateway) ListUsers(context.Context) ([]domain.User, error) {
	return g.users, g.record("ListUsers")
}

func (g *fakeGateway) callCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.calls)
}

func newBackend(t *testing.T, seed bool) *api.Client {
	t.Helper()
	repo := devserver.NewMemoryRepository()
	if seed {
		f, err := os.Open("../devserver/testdata/db.json")
		require.NoError(t, err)
		defer f.Close()
		_, err = devserver.Seed(context.Background(), repo, f)
		require.NoError(t, err)
	}

	srv := httptest.NewServer(devserver.NewHandler(repo, nil).Router())
	t.Cleanup(srv.Close)

	cfg := config.New()
	cfg.APIURL = srv.URL
	return api.NewClient(cfg, nil)
}

func TestCreateTestCase_RoundTripWithDefaults(t *testing.T) {
	ctx := context.Background()
	client := newBackend(t, false)
	suite, err := client.CreateTestSuite(ctx, domain.TestSuite{Title: "Authentication Suite"})
	require.NoError(t, err)

	a := actions.New(client, store.New(nil), nil, nil)
	created, err := a.CreateTestCase(ctx, domain.TestCase{Title: "Login Test", TestSuiteID: suite.ID})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	cases := a.Store().State().TestCases
	require.Len(t, cases, 1)
	got := cases[0]
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "Login Test", got.Title)
	assert.Equal(t, domain.StatusPending, got.ExecutionStatus)
	assert.Equal(t, domain.PriorityMedium, got.Priority)
	assert.Equal(t, "Authentication Suite", got.TestSuiteName)
	assert.Equal(t, domain.Unassigned, got.AssignedUserName)
}

func TestActions_SeededScenario(t *testing.T) {
	ctx := context.Background()
	a := actions.New(newBackend(t, true), store.New(nil), nil, nil)

	require.NoError(t, a.ListTestCases(ctx))
	cases := a.Store().State().TestCases
	require.Len(t, cases, 3)
	assert.Equal(t, "Authentication Suite", cases[0].TestSuiteName)
	assert.Equal(t, "John Doe", cases[0].AssignedUserName)
	assert.Equal(t, domain.Unassigned, cases[2].AssignedUserName)

	d := analytics.Compute(cases)
	assert.Equal(t, 3, d.Total)
	assert.Equal(t, 33, d.PassRate)
	assert.Equal(t, 67, d.CompletionRate)

	require.NoError(t, a.DeleteTestCase(ctx, "2"))
	cases = a.Store().State().TestCases
	require.Len(t, cases, 2)
	for _, tc := range cases {
		assert.NotEqual(t, "2", tc.ID)
	}

	d = analytics.Compute(cases)
	assert.Equal(t, 2, d.Total)
	assert.Equal(t, 0, d.PassRate)
	assert.Equal(t, 50, d.FailureRate)
}

func TestActions_UpdateTestCaseRefreshes(t *testing.T) {
	ctx := context.Background()
	a := actions.New(newBackend(t, true), store.New(nil), nil, nil)
	require.NoError(t, a.ListTestCases(ctx))

	tc := a.Store().State().TestCases[0]
	tc.ExecutionStatus = domain.StatusPassed
	tc.AssignedUserID = "2"
	require.NoError(t, a.UpdateTestCase(ctx, tc.ID, tc))

	got := a.Store().State().TestCases[0]
	assert.Equal(t, domain.StatusPassed, got.ExecutionStatus)
	assert.Equal(t, "Jane Smith", got.AssignedUserName)
}

func TestCreateTestCase_BlankTitleMakesNoRequest(t *testing.T) {
	g := &fakeGateway{}
	n := &recordingNotifier{}
	a := actions.New(g, store.New(nil), n, nil)

	_, err := a.CreateTestCase(context.Background(), domain.TestCase{Title: "  \t", TestSuiteID: "1"})
	assert.ErrorIs(t, err, actions.ErrValidation)
	assert.Zero(t, g.callCount())
	require.Len(t, n.errors, 1)
	assert.Equal(t, "Title is required for a test case.", n.errors[0].message)

	_, err = a.CreateTestSuite(context.Background(), domain.TestSuite{})
	assert.ErrorIs(t, err, actions.ErrValidation)
	assert.Zero(t, g.callCount())
}

func TestListTestCases_PartialFailureLeavesState(t *testing.T) {
	boom := errors.New("connection refused")
	g := &fakeGateway{
		cases:  []domain.TestCase{{ID: "1", Title: "Login"}},
		suites: []domain.TestSuite{{ID: "1", Title: "Auth"}},
		fail:   map[string]error{"ListUsers": boom},
	}
	n := &recordingNotifier{}
	st := store.New(nil)
	st.Dispatch(store.TestCasesFetched{TestCases: []domain.TestCase{{ID: "old"}}})
	a := actions.New(g, st, n, nil)

	err := a.ListTestCases(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []domain.TestCase{{ID: "old"}}, st.State().TestCases)
	require.Len(t, n.errors, 1)
	assert.Equal(t, "Failed to fetch test cases. Please try again.", n.errors[0].message)
}

func TestCreateTestCase_RefreshFailureIsReturned(t *testing.T) {
	g := &fakeGateway{fail: map[string]error{"ListTestSuites": errors.New("down")}}
	a := actions.New(g, store.New(nil), nil, nil)

	created, err := a.CreateTestCase(context.Background(), domain.TestCase{Title: "Login", TestSuiteID: "1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "refresh after create")
	assert.Equal(t, "new", created.ID)
	assert.Equal(t, []domain.TestCase{created}, a.Store().State().TestCases)
}

func TestDeleteTestCase_FailureLeavesState(t *testing.T) {
	g := &fakeGateway{fail: map[string]error{"DeleteTestCase": errors.New("404")}}
	n := &recordingNotifier{}
	st := store.New(nil)
	st.Dispatch(store.TestCasesFetched{TestCases: []domain.TestCase{{ID: "2"}}})
	a := actions.New(g, st, n, nil)

	require.Error(t, a.DeleteTestCase(context.Background(), "2"))
	assert.Len(t, st.State().TestCases, 1)
	assert.Equal(t, []string{"DeleteTestCase"}, g.calls)
	require.Len(t, n.errors, 1)
	assert.Equal(t, "Failed to delete test case. Please try again.", n.errors[0].message)
}

func TestTestSuites_NoRefetch(t *testing.T) {
	ctx := context.Background()
	g := &fakeGateway{suites: []domain.TestSuite{{ID: "1", Title: "Auth"}, {ID: "2", Title: "Pay"}}}
	a := actions.New(g, store.New(nil), nil, nil)

	require.NoError(t, a.ListTestSuites(ctx))
	require.NoError(t, a.UpdateTestSuite(ctx, "1", domain.TestSuite{Title: "Authentication"}))
	require.NoError(t, a.DeleteTestSuite(ctx, "2"))
	created, err := a.CreateTestSuite(ctx, domain.TestSuite{Title: "Search"})
	require.NoError(t, err)

	assert.Equal(t, []domain.TestSuite{
		{ID: "1", Title: "Authentication"},
		created,
	}, a.Store().State().TestSuites)
	assert.Equal(t, []string{"ListTestSuites", "UpdateTestSuite", "DeleteTestSuite", "CreateTestSuite"}, g.calls)
}

func TestListUsers(t *testing.T) {
	g := &fakeGateway{users: []domain.User{{ID: "1", Name: "Ann"}}}
	a := actions.New(g, store.New(nil), nil, nil)

	require.NoError(t, a.ListUsers(context.Background()))
	assert.Equal(t, g.users, a.Store().State().Users)
}

func TestActions_CancelledCallerDoesNotDispatch(t *testing.T) {
	g := &fakeGateway{suites: []domain.TestSuite{{ID: "1"}}}
	n := &recordingNotifier{}
	st := store.New(nil)
	a := actions.New(g, st, n, nil)

	var notified int
	st.Subscribe(func(store.State) { notified++ })

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := a.ListTestSuites(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, notified)
	assert.Empty(t, st.State().TestSuites)
	assert.Empty(t, n.errors)
}

func TestActions_SetNotifier(t *testing.T) {
	g := &fakeGateway{fail: map[string]error{"ListUsers": errors.New("down")}}
	a := actions.New(g, store.New(nil), nil, nil)
	n := &recordingNotifier{}
	a.SetNotifier(n)

	require.Error(t, a.ListUsers(context.Background()))
	assert.Len(t, n.errors, 1)
}
