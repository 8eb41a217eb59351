package api_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tcm/internal/api"
	"tcm/internal/config"
	"tcm/internal/devserver"
	"tcm/internal/domain"
)

func newClient(t *testing.T, handler http.Handler) *api.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := config.New()
	cfg.APIURL = srv.URL + "/"
	return api.NewClient(cfg, nil)
}

func newBackendClient(t *testing.T) *api.Client {
	t.Helper()
	repo := devserver.NewMemoryRepository()
	return newClient(t, devserver.NewHandler(repo, nil).Router())
}

func TestClient_TestCaseLifecycle(t *testing.T) {
	ctx := context.Background()
	client := newBackendClient(t)

	created, err := client.CreateTestCase(ctx, domain.TestCase{
		Title:         "Login Test",
		TestSuiteID:   "1",
		TestSuiteName: "should not be sent",
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.Empty(t, created.TestSuiteName)

	updated := created
	updated.ExecutionStatus = domain.StatusPassed
	_, err = client.UpdateTestCase(ctx, created.ID, updated)
	require.NoError(t, err)

	cases, err := client.ListTestCases(ctx)
	require.NoError(t, err)
	require.Len(t, cases, 1)
	assert.Equal(t, domain.StatusPassed, cases[0].ExecutionStatus)

	require.NoError(t, client.DeleteTestCase(ctx, created.ID))
	cases, err = client.ListTestCases(ctx)
	require.NoError(t, err)
	assert.Empty(t, cases)
}

func TestClient_SuitesAndUsers(t *testing.T) {
	ctx := context.Background()
	client := newBackendClient(t)

	suite, err := client.CreateTestSuite(ctx, domain.TestSuite{Title: "Auth"})
	require.NoError(t, err)
	_, err = client.UpdateTestSuite(ctx, suite.ID, domain.TestSuite{Title: "Authentication"})
	require.NoError(t, err)

	suites, err := client.ListTestSuites(ctx)
	require.NoError(t, err)
	require.Len(t, suites, 1)
	assert.Equal(t, "Authentication", suites[0].Title)

	require.NoError(t, client.DeleteTestSuite(ctx, suite.ID))

	_, err = client.CreateUser(ctx, domain.User{Name: "Ann"})
	require.NoError(t, err)
	users, err := client.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "Ann", users[0].Name)
}

func TestClient_EmptyCollectionIsNotNil(t *testing.T) {
	client := newBackendClient(t)

	users, err := client.ListUsers(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, users)
	assert.Empty(t, users)
}

func TestClient_TransportErrors(t *testing.T) {
	t.Run("non-2xx status", func(t *testing.T) {
		client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}))

		_, err := client.ListTestCases(context.Background())
		require.Error(t, err)
		assert.True(t, errors.Is(err, api.ErrTransport))

		var ge *goerr.Error
		require.True(t, errors.As(err, &ge))
		assert.Equal(t, http.StatusInternalServerError, ge.Values()["status"])
		assert.Equal(t, http.MethodGet, ge.Values()["method"])
	})

	t.Run("delete of unknown id", func(t *testing.T) {
		client := newBackendClient(t)
		err := client.DeleteTestSuite(context.Background(), "missing")
		assert.ErrorIs(t, err, api.ErrTransport)
	})

	t.Run("undecodable body", func(t *testing.T) {
		client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"not":"an array"}`))
		}))

		_, err := client.ListUsers(context.Background())
		assert.ErrorIs(t, err, api.ErrTransport)
	})

	t.Run("network unavailable", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()

		cfg := config.New()
		cfg.APIURL = url
		client := api.NewClient(cfg, nil)

		_, err := client.ListTestSuites(context.Background())
		assert.ErrorIs(t, err, api.ErrTransport)
	})

	t.Run("cancelled context", func(t *testing.T) {
		client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-r.Context().Done():
			case <-time.After(2 * time.Second):
			}
		}))

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := client.ListTestCases(ctx)
		require.Error(t, err)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestClient_EscapesIDs(t *testing.T) {
	var gotPath string
	client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	}))

	require.NoError(t, client.DeleteTestCase(context.Background(), "a/b"))
	assert.True(t, strings.HasSuffix(gotPath, "/testCases/a%2Fb"), gotPath)
}

func TestClient_NumericIDs(t *testing.T) {
	client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/testCases":
			_, _ = w.Write([]byte(`[{"id":1,"title":"Login Test","priority":"High","executionStatus":"Pending","testSuiteId":2,"assignedUserId":3}]`))
		case "/testSuites":
			_, _ = w.Write([]byte(`[{"id":2,"title":"Authentication Suite"}]`))
		default:
			http.NotFound(w, r)
		}
	}))

	cases, err := client.ListTestCases(context.Background())
	require.NoError(t, err)
	require.Len(t, cases, 1)
	assert.Equal(t, "1", cases[0].ID)
	assert.Equal(t, "2", cases[0].TestSuiteID)
	assert.Equal(t, "3", cases[0].AssignedUserID)

	suites, err := client.ListTestSuites(context.Background())
	require.NoError(t, err)
	require.Len(t, suites, 1)
	assert.Equal(t, "2", suites[0].ID)
}
