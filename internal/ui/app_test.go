package ui

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tcm/internal/actions"
	"tcm/internal/api"
	"tcm/internal/config"
	"tcm/internal/devserver"
	"tcm/internal/storage"
	"tcm/internal/store"
)

const (
	waitFor = 3 * time.Second
	tick    = 20 * time.Millisecond
)

type runningApp struct {
	*App
	screen tcell.SimulationScreen
	done   chan struct{}
	err    error
}

// startApp runs the interactive client on a simulation screen against handler
func startApp(t *testing.T, handler http.Handler) *runningApp {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := config.New()
	cfg.APIURL = srv.URL
	cfg.PreferencesPath = filepath.Join(t.TempDir(), "preferences.json")

	acts := actions.New(api.NewClient(cfg, nil), store.New(nil), nil, nil)
	a := NewApp(cfg, acts, storage.NewJSONStorage(cfg), nil)

	screen := tcell.NewSimulationScreen("UTF-8")
	a.app.SetScreen(screen)
	screen.SetSize(160, 40)

	r := &runningApp{App: a, screen: screen, done: make(chan struct{})}
	go func() {
		r.err = a.Run()
		close(r.done)
	}()
	t.Cleanup(func() {
		a.app.Stop()
		select {
		case <-r.done:
		case <-time.After(waitFor):
			t.Error("app did not stop")
		}
	})

	// The event loop answers queued updates only once it is running.
	r.onUI(func() {})
	return r
}

// seededBackend serves the sample data from the development backend
func seededBackend(t *testing.T) (http.Handler, devserver.Repository) {
	t.Helper()
	repo := devserver.NewMemoryRepository()
	f, err := os.Open("../devserver/testdata/db.json")
	require.NoError(t, err)
	defer f.Close()
	_, err = devserver.Seed(context.Background(), repo, f)
	require.NoError(t, err)
	return devserver.NewHandler(repo, nil).Router(), repo
}

// onUI runs f on the event loop and waits for it
func (r *runningApp) onUI(f func()) {
	r.app.QueueUpdate(f)
}

func (r *runningApp) key(k tcell.Key) {
	r.screen.InjectKey(k, 0, tcell.ModNone)
}

func (r *runningApp) typeText(s string) {
	for _, c := range s {
		r.screen.InjectKey(tcell.KeyRune, c, tcell.ModNone)
	}
}

func (r *runningApp) frontPage() string {
	var name string
	r.onUI(func() { name, _ = r.overlay.GetFrontPage() })
	return name
}

// screenText returns what the simulation screen currently shows
func (r *runningApp) screenText() string {
	cells, width, _ := r.screen.GetContents()
	var b strings.Builder
	for i, c := range cells {
		if i > 0 && i%width == 0 {
			b.WriteByte('\n')
		}
		if len(c.Runes) == 0 {
			b.WriteByte(' ')
			continue
		}
		b.WriteString(string(c.Runes))
	}
	return b.String()
}

func (r *runningApp) casesSection() *testCasesSection {
	return r.sections[1].(*testCasesSection)
}

func (r *runningApp) waitForRows(t *testing.T, n int) {
	t.Helper()
	require.Eventually(t, func() bool {
		var rows int
		r.onUI(func() { rows = len(r.casesSection().rows) })
		return rows == n
	}, waitFor, tick)
}

func countCases(t *testing.T, repo devserver.Repository) int {
	t.Helper()
	docs, err := repo.List(context.Background(), devserver.CollectionTestCases)
	require.NoError(t, err)
	return len(docs)
}

// formOnTop digs the form out of the centred, bordered overlay page
func (r *runningApp) formOnTop() *tview.Form {
	_, page := r.overlay.GetFrontPage()
	inner := page.(*tview.Flex).GetItem(1).(*tview.Flex)
	container := inner.GetItem(1).(*tview.Flex)
	return container.GetItem(0).(*tview.Form)
}

func TestApp_DashboardShowsSeededData(t *testing.T) {
	handler, _ := seededBackend(t)
	r := startApp(t, handler)

	require.Eventually(t, func() bool {
		text := r.screenText()
		return strings.Contains(text, "Total Test Cases 3") && strings.Contains(text, "33%")
	}, waitFor, tick)

	text := r.screenText()
	assert.Contains(t, text, "1 Dashboard")
	assert.Contains(t, text, "Test Suites 2")
	assert.Contains(t, text, "Passed")
}

func TestApp_AddTestCaseThroughForm(t *testing.T) {
	handler, repo := seededBackend(t)
	r := startApp(t, handler)

	r.typeText("2")
	r.waitForRows(t, 3)

	r.typeText("a")
	require.Eventually(t, func() bool { return r.frontPage() == pageForm }, waitFor, tick)

	r.typeText("Export Test")
	require.Eventually(t, func() bool {
		var title string
		r.onUI(func() {
			title = r.formOnTop().GetFormItemByLabel("Title").(*tview.InputField).GetText()
		})
		return title == "Export Test"
	}, waitFor, tick)

	r.onUI(func() {
		form := r.formOnTop()
		form.GetFormItemByLabel("Test Suite").(*tview.DropDown).SetCurrentOption(0)
		form.SetFocus(form.GetFormItemCount()) // Save
		r.app.SetFocus(form)
	})
	r.key(tcell.KeyEnter)

	require.Eventually(t, func() bool { return countCases(t, repo) == 4 }, waitFor, tick)
	require.Eventually(t, func() bool { return r.frontPage() == pageMessage }, waitFor, tick)
	r.waitForRows(t, 4)

	docs, err := repo.List(context.Background(), devserver.CollectionTestCases)
	require.NoError(t, err)
	created := docs[len(docs)-1]
	assert.Equal(t, "Export Test", created["title"])
	assert.Equal(t, "1", created["testSuiteId"])
	assert.Equal(t, "Medium", created["priority"])
	assert.Equal(t, "Pending", created["executionStatus"])
}

func TestApp_SaveWithoutSuiteShowsErrors(t *testing.T) {
	handler, repo := seededBackend(t)
	r := startApp(t, handler)

	r.typeText("2")
	r.waitForRows(t, 3)
	r.typeText("a")
	require.Eventually(t, func() bool { return r.frontPage() == pageForm }, waitFor, tick)

	r.onUI(func() {
		form := r.formOnTop()
		form.SetFocus(form.GetFormItemCount())
		r.app.SetFocus(form)
	})
	r.key(tcell.KeyEnter)

	require.Eventually(t, func() bool {
		return strings.Contains(r.screenText(), "Title is required")
	}, waitFor, tick)
	assert.Equal(t, pageForm, r.frontPage())
	assert.Equal(t, 3, countCases(t, repo))
}

func TestApp_DeleteAfterConfirmation(t *testing.T) {
	handler, repo := seededBackend(t)
	r := startApp(t, handler)

	r.typeText("2")
	r.waitForRows(t, 3)
	r.onUI(func() { r.casesSection().table.Select(1, 0) })

	r.typeText("d")
	require.Eventually(t, func() bool { return r.frontPage() == pageConfirm }, waitFor, tick)
	assert.Equal(t, 3, countCases(t, repo))

	r.key(tcell.KeyEnter)

	require.Eventually(t, func() bool { return countCases(t, repo) == 2 }, waitFor, tick)
	r.waitForRows(t, 2)
}

func TestApp_DeleteCancelled(t *testing.T) {
	handler, repo := seededBackend(t)
	r := startApp(t, handler)

	r.typeText("2")
	r.waitForRows(t, 3)
	r.onUI(func() { r.casesSection().table.Select(1, 0) })

	r.typeText("d")
	require.Eventually(t, func() bool { return r.frontPage() == pageConfirm }, waitFor, tick)

	r.key(tcell.KeyTab) // Cancel
	r.key(tcell.KeyEnter)

	require.Eventually(t, func() bool { return r.frontPage() == pageMain }, waitFor, tick)
	var pending string
	r.onUI(func() { pending = r.casesSection().list.PendingDelete })
	assert.Empty(t, pending)
	assert.Equal(t, 3, countCases(t, repo))
}

// stalledBackend accepts requests and answers none until the client gives up
func stalledBackend() (http.Handler, <-chan struct{}) {
	arrived := make(chan struct{})
	var once sync.Once
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		once.Do(func() { close(arrived) })
		select {
		case <-r.Context().Done():
		case <-time.After(2 * waitFor):
		}
	}), arrived
}

func TestApp_QuitWhileLoading(t *testing.T) {
	t.Run("stop", func(t *testing.T) {
		handler, arrived := stalledBackend()
		r := startApp(t, handler)
		<-arrived

		r.app.Stop()
		select {
		case <-r.done:
			assert.NoError(t, r.err)
		case <-time.After(waitFor):
			t.Fatal("Run did not return after Stop while a request was in flight")
		}
	})

	t.Run("q key", func(t *testing.T) {
		handler, arrived := stalledBackend()
		r := startApp(t, handler)
		<-arrived

		r.typeText("q")
		select {
		case <-r.done:
			assert.NoError(t, r.err)
		case <-time.After(waitFor):
			t.Fatal("Run did not return after q while a request was in flight")
		}
	})

	t.Run("save in flight", func(t *testing.T) {
		seeded, _ := seededBackend(t)
		stalled, _ := stalledBackend()
		r := startApp(t, http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if req.Method == http.MethodPost {
				stalled.ServeHTTP(w, req)
				return
			}
			seeded.ServeHTTP(w, req)
		}))

		r.typeText("2")
		r.waitForRows(t, 3)
		r.typeText("a")
		require.Eventually(t, func() bool { return r.frontPage() == pageForm }, waitFor, tick)
		r.onUI(func() {
			form := r.formOnTop()
			form.GetFormItemByLabel("Title").(*tview.InputField).SetText("Slow Save")
			form.GetFormItemByLabel("Test Suite").(*tview.DropDown).SetCurrentOption(0)
			form.SetFocus(form.GetFormItemCount())
			r.app.SetFocus(form)
		})
		r.key(tcell.KeyEnter)
		time.Sleep(100 * time.Millisecond)

		r.app.Stop()
		select {
		case <-r.done:
		case <-time.After(waitFor):
			t.Fatal("Run did not return after Stop while a save was in flight")
		}
	})
}
