package store

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tcm/internal/domain"
)

func TestStore_DispatchAndSubscribe(t *testing.T) {
	s := New(nil)

	var seen []int
	unsubscribe := s.Subscribe(func(st State) {
		seen = append(seen, len(st.TestCases))
	})

	s.Dispatch(TestCasesFetched{TestCases: sampleCases()})
	s.Dispatch(TestCaseDeleted{ID: "1"})
	unsubscribe()
	s.Dispatch(TestCaseDeleted{ID: "2"})

	assert.Equal(t, []int{2, 1}, seen)
	assert.Empty(t, s.State().TestCases)

	// a second unsubscribe is harmless
	unsubscribe()
}

func TestStore_SubscribersInOrder(t *testing.T) {
	s := New(nil)

	var calls []string
	s.Subscribe(func(State) { calls = append(calls, "first") })
	s.Subscribe(func(State) { calls = append(calls, "second") })

	s.Dispatch(UsersFetched{Users: []domain.User{{ID: "1", Name: "Ann"}}})
	assert.Equal(t, []string{"first", "second"}, calls)
}

func TestStore_SubscriberCanReadState(t *testing.T) {
	s := New(nil)

	var got State
	s.Subscribe(func(State) { got = s.State() })
	s.Dispatch(TestSuiteAdded{TestSuite: domain.TestSuite{ID: "1", Title: "Auth"}})

	require.Len(t, got.TestSuites, 1)
	assert.Equal(t, "Auth", got.TestSuites[0].Title)
}

func TestStore_ConcurrentDispatch(t *testing.T) {
	s := New(nil)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s.Dispatch(TestSuiteAdded{TestSuite: domain.TestSuite{Title: "suite"}})
		}(i)
	}
	wg.Wait()

	assert.Len(t, s.State().TestSuites, 50)
}
