package store

import "tcm/internal/domain"

// State is the whole client-side state, one slice per reducer
type State struct {
	TestCases  []domain.TestCase
	TestSuites []domain.TestSuite
	Users      []domain.User
}

// Reduce applies ev to every slice
func Reduce(state State, ev Event) State {
	return State{
		TestCases:  ReduceTestCases(state.TestCases, ev),
		TestSuites: ReduceTestSuites(state.TestSuites, ev),
		Users:      ReduceUsers(state.Users, ev),
	}
}

// ReduceTestCases is the test-case slice reducer. It never modifies its
// input; unknown events and unknown ids return the input unchanged.
func ReduceTestCases(state []domain.TestCase, ev Event) []domain.TestCase {
	switch e := ev.(type) {
	case TestCasesFetched:
		return clone(e.TestCases)
	case TestCaseAdded:
		return appendCopy(state, e.TestCase)
	case TestCaseUpdated:
		data := e.Data
		data.ID = e.ID
		return replaceByID(state, e.ID, data, func(tc domain.TestCase) string { return tc.ID })
	case TestCaseDeleted:
		return removeByID(state, e.ID, func(tc domain.TestCase) string { return tc.ID })
	default:
		return state
	}
}

// ReduceTestSuites is the test-suite slice reducer, symmetric with
// ReduceTestCases.
func ReduceTestSuites(state []domain.TestSuite, ev Event) []domain.TestSuite {
	switch e := ev.(type) {
	case TestSuitesFetched:
		return clone(e.TestSuites)
	case TestSuiteAdded:
		return appendCopy(state, e.TestSuite)
	case TestSuiteUpdated:
		data := e.Data
		data.ID = e.ID
		return replaceByID(state, e.ID, data, func(ts domain.TestSuite) string { return ts.ID })
	case TestSuiteDeleted:
		return removeByID(state, e.ID, func(ts domain.TestSuite) string { return ts.ID })
	default:
		return state
	}
}

// ReduceUsers is the user slice reducer
func ReduceUsers(state []domain.User, ev Event) []domain.User {
	switch e := ev.(type) {
	case UsersFetched:
		return clone(e.Users)
	default:
		return state
	}
}

func clone[T any](items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	return out
}

func appendCopy[T any](items []T, item T) []T {
	out := make([]T, len(items), len(items)+1)
	copy(out, items)
	return append(out, item)
}

func replaceByID[T any](items []T, id string, item T, idOf func(T) string) []T {
	for i := range items {
		if idOf(items[i]) == id {
			out := clone(items)
			out[i] = item
			return out
		}
	}
	return items
}

func removeByID[T any](items []T, id string, idOf func(T) string) []T {
	found := false
	for i := range items {
		if idOf(items[i]) == id {
			found = true
			break
		}
	}
	if !found {
		return items
	}

	out := make([]T, 0, len(items)-1)
	for _, item := range items {
		if idOf(item) != id {
			out = append(out, item)
		}
	}
	return out
}
