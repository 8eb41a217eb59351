package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tcm/internal/domain"
)

func TestPriority_Rank(t *testing.T) {
	tests := []struct {
		name     string
		priority domain.Priority
		want     int
	}{
		{name: "low", priority: domain.PriorityLow, want: 1},
		{name: "medium", priority: domain.PriorityMedium, want: 2},
		{name: "high", priority: domain.PriorityHigh, want: 3},
		{name: "unknown", priority: domain.Priority("Urgent"), want: 0},
		{name: "empty", priority: domain.Priority(""), want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.priority.Rank())
		})
	}
}

func TestParseExecutionStatus(t *testing.T) {
	tests := []struct {
		input   string
		want    domain.ExecutionStatus
		wantErr bool
	}{
		{input: "Pending", want: domain.StatusPending},
		{input: "In Progress", want: domain.StatusInProgress},
		{input: "Passed", want: domain.StatusPassed},
		{input: "Failed", want: domain.StatusFailed},
		{input: "passed", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := domain.ParseExecutionStatus(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParsePriority(t *testing.T) {
	p, err := domain.ParsePriority("High")
	require.NoError(t, err)
	assert.Equal(t, domain.PriorityHigh, p)

	_, err = domain.ParsePriority("high")
	assert.Error(t, err)
}

func TestTestCase_Defaults(t *testing.T) {
	draft := domain.NewTestCase()
	assert.Equal(t, domain.PriorityMedium, draft.Priority)
	assert.Equal(t, domain.StatusPending, draft.ExecutionStatus)

	tc := domain.TestCase{Title: "Login Test", TestSuiteID: "1"}.WithDefaults()
	assert.Equal(t, domain.PriorityMedium, tc.Priority)
	assert.Equal(t, domain.StatusPending, tc.ExecutionStatus)

	kept := domain.TestCase{Priority: domain.PriorityLow, ExecutionStatus: domain.StatusFailed}.WithDefaults()
	assert.Equal(t, domain.PriorityLow, kept.Priority)
	assert.Equal(t, domain.StatusFailed, kept.ExecutionStatus)
}

func TestTestCase_RecordOmitsDisplayNames(t *testing.T) {
	tc := domain.TestCase{
		ID:               "1",
		Title:            "Login",
		TestSuiteID:      "1",
		TestSuiteName:    "Auth",
		AssignedUserName: "Ann",
	}

	data, err := json.Marshal(tc.Record())
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(data, &fields))
	assert.NotContains(t, fields, "testSuiteName")
	assert.NotContains(t, fields, "assignedUserName")
	assert.NotContains(t, fields, "assignedUserId")
	assert.Equal(t, "Login", fields["title"])
}

func TestTestCase_DecodesNumericIDs(t *testing.T) {
	tests := []struct {
		name string
		body string
		want domain.TestCase
	}{
		{
			name: "numbers",
			body: `{"id":1,"title":"Login","priority":"High","executionStatus":"Passed","testSuiteId":2,"assignedUserId":3}`,
			want: domain.TestCase{ID: "1", Title: "Login", Priority: domain.PriorityHigh, ExecutionStatus: domain.StatusPassed, TestSuiteID: "2", AssignedUserID: "3"},
		},
		{
			name: "strings",
			body: `{"id":"a1","title":"Login","testSuiteId":"s1"}`,
			want: domain.TestCase{ID: "a1", Title: "Login", TestSuiteID: "s1"},
		},
		{
			name: "null assignee",
			body: `{"id":"1","title":"Login","testSuiteId":"1","assignedUserId":null}`,
			want: domain.TestCase{ID: "1", Title: "Login", TestSuiteID: "1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got domain.TestCase
			require.NoError(t, json.Unmarshal([]byte(tt.body), &got))
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("rejects other types", func(t *testing.T) {
		var got domain.TestCase
		assert.Error(t, json.Unmarshal([]byte(`{"id":true,"title":"Login"}`), &got))
	})
}

func TestSuiteAndUser_DecodeNumericIDs(t *testing.T) {
	var suites []domain.TestSuite
	require.NoError(t, json.Unmarshal([]byte(`[{"id":7,"title":"Auth"},{"id":"8","title":"Pay"}]`), &suites))
	assert.Equal(t, []domain.TestSuite{{ID: "7", Title: "Auth"}, {ID: "8", Title: "Pay"}}, suites)

	var users []domain.User
	require.NoError(t, json.Unmarshal([]byte(`[{"id":1,"name":"John Doe"}]`), &users))
	assert.Equal(t, []domain.User{{ID: "1", Name: "John Doe"}}, users)
}
