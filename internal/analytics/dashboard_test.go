package analytics

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tcm/internal/domain"
)

func scenarioCases() []domain.TestCase {
	return []domain.TestCase{
		{
			ID: "1", Title: "Login", TestSuiteID: "1", TestSuiteName: "Auth",
			AssignedUserID: "1", AssignedUserName: "Ann",
			ExecutionStatus: domain.StatusPassed, Priority: domain.PriorityHigh,
		},
		{
			ID: "2", Title: "Logout", TestSuiteID: "1", TestSuiteName: "Auth",
			AssignedUserName: domain.Unassigned,
			ExecutionStatus:  domain.StatusFailed, Priority: domain.PriorityLow,
		},
	}
}

func TestCompute_Scenario(t *testing.T) {
	d := Compute(scenarioCases())

	assert.Equal(t, 2, d.Total)
	assert.Equal(t, 50, d.PassRate)
	assert.Equal(t, 50, d.FailureRate)
	assert.Equal(t, 100, d.CompletionRate)

	assert.Equal(t, []SuiteStats{
		{ID: "1", Name: "Auth", Total: 2, StatusCounts: StatusCounts{Passed: 1, Failed: 1}},
	}, d.ByTestSuite)

	assert.Equal(t, []AssigneeStats{
		{ID: "1", Name: "Ann", Assigned: 1, StatusCounts: StatusCounts{Passed: 1}},
		{Name: domain.Unassigned, Assigned: 1, StatusCounts: StatusCounts{Failed: 1}},
	}, d.ByAssignee)

	assert.Equal(t, []Count{
		{Name: "Passed", Value: 1},
		{Name: "Failed", Value: 1},
		{Name: "Pending", Value: 0},
		{Name: "In Progress", Value: 0},
	}, d.ByStatus)

	assert.Equal(t, []Count{
		{Name: "High", Value: 1},
		{Name: "Medium", Value: 0},
		{Name: "Low", Value: 1},
	}, d.ByPriority)
}

func TestCompute_AfterDelete(t *testing.T) {
	d := Compute(scenarioCases()[:1])

	assert.Equal(t, 1, d.Total)
	assert.Equal(t, 100, d.PassRate)
	assert.Equal(t, 0, d.FailureRate)
	assert.Equal(t, 100, d.CompletionRate)
	require.Len(t, d.ByTestSuite, 1)
	assert.Equal(t, 1, d.ByTestSuite[0].Total)
	require.Len(t, d.ByAssignee, 2)
	assert.Equal(t, 0, d.ByAssignee[1].Assigned)
}

func TestCompute_Empty(t *testing.T) {
	d := Compute(nil)

	assert.Equal(t, 0, d.Total)
	assert.Equal(t, 0, d.PassRate)
	assert.Equal(t, 0, d.FailureRate)
	assert.Equal(t, 0, d.CompletionRate)
	assert.Empty(t, d.ByTestSuite)
	require.Len(t, d.ByAssignee, 1, "the Unassigned bucket is always present")
	assert.Equal(t, domain.Unassigned, d.ByAssignee[0].Name)
	assert.Len(t, d.ByStatus, 4)
	assert.Len(t, d.ByPriority, 3)
}

func TestCompute_UnresolvedReferencesShareBuckets(t *testing.T) {
	cases := []domain.TestCase{
		{ID: "1", TestSuiteID: "9", TestSuiteName: domain.Unassigned, AssignedUserID: "7", AssignedUserName: domain.Unassigned, ExecutionStatus: domain.StatusPending},
		{ID: "2", TestSuiteID: "", TestSuiteName: domain.Unassigned, ExecutionStatus: domain.StatusInProgress},
	}

	d := Compute(cases)
	require.Len(t, d.ByTestSuite, 1)
	assert.Equal(t, domain.Unassigned, d.ByTestSuite[0].Name)
	assert.Equal(t, 2, d.ByTestSuite[0].Total)

	require.Len(t, d.ByAssignee, 1)
	assert.Equal(t, 2, d.ByAssignee[0].Assigned)
	assert.Equal(t, 1, d.ByAssignee[0].Pending)
	assert.Equal(t, 1, d.ByAssignee[0].InProgress)
}

func TestCompute_UnknownStatusCountsOnlyInTotal(t *testing.T) {
	cases := []domain.TestCase{
		{ID: "1", ExecutionStatus: "Blocked", Priority: "Urgent"},
		{ID: "2", ExecutionStatus: domain.StatusPassed, Priority: domain.PriorityLow},
	}

	d := Compute(cases)
	assert.Equal(t, 2, d.Total)
	assert.Equal(t, 50, d.PassRate)

	sum := 0
	for _, c := range d.ByStatus {
		sum += c.Value
	}
	assert.Equal(t, 1, sum)
}

func TestPercent(t *testing.T) {
	tests := []struct {
		part, total, want int
	}{
		{0, 0, 0},
		{5, 0, 0},
		{1, 2, 50},
		{1, 3, 33},
		{2, 3, 67},
		{1, 8, 13}, // 12.5 rounds up
		{3, 3, 100},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d/%d", tt.part, tt.total), func(t *testing.T) {
			assert.Equal(t, tt.want, Percent(tt.part, tt.total))
		})
	}
}

func TestCompute_RatesAddUp(t *testing.T) {
	statuses := domain.AllExecutionStatuses()
	rng := rand.New(rand.NewSource(42))

	for round := 0; round < 200; round++ {
		n := 1 + rng.Intn(40)
		cases := make([]domain.TestCase, n)
		for i := range cases {
			cases[i] = domain.TestCase{ID: fmt.Sprint(i), ExecutionStatus: statuses[rng.Intn(len(statuses))]}
		}

		d := Compute(cases)
		open := Percent(d.Pending+d.InProgress, d.Total)
		total := d.PassRate + d.FailureRate + open
		assert.InDelta(t, 100, total, 2, "round %d: %+v", round, d)
		assert.Equal(t, d.Total, d.Passed+d.Failed+d.Pending+d.InProgress)
	}
}

func TestSuitesAndAssignees(t *testing.T) {
	cases := append(scenarioCases(), domain.TestCase{
		ID: "3", TestSuiteID: "2", TestSuiteName: "Payments", AssignedUserID: "1", AssignedUserName: "Ann",
	})

	assert.Equal(t, []domain.TestSuite{{ID: "1", Title: "Auth"}, {ID: "2", Title: "Payments"}}, Suites(cases))
	assert.Equal(t, []domain.User{{ID: "1", Name: "Ann"}}, Assignees(cases))
}
