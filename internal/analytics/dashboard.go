// Package analytics aggregates the denormalized test-case collection into the
// figures shown on the dashboard. Everything here is a pure function of its
// input and is recomputed whenever the test-case slice changes.
package analytics

import "tcm/internal/domain"

// Count is one labelled value of a distribution
type Count struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// StatusCounts holds per-status totals
type StatusCounts struct {
	Passed     int `json:"passed"`
	Failed     int `json:"failed"`
	Pending    int `json:"pending"`
	InProgress int `json:"inProgress"`
}

func (s *StatusCounts) add(status domain.ExecutionStatus) {
	switch status {
	case domain.StatusPassed:
		s.Passed++
	case domain.StatusFailed:
		s.Failed++
	case domain.StatusPending:
		s.Pending++
	case domain.StatusInProgress:
		s.InProgress++
	}
}

// SuiteStats is the breakdown for one test suite
type SuiteStats struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Total int    `json:"total"`
	StatusCounts
}

// AssigneeStats is the breakdown for one assignee
type AssigneeStats struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Assigned int    `json:"assigned"`
	StatusCounts
}

// Dashboard is every figure the dashboard view shows
type Dashboard struct {
	Total int `json:"total"`
	StatusCounts

	PassRate       int `json:"passRate"`
	FailureRate    int `json:"failureRate"`
	CompletionRate int `json:"completionRate"`

	ByStatus    []Count         `json:"statusData"`
	ByPriority  []Count         `json:"priorityData"`
	ByTestSuite []SuiteStats    `json:"byTestSuite"`
	ByAssignee  []AssigneeStats `json:"byAssignee"`
}

// Status display order on the dashboard
var statusOrder = []domain.ExecutionStatus{
	domain.StatusPassed,
	domain.StatusFailed,
	domain.StatusPending,
	domain.StatusInProgress,
}

// Priority display order on the dashboard
var priorityOrder = []domain.Priority{
	domain.PriorityHigh,
	domain.PriorityMedium,
	domain.PriorityLow,
}

// Compute aggregates cases. Unknown status or priority values count towards
// the total but not towards any bucket.
func Compute(cases []domain.TestCase) Dashboard {
	d := Dashboard{Total: len(cases)}

	statusCounts := make(map[domain.ExecutionStatus]int, len(statusOrder))
	priorityCounts := make(map[domain.Priority]int, len(priorityOrder))

	suiteIndex := make(map[string]int)
	assigneeIndex := make(map[string]int)
	unassigned := AssigneeStats{Name: domain.Unassigned}

	for _, tc := range cases {
		statusCounts[tc.ExecutionStatus]++
		priorityCounts[tc.Priority]++
		d.StatusCounts.add(tc.ExecutionStatus)

		sk, sname := suiteKey(tc)
		i, ok := suiteIndex[sk]
		if !ok {
			i = len(d.ByTestSuite)
			suiteIndex[sk] = i
			d.ByTestSuite = append(d.ByTestSuite, SuiteStats{ID: sk, Name: sname})
		}
		d.ByTestSuite[i].Total++
		d.ByTestSuite[i].StatusCounts.add(tc.ExecutionStatus)

		ak, aname := assigneeKey(tc)
		if ak == "" {
			unassigned.Assigned++
			unassigned.StatusCounts.add(tc.ExecutionStatus)
			continue
		}
		j, ok := assigneeIndex[ak]
		if !ok {
			j = len(d.ByAssignee)
			assigneeIndex[ak] = j
			d.ByAssignee = append(d.ByAssignee, AssigneeStats{ID: ak, Name: aname})
		}
		d.ByAssignee[j].Assigned++
		d.ByAssignee[j].StatusCounts.add(tc.ExecutionStatus)
	}
	d.ByAssignee = append(d.ByAssignee, unassigned)
	if d.ByTestSuite == nil {
		d.ByTestSuite = []SuiteStats{}
	}

	for _, s := range statusOrder {
		d.ByStatus = append(d.ByStatus, Count{Name: s.String(), Value: statusCounts[s]})
	}
	for _, p := range priorityOrder {
		d.ByPriority = append(d.ByPriority, Count{Name: p.String(), Value: priorityCounts[p]})
	}

	d.PassRate = Percent(d.Passed, d.Total)
	d.FailureRate = Percent(d.Failed, d.Total)
	d.CompletionRate = Percent(d.Passed+d.Failed, d.Total)
	return d
}

// Percent returns part/total as a percentage rounded half up, or 0 when
// total is 0.
func Percent(part, total int) int {
	if total <= 0 {
		return 0
	}
	return (200*part + total) / (2 * total)
}

// suiteKey groups unresolved suite references into a single bucket
func suiteKey(tc domain.TestCase) (string, string) {
	if tc.TestSuiteID == "" || tc.TestSuiteName == "" || tc.TestSuiteName == domain.Unassigned {
		return "", domain.Unassigned
	}
	return tc.TestSuiteID, tc.TestSuiteName
}

// assigneeKey returns "" for cases that belong in the Unassigned bucket
func assigneeKey(tc domain.TestCase) (string, string) {
	if tc.AssignedUserID == "" || tc.AssignedUserName == "" || tc.AssignedUserName == domain.Unassigned {
		return "", domain.Unassigned
	}
	return tc.AssignedUserID, tc.AssignedUserName
}

// Suites returns the distinct test suites referenced by cases, in first-seen order
func Suites(cases []domain.TestCase) []domain.TestSuite {
	seen := make(map[string]bool)
	suites := []domain.TestSuite{}
	for _, tc := range cases {
		id, name := suiteKey(tc)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		suites = append(suites, domain.TestSuite{ID: id, Title: name})
	}
	return suites
}

// Assignees returns the distinct users referenced by cases, in first-seen order
func Assignees(cases []domain.TestCase) []domain.User {
	seen := make(map[string]bool)
	users := []domain.User{}
	for _, tc := range cases {
		id, name := assigneeKey(tc)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		users = append(users, domain.User{ID: id, Name: name})
	}
	return users
}
