package actions

import "tcm/internal/domain"

// Denormalize copies the suite title and assignee name onto every test case.
// References that do not resolve become domain.Unassigned. Empty priority and
// status get their defaults. The input slices are not modified.
func Denormalize(cases []domain.TestCase, suites []domain.TestSuite, users []domain.User) []domain.TestCase {
	suiteTitles := make(map[string]string, len(suites))
	for _, s := range suites {
		if _, ok := suiteTitles[s.ID]; !ok {
			suiteTitles[s.ID] = s.Title
		}
	}
	userNames := make(map[string]string, len(users))
	for _, u := range users {
		if _, ok := userNames[u.ID]; !ok {
			userNames[u.ID] = u.Name
		}
	}

	out := make([]domain.TestCase, 0, len(cases))
	for _, tc := range cases {
		tc = tc.WithDefaults()
		tc.TestSuiteName = domain.Unassigned
		if title, ok := suiteTitles[tc.TestSuiteID]; ok && tc.TestSuiteID != "" {
			tc.TestSuiteName = title
		}
		tc.AssignedUserName = domain.Unassigned
		if name, ok := userNames[tc.AssignedUserID]; ok && tc.AssignedUserID != "" {
			tc.AssignedUserName = name
		}
		out = append(out, tc)
	}
	return out
}
