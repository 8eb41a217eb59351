package view

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"tcm/internal/domain"
)

// ErrInvalidForm is returned by Submit when the draft has field errors
var ErrInvalidForm = errors.New("form has errors")

// Form field names, matching the record's JSON keys
const (
	FieldTitle           = "title"
	FieldDescription     = "description"
	FieldPriority        = "priority"
	FieldExecutionStatus = "executionStatus"
	FieldTestSuiteID     = "testSuiteId"
	FieldAssignedUserID  = "assignedUserId"
)

// TestCaseSubmitter persists a test case draft
type TestCaseSubmitter interface {
	CreateTestCase(ctx context.Context, tc domain.TestCase) (domain.TestCase, error)
	UpdateTestCase(ctx context.Context, id string, tc domain.TestCase) error
}

// TestSuiteSubmitter persists a test suite draft
type TestSuiteSubmitter interface {
	CreateTestSuite(ctx context.Context, ts domain.TestSuite) (domain.TestSuite, error)
	UpdateTestSuite(ctx context.Context, id string, ts domain.TestSuite) error
}

// TestCaseForm holds the draft edited in the test case dialog
type TestCaseForm struct {
	Draft  domain.TestCase
	Errors map[string]string
	id     string
}

// NewTestCaseForm starts a draft from editing, or from defaults when editing is nil
func NewTestCaseForm(editing *domain.TestCase) *TestCaseForm {
	f := &TestCaseForm{Errors: map[string]string{}}
	if editing == nil {
		f.Draft = domain.NewTestCase()
		return f
	}
	f.id = editing.ID
	f.Draft = editing.WithDefaults().Record()
	f.Draft.ID = editing.ID
	return f
}

// Editing reports whether the form updates an existing record
func (f *TestCaseForm) Editing() bool {
	return f.id != ""
}

// Set updates one field of the draft and clears its error
func (f *TestCaseForm) Set(field, value string) error {
	switch field {
	case FieldTitle:
		f.Draft.Title = value
	case FieldDescription:
		f.Draft.Description = value
	case FieldPriority:
		f.Draft.Priority = domain.Priority(value)
	case FieldExecutionStatus:
		f.Draft.ExecutionStatus = domain.ExecutionStatus(value)
	case FieldTestSuiteID:
		f.Draft.TestSuiteID = value
	case FieldAssignedUserID:
		f.Draft.AssignedUserID = value
	default:
		return fmt.Errorf("unknown test case field %q", field)
	}
	delete(f.Errors, field)
	return nil
}

// Validate recomputes and returns the field errors
func (f *TestCaseForm) Validate() map[string]string {
	errs := map[string]string{}
	if strings.TrimSpace(f.Draft.Title) == "" {
		errs[FieldTitle] = "Title is required"
	}
	if strings.TrimSpace(f.Draft.TestSuiteID) == "" {
		errs[FieldTestSuiteID] = "Test Suite is required"
	}
	if f.Draft.Priority != "" && !f.Draft.Priority.IsValid() {
		errs[FieldPriority] = "Unknown priority"
	}
	if f.Draft.ExecutionStatus != "" && !f.Draft.ExecutionStatus.IsValid() {
		errs[FieldExecutionStatus] = "Unknown execution status"
	}
	f.Errors = errs
	return errs
}

// Submit validates the draft and creates or updates it. It returns the
// success message to show once the dialog closes.
func (f *TestCaseForm) Submit(ctx context.Context, s TestCaseSubmitter) (string, error) {
	if len(f.Validate()) > 0 {
		return "", ErrInvalidForm
	}
	if f.Editing() {
		if err := s.UpdateTestCase(ctx, f.id, f.Draft); err != nil {
			return "", err
		}
		return "Test case updated successfully", nil
	}
	if _, err := s.CreateTestCase(ctx, f.Draft); err != nil {
		return "", err
	}
	return "Test case created successfully", nil
}

// TestSuiteForm holds the draft edited in the test suite dialog
type TestSuiteForm struct {
	Draft  domain.TestSuite
	Errors map[string]string
	id     string
}

// NewTestSuiteForm starts a draft from editing, or empty when editing is nil
func NewTestSuiteForm(editing *domain.TestSuite) *TestSuiteForm {
	f := &TestSuiteForm{Errors: map[string]string{}, Draft: domain.NewTestSuite()}
	if editing != nil {
		f.id = editing.ID
		f.Draft = *editing
	}
	return f
}

// Editing reports whether the form updates an existing record
func (f *TestSuiteForm) Editing() bool {
	return f.id != ""
}

// Set updates one field of the draft and clears its error
func (f *TestSuiteForm) Set(field, value string) error {
	switch field {
	case FieldTitle:
		f.Draft.Title = value
	case FieldDescription:
		f.Draft.Description = value
	default:
		return fmt.Errorf("unknown test suite field %q", field)
	}
	delete(f.Errors, field)
	return nil
}

// Validate recomputes and returns the field errors
func (f *TestSuiteForm) Validate() map[string]string {
	errs := map[string]string{}
	if strings.TrimSpace(f.Draft.Title) == "" {
		errs[FieldTitle] = "Title is required"
	}
	f.Errors = errs
	return errs
}

// Submit validates the draft and creates or updates it
func (f *TestSuiteForm) Submit(ctx context.Context, s TestSuiteSubmitter) (string, error) {
	if len(f.Validate()) > 0 {
		return "", ErrInvalidForm
	}
	if f.Editing() {
		if err := s.UpdateTestSuite(ctx, f.id, f.Draft); err != nil {
			return "", err
		}
		return "Test suite updated successfully", nil
	}
	if _, err := s.CreateTestSuite(ctx, f.Draft); err != nil {
		return "", err
	}
	return "Test suite created successfully", nil
}
