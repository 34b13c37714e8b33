// Package validation computes the business-rule violations of gig drafts and
// proposal payloads before anything is sent to the server.
//
// Gig drafts are validated accumulate-all: a long form shows every problem at
// once. Deliverables and applied roles are validated fail-fast: the proposal
// flow shows one problem at a time.
package validation

import "fmt"

// Code identifies the rule a Violation broke.
type Code string

const (
	CodeTitleTooShort        Code = "TITLE_TOO_SHORT"
	CodeDescriptionTooShort  Code = "DESCRIPTION_TOO_SHORT"
	CodeDescriptionTooLong   Code = "DESCRIPTION_TOO_LONG"
	CodeVisibilityInvalid    Code = "VISIBILITY_INVALID"
	CodeTimelineRequired     Code = "TIMELINE_REQUIRED"
	CodeDateInvalid          Code = "DATE_INVALID"
	CodeStartNotFuture       Code = "START_NOT_FUTURE"
	CodeEndBeforeStart       Code = "END_BEFORE_START"
	CodeDurationTooLong      Code = "DURATION_TOO_LONG"
	CodeBudgetNotPositive    Code = "BUDGET_NOT_POSITIVE"
	CodeRoleNicheRequired    Code = "ROLE_NICHE_REQUIRED"
	CodeRoleNicheUnknown     Code = "ROLE_NICHE_UNKNOWN"
	CodeRoleProfessional     Code = "ROLE_PROFESSIONAL_REQUIRED"
	CodeRoleBudgetTooLow     Code = "ROLE_BUDGET_TOO_LOW"
	CodeRoleDescription      Code = "ROLE_DESCRIPTION_TOO_SHORT"
	CodeRoleWorkload         Code = "ROLE_WORKLOAD_REQUIRED"
	CodeUnbalancedBudget     Code = "UNBALANCED_BUDGET"
	CodeDeliverablesRequired Code = "DELIVERABLES_REQUIRED"
	CodeFieldRequired        Code = "FIELD_REQUIRED"
	CodeDurationOutOfRange   Code = "DURATION_OUT_OF_RANGE"
	CodeDueDateTooLate       Code = "DUE_DATE_TOO_LATE"
	CodeRolesRequired        Code = "ROLES_REQUIRED"
)

// Violation is one human readable validation failure.
type Violation struct {
	Code    Code
	Field   string
	Title   string
	Message string
}

func (v Violation) Error() string {
	if v.Field == "" {
		return v.Message
	}
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

// Result is the outcome of a validator. Valid is true iff Errors is empty.
type Result struct {
	Valid  bool
	Errors []Violation
}

// First returns the first violation, or nil for a valid result. Fail-fast
// validators carry at most one, so this is their error context.
func (r Result) First() *Violation {
	if len(r.Errors) == 0 {
		return nil
	}
	return &r.Errors[0]
}

// Messages returns the message of every violation in order.
func (r Result) Messages() []string {
	out := make([]string, len(r.Errors))
	for i, v := range r.Errors {
		out[i] = v.Message
	}
	return out
}

// Has reports whether any violation carries code.
func (r Result) Has(code Code) bool {
	for _, v := range r.Errors {
		if v.Code == code {
			return true
		}
	}
	return false
}

func ok() Result {
	return Result{Valid: true}
}

func fail(v Violation) Result {
	return Result{Errors: []Violation{v}}
}

func collect(vs []Violation) Result {
	return Result{Valid: len(vs) == 0, Errors: vs}
}
