package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the calendar date format used by every date field.
const DateLayout = "2006-01-02"

// GigDraft is the locally held, unsaved state of a gig being created or edited.
type GigDraft struct {
	ID            string      `json:"id,omitempty"`
	Slug          string      `json:"slug,omitempty"`
	Title         string      `json:"title"`
	Description   string      `json:"description"`
	Visibility    Visibility  `json:"visibility"`
	StartDate     string      `json:"startDate"`
	EndDate       string      `json:"endDate"`
	ProjectBudget Amount      `json:"projectBudget"`
	Roles         []RoleEntry `json:"roles"`
	IsNegotiable  bool        `json:"isNegotiable"`
	Status        GigStatus   `json:"status,omitempty"`

	// IndustryID and NicheID classify the project itself. Professionals
	// apply against them when the gig has no structured roles.
	IndustryID int64 `json:"industryId,omitempty"`
	NicheID    int64 `json:"nicheId,omitempty"`
}

// NewGigDraft returns an empty public draft.
func NewGigDraft() *GigDraft {
	return &GigDraft{Visibility: VisibilityPublic, Roles: []RoleEntry{}}
}

// Locked reports whether work on the gig has started. Locked drafts refuse
// role and budget edits.
func (g *GigDraft) Locked() bool {
	return g.Status == GigStatusInProgress
}

// ActiveRoles returns the roles that count toward the budget.
func (g *GigDraft) ActiveRoles() []RoleEntry {
	var out []RoleEntry
	for _, r := range g.Roles {
		if r.Active() {
			out = append(out, r)
		}
	}
	return out
}

// ActiveRolesTotal sums the budgets of active roles.
func (g *GigDraft) ActiveRolesTotal() decimal.Decimal {
	total := decimal.Zero
	for _, r := range g.Roles {
		if r.Active() {
			total = total.Add(r.Budget.Decimal())
		}
	}
	return total
}

// Clone returns a deep copy so callers can edit without aliasing roles.
func (g *GigDraft) Clone() *GigDraft {
	c := *g
	c.Roles = append([]RoleEntry(nil), g.Roles...)
	return &c
}

// RoleEntry is one professional role offered within a gig.
type RoleEntry struct {
	NicheID        int64    `json:"nicheId"`
	Niche          string   `json:"niche"`
	ProfessionalID int64    `json:"professionalId"`
	Professional   string   `json:"professional"`
	Budget         Amount   `json:"budget"`
	Description    string   `json:"description"`
	Workload       Workload `json:"workload"`
}

// Active reports whether the role has a niche, an assigned professional and
// a positive budget. Only active roles count toward the project budget.
func (r RoleEntry) Active() bool {
	return r.NicheID != 0 && r.ProfessionalID != 0 && r.Budget.Decimal().IsPositive()
}

// DisplayName returns the best label for the role in messages.
func (r RoleEntry) DisplayName() string {
	switch {
	case r.Professional != "":
		return r.Professional
	case r.Niche != "":
		return r.Niche
	default:
		return "untitled role"
	}
}

// ParseDate parses a YYYY-MM-DD date. Blank input yields a nil time.
func ParseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q (expected YYYY-MM-DD): %w", s, err)
	}
	return &t, nil
}

// StartOfDay returns t's calendar date at midnight UTC, the same form
// ParseDate produces.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
