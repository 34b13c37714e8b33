package proposal

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/servio/internal/contract"
	"github.com/alexanderramin/servio/internal/domain"
	"github.com/alexanderramin/servio/internal/payload"
)

var (
	ErrRoleMissing = errors.New("role not found")

	// ErrCannotApply is returned for edits to a role the professional is not
	// eligible for. Its fields are disabled.
	ErrCannotApply = errors.New("you cannot apply for this role")
)

// RoleSource is the role half of a proposal.
type RoleSource interface {
	ToPayload() []contract.AppliedRole
	Summary() domain.ProposalSummary
}

// SummaryFunc observes the proposal summary after every change.
type SummaryFunc func(domain.ProposalSummary)

// ApplicationsEditor manages applications to the structured roles of a gig.
// Entries are addressed by niche id.
type ApplicationsEditor struct {
	apps     []domain.AppliedRoleEntry
	onChange SummaryFunc
}

func NewApplicationsEditor(apps []domain.AppliedRoleEntry, onChange SummaryFunc) *ApplicationsEditor {
	return &ApplicationsEditor{
		apps:     append([]domain.AppliedRoleEntry(nil), apps...),
		onChange: onChange,
	}
}

// ApplicationsFromGig decorates the gig's roles for application. industryOf
// resolves a niche to its industry; canApply decides eligibility per role.
// Either may be nil: industry falls back to the gig's own, everyone may apply.
func ApplicationsFromGig(g *domain.GigDraft, industryOf func(nicheID int64) int64, canApply func(domain.RoleEntry) bool) []domain.AppliedRoleEntry {
	out := make([]domain.AppliedRoleEntry, 0, len(g.Roles))
	for _, r := range g.Roles {
		industry := g.IndustryID
		if industryOf != nil {
			if id := industryOf(r.NicheID); id != 0 {
				industry = id
			}
		}
		eligible := canApply == nil || canApply(r)
		out = append(out, domain.NewAppliedRole(industry, r.NicheID, r.DisplayName(), r.Budget, domain.DefaultPaymentPlan, eligible))
	}
	return out
}

// Entries returns a copy of the applications.
func (e *ApplicationsEditor) Entries() []domain.AppliedRoleEntry {
	return append([]domain.AppliedRoleEntry(nil), e.apps...)
}

// Toggle flips whether the professional applies for the role.
func (e *ApplicationsEditor) Toggle(nicheID int64) error {
	a, err := e.editable(nicheID)
	if err != nil {
		return err
	}
	a.Toggle()
	e.publish()
	return nil
}

// Touch writes a field. A non-blank value also activates the application.
func (e *ApplicationsEditor) Touch(nicheID int64, field domain.ApplicationField, value string) error {
	a, err := e.editable(nicheID)
	if err != nil {
		return err
	}
	if err := a.Touch(field, value); err != nil {
		return err
	}
	e.publish()
	return nil
}

func (e *ApplicationsEditor) Active(nicheID int64) bool {
	for _, a := range e.apps {
		if a.NicheID == nicheID {
			return a.Active
		}
	}
	return false
}

func (e *ApplicationsEditor) Summary() domain.ProposalSummary {
	return domain.Summarize(e.apps)
}

func (e *ApplicationsEditor) ToPayload() []contract.AppliedRole {
	return payload.BuildAppliedRolesPayload(e.apps)
}

func (e *ApplicationsEditor) editable(nicheID int64) (*domain.AppliedRoleEntry, error) {
	for i := range e.apps {
		if e.apps[i].NicheID != nicheID {
			continue
		}
		if !e.apps[i].CanApply {
			return nil, ErrCannotApply
		}
		return &e.apps[i], nil
	}
	return nil, fmt.Errorf("%w: niche %d", ErrRoleMissing, nicheID)
}

func (e *ApplicationsEditor) publish() {
	if e.onChange != nil {
		e.onChange(e.Summary())
	}
}

// ProjectRoleEditor is used when a gig has no structured roles: the
// professional applies for the project as a whole.
type ProjectRoleEditor struct {
	entry    domain.AppliedRoleEntry
	onChange SummaryFunc
}

// NewProjectRoleEditor builds the single application from the gig's own
// classification and budget.
func NewProjectRoleEditor(g *domain.GigDraft, onChange SummaryFunc) *ProjectRoleEditor {
	entry := domain.NewAppliedRole(g.IndustryID, g.NicheID, g.Title, g.ProjectBudget, domain.DefaultPaymentPlan, true)
	entry.Active = true
	return &ProjectRoleEditor{entry: entry, onChange: onChange}
}

func (e *ProjectRoleEditor) Entry() domain.AppliedRoleEntry { return e.entry }

func (e *ProjectRoleEditor) SetProposedAmount(raw string) error {
	return e.touch(domain.FieldProposedAmount, raw)
}

func (e *ProjectRoleEditor) SetPaymentPlan(plan domain.PaymentPlan) error {
	return e.touch(domain.FieldPaymentPlan, string(plan))
}

func (e *ProjectRoleEditor) touch(field domain.ApplicationField, value string) error {
	if err := e.entry.Touch(field, value); err != nil {
		return err
	}
	e.entry.Active = true
	if e.onChange != nil {
		e.onChange(e.Summary())
	}
	return nil
}

func (e *ProjectRoleEditor) Summary() domain.ProposalSummary {
	return domain.Summarize([]domain.AppliedRoleEntry{e.entry})
}

func (e *ProjectRoleEditor) ToPayload() []contract.AppliedRole {
	return payload.BuildProjectRolePayload(e.entry)
}
