// Package payload projects editor state onto the canonical wire payloads.
// Every builder is pure and total: it never fails and never reorders.
package payload

import (
	"strings"

	"github.com/alexanderramin/servio/internal/contract"
	"github.com/alexanderramin/servio/internal/domain"
)

// BuildGigPayload maps a draft to the gig schema. Texts are trimmed and
// unselected ids are sent as null.
func BuildGigPayload(d *domain.GigDraft) contract.GigPayload {
	roles := make([]contract.GigRole, len(d.Roles))
	for i, r := range d.Roles {
		roles[i] = contract.GigRole{
			NicheID:        idOrNil(r.NicheID),
			Niche:          strings.TrimSpace(r.Niche),
			ProfessionalID: idOrNil(r.ProfessionalID),
			Professional:   strings.TrimSpace(r.Professional),
			Budget:         r.Budget.Float64(),
			Description:    strings.TrimSpace(r.Description),
			Workload:       string(r.Workload),
		}
	}
	return contract.GigPayload{
		Title:         strings.TrimSpace(d.Title),
		Description:   strings.TrimSpace(d.Description),
		ProjectBudget: d.ProjectBudget.Float64(),
		Visibility:    string(d.Visibility),
		StartDate:     d.StartDate,
		EndDate:       d.EndDate,
		IsNegotiable:  d.IsNegotiable,
		Roles:         roles,
	}
}

// BuildDeliverablesPayload renames editor fields to the server's names,
// one output per input in the same order.
func BuildDeliverablesPayload(items []domain.DeliverableEntry) []contract.Deliverable {
	out := make([]contract.Deliverable, len(items))
	for i, it := range items {
		out[i] = contract.Deliverable{
			Description:   it.Title,
			DurationUnit:  string(it.Unit),
			DurationValue: it.Value,
			DueDate:       it.DueBy,
		}
	}
	return out
}

// BuildAppliedRolesPayload keeps only the active entries.
func BuildAppliedRolesPayload(apps []domain.AppliedRoleEntry) []contract.AppliedRole {
	out := make([]contract.AppliedRole, 0, len(apps))
	for _, a := range apps {
		if a.Active {
			out = append(out, appliedRole(a))
		}
	}
	return out
}

// BuildProjectRolePayload is used for gigs without structured roles: the
// project itself is the single role applied for, whatever its active flag.
func BuildProjectRolePayload(a domain.AppliedRoleEntry) []contract.AppliedRole {
	return []contract.AppliedRole{appliedRole(a)}
}

func appliedRole(a domain.AppliedRoleEntry) contract.AppliedRole {
	return contract.AppliedRole{
		IndustryID:     a.IndustryID,
		NicheID:        a.NicheID,
		RoleAmount:     amountOrNil(a.RoleAmount),
		ProposedAmount: amountOrNil(a.ProposedAmount),
		PaymentPlan:    string(a.PaymentPlan),
	}
}

func idOrNil(id int64) *int64 {
	if id == 0 {
		return nil
	}
	return &id
}

func amountOrNil(a domain.Amount) *float64 {
	if a.IsBlank() {
		return nil
	}
	f := a.Float64()
	return &f
}
