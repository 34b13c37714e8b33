package validation

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/servio/internal/contract"
)

const (
	titleRoles        = "Roles Required"
	titleRoleApplying = "Incomplete Application"
)

// ValidateAppliedRoles checks the applied roles payload and stops at the
// first role with a missing field.
func ValidateAppliedRoles(roles []contract.AppliedRole) Result {
	if len(roles) == 0 {
		return fail(Violation{
			Code:    CodeRolesRequired,
			Field:   "applied_roles",
			Title:   titleRoles,
			Message: "Please apply for at least one role.",
		})
	}

	for i, r := range roles {
		if name := firstMissing(r); name != "" {
			return fail(Violation{
				Code:    CodeFieldRequired,
				Field:   fmt.Sprintf("applied_roles[%d].%s", i, name),
				Title:   titleRoleApplying,
				Message: fmt.Sprintf("Applied role #%d is missing %s.", i+1, strings.ReplaceAll(name, "_", " ")),
			})
		}
	}
	return ok()
}

func firstMissing(r contract.AppliedRole) string {
	switch {
	case r.IndustryID == 0:
		return "industry_id"
	case r.NicheID == 0:
		return "niche_id"
	case r.RoleAmount == nil:
		return "role_amount"
	case r.ProposedAmount == nil:
		return "proposed_amount"
	case strings.TrimSpace(r.PaymentPlan) == "":
		return "payment_plan"
	}
	return ""
}
