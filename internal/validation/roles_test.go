package validation

import (
	"testing"

	"github.com/alexanderramin/servio/internal/contract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptrFloat(f float64) *float64 { return &f }

func validApplied() contract.AppliedRole {
	return contract.AppliedRole{
		IndustryID:     1,
		NicheID:        2,
		RoleAmount:     ptrFloat(500),
		ProposedAmount: ptrFloat(450),
		PaymentPlan:    "split_50_50",
	}
}

func TestValidateAppliedRoles_Empty(t *testing.T) {
	res := ValidateAppliedRoles(nil)
	require.False(t, res.Valid)
	assert.Equal(t, CodeRolesRequired, res.First().Code)
	assert.Equal(t, "Roles Required", res.First().Title)
}

func TestValidateAppliedRoles_Valid(t *testing.T) {
	assert.True(t, ValidateAppliedRoles([]contract.AppliedRole{validApplied()}).Valid)
}

func TestValidateAppliedRoles_FirstMissingField(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *contract.AppliedRole)
		field  string
	}{
		{"industry", func(r *contract.AppliedRole) { r.IndustryID = 0; r.NicheID = 0 }, "applied_roles[0].industry_id"},
		{"niche", func(r *contract.AppliedRole) { r.NicheID = 0 }, "applied_roles[0].niche_id"},
		{"role amount", func(r *contract.AppliedRole) { r.RoleAmount = nil; r.ProposedAmount = nil }, "applied_roles[0].role_amount"},
		{"proposed amount", func(r *contract.AppliedRole) { r.ProposedAmount = nil }, "applied_roles[0].proposed_amount"},
		{"blank plan", func(r *contract.AppliedRole) { r.PaymentPlan = "   " }, "applied_roles[0].payment_plan"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validApplied()
			tt.mutate(&r)
			res := ValidateAppliedRoles([]contract.AppliedRole{r})
			require.False(t, res.Valid)
			require.Len(t, res.Errors, 1)
			assert.Equal(t, tt.field, res.First().Field)
		})
	}
}

func TestValidateAppliedRoles_FailFast(t *testing.T) {
	bad := validApplied()
	bad.PaymentPlan = ""
	worse := contract.AppliedRole{}

	res := ValidateAppliedRoles([]contract.AppliedRole{validApplied(), bad, worse})

	require.Len(t, res.Errors, 1)
	assert.Equal(t, "applied_roles[1].payment_plan", res.First().Field)
	assert.Equal(t, "Applied role #2 is missing payment plan.", res.First().Message)
}
