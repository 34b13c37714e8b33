package proposal

import (
	"testing"

	"github.com/alexanderramin/servio/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gigWithRoles() *domain.GigDraft {
	return &domain.GigDraft{
		Slug:       "landing-page",
		Title:      "Landing page for launch",
		EndDate:    "2026-04-10",
		IndustryID: 1,
		Roles: []domain.RoleEntry{
			{NicheID: 10, Niche: "Branding", Budget: "300"},
			{NicheID: 20, Niche: "Backend", Budget: "700"},
		},
	}
}

func TestApplicationsFromGig(t *testing.T) {
	industries := map[int64]int64{20: 2}
	apps := ApplicationsFromGig(gigWithRoles(),
		func(id int64) int64 { return industries[id] },
		func(r domain.RoleEntry) bool { return r.NicheID != 20 },
	)

	require.Len(t, apps, 2)
	assert.Equal(t, int64(1), apps[0].IndustryID, "falls back to the gig industry")
	assert.Equal(t, int64(2), apps[1].IndustryID)
	assert.Equal(t, domain.Amount("300"), apps[0].ProposedAmount)
	assert.Equal(t, domain.DefaultPaymentPlan, apps[0].PaymentPlan)
	assert.True(t, apps[0].CanApply)
	assert.False(t, apps[1].CanApply)
	assert.False(t, apps[0].Active)
}

func TestApplicationsEditor_TouchActivatesAndPublishes(t *testing.T) {
	var summaries []domain.ProposalSummary
	e := NewApplicationsEditor(ApplicationsFromGig(gigWithRoles(), nil, nil), func(s domain.ProposalSummary) {
		summaries = append(summaries, s)
	})

	require.NoError(t, e.Touch(20, domain.FieldProposedAmount, "650"))

	assert.True(t, e.Active(20))
	assert.False(t, e.Active(10))
	require.Len(t, summaries, 1)
	assert.Equal(t, 1, summaries[0].Count)
	assert.Equal(t, "650", summaries[0].Subtotal.String())
	assert.Equal(t, "32.5", summaries[0].ServiceFee.String())
	assert.Equal(t, "682.5", summaries[0].Total.String())

	require.NoError(t, e.Touch(10, domain.FieldPaymentPlan, ""))
	assert.False(t, e.Active(10), "blank values do not activate")
}

func TestApplicationsEditor_Toggle(t *testing.T) {
	calls := 0
	e := NewApplicationsEditor(ApplicationsFromGig(gigWithRoles(), nil, nil), func(domain.ProposalSummary) { calls++ })

	require.NoError(t, e.Toggle(10))
	require.NoError(t, e.Toggle(20))
	require.NoError(t, e.Toggle(20))

	assert.Equal(t, 3, calls)
	payload := e.ToPayload()
	require.Len(t, payload, 1)
	assert.Equal(t, int64(10), payload[0].NicheID)
	assert.Equal(t, 300.0, *payload[0].ProposedAmount)

	assert.ErrorIs(t, e.Toggle(99), ErrRoleMissing)
}

func TestApplicationsEditor_DisabledRole(t *testing.T) {
	apps := ApplicationsFromGig(gigWithRoles(), nil, func(domain.RoleEntry) bool { return false })
	e := NewApplicationsEditor(apps, nil)

	assert.ErrorIs(t, e.Toggle(10), ErrCannotApply)
	assert.ErrorIs(t, e.Touch(10, domain.FieldProposedAmount, "1"), ErrCannotApply)
	assert.Empty(t, e.ToPayload())
}

func TestApplicationsEditor_UnknownField(t *testing.T) {
	e := NewApplicationsEditor(ApplicationsFromGig(gigWithRoles(), nil, nil), nil)
	assert.Error(t, e.Touch(10, "role_amount", "5"))
	assert.False(t, e.Active(10))
}

func TestProjectRoleEditor(t *testing.T) {
	g := &domain.GigDraft{IndustryID: 3, NicheID: 30, Title: "Whole project", ProjectBudget: "1200"}
	var last domain.ProposalSummary
	e := NewProjectRoleEditor(g, func(s domain.ProposalSummary) { last = s })

	assert.Equal(t, 1, e.Summary().Count)
	assert.Equal(t, "1200", e.Summary().Subtotal.String())

	require.NoError(t, e.SetProposedAmount("1000"))
	require.NoError(t, e.SetPaymentPlan(domain.PaymentFullUpfront))
	assert.Equal(t, "1000", last.Subtotal.String())

	out := e.ToPayload()
	require.Len(t, out, 1)
	assert.Equal(t, int64(3), out[0].IndustryID)
	assert.Equal(t, int64(30), out[0].NicheID)
	assert.Equal(t, 1200.0, *out[0].RoleAmount)
	assert.Equal(t, 1000.0, *out[0].ProposedAmount)
	assert.Equal(t, "full_upfront", out[0].PaymentPlan)
}
