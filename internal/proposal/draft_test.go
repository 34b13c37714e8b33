package proposal

import (
	"testing"

	"github.com/alexanderramin/servio/internal/domain"
	"github.com/alexanderramin/servio/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromDraft_RequiresGig(t *testing.T) {
	_, err := FromDraft(&domain.ProposalDraft{}, nil, nil, Config{})
	assert.ErrorIs(t, err, ErrNoGig)

	_, err = FromDraft(nil, nil, nil, Config{})
	assert.ErrorIs(t, err, ErrNoGig)
}

func TestSnapshot_RoundTripsApplications(t *testing.T) {
	c := newTestController(gigWithRoles(), &testutil.FakeGateway{}, nil)
	require.NoError(t, c.Applications().Touch(20, domain.FieldProposedAmount, "650"))
	fillDeliverable(t, c, "2026-04-01")

	snap := c.Snapshot()
	require.Len(t, snap.Applications, 2)
	assert.Nil(t, snap.ProjectRole)
	assert.Equal(t, "landing-page", snap.Gig.Slug)

	restored, err := FromDraft(snap, &testutil.FakeGateway{}, nil, Config{})
	require.NoError(t, err)
	assert.True(t, restored.Applications().Active(20))
	assert.False(t, restored.Applications().Active(10))
	assert.Equal(t, c.Summary(), restored.Summary())
	assert.Equal(t, c.Deliverables().Items(), restored.Deliverables().Items())
}

func TestSnapshot_RoundTripsProjectRole(t *testing.T) {
	g := gigWithRoles()
	g.Roles = nil
	g.ProjectBudget = "900"
	c := newTestController(g, &testutil.FakeGateway{}, nil)
	require.NoError(t, c.ProjectRole().SetProposedAmount("850"))
	require.NoError(t, c.ProjectRole().SetPaymentPlan(domain.PaymentPlans[len(domain.PaymentPlans)-1]))

	snap := c.Snapshot()
	require.NotNil(t, snap.ProjectRole)
	assert.Empty(t, snap.Applications)

	restored, err := FromDraft(snap, nil, nil, Config{})
	require.NoError(t, err)
	assert.Equal(t, domain.Amount("850"), restored.ProjectRole().Entry().ProposedAmount)
	assert.Equal(t, c.ProjectRole().Entry().PaymentPlan, restored.ProjectRole().Entry().PaymentPlan)
}

func TestFromDraft_DerivesMissingApplications(t *testing.T) {
	p := &domain.ProposalDraft{Gig: gigWithRoles()}

	c, err := FromDraft(p, nil, nil, Config{})
	require.NoError(t, err)
	require.NotNil(t, c.Applications())
	assert.Len(t, c.Applications().Entries(), 2)
	assert.Equal(t, 1, c.Deliverables().Len(), "starts with one blank deliverable")
}
