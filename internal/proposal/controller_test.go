package proposal

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/servio/internal/domain"
	"github.com/alexanderramin/servio/internal/notify"
	"github.com/alexanderramin/servio/internal/submit"
	"github.com/alexanderramin/servio/internal/testutil"
	"github.com/alexanderramin/servio/internal/transport"
	"github.com/alexanderramin/servio/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 3, 10, 9, 30, 15, 500, time.FixedZone("CET", 3600))

const deliverableText = "Design the landing page hero, pricing table and signup flow in Figma"

func newTestController(g *domain.GigDraft, gw *testutil.FakeGateway, rec *notify.Recorder) *Controller {
	return ForGig(g, gw, rec, Config{CSRFToken: "csrf", Now: func() time.Time { return now }})
}

func fillDeliverable(t *testing.T, c *Controller, due string) {
	t.Helper()
	e := c.Deliverables()
	id := e.Items()[0].ID
	require.NoError(t, e.SetTitle(id, deliverableText))
	require.NoError(t, e.SetDuration(id, domain.UnitWeeks, 2))
	require.NoError(t, e.SetDueBy(id, due))
}

func TestForGig_PicksRoleEditor(t *testing.T) {
	withRoles := newTestController(gigWithRoles(), &testutil.FakeGateway{}, nil)
	assert.NotNil(t, withRoles.Applications())
	assert.Nil(t, withRoles.ProjectRole())

	g := gigWithRoles()
	g.Roles = nil
	without := newTestController(g, &testutil.FakeGateway{}, nil)
	assert.Nil(t, without.Applications())
	assert.NotNil(t, without.ProjectRole())
}

func TestSubmit_SendsProposal(t *testing.T) {
	var rec notify.Recorder
	gw := &testutil.FakeGateway{Reply: `{"message":"Proposal received"}`}
	c := newTestController(gigWithRoles(), gw, &rec)
	require.NoError(t, c.Applications().Touch(20, domain.FieldProposedAmount, "600"))
	fillDeliverable(t, c, "2026-04-01")

	out, err := c.Submit(context.Background())

	require.NoError(t, err)
	assert.Equal(t, submit.StatusSucceeded, out.Status)
	calls := gw.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "/collaboration/opportunities/accept-offer/landing-page/", calls[0].Endpoint)
	assert.JSONEq(t, `{
		"deliverables": [{"description": "`+deliverableText+`", "duration_unit": "weeks", "duration_value": 2, "due_date": "2026-04-01"}],
		"applied_roles": [{"industry_id": 1, "niche_id": 20, "role_amount": 700, "proposed_amount": 600, "payment_plan": "split_50_50"}],
		"proposal_value": 600,
		"sent_at": "2026-03-10T08:30:15Z"
	}`, string(calls[0].Body))
	assert.Equal(t, "Proposal received", rec.Toasts()[0].Message)
	assert.False(t, c.Submitting())
}

func TestSubmit_RolesCheckedBeforeDeliverables(t *testing.T) {
	var rec notify.Recorder
	gw := &testutil.FakeGateway{}
	c := newTestController(gigWithRoles(), gw, &rec)

	out, err := c.Submit(context.Background())

	assert.ErrorIs(t, err, submit.ErrInvalid)
	require.Len(t, out.Violations, 1)
	assert.Equal(t, validation.CodeRolesRequired, out.Violations[0].Code)
	assert.Len(t, rec.Toasts(), 1)
	assert.Empty(t, gw.Calls())
}

func TestSubmit_DeliverableDueTooLate(t *testing.T) {
	var rec notify.Recorder
	gw := &testutil.FakeGateway{}
	c := newTestController(gigWithRoles(), gw, &rec)
	require.NoError(t, c.Applications().Toggle(10))
	fillDeliverable(t, c, "2026-04-09")

	out, err := c.Submit(context.Background())

	assert.ErrorIs(t, err, submit.ErrInvalid)
	assert.Equal(t, validation.CodeDueDateTooLate, out.Violations[0].Code)
	assert.Len(t, rec.Toasts(), 1)
	assert.Empty(t, gw.Calls())
}

func TestSubmit_ProjectRole(t *testing.T) {
	g := &domain.GigDraft{Slug: "whole", EndDate: "2026-04-10", IndustryID: 3, NicheID: 30, ProjectBudget: "900"}
	var rec notify.Recorder
	gw := &testutil.FakeGateway{}
	c := newTestController(g, gw, &rec)
	fillDeliverable(t, c, "2026-04-01")

	_, err := c.Submit(context.Background())

	require.NoError(t, err)
	var sent struct {
		AppliedRoles []map[string]any `json:"applied_roles"`
		Value        float64          `json:"proposal_value"`
	}
	require.NoError(t, gw.LastBody(&sent))
	require.Len(t, sent.AppliedRoles, 1)
	assert.Equal(t, 900.0, sent.Value)
	assert.Len(t, rec.Toasts(), 1)
}

func TestSubmit_GatewayFailure(t *testing.T) {
	var rec notify.Recorder
	gw := &testutil.FakeGateway{Fail: true, Notifier: &rec}
	c := newTestController(gigWithRoles(), gw, &rec)
	require.NoError(t, c.Applications().Toggle(10))
	fillDeliverable(t, c, "2026-04-01")

	_, err := c.Submit(context.Background())

	assert.ErrorIs(t, err, transport.ErrUnreachable)
	assert.False(t, c.Submitting())
	assert.Len(t, gw.Calls(), 1)
	require.Len(t, rec.Toasts(), 1)
	assert.Equal(t, transport.TitleClientError, rec.Toasts()[0].Title)
}

func TestSubmit_RejectsReentry(t *testing.T) {
	gw := &testutil.FakeGateway{}
	c := newTestController(gigWithRoles(), gw, nil)
	require.NoError(t, c.Applications().Toggle(10))
	fillDeliverable(t, c, "2026-04-01")

	var nested error
	gw.OnPost = func() { _, nested = c.Submit(context.Background()) }

	_, err := c.Submit(context.Background())

	require.NoError(t, err)
	assert.ErrorIs(t, nested, submit.ErrInFlight)
	assert.Len(t, gw.Calls(), 1)
}
