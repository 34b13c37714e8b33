package gig

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/servio/internal/budget"
	"github.com/alexanderramin/servio/internal/contract"
	"github.com/alexanderramin/servio/internal/domain"
	"github.com/alexanderramin/servio/internal/notify"
	"github.com/alexanderramin/servio/internal/submit"
	"github.com/alexanderramin/servio/internal/testutil"
	"github.com/alexanderramin/servio/internal/transport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)

const roleDescription = "Own the backend services, database schema and deployment pipeline for launch"

func validDraft() *domain.GigDraft {
	return &domain.GigDraft{
		Title:         "A brand new gig title",
		Description:   "We need a small team to ship the first version of our marketplace app",
		Visibility:    domain.VisibilityPublic,
		StartDate:     now.AddDate(0, 0, 1).Format(domain.DateLayout),
		EndDate:       now.AddDate(0, 0, 30).Format(domain.DateLayout),
		ProjectBudget: "1000",
		Roles: []domain.RoleEntry{{
			NicheID:        1,
			Niche:          "n1",
			ProfessionalID: 2,
			Professional:   "p1",
			Budget:         "500",
			Description:    roleDescription,
			Workload:       "Full-time",
		}},
	}
}

func newController(draft *domain.GigDraft, gw transport.Gateway, rec *notify.Recorder) *Controller {
	return NewController(draft, gw, rec, Config{
		CSRFToken: "csrf",
		Now:       func() time.Time { return now },
	})
}

func TestSubmit_ValidDraftSendsCanonicalPayload(t *testing.T) {
	var rec notify.Recorder
	gw := &testutil.FakeGateway{Reply: `{"message":"Created"}`}
	c := newController(validDraft(), gw, &rec)

	out, err := c.Submit(context.Background(), "publish")

	require.NoError(t, err)
	assert.Equal(t, submit.StatusSucceeded, out.Status)
	assert.Equal(t, StateSucceeded, c.State())
	assert.False(t, c.Submitting())

	calls := gw.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, contract.CreateGigPath, calls[0].Endpoint)
	assert.Equal(t, "csrf", calls[0].CSRFToken)

	var sent contract.GigSubmission
	require.NoError(t, gw.LastBody(&sent))
	assert.Equal(t, contract.ActionPublish, sent.Action)
	assert.Equal(t, "A brand new gig title", sent.Payload.Title)
	assert.Equal(t, 1000.0, sent.Payload.ProjectBudget)
	require.Len(t, sent.Payload.Roles, 1)
	assert.Equal(t, 500.0, sent.Payload.Roles[0].Budget)

	toasts := rec.Toasts()
	require.Len(t, toasts, 1)
	assert.Equal(t, notify.LevelSuccess, toasts[0].Level)
	assert.Equal(t, "Created", toasts[0].Message)
}

func TestSubmit_EditFlowUsesModifyRoute(t *testing.T) {
	d := validDraft()
	d.Slug = "my-gig"
	var rec notify.Recorder
	gw := &testutil.FakeGateway{}
	c := newController(d, gw, &rec)

	_, err := c.Submit(context.Background(), "draft")

	require.NoError(t, err)
	assert.Equal(t, "/collaboration/modify/my-gig/", gw.Calls()[0].Endpoint)
	assert.Equal(t, 1, rec.Count(submit.TitleSuccess))
}

func TestSubmit_NilRecorderNotifier(t *testing.T) {
	var rec *notify.Recorder
	gw := &testutil.FakeGateway{}
	c := NewController(validDraft(), gw, rec, Config{Now: func() time.Time { return now }})

	assert.NotPanics(t, func() {
		_, err := c.Submit(context.Background(), "publish")
		assert.NoError(t, err)
	})
	assert.Len(t, gw.Calls(), 1)
}

func TestSubmit_ValidationFailureSendsNothing(t *testing.T) {
	var rec notify.Recorder
	gw := &testutil.FakeGateway{}
	d := validDraft()
	d.Title = "ok"
	d.ProjectBudget = "0"
	d.Roles = nil
	c := newController(d, gw, &rec)

	out, err := c.Submit(context.Background(), "publish")

	assert.ErrorIs(t, err, submit.ErrInvalid)
	assert.Equal(t, submit.StatusInvalid, out.Status)
	assert.Empty(t, gw.Calls())
	assert.Equal(t, StateEditing, c.State())
	assert.False(t, c.Submitting())
	assert.Len(t, rec.Toasts(), len(out.Violations))
	assert.GreaterOrEqual(t, len(out.Violations), 2)
}

func TestSubmit_UnknownAction(t *testing.T) {
	gw := &testutil.FakeGateway{}
	c := newController(validDraft(), gw, nil)

	_, err := c.Submit(context.Background(), "delete")

	assert.ErrorIs(t, err, ErrUnknownAction)
	assert.Empty(t, gw.Calls())
}

func TestSubmit_GatewayFailure(t *testing.T) {
	var rec notify.Recorder
	gw := &testutil.FakeGateway{Fail: true, Notifier: &rec}
	c := newController(validDraft(), gw, &rec)

	out, err := c.Submit(context.Background(), "publish")

	assert.ErrorIs(t, err, transport.ErrUnreachable)
	assert.Equal(t, submit.StatusUnreachable, out.Status)
	assert.False(t, c.Submitting())
	assert.Equal(t, StateEditing, c.State())
	assert.Len(t, gw.Calls(), 1, "nothing resent")
	assert.Equal(t, 1, rec.Count(transport.TitleClientError))
	assert.Len(t, rec.Toasts(), 1)
}

func TestSubmit_RealGatewayUnreachable(t *testing.T) {
	var rec notify.Recorder
	cfg := transport.DefaultConfig()
	cfg.BaseURL = "http://127.0.0.1:1" // nothing listening
	gw := transport.NewGateway(cfg, &rec, nil)
	c := newController(validDraft(), gw, &rec)

	_, err := c.Submit(context.Background(), "draft")

	assert.ErrorIs(t, err, transport.ErrUnreachable)
	assert.False(t, c.Submitting())
	require.Len(t, rec.Toasts(), 1)
	assert.Equal(t, transport.MessageClientError, rec.Toasts()[0].Message)
}

func TestSubmit_ServerRejection(t *testing.T) {
	var rec notify.Recorder
	gw := &testutil.FakeGateway{Status: 400, Reply: `{"error":"Bad Gig","message":"Title already used"}`}
	c := newController(validDraft(), gw, &rec)

	out, err := c.Submit(context.Background(), "publish")

	assert.ErrorIs(t, err, submit.ErrRejected)
	assert.Equal(t, submit.StatusRejected, out.Status)
	assert.Equal(t, StateEditing, c.State())
	toasts := rec.Toasts()
	require.Len(t, toasts, 1)
	assert.Equal(t, "Bad Gig", toasts[0].Title)
	assert.Equal(t, "Title already used", toasts[0].Message)

	gw.Status = 200
	gw.Reply = ""
	_, err = c.Submit(context.Background(), "publish")
	require.NoError(t, err, "resubmittable after a rejection")
	assert.Equal(t, MessageSaved, rec.Toasts()[1].Message)
}

func TestSubmit_RejectsReentry(t *testing.T) {
	gw := &testutil.FakeGateway{}
	c := newController(validDraft(), gw, nil)

	var nested error
	gw.OnPost = func() {
		assert.True(t, c.Submitting())
		_, nested = c.Submit(context.Background(), "publish")
	}

	_, err := c.Submit(context.Background(), "publish")

	require.NoError(t, err)
	assert.ErrorIs(t, nested, submit.ErrInFlight)
	assert.Len(t, gw.Calls(), 1)
	assert.False(t, c.Submitting())
}

func TestSubmit_Redirect(t *testing.T) {
	var got []string
	gw := &testutil.FakeGateway{Reply: `{"url":"/collaboration/details/my-gig/"}`}
	c := NewController(validDraft(), gw, nil, Config{
		Now: func() time.Time { return now },
		Redirector: submit.RedirectFunc(func(_ context.Context, url string) error {
			got = append(got, url)
			return nil
		}),
	})

	out, err := c.Submit(context.Background(), "publish")

	require.NoError(t, err)
	assert.Equal(t, "/collaboration/details/my-gig/", out.RedirectURL)
	assert.Equal(t, []string{"/collaboration/details/my-gig/"}, got)
}

func TestSetRoles_LocksBudget(t *testing.T) {
	var rec notify.Recorder
	c := newController(validDraft(), &testutil.FakeGateway{}, &rec)

	roles := c.Draft().Roles
	roles = append(roles, domain.RoleEntry{NicheID: 3, ProfessionalID: 4, Budget: "700"})
	require.NoError(t, c.SetRoles(roles))
	require.NoError(t, c.SetRoles(roles))

	assert.True(t, c.BudgetLocked())
	assert.Equal(t, "1200", c.RolesTotal())
	assert.Equal(t, domain.Amount("1200"), c.Draft().ProjectBudget)
	assert.Equal(t, 1, rec.Count(budget.TitleLocked))
	assert.ErrorIs(t, c.SetProjectBudget("5000"), ErrBudgetLocked)

	require.NoError(t, c.SetRoles(roles[:1]))
	assert.False(t, c.BudgetLocked())
	assert.Equal(t, domain.Amount("1000"), c.Draft().ProjectBudget)
	assert.NoError(t, c.SetProjectBudget("5000"))
}

func TestSetRoles_TruncatesDescriptions(t *testing.T) {
	c := newController(validDraft(), &testutil.FakeGateway{}, nil)
	long := strings.Repeat("x", 800)

	require.NoError(t, c.AddRole(domain.RoleEntry{NicheID: 3, Description: long}))

	roles := c.Draft().Roles
	require.Len(t, roles, 2)
	assert.Len(t, roles[1].Description, 730)
}

func TestInProgressDraftIsLocked(t *testing.T) {
	d := validDraft()
	d.Status = domain.GigStatusInProgress
	c := newController(d, &testutil.FakeGateway{}, nil)

	assert.ErrorIs(t, c.SetRoles(nil), ErrDraftLocked)
	assert.ErrorIs(t, c.SetProjectBudget("10"), ErrDraftLocked)
	c.SetTitle("Still editable title")
	assert.Equal(t, "Still editable title", c.Draft().Title)
}

func TestSetDescription_Truncates(t *testing.T) {
	c := newController(validDraft(), &testutil.FakeGateway{}, nil)
	c.SetDescription(strings.Repeat("a", 2500))
	assert.Len(t, c.Draft().Description, 2000)

	words := NewController(validDraft(), &testutil.FakeGateway{}, nil, Config{
		DescriptionLimit: domain.TextLimit{Max: 3, Unit: domain.LimitWords},
	})
	words.SetDescription("one two three four five")
	assert.Equal(t, "one two three", words.Draft().Description)
}

func TestEditingSetters(t *testing.T) {
	c := newController(domain.NewGigDraft(), &testutil.FakeGateway{}, nil)

	assert.ErrorIs(t, c.SetVisibility("secret"), ErrInvalidVisibility)
	require.NoError(t, c.SetVisibility(domain.VisibilityPrivate))
	c.SetDates("2026-04-01", "2026-05-01")
	c.SetNegotiable(true)

	d := c.Draft()
	assert.Equal(t, domain.VisibilityPrivate, d.Visibility)
	assert.Equal(t, "2026-04-01", d.StartDate)
	assert.Equal(t, "2026-05-01", d.EndDate)
	assert.True(t, d.IsNegotiable)
}

func TestDraftIsCopied(t *testing.T) {
	d := validDraft()
	c := newController(d, &testutil.FakeGateway{}, nil)
	d.Title = "mutated outside"
	d.Roles[0].Budget = "1"

	assert.Equal(t, "A brand new gig title", c.Draft().Title)
	assert.Equal(t, domain.Amount("500"), c.Draft().Roles[0].Budget)
}
