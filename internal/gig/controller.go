// Package gig drives the create and edit flows of a gig draft: local edits,
// budget locking, validation and submission.
package gig

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/servio/internal/budget"
	"github.com/alexanderramin/servio/internal/contract"
	"github.com/alexanderramin/servio/internal/domain"
	"github.com/alexanderramin/servio/internal/notify"
	"github.com/alexanderramin/servio/internal/payload"
	"github.com/alexanderramin/servio/internal/submit"
	"github.com/alexanderramin/servio/internal/transport"
	"github.com/alexanderramin/servio/internal/validation"
)

const (
	MessageSaved = "Gig successfully saved!"
	TitleReject  = "Unable to Save gig/project data"
)

var (
	// ErrDraftLocked is returned for role and budget edits on a gig whose
	// work has started.
	ErrDraftLocked = errors.New("gig is in progress; roles and budget cannot be changed")

	// ErrBudgetLocked is returned when the budget is typed while it is
	// pinned to the roles total.
	ErrBudgetLocked = errors.New("project budget is locked to the total cost of roles")

	// ErrUnknownAction is returned for a submit action other than publish or draft.
	ErrUnknownAction = errors.New("unknown submit action")

	ErrInvalidVisibility = errors.New("visibility must be public or private")
)

type State string

const (
	StateEditing    State = "editing"
	StateValidating State = "validating"
	StateSubmitting State = "submitting"
	StateSucceeded  State = "succeeded"
)

// Config controls a Controller. Zero fields take defaults.
type Config struct {
	// Endpoint overrides the create/modify route derived from the draft slug.
	Endpoint         string
	CSRFToken        string
	RedirectDelay    time.Duration
	Redirector       submit.Redirector
	DescriptionLimit domain.TextLimit
	Validation       validation.Options
	Now              func() time.Time
}

// Controller owns one gig draft. It is meant for a single goroutine; only
// the in-flight flag is safe to read from elsewhere.
type Controller struct {
	draft    *domain.GigDraft
	budget   *budget.Coordinator
	sender   submit.Sender
	notifier notify.Notifier
	cfg      Config
	guard    submit.Guard
	state    State
}

// NewController takes ownership of a copy of draft.
func NewController(draft *domain.GigDraft, gw transport.Gateway, n notify.Notifier, cfg Config) *Controller {
	if draft == nil {
		draft = domain.NewGigDraft()
	}
	n = notify.OrDiscard(n)
	if cfg.DescriptionLimit.Max <= 0 {
		cfg.DescriptionLimit = domain.GigDescriptionLimit
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	d := draft.Clone()
	c := &Controller{
		draft:    d,
		budget:   budget.NewCoordinator(d.ProjectBudget.Decimal(), n),
		notifier: n,
		cfg:      cfg,
		state:    StateEditing,
		sender: submit.Sender{
			Gateway:        gw,
			Notifier:       n,
			Redirector:     cfg.Redirector,
			RedirectDelay:  cfg.RedirectDelay,
			SuccessMessage: MessageSaved,
			RejectTitle:    TitleReject,
		},
	}
	c.budget.SetRoles(d.Roles)
	c.syncBudget()
	return c
}

// Draft returns a copy of the current draft.
func (c *Controller) Draft() *domain.GigDraft { return c.draft.Clone() }

func (c *Controller) State() State { return c.state }

// Submitting reports whether a submit is in flight.
func (c *Controller) Submitting() bool { return c.guard.Busy() }

func (c *Controller) BudgetLocked() bool { return c.budget.Locked() }

func (c *Controller) RolesTotal() string { return c.budget.RolesTotal().String() }

func (c *Controller) SetTitle(title string) { c.draft.Title = title }

// SetDescription stores the description, silently cut to the limit.
func (c *Controller) SetDescription(desc string) {
	c.draft.Description = c.cfg.DescriptionLimit.Truncate(desc)
}

func (c *Controller) SetVisibility(v domain.Visibility) error {
	if !v.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidVisibility, v)
	}
	c.draft.Visibility = v
	return nil
}

// SetDates stores the timeline as typed; ordering is checked on submit.
func (c *Controller) SetDates(start, end string) {
	c.draft.StartDate = start
	c.draft.EndDate = end
}

func (c *Controller) SetNegotiable(v bool) { c.draft.IsNegotiable = v }

// SetRoles replaces the role list and re-runs budget coordination.
func (c *Controller) SetRoles(roles []domain.RoleEntry) error {
	if c.draft.Locked() {
		return ErrDraftLocked
	}
	out := make([]domain.RoleEntry, len(roles))
	for i, r := range roles {
		r.Description = domain.RoleDescriptionLimit.Truncate(r.Description)
		out[i] = r
	}
	c.draft.Roles = out
	c.budget.SetRoles(out)
	c.syncBudget()
	return nil
}

// AddRole appends a role, as SetRoles.
func (c *Controller) AddRole(r domain.RoleEntry) error {
	roles := append(append([]domain.RoleEntry(nil), c.draft.Roles...), r)
	return c.SetRoles(roles)
}

// SetProjectBudget stores the budget the user typed.
func (c *Controller) SetProjectBudget(raw string) error {
	if c.draft.Locked() {
		return ErrDraftLocked
	}
	if c.budget.Locked() {
		return ErrBudgetLocked
	}
	c.budget.SetProjectBudget(raw)
	c.draft.ProjectBudget = domain.Amount(raw)
	return nil
}

func (c *Controller) syncBudget() {
	effective := c.budget.ProjectBudget()
	if !effective.Equal(c.draft.ProjectBudget.Decimal()) {
		c.draft.ProjectBudget = domain.AmountOf(effective)
	}
}

// Submit validates the draft and sends it with the given action. A failed
// submit leaves the controller editing and ready to resubmit.
func (c *Controller) Submit(ctx context.Context, action string) (*submit.Outcome, error) {
	act, err := contract.ParseAction(action)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnknownAction, err)
	}
	if !c.guard.Acquire() {
		return nil, submit.ErrInFlight
	}
	defer c.guard.Release()

	c.state = StateValidating
	opts := c.cfg.Validation
	opts.Now = c.cfg.Now()
	if res := validation.ValidateGigDraft(c.draft, opts); !res.Valid {
		c.state = StateEditing
		return submit.Invalid(c.notifier, res)
	}

	c.state = StateSubmitting
	body := contract.GigSubmission{Action: act, Payload: payload.BuildGigPayload(c.draft)}
	out, err := c.sender.Send(ctx, c.endpoint(), c.cfg.CSRFToken, body)
	if out != nil && out.Status == submit.StatusSucceeded {
		c.state = StateSucceeded
		return out, err
	}
	c.state = StateEditing
	return out, err
}

func (c *Controller) endpoint() string {
	if c.cfg.Endpoint != "" {
		return c.cfg.Endpoint
	}
	return contract.GigEndpoint(c.draft.Slug)
}
