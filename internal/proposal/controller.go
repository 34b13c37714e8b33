// Package proposal drives a professional's proposal for a gig: the
// deliverables, the roles applied for and their submission.
package proposal

import (
	"context"
	"time"

	"github.com/alexanderramin/servio/internal/contract"
	"github.com/alexanderramin/servio/internal/domain"
	"github.com/alexanderramin/servio/internal/notify"
	"github.com/alexanderramin/servio/internal/submit"
	"github.com/alexanderramin/servio/internal/transport"
	"github.com/alexanderramin/servio/internal/validation"
)

const (
	MessageSent = "Your proposal has been sent."
	TitleReject = "Unable to send proposal"
)

// Config controls a Controller. Zero fields take defaults.
type Config struct {
	Endpoint      string
	CSRFToken     string
	RedirectDelay time.Duration
	Redirector    submit.Redirector
	Now           func() time.Time

	// Used by ForGig to build the role editor.
	OnSummary  SummaryFunc
	IndustryOf func(nicheID int64) int64
	CanApply   func(domain.RoleEntry) bool
}

// Controller owns the two sub-editors of a proposal. They never see each
// other; the controller reads both through ToPayload.
type Controller struct {
	gig          *domain.GigDraft
	deliverables *DeliverablesEditor
	roles        RoleSource
	sender       submit.Sender
	notifier     notify.Notifier
	cfg          Config
	guard        submit.Guard
}

// NewController assembles a proposal from explicit editors.
func NewController(gig *domain.GigDraft, deliverables *DeliverablesEditor, roles RoleSource, gw transport.Gateway, n notify.Notifier, cfg Config) *Controller {
	n = notify.OrDiscard(n)
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if deliverables == nil {
		deliverables = NewDeliverablesEditor()
	}
	return &Controller{
		gig:          gig.Clone(),
		deliverables: deliverables,
		roles:        roles,
		notifier:     n,
		cfg:          cfg,
		sender: submit.Sender{
			Gateway:        gw,
			Notifier:       n,
			Redirector:     cfg.Redirector,
			RedirectDelay:  cfg.RedirectDelay,
			SuccessMessage: MessageSent,
			RejectTitle:    TitleReject,
		},
	}
}

// ForGig picks the role editor from the gig's shape: applications when it
// has structured roles, the project itself otherwise.
func ForGig(gig *domain.GigDraft, gw transport.Gateway, n notify.Notifier, cfg Config) *Controller {
	var roles RoleSource
	if len(gig.Roles) > 0 {
		roles = NewApplicationsEditor(ApplicationsFromGig(gig, cfg.IndustryOf, cfg.CanApply), cfg.OnSummary)
	} else {
		roles = NewProjectRoleEditor(gig, cfg.OnSummary)
	}
	return NewController(gig, NewDeliverablesEditor(), roles, gw, n, cfg)
}

func (c *Controller) Deliverables() *DeliverablesEditor { return c.deliverables }

func (c *Controller) Roles() RoleSource { return c.roles }

// Applications returns the applications editor, or nil for a gig without roles.
func (c *Controller) Applications() *ApplicationsEditor {
	e, _ := c.roles.(*ApplicationsEditor)
	return e
}

// ProjectRole returns the project role editor, or nil for a gig with roles.
func (c *Controller) ProjectRole() *ProjectRoleEditor {
	e, _ := c.roles.(*ProjectRoleEditor)
	return e
}

func (c *Controller) Summary() domain.ProposalSummary { return c.roles.Summary() }

func (c *Controller) Submitting() bool { return c.guard.Busy() }

// Payload assembles the submission as it would be sent now.
func (c *Controller) Payload() contract.ProposalSubmission {
	return contract.ProposalSubmission{
		Deliverables:  c.deliverables.ToPayload(),
		AppliedRoles:  c.roles.ToPayload(),
		ProposalValue: c.roles.Summary().Subtotal.InexactFloat64(),
		SentAt:        c.cfg.Now().UTC().Truncate(time.Second),
	}
}

// Submit validates roles then deliverables and sends the proposal. Only the
// first problem found is reported.
func (c *Controller) Submit(ctx context.Context) (*submit.Outcome, error) {
	if !c.guard.Acquire() {
		return nil, submit.ErrInFlight
	}
	defer c.guard.Release()

	body := c.Payload()
	if res := validation.ValidateAppliedRoles(body.AppliedRoles); !res.Valid {
		return submit.Invalid(c.notifier, res)
	}
	if res := validation.ValidateDeliverables(body.Deliverables, c.gig.EndDate); !res.Valid {
		return submit.Invalid(c.notifier, res)
	}

	return c.sender.Send(ctx, c.endpoint(), c.cfg.CSRFToken, body)
}

func (c *Controller) endpoint() string {
	if c.cfg.Endpoint != "" {
		return c.cfg.Endpoint
	}
	return contract.ProposalEndpoint(c.gig.Slug)
}
