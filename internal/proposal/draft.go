package proposal

import (
	"errors"

	"github.com/alexanderramin/servio/internal/domain"
	"github.com/alexanderramin/servio/internal/notify"
	"github.com/alexanderramin/servio/internal/transport"
)

var ErrNoGig = errors.New("proposal has no gig")

// FromDraft restores a controller from a stored proposal. Applications
// missing from the draft are derived from the gig as ForGig does.
func FromDraft(p *domain.ProposalDraft, gw transport.Gateway, n notify.Notifier, cfg Config) (*Controller, error) {
	if p == nil || p.Gig == nil {
		return nil, ErrNoGig
	}

	var roles RoleSource
	if len(p.Gig.Roles) > 0 {
		apps := p.Applications
		if len(apps) == 0 {
			apps = ApplicationsFromGig(p.Gig, cfg.IndustryOf, cfg.CanApply)
		}
		roles = NewApplicationsEditor(apps, cfg.OnSummary)
	} else {
		e := NewProjectRoleEditor(p.Gig, cfg.OnSummary)
		if p.ProjectRole != nil {
			e.entry = *p.ProjectRole
			e.entry.Active = true
		}
		roles = e
	}
	return NewController(p.Gig, NewDeliverablesEditor(p.Deliverables...), roles, gw, n, cfg), nil
}

// Snapshot returns the proposal in its stored form.
func (c *Controller) Snapshot() *domain.ProposalDraft {
	p := &domain.ProposalDraft{
		Gig:          c.gig.Clone(),
		Deliverables: c.deliverables.Items(),
	}
	switch r := c.roles.(type) {
	case *ApplicationsEditor:
		p.Applications = r.Entries()
	case *ProjectRoleEditor:
		entry := r.Entry()
		p.ProjectRole = &entry
	}
	return p
}
