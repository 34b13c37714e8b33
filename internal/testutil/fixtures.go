package testutil

import (
	"encoding/json"
	"time"

	"github.com/alexanderramin/servio/internal/domain"
	"github.com/google/uuid"
)

const roleDescription = "Own the backend services, database schema and deployment pipeline for launch"

// GigOption customises NewTestGig.
type GigOption func(*domain.GigDraft)

func WithGigTitle(title string) GigOption {
	return func(g *domain.GigDraft) { g.Title = title }
}

func WithGigStatus(s domain.GigStatus) GigOption {
	return func(g *domain.GigDraft) { g.Status = s }
}

func WithSlug(slug string) GigOption {
	return func(g *domain.GigDraft) { g.Slug = slug }
}

func WithBudget(b domain.Amount) GigOption {
	return func(g *domain.GigDraft) { g.ProjectBudget = b }
}

func WithRoles(roles ...domain.RoleEntry) GigOption {
	return func(g *domain.GigDraft) { g.Roles = roles }
}

// NewTestGig returns a gig draft that passes validation on the day given by
// now: it starts tomorrow and runs for thirty days with one $500 role.
func NewTestGig(now time.Time, opts ...GigOption) *domain.GigDraft {
	g := &domain.GigDraft{
		Title:         "A brand new gig title",
		Description:   "We need a small team to ship the first version of our marketplace app",
		Visibility:    domain.VisibilityPublic,
		StartDate:     now.AddDate(0, 0, 1).Format(domain.DateLayout),
		EndDate:       now.AddDate(0, 0, 30).Format(domain.DateLayout),
		ProjectBudget: "1000",
		IndustryID:    1,
		NicheID:       10,
		Roles:         []domain.RoleEntry{NewTestRole(10, 2, "500")},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// NewTestRole returns an active role with a valid description.
func NewTestRole(nicheID, professionalID int64, budget domain.Amount) domain.RoleEntry {
	return domain.RoleEntry{
		NicheID:        nicheID,
		Niche:          "n1",
		ProfessionalID: professionalID,
		Professional:   "p1",
		Budget:         budget,
		Description:    roleDescription,
		Workload:       domain.WorkloadFlexible,
	}
}

// NewTestDraft wraps body as a stored draft of the given kind.
func NewTestDraft(kind domain.DraftKind, title string, body any) *domain.Draft {
	raw, err := json.Marshal(body)
	if err != nil {
		panic(err)
	}
	return &domain.Draft{
		ID:     uuid.New().String(),
		Kind:   kind,
		Title:  title,
		Status: domain.DraftEditing,
		Body:   raw,
	}
}
