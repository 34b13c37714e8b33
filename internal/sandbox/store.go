// Package sandbox is a local stand-in for the marketplace backend. It serves
// the taxonomy, gig and accept-offer endpoints with the server's own schema
// rules so drafts can be exercised without the real site.
package sandbox

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"unicode"

	"github.com/alexanderramin/servio/internal/contract"
	"github.com/alexanderramin/servio/internal/domain"
	"github.com/alexanderramin/servio/internal/reference"
)

var (
	ErrGigNotFound  = errors.New("gig not found")
	ErrGigNotOpen   = errors.New("gig is not open for proposals")
	ErrUnknownNiche = errors.New("one or more selected categories are invalid or no longer available")
	ErrRoleNotInGig = errors.New("applied role is not part of this gig")
)

// Gig is a gig as the sandbox stores it.
type Gig struct {
	ID        int64
	Slug      string
	Status    domain.GigStatus
	Payload   contract.GigPayload
	Proposals []contract.ProposalSubmission
}

// Store keeps gigs in memory. It is safe for concurrent use.
type Store struct {
	mu       sync.Mutex
	nextID   int64
	gigs     map[string]*Gig
	catalog  *reference.Catalog
	taxonomy []reference.Industry
}

func NewStore(taxonomy []reference.Industry) *Store {
	return &Store{
		gigs:     make(map[string]*Gig),
		catalog:  reference.NewCatalog(taxonomy),
		taxonomy: taxonomy,
	}
}

// DefaultTaxonomy is the category tree a fresh sandbox serves.
func DefaultTaxonomy() []reference.Industry {
	return []reference.Industry{
		{ID: 1, Name: "Software Development", Subcategories: []reference.Niche{
			{ID: 10, Name: "Backend Development"},
			{ID: 11, Name: "Frontend Development"},
			{ID: 12, Name: "Mobile Apps"},
		}},
		{ID: 2, Name: "Design", Subcategories: []reference.Niche{
			{ID: 20, Name: "UI/UX Design"},
			{ID: 21, Name: "Branding"},
		}},
	}
}

func (s *Store) Taxonomy() []reference.Industry {
	return s.taxonomy
}

// CreateGig stores a new gig. Publishing puts it in pending until payment,
// saving as draft keeps it a draft.
func (s *Store) CreateGig(action contract.Action, p contract.GigPayload) (Gig, error) {
	if err := s.checkNiches(p.Roles); err != nil {
		return Gig{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	g := &Gig{
		ID:      s.nextID,
		Slug:    fmt.Sprintf("%s-%d", slugify(p.Title), s.nextID),
		Status:  statusFor(action),
		Payload: p,
	}
	s.gigs[g.Slug] = g
	return *g, nil
}

// UpdateGig replaces the payload of an existing gig. A published or running
// gig keeps its status whatever the action.
func (s *Store) UpdateGig(slug string, action contract.Action, p contract.GigPayload) (Gig, error) {
	if err := s.checkNiches(p.Roles); err != nil {
		return Gig{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.gigs[slug]
	if !ok {
		return Gig{}, fmt.Errorf("%w: %s", ErrGigNotFound, slug)
	}
	g.Payload = p
	if g.Status.Unpublished() {
		g.Status = statusFor(action)
	}
	return *g, nil
}

// Seed stores p directly with the given status, bypassing schema checks.
func (s *Store) Seed(status domain.GigStatus, p contract.GigPayload) Gig {
	return s.SeedAs("", status, p)
}

// SeedAs is Seed under a fixed slug. An empty slug is derived from the title.
func (s *Store) SeedAs(slug string, status domain.GigStatus, p contract.GigPayload) Gig {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	if slug == "" {
		slug = fmt.Sprintf("%s-%d", slugify(p.Title), s.nextID)
	}
	g := &Gig{
		ID:      s.nextID,
		Slug:    slug,
		Status:  status,
		Payload: p,
	}
	s.gigs[g.Slug] = g
	return *g
}

// AddProposal attaches p to the gig. The gig must be live and every applied
// role must name one of its niches.
func (s *Store) AddProposal(slug string, p contract.ProposalSubmission) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.gigs[slug]
	if !ok {
		return fmt.Errorf("%w: %s", ErrGigNotFound, slug)
	}
	if g.Status != domain.GigStatusPublished && g.Status != domain.GigStatusInProgress {
		return fmt.Errorf("%w: %s is %s", ErrGigNotOpen, slug, g.Status)
	}
	niches := make(map[int64]bool, len(g.Payload.Roles))
	for _, r := range g.Payload.Roles {
		if r.NicheID != nil {
			niches[*r.NicheID] = true
		}
	}
	// A gig without roles is applied to as a single project role.
	if len(niches) > 0 {
		for _, ar := range p.AppliedRoles {
			if !niches[ar.NicheID] {
				return fmt.Errorf("%w: niche %d", ErrRoleNotInGig, ar.NicheID)
			}
		}
	}
	g.Proposals = append(g.Proposals, p)
	return nil
}

func (s *Store) Gig(slug string) (Gig, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.gigs[slug]
	if !ok {
		return Gig{}, false
	}
	cp := *g
	cp.Proposals = append([]contract.ProposalSubmission(nil), g.Proposals...)
	return cp, true
}

func (s *Store) checkNiches(roles []contract.GigRole) error {
	for _, r := range roles {
		if r.NicheID == nil || !s.catalog.HasNiche(*r.NicheID) {
			return ErrUnknownNiche
		}
	}
	return nil
}

func statusFor(action contract.Action) domain.GigStatus {
	if action == contract.ActionPublish {
		return domain.GigStatusPending
	}
	return domain.GigStatusDraft
}

func slugify(title string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(title)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			dash = false
		case !dash && b.Len() > 0:
			b.WriteByte('-')
			dash = true
		}
	}
	slug := strings.TrimSuffix(b.String(), "-")
	if slug == "" {
		return "gig"
	}
	return slug
}
