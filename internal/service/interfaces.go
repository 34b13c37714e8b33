package service

import (
	"context"

	"github.com/alexanderramin/servio/internal/domain"
)

// DraftService stores gig and proposal drafts and their submit history.
// Draft references accept a full id or any unique prefix of one.
type DraftService interface {
	// SaveGig creates a gig draft when id is empty and overwrites it otherwise.
	SaveGig(ctx context.Context, id string, g *domain.GigDraft) (*domain.Draft, error)
	// SaveProposal stores a proposal; parentID links it to the gig draft it answers.
	SaveProposal(ctx context.Context, id, parentID string, p *domain.ProposalDraft) (*domain.Draft, error)
	Get(ctx context.Context, ref string) (*domain.Draft, error)
	List(ctx context.Context, kind domain.DraftKind) ([]*domain.Draft, error)
	Delete(ctx context.Context, ref string) error
	// RecordSubmission logs one submit attempt and moves the draft to the
	// matching local status in the same transaction.
	RecordSubmission(ctx context.Context, s *domain.Submission) error
	Submissions(ctx context.Context, ref string) ([]*domain.Submission, error)
}
