package repository

import (
	"context"
	"errors"

	"github.com/alexanderramin/servio/internal/domain"
)

// ErrNotFound is wrapped by every lookup that matches no row.
var ErrNotFound = errors.New("not found")

type DraftRepo interface {
	Create(ctx context.Context, d *domain.Draft) error
	GetByID(ctx context.Context, id string) (*domain.Draft, error)
	// GetByPrefix resolves a unique id prefix, as typed on the command line.
	GetByPrefix(ctx context.Context, prefix string) (*domain.Draft, error)
	List(ctx context.Context, kind domain.DraftKind) ([]*domain.Draft, error)
	Update(ctx context.Context, d *domain.Draft) error
	Delete(ctx context.Context, id string) error
}

type SubmissionRepo interface {
	Create(ctx context.Context, s *domain.Submission) error
	ListByDraft(ctx context.Context, draftID string) ([]*domain.Submission, error)
}
