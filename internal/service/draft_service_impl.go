package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/servio/internal/db"
	"github.com/alexanderramin/servio/internal/domain"
	"github.com/alexanderramin/servio/internal/repository"
)

var (
	// ErrKindMismatch is returned when a draft is read or saved as the wrong kind.
	ErrKindMismatch = errors.New("draft has a different kind")
	ErrEmptyDraft   = errors.New("draft body is empty")
)

// Submission outcomes, as recorded by RecordSubmission.
const (
	OutcomeSucceeded   = "succeeded"
	OutcomeInvalid     = "invalid"
	OutcomeRejected    = "rejected"
	OutcomeUnreachable = "unreachable"
)

const untitled = "(untitled)"

type draftService struct {
	drafts      repository.DraftRepo
	submissions repository.SubmissionRepo
	uow         db.UnitOfWork
	observer    UseCaseObserver
}

func NewDraftService(drafts repository.DraftRepo, submissions repository.SubmissionRepo, uow db.UnitOfWork, observers ...UseCaseObserver) DraftService {
	return &draftService{
		drafts:      drafts,
		submissions: submissions,
		uow:         uow,
		observer:    useCaseObserverOrNoop(observers),
	}
}

func (s *draftService) SaveGig(ctx context.Context, id string, g *domain.GigDraft) (d *domain.Draft, err error) {
	start := time.Now()
	defer func() {
		observe(ctx, s.observer, "draft.save_gig", start, err, map[string]any{"draft_id": draftID(d, id)})
	}()

	if g == nil {
		return nil, ErrEmptyDraft
	}
	return s.save(ctx, id, "", domain.DraftGig, titleOr(g.Title), g)
}

func (s *draftService) SaveProposal(ctx context.Context, id, parentID string, p *domain.ProposalDraft) (d *domain.Draft, err error) {
	start := time.Now()
	defer func() {
		observe(ctx, s.observer, "draft.save_proposal", start, err, map[string]any{"draft_id": draftID(d, id), "parent_id": parentID})
	}()

	if p == nil {
		return nil, ErrEmptyDraft
	}
	title := untitled
	if p.Gig != nil {
		title = "Proposal: " + titleOr(p.Gig.Title)
	}
	return s.save(ctx, id, parentID, domain.DraftProposal, title, p)
}

func (s *draftService) save(ctx context.Context, id, parentID string, kind domain.DraftKind, title string, body any) (*domain.Draft, error) {
	raw, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encoding %s draft: %w", kind, err)
	}

	if id == "" {
		d := &domain.Draft{Kind: kind, Title: title, Body: raw, ParentID: parentID}
		if err := s.drafts.Create(ctx, d); err != nil {
			return nil, err
		}
		return d, nil
	}

	d, err := s.drafts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if d.Kind != kind {
		return nil, fmt.Errorf("draft %s is a %s: %w", d.ID, d.Kind, ErrKindMismatch)
	}
	d.Title = title
	d.Body = raw
	// Edits after a rejection reopen the draft.
	d.Status = domain.DraftEditing
	if parentID != "" {
		d.ParentID = parentID
	}
	if err := s.drafts.Update(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *draftService) Get(ctx context.Context, ref string) (*domain.Draft, error) {
	return s.drafts.GetByPrefix(ctx, ref)
}

func (s *draftService) List(ctx context.Context, kind domain.DraftKind) ([]*domain.Draft, error) {
	return s.drafts.List(ctx, kind)
}

func (s *draftService) Delete(ctx context.Context, ref string) (err error) {
	start := time.Now()
	defer func() {
		observe(ctx, s.observer, "draft.delete", start, err, map[string]any{"ref": ref})
	}()

	d, err := s.drafts.GetByPrefix(ctx, ref)
	if err != nil {
		return err
	}
	return s.drafts.Delete(ctx, d.ID)
}

func (s *draftService) RecordSubmission(ctx context.Context, sub *domain.Submission) (err error) {
	start := time.Now()
	defer func() {
		observe(ctx, s.observer, "draft.record_submission", start, err, map[string]any{
			"draft_id":    sub.DraftID,
			"outcome":     sub.Outcome,
			"status_code": sub.StatusCode,
		})
	}()

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txDrafts := repository.NewSQLiteDraftRepo(tx)
		txSubmissions := repository.NewSQLiteSubmissionRepo(tx)

		d, err := txDrafts.GetByID(ctx, sub.DraftID)
		if err != nil {
			return err
		}
		if err := txSubmissions.Create(ctx, sub); err != nil {
			return err
		}

		next := statusAfter(sub.Outcome, d.Status)
		if next == d.Status {
			return nil
		}
		d.Status = next
		return txDrafts.Update(ctx, d)
	})
}

func (s *draftService) Submissions(ctx context.Context, ref string) ([]*domain.Submission, error) {
	d, err := s.drafts.GetByPrefix(ctx, ref)
	if err != nil {
		return nil, err
	}
	return s.submissions.ListByDraft(ctx, d.ID)
}

// statusAfter maps a submit outcome onto the local draft status. Invalid and
// unreachable attempts never reached the server and leave it unchanged.
func statusAfter(outcome string, current domain.DraftStatus) domain.DraftStatus {
	switch outcome {
	case OutcomeSucceeded:
		return domain.DraftSubmitted
	case OutcomeRejected:
		return domain.DraftRejected
	default:
		return current
	}
}

// DecodeGig reads the gig document stored in d.
func DecodeGig(d *domain.Draft) (*domain.GigDraft, error) {
	if d.Kind != domain.DraftGig {
		return nil, fmt.Errorf("draft %s is a %s: %w", d.ID, d.Kind, ErrKindMismatch)
	}
	var g domain.GigDraft
	if err := json.Unmarshal(d.Body, &g); err != nil {
		return nil, fmt.Errorf("decoding gig draft %s: %w", d.ID, err)
	}
	return &g, nil
}

// DecodeProposal reads the proposal document stored in d.
func DecodeProposal(d *domain.Draft) (*domain.ProposalDraft, error) {
	if d.Kind != domain.DraftProposal {
		return nil, fmt.Errorf("draft %s is a %s: %w", d.ID, d.Kind, ErrKindMismatch)
	}
	var p domain.ProposalDraft
	if err := json.Unmarshal(d.Body, &p); err != nil {
		return nil, fmt.Errorf("decoding proposal draft %s: %w", d.ID, err)
	}
	return &p, nil
}

func titleOr(title string) string {
	if t := strings.TrimSpace(title); t != "" {
		return t
	}
	return untitled
}

func draftID(d *domain.Draft, fallback string) string {
	if d != nil {
		return d.ID
	}
	return fallback
}
