package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/servio/internal/db"
	"github.com/alexanderramin/servio/internal/domain"
	"github.com/google/uuid"
)

// SQLiteSubmissionRepo implements SubmissionRepo using a SQLite database.
type SQLiteSubmissionRepo struct {
	db db.DBTX
}

func NewSQLiteSubmissionRepo(conn db.DBTX) *SQLiteSubmissionRepo {
	return &SQLiteSubmissionRepo{db: conn}
}

func (r *SQLiteSubmissionRepo) Create(ctx context.Context, s *domain.Submission) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = nowUTC()
	}
	query := `INSERT INTO submissions (id, draft_id, action, outcome, status_code, message, redirect_url, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		s.DraftID,
		s.Action,
		s.Outcome,
		s.StatusCode,
		s.Message,
		s.RedirectURL,
		s.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting submission: %w", err)
	}
	return nil
}

// ListByDraft returns the attempts of a draft, oldest first.
func (r *SQLiteSubmissionRepo) ListByDraft(ctx context.Context, draftID string) ([]*domain.Submission, error) {
	query := `SELECT id, draft_id, action, outcome, status_code, message, redirect_url, created_at
		FROM submissions WHERE draft_id = ? ORDER BY created_at, rowid`
	rows, err := r.db.QueryContext(ctx, query, draftID)
	if err != nil {
		return nil, fmt.Errorf("listing submissions: %w", err)
	}
	defer rows.Close()

	var out []*domain.Submission
	for rows.Next() {
		var (
			s         domain.Submission
			createdAt string
		)
		if err := rows.Scan(&s.ID, &s.DraftID, &s.Action, &s.Outcome, &s.StatusCode, &s.Message, &s.RedirectURL, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning submission: %w", err)
		}
		s.CreatedAt = parseTime(createdAt)
		out = append(out, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating submissions: %w", err)
	}
	return out, nil
}
