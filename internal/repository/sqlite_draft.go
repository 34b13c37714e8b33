package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/servio/internal/db"
	"github.com/alexanderramin/servio/internal/domain"
	"github.com/google/uuid"
)

// ErrAmbiguousPrefix is returned when an id prefix matches several drafts.
var ErrAmbiguousPrefix = errors.New("id prefix matches more than one draft")

// SQLiteDraftRepo implements DraftRepo using a SQLite database.
type SQLiteDraftRepo struct {
	db db.DBTX
}

// NewSQLiteDraftRepo creates a new SQLiteDraftRepo.
func NewSQLiteDraftRepo(conn db.DBTX) *SQLiteDraftRepo {
	return &SQLiteDraftRepo{db: conn}
}

const draftColumns = `id, kind, title, status, body, parent_id, created_at, updated_at`

// Create inserts d, filling in a missing id, status or timestamps.
func (r *SQLiteDraftRepo) Create(ctx context.Context, d *domain.Draft) error {
	if d.ID == "" {
		d.ID = uuid.New().String()
	}
	if d.Status == "" {
		d.Status = domain.DraftEditing
	}
	if d.CreatedAt.IsZero() {
		d.CreatedAt = nowUTC()
	}
	if d.UpdatedAt.IsZero() {
		d.UpdatedAt = d.CreatedAt
	}
	if len(d.Body) == 0 {
		d.Body = []byte("{}")
	}

	query := `INSERT INTO drafts (` + draftColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		d.ID,
		string(d.Kind),
		d.Title,
		string(d.Status),
		string(d.Body),
		nullableString(d.ParentID),
		d.CreatedAt.Format(time.RFC3339),
		d.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting draft: %w", err)
	}
	return nil
}

func (r *SQLiteDraftRepo) GetByID(ctx context.Context, id string) (*domain.Draft, error) {
	query := `SELECT ` + draftColumns + ` FROM drafts WHERE id = ?`
	return r.scanDraft(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteDraftRepo) GetByPrefix(ctx context.Context, prefix string) (*domain.Draft, error) {
	query := `SELECT ` + draftColumns + ` FROM drafts WHERE id LIKE ? || '%' ORDER BY id LIMIT 2`
	drafts, err := r.query(ctx, query, prefix)
	if err != nil {
		return nil, err
	}
	switch len(drafts) {
	case 0:
		return nil, fmt.Errorf("draft %q: %w", prefix, ErrNotFound)
	case 1:
		return drafts[0], nil
	default:
		return nil, fmt.Errorf("draft %q: %w", prefix, ErrAmbiguousPrefix)
	}
}

// List returns drafts, most recently updated first. An empty kind lists all.
func (r *SQLiteDraftRepo) List(ctx context.Context, kind domain.DraftKind) ([]*domain.Draft, error) {
	if kind == "" {
		return r.query(ctx, `SELECT `+draftColumns+` FROM drafts ORDER BY updated_at DESC, id`)
	}
	return r.query(ctx, `SELECT `+draftColumns+` FROM drafts WHERE kind = ? ORDER BY updated_at DESC, id`, string(kind))
}

func (r *SQLiteDraftRepo) Update(ctx context.Context, d *domain.Draft) error {
	d.UpdatedAt = nowUTC()
	query := `UPDATE drafts SET title = ?, status = ?, body = ?, parent_id = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		d.Title,
		string(d.Status),
		string(d.Body),
		nullableString(d.ParentID),
		d.UpdatedAt.Format(time.RFC3339),
		d.ID,
	)
	if err != nil {
		return fmt.Errorf("updating draft: %w", err)
	}
	return requireAffected(res, "draft", d.ID)
}

func (r *SQLiteDraftRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM drafts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting draft: %w", err)
	}
	return requireAffected(res, "draft", id)
}

func (r *SQLiteDraftRepo) query(ctx context.Context, query string, args ...any) ([]*domain.Draft, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing drafts: %w", err)
	}
	defer rows.Close()

	var drafts []*domain.Draft
	for rows.Next() {
		d, err := r.scanDraft(rows)
		if err != nil {
			return nil, err
		}
		drafts = append(drafts, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating drafts: %w", err)
	}
	return drafts, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func (r *SQLiteDraftRepo) scanDraft(row scanner) (*domain.Draft, error) {
	var (
		d                    domain.Draft
		kind, status, body   string
		parent               sql.NullString
		createdAt, updatedAt string
	)
	err := row.Scan(&d.ID, &kind, &d.Title, &status, &body, &parent, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("draft: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning draft: %w", err)
	}
	d.Kind = domain.DraftKind(kind)
	d.Status = domain.DraftStatus(status)
	d.Body = []byte(body)
	d.ParentID = stringFromNull(parent)
	d.CreatedAt = parseTime(createdAt)
	d.UpdatedAt = parseTime(updatedAt)
	return &d, nil
}

func requireAffected(res sql.Result, what, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", what, id, ErrNotFound)
	}
	return nil
}
