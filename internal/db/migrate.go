package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Statements are idempotent, so it is
// safe to run on every open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// ALTER TABLE ADD COLUMN has no IF NOT EXISTS form.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS drafts (
		id          TEXT PRIMARY KEY,
		kind        TEXT NOT NULL CHECK(kind IN ('gig','proposal')),
		title       TEXT NOT NULL DEFAULT '',
		status      TEXT NOT NULL DEFAULT 'editing'
		            CHECK(status IN ('editing','submitted','rejected')),
		body        TEXT NOT NULL,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_drafts_kind ON drafts(kind)`,
	`CREATE INDEX IF NOT EXISTS idx_drafts_updated ON drafts(updated_at)`,

	// Proposals reference the gig draft they answer, when it is local.
	`ALTER TABLE drafts ADD COLUMN parent_id TEXT REFERENCES drafts(id) ON DELETE SET NULL`,

	`CREATE TABLE IF NOT EXISTS submissions (
		id           TEXT PRIMARY KEY,
		draft_id     TEXT NOT NULL REFERENCES drafts(id) ON DELETE CASCADE,
		action       TEXT NOT NULL DEFAULT '',
		outcome      TEXT NOT NULL
		             CHECK(outcome IN ('succeeded','invalid','rejected','unreachable')),
		status_code  INTEGER NOT NULL DEFAULT 0,
		message      TEXT NOT NULL DEFAULT '',
		redirect_url TEXT NOT NULL DEFAULT '',
		created_at   TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_submissions_draft ON submissions(draft_id)`,
}
