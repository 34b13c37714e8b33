package repository

import (
	"database/sql"
	"time"
)

// parseTime parses an RFC3339 column, yielding the zero time on failure.
func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// nullableString converts "" to SQL NULL.
func nullableString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func stringFromNull(s sql.NullString) string {
	if !s.Valid {
		return ""
	}
	return s.String
}

// nowUTC returns the current UTC time truncated to what RFC3339 stores.
func nowUTC() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}
