package postgres

import (
	"context"
	"database/sql"
	"errors"
)

// EnsureSchema creates the tables this service owns when they are missing.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("postgres: nil db")
	}

	statements := []string{
		`CREATE TABLE IF NOT EXISTS appraisal_history (
	id BIGSERIAL PRIMARY KEY,
	created_at TIMESTAMPTZ NOT NULL,
	article_id TEXT NOT NULL,
	norm TEXT NOT NULL DEFAULT '',
	market_value DOUBLE PRECISION NOT NULL,
	gross_area DOUBLE PRECISION NOT NULL,
	usable_area DOUBLE PRECISION NOT NULL,
	method TEXT NOT NULL,
	currency TEXT NOT NULL DEFAULT 'EUR'
)`,
		`CREATE TABLE IF NOT EXISTS audit_logs (
	id TEXT PRIMARY KEY,
	actor TEXT NOT NULL DEFAULT '',
	role TEXT NOT NULL DEFAULT '',
	action TEXT NOT NULL,
	resource_type TEXT NOT NULL,
	resource_id TEXT NOT NULL DEFAULT '',
	metadata JSONB,
	payload_digest TEXT NOT NULL DEFAULT '',
	ip TEXT NOT NULL DEFAULT '',
	user_agent TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL
)`,
	}

	for _, statement := range statements {
		if _, err := db.ExecContext(ctx, statement); err != nil {
			return err
		}
	}
	return nil
}
