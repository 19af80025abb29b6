package postgres

import (
	"context"
	"database/sql"
	"fmt"
)

// schema se aplica en orden; todas las sentencias son idempotentes.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS breeds (
		id            TEXT PRIMARY KEY,
		name          TEXT NOT NULL,
		origin        TEXT NOT NULL DEFAULT '',
		description   TEXT NOT NULL DEFAULT '',
		temperament   TEXT NOT NULL DEFAULT '',
		wikipedia_url TEXT NOT NULL DEFAULT '',
		image_url     TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		id             TEXT PRIMARY KEY,
		email          TEXT NOT NULL UNIQUE,
		first_name     TEXT NOT NULL DEFAULT '',
		last_name      TEXT NOT NULL DEFAULT '',
		street_address TEXT NOT NULL DEFAULT '',
		postal_code    TEXT NOT NULL DEFAULT '',
		role           TEXT NOT NULL,
		enabled        BOOLEAN NOT NULL DEFAULT TRUE,
		tenant_id      TEXT NOT NULL DEFAULT '',
		created_at     TIMESTAMPTZ NOT NULL,
		updated_at     TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS cats (
		seq         BIGSERIAL,
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL,
		age         INTEGER,
		gender      TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		breed_id    TEXT,
		image_url   TEXT NOT NULL DEFAULT '',
		address     TEXT NOT NULL DEFAULT '',
		latitude    DOUBLE PRECISION,
		longitude   DOUBLE PRECISION,
		status      TEXT NOT NULL,
		created_at  TIMESTAMPTZ NOT NULL,
		updated_at  TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS cats_status_idx ON cats (status, seq)`,
	`CREATE INDEX IF NOT EXISTS cats_breed_idx ON cats (breed_id)`,
	`CREATE TABLE IF NOT EXISTS adoptions (
		seq             BIGSERIAL,
		id              TEXT PRIMARY KEY,
		user_id         TEXT NOT NULL REFERENCES users (id),
		cat_id          TEXT NOT NULL REFERENCES cats (id),
		status          TEXT NOT NULL,
		submitted_at    TIMESTAMPTZ NOT NULL,
		approved_at     TIMESTAMPTZ,
		completed_at    TIMESTAMPTZ,
		applicant_notes TEXT NOT NULL DEFAULT '',
		admin_notes     TEXT NOT NULL DEFAULT '',
		processed_by    TEXT NOT NULL DEFAULT '',
		tenant_id       TEXT NOT NULL DEFAULT '',
		updated_at      TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS adoptions_status_idx ON adoptions (status, seq)`,
	`CREATE INDEX IF NOT EXISTS adoptions_user_idx ON adoptions (user_id, seq)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS ` + activeAdoptionIndex + `
		ON adoptions (cat_id) WHERE status IN ('PENDING', 'APPROVED')`,
	`CREATE TABLE IF NOT EXISTS api_tokens (
		id           TEXT PRIMARY KEY,
		token        TEXT NOT NULL UNIQUE,
		organization TEXT NOT NULL,
		active       BOOLEAN NOT NULL DEFAULT TRUE,
		created_at   TIMESTAMPTZ NOT NULL,
		expires_at   TIMESTAMPTZ
	)`,
}

// Migrate crea tablas e índices si no existen.
func Migrate(ctx context.Context, db *sql.DB) error {
	for i, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate step %d: %w", i+1, err)
		}
	}
	return nil
}
