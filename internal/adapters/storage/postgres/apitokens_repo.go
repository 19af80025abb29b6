package postgres

import (
	"context"
	"database/sql"
	"errors"

	"cat-rescue/internal/domain/apitokens"
)

type APITokensRepo struct {
	db *sql.DB
}

func NewAPITokensRepo(db *sql.DB) *APITokensRepo {
	return &APITokensRepo{db: db}
}

func (r *APITokensRepo) Create(ctx context.Context, t apitokens.Token) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO api_tokens (id, token, organization, active, created_at, expires_at)
		VALUES ($1,$2,$3,$4,$5,$6)
	`,
		t.ID,
		t.Token,
		t.Organization,
		t.Active,
		t.CreatedAt,
		toNullTime(t.ExpiresAt),
	)
	return err
}

func (r *APITokensRepo) GetByToken(ctx context.Context, token string) (apitokens.Token, error) {
	t, err := scanToken(r.db.QueryRowContext(ctx, `
		SELECT id, token, organization, active, created_at, expires_at
		FROM api_tokens
		WHERE token = $1
	`, token))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apitokens.Token{}, apitokens.ErrNotFound
		}
		return apitokens.Token{}, err
	}
	return t, nil
}

func (r *APITokensRepo) List(ctx context.Context) ([]apitokens.Token, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, token, organization, active, created_at, expires_at
		FROM api_tokens
		ORDER BY created_at
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]apitokens.Token, 0)
	for rows.Next() {
		t, err := scanToken(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func scanToken(s scanner) (apitokens.Token, error) {
	var (
		t         apitokens.Token
		expiresAt sql.NullTime
	)
	if err := s.Scan(&t.ID, &t.Token, &t.Organization, &t.Active, &t.CreatedAt, &expiresAt); err != nil {
		return apitokens.Token{}, err
	}
	t.ExpiresAt = fromNullTime(expiresAt)
	return t, nil
}
