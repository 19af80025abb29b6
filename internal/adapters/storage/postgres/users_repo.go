package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"cat-rescue/internal/domain/users"
	"cat-rescue/internal/ports/auth"
)

const userColumns = `
	id, email, first_name, last_name, street_address, postal_code,
	role, enabled, tenant_id, created_at, updated_at`

type UsersRepo struct {
	db *sql.DB
}

func NewUsersRepo(db *sql.DB) *UsersRepo {
	return &UsersRepo{db: db}
}

func (r *UsersRepo) Create(ctx context.Context, u users.User) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (`+userColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
	`,
		u.ID,
		u.Email,
		u.FirstName,
		u.LastName,
		u.StreetAddress,
		u.PostalCode,
		string(u.Role),
		u.Enabled,
		u.TenantID,
		u.CreatedAt,
		u.UpdatedAt,
	)
	if isUniqueViolation(err, "") {
		return users.ErrAlreadyExists
	}
	return err
}

func (r *UsersRepo) GetByID(ctx context.Context, id string) (users.User, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return users.User{}, users.ErrNotFound
	}

	u, err := scanUser(r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return users.User{}, users.ErrNotFound
		}
		return users.User{}, err
	}
	return u, nil
}

func (r *UsersRepo) List(ctx context.Context) ([]users.User, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]users.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func scanUser(s scanner) (users.User, error) {
	var (
		u    users.User
		role string
	)
	if err := s.Scan(
		&u.ID,
		&u.Email,
		&u.FirstName,
		&u.LastName,
		&u.StreetAddress,
		&u.PostalCode,
		&role,
		&u.Enabled,
		&u.TenantID,
		&u.CreatedAt,
		&u.UpdatedAt,
	); err != nil {
		return users.User{}, err
	}
	u.Role = auth.ParseRole(role)
	return u, nil
}
