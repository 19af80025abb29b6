package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"cat-rescue/internal/domain/adoptions"

	"github.com/google/uuid"
)

const activeAdoptionIndex = "adoptions_one_active_per_cat"

const adoptionColumns = `
	id, user_id, cat_id, status,
	submitted_at, approved_at, completed_at,
	applicant_notes, admin_notes, processed_by, tenant_id, updated_at`

type AdoptionsRepo struct {
	q    queryer
	lock bool
}

func NewAdoptionsRepo(db *sql.DB) *AdoptionsRepo {
	return &AdoptionsRepo{q: db}
}

func (r *AdoptionsRepo) Save(ctx context.Context, a adoptions.Adoption) (adoptions.Adoption, error) {
	if a.ID == "" {
		a.ID = uuid.NewString()
		if err := r.insert(ctx, a); err != nil {
			return adoptions.Adoption{}, mapWriteErr(err)
		}
		return a, nil
	}

	res, err := r.q.ExecContext(ctx, `
		UPDATE adoptions
		SET
			status = $2,
			approved_at = $3,
			completed_at = $4,
			admin_notes = $5,
			processed_by = $6,
			updated_at = $7
		WHERE id = $1
	`,
		a.ID,
		string(a.Status),
		toNullTime(a.ApprovedAt),
		toNullTime(a.CompletedAt),
		a.AdminNotes,
		a.ProcessedBy,
		a.UpdatedAt,
	)
	if err != nil {
		return adoptions.Adoption{}, mapWriteErr(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return adoptions.Adoption{}, adoptions.ErrNotFound
	}
	return a, nil
}

func (r *AdoptionsRepo) insert(ctx context.Context, a adoptions.Adoption) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO adoptions (`+adoptionColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
	`,
		a.ID,
		a.UserID,
		a.CatID,
		string(a.Status),
		a.SubmittedAt,
		toNullTime(a.ApprovedAt),
		toNullTime(a.CompletedAt),
		a.ApplicantNotes,
		a.AdminNotes,
		a.ProcessedBy,
		a.TenantID,
		a.UpdatedAt,
	)
	return err
}

func (r *AdoptionsRepo) GetByID(ctx context.Context, id string) (adoptions.Adoption, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return adoptions.Adoption{}, adoptions.ErrNotFound
	}

	query := `SELECT ` + adoptionColumns + ` FROM adoptions WHERE id = $1`
	if r.lock {
		query += ` FOR UPDATE`
	}

	a, err := scanAdoption(r.q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return adoptions.Adoption{}, adoptions.ErrNotFound
		}
		return adoptions.Adoption{}, err
	}
	return a, nil
}

func (r *AdoptionsRepo) ListByStatus(ctx context.Context, status adoptions.Status, order adoptions.Order) ([]adoptions.Adoption, error) {
	orderBy := `seq`
	if order == adoptions.OrderSubmittedDesc {
		orderBy = `submitted_at DESC, seq DESC`
	}
	return r.list(ctx, `SELECT `+adoptionColumns+` FROM adoptions WHERE status = $1 ORDER BY `+orderBy, string(status))
}

func (r *AdoptionsRepo) ListByUser(ctx context.Context, userID string) ([]adoptions.Adoption, error) {
	return r.list(ctx, `SELECT `+adoptionColumns+` FROM adoptions WHERE user_id = $1 ORDER BY seq`, userID)
}

func (r *AdoptionsRepo) ListAll(ctx context.Context) ([]adoptions.Adoption, error) {
	return r.list(ctx, `SELECT `+adoptionColumns+` FROM adoptions ORDER BY seq`)
}

func (r *AdoptionsRepo) CountCompletedByUser(ctx context.Context, userID string) (int, error) {
	var n int
	err := r.q.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM adoptions WHERE user_id = $1 AND status = $2
	`, userID, string(adoptions.StatusCompleted)).Scan(&n)
	return n, err
}

func (r *AdoptionsRepo) list(ctx context.Context, query string, args ...any) ([]adoptions.Adoption, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]adoptions.Adoption, 0)
	for rows.Next() {
		a, err := scanAdoption(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func mapWriteErr(err error) error {
	if isUniqueViolation(err, activeAdoptionIndex) {
		return adoptions.ErrActiveAdoptionExists
	}
	return err
}

func scanAdoption(s scanner) (adoptions.Adoption, error) {
	var (
		a           adoptions.Adoption
		status      string
		approvedAt  sql.NullTime
		completedAt sql.NullTime
	)
	if err := s.Scan(
		&a.ID,
		&a.UserID,
		&a.CatID,
		&status,
		&a.SubmittedAt,
		&approvedAt,
		&completedAt,
		&a.ApplicantNotes,
		&a.AdminNotes,
		&a.ProcessedBy,
		&a.TenantID,
		&a.UpdatedAt,
	); err != nil {
		return adoptions.Adoption{}, err
	}

	a.Status = adoptions.Status(status)
	a.ApprovedAt = fromNullTime(approvedAt)
	a.CompletedAt = fromNullTime(completedAt)
	return a, nil
}
