package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"cat-rescue/internal/domain/cats"
)

const catColumns = `
	id, name, age, gender, description, breed_id, image_url,
	address, latitude, longitude, status, created_at, updated_at`

type CatsRepo struct {
	q    queryer
	lock bool // dentro de una transacción: GetByID bloquea la fila
}

func NewCatsRepo(db *sql.DB) *CatsRepo {
	return &CatsRepo{q: db}
}

func (r *CatsRepo) Create(ctx context.Context, c cats.Cat) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO cats (`+catColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
	`,
		c.ID,
		c.Name,
		toNullInt(c.Age),
		c.Gender,
		c.Description,
		toNullString(c.BreedID),
		c.ImageURL,
		c.Address,
		toNullFloat(c.Latitude),
		toNullFloat(c.Longitude),
		string(c.Status),
		c.CreatedAt,
		c.UpdatedAt,
	)
	return err
}

func (r *CatsRepo) GetByID(ctx context.Context, id string) (cats.Cat, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return cats.Cat{}, cats.ErrNotFound
	}

	query := `SELECT ` + catColumns + ` FROM cats WHERE id = $1`
	if r.lock {
		query += ` FOR UPDATE`
	}

	c, err := scanCat(r.q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return cats.Cat{}, cats.ErrNotFound
		}
		return cats.Cat{}, err
	}
	return c, nil
}

func (r *CatsRepo) List(ctx context.Context) ([]cats.Cat, error) {
	return r.list(ctx, `SELECT `+catColumns+` FROM cats ORDER BY seq`)
}

func (r *CatsRepo) ListByStatus(ctx context.Context, status cats.Status) ([]cats.Cat, error) {
	return r.list(ctx, `SELECT `+catColumns+` FROM cats WHERE status = $1 ORDER BY seq`, string(status))
}

func (r *CatsRepo) ListByBreed(ctx context.Context, breedID string) ([]cats.Cat, error) {
	return r.list(ctx, `SELECT `+catColumns+` FROM cats WHERE breed_id = $1 ORDER BY seq`, breedID)
}

// ListInArea: las filas sin coordenadas quedan fuera por el BETWEEN sobre NULL.
func (r *CatsRepo) ListInArea(ctx context.Context, box cats.BoundingBox) ([]cats.Cat, error) {
	return r.list(ctx, `
		SELECT `+catColumns+`
		FROM cats
		WHERE status = $1
			AND latitude BETWEEN $2 AND $3
			AND longitude BETWEEN $4 AND $5
		ORDER BY seq`,
		string(cats.StatusAvailable),
		box.MinLat, box.MaxLat,
		box.MinLon, box.MaxLon,
	)
}

func (r *CatsRepo) SetStatus(ctx context.Context, id string, status cats.Status) (cats.Cat, error) {
	c, err := scanCat(r.q.QueryRowContext(ctx, `
		UPDATE cats
		SET status = $2, updated_at = $3
		WHERE id = $1
		RETURNING `+catColumns,
		id,
		string(status),
		time.Now().UTC(),
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return cats.Cat{}, cats.ErrNotFound
		}
		return cats.Cat{}, err
	}
	return c, nil
}

func (r *CatsRepo) list(ctx context.Context, query string, args ...any) ([]cats.Cat, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]cats.Cat, 0)
	for rows.Next() {
		c, err := scanCat(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func scanCat(s scanner) (cats.Cat, error) {
	var (
		c         cats.Cat
		age       sql.NullInt64
		breedID   sql.NullString
		lat, long sql.NullFloat64
		status    string
	)
	if err := s.Scan(
		&c.ID,
		&c.Name,
		&age,
		&c.Gender,
		&c.Description,
		&breedID,
		&c.ImageURL,
		&c.Address,
		&lat,
		&long,
		&status,
		&c.CreatedAt,
		&c.UpdatedAt,
	); err != nil {
		return cats.Cat{}, err
	}

	c.Age = fromNullInt(age)
	c.BreedID = breedID.String
	c.Latitude = fromNullFloat(lat)
	c.Longitude = fromNullFloat(long)
	c.Status = cats.Status(status)
	return c, nil
}
