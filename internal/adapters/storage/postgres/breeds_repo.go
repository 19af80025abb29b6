package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"cat-rescue/internal/domain/breeds"
)

type BreedsRepo struct {
	db *sql.DB
}

func NewBreedsRepo(db *sql.DB) *BreedsRepo {
	return &BreedsRepo{db: db}
}

func (r *BreedsRepo) Upsert(ctx context.Context, b breeds.Breed) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO breeds (id, name, origin, description, temperament, wikipedia_url, image_url)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			origin = EXCLUDED.origin,
			description = EXCLUDED.description,
			temperament = EXCLUDED.temperament,
			wikipedia_url = EXCLUDED.wikipedia_url,
			image_url = EXCLUDED.image_url
	`,
		b.ID,
		b.Name,
		b.Origin,
		b.Description,
		b.Temperament,
		b.WikipediaURL,
		b.ImageURL,
	)
	return err
}

func (r *BreedsRepo) GetByID(ctx context.Context, id string) (breeds.Breed, error) {
	var b breeds.Breed
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, origin, description, temperament, wikipedia_url, image_url
		FROM breeds
		WHERE id = $1
	`, id).Scan(&b.ID, &b.Name, &b.Origin, &b.Description, &b.Temperament, &b.WikipediaURL, &b.ImageURL)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return breeds.Breed{}, breeds.ErrNotFound
		}
		return breeds.Breed{}, err
	}
	return b, nil
}

func (r *BreedsRepo) List(ctx context.Context) ([]breeds.Breed, error) {
	return r.list(ctx, `
		SELECT id, name, origin, description, temperament, wikipedia_url, image_url
		FROM breeds
		ORDER BY name
	`)
}

// Search: un patrón vacío ('%%') no filtra.
func (r *BreedsRepo) Search(ctx context.Context, f breeds.SearchFilter) ([]breeds.Breed, error) {
	return r.list(ctx, `
		SELECT id, name, origin, description, temperament, wikipedia_url, image_url
		FROM breeds
		WHERE name ILIKE $1 ESCAPE '\' AND origin ILIKE $2 ESCAPE '\'
		ORDER BY name
	`, containsPattern(f.Name), containsPattern(f.Origin))
}

func (r *BreedsRepo) list(ctx context.Context, query string, args ...any) ([]breeds.Breed, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]breeds.Breed, 0)
	for rows.Next() {
		var b breeds.Breed
		if err := rows.Scan(&b.ID, &b.Name, &b.Origin, &b.Description, &b.Temperament, &b.WikipediaURL, &b.ImageURL); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern arma '%s%' escapando los comodines de LIKE.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}
