package adoptions

import (
	"context"
	"errors"
	"strings"

	"cat-rescue/internal/domain/breeds"
	"cat-rescue/internal/domain/cats"
	"cat-rescue/internal/domain/users"
)

const unknown = "Unknown"

// Reporter arma la vista anonimizada de adopciones completadas. Solo lee.
type Reporter struct {
	repo   Repository
	cats   CatDirectory
	users  UserDirectory
	breeds BreedDirectory
}

func NewReporter(repo Repository, catDir CatDirectory, userDir UserDirectory, breedDir BreedDirectory) *Reporter {
	return &Reporter{
		repo:   repo,
		cats:   catDir,
		users:  userDir,
		breeds: breedDir,
	}
}

func (r *Reporter) AnonymizedCompleted(ctx context.Context) ([]AnonymizedAdoption, error) {
	all, err := r.repo.ListAll(ctx)
	if err != nil {
		return nil, &StorageError{Op: "report", Err: err}
	}

	breedNames := map[string]string{}
	out := make([]AnonymizedAdoption, 0)
	for _, a := range all {
		if a.Status != StatusCompleted {
			continue
		}

		row := AnonymizedAdoption{
			AdoptionDate:   a.SubmittedAt,
			CatBreed:       unknown,
			LocationRegion: unknown,
			Status:         a.Status,
			TenantID:       a.TenantID,
		}

		c, err := r.cats.GetByID(ctx, a.CatID)
		switch {
		case err == nil:
			row.CatAge = c.Age
			name, err := r.breedName(ctx, breedNames, c.BreedID)
			if err != nil {
				return nil, &StorageError{Op: "report", Err: err}
			}
			row.CatBreed = name
		case !errors.Is(err, cats.ErrNotFound):
			return nil, &StorageError{Op: "report", Err: err}
		}

		u, err := r.users.GetByID(ctx, a.UserID)
		switch {
		case err == nil:
			row.LocationRegion = extractRegion(u.StreetAddress)
		case !errors.Is(err, users.ErrNotFound):
			return nil, &StorageError{Op: "report", Err: err}
		}

		out = append(out, row)
	}
	return out, nil
}

func (r *Reporter) breedName(ctx context.Context, seen map[string]string, breedID string) (string, error) {
	if strings.TrimSpace(breedID) == "" {
		return unknown, nil
	}
	if name, ok := seen[breedID]; ok {
		return name, nil
	}

	name := unknown
	b, err := r.breeds.GetByID(ctx, breedID)
	switch {
	case err == nil:
		if strings.TrimSpace(b.Name) != "" {
			name = b.Name
		}
	case !errors.Is(err, breeds.ErrNotFound):
		return "", err
	}

	seen[breedID] = name
	return name, nil
}

// extractRegion: lo que sigue a la última coma, sin espacios.
// "12 Elm St, Springfield" -> "Springfield". Sin coma o vacío -> "Unknown".
func extractRegion(address string) string {
	i := strings.LastIndex(address, ",")
	if i < 0 {
		return unknown
	}
	region := strings.TrimSpace(address[i+1:])
	if region == "" {
		return unknown
	}
	return region
}
