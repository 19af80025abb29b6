package breeds

import "context"

type Repository interface {
	Upsert(ctx context.Context, b Breed) error
	GetByID(ctx context.Context, id string) (Breed, error)
	List(ctx context.Context) ([]Breed, error)
	Search(ctx context.Context, f SearchFilter) ([]Breed, error)
}
