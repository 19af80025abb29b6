package users

import "context"

type Repository interface {
	// Create devuelve ErrAlreadyExists si el ID o el email ya están registrados.
	Create(ctx context.Context, u User) error
	GetByID(ctx context.Context, id string) (User, error)
	List(ctx context.Context) ([]User, error)
}
