package apitokens

import "context"

type Repository interface {
	Create(ctx context.Context, t Token) error
	// GetByToken devuelve ErrNotFound si el valor no existe.
	GetByToken(ctx context.Context, token string) (Token, error)
	List(ctx context.Context) ([]Token, error)
}
