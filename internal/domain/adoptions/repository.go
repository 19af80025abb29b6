package adoptions

import (
	"context"

	"cat-rescue/internal/domain/breeds"
	"cat-rescue/internal/domain/cats"
	"cat-rescue/internal/domain/users"
)

type Repository interface {
	// Save inserta si a.ID == "" (asigna ID) o actualiza.
	// ErrActiveAdoptionExists si el insert dejaría dos solicitudes activas para el gato.
	Save(ctx context.Context, a Adoption) (Adoption, error)
	GetByID(ctx context.Context, id string) (Adoption, error)
	ListByStatus(ctx context.Context, status Status, order Order) ([]Adoption, error)
	ListByUser(ctx context.Context, userID string) ([]Adoption, error)
	ListAll(ctx context.Context) ([]Adoption, error)
	CountCompletedByUser(ctx context.Context, userID string) (int, error)
}

// CatDirectory es lo único que el motor necesita de los gatos.
// Las implementaciones devuelven cats.ErrNotFound si el id no existe.
type CatDirectory interface {
	GetByID(ctx context.Context, id string) (cats.Cat, error)
	SetStatus(ctx context.Context, id string, status cats.Status) (cats.Cat, error)
}

type UserDirectory interface {
	GetByID(ctx context.Context, id string) (users.User, error)
}

type BreedDirectory interface {
	GetByID(ctx context.Context, id string) (breeds.Breed, error)
}

// CatStatusObserver se notifica después del commit (ej. invalidar cache de disponibles).
type CatStatusObserver interface {
	CatStatusChanged(ctx context.Context, catID string, status cats.Status)
}

// Transactor corre fn como una sola unidad de trabajo sobre adopciones y gatos:
// si fn devuelve error no queda nada escrito. Dentro de fn, las lecturas por id
// bloquean la fila hasta el final de la transacción.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, repo Repository, catDir CatDirectory) error) error
}
