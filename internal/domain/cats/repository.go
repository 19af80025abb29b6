package cats

import "context"

type Repository interface {
	Create(ctx context.Context, c Cat) error
	GetByID(ctx context.Context, id string) (Cat, error)
	List(ctx context.Context) ([]Cat, error)
	ListByStatus(ctx context.Context, status Status) ([]Cat, error)
	ListByBreed(ctx context.Context, breedID string) ([]Cat, error)

	// ListInArea devuelve solo gatos AVAILABLE con coordenadas dentro de box.
	ListInArea(ctx context.Context, box BoundingBox) ([]Cat, error)

	// SetStatus cambia solo el status (y updated_at). ErrNotFound si no existe.
	SetStatus(ctx context.Context, id string, status Status) (Cat, error)
}

// AvailableCache guarda el listado de gatos disponibles (la vista más
// consultada del sitio). Cualquier cambio de status lo invalida.
type AvailableCache interface {
	GetAvailable(ctx context.Context) ([]Cat, bool, error)
	SetAvailable(ctx context.Context, items []Cat) error
	InvalidateAvailable(ctx context.Context) error
}
