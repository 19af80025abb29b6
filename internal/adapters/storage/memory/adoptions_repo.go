package memory

import (
	"context"
	"sort"
	"sync"

	"cat-rescue/internal/domain/adoptions"

	"github.com/google/uuid"
)

// AdoptionRepo guarda las solicitudes en orden de inserción. Rechaza una
// segunda solicitud activa para el mismo gato (igual que el índice parcial
// de Postgres).
type AdoptionRepo struct {
	mu    sync.RWMutex
	byID  map[string]adoptions.Adoption
	order []string
}

func NewAdoptionRepo() *AdoptionRepo {
	return &AdoptionRepo{
		byID: make(map[string]adoptions.Adoption),
	}
}

func (r *AdoptionRepo) Save(ctx context.Context, a adoptions.Adoption) (adoptions.Adoption, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if a.ID != "" {
		if _, exists := r.byID[a.ID]; !exists {
			return adoptions.Adoption{}, adoptions.ErrNotFound
		}
	}
	if a.Status.IsActive() && activeConflict(r.byID, a) {
		return adoptions.Adoption{}, adoptions.ErrActiveAdoptionExists
	}

	if a.ID == "" {
		a.ID = uuid.NewString()
		r.order = append(r.order, a.ID)
	}
	r.byID[a.ID] = a
	return a, nil
}

func (r *AdoptionRepo) GetByID(ctx context.Context, id string) (adoptions.Adoption, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byID[id]
	if !ok {
		return adoptions.Adoption{}, adoptions.ErrNotFound
	}
	return a, nil
}

func (r *AdoptionRepo) ListByStatus(ctx context.Context, status adoptions.Status, order adoptions.Order) ([]adoptions.Adoption, error) {
	return byStatus(r.snapshot(), status, order), nil
}

func (r *AdoptionRepo) ListByUser(ctx context.Context, userID string) ([]adoptions.Adoption, error) {
	return byUser(r.snapshot(), userID), nil
}

func (r *AdoptionRepo) ListAll(ctx context.Context) ([]adoptions.Adoption, error) {
	return r.snapshot(), nil
}

func (r *AdoptionRepo) CountCompletedByUser(ctx context.Context, userID string) (int, error) {
	return countCompleted(r.snapshot(), userID), nil
}

func (r *AdoptionRepo) snapshot() []adoptions.Adoption {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]adoptions.Adoption, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out
}

// applyLocked publica lo staged por una transacción. Revalida la unicidad
// contra el estado actual antes de escribir: o entra todo o nada.
// El caller tiene tomado r.mu.
func (r *AdoptionRepo) applyLocked(staged map[string]adoptions.Adoption, inserted []string) error {
	merged := make(map[string]adoptions.Adoption, len(r.byID)+len(inserted))
	for id, a := range r.byID {
		merged[id] = a
	}
	for id, a := range staged {
		merged[id] = a
	}
	for _, a := range staged {
		if a.Status.IsActive() && activeConflict(merged, a) {
			return adoptions.ErrActiveAdoptionExists
		}
	}

	for id, a := range staged {
		r.byID[id] = a
	}
	r.order = append(r.order, inserted...)
	return nil
}

// activeConflict: hay otra solicitud activa (distinto ID) para el mismo gato.
func activeConflict(byID map[string]adoptions.Adoption, a adoptions.Adoption) bool {
	for id, other := range byID {
		if id != a.ID && other.CatID == a.CatID && other.Status.IsActive() {
			return true
		}
	}
	return false
}

func byStatus(items []adoptions.Adoption, status adoptions.Status, order adoptions.Order) []adoptions.Adoption {
	out := make([]adoptions.Adoption, 0)
	for _, a := range items {
		if a.Status == status {
			out = append(out, a)
		}
	}
	if order == adoptions.OrderSubmittedDesc {
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].SubmittedAt.After(out[j].SubmittedAt)
		})
	}
	return out
}

func byUser(items []adoptions.Adoption, userID string) []adoptions.Adoption {
	out := make([]adoptions.Adoption, 0)
	for _, a := range items {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out
}

func countCompleted(items []adoptions.Adoption, userID string) int {
	n := 0
	for _, a := range items {
		if a.UserID == userID && a.Status == adoptions.StatusCompleted {
			n++
		}
	}
	return n
}
