package memory

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"cat-rescue/internal/domain/cats"
)

// CatRepo se exporta porque el Transactor necesita aplicar los cambios
// staged sobre el mismo mapa.
type CatRepo struct {
	mu    sync.RWMutex
	byID  map[string]cats.Cat
	order []string
	now   func() time.Time
}

func NewCatRepo() *CatRepo {
	return &CatRepo{
		byID: make(map[string]cats.Cat),
		now:  time.Now,
	}
}

func (r *CatRepo) Create(ctx context.Context, c cats.Cat) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(c.ID) == "" {
		return errors.New("cat id required")
	}
	if _, exists := r.byID[c.ID]; exists {
		return errors.New("cat already exists")
	}
	r.byID[c.ID] = c
	r.order = append(r.order, c.ID)
	return nil
}

func (r *CatRepo) GetByID(ctx context.Context, id string) (cats.Cat, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.byID[id]
	if !ok {
		return cats.Cat{}, cats.ErrNotFound
	}
	return c, nil
}

func (r *CatRepo) List(ctx context.Context) ([]cats.Cat, error) {
	return r.filter(func(cats.Cat) bool { return true }), nil
}

func (r *CatRepo) ListByStatus(ctx context.Context, status cats.Status) ([]cats.Cat, error) {
	return r.filter(func(c cats.Cat) bool { return c.Status == status }), nil
}

func (r *CatRepo) ListByBreed(ctx context.Context, breedID string) ([]cats.Cat, error) {
	return r.filter(func(c cats.Cat) bool { return c.BreedID == breedID }), nil
}

func (r *CatRepo) ListInArea(ctx context.Context, box cats.BoundingBox) ([]cats.Cat, error) {
	return r.filter(func(c cats.Cat) bool { return c.IsAvailable() && box.Contains(c) }), nil
}

func (r *CatRepo) SetStatus(ctx context.Context, id string, status cats.Status) (cats.Cat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.byID[id]
	if !ok {
		return cats.Cat{}, cats.ErrNotFound
	}
	c.Status = status
	c.UpdatedAt = r.now()
	r.byID[id] = c
	return c, nil
}

func (r *CatRepo) filter(keep func(cats.Cat) bool) []cats.Cat {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]cats.Cat, 0)
	for _, id := range r.order {
		if c := r.byID[id]; keep(c) {
			out = append(out, c)
		}
	}
	return out
}

// applyLocked: el caller tiene tomado r.mu.
func (r *CatRepo) applyLocked(staged map[string]cats.Cat) {
	for id, c := range staged {
		r.byID[id] = c
	}
}
