package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"cat-rescue/internal/domain/breeds"
)

type breedRepo struct {
	mu   sync.RWMutex
	byID map[string]breeds.Breed
}

func NewBreedRepo() breeds.Repository {
	return &breedRepo{
		byID: make(map[string]breeds.Breed),
	}
}

func (r *breedRepo) Upsert(ctx context.Context, b breeds.Breed) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byID[b.ID] = b
	return nil
}

func (r *breedRepo) GetByID(ctx context.Context, id string) (breeds.Breed, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.byID[id]
	if !ok {
		return breeds.Breed{}, breeds.ErrNotFound
	}
	return b, nil
}

func (r *breedRepo) List(ctx context.Context) ([]breeds.Breed, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]breeds.Breed, 0, len(r.byID))
	for _, b := range r.byID {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *breedRepo) Search(ctx context.Context, f breeds.SearchFilter) ([]breeds.Breed, error) {
	all, err := r.List(ctx)
	if err != nil {
		return nil, err
	}

	name := strings.ToLower(f.Name)
	origin := strings.ToLower(f.Origin)
	out := make([]breeds.Breed, 0)
	for _, b := range all {
		if name != "" && !strings.Contains(strings.ToLower(b.Name), name) {
			continue
		}
		if origin != "" && !strings.Contains(strings.ToLower(b.Origin), origin) {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}
