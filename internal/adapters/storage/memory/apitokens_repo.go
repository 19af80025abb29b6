package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"cat-rescue/internal/domain/apitokens"
)

type apiTokenRepo struct {
	mu      sync.RWMutex
	byToken map[string]apitokens.Token
}

func NewAPITokenRepo() apitokens.Repository {
	return &apiTokenRepo{
		byToken: make(map[string]apitokens.Token),
	}
}

func (r *apiTokenRepo) Create(ctx context.Context, t apitokens.Token) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byToken[t.Token]; exists {
		return errors.New("api token already exists")
	}
	r.byToken[t.Token] = t
	return nil
}

func (r *apiTokenRepo) GetByToken(ctx context.Context, token string) (apitokens.Token, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.byToken[token]
	if !ok {
		return apitokens.Token{}, apitokens.ErrNotFound
	}
	return t, nil
}

func (r *apiTokenRepo) List(ctx context.Context) ([]apitokens.Token, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]apitokens.Token, 0, len(r.byToken))
	for _, t := range r.byToken {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}
