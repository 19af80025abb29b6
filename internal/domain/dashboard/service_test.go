package dashboard

import (
	"context"
	"errors"
	"testing"

	"cat-rescue/internal/domain/adoptions"
	"cat-rescue/internal/domain/cats"
	"cat-rescue/internal/domain/users"
	"cat-rescue/internal/ports/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type catsStub []cats.Cat

func (s catsStub) List(context.Context) ([]cats.Cat, error) { return s, nil }

type usersStub []users.User

func (s usersStub) List(context.Context) ([]users.User, error) { return s, nil }

type adoptionsStub struct {
	items []adoptions.Adoption
	err   error
}

func (s adoptionsStub) ListAll(context.Context) ([]adoptions.Adoption, error) { return s.items, s.err }

func TestService_Stats(t *testing.T) {
	svc := NewService(
		catsStub{
			{ID: "c1", Status: cats.StatusAvailable},
			{ID: "c2", Status: cats.StatusPending},
			{ID: "c3", Status: cats.StatusAdopted},
			{ID: "c4", Status: cats.StatusAvailable},
		},
		usersStub{
			{ID: "u1", Role: auth.RoleUser},
			{ID: "a1", Role: auth.RoleAdmin},
		},
		adoptionsStub{items: []adoptions.Adoption{
			{ID: "r1", Status: adoptions.StatusPending},
			{ID: "r2", Status: adoptions.StatusCompleted},
			{ID: "r3", Status: adoptions.StatusRejected},
		}},
	)

	st, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Stats{
		TotalCats:          4,
		AvailableCats:      2,
		AdoptedCats:        1,
		TotalUsers:         2,
		AdminUsers:         1,
		TotalAdoptions:     3,
		PendingAdoptions:   1,
		CompletedAdoptions: 1,
	}, st)
}

func TestService_Stats_PropagatesErrors(t *testing.T) {
	boom := errors.New("boom")
	svc := NewService(catsStub{}, usersStub{}, adoptionsStub{err: boom})

	_, err := svc.Stats(context.Background())
	assert.ErrorIs(t, err, boom)
}
