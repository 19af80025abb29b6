package breeds

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testRepo struct {
	byID     map[string]Breed
	searches int
}

func (r *testRepo) Upsert(ctx context.Context, b Breed) error {
	r.byID[b.ID] = b
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Breed, error) {
	b, ok := r.byID[id]
	if !ok {
		return Breed{}, ErrNotFound
	}
	return b, nil
}

func (r *testRepo) List(ctx context.Context) ([]Breed, error) {
	out := make([]Breed, 0, len(r.byID))
	for _, b := range r.byID {
		out = append(out, b)
	}
	return out, nil
}

func (r *testRepo) Search(ctx context.Context, f SearchFilter) ([]Breed, error) {
	r.searches++
	out := make([]Breed, 0)
	for _, b := range r.byID {
		if f.Name != "" && !strings.Contains(strings.ToLower(b.Name), strings.ToLower(f.Name)) {
			continue
		}
		if f.Origin != "" && !strings.Contains(strings.ToLower(b.Origin), strings.ToLower(f.Origin)) {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func TestService_Search(t *testing.T) {
	repo := &testRepo{byID: map[string]Breed{
		"siam": {ID: "siam", Name: "Siamese", Origin: "Thailand"},
		"kora": {ID: "kora", Name: "Korat", Origin: "Thailand"},
		"pers": {ID: "pers", Name: "Persian", Origin: "Iran"},
	}}
	svc := NewService(repo)
	ctx := context.Background()

	byOrigin, err := svc.Search(ctx, SearchFilter{Origin: " thai "})
	require.NoError(t, err)
	assert.Len(t, byOrigin, 2)

	both, err := svc.Search(ctx, SearchFilter{Name: "SIA", Origin: "thailand"})
	require.NoError(t, err)
	require.Len(t, both, 1)
	assert.Equal(t, "siam", both[0].ID)

	none, err := svc.Search(ctx, SearchFilter{Name: "siamese", Origin: "iran"})
	require.NoError(t, err)
	assert.Empty(t, none)

	all, err := svc.Search(ctx, SearchFilter{Name: "  "})
	require.NoError(t, err)
	assert.Len(t, all, 3)
	assert.Equal(t, 3, repo.searches, "blank filter goes through List")
}

func TestService_Save_NormalizesAndReplaces(t *testing.T) {
	repo := &testRepo{byID: map[string]Breed{}}
	svc := NewService(repo)
	ctx := context.Background()

	b, err := svc.Save(ctx, Breed{ID: " SIAM ", Name: " Siamese "})
	require.NoError(t, err)
	assert.Equal(t, "siam", b.ID)
	assert.Equal(t, "Siamese", b.Name)

	_, err = svc.Save(ctx, Breed{ID: "siam", Name: "Siamese", Origin: "Thailand"})
	require.NoError(t, err)

	got, err := svc.GetByID(ctx, "SIAM")
	require.NoError(t, err)
	assert.Equal(t, "Thailand", got.Origin)

	items, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestService_Save_RequiresIDAndName(t *testing.T) {
	svc := NewService(&testRepo{byID: map[string]Breed{}})

	_, err := svc.Save(context.Background(), Breed{ID: "abys"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Save(context.Background(), Breed{Name: "Abyssinian"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_GetByID_Blank(t *testing.T) {
	svc := NewService(&testRepo{byID: map[string]Breed{}})
	_, err := svc.GetByID(context.Background(), "  ")
	assert.ErrorIs(t, err, ErrNotFound)
}
