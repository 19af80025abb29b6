package adoptions

import (
	"context"
	"errors"
	"testing"

	"cat-rescue/internal/domain/breeds"
	"cat-rescue/internal/domain/users"
)

func TestExtractRegion(t *testing.T) {
	cases := map[string]string{
		"12 Elm St, Springfield":         "Springfield",
		"Av. Siempre Viva 742, Sur, BA ": "BA",
		"no comma here":                  "Unknown",
		"":                               "Unknown",
		"trailing comma,  ":              "Unknown",
	}
	for in, want := range cases {
		if got := extractRegion(in); got != want {
			t.Fatalf("extractRegion(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestReporter_OnlyCompletedAndAnonymized(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	age := 3

	c1 := f.store.cats["c1"]
	c1.BreedID = "abys"
	c1.Age = &age
	f.store.cats["c1"] = c1

	r1, err := f.svc.Submit(ctx, SubmitInput{UserID: "u1", CatID: "c1"})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	must(t)(f.svc.Approve(ctx, r1.ID, "a1"))
	must(t)(f.svc.Complete(ctx, r1.ID, "a1"))

	// pendiente de otro usuario: no debe aparecer
	if _, err := f.svc.Submit(ctx, SubmitInput{UserID: "u2", CatID: "c2"}); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	rep := NewReporter(f.store, testCats{f.store}, f.users, testBreeds{"abys": {ID: "abys", Name: "Abyssinian"}})
	rows, err := rep.AnonymizedCompleted(ctx)
	if err != nil {
		t.Fatalf("AnonymizedCompleted: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected only the completed adoption, got %d rows", len(rows))
	}

	row := rows[0]
	if row.Status != StatusCompleted {
		t.Fatalf("expected COMPLETED, got %s", row.Status)
	}
	if row.CatBreed != "Abyssinian" || row.CatAge == nil || *row.CatAge != 3 {
		t.Fatalf("unexpected cat data: %q %v", row.CatBreed, row.CatAge)
	}
	if row.LocationRegion != "Springfield" {
		t.Fatalf("expected region Springfield, got %q", row.LocationRegion)
	}
	if row.TenantID != "tenant-a" || !row.AdoptionDate.Equal(r1.SubmittedAt) {
		t.Fatalf("unexpected tenant/date: %q %v", row.TenantID, row.AdoptionDate)
	}
}

func TestReporter_UnknownBreedAndRegion(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	r, err := f.svc.Submit(ctx, SubmitInput{UserID: "u2", CatID: "c2"})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	must(t)(f.svc.Approve(ctx, r.ID, "a1"))
	must(t)(f.svc.Complete(ctx, r.ID, "a1"))

	rep := NewReporter(f.store, testCats{f.store}, f.users, testBreeds{})
	rows, err := rep.AnonymizedCompleted(ctx)
	if err != nil {
		t.Fatalf("AnonymizedCompleted: %v", err)
	}
	if len(rows) != 1 || rows[0].CatBreed != "Unknown" || rows[0].LocationRegion != "Unknown" {
		t.Fatalf("expected Unknown breed and region, got %#v", rows)
	}
}

type failingUsers struct{}

func (failingUsers) GetByID(context.Context, string) (users.User, error) {
	return users.User{}, errors.New("users db down")
}

func TestReporter_UserLookupFailureIsStorageError(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	r, _ := f.svc.Submit(ctx, SubmitInput{UserID: "u1", CatID: "c1"})
	must(t)(f.svc.Approve(ctx, r.ID, "a1"))
	must(t)(f.svc.Complete(ctx, r.ID, "a1"))

	rep := NewReporter(f.store, testCats{f.store}, failingUsers{}, testBreeds{"x": breeds.Breed{}})
	if _, err := rep.AnonymizedCompleted(ctx); !errors.Is(err, ErrStorage) {
		t.Fatalf("expected ErrStorage, got %v", err)
	}
}
