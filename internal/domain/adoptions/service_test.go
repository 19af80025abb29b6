package adoptions

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"testing"
	"time"

	"cat-rescue/internal/domain/breeds"
	"cat-rescue/internal/domain/cats"
	"cat-rescue/internal/domain/users"
)

// -------------------------
// Test store (in-memory, con rollback)
// -------------------------

type testStore struct {
	adoptions map[string]Adoption
	order     []string
	cats      map[string]cats.Cat
	seq       int

	saveErr      error
	setStatusErr error
}

func newTestStore() *testStore {
	return &testStore{
		adoptions: map[string]Adoption{},
		cats:      map[string]cats.Cat{},
	}
}

func (s *testStore) clone() *testStore {
	c := &testStore{
		adoptions:    make(map[string]Adoption, len(s.adoptions)),
		order:        append([]string(nil), s.order...),
		cats:         make(map[string]cats.Cat, len(s.cats)),
		seq:          s.seq,
		saveErr:      s.saveErr,
		setStatusErr: s.setStatusErr,
	}
	for k, v := range s.adoptions {
		c.adoptions[k] = v
	}
	for k, v := range s.cats {
		c.cats[k] = v
	}
	return c
}

// WithinTx trabaja sobre una copia y la publica solo si fn termina bien.
func (s *testStore) WithinTx(ctx context.Context, fn func(ctx context.Context, repo Repository, catDir CatDirectory) error) error {
	work := s.clone()
	if err := fn(ctx, work, testCats{work}); err != nil {
		return err
	}
	s.adoptions, s.order, s.cats, s.seq = work.adoptions, work.order, work.cats, work.seq
	return nil
}

func (s *testStore) Save(ctx context.Context, a Adoption) (Adoption, error) {
	if s.saveErr != nil {
		return Adoption{}, s.saveErr
	}
	if a.ID == "" {
		for _, other := range s.adoptions {
			if other.CatID == a.CatID && other.Status.IsActive() {
				return Adoption{}, ErrActiveAdoptionExists
			}
		}
		s.seq++
		a.ID = fmt.Sprintf("adoption-%d", s.seq)
		s.order = append(s.order, a.ID)
	}
	s.adoptions[a.ID] = a
	return a, nil
}

func (s *testStore) GetByID(ctx context.Context, id string) (Adoption, error) {
	a, ok := s.adoptions[id]
	if !ok {
		return Adoption{}, ErrNotFound
	}
	return a, nil
}

func (s *testStore) ListByStatus(ctx context.Context, status Status, order Order) ([]Adoption, error) {
	out := make([]Adoption, 0)
	for _, id := range s.order {
		if a := s.adoptions[id]; a.Status == status {
			out = append(out, a)
		}
	}
	if order == OrderSubmittedDesc {
		sort.SliceStable(out, func(i, j int) bool { return out[i].SubmittedAt.After(out[j].SubmittedAt) })
	}
	return out, nil
}

func (s *testStore) ListByUser(ctx context.Context, userID string) ([]Adoption, error) {
	out := make([]Adoption, 0)
	for _, id := range s.order {
		if a := s.adoptions[id]; a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *testStore) ListAll(ctx context.Context) ([]Adoption, error) {
	out := make([]Adoption, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.adoptions[id])
	}
	return out, nil
}

func (s *testStore) CountCompletedByUser(ctx context.Context, userID string) (int, error) {
	n := 0
	for _, a := range s.adoptions {
		if a.UserID == userID && a.Status == StatusCompleted {
			n++
		}
	}
	return n, nil
}

type testCats struct{ s *testStore }

func (c testCats) GetByID(ctx context.Context, id string) (cats.Cat, error) {
	cat, ok := c.s.cats[id]
	if !ok {
		return cats.Cat{}, cats.ErrNotFound
	}
	return cat, nil
}

func (c testCats) SetStatus(ctx context.Context, id string, status cats.Status) (cats.Cat, error) {
	if c.s.setStatusErr != nil {
		return cats.Cat{}, c.s.setStatusErr
	}
	cat, ok := c.s.cats[id]
	if !ok {
		return cats.Cat{}, cats.ErrNotFound
	}
	cat.Status = status
	c.s.cats[id] = cat
	return cat, nil
}

type testUsers map[string]users.User

func (u testUsers) GetByID(ctx context.Context, id string) (users.User, error) {
	usr, ok := u[id]
	if !ok {
		return users.User{}, users.ErrNotFound
	}
	return usr, nil
}

type testBreeds map[string]breeds.Breed

func (b testBreeds) GetByID(ctx context.Context, id string) (breeds.Breed, error) {
	br, ok := b[id]
	if !ok {
		return breeds.Breed{}, breeds.ErrNotFound
	}
	return br, nil
}

type testObserver struct{ calls []cats.Status }

func (o *testObserver) CatStatusChanged(ctx context.Context, catID string, status cats.Status) {
	o.calls = append(o.calls, status)
}

type fixture struct {
	store    *testStore
	users    testUsers
	observer *testObserver
	svc      *Service
	now      time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := newTestStore()
	store.cats["c1"] = cats.Cat{ID: "c1", Name: "Michi", Status: cats.StatusAvailable}
	store.cats["c2"] = cats.Cat{ID: "c2", Name: "Luna", Status: cats.StatusAvailable}
	store.cats["c3"] = cats.Cat{ID: "c3", Name: "Tom", Status: cats.StatusAdopted}

	us := testUsers{
		"u1": {ID: "u1", Email: "u1@example.com", TenantID: "tenant-a", StreetAddress: "12 Elm St, Springfield"},
		"u2": {ID: "u2", Email: "u2@example.com", TenantID: "tenant-b"},
	}

	obs := &testObserver{}
	svc := NewService(store, store, us, WithObserver(obs))
	f := &fixture{store: store, users: us, observer: obs, svc: svc}
	f.now = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return f.now }
	return f
}

func (f *fixture) catStatus(id string) cats.Status {
	return f.store.cats[id].Status
}

// -------------------------
// Submit
// -------------------------

func TestService_Submit_CreatesPendingAndReservesCat(t *testing.T) {
	f := newFixture(t)

	a, err := f.svc.Submit(context.Background(), SubmitInput{UserID: "u1", CatID: "c1", Notes: "  tengo jardín "})
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}

	if a.ID == "" || a.Status != StatusPending {
		t.Fatalf("expected PENDING record with id, got %#v", a)
	}
	if a.UserID != "u1" || a.CatID != "c1" {
		t.Fatalf("unexpected refs: %s / %s", a.UserID, a.CatID)
	}
	if a.SubmittedAt != f.now {
		t.Fatalf("expected SubmittedAt to be now")
	}
	if a.ApprovedAt != nil || a.CompletedAt != nil || a.ProcessedBy != "" {
		t.Fatalf("expected no admin stamps on a new record")
	}
	if a.ApplicantNotes != "tengo jardín" || a.TenantID != "tenant-a" {
		t.Fatalf("unexpected notes/tenant: %q / %q", a.ApplicantNotes, a.TenantID)
	}
	if f.catStatus("c1") != cats.StatusPending {
		t.Fatalf("expected cat PENDING, got %s", f.catStatus("c1"))
	}

	pending, _ := f.svc.ListPending(context.Background())
	if len(pending) != 1 || pending[0].ID != a.ID {
		t.Fatalf("expected exactly one pending record, got %d", len(pending))
	}
	if len(f.observer.calls) != 1 || f.observer.calls[0] != cats.StatusPending {
		t.Fatalf("expected observer notified with PENDING, got %v", f.observer.calls)
	}
}

func TestService_Submit_Failures(t *testing.T) {
	cases := []struct {
		name   string
		in     SubmitInput
		target error
		entity Entity
	}{
		{"unknown user", SubmitInput{UserID: "nope", CatID: "c1"}, ErrNotFound, EntityUser},
		{"blank user", SubmitInput{UserID: " ", CatID: "c1"}, ErrNotFound, EntityUser},
		{"unknown cat", SubmitInput{UserID: "u1", CatID: "nope"}, ErrNotFound, EntityCat},
		{"adopted cat", SubmitInput{UserID: "u1", CatID: "c3"}, ErrCatUnavailable, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)

			_, err := f.svc.Submit(context.Background(), tc.in)
			if !errors.Is(err, tc.target) {
				t.Fatalf("expected %v, got %v", tc.target, err)
			}
			if tc.entity != "" {
				var nf *NotFoundError
				if !errors.As(err, &nf) || nf.Entity != tc.entity {
					t.Fatalf("expected NotFoundError for %s, got %#v", tc.entity, err)
				}
			}
			if len(f.store.adoptions) != 0 {
				t.Fatalf("expected nothing persisted, got %d records", len(f.store.adoptions))
			}
			if f.catStatus("c1") != cats.StatusAvailable {
				t.Fatalf("expected c1 untouched")
			}
		})
	}
}

func TestService_Submit_SecondApplicationForSameCatConflicts(t *testing.T) {
	f := newFixture(t)

	if _, err := f.svc.Submit(context.Background(), SubmitInput{UserID: "u1", CatID: "c1"}); err != nil {
		t.Fatalf("Submit #1: %v", err)
	}
	_, err := f.svc.Submit(context.Background(), SubmitInput{UserID: "u2", CatID: "c1"})

	var cu *CatUnavailableError
	if !errors.As(err, &cu) || cu.Status != string(cats.StatusPending) {
		t.Fatalf("expected CatUnavailableError with PENDING, got %v", err)
	}
}

func TestService_Submit_ActiveRecordConstraintMapsToCatUnavailable(t *testing.T) {
	f := newFixture(t)
	// el gato figura disponible pero ya hay una solicitud activa (otro writer)
	f.store.adoptions["stale"] = Adoption{ID: "stale", CatID: "c1", Status: StatusApproved}
	f.store.order = append(f.store.order, "stale")

	_, err := f.svc.Submit(context.Background(), SubmitInput{UserID: "u1", CatID: "c1"})
	if !errors.Is(err, ErrCatUnavailable) {
		t.Fatalf("expected ErrCatUnavailable, got %v", err)
	}
	if f.catStatus("c1") != cats.StatusAvailable {
		t.Fatalf("expected cat unchanged after failed submit")
	}
}

func TestService_Submit_StorageFailureIsWrappedAndRolledBack(t *testing.T) {
	f := newFixture(t)
	boom := errors.New("disk full")
	f.store.setStatusErr = boom

	_, err := f.svc.Submit(context.Background(), SubmitInput{UserID: "u1", CatID: "c1"})

	var se *StorageError
	if !errors.As(err, &se) || se.Op != "submit" {
		t.Fatalf("expected StorageError for submit, got %v", err)
	}
	if !errors.Is(err, boom) || !errors.Is(err, ErrStorage) {
		t.Fatalf("expected error chain to keep the original cause")
	}
	if len(f.store.adoptions) != 0 {
		t.Fatalf("expected record rolled back, got %d", len(f.store.adoptions))
	}
	if len(f.observer.calls) != 0 {
		t.Fatalf("expected no notification on failure")
	}
}

// -------------------------
// Transitions
// -------------------------

func TestService_ApproveCompleteLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	r1, err := f.svc.Submit(ctx, SubmitInput{UserID: "u1", CatID: "c1"})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	f.now = f.now.Add(time.Hour)
	approved, err := f.svc.Approve(ctx, r1.ID, "a1")
	if err != nil {
		t.Fatalf("Approve: %v", err)
	}
	if approved.Status != StatusApproved || approved.ApprovedAt == nil || !approved.ApprovedAt.Equal(f.now) {
		t.Fatalf("expected APPROVED with approvedAt=now, got %#v", approved)
	}
	if approved.ProcessedBy != "a1" {
		t.Fatalf("expected processedBy a1, got %q", approved.ProcessedBy)
	}
	if approved.CompletedAt != nil {
		t.Fatalf("expected completedAt unset after approve")
	}
	if f.catStatus("c1") != cats.StatusPending {
		t.Fatalf("expected cat PENDING after approve, got %s", f.catStatus("c1"))
	}

	f.now = f.now.Add(time.Hour)
	completed, err := f.svc.Complete(ctx, r1.ID, "a1")
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if completed.Status != StatusCompleted || completed.CompletedAt == nil || !completed.CompletedAt.Equal(f.now) {
		t.Fatalf("expected COMPLETED with completedAt=now, got %#v", completed)
	}
	if completed.ApprovedAt == nil {
		t.Fatalf("expected approvedAt kept after complete")
	}
	if completed.SubmittedAt != r1.SubmittedAt || completed.TenantID != r1.TenantID {
		t.Fatalf("expected submittedAt and tenant unchanged")
	}
	if f.catStatus("c1") != cats.StatusAdopted {
		t.Fatalf("expected cat ADOPTED, got %s", f.catStatus("c1"))
	}

	_, err = f.svc.Submit(ctx, SubmitInput{UserID: "u2", CatID: "c1"})
	if !errors.Is(err, ErrCatUnavailable) {
		t.Fatalf("expected ErrCatUnavailable after adoption, got %v", err)
	}

	n, err := f.svc.CompletedCountForUser(ctx, "u1")
	if err != nil || n != 1 {
		t.Fatalf("expected 1 completed adoption for u1, got %d (%v)", n, err)
	}
}

func TestService_Reject_RevertsCatAndAllowsNewApplication(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	r2, err := f.svc.Submit(ctx, SubmitInput{UserID: "u1", CatID: "c2"})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	rejected, err := f.svc.Reject(ctx, r2.ID, "a1", "incomplete info")
	if err != nil {
		t.Fatalf("Reject: %v", err)
	}
	if rejected.Status != StatusRejected || rejected.AdminNotes != "incomplete info" {
		t.Fatalf("expected REJECTED with reason, got %#v", rejected)
	}
	if rejected.ApprovedAt != nil || rejected.CompletedAt != nil {
		t.Fatalf("expected no approve/complete stamps on reject")
	}
	if f.catStatus("c2") != cats.StatusAvailable {
		t.Fatalf("expected cat AVAILABLE after reject, got %s", f.catStatus("c2"))
	}

	if _, err := f.svc.Submit(ctx, SubmitInput{UserID: "u2", CatID: "c2"}); err != nil {
		t.Fatalf("expected new submit to succeed after reject, got %v", err)
	}
}

func TestService_Reject_BlankReasonNeverReachesStore(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	r, err := f.svc.Submit(ctx, SubmitInput{UserID: "u1", CatID: "c2"})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	_, err = f.svc.Reject(ctx, r.ID, "a1", "   ")
	if !errors.Is(err, ErrBlankReason) || !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrBlankReason, got %v", err)
	}
	if got := f.store.adoptions[r.ID].Status; got != StatusPending {
		t.Fatalf("expected record still PENDING, got %s", got)
	}
}

func TestService_Transitions_GuardViolations(t *testing.T) {
	cases := []struct {
		name     string
		setup    func(t *testing.T, f *fixture, id string)
		run      func(f *fixture, id string) error
		required Status
		actual   Status
	}{
		{
			name:  "approve twice",
			setup: func(t *testing.T, f *fixture, id string) { must(t)(f.svc.Approve(context.Background(), id, "a1")) },
			run: func(f *fixture, id string) error {
				_, err := f.svc.Approve(context.Background(), id, "a1")
				return err
			},
			required: StatusPending,
			actual:   StatusApproved,
		},
		{
			name:  "complete before approve",
			setup: func(t *testing.T, f *fixture, id string) {},
			run: func(f *fixture, id string) error {
				_, err := f.svc.Complete(context.Background(), id, "a1")
				return err
			},
			required: StatusApproved,
			actual:   StatusPending,
		},
		{
			name:  "reject approved",
			setup: func(t *testing.T, f *fixture, id string) { must(t)(f.svc.Approve(context.Background(), id, "a1")) },
			run: func(f *fixture, id string) error {
				_, err := f.svc.Reject(context.Background(), id, "a1", "changed mind")
				return err
			},
			required: StatusPending,
			actual:   StatusApproved,
		},
		{
			name:  "approve rejected",
			setup: func(t *testing.T, f *fixture, id string) { must(t)(f.svc.Reject(context.Background(), id, "a1", "no")) },
			run: func(f *fixture, id string) error {
				_, err := f.svc.Approve(context.Background(), id, "a2")
				return err
			},
			required: StatusPending,
			actual:   StatusRejected,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			r, err := f.svc.Submit(context.Background(), SubmitInput{UserID: "u1", CatID: "c1"})
			if err != nil {
				t.Fatalf("Submit: %v", err)
			}
			tc.setup(t, f, r.ID)

			before := f.store.adoptions[r.ID]
			catBefore := f.catStatus("c1")

			err = tc.run(f, r.ID)

			var te *TransitionError
			if !errors.As(err, &te) || !errors.Is(err, ErrInvalidTransition) {
				t.Fatalf("expected TransitionError, got %v", err)
			}
			if te.Required != tc.required || te.Actual != tc.actual {
				t.Fatalf("expected required=%s actual=%s, got %s/%s", tc.required, tc.actual, te.Required, te.Actual)
			}
			msg := err.Error()
			if !strings.Contains(msg, string(tc.required)) || !strings.Contains(msg, string(tc.actual)) {
				t.Fatalf("expected message to name both statuses, got %q", msg)
			}

			after := f.store.adoptions[r.ID]
			if after.Status != before.Status || after.ProcessedBy != before.ProcessedBy || after.AdminNotes != before.AdminNotes {
				t.Fatalf("expected record unchanged after guard failure")
			}
			if f.catStatus("c1") != catBefore {
				t.Fatalf("expected cat unchanged after guard failure")
			}
		})
	}
}

func TestService_Transitions_UnknownAdoption(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Approve(context.Background(), "missing", "a1")
	var nf *NotFoundError
	if !errors.As(err, &nf) || nf.Entity != EntityAdoption {
		t.Fatalf("expected NotFoundError(adoption), got %v", err)
	}
}

func TestService_Transitions_RequireAdmin(t *testing.T) {
	f := newFixture(t)
	r, err := f.svc.Submit(context.Background(), SubmitInput{UserID: "u1", CatID: "c1"})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if _, err := f.svc.Approve(context.Background(), r.ID, " "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank admin, got %v", err)
	}
}

func TestService_Transition_StorageFailureLeavesStateUntouched(t *testing.T) {
	f := newFixture(t)
	r, err := f.svc.Submit(context.Background(), SubmitInput{UserID: "u1", CatID: "c1"})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	f.store.saveErr = errors.New("connection reset")
	_, err = f.svc.Approve(context.Background(), r.ID, "a1")
	if !errors.Is(err, ErrStorage) {
		t.Fatalf("expected ErrStorage, got %v", err)
	}
	if f.store.adoptions[r.ID].Status != StatusPending {
		t.Fatalf("expected record still PENDING")
	}
}

// -------------------------
// Reads
// -------------------------

func TestService_ListPendingRecent_NewestFirst(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, _ := f.svc.Submit(ctx, SubmitInput{UserID: "u1", CatID: "c1"})
	f.now = f.now.Add(time.Minute)
	second, _ := f.svc.Submit(ctx, SubmitInput{UserID: "u2", CatID: "c2"})

	inserted, err := f.svc.ListPending(ctx)
	if err != nil || len(inserted) != 2 || inserted[0].ID != first.ID {
		t.Fatalf("expected insertion order, got %#v (%v)", inserted, err)
	}
	recent, err := f.svc.ListPendingRecent(ctx)
	if err != nil || len(recent) != 2 || recent[0].ID != second.ID {
		t.Fatalf("expected newest first, got %#v (%v)", recent, err)
	}
}

func TestService_UserStats(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	r1, _ := f.svc.Submit(ctx, SubmitInput{UserID: "u1", CatID: "c1"})
	must(t)(f.svc.Approve(ctx, r1.ID, "a1"))
	must(t)(f.svc.Complete(ctx, r1.ID, "a1"))
	if _, err := f.svc.Submit(ctx, SubmitInput{UserID: "u1", CatID: "c2"}); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	st, err := f.svc.UserStats(ctx, "u1")
	if err != nil {
		t.Fatalf("UserStats: %v", err)
	}
	if st.TotalApplications != 2 || st.CompletedAdoptions != 1 || st.PendingApplications != 1 {
		t.Fatalf("unexpected stats %#v", st)
	}

	if _, err := f.svc.UserStats(ctx, "ghost"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown user, got %v", err)
	}
}

func TestService_GetByID(t *testing.T) {
	f := newFixture(t)
	r, _ := f.svc.Submit(context.Background(), SubmitInput{UserID: "u1", CatID: "c1"})

	got, err := f.svc.GetByID(context.Background(), r.ID)
	if err != nil || got.ID != r.ID {
		t.Fatalf("GetByID: %v", err)
	}
	if _, err := f.svc.GetByID(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func must(t *testing.T) func(Adoption, error) {
	return func(_ Adoption, err error) {
		t.Helper()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
}
