package memory

import (
	"context"
	"sync"

	"cat-rescue/internal/domain/adoptions"
	"cat-rescue/internal/domain/cats"

	"github.com/google/uuid"
)

// Transactor implementa adoptions.Transactor en memoria: un mutex serializa
// las unidades de trabajo y las escrituras quedan staged hasta que fn
// termina sin error.
type Transactor struct {
	mu        sync.Mutex
	adoptions *AdoptionRepo
	cats      *CatRepo
}

func NewTransactor(a *AdoptionRepo, c *CatRepo) *Transactor {
	return &Transactor{adoptions: a, cats: c}
}

func (t *Transactor) WithinTx(ctx context.Context, fn func(ctx context.Context, repo adoptions.Repository, catDir adoptions.CatDirectory) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	atw := &adoptionTx{base: t.adoptions, staged: map[string]adoptions.Adoption{}}
	ctw := &catTx{base: t.cats, staged: map[string]cats.Cat{}}

	if err := fn(ctx, atw, ctw); err != nil {
		return err
	}

	return t.commit(atw, ctw)
}

// commit publica adopciones y gatos con los dos locks tomados, así ningún
// lector ve la solicitud nueva con el gato todavía en su status anterior.
// Orden de locks: adopciones, después gatos.
func (t *Transactor) commit(atw *adoptionTx, ctw *catTx) error {
	t.adoptions.mu.Lock()
	defer t.adoptions.mu.Unlock()
	t.cats.mu.Lock()
	defer t.cats.mu.Unlock()

	if err := t.adoptions.applyLocked(atw.staged, atw.inserted); err != nil {
		return err
	}
	t.cats.applyLocked(ctw.staged)
	return nil
}

// adoptionTx ve el estado base más lo staged en esta transacción.
type adoptionTx struct {
	base     *AdoptionRepo
	staged   map[string]adoptions.Adoption
	inserted []string
}

func (tx *adoptionTx) Save(ctx context.Context, a adoptions.Adoption) (adoptions.Adoption, error) {
	view := tx.view()

	if a.ID != "" {
		if _, exists := view[a.ID]; !exists {
			return adoptions.Adoption{}, adoptions.ErrNotFound
		}
	}
	if a.Status.IsActive() && activeConflict(view, a) {
		return adoptions.Adoption{}, adoptions.ErrActiveAdoptionExists
	}

	if a.ID == "" {
		a.ID = uuid.NewString()
		tx.inserted = append(tx.inserted, a.ID)
	}
	tx.staged[a.ID] = a
	return a, nil
}

func (tx *adoptionTx) GetByID(ctx context.Context, id string) (adoptions.Adoption, error) {
	if a, ok := tx.staged[id]; ok {
		return a, nil
	}
	return tx.base.GetByID(ctx, id)
}

func (tx *adoptionTx) ListByStatus(ctx context.Context, status adoptions.Status, order adoptions.Order) ([]adoptions.Adoption, error) {
	return byStatus(tx.list(), status, order), nil
}

func (tx *adoptionTx) ListByUser(ctx context.Context, userID string) ([]adoptions.Adoption, error) {
	return byUser(tx.list(), userID), nil
}

func (tx *adoptionTx) ListAll(ctx context.Context) ([]adoptions.Adoption, error) {
	return tx.list(), nil
}

func (tx *adoptionTx) CountCompletedByUser(ctx context.Context, userID string) (int, error) {
	return countCompleted(tx.list(), userID), nil
}

func (tx *adoptionTx) list() []adoptions.Adoption {
	out := tx.base.snapshot()
	for i, a := range out {
		if s, ok := tx.staged[a.ID]; ok {
			out[i] = s
		}
	}
	for _, id := range tx.inserted {
		out = append(out, tx.staged[id])
	}
	return out
}

func (tx *adoptionTx) view() map[string]adoptions.Adoption {
	items := tx.list()
	m := make(map[string]adoptions.Adoption, len(items))
	for _, a := range items {
		m[a.ID] = a
	}
	return m
}

type catTx struct {
	base   *CatRepo
	staged map[string]cats.Cat
}

func (tx *catTx) GetByID(ctx context.Context, id string) (cats.Cat, error) {
	if c, ok := tx.staged[id]; ok {
		return c, nil
	}
	return tx.base.GetByID(ctx, id)
}

func (tx *catTx) SetStatus(ctx context.Context, id string, status cats.Status) (cats.Cat, error) {
	c, err := tx.GetByID(ctx, id)
	if err != nil {
		return cats.Cat{}, err
	}
	c.Status = status
	c.UpdatedAt = tx.base.now()
	tx.staged[id] = c
	return c, nil
}
