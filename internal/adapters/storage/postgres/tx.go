package postgres

import (
	"context"
	"database/sql"

	"cat-rescue/internal/domain/adoptions"
)

// Transactor implementa adoptions.Transactor con BEGIN/COMMIT. Los repos
// que recibe fn leen por id con SELECT ... FOR UPDATE.
type Transactor struct {
	db *sql.DB
}

func NewTransactor(db *sql.DB) *Transactor {
	return &Transactor{db: db}
}

func (t *Transactor) WithinTx(ctx context.Context, fn func(ctx context.Context, repo adoptions.Repository, catDir adoptions.CatDirectory) error) error {
	tx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	// un panic en fn no puede dejar la conexión con los FOR UPDATE tomados
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(ctx, &AdoptionsRepo{q: tx, lock: true}, &CatsRepo{q: tx, lock: true}); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}
