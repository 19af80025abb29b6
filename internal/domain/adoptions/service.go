package adoptions

import (
	"context"
	"errors"
	"strings"
	"time"

	"cat-rescue/internal/domain/cats"
	"cat-rescue/internal/domain/users"
	"cat-rescue/internal/platform/logger"
	"cat-rescue/internal/platform/metrics"
)

// Service es el motor del ciclo de vida de una adopción. No hace
// autorización: approve/complete/reject asumen un admin ya verificado.
type Service struct {
	repo     Repository
	tx       Transactor
	users    UserDirectory
	observer CatStatusObserver
	log      logger.Logger
	now      func() time.Time
}

type Option func(*Service)

func WithObserver(o CatStatusObserver) Option {
	return func(s *Service) { s.observer = o }
}

func WithLogger(l logger.Logger) Option {
	return func(s *Service) { s.log = l }
}

func NewService(repo Repository, tx Transactor, userDir UserDirectory, opts ...Option) *Service {
	s := &Service{
		repo:  repo,
		tx:    tx,
		users: userDir,
		log:   logger.NewNop(),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type SubmitInput struct {
	UserID string
	CatID  string
	Notes  string
}

// Submit crea la solicitud PENDING y pasa el gato de AVAILABLE a PENDING
// en la misma transacción.
func (s *Service) Submit(ctx context.Context, in SubmitInput) (Adoption, error) {
	const op = "submit"

	userID := strings.TrimSpace(in.UserID)
	catID := strings.TrimSpace(in.CatID)

	u, err := s.lookupUser(ctx, userID)
	if err != nil {
		return Adoption{}, s.finish(op, err)
	}

	var out Adoption
	err = s.tx.WithinTx(ctx, func(ctx context.Context, repo Repository, catDir CatDirectory) error {
		c, err := lookupCat(ctx, catDir, catID)
		if err != nil {
			return err
		}
		if !c.IsAvailable() {
			return &CatUnavailableError{CatID: c.ID, Status: string(c.Status)}
		}

		now := s.now()
		saved, err := repo.Save(ctx, Adoption{
			UserID:         u.ID,
			CatID:          c.ID,
			Status:         StatusPending,
			SubmittedAt:    now,
			ApplicantNotes: strings.TrimSpace(in.Notes),
			TenantID:       u.TenantID,
			UpdatedAt:      now,
		})
		if err != nil {
			if errors.Is(err, ErrActiveAdoptionExists) {
				return &CatUnavailableError{CatID: c.ID, Status: string(c.Status)}
			}
			return err
		}

		if _, err := catDir.SetStatus(ctx, c.ID, cats.StatusPending); err != nil {
			return catErr(err, c.ID)
		}

		out = saved
		return nil
	})
	if err != nil {
		return Adoption{}, s.finish(op, err)
	}

	s.notify(ctx, out.CatID, cats.StatusPending)
	s.log.Info("adoption submitted", map[string]any{
		"adoption_id": out.ID,
		"user_id":     out.UserID,
		"cat_id":      out.CatID,
	})
	metrics.RecordTransition(op, "ok")
	return out, nil
}

func (s *Service) Approve(ctx context.Context, adoptionID, adminID string) (Adoption, error) {
	return s.transition(ctx, adoptionID, adminID, "", approveTransition)
}

func (s *Service) Complete(ctx context.Context, adoptionID, adminID string) (Adoption, error) {
	return s.transition(ctx, adoptionID, adminID, "", completeTransition)
}

// Reject exige motivo; sin motivo no se toca el motor.
func (s *Service) Reject(ctx context.Context, adoptionID, adminID, reason string) (Adoption, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return Adoption{}, s.finish(rejectTransition.op, ErrBlankReason)
	}
	return s.transition(ctx, adoptionID, adminID, reason, rejectTransition)
}

func (s *Service) GetByID(ctx context.Context, id string) (Adoption, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Adoption{}, &NotFoundError{Entity: EntityAdoption, ID: id}
	}
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Adoption{}, &NotFoundError{Entity: EntityAdoption, ID: id}
		}
		return Adoption{}, &StorageError{Op: "get", Err: err}
	}
	return a, nil
}

func (s *Service) ListPending(ctx context.Context) ([]Adoption, error) {
	return s.ListByStatus(ctx, StatusPending, OrderInserted)
}

// ListPendingRecent: pendientes, más recientes primero (vista del panel admin).
func (s *Service) ListPendingRecent(ctx context.Context) ([]Adoption, error) {
	return s.ListByStatus(ctx, StatusPending, OrderSubmittedDesc)
}

func (s *Service) ListByStatus(ctx context.Context, status Status, order Order) ([]Adoption, error) {
	items, err := s.repo.ListByStatus(ctx, status, order)
	if err != nil {
		return nil, &StorageError{Op: "list", Err: err}
	}
	return items, nil
}

func (s *Service) ListByUser(ctx context.Context, userID string) ([]Adoption, error) {
	items, err := s.repo.ListByUser(ctx, strings.TrimSpace(userID))
	if err != nil {
		return nil, &StorageError{Op: "list", Err: err}
	}
	return items, nil
}

func (s *Service) ListAll(ctx context.Context) ([]Adoption, error) {
	items, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, &StorageError{Op: "list", Err: err}
	}
	return items, nil
}

func (s *Service) CompletedCountForUser(ctx context.Context, userID string) (int, error) {
	n, err := s.repo.CountCompletedByUser(ctx, strings.TrimSpace(userID))
	if err != nil {
		return 0, &StorageError{Op: "count", Err: err}
	}
	return n, nil
}

// UserStats devuelve NotFoundError si el usuario no existe.
func (s *Service) UserStats(ctx context.Context, userID string) (UserStats, error) {
	u, err := s.lookupUser(ctx, strings.TrimSpace(userID))
	if err != nil {
		if isDomainError(err) {
			return UserStats{}, err
		}
		return UserStats{}, &StorageError{Op: "stats", Err: err}
	}

	items, err := s.ListByUser(ctx, u.ID)
	if err != nil {
		return UserStats{}, err
	}

	st := UserStats{UserID: u.ID, TotalApplications: len(items)}
	for _, a := range items {
		switch a.Status {
		case StatusCompleted:
			st.CompletedAdoptions++
		case StatusPending:
			st.PendingApplications++
		}
	}
	return st, nil
}

func (s *Service) lookupUser(ctx context.Context, id string) (users.User, error) {
	if id == "" {
		return users.User{}, &NotFoundError{Entity: EntityUser, ID: id}
	}
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return users.User{}, &NotFoundError{Entity: EntityUser, ID: id}
		}
		return users.User{}, err
	}
	return u, nil
}

func lookupCat(ctx context.Context, catDir CatDirectory, id string) (cats.Cat, error) {
	if id == "" {
		return cats.Cat{}, &NotFoundError{Entity: EntityCat, ID: id}
	}
	c, err := catDir.GetByID(ctx, id)
	if err != nil {
		return cats.Cat{}, catErr(err, id)
	}
	return c, nil
}

func catErr(err error, id string) error {
	if errors.Is(err, cats.ErrNotFound) {
		return &NotFoundError{Entity: EntityCat, ID: id}
	}
	return err
}

func (s *Service) notify(ctx context.Context, catID string, st cats.Status) {
	if s.observer != nil {
		s.observer.CatStatusChanged(ctx, catID, st)
	}
}

// finish clasifica el error, lo cuenta y loguea las fallas de storage.
// Lo que no es un error de dominio termina como StorageError.
func (s *Service) finish(op string, err error) error {
	if !isDomainError(err) {
		var se *StorageError
		if !errors.As(err, &se) {
			err = &StorageError{Op: op, Err: err}
		}
	}

	outcome := "storage_error"
	switch {
	case errors.Is(err, ErrNotFound):
		outcome = "not_found"
	case errors.Is(err, ErrCatUnavailable), errors.Is(err, ErrInvalidTransition):
		outcome = "conflict"
	case errors.Is(err, ErrInvalidInput):
		outcome = "invalid"
	}
	metrics.RecordTransition(op, outcome)

	if outcome == "storage_error" {
		s.log.Error("adoption operation failed", map[string]any{"op": op, "err": err})
	}
	return err
}
