package adoptions

import (
	"context"
	"errors"
	"strings"

	"cat-rescue/internal/domain/cats"
	"cat-rescue/internal/platform/metrics"
)

// transition describe un cambio de status guardado. approve, complete y
// reject son valores de este struct; no hay otro camino para mover una
// solicitud ya creada.
type transition struct {
	op             string
	from           Status
	to             Status
	catStatus      cats.Status
	stampApproved  bool
	stampCompleted bool
}

var (
	approveTransition = transition{
		op:            "approve",
		from:          StatusPending,
		to:            StatusApproved,
		catStatus:     cats.StatusPending,
		stampApproved: true,
	}
	completeTransition = transition{
		op:             "complete",
		from:           StatusApproved,
		to:             StatusCompleted,
		catStatus:      cats.StatusAdopted,
		stampCompleted: true,
	}
	rejectTransition = transition{
		op:        "reject",
		from:      StatusPending,
		to:        StatusRejected,
		catStatus: cats.StatusAvailable,
	}
)

// transition lee, valida y escribe dentro de una sola transacción. Si el
// guard falla no se persiste nada (ni la solicitud ni el gato).
func (s *Service) transition(ctx context.Context, adoptionID, adminID, notes string, t transition) (Adoption, error) {
	adoptionID = strings.TrimSpace(adoptionID)
	adminID = strings.TrimSpace(adminID)
	if adminID == "" {
		return Adoption{}, s.finish(t.op, ErrBlankAdmin)
	}
	if adoptionID == "" {
		return Adoption{}, s.finish(t.op, &NotFoundError{Entity: EntityAdoption, ID: adoptionID})
	}

	var out Adoption
	err := s.tx.WithinTx(ctx, func(ctx context.Context, repo Repository, catDir CatDirectory) error {
		a, err := repo.GetByID(ctx, adoptionID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return &NotFoundError{Entity: EntityAdoption, ID: adoptionID}
			}
			return err
		}

		if a.Status != t.from {
			return &TransitionError{
				AdoptionID: a.ID,
				Required:   t.from,
				Actual:     a.Status,
				Target:     t.to,
			}
		}

		now := s.now()
		a.Status = t.to
		a.ProcessedBy = adminID
		a.UpdatedAt = now
		if t.stampApproved {
			a.ApprovedAt = &now
		}
		if t.stampCompleted {
			a.CompletedAt = &now
		}
		if notes != "" {
			a.AdminNotes = notes
		}

		saved, err := repo.Save(ctx, a)
		if err != nil {
			return err
		}
		if _, err := catDir.SetStatus(ctx, a.CatID, t.catStatus); err != nil {
			return catErr(err, a.CatID)
		}

		out = saved
		return nil
	})
	if err != nil {
		return Adoption{}, s.finish(t.op, err)
	}

	s.notify(ctx, out.CatID, t.catStatus)
	s.log.Info("adoption "+t.op, map[string]any{
		"adoption_id":  out.ID,
		"cat_id":       out.CatID,
		"processed_by": out.ProcessedBy,
		"status":       string(out.Status),
	})
	metrics.RecordTransition(t.op, "ok")
	return out, nil
}
