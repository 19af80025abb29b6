package adoptions

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrCatUnavailable    = errors.New("cat unavailable")
	ErrInvalidTransition = errors.New("invalid transition")
	ErrInvalidInput      = errors.New("invalid input")
	ErrStorage           = errors.New("storage failure")

	// ErrActiveAdoptionExists lo devuelve el store cuando ya hay una
	// solicitud PENDING/APPROVED para el mismo gato.
	ErrActiveAdoptionExists = errors.New("active adoption already exists for cat")

	ErrBlankReason = fmt.Errorf("%w: rejection reason is required", ErrInvalidInput)
	ErrBlankAdmin  = fmt.Errorf("%w: admin id is required", ErrInvalidInput)
)

type Entity string

const (
	EntityUser     Entity = "user"
	EntityCat      Entity = "cat"
	EntityAdoption Entity = "adoption"
)

type NotFoundError struct {
	Entity Entity
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Entity, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

type CatUnavailableError struct {
	CatID  string
	Status string
}

func (e *CatUnavailableError) Error() string {
	return fmt.Sprintf("cat %q is not available for adoption (status %s)", e.CatID, e.Status)
}

func (e *CatUnavailableError) Is(target error) bool { return target == ErrCatUnavailable }

// TransitionError nombra el status requerido y el actual.
type TransitionError struct {
	AdoptionID string
	Required   Status
	Actual     Status
	Target     Status
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("adoption %q cannot move to %s: requires status %s, current status is %s",
		e.AdoptionID, e.Target, e.Required, e.Actual)
}

func (e *TransitionError) Is(target error) bool { return target == ErrInvalidTransition }

// StorageError envuelve cualquier falla de persistencia. Nunca se reintenta:
// quien llama asume que no hubo cambio de estado.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("adoptions %s: storage failure: %v", e.Op, e.Err)
}

func (e *StorageError) Is(target error) bool { return target == ErrStorage }

func (e *StorageError) Unwrap() error { return e.Err }

// isDomainError: errores que ya vienen tipados desde el motor.
func isDomainError(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrCatUnavailable) ||
		errors.Is(err, ErrInvalidTransition) ||
		errors.Is(err, ErrInvalidInput)
}
