package adoptions

import (
	"strings"
	"time"
)

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusApproved  Status = "APPROVED"
	StatusCompleted Status = "COMPLETED"
	StatusRejected  Status = "REJECTED"
	// StatusCancelled está reservado: ninguna operación del motor llega a él.
	StatusCancelled Status = "CANCELLED"
)

func ParseStatus(s string) (Status, bool) {
	switch st := Status(strings.ToUpper(strings.TrimSpace(s))); st {
	case StatusPending, StatusApproved, StatusCompleted, StatusRejected, StatusCancelled:
		return st, true
	default:
		return "", false
	}
}

// IsActive: PENDING o APPROVED. Como mucho una solicitud activa por gato.
func (s Status) IsActive() bool {
	return s == StatusPending || s == StatusApproved
}

func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusRejected || s == StatusCancelled
}

// Order para los listados. OrderInserted es el default.
type Order int

const (
	OrderInserted Order = iota
	OrderSubmittedDesc
)

// Adoption es la solicitud de un usuario para adoptar un gato.
type Adoption struct {
	ID string

	UserID string
	CatID  string

	Status Status

	SubmittedAt time.Time
	ApprovedAt  *time.Time // presente si pasó por APPROVED
	CompletedAt *time.Time // presente solo si COMPLETED

	ApplicantNotes string
	AdminNotes     string

	// ProcessedBy es el admin de la última transición; vacío hasta la primera.
	ProcessedBy string

	// TenantID se copia del solicitante al crear y no cambia más.
	TenantID string

	UpdatedAt time.Time
}

// UserStats resume el historial de un solicitante.
type UserStats struct {
	UserID              string
	TotalApplications   int
	CompletedAdoptions  int
	PendingApplications int
}

// AnonymizedAdoption es la fila exportada a terceros: sin identidad,
// email ni dirección exacta del adoptante.
type AnonymizedAdoption struct {
	AdoptionDate   time.Time
	CatBreed       string
	CatAge         *int
	LocationRegion string
	Status         Status
	TenantID       string
}
