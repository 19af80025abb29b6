package cats

import (
	"strings"
	"time"
)

// Status de disponibilidad. Mientras hay una adopción activa, solo el motor
// de adopciones lo modifica.
type Status string

const (
	StatusAvailable Status = "AVAILABLE"
	StatusPending   Status = "PENDING"
	StatusAdopted   Status = "ADOPTED"
)

func ParseStatus(s string) (Status, bool) {
	switch Status(strings.ToUpper(strings.TrimSpace(s))) {
	case StatusAvailable:
		return StatusAvailable, true
	case StatusPending:
		return StatusPending, true
	case StatusAdopted:
		return StatusAdopted, true
	default:
		return "", false
	}
}

type Cat struct {
	ID string

	Name        string
	Age         *int
	Gender      string
	Description string
	BreedID     string // vacío = raza desconocida
	ImageURL    string

	Address   string
	Latitude  *float64
	Longitude *float64

	Status Status

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (c Cat) IsAvailable() bool {
	return c.Status == StatusAvailable
}

// BoundingBox es un rectángulo lat/lon, bordes incluidos.
type BoundingBox struct {
	MinLat, MaxLat float64
	MinLon, MaxLon float64
}

// Contains es false para gatos sin coordenadas.
func (b BoundingBox) Contains(c Cat) bool {
	if c.Latitude == nil || c.Longitude == nil {
		return false
	}
	lat, lon := *c.Latitude, *c.Longitude
	return lat >= b.MinLat && lat <= b.MaxLat && lon >= b.MinLon && lon <= b.MaxLon
}
