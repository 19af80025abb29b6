package cats

import (
	"context"
	"errors"
	"math"
	"strings"
	"sync/atomic"
	"time"

	"cat-rescue/internal/platform/logger"
	"cat-rescue/internal/platform/metrics"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("cat not found")
)

type Service struct {
	repo  Repository
	cache AvailableCache
	log   logger.Logger
	now   func() time.Time

	// gen sube en cada invalidación; un listado leído antes de una
	// invalidación no se escribe al cache.
	gen atomic.Uint64
}

// DefaultRadiusKm es el radio de búsqueda por zona cuando no se indica.
const DefaultRadiusKm = 10.0

// kmPerDegree: aproximación de km por grado de latitud.
const kmPerDegree = 111.0

type Option func(*Service)

// WithCache activa el cache de disponibles (redis). Sin cache, cada listado va al repo.
func WithCache(c AvailableCache) Option {
	return func(s *Service) { s.cache = c }
}

func WithLogger(l logger.Logger) Option {
	return func(s *Service) { s.log = l }
}

func NewService(repo Repository, opts ...Option) *Service {
	s := &Service{
		repo: repo,
		log:  logger.NewNop(),
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type CreateInput struct {
	Name        string
	Age         *int
	Gender      string
	Description string
	BreedID     string
	ImageURL    string
	Address     string
	Latitude    *float64
	Longitude   *float64
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Cat, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return Cat{}, ErrInvalidInput
	}
	if in.Age != nil && *in.Age < 0 {
		return Cat{}, ErrInvalidInput
	}
	if in.Latitude != nil && (*in.Latitude < -90 || *in.Latitude > 90) {
		return Cat{}, ErrInvalidInput
	}
	if in.Longitude != nil && (*in.Longitude < -180 || *in.Longitude > 180) {
		return Cat{}, ErrInvalidInput
	}

	now := s.now()
	c := Cat{
		ID:          uuid.NewString(),
		Name:        name,
		Age:         in.Age,
		Gender:      strings.TrimSpace(in.Gender),
		Description: strings.TrimSpace(in.Description),
		BreedID:     strings.ToLower(strings.TrimSpace(in.BreedID)),
		ImageURL:    strings.TrimSpace(in.ImageURL),
		Address:     strings.TrimSpace(in.Address),
		Latitude:    in.Latitude,
		Longitude:   in.Longitude,
		Status:      StatusAvailable,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return Cat{}, err
	}
	s.invalidate(ctx)
	return c, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Cat, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Cat{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Cat, error) {
	return s.repo.List(ctx)
}

func (s *Service) ListByStatus(ctx context.Context, status Status) ([]Cat, error) {
	if status == StatusAvailable {
		return s.ListAvailable(ctx)
	}
	return s.repo.ListByStatus(ctx, status)
}

// ListByBreed devuelve los gatos de una raza, en cualquier status.
func (s *Service) ListByBreed(ctx context.Context, breedID string) ([]Cat, error) {
	breedID = strings.ToLower(strings.TrimSpace(breedID))
	if breedID == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByBreed(ctx, breedID)
}

// ListInArea busca gatos disponibles dentro de una caja de radiusKm alrededor
// del punto. Es una aproximación: los bordes de la caja quedan a más de
// radiusKm en diagonal.
func (s *Service) ListInArea(ctx context.Context, lat, lon, radiusKm float64) ([]Cat, error) {
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return nil, ErrInvalidInput
	}
	if radiusKm <= 0 || math.IsNaN(radiusKm) || math.IsInf(radiusKm, 0) {
		return nil, ErrInvalidInput
	}
	return s.repo.ListInArea(ctx, BoundingBoxAround(lat, lon, radiusKm))
}

// BoundingBoxAround arma la caja lat/lon de radiusKm alrededor del punto.
// Cerca de los polos el delta de longitud se abre a todo el rango.
func BoundingBoxAround(lat, lon, radiusKm float64) BoundingBox {
	latDelta := radiusKm / kmPerDegree

	lonDelta := 180.0
	if cos := math.Cos(lat * math.Pi / 180); cos > 1e-9 {
		lonDelta = math.Min(180, radiusKm/(kmPerDegree*cos))
	}

	return BoundingBox{
		MinLat: lat - latDelta,
		MaxLat: lat + latDelta,
		MinLon: lon - lonDelta,
		MaxLon: lon + lonDelta,
	}
}

// ListAvailable lee del cache si existe; un cache caído no rompe el listado.
func (s *Service) ListAvailable(ctx context.Context) ([]Cat, error) {
	if s.cache != nil {
		items, ok, err := s.cache.GetAvailable(ctx)
		switch {
		case err != nil:
			s.log.Warn("available cats cache read failed", map[string]any{"err": err})
		case ok:
			metrics.RecordCacheLookup(true)
			return items, nil
		default:
			metrics.RecordCacheLookup(false)
		}
	}

	gen := s.gen.Load()
	items, err := s.repo.ListByStatus(ctx, StatusAvailable)
	if err != nil {
		return nil, err
	}

	if s.cache != nil && s.gen.Load() == gen {
		if err := s.cache.SetAvailable(ctx, items); err != nil {
			s.log.Warn("available cats cache write failed", map[string]any{"err": err})
		}
	}
	return items, nil
}

// CatStatusChanged lo llama el motor de adopciones después de commitear.
func (s *Service) CatStatusChanged(ctx context.Context, catID string, status Status) {
	s.log.Debug("cat status changed", map[string]any{"cat_id": catID, "status": string(status)})
	s.invalidate(ctx)
}

func (s *Service) invalidate(ctx context.Context) {
	s.gen.Add(1)
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateAvailable(ctx); err != nil {
		s.log.Warn("available cats cache invalidation failed", map[string]any{"err": err})
	}
}
