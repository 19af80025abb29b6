package breeds

import (
	"context"
	"errors"
	"strings"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("breed not found")
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Save crea o reemplaza una raza. La ingesta masiva desde el catálogo
// externo no vive acá; esto cubre la carga manual del admin.
func (s *Service) Save(ctx context.Context, b Breed) (Breed, error) {
	b.ID = strings.ToLower(strings.TrimSpace(b.ID))
	b.Name = strings.TrimSpace(b.Name)
	if b.ID == "" || b.Name == "" {
		return Breed{}, ErrInvalidInput
	}
	b.Origin = strings.TrimSpace(b.Origin)
	b.Description = strings.TrimSpace(b.Description)
	b.Temperament = strings.TrimSpace(b.Temperament)

	if err := s.repo.Upsert(ctx, b); err != nil {
		return Breed{}, err
	}
	return b, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Breed, error) {
	id = strings.ToLower(strings.TrimSpace(id))
	if id == "" {
		return Breed{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Breed, error) {
	return s.repo.List(ctx)
}

// Search sin filtros equivale a List.
func (s *Service) Search(ctx context.Context, f SearchFilter) ([]Breed, error) {
	f.Name = strings.TrimSpace(f.Name)
	f.Origin = strings.TrimSpace(f.Origin)
	if f.Name == "" && f.Origin == "" {
		return s.repo.List(ctx)
	}
	return s.repo.Search(ctx, f)
}
