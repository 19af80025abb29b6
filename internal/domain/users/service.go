package users

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"cat-rescue/internal/ports/auth"
)

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrNotFound      = errors.New("user not found")
	ErrAlreadyExists = errors.New("user already exists")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type RegisterInput struct {
	// ID, Role y TenantID vienen de los claims del caller, no del body.
	ID       string
	Role     auth.Role
	TenantID string

	Email         string
	FirstName     string
	LastName      string
	StreetAddress string
	PostalCode    string
}

// Register da de alta el perfil del usuario autenticado.
func (s *Service) Register(ctx context.Context, in RegisterInput) (User, error) {
	id := strings.TrimSpace(in.ID)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if id == "" || email == "" {
		return User{}, ErrInvalidInput
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return User{}, ErrInvalidInput
	}

	role := auth.ParseRole(string(in.Role))

	now := s.now()
	u := User{
		ID:            id,
		Email:         email,
		FirstName:     strings.TrimSpace(in.FirstName),
		LastName:      strings.TrimSpace(in.LastName),
		StreetAddress: strings.TrimSpace(in.StreetAddress),
		PostalCode:    strings.TrimSpace(in.PostalCode),
		Role:          role,
		Enabled:       true,
		TenantID:      strings.TrimSpace(in.TenantID),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return User{}, err
	}
	return u, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (User, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return User{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]User, error) {
	return s.repo.List(ctx)
}

func (s *Service) ListAdmins(ctx context.Context) ([]User, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]User, 0)
	for _, u := range all {
		if u.IsAdmin() {
			out = append(out, u)
		}
	}
	return out, nil
}
