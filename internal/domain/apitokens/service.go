package apitokens

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("api token not found")
	ErrInvalidToken = errors.New("invalid api token")
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

type GenerateInput struct {
	Organization string
	TTL          time.Duration // 0 = sin vencimiento
}

func (s *Service) Generate(ctx context.Context, in GenerateInput) (Token, error) {
	org := strings.TrimSpace(in.Organization)
	if org == "" || in.TTL < 0 {
		return Token{}, ErrInvalidInput
	}

	now := s.now()
	t := Token{
		ID:           uuid.NewString(),
		Token:        tokenPrefix + strings.ReplaceAll(uuid.NewString(), "-", ""),
		Organization: org,
		Active:       true,
		CreatedAt:    now,
	}
	if in.TTL > 0 {
		exp := now.Add(in.TTL)
		t.ExpiresAt = &exp
	}

	if err := s.repo.Create(ctx, t); err != nil {
		return Token{}, err
	}
	return t, nil
}

// Validate devuelve ErrInvalidToken si el valor está vacío, no existe,
// está inactivo o vencido.
func (s *Service) Validate(ctx context.Context, raw string) (Token, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Token{}, ErrInvalidToken
	}

	t, err := s.repo.GetByToken(ctx, raw)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Token{}, ErrInvalidToken
		}
		return Token{}, err
	}
	if !t.IsValid(s.now()) {
		return Token{}, ErrInvalidToken
	}
	return t, nil
}

func (s *Service) List(ctx context.Context) ([]Token, error) {
	return s.repo.List(ctx)
}
