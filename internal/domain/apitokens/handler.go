package apitokens

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"cat-rescue/internal/middleware"

	"github.com/go-chi/chi/v5"
)

const HeaderName = "X-API-Token"

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/api-tokens", func(tr chi.Router) {
		tr.Use(middleware.RequireAdmin)
		tr.Post("/", generateHandler(svc))
		tr.Get("/", listHandler(svc))
	})
}

// RequireToken corta con 401 si el header X-API-Token no es válido.
func RequireToken(svc *Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, err := svc.Validate(r.Context(), r.Header.Get(HeaderName)); err != nil {
				if errors.Is(err, ErrInvalidToken) {
					http.Error(w, "invalid api token", http.StatusUnauthorized)
					return
				}
				http.Error(w, "internal error", http.StatusInternalServerError)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

type generateRequest struct {
	Organization string `json:"organization"`
	TTLHours     int    `json:"ttl_hours"`
}

type tokenResponse struct {
	ID           string     `json:"id"`
	Token        string     `json:"token"`
	Organization string     `json:"organization"`
	Active       bool       `json:"active"`
	CreatedAt    time.Time  `json:"created_at"`
	ExpiresAt    *time.Time `json:"expires_at,omitempty"`
}

// generateHandler godoc
// @Summary Generar API token (admin)
// @Tags api-tokens
// @Accept json
// @Produce json
// @Param payload body generateRequest true "Organización y vigencia"
// @Success 201 {object} tokenResponse
// @Failure 400 {string} string "organization required"
// @Router /api-tokens [post]
func generateHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req generateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		t, err := svc.Generate(r.Context(), GenerateInput{
			Organization: req.Organization,
			TTL:          time.Duration(req.TTLHours) * time.Hour,
		})
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, "organization required", http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusCreated, toTokenResponse(t))
	}
}

func listHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		out := make([]tokenResponse, 0, len(items))
		for _, t := range items {
			out = append(out, toTokenResponse(t))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func toTokenResponse(t Token) tokenResponse {
	return tokenResponse{
		ID:           t.ID,
		Token:        t.Token,
		Organization: t.Organization,
		Active:       t.Active,
		CreatedAt:    t.CreatedAt,
		ExpiresAt:    t.ExpiresAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
