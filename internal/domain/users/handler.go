package users

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"cat-rescue/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes monta /users y /me. sub permite a otros módulos colgar
// rutas bajo /users (ej. /users/{userID}/adoptions) sin montar dos veces el prefijo.
func RegisterRoutes(r chi.Router, svc *Service, sub ...func(chi.Router)) {
	r.With(middleware.RequireUser).Get("/me", meHandler(svc))

	r.Route("/users", func(ur chi.Router) {
		ur.With(middleware.RequireUser).Post("/", registerHandler(svc))
		ur.With(middleware.RequireAdmin).Get("/", listUsersHandler(svc))
		ur.With(middleware.RequireAdmin).Get("/{userID}", getUserHandler(svc))

		for _, fn := range sub {
			fn(ur)
		}
	})
}

type registerRequest struct {
	Email         string `json:"email"`
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	StreetAddress string `json:"street_address"`
	PostalCode    string `json:"postal_code"`
}

type userResponse struct {
	ID            string    `json:"id"`
	Email         string    `json:"email"`
	FirstName     string    `json:"first_name,omitempty"`
	LastName      string    `json:"last_name,omitempty"`
	StreetAddress string    `json:"street_address,omitempty"`
	PostalCode    string    `json:"postal_code,omitempty"`
	Role          string    `json:"role"`
	Enabled       bool      `json:"enabled"`
	TenantID      string    `json:"tenant_id,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// registerHandler godoc
// @Summary Registrar perfil del usuario autenticado
// @Description El ID, rol y tenant salen del token; el body trae los datos de contacto.
// @Tags users
// @Accept json
// @Produce json
// @Param payload body registerRequest true "Perfil"
// @Success 201 {object} userResponse
// @Failure 400 {string} string "invalid json / email inválido"
// @Failure 401 {string} string "unauthorized"
// @Failure 409 {string} string "user already exists"
// @Router /users [post]
func registerHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req registerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		u, err := svc.Register(r.Context(), RegisterInput{
			ID:            claims.UserID,
			Role:          claims.Role,
			TenantID:      claims.TenantID,
			Email:         req.Email,
			FirstName:     req.FirstName,
			LastName:      req.LastName,
			StreetAddress: req.StreetAddress,
			PostalCode:    req.PostalCode,
		})
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidInput):
				http.Error(w, "valid email required", http.StatusBadRequest)
			case errors.Is(err, ErrAlreadyExists):
				http.Error(w, "user already exists", http.StatusConflict)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusCreated, toUserResponse(u))
	}
}

func meHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		writeUser(w, r, svc, claims.UserID)
	}
}

func getUserHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeUser(w, r, svc, chi.URLParam(r, "userID"))
	}
}

func writeUser(w http.ResponseWriter, r *http.Request, svc *Service, id string) {
	u, err := svc.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			http.Error(w, "user not found", http.StatusNotFound)
			return
		}
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, toUserResponse(u))
}

// listUsersHandler godoc
// @Summary Listar usuarios (admin)
// @Tags users
// @Produce json
// @Param role query string false "ADMIN para listar solo administradores"
// @Success 200 {array} userResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Router /users [get]
func listUsersHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var (
			items []User
			err   error
		)
		if r.URL.Query().Get("role") == "ADMIN" {
			items, err = svc.ListAdmins(r.Context())
		} else {
			items, err = svc.List(r.Context())
		}
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]userResponse, 0, len(items))
		for _, u := range items {
			out = append(out, toUserResponse(u))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func toUserResponse(u User) userResponse {
	return userResponse{
		ID:            u.ID,
		Email:         u.Email,
		FirstName:     u.FirstName,
		LastName:      u.LastName,
		StreetAddress: u.StreetAddress,
		PostalCode:    u.PostalCode,
		Role:          string(u.Role),
		Enabled:       u.Enabled,
		TenantID:      u.TenantID,
		CreatedAt:     u.CreatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
