package cats

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"cat-rescue/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/cats", func(cr chi.Router) {
		cr.Get("/", listCatsHandler(svc))
		cr.Get("/available", listAvailableCatsHandler(svc))
		cr.Get("/area", listCatsInAreaHandler(svc))
		cr.Get("/breed/{breedID}", listCatsByBreedHandler(svc))
		cr.Get("/{catID}", getCatHandler(svc))

		cr.With(middleware.RequireAdmin).Post("/", createCatHandler(svc))
	})
}

type createCatRequest struct {
	Name        string   `json:"name"`
	Age         *int     `json:"age"`
	Gender      string   `json:"gender"`
	Description string   `json:"description"`
	BreedID     string   `json:"breed_id"`
	ImageURL    string   `json:"image_url"`
	Address     string   `json:"address"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
}

type catResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Age         *int      `json:"age,omitempty"`
	Gender      string    `json:"gender,omitempty"`
	Description string    `json:"description,omitempty"`
	BreedID     string    `json:"breed_id,omitempty"`
	ImageURL    string    `json:"image_url,omitempty"`
	Address     string    `json:"address,omitempty"`
	Latitude    *float64  `json:"latitude,omitempty"`
	Longitude   *float64  `json:"longitude,omitempty"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// listCatsHandler godoc
// @Summary Listar gatos
// @Description Lista todos los gatos, opcionalmente filtrados por status (AVAILABLE, PENDING, ADOPTED).
// @Tags cats
// @Produce json
// @Param status query string false "AVAILABLE | PENDING | ADOPTED"
// @Success 200 {array} catResponse
// @Failure 400 {string} string "status inválido"
// @Router /cats [get]
func listCatsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var (
			items []Cat
			err   error
		)
		if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
			st, ok := ParseStatus(raw)
			if !ok {
				http.Error(w, "invalid status", http.StatusBadRequest)
				return
			}
			items, err = svc.ListByStatus(r.Context(), st)
		} else {
			items, err = svc.List(r.Context())
		}
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, toCatResponses(items))
	}
}

func listAvailableCatsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListAvailable(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, toCatResponses(items))
	}
}

// listCatsByBreedHandler godoc
// @Summary Gatos de una raza
// @Tags cats
// @Produce json
// @Param breedID path string true "Breed ID"
// @Success 200 {array} catResponse
// @Router /cats/breed/{breedID} [get]
func listCatsByBreedHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListByBreed(r.Context(), chi.URLParam(r, "breedID"))
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, "breed id required", http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, toCatResponses(items))
	}
}

// listCatsInAreaHandler godoc
// @Summary Gatos disponibles cerca de un punto
// @Description Caja lat/lon aproximada de radius km (default 10).
// @Tags cats
// @Produce json
// @Param lat query number true "Latitud"
// @Param lon query number true "Longitud"
// @Param radius query number false "Radio en km"
// @Success 200 {array} catResponse
// @Failure 400 {string} string "lat/lon/radius inválidos"
// @Router /cats/area [get]
func listCatsInAreaHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		lat, err := strconv.ParseFloat(strings.TrimSpace(q.Get("lat")), 64)
		if err != nil {
			http.Error(w, "invalid lat", http.StatusBadRequest)
			return
		}
		lon, err := strconv.ParseFloat(strings.TrimSpace(q.Get("lon")), 64)
		if err != nil {
			http.Error(w, "invalid lon", http.StatusBadRequest)
			return
		}
		radius := DefaultRadiusKm
		if raw := strings.TrimSpace(q.Get("radius")); raw != "" {
			if radius, err = strconv.ParseFloat(raw, 64); err != nil {
				http.Error(w, "invalid radius", http.StatusBadRequest)
				return
			}
		}

		items, err := svc.ListInArea(r.Context(), lat, lon, radius)
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, "lat/lon/radius out of range", http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, toCatResponses(items))
	}
}

func getCatHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := svc.GetByID(r.Context(), chi.URLParam(r, "catID"))
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				http.Error(w, "cat not found", http.StatusNotFound)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, toCatResponse(c))
	}
}

// createCatHandler godoc
// @Summary Registrar gato (admin)
// @Tags cats
// @Accept json
// @Produce json
// @Param payload body createCatRequest true "Datos del gato"
// @Success 201 {object} catResponse
// @Failure 400 {string} string "invalid json / reglas de negocio"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Router /cats [post]
func createCatHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createCatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		c, err := svc.Create(r.Context(), CreateInput{
			Name:        req.Name,
			Age:         req.Age,
			Gender:      req.Gender,
			Description: req.Description,
			BreedID:     req.BreedID,
			ImageURL:    req.ImageURL,
			Address:     req.Address,
			Latitude:    req.Latitude,
			Longitude:   req.Longitude,
		})
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusCreated, toCatResponse(c))
	}
}

func toCatResponses(items []Cat) []catResponse {
	out := make([]catResponse, 0, len(items))
	for _, c := range items {
		out = append(out, toCatResponse(c))
	}
	return out
}

func toCatResponse(c Cat) catResponse {
	return catResponse{
		ID:          c.ID,
		Name:        c.Name,
		Age:         c.Age,
		Gender:      c.Gender,
		Description: c.Description,
		BreedID:     c.BreedID,
		ImageURL:    c.ImageURL,
		Address:     c.Address,
		Latitude:    c.Latitude,
		Longitude:   c.Longitude,
		Status:      c.Status,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// writeJSON está duplicado en cada módulo a propósito (igual que en los demás handlers).
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
