package breeds

import (
	"encoding/json"
	"errors"
	"net/http"

	"cat-rescue/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/breeds", func(br chi.Router) {
		br.Get("/", listBreedsHandler(svc))
		br.Get("/search", searchBreedsHandler(svc))
		br.Get("/{breedID}", getBreedHandler(svc))
		br.With(middleware.RequireAdmin).Post("/", saveBreedHandler(svc))
	})
}

type breedRequest struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Origin       string `json:"origin"`
	Description  string `json:"description"`
	Temperament  string `json:"temperament"`
	WikipediaURL string `json:"wikipedia_url"`
	ImageURL     string `json:"image_url"`
}

type breedResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Origin       string `json:"origin,omitempty"`
	Description  string `json:"description,omitempty"`
	Temperament  string `json:"temperament,omitempty"`
	WikipediaURL string `json:"wikipedia_url,omitempty"`
	ImageURL     string `json:"image_url,omitempty"`
}

// listBreedsHandler godoc
// @Summary Listar razas
// @Tags breeds
// @Produce json
// @Success 200 {array} breedResponse
// @Router /breeds [get]
func listBreedsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		out := make([]breedResponse, 0, len(items))
		for _, b := range items {
			out = append(out, toBreedResponse(b))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// searchBreedsHandler godoc
// @Summary Buscar razas
// @Tags breeds
// @Produce json
// @Param name query string false "Parte del nombre"
// @Param origin query string false "Parte del origen"
// @Success 200 {array} breedResponse
// @Router /breeds/search [get]
func searchBreedsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		items, err := svc.Search(r.Context(), SearchFilter{
			Name:   q.Get("name"),
			Origin: q.Get("origin"),
		})
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		out := make([]breedResponse, 0, len(items))
		for _, b := range items {
			out = append(out, toBreedResponse(b))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func getBreedHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b, err := svc.GetByID(r.Context(), chi.URLParam(r, "breedID"))
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				http.Error(w, "breed not found", http.StatusNotFound)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, toBreedResponse(b))
	}
}

func saveBreedHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req breedRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		b, err := svc.Save(r.Context(), Breed{
			ID:           req.ID,
			Name:         req.Name,
			Origin:       req.Origin,
			Description:  req.Description,
			Temperament:  req.Temperament,
			WikipediaURL: req.WikipediaURL,
			ImageURL:     req.ImageURL,
		})
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, "id and name required", http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusCreated, toBreedResponse(b))
	}
}

func toBreedResponse(b Breed) breedResponse {
	return breedResponse{
		ID:           b.ID,
		Name:         b.Name,
		Origin:       b.Origin,
		Description:  b.Description,
		Temperament:  b.Temperament,
		WikipediaURL: b.WikipediaURL,
		ImageURL:     b.ImageURL,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
