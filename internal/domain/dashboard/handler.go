package dashboard

import (
	"encoding/json"
	"net/http"

	"cat-rescue/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.With(middleware.RequireAdmin).Get("/dashboard/stats", statsHandler(svc))
}

type statsResponse struct {
	TotalCats          int `json:"total_cats"`
	AvailableCats      int `json:"available_cats"`
	AdoptedCats        int `json:"adopted_cats"`
	TotalUsers         int `json:"total_users"`
	AdminUsers         int `json:"admin_users"`
	TotalAdoptions     int `json:"total_adoptions"`
	PendingAdoptions   int `json:"pending_adoptions"`
	CompletedAdoptions int `json:"completed_adoptions"`
}

// statsHandler godoc
// @Summary Estadísticas del panel (admin)
// @Tags dashboard
// @Produce json
// @Success 200 {object} statsResponse
// @Failure 403 {string} string "forbidden"
// @Router /dashboard/stats [get]
func statsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, err := svc.Stats(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, statsResponse{
			TotalCats:          st.TotalCats,
			AvailableCats:      st.AvailableCats,
			AdoptedCats:        st.AdoptedCats,
			TotalUsers:         st.TotalUsers,
			AdminUsers:         st.AdminUsers,
			TotalAdoptions:     st.TotalAdoptions,
			PendingAdoptions:   st.PendingAdoptions,
			CompletedAdoptions: st.CompletedAdoptions,
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
