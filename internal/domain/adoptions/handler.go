package adoptions

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"cat-rescue/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes monta /adoptions y /me/adoptions.
func RegisterRoutes(r chi.Router, svc *Service) {
	r.With(middleware.RequireUser).Get("/me/adoptions", listMyAdoptionsHandler(svc))

	r.Route("/adoptions", func(ar chi.Router) {
		ar.With(middleware.RequireUser).Post("/", submitHandler(svc))

		ar.Group(func(admin chi.Router) {
			admin.Use(middleware.RequireAdmin)
			admin.Get("/", listAdoptionsHandler(svc))
			admin.Get("/pending", listPendingHandler(svc))
			admin.Get("/{adoptionID}", getAdoptionHandler(svc))
			admin.Put("/{adoptionID}/approve", approveHandler(svc))
			admin.Put("/{adoptionID}/complete", completeHandler(svc))
			admin.Put("/{adoptionID}/reject", rejectHandler(svc))
		})
	})
}

// UserRoutes cuelga /{userID}/adoptions bajo el router de /users.
func UserRoutes(svc *Service) func(chi.Router) {
	return func(ur chi.Router) {
		ur.Group(func(self chi.Router) {
			self.Use(middleware.RequireSelfOrAdmin("userID"))
			self.Get("/{userID}/adoptions", listUserAdoptionsHandler(svc))
			self.Get("/{userID}/adoptions/stats", userStatsHandler(svc))
		})
	}
}

// RegisterReportRoutes expone la vista anonimizada. guard valida el X-API-Token.
func RegisterReportRoutes(r chi.Router, rep *Reporter, guard func(http.Handler) http.Handler) {
	r.With(guard).Get("/health-data/anonymous-adoptions", anonymizedHandler(rep))
}

type submitRequest struct {
	CatID string `json:"cat_id"`
	Notes string `json:"notes"`
}

type rejectRequest struct {
	Reason string `json:"reason"`
}

type adoptionResponse struct {
	ID             string     `json:"id"`
	UserID         string     `json:"user_id"`
	CatID          string     `json:"cat_id"`
	Status         Status     `json:"status"`
	SubmittedAt    time.Time  `json:"submitted_at"`
	ApprovedAt     *time.Time `json:"approved_at,omitempty"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
	ApplicantNotes string     `json:"applicant_notes,omitempty"`
	AdminNotes     string     `json:"admin_notes,omitempty"`
	ProcessedBy    string     `json:"processed_by,omitempty"`
	TenantID       string     `json:"tenant_id,omitempty"`
}

type userStatsResponse struct {
	UserID              string `json:"user_id"`
	TotalApplications   int    `json:"total_applications"`
	CompletedAdoptions  int    `json:"completed_adoptions"`
	PendingApplications int    `json:"pending_applications"`
}

type anonymizedResponse struct {
	AdoptionDate   time.Time `json:"adoption_date"`
	CatBreed       string    `json:"cat_breed"`
	CatAge         *int      `json:"cat_age,omitempty"`
	LocationRegion string    `json:"location_region"`
	Status         Status    `json:"status"`
	TenantID       string    `json:"tenant_id,omitempty"`
}

// submitHandler godoc
// @Summary Enviar solicitud de adopción
// @Description Crea una solicitud PENDING para el usuario autenticado y reserva el gato.
// @Tags adoptions
// @Accept json
// @Produce json
// @Param payload body submitRequest true "Gato y notas"
// @Success 201 {object} adoptionResponse
// @Failure 400 {string} string "invalid json"
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "user / cat not found"
// @Failure 409 {string} string "cat unavailable"
// @Router /adoptions [post]
func submitHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req submitRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		a, err := svc.Submit(r.Context(), SubmitInput{
			UserID: claims.UserID,
			CatID:  req.CatID,
			Notes:  req.Notes,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toAdoptionResponse(a))
	}
}

// listAdoptionsHandler godoc
// @Summary Listar solicitudes (admin)
// @Tags adoptions
// @Produce json
// @Param status query string false "PENDING | APPROVED | COMPLETED | REJECTED | CANCELLED"
// @Param order query string false "recent = más recientes primero"
// @Success 200 {array} adoptionResponse
// @Failure 400 {string} string "status inválido"
// @Router /adoptions [get]
func listAdoptionsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw := strings.TrimSpace(r.URL.Query().Get("status"))
		if raw == "" {
			items, err := svc.ListAll(r.Context())
			if err != nil {
				writeError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, toAdoptionResponses(items))
			return
		}

		st, ok := ParseStatus(raw)
		if !ok {
			http.Error(w, "invalid status", http.StatusBadRequest)
			return
		}
		items, err := svc.ListByStatus(r.Context(), st, orderParam(r))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toAdoptionResponses(items))
	}
}

func listPendingHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var (
			items []Adoption
			err   error
		)
		if orderParam(r) == OrderSubmittedDesc {
			items, err = svc.ListPendingRecent(r.Context())
		} else {
			items, err = svc.ListPending(r.Context())
		}
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toAdoptionResponses(items))
	}
}

func getAdoptionHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := svc.GetByID(r.Context(), chi.URLParam(r, "adoptionID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toAdoptionResponse(a))
	}
}

// approveHandler godoc
// @Summary Aprobar solicitud (admin)
// @Tags adoptions
// @Produce json
// @Param adoptionID path string true "Adoption ID"
// @Success 200 {object} adoptionResponse
// @Failure 404 {string} string "adoption not found"
// @Failure 409 {string} string "invalid transition"
// @Router /adoptions/{adoptionID}/approve [put]
func approveHandler(svc *Service) http.HandlerFunc {
	return adminActionHandler(func(r *http.Request, adminID string) (Adoption, error) {
		return svc.Approve(r.Context(), chi.URLParam(r, "adoptionID"), adminID)
	})
}

// completeHandler godoc
// @Summary Completar adopción (admin)
// @Tags adoptions
// @Produce json
// @Param adoptionID path string true "Adoption ID"
// @Success 200 {object} adoptionResponse
// @Failure 404 {string} string "adoption not found"
// @Failure 409 {string} string "invalid transition"
// @Router /adoptions/{adoptionID}/complete [put]
func completeHandler(svc *Service) http.HandlerFunc {
	return adminActionHandler(func(r *http.Request, adminID string) (Adoption, error) {
		return svc.Complete(r.Context(), chi.URLParam(r, "adoptionID"), adminID)
	})
}

// rejectHandler godoc
// @Summary Rechazar solicitud (admin)
// @Description El motivo es obligatorio y queda en admin_notes. El gato vuelve a AVAILABLE.
// @Tags adoptions
// @Accept json
// @Produce json
// @Param adoptionID path string true "Adoption ID"
// @Param payload body rejectRequest true "Motivo"
// @Success 200 {object} adoptionResponse
// @Failure 400 {string} string "reason required"
// @Failure 404 {string} string "adoption not found"
// @Failure 409 {string} string "invalid transition"
// @Router /adoptions/{adoptionID}/reject [put]
func rejectHandler(svc *Service) http.HandlerFunc {
	return adminActionHandler(func(r *http.Request, adminID string) (Adoption, error) {
		var req rejectRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return Adoption{}, ErrBlankReason
		}
		return svc.Reject(r.Context(), chi.URLParam(r, "adoptionID"), adminID, req.Reason)
	})
}

func adminActionHandler(do func(r *http.Request, adminID string) (Adoption, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		a, err := do(r, claims.UserID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toAdoptionResponse(a))
	}
}

func listMyAdoptionsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		items, err := svc.ListByUser(r.Context(), claims.UserID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toAdoptionResponses(items))
	}
}

func listUserAdoptionsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListByUser(r.Context(), chi.URLParam(r, "userID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toAdoptionResponses(items))
	}
}

// userStatsHandler godoc
// @Summary Estadísticas de adopción de un usuario
// @Tags adoptions
// @Produce json
// @Param userID path string true "User ID"
// @Success 200 {object} userStatsResponse
// @Failure 404 {string} string "user not found"
// @Router /users/{userID}/adoptions/stats [get]
func userStatsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, err := svc.UserStats(r.Context(), chi.URLParam(r, "userID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, userStatsResponse{
			UserID:              st.UserID,
			TotalApplications:   st.TotalApplications,
			CompletedAdoptions:  st.CompletedAdoptions,
			PendingApplications: st.PendingApplications,
		})
	}
}

// anonymizedHandler godoc
// @Summary Adopciones completadas anonimizadas
// @Description Requiere X-API-Token válido. No expone identidad ni dirección exacta.
// @Tags health-data
// @Produce json
// @Param X-API-Token header string true "API token"
// @Success 200 {array} anonymizedResponse
// @Failure 401 {string} string "invalid api token"
// @Router /health-data/anonymous-adoptions [get]
func anonymizedHandler(rep *Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := rep.AnonymizedCompleted(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		out := make([]anonymizedResponse, 0, len(rows))
		for _, row := range rows {
			out = append(out, anonymizedResponse{
				AdoptionDate:   row.AdoptionDate,
				CatBreed:       row.CatBreed,
				CatAge:         row.CatAge,
				LocationRegion: row.LocationRegion,
				Status:         row.Status,
				TenantID:       row.TenantID,
			})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func orderParam(r *http.Request) Order {
	if strings.EqualFold(strings.TrimSpace(r.URL.Query().Get("order")), "recent") {
		return OrderSubmittedDesc
	}
	return OrderInserted
}

// writeError traduce los errores del motor a HTTP.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, ErrCatUnavailable), errors.Is(err, ErrInvalidTransition):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toAdoptionResponses(items []Adoption) []adoptionResponse {
	out := make([]adoptionResponse, 0, len(items))
	for _, a := range items {
		out = append(out, toAdoptionResponse(a))
	}
	return out
}

func toAdoptionResponse(a Adoption) adoptionResponse {
	return adoptionResponse{
		ID:             a.ID,
		UserID:         a.UserID,
		CatID:          a.CatID,
		Status:         a.Status,
		SubmittedAt:    a.SubmittedAt,
		ApprovedAt:     a.ApprovedAt,
		CompletedAt:    a.CompletedAt,
		ApplicantNotes: a.ApplicantNotes,
		AdminNotes:     a.AdminNotes,
		ProcessedBy:    a.ProcessedBy,
		TenantID:       a.TenantID,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
