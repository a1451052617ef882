package matchinghandler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"carelink/internal/domain/auth"
	"carelink/internal/domain/matching"
	"carelink/internal/transport/http/api"
	"carelink/internal/transport/http/middleware"
	"carelink/internal/transport/http/shared"
)

type Handler struct {
	Service *matching.Service
}

func NewHandler(service *matching.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.With(middleware.RequirePermission(auth.PermMatchingRead)).Get("/matching", h.handleMatch)
}

func (h *Handler) handleMatch(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	reqID := middleware.GetRequestID(r.Context())
	query := r.URL.Query()

	v := shared.NewValidator()
	v.Required("clientId", query.Get("clientId"), "client id is required")
	date, _ := v.Date("date", query.Get("date"))
	v.TimeOfDay("startTime", query.Get("startTime"))
	v.TimeOfDay("endTime", query.Get("endTime"))
	if v.Reject(w, reqID) {
		return
	}

	matches, err := h.Service.MatchCaregivers(r.Context(), user.AgencyID, query.Get("clientId"), date,
		query.Get("startTime"), query.Get("endTime"))
	switch {
	case errors.Is(err, matching.ErrClientNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "client not found", reqID)
	case err != nil:
		api.Fail(w, http.StatusInternalServerError, "match_failed", "failed to rank caregivers", reqID)
	default:
		api.Success(w, matches, reqID)
	}
}
