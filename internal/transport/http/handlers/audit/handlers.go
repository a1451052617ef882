package audithandler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"carelink/internal/domain/audit"
	"carelink/internal/domain/auth"
	"carelink/internal/transport/http/api"
	"carelink/internal/transport/http/middleware"
	"carelink/internal/transport/http/shared"
)

type Handler struct {
	Service *audit.Service
}

func NewHandler(service *audit.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.With(middleware.RequirePermission(auth.PermAuditRead)).Get("/audit-events", h.handleList)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	reqID := middleware.GetRequestID(r.Context())
	query := r.URL.Query()

	filter := audit.Filter{
		Action:     query.Get("action"),
		EntityType: query.Get("entityType"),
		ActorUser:  query.Get("actorUserId"),
	}
	page := shared.ParsePagination(r, 50, 200)
	includeDetails := query.Get("details") == "true"

	total, err := h.Service.Count(r.Context(), user.AgencyID, filter)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "audit_list_failed", "failed to count audit events", reqID)
		return
	}
	events, err := h.Service.List(r.Context(), user.AgencyID, filter, includeDetails, page.Limit, page.Offset)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "audit_list_failed", "failed to list audit events", reqID)
		return
	}
	if events == nil {
		events = []audit.Event{}
	}

	w.Header().Set("X-Total-Count", strconv.Itoa(total))
	api.Success(w, map[string]any{"events": events, "total": total}, reqID)
}
