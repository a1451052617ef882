package billinghandler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"carelink/internal/domain/auth"
	"carelink/internal/domain/billing"
	"carelink/internal/domain/scheduling"
	"carelink/internal/transport/http/api"
	"carelink/internal/transport/http/middleware"
	"carelink/internal/transport/http/shared"
)

type Handler struct {
	Service *billing.Service
}

func NewHandler(service *billing.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/billing", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermBillingRead)).Get("/shifts/{shiftID}", h.handleShiftHours)
		r.With(middleware.RequirePermission(auth.PermBillingRead)).Get("/clients/{clientID}/summary", h.handleClientSummary)
	})
}

func (h *Handler) handleShiftHours(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	reqID := middleware.GetRequestID(r.Context())
	shiftID := chi.URLParam(r, "shiftID")

	hours, err := h.Service.ShiftBillableHours(r.Context(), user.AgencyID, shiftID)
	switch {
	case errors.Is(err, scheduling.ErrShiftNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "shift not found", reqID)
	case err != nil:
		api.Fail(w, http.StatusInternalServerError, "billing_failed", "failed to compute billable hours", reqID)
	default:
		api.Success(w, map[string]any{"shiftId": shiftID, "billableHours": hours}, reqID)
	}
}

func (h *Handler) handleClientSummary(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	reqID := middleware.GetRequestID(r.Context())
	query := r.URL.Query()

	v := shared.NewValidator()
	from, _ := v.Date("from", query.Get("from"))
	to, _ := v.Date("to", query.Get("to"))
	v.DateOrder("from", from, "to", to)
	if v.Reject(w, reqID) {
		return
	}

	summary, err := h.Service.ClientBillingSummary(r.Context(), user.AgencyID, chi.URLParam(r, "clientID"), from, to)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "billing_failed", "failed to build billing summary", reqID)
		return
	}
	api.Success(w, summary, reqID)
}
