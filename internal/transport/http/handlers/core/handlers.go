package corehandler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"carelink/internal/domain/audit"
	"carelink/internal/domain/auth"
	"carelink/internal/domain/core"
	"carelink/internal/transport/http/api"
	"carelink/internal/transport/http/middleware"
	"carelink/internal/transport/http/shared"
)

var classifications = []string{
	core.ClassificationLimited,
	core.ClassificationBasic,
	core.ClassificationIntermediate,
	core.ClassificationComprehensive,
}

type Handler struct {
	Store *core.Store
	Audit *audit.Service
}

func NewHandler(store *core.Store, auditSvc *audit.Service) *Handler {
	return &Handler{Store: store, Audit: auditSvc}
}

func (h *Handler) recordAudit(r *http.Request, user auth.UserContext, action, entityType, entityID string, after any) {
	err := h.Audit.Record(r.Context(), user.AgencyID, user.UserID, action, entityType, entityID,
		middleware.GetRequestID(r.Context()), shared.ClientIP(r), nil, after)
	if err != nil {
		slog.Warn("audit record failed", "action", action, "err", err)
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/caregivers", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermCaregiversRead)).Get("/", h.handleListCaregivers)
		r.With(middleware.RequirePermission(auth.PermCaregiversRead)).Get("/{caregiverID}", h.handleGetCaregiver)
		r.With(middleware.RequirePermission(auth.PermCaregiversWrite)).Post("/", h.handleCreateCaregiver)
	})
	r.Route("/clients", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermClientsRead)).Get("/", h.handleListClients)
		r.With(middleware.RequirePermission(auth.PermClientsRead)).Get("/{clientID}", h.handleGetClient)
		r.With(middleware.RequirePermission(auth.PermClientsWrite)).Post("/", h.handleCreateClient)
		r.With(middleware.RequirePermission(auth.PermClientsRead)).Get("/{clientID}/assignments", h.handleListAssignments)
		r.With(middleware.RequirePermission(auth.PermClientsWrite)).Post("/{clientID}/assignments", h.handleCreateAssignment)
	})
}

type caregiverRequest struct {
	FirstName                 string   `json:"firstName"`
	LastName                  string   `json:"lastName"`
	Email                     string   `json:"email"`
	Phone                     string   `json:"phone"`
	Classification            string   `json:"classification"`
	Certifications            []string `json:"certifications"`
	DriverLicense             bool     `json:"driverLicense"`
	BackgroundCheckDate       string   `json:"backgroundCheckDate"`
	BackgroundCheckRenewalDue string   `json:"backgroundCheckRenewalDue"`
	OrientationDate           string   `json:"orientationDate"`
}

func (h *Handler) handleCreateCaregiver(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	reqID := middleware.GetRequestID(r.Context())

	var payload caregiverRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	v := shared.NewValidator()
	v.Required("firstName", payload.FirstName, "first name is required")
	v.Required("lastName", payload.LastName, "last name is required")
	v.Required("email", payload.Email, "email is required")
	v.Enum("classification", payload.Classification, classifications, "unknown classification")
	if v.Reject(w, reqID) {
		return
	}

	caregiver := core.Caregiver{
		FirstName:      strings.TrimSpace(payload.FirstName),
		LastName:       strings.TrimSpace(payload.LastName),
		Email:          strings.TrimSpace(payload.Email),
		Phone:          payload.Phone,
		Status:         core.StatusActive,
		Classification: payload.Classification,
		Certifications: payload.Certifications,
		DriverLicense:  payload.DriverLicense,
	}
	if caregiver.Certifications == nil {
		caregiver.Certifications = []string{}
	}
	caregiver.BackgroundCheckDate = parseOptionalDate(v, "backgroundCheckDate", payload.BackgroundCheckDate)
	caregiver.BackgroundCheckRenewalDue = parseOptionalDate(v, "backgroundCheckRenewalDue", payload.BackgroundCheckRenewalDue)
	caregiver.OrientationDate = parseOptionalDate(v, "orientationDate", payload.OrientationDate)
	if v.Reject(w, reqID) {
		return
	}

	id, err := h.Store.CreateCaregiver(r.Context(), user.AgencyID, caregiver)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "caregiver_create_failed", "failed to create caregiver", reqID)
		return
	}
	h.recordAudit(r, user, "core.caregiver.create", "caregiver", id, payload)
	api.Created(w, map[string]string{"id": id}, reqID)
}

func (h *Handler) handleGetCaregiver(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	reqID := middleware.GetRequestID(r.Context())

	caregiver, err := h.Store.GetCaregiver(r.Context(), user.AgencyID, chi.URLParam(r, "caregiverID"))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "caregiver_lookup_failed", "failed to load caregiver", reqID)
		return
	}
	if caregiver == nil {
		api.Fail(w, http.StatusNotFound, "not_found", "caregiver not found", reqID)
		return
	}
	api.Success(w, caregiver, reqID)
}

func (h *Handler) handleListCaregivers(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	reqID := middleware.GetRequestID(r.Context())

	caregivers, err := h.Store.ListCaregivers(r.Context(), user.AgencyID, r.URL.Query().Get("status"))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "caregiver_list_failed", "failed to list caregivers", reqID)
		return
	}
	api.Success(w, caregivers, reqID)
}

type clientRequest struct {
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	Classification string `json:"classification"`
	CanSelfDirect  bool   `json:"canSelfDirect"`
	Address        string `json:"address"`
}

func (h *Handler) handleCreateClient(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	reqID := middleware.GetRequestID(r.Context())

	var payload clientRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	v := shared.NewValidator()
	v.Required("firstName", payload.FirstName, "first name is required")
	v.Required("lastName", payload.LastName, "last name is required")
	v.Enum("classification", payload.Classification, classifications, "unknown classification")
	if v.Reject(w, reqID) {
		return
	}

	id, err := h.Store.CreateClient(r.Context(), user.AgencyID, core.Client{
		FirstName:      strings.TrimSpace(payload.FirstName),
		LastName:       strings.TrimSpace(payload.LastName),
		Classification: payload.Classification,
		CanSelfDirect:  payload.CanSelfDirect,
		Address:        payload.Address,
		Status:         core.StatusActive,
	})
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "client_create_failed", "failed to create client", reqID)
		return
	}
	h.recordAudit(r, user, "core.client.create", "client", id, payload)
	api.Created(w, map[string]string{"id": id}, reqID)
}

func (h *Handler) handleGetClient(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	reqID := middleware.GetRequestID(r.Context())

	client, err := h.Store.GetClient(r.Context(), user.AgencyID, chi.URLParam(r, "clientID"))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "client_lookup_failed", "failed to load client", reqID)
		return
	}
	if client == nil {
		api.Fail(w, http.StatusNotFound, "not_found", "client not found", reqID)
		return
	}
	api.Success(w, client, reqID)
}

func (h *Handler) handleListClients(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	reqID := middleware.GetRequestID(r.Context())

	clients, err := h.Store.ListClients(r.Context(), user.AgencyID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "client_list_failed", "failed to list clients", reqID)
		return
	}
	api.Success(w, clients, reqID)
}

type assignmentRequest struct {
	CaregiverID string `json:"caregiverId"`
	IsPrimary   bool   `json:"isPrimary"`
}

func (h *Handler) handleCreateAssignment(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	reqID := middleware.GetRequestID(r.Context())

	var payload assignmentRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	v := shared.NewValidator()
	v.Required("caregiverId", payload.CaregiverID, "caregiver id is required")
	if v.Reject(w, reqID) {
		return
	}

	id, err := h.Store.CreateAssignment(r.Context(), user.AgencyID, core.Assignment{
		ClientID:    chi.URLParam(r, "clientID"),
		CaregiverID: payload.CaregiverID,
		IsPrimary:   payload.IsPrimary,
	})
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "assignment_create_failed", "failed to create assignment", reqID)
		return
	}
	h.recordAudit(r, user, "core.assignment.create", "client_assignment", id, payload)
	api.Created(w, map[string]string{"id": id}, reqID)
}

func (h *Handler) handleListAssignments(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	reqID := middleware.GetRequestID(r.Context())

	links, err := h.Store.ListClientAssignments(r.Context(), user.AgencyID, chi.URLParam(r, "clientID"))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "assignment_list_failed", "failed to list assignments", reqID)
		return
	}
	api.Success(w, links, reqID)
}

func parseOptionalDate(v *shared.Validator, field, raw string) *time.Time {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parsed, ok := v.Date(field, raw)
	if !ok {
		return nil
	}
	return &parsed
}
