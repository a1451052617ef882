package schedulinghandler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"carelink/internal/domain/audit"
	"carelink/internal/domain/auth"
	"carelink/internal/domain/notifications"
	"carelink/internal/domain/scheduling"
	"carelink/internal/platform/config"
	"carelink/internal/platform/timeutil"
	"carelink/internal/transport/http/api"
	"carelink/internal/transport/http/middleware"
	"carelink/internal/transport/http/shared"
)

type Handler struct {
	Service  *scheduling.Service
	Audit    *audit.Service
	Notifier *notifications.Service
	Cfg      config.Config
}

func NewHandler(service *scheduling.Service, auditSvc *audit.Service, notifier *notifications.Service, cfg config.Config) *Handler {
	return &Handler{Service: service, Audit: auditSvc, Notifier: notifier, Cfg: cfg}
}

func (h *Handler) recordAudit(r *http.Request, user auth.UserContext, action, entityType, entityID string, after any) {
	err := h.Audit.Record(r.Context(), user.AgencyID, user.UserID, action, entityType, entityID,
		middleware.GetRequestID(r.Context()), shared.ClientIP(r), nil, after)
	if err != nil {
		slog.Warn("audit record failed", "action", action, "err", err)
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/shifts", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermSchedulingRead)).Get("/", h.handleListShifts)
		r.With(middleware.RequirePermission(auth.PermSchedulingRead)).Get("/{shiftID}", h.handleGetShift)
		r.With(middleware.RequirePermission(auth.PermSchedulingWrite)).Post("/", h.handleCreateShift)
		r.With(middleware.RequirePermission(auth.PermSchedulingWrite)).Post("/{shiftID}/status", h.handleTransition)
		r.With(middleware.RequirePermission(auth.PermSchedulingEVV)).Post("/{shiftID}/clock-in", h.handleClockIn)
		r.With(middleware.RequirePermission(auth.PermSchedulingEVV)).Post("/{shiftID}/clock-out", h.handleClockOut)
	})
	r.Route("/scheduling", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermSchedulingRead)).Get("/conflicts", h.handleConflicts)
		r.With(middleware.RequirePermission(auth.PermSchedulingRead)).Get("/hours", h.handleWeeklyHours)
	})
	r.Route("/recurring-schedules", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermSchedulingRead)).Get("/", h.handleListSchedules)
		r.With(middleware.RequirePermission(auth.PermSchedulingWrite)).Post("/", h.handleCreateSchedule)
		r.With(middleware.RequirePermission(auth.PermSchedulingWrite)).Post("/{scheduleID}/generate", h.handleGenerate)
		r.With(middleware.RequirePermission(auth.PermSchedulingWrite)).Post("/{scheduleID}/active", h.handleSetActive)
	})
}

type shiftRequest struct {
	ClientID    string   `json:"clientId"`
	CaregiverID *string  `json:"caregiverId"`
	Date        string   `json:"date"`
	StartTime   string   `json:"startTime"`
	EndTime     string   `json:"endTime"`
	Tasks       []string `json:"tasks"`
	Location    string   `json:"location"`
	Notes       string   `json:"notes"`
}

func (h *Handler) handleCreateShift(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	reqID := middleware.GetRequestID(r.Context())

	var payload shiftRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	v := shared.NewValidator()
	v.Required("clientId", payload.ClientID, "client id is required")
	date, _ := v.Date("date", payload.Date)
	v.TimeOfDay("startTime", payload.StartTime)
	v.TimeOfDay("endTime", payload.EndTime)
	if v.Reject(w, reqID) {
		return
	}

	// Conflict and hour checks are advisory: the shift is created either
	// way and the warnings ride along in the response.
	var conflictResult scheduling.ConflictResult
	var hoursReport scheduling.HoursReport
	if payload.CaregiverID != nil && *payload.CaregiverID != "" {
		var err error
		conflictResult, err = h.Service.DetectConflicts(r.Context(), user.AgencyID, *payload.CaregiverID, date, payload.StartTime, payload.EndTime, "")
		if err != nil {
			api.Fail(w, http.StatusInternalServerError, "conflict_check_failed", "failed to check conflicts", reqID)
			return
		}
		weekStart, weekEnd := scheduling.WeekBounds(date)
		additional := shiftDuration(payload.StartTime, payload.EndTime)
		hoursReport, err = h.Service.WeeklyHours(r.Context(), user.AgencyID, *payload.CaregiverID, weekStart, weekEnd, additional, 0)
		if err != nil {
			api.Fail(w, http.StatusInternalServerError, "hours_check_failed", "failed to project hours", reqID)
			return
		}
	}

	id, err := h.Service.CreateShift(r.Context(), user.AgencyID, scheduling.ShiftInput{
		ClientID:    payload.ClientID,
		CaregiverID: payload.CaregiverID,
		Date:        date,
		StartTime:   payload.StartTime,
		EndTime:     payload.EndTime,
		Tasks:       payload.Tasks,
		Location:    payload.Location,
		Notes:       payload.Notes,
	})
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "shift_create_failed", "failed to create shift", reqID)
		return
	}
	h.recordAudit(r, user, "scheduling.shift.create", "shift", id, payload)

	if payload.CaregiverID != nil && *payload.CaregiverID != "" {
		h.notify(r, user, notifications.TypeShiftAssigned, "Shift assigned",
			fmt.Sprintf("Shift on %s %s-%s assigned to caregiver %s", payload.Date, payload.StartTime, payload.EndTime, *payload.CaregiverID))
	}
	if conflictResult.HasConflict {
		h.notify(r, user, notifications.TypeConflictDetected, "Scheduling conflict",
			fmt.Sprintf("Shift on %s %s-%s overlaps %d existing shift(s)", payload.Date, payload.StartTime, payload.EndTime, len(conflictResult.Conflicts)))
	}
	if payload.CaregiverID != nil && *payload.CaregiverID != "" && !hoursReport.WithinLimit {
		h.notify(r, user, notifications.TypeOvertimeProjected, "Overtime projected",
			fmt.Sprintf("Caregiver would reach %.2f weekly hours (cap %.2f)", hoursReport.ProjectedHours, hoursReport.MaxHours))
	}

	api.Created(w, map[string]any{
		"id":          id,
		"conflicts":   conflictResult,
		"weeklyHours": hoursReport,
	}, reqID)
}

func (h *Handler) handleGetShift(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	reqID := middleware.GetRequestID(r.Context())

	shift, err := h.Service.GetShift(r.Context(), user.AgencyID, chi.URLParam(r, "shiftID"))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "shift_lookup_failed", "failed to load shift", reqID)
		return
	}
	if shift == nil {
		api.Fail(w, http.StatusNotFound, "not_found", "shift not found", reqID)
		return
	}
	api.Success(w, shift, reqID)
}

func (h *Handler) handleListShifts(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	reqID := middleware.GetRequestID(r.Context())
	query := r.URL.Query()

	filter := scheduling.ShiftFilter{
		CaregiverID: query.Get("caregiverId"),
		ClientID:    query.Get("clientId"),
		Status:      query.Get("status"),
	}
	v := shared.NewValidator()
	if raw := query.Get("from"); raw != "" {
		filter.From, _ = v.Date("from", raw)
	}
	if raw := query.Get("to"); raw != "" {
		filter.To, _ = v.Date("to", raw)
	}
	if v.Reject(w, reqID) {
		return
	}

	shifts, err := h.Service.ListShifts(r.Context(), user.AgencyID, filter)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "shift_list_failed", "failed to list shifts", reqID)
		return
	}
	api.Success(w, shifts, reqID)
}

func (h *Handler) handleTransition(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	reqID := middleware.GetRequestID(r.Context())

	var payload struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	err := h.Service.TransitionShift(r.Context(), user.AgencyID, chi.URLParam(r, "shiftID"), payload.Status)
	switch {
	case errors.Is(err, scheduling.ErrShiftNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "shift not found", reqID)
	case errors.Is(err, scheduling.ErrInvalidTransition):
		api.Fail(w, http.StatusConflict, "invalid_transition", "status transition not allowed", reqID)
	case err != nil:
		api.Fail(w, http.StatusInternalServerError, "shift_update_failed", "failed to update shift", reqID)
	default:
		h.recordAudit(r, user, "scheduling.shift.status", "shift", chi.URLParam(r, "shiftID"), payload)
		switch payload.Status {
		case scheduling.StatusCancelled:
			h.notify(r, user, notifications.TypeShiftCancelled, "Shift cancelled",
				fmt.Sprintf("Shift %s was cancelled", chi.URLParam(r, "shiftID")))
		case scheduling.StatusMissed:
			h.notify(r, user, notifications.TypeShiftMissed, "Shift missed",
				fmt.Sprintf("Shift %s was marked missed", chi.URLParam(r, "shiftID")))
		}
		api.Success(w, map[string]string{"status": payload.Status}, reqID)
	}
}

func (h *Handler) notify(r *http.Request, user auth.UserContext, ntype, title, body string) {
	if err := h.Notifier.Create(r.Context(), user.AgencyID, user.UserID, ntype, title, body); err != nil {
		slog.Warn("notification create failed", "type", ntype, "err", err)
	}
}

type clockRequest struct {
	Lat    *float64 `json:"lat"`
	Lng    *float64 `json:"lng"`
	Method string   `json:"method"`
}

func (h *Handler) handleClockIn(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	reqID := middleware.GetRequestID(r.Context())

	var payload clockRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	err := h.Service.ClockIn(r.Context(), user.AgencyID, chi.URLParam(r, "shiftID"), time.Now(), payload.Lat, payload.Lng, payload.Method)
	if err == nil {
		h.recordAudit(r, user, "scheduling.shift.clock_in", "shift", chi.URLParam(r, "shiftID"), payload)
	}
	h.writeClockResult(w, err, "clocked_in", reqID)
}

func (h *Handler) handleClockOut(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	reqID := middleware.GetRequestID(r.Context())

	var payload clockRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	err := h.Service.ClockOut(r.Context(), user.AgencyID, chi.URLParam(r, "shiftID"), time.Now(), payload.Lat, payload.Lng)
	if err == nil {
		h.recordAudit(r, user, "scheduling.shift.clock_out", "shift", chi.URLParam(r, "shiftID"), payload)
	}
	h.writeClockResult(w, err, "clocked_out", reqID)
}

func (h *Handler) writeClockResult(w http.ResponseWriter, err error, status, reqID string) {
	switch {
	case errors.Is(err, scheduling.ErrShiftNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "shift not found", reqID)
	case errors.Is(err, scheduling.ErrInvalidTransition):
		api.Fail(w, http.StatusConflict, "invalid_transition", "shift is not in a clockable state", reqID)
	case err != nil:
		api.Fail(w, http.StatusInternalServerError, "evv_failed", "failed to record EVV event", reqID)
	default:
		api.Success(w, map[string]string{"status": status}, reqID)
	}
}

func (h *Handler) handleConflicts(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	reqID := middleware.GetRequestID(r.Context())
	query := r.URL.Query()

	v := shared.NewValidator()
	v.Required("caregiverId", query.Get("caregiverId"), "caregiver id is required")
	date, _ := v.Date("date", query.Get("date"))
	v.TimeOfDay("startTime", query.Get("startTime"))
	v.TimeOfDay("endTime", query.Get("endTime"))
	if v.Reject(w, reqID) {
		return
	}

	result, err := h.Service.DetectConflicts(r.Context(), user.AgencyID, query.Get("caregiverId"), date,
		query.Get("startTime"), query.Get("endTime"), query.Get("excludeShiftId"))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "conflict_check_failed", "failed to check conflicts", reqID)
		return
	}
	api.Success(w, result, reqID)
}

func (h *Handler) handleWeeklyHours(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	reqID := middleware.GetRequestID(r.Context())
	query := r.URL.Query()

	v := shared.NewValidator()
	v.Required("caregiverId", query.Get("caregiverId"), "caregiver id is required")
	date, _ := v.Date("date", query.Get("date"))
	if v.Reject(w, reqID) {
		return
	}

	additional := 0.0
	if raw := query.Get("additionalHours"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			api.Fail(w, http.StatusBadRequest, "invalid_payload", "additionalHours must be numeric", reqID)
			return
		}
		additional = parsed
	}
	maxHours := 0.0
	if raw := query.Get("maxHours"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			api.Fail(w, http.StatusBadRequest, "invalid_payload", "maxHours must be numeric", reqID)
			return
		}
		maxHours = parsed
	}

	weekStart, weekEnd := scheduling.WeekBounds(date)
	report, err := h.Service.WeeklyHours(r.Context(), user.AgencyID, query.Get("caregiverId"), weekStart, weekEnd, additional, maxHours)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "hours_check_failed", "failed to project hours", reqID)
		return
	}
	api.Success(w, map[string]any{
		"weekStart": weekStart.Format("2006-01-02"),
		"weekEnd":   weekEnd.Format("2006-01-02"),
		"report":    report,
	}, reqID)
}

type scheduleRequest struct {
	ClientID    string   `json:"clientId"`
	CaregiverID *string  `json:"caregiverId"`
	Frequency   string   `json:"frequency"`
	DaysOfWeek  []int    `json:"daysOfWeek"`
	StartTime   string   `json:"startTime"`
	EndTime     string   `json:"endTime"`
	StartDate   string   `json:"startDate"`
	EndDate     string   `json:"endDate"`
	Tasks       []string `json:"tasks"`
	Location    string   `json:"location"`
}

func (h *Handler) handleCreateSchedule(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	reqID := middleware.GetRequestID(r.Context())

	var payload scheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	v := shared.NewValidator()
	v.Required("clientId", payload.ClientID, "client id is required")
	v.Enum("frequency", payload.Frequency, []string{scheduling.FrequencyWeekly, scheduling.FrequencyBiweekly}, "frequency must be weekly or biweekly")
	v.TimeOfDay("startTime", payload.StartTime)
	v.TimeOfDay("endTime", payload.EndTime)
	startDate, _ := v.Date("startDate", payload.StartDate)
	if len(payload.DaysOfWeek) == 0 {
		v.Add("daysOfWeek", "at least one weekday is required")
	}
	for _, day := range payload.DaysOfWeek {
		if day < 0 || day > 6 {
			v.Add("daysOfWeek", "weekdays use 0 (Sunday) through 6 (Saturday)")
			break
		}
	}
	var endDate *time.Time
	if strings.TrimSpace(payload.EndDate) != "" {
		parsed, ok := v.Date("endDate", payload.EndDate)
		if ok {
			v.DateOrder("startDate", startDate, "endDate", parsed)
			endDate = &parsed
		}
	}
	if v.Reject(w, reqID) {
		return
	}

	id, err := h.Service.CreateRecurringSchedule(r.Context(), user.AgencyID, scheduling.RecurringSchedule{
		ClientID:    payload.ClientID,
		CaregiverID: payload.CaregiverID,
		Frequency:   payload.Frequency,
		DaysOfWeek:  payload.DaysOfWeek,
		StartTime:   payload.StartTime,
		EndTime:     payload.EndTime,
		StartDate:   startDate,
		EndDate:     endDate,
		Tasks:       payload.Tasks,
		Location:    payload.Location,
		IsActive:    true,
	})
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "schedule_create_failed", "failed to create schedule", reqID)
		return
	}
	h.recordAudit(r, user, "scheduling.schedule.create", "recurring_schedule", id, payload)
	api.Created(w, map[string]string{"id": id}, reqID)
}

func (h *Handler) handleListSchedules(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	reqID := middleware.GetRequestID(r.Context())

	activeOnly := r.URL.Query().Get("active") == "true"
	schedules, err := h.Service.ListRecurringSchedules(r.Context(), user.AgencyID, activeOnly)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "schedule_list_failed", "failed to list schedules", reqID)
		return
	}
	api.Success(w, schedules, reqID)
}

func (h *Handler) handleGenerate(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	reqID := middleware.GetRequestID(r.Context())

	weeksAhead := h.Cfg.GenerateWeeksAhead
	var payload struct {
		WeeksAhead int `json:"weeksAhead"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err == nil && payload.WeeksAhead > 0 {
		weeksAhead = payload.WeeksAhead
	}
	if h.Cfg.GenerateWeeksMax > 0 && weeksAhead > h.Cfg.GenerateWeeksMax {
		weeksAhead = h.Cfg.GenerateWeeksMax
	}

	scheduleID := chi.URLParam(r, "scheduleID")
	result, err := h.Service.GenerateRecurringShifts(r.Context(), user.AgencyID, scheduleID, weeksAhead, time.Now())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "generate_failed", "failed to generate shifts", reqID)
		return
	}
	h.recordAudit(r, user, "scheduling.schedule.generate", "recurring_schedule", scheduleID, result)
	h.notify(r, user, notifications.TypeScheduleGenerated, "Shifts generated",
		fmt.Sprintf("Created %d, skipped %d, errors %d", result.Created, result.Skipped, result.Errors))
	api.Success(w, result, reqID)
}

func (h *Handler) handleSetActive(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	reqID := middleware.GetRequestID(r.Context())

	var payload struct {
		Active bool `json:"active"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	if err := h.Service.SetRecurringScheduleActive(r.Context(), user.AgencyID, chi.URLParam(r, "scheduleID"), payload.Active); err != nil {
		api.Fail(w, http.StatusInternalServerError, "schedule_update_failed", "failed to update schedule", reqID)
		return
	}
	h.recordAudit(r, user, "scheduling.schedule.active", "recurring_schedule", chi.URLParam(r, "scheduleID"), payload)
	api.Success(w, map[string]bool{"active": payload.Active}, reqID)
}

func shiftDuration(startTime, endTime string) float64 {
	start, err := timeutil.ToMinutes(startTime)
	if err != nil {
		return 0
	}
	end, err := timeutil.ToMinutes(endTime)
	if err != nil {
		return 0
	}
	return timeutil.DurationHours(start, end)
}
