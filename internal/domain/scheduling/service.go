package scheduling

import (
	"context"
	"errors"
	"time"
)

const (
	DefaultWeeklyHoursCap     = 40
	DefaultGenerateWeeksAhead = 4
)

var (
	ErrShiftNotFound     = errors.New("shift not found")
	ErrInvalidTransition = errors.New("invalid status transition")
)

// Service implements the scheduling engine: conflict detection, weekly hour
// guarding, recurring materialization and shift lifecycle. All entry points
// are stateless over the injected store and safe to call concurrently.
// Conflict detection and shift creation are not one atomic step; callers
// needing that guarantee must serialize per caregiver at the storage layer.
type Service struct {
	Store     StoreAPI
	WeeklyCap float64
}

func NewService(store StoreAPI, weeklyCap float64) *Service {
	if weeklyCap <= 0 {
		weeklyCap = DefaultWeeklyHoursCap
	}
	return &Service{Store: store, WeeklyCap: weeklyCap}
}

func (s *Service) CreateShift(ctx context.Context, agencyID string, input ShiftInput) (string, error) {
	input.Normalize()
	shift := Shift{
		ClientID:            input.ClientID,
		CaregiverID:         input.CaregiverID,
		Date:                input.Date,
		StartTime:           input.StartTime,
		EndTime:             input.EndTime,
		Status:              StatusScheduled,
		Tasks:               input.Tasks,
		Location:            input.Location,
		Notes:               input.Notes,
		RecurringScheduleID: input.RecurringScheduleID,
	}
	return s.Store.CreateShift(ctx, agencyID, shift)
}

func (s *Service) GetShift(ctx context.Context, agencyID, shiftID string) (*Shift, error) {
	return s.Store.GetShift(ctx, agencyID, shiftID)
}

func (s *Service) ListShifts(ctx context.Context, agencyID string, filter ShiftFilter) ([]Shift, error) {
	return s.Store.ListShifts(ctx, agencyID, filter)
}

// allowedTransitions guards externally-driven status changes. The engine
// itself only ever reads status.
var allowedTransitions = map[string][]string{
	StatusScheduled:  {StatusInProgress, StatusMissed, StatusCancelled},
	StatusInProgress: {StatusCompleted, StatusMissed},
}

func (s *Service) TransitionShift(ctx context.Context, agencyID, shiftID, next string) error {
	shift, err := s.Store.GetShift(ctx, agencyID, shiftID)
	if err != nil {
		return err
	}
	if shift == nil {
		return ErrShiftNotFound
	}
	for _, allowed := range allowedTransitions[shift.Status] {
		if allowed == next {
			return s.Store.UpdateShiftStatus(ctx, agencyID, shiftID, next)
		}
	}
	return ErrInvalidTransition
}

// ClockIn records an EVV clock-in and moves the shift to InProgress.
func (s *Service) ClockIn(ctx context.Context, agencyID, shiftID string, at time.Time, lat, lng *float64, method string) error {
	shift, err := s.Store.GetShift(ctx, agencyID, shiftID)
	if err != nil {
		return err
	}
	if shift == nil {
		return ErrShiftNotFound
	}
	if shift.Status != StatusScheduled {
		return ErrInvalidTransition
	}
	if method == "" {
		method = EVVMethodMobile
	}
	return s.Store.RecordClockIn(ctx, agencyID, shiftID, at, lat, lng, method)
}

// ClockOut records an EVV clock-out and completes the shift.
func (s *Service) ClockOut(ctx context.Context, agencyID, shiftID string, at time.Time, lat, lng *float64) error {
	shift, err := s.Store.GetShift(ctx, agencyID, shiftID)
	if err != nil {
		return err
	}
	if shift == nil {
		return ErrShiftNotFound
	}
	if shift.Status != StatusInProgress {
		return ErrInvalidTransition
	}
	return s.Store.RecordClockOut(ctx, agencyID, shiftID, at, lat, lng)
}

func (s *Service) CreateRecurringSchedule(ctx context.Context, agencyID string, schedule RecurringSchedule) (string, error) {
	if schedule.Tasks == nil {
		schedule.Tasks = []string{}
	}
	schedule.StartDate = DateOnly(schedule.StartDate)
	if schedule.EndDate != nil {
		end := DateOnly(*schedule.EndDate)
		schedule.EndDate = &end
	}
	return s.Store.CreateRecurringSchedule(ctx, agencyID, schedule)
}

func (s *Service) ListRecurringSchedules(ctx context.Context, agencyID string, activeOnly bool) ([]RecurringSchedule, error) {
	return s.Store.ListRecurringSchedules(ctx, agencyID, activeOnly)
}

func (s *Service) SetRecurringScheduleActive(ctx context.Context, agencyID, scheduleID string, active bool) error {
	return s.Store.SetRecurringScheduleActive(ctx, agencyID, scheduleID, active)
}
