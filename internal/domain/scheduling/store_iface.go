package scheduling

import (
	"context"
	"time"
)

// StoreAPI is the data-access collaborator the scheduling engine runs
// against. The engine itself is a set of stateless queries and computations;
// persistence lifecycle belongs to the implementation.
type StoreAPI interface {
	ShiftsForCaregiver(ctx context.Context, agencyID, caregiverID string, from, to time.Time, statuses []string) ([]Shift, error)
	ListShifts(ctx context.Context, agencyID string, filter ShiftFilter) ([]Shift, error)
	GetShift(ctx context.Context, agencyID, shiftID string) (*Shift, error)
	ShiftExists(ctx context.Context, agencyID, clientID string, date time.Time, startTime string, caregiverID *string) (bool, error)
	CreateShift(ctx context.Context, agencyID string, shift Shift) (string, error)
	UpdateShiftStatus(ctx context.Context, agencyID, shiftID, status string) error
	RecordClockIn(ctx context.Context, agencyID, shiftID string, at time.Time, lat, lng *float64, method string) error
	RecordClockOut(ctx context.Context, agencyID, shiftID string, at time.Time, lat, lng *float64) error
	GetRecurringSchedule(ctx context.Context, agencyID, scheduleID string) (*RecurringSchedule, error)
	CreateRecurringSchedule(ctx context.Context, agencyID string, schedule RecurringSchedule) (string, error)
	ListRecurringSchedules(ctx context.Context, agencyID string, activeOnly bool) ([]RecurringSchedule, error)
	SetRecurringScheduleActive(ctx context.Context, agencyID, scheduleID string, active bool) error
}
