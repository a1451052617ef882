package scheduling

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// fakeStore is an in-memory StoreAPI used across the engine tests.
type fakeStore struct {
	shifts      []Shift
	schedules   map[string]RecurringSchedule
	nextID      int
	failCreates int
}

func newFakeStore() *fakeStore {
	return &fakeStore{schedules: map[string]RecurringSchedule{}}
}

func (f *fakeStore) addShift(shift Shift) Shift {
	f.nextID++
	if shift.ID == "" {
		shift.ID = fmt.Sprintf("shift-%d", f.nextID)
	}
	f.shifts = append(f.shifts, shift)
	return shift
}

func (f *fakeStore) addSchedule(schedule RecurringSchedule) {
	f.schedules[schedule.ID] = schedule
}

func statusIn(status string, statuses []string) bool {
	for _, s := range statuses {
		if s == status {
			return true
		}
	}
	return false
}

func (f *fakeStore) ShiftsForCaregiver(_ context.Context, _, caregiverID string, from, to time.Time, statuses []string) ([]Shift, error) {
	var out []Shift
	for _, sh := range f.shifts {
		if sh.CaregiverID == nil || *sh.CaregiverID != caregiverID {
			continue
		}
		if sh.Date.Before(from) || sh.Date.After(to) {
			continue
		}
		if !statusIn(sh.Status, statuses) {
			continue
		}
		out = append(out, sh)
	}
	return out, nil
}

func (f *fakeStore) ListShifts(_ context.Context, _ string, filter ShiftFilter) ([]Shift, error) {
	var out []Shift
	for _, sh := range f.shifts {
		if filter.CaregiverID != "" && (sh.CaregiverID == nil || *sh.CaregiverID != filter.CaregiverID) {
			continue
		}
		if filter.ClientID != "" && sh.ClientID != filter.ClientID {
			continue
		}
		if filter.Status != "" && sh.Status != filter.Status {
			continue
		}
		if !filter.From.IsZero() && sh.Date.Before(filter.From) {
			continue
		}
		if !filter.To.IsZero() && sh.Date.After(filter.To) {
			continue
		}
		out = append(out, sh)
	}
	return out, nil
}

func (f *fakeStore) GetShift(_ context.Context, _, shiftID string) (*Shift, error) {
	for i := range f.shifts {
		if f.shifts[i].ID == shiftID {
			sh := f.shifts[i]
			return &sh, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) ShiftExists(_ context.Context, _, clientID string, date time.Time, startTime string, caregiverID *string) (bool, error) {
	for _, sh := range f.shifts {
		if sh.ClientID != clientID || !sh.Date.Equal(date) || sh.StartTime != startTime {
			continue
		}
		if caregiverID != nil && (sh.CaregiverID == nil || *sh.CaregiverID != *caregiverID) {
			continue
		}
		return true, nil
	}
	return false, nil
}

func (f *fakeStore) CreateShift(_ context.Context, agencyID string, shift Shift) (string, error) {
	if f.failCreates > 0 {
		f.failCreates--
		return "", errors.New("storage unavailable")
	}
	shift.AgencyID = agencyID
	created := f.addShift(shift)
	return created.ID, nil
}

func (f *fakeStore) UpdateShiftStatus(_ context.Context, _, shiftID, status string) error {
	for i := range f.shifts {
		if f.shifts[i].ID == shiftID {
			f.shifts[i].Status = status
			return nil
		}
	}
	return errors.New("shift not found")
}

func (f *fakeStore) RecordClockIn(_ context.Context, _, shiftID string, at time.Time, lat, lng *float64, method string) error {
	for i := range f.shifts {
		if f.shifts[i].ID == shiftID {
			f.shifts[i].Status = StatusInProgress
			f.shifts[i].ClockInTime = &at
			f.shifts[i].ClockInLat = lat
			f.shifts[i].ClockInLng = lng
			f.shifts[i].EVVMethod = method
			return nil
		}
	}
	return errors.New("shift not found")
}

func (f *fakeStore) RecordClockOut(_ context.Context, _, shiftID string, at time.Time, lat, lng *float64) error {
	for i := range f.shifts {
		if f.shifts[i].ID == shiftID {
			f.shifts[i].Status = StatusCompleted
			f.shifts[i].ClockOutTime = &at
			f.shifts[i].ClockOutLat = lat
			f.shifts[i].ClockOutLng = lng
			f.shifts[i].EVVVerified = f.shifts[i].ClockInTime != nil
			return nil
		}
	}
	return errors.New("shift not found")
}

func (f *fakeStore) GetRecurringSchedule(_ context.Context, _, scheduleID string) (*RecurringSchedule, error) {
	sched, ok := f.schedules[scheduleID]
	if !ok {
		return nil, nil
	}
	return &sched, nil
}

func (f *fakeStore) CreateRecurringSchedule(_ context.Context, _ string, schedule RecurringSchedule) (string, error) {
	f.nextID++
	schedule.ID = fmt.Sprintf("schedule-%d", f.nextID)
	f.schedules[schedule.ID] = schedule
	return schedule.ID, nil
}

func (f *fakeStore) ListRecurringSchedules(_ context.Context, _ string, activeOnly bool) ([]RecurringSchedule, error) {
	var out []RecurringSchedule
	for _, sched := range f.schedules {
		if activeOnly && !sched.IsActive {
			continue
		}
		out = append(out, sched)
	}
	return out, nil
}

func (f *fakeStore) SetRecurringScheduleActive(_ context.Context, _, scheduleID string, active bool) error {
	sched, ok := f.schedules[scheduleID]
	if !ok {
		return errors.New("schedule not found")
	}
	sched.IsActive = active
	f.schedules[scheduleID] = sched
	return nil
}

func strPtr(s string) *string { return &s }

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}
