package scheduling

import (
	"context"
	"time"

	"carelink/internal/platform/numeric"
	"carelink/internal/platform/timeutil"
)

// WeeklyHours sums scheduled, in-progress and completed hours in the
// inclusive [weekStart, weekEnd] range and projects the effect of adding
// additionalHours against maxHours (the configured cap when <= 0).
func (s *Service) WeeklyHours(ctx context.Context, agencyID, caregiverID string, weekStart, weekEnd time.Time, additionalHours, maxHours float64) (HoursReport, error) {
	if maxHours <= 0 {
		maxHours = s.WeeklyCap
	}

	shifts, err := s.Store.ShiftsForCaregiver(ctx, agencyID, caregiverID, DateOnly(weekStart), DateOnly(weekEnd), HoursStatuses)
	if err != nil {
		return HoursReport{}, err
	}

	current := 0.0
	for _, shift := range shifts {
		startMin, err := timeutil.ToMinutes(shift.StartTime)
		if err != nil {
			return HoursReport{}, err
		}
		endMin, err := timeutil.ToMinutes(shift.EndTime)
		if err != nil {
			return HoursReport{}, err
		}
		current += timeutil.DurationHours(startMin, endMin)
	}

	projected := current + additionalHours
	overtime := projected - maxHours
	if overtime < 0 {
		overtime = 0
	}

	return HoursReport{
		WithinLimit:    projected <= maxHours,
		CurrentHours:   numeric.RoundTo(current, 2),
		ProjectedHours: numeric.RoundTo(projected, 2),
		OvertimeHours:  numeric.RoundTo(overtime, 2),
		MaxHours:       maxHours,
	}, nil
}
