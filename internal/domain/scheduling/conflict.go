package scheduling

import (
	"context"
	"time"

	"carelink/internal/platform/timeutil"
)

// DetectConflicts returns every active shift for the caregiver on the given
// day whose window overlaps the proposed one. Pure query: no early exit, no
// cap, no side effects. excludeShiftID lets a shift being edited skip itself.
func (s *Service) DetectConflicts(ctx context.Context, agencyID, caregiverID string, date time.Time, startTime, endTime, excludeShiftID string) (ConflictResult, error) {
	result := ConflictResult{Conflicts: []ConflictInfo{}}

	startMin, err := timeutil.ToMinutes(startTime)
	if err != nil {
		return result, err
	}
	endMin, err := timeutil.ToMinutes(endTime)
	if err != nil {
		return result, err
	}

	day := DateOnly(date)
	shifts, err := s.Store.ShiftsForCaregiver(ctx, agencyID, caregiverID, day, day, ConflictStatuses)
	if err != nil {
		return result, err
	}

	for _, shift := range shifts {
		if excludeShiftID != "" && shift.ID == excludeShiftID {
			continue
		}
		shiftStart, err := timeutil.ToMinutes(shift.StartTime)
		if err != nil {
			return result, err
		}
		shiftEnd, err := timeutil.ToMinutes(shift.EndTime)
		if err != nil {
			return result, err
		}
		if timeutil.Overlaps(startMin, endMin, shiftStart, shiftEnd) {
			result.Conflicts = append(result.Conflicts, ConflictInfo{
				ShiftID:    shift.ID,
				Date:       shift.Date,
				StartTime:  shift.StartTime,
				EndTime:    shift.EndTime,
				ClientName: shift.ClientName,
			})
		}
	}

	result.HasConflict = len(result.Conflicts) > 0
	return result, nil
}
