package scheduling

import (
	"context"
	"log/slog"
	"time"
)

// GenerateRecurringShifts expands a recurring template into concrete shifts
// from today through a bounded horizon. Missing or inactive schedules yield
// an all-zero result without error. Already-materialized days are counted as
// skipped, which makes re-running over an overlapping horizon idempotent.
// A single creation failure is tallied and the walk continues.
func (s *Service) GenerateRecurringShifts(ctx context.Context, agencyID, scheduleID string, weeksAhead int, now time.Time) (GenerateResult, error) {
	var result GenerateResult

	if weeksAhead <= 0 {
		weeksAhead = DefaultGenerateWeeksAhead
	}

	schedule, err := s.Store.GetRecurringSchedule(ctx, agencyID, scheduleID)
	if err != nil {
		return result, err
	}
	if schedule == nil || !schedule.IsActive {
		return result, nil
	}

	today := DateOnly(now)
	ceiling := today.AddDate(0, 0, weeksAhead*7)
	if schedule.EndDate != nil {
		end := DateOnly(*schedule.EndDate)
		if end.Before(ceiling) {
			ceiling = end
		}
	}

	startWeekMonday := WeekStart(schedule.StartDate)

	wanted := make(map[int]bool, len(schedule.DaysOfWeek))
	for _, day := range schedule.DaysOfWeek {
		wanted[day] = true
	}

	begin := DateOnly(schedule.StartDate)
	if today.After(begin) {
		begin = today
	}

	for cursor := begin; !cursor.After(ceiling); cursor = cursor.AddDate(0, 0, 1) {
		if !wanted[int(cursor.Weekday())] {
			continue
		}
		if schedule.Frequency == FrequencyBiweekly {
			weekDiff := int(WeekStart(cursor).Sub(startWeekMonday).Hours()) / (24 * 7)
			if weekDiff%2 != 0 {
				continue
			}
		}

		exists, err := s.Store.ShiftExists(ctx, agencyID, schedule.ClientID, cursor, schedule.StartTime, schedule.CaregiverID)
		if err != nil {
			slog.Warn("recurring shift existence check failed", "scheduleId", schedule.ID, "date", cursor.Format("2006-01-02"), "err", err)
			result.Errors++
			continue
		}
		if exists {
			result.Skipped++
			continue
		}

		shift := Shift{
			ClientID:            schedule.ClientID,
			CaregiverID:         schedule.CaregiverID,
			Date:                cursor,
			StartTime:           schedule.StartTime,
			EndTime:             schedule.EndTime,
			Status:              StatusScheduled,
			Tasks:               schedule.Tasks,
			Location:            schedule.Location,
			RecurringScheduleID: &schedule.ID,
		}
		if shift.Tasks == nil {
			shift.Tasks = []string{}
		}
		if _, err := s.Store.CreateShift(ctx, agencyID, shift); err != nil {
			slog.Warn("recurring shift create failed", "scheduleId", schedule.ID, "date", cursor.Format("2006-01-02"), "err", err)
			result.Errors++
			continue
		}
		result.Created++
	}

	return result, nil
}
