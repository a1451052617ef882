package scheduling

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store is the pgx-backed StoreAPI implementation.
type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

const shiftColumns = `
    s.id, s.agency_id, s.client_id, c.first_name || ' ' || c.last_name,
    s.caregiver_id, s.date, s.start_time, s.end_time, s.status,
    COALESCE(s.tasks, '{}'), COALESCE(s.location, ''), COALESCE(s.notes, ''),
    s.recurring_schedule_id,
    s.clock_in_time, s.clock_out_time, s.clock_in_lat, s.clock_in_lng,
    s.clock_out_lat, s.clock_out_lng, s.evv_verified, COALESCE(s.evv_method, ''),
    s.created_at, s.updated_at`

func scanShift(row pgx.Row) (Shift, error) {
	var sh Shift
	err := row.Scan(&sh.ID, &sh.AgencyID, &sh.ClientID, &sh.ClientName,
		&sh.CaregiverID, &sh.Date, &sh.StartTime, &sh.EndTime, &sh.Status,
		&sh.Tasks, &sh.Location, &sh.Notes,
		&sh.RecurringScheduleID,
		&sh.ClockInTime, &sh.ClockOutTime, &sh.ClockInLat, &sh.ClockInLng,
		&sh.ClockOutLat, &sh.ClockOutLng, &sh.EVVVerified, &sh.EVVMethod,
		&sh.CreatedAt, &sh.UpdatedAt)
	return sh, err
}

func (s *Store) ShiftsForCaregiver(ctx context.Context, agencyID, caregiverID string, from, to time.Time, statuses []string) ([]Shift, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT`+shiftColumns+`
    FROM shifts s
    JOIN clients c ON s.client_id = c.id
    WHERE s.agency_id = $1 AND s.caregiver_id = $2
      AND s.date >= $3 AND s.date <= $4
      AND s.status = ANY($5)
    ORDER BY s.date, s.start_time
  `, agencyID, caregiverID, from, to, statuses)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectShifts(rows)
}

func (s *Store) ListShifts(ctx context.Context, agencyID string, filter ShiftFilter) ([]Shift, error) {
	query := `
    SELECT` + shiftColumns + `
    FROM shifts s
    JOIN clients c ON s.client_id = c.id
    WHERE s.agency_id = $1
  `
	args := []any{agencyID}
	if filter.CaregiverID != "" {
		query += fmt.Sprintf(" AND s.caregiver_id = $%d", len(args)+1)
		args = append(args, filter.CaregiverID)
	}
	if filter.ClientID != "" {
		query += fmt.Sprintf(" AND s.client_id = $%d", len(args)+1)
		args = append(args, filter.ClientID)
	}
	if filter.Status != "" {
		query += fmt.Sprintf(" AND s.status = $%d", len(args)+1)
		args = append(args, filter.Status)
	}
	if !filter.From.IsZero() {
		query += fmt.Sprintf(" AND s.date >= $%d", len(args)+1)
		args = append(args, filter.From)
	}
	if !filter.To.IsZero() {
		query += fmt.Sprintf(" AND s.date <= $%d", len(args)+1)
		args = append(args, filter.To)
	}
	query += " ORDER BY s.date, s.start_time"

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectShifts(rows)
}

func collectShifts(rows pgx.Rows) ([]Shift, error) {
	var shifts []Shift
	for rows.Next() {
		sh, err := scanShift(rows)
		if err != nil {
			return nil, err
		}
		shifts = append(shifts, sh)
	}
	return shifts, rows.Err()
}

func (s *Store) GetShift(ctx context.Context, agencyID, shiftID string) (*Shift, error) {
	row := s.DB.QueryRow(ctx, `
    SELECT`+shiftColumns+`
    FROM shifts s
    JOIN clients c ON s.client_id = c.id
    WHERE s.agency_id = $1 AND s.id = $2
  `, agencyID, shiftID)
	sh, err := scanShift(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sh, nil
}

func (s *Store) ShiftExists(ctx context.Context, agencyID, clientID string, date time.Time, startTime string, caregiverID *string) (bool, error) {
	query := `
    SELECT COUNT(1)
    FROM shifts
    WHERE agency_id = $1 AND client_id = $2 AND date = $3 AND start_time = $4
  `
	args := []any{agencyID, clientID, date, startTime}
	if caregiverID != nil {
		query += " AND caregiver_id = $5"
		args = append(args, *caregiverID)
	}

	var count int
	if err := s.DB.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Store) CreateShift(ctx context.Context, agencyID string, shift Shift) (string, error) {
	var id string
	if err := s.DB.QueryRow(ctx, `
    INSERT INTO shifts (agency_id, client_id, caregiver_id, date, start_time, end_time, status, tasks, location, notes, recurring_schedule_id)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
    RETURNING id
  `, agencyID, shift.ClientID, shift.CaregiverID, shift.Date, shift.StartTime, shift.EndTime,
		shift.Status, shift.Tasks, shift.Location, shift.Notes, shift.RecurringScheduleID).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) UpdateShiftStatus(ctx context.Context, agencyID, shiftID, status string) error {
	_, err := s.DB.Exec(ctx, `
    UPDATE shifts SET status = $1, updated_at = now()
    WHERE agency_id = $2 AND id = $3
  `, status, agencyID, shiftID)
	return err
}

func (s *Store) RecordClockIn(ctx context.Context, agencyID, shiftID string, at time.Time, lat, lng *float64, method string) error {
	_, err := s.DB.Exec(ctx, `
    UPDATE shifts
    SET status = $1, clock_in_time = $2, clock_in_lat = $3, clock_in_lng = $4, evv_method = $5, updated_at = now()
    WHERE agency_id = $6 AND id = $7
  `, StatusInProgress, at, lat, lng, method, agencyID, shiftID)
	return err
}

func (s *Store) RecordClockOut(ctx context.Context, agencyID, shiftID string, at time.Time, lat, lng *float64) error {
	_, err := s.DB.Exec(ctx, `
    UPDATE shifts
    SET status = $1, clock_out_time = $2, clock_out_lat = $3, clock_out_lng = $4,
        evv_verified = (clock_in_time IS NOT NULL), updated_at = now()
    WHERE agency_id = $5 AND id = $6
  `, StatusCompleted, at, lat, lng, agencyID, shiftID)
	return err
}

func (s *Store) GetRecurringSchedule(ctx context.Context, agencyID, scheduleID string) (*RecurringSchedule, error) {
	row := s.DB.QueryRow(ctx, `
    SELECT id, agency_id, client_id, caregiver_id, frequency, days_of_week,
           start_time, end_time, start_date, end_date,
           COALESCE(tasks, '{}'), COALESCE(location, ''), is_active, created_at
    FROM recurring_schedules
    WHERE agency_id = $1 AND id = $2
  `, agencyID, scheduleID)

	var sched RecurringSchedule
	err := row.Scan(&sched.ID, &sched.AgencyID, &sched.ClientID, &sched.CaregiverID,
		&sched.Frequency, &sched.DaysOfWeek, &sched.StartTime, &sched.EndTime,
		&sched.StartDate, &sched.EndDate, &sched.Tasks, &sched.Location,
		&sched.IsActive, &sched.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sched, nil
}

func (s *Store) CreateRecurringSchedule(ctx context.Context, agencyID string, schedule RecurringSchedule) (string, error) {
	var id string
	if err := s.DB.QueryRow(ctx, `
    INSERT INTO recurring_schedules (agency_id, client_id, caregiver_id, frequency, days_of_week,
                                     start_time, end_time, start_date, end_date, tasks, location, is_active)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
    RETURNING id
  `, agencyID, schedule.ClientID, schedule.CaregiverID, schedule.Frequency, schedule.DaysOfWeek,
		schedule.StartTime, schedule.EndTime, schedule.StartDate, schedule.EndDate,
		schedule.Tasks, schedule.Location, schedule.IsActive).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) ListRecurringSchedules(ctx context.Context, agencyID string, activeOnly bool) ([]RecurringSchedule, error) {
	query := `
    SELECT id, agency_id, client_id, caregiver_id, frequency, days_of_week,
           start_time, end_time, start_date, end_date,
           COALESCE(tasks, '{}'), COALESCE(location, ''), is_active, created_at
    FROM recurring_schedules
    WHERE agency_id = $1
  `
	if activeOnly {
		query += " AND is_active"
	}
	query += " ORDER BY created_at"

	rows, err := s.DB.Query(ctx, query, agencyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var schedules []RecurringSchedule
	for rows.Next() {
		var sched RecurringSchedule
		if err := rows.Scan(&sched.ID, &sched.AgencyID, &sched.ClientID, &sched.CaregiverID,
			&sched.Frequency, &sched.DaysOfWeek, &sched.StartTime, &sched.EndTime,
			&sched.StartDate, &sched.EndDate, &sched.Tasks, &sched.Location,
			&sched.IsActive, &sched.CreatedAt); err != nil {
			return nil, err
		}
		schedules = append(schedules, sched)
	}
	return schedules, rows.Err()
}

func (s *Store) SetRecurringScheduleActive(ctx context.Context, agencyID, scheduleID string, active bool) error {
	_, err := s.DB.Exec(ctx, `
    UPDATE recurring_schedules SET is_active = $1
    WHERE agency_id = $2 AND id = $3
  `, active, agencyID, scheduleID)
	return err
}
