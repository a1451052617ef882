package jobs

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"carelink/internal/domain/scheduling"
	"carelink/internal/platform/config"
)

const JobGenerateShifts = "generate_recurring_shifts"

// Service runs background work through a bounded queue with one worker.
// Each run is recorded in job_runs for operator visibility.
type Service struct {
	DB         *pgxpool.Pool
	Cfg        config.Config
	Scheduling *scheduling.Service
	queue      chan job
}

type job struct {
	Type     string
	AgencyID string
	Run      func(context.Context) (any, error)
}

func New(db *pgxpool.Pool, cfg config.Config, schedulingSvc *scheduling.Service) *Service {
	return &Service{
		DB:         db,
		Cfg:        cfg,
		Scheduling: schedulingSvc,
		queue:      make(chan job, 128),
	}
}

func (s *Service) Start(ctx context.Context) {
	go s.worker(ctx)
	if s.Cfg.GenerateInterval > 0 {
		go s.scheduleGeneration(ctx, s.Cfg.GenerateInterval)
	}
}

func (s *Service) Enqueue(jobType, agencyID string, run func(context.Context) (any, error)) {
	select {
	case s.queue <- job{Type: jobType, AgencyID: agencyID, Run: run}:
	default:
		slog.Warn("job queue full", "jobType", jobType, "agencyId", agencyID)
	}
}

func (s *Service) RunNow(ctx context.Context, jobType, agencyID string, run func(context.Context) (any, error)) (any, error) {
	return s.runJob(ctx, job{Type: jobType, AgencyID: agencyID, Run: run})
}

func (s *Service) worker(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case j := <-s.queue:
			if _, err := s.runJob(ctx, j); err != nil {
				slog.Warn("job run failed", "jobType", j.Type, "agencyId", j.AgencyID, "err", err)
			}
		}
	}
}

func (s *Service) runJob(ctx context.Context, j job) (any, error) {
	runID := ""
	if err := s.DB.QueryRow(ctx, `
    INSERT INTO job_runs (agency_id, job_type, status)
    VALUES ($1,$2,$3)
    RETURNING id
  `, j.AgencyID, j.Type, "running").Scan(&runID); err != nil {
		slog.Warn("job run insert failed", "err", err)
	}

	details, err := j.Run(ctx)
	status := "completed"
	if err != nil {
		status = "failed"
	}
	detailsJSON, marshalErr := json.Marshal(details)
	if marshalErr != nil {
		slog.Warn("job details marshal failed", "err", marshalErr)
		detailsJSON = []byte("{}")
	}
	if runID != "" {
		if _, updErr := s.DB.Exec(ctx, `
      UPDATE job_runs
      SET status = $1, details_json = $2, completed_at = now()
      WHERE id = $3
    `, status, detailsJSON, runID); updErr != nil {
			slog.Warn("job run update failed", "err", updErr)
		}
	}
	return details, err
}

// scheduleGeneration periodically materializes every active recurring
// schedule in every agency out to the configured horizon.
func (s *Service) scheduleGeneration(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			agencies, err := s.listAgencies(ctx)
			if err != nil {
				slog.Warn("generation scheduler agency lookup failed", "err", err)
				continue
			}
			for _, agencyID := range agencies {
				agency := agencyID
				schedules, err := s.Scheduling.ListRecurringSchedules(ctx, agency, true)
				if err != nil {
					slog.Warn("generation scheduler schedule lookup failed", "agencyId", agency, "err", err)
					continue
				}
				for _, sched := range schedules {
					scheduleID := sched.ID
					s.Enqueue(JobGenerateShifts, agency, func(ctx context.Context) (any, error) {
						result, err := s.Scheduling.GenerateRecurringShifts(ctx, agency, scheduleID, s.Cfg.GenerateWeeksAhead, time.Now())
						return map[string]any{
							"scheduleId": scheduleID,
							"created":    result.Created,
							"skipped":    result.Skipped,
							"errors":     result.Errors,
						}, err
					})
				}
			}
		}
	}
}

func (s *Service) listAgencies(ctx context.Context) ([]string, error) {
	rows, err := s.DB.Query(ctx, `SELECT id FROM agencies`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
