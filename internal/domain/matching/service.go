package matching

import (
	"context"
	"errors"
	"sort"
	"time"

	"carelink/internal/domain/scheduling"
)

var ErrClientNotFound = errors.New("client not found")

// Scheduler is the slice of the scheduling engine the matcher consults per
// candidate: conflict status for the proposed slot and the current week's
// hour load. Both are informational for the caller; neither alters score.
type Scheduler interface {
	DetectConflicts(ctx context.Context, agencyID, caregiverID string, date time.Time, startTime, endTime, excludeShiftID string) (scheduling.ConflictResult, error)
	WeeklyHours(ctx context.Context, agencyID, caregiverID string, weekStart, weekEnd time.Time, additionalHours, maxHours float64) (scheduling.HoursReport, error)
}

type Service struct {
	Directory DirectoryStore
	Scheduler Scheduler
}

func NewService(directory DirectoryStore, scheduler Scheduler) *Service {
	return &Service{Directory: directory, Scheduler: scheduler}
}

// MatchCaregivers ranks every active caregiver in the agency for the
// proposed client slot, best first. Candidates whose score goes negative
// are dropped; conflicted candidates sort after clean ones regardless of
// score, and ties keep roster order.
func (s *Service) MatchCaregivers(ctx context.Context, agencyID, clientID string, date time.Time, startTime, endTime string) ([]MatchResult, error) {
	client, err := s.Directory.GetClient(ctx, agencyID, clientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, ErrClientNotFound
	}

	caregivers, err := s.Directory.ListActiveCaregivers(ctx, agencyID)
	if err != nil {
		return nil, err
	}
	assignments, err := s.Directory.ListClientAssignments(ctx, agencyID, clientID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	weekStart, weekEnd := scheduling.WeekBounds(date)

	results := []MatchResult{}
	for _, caregiver := range caregivers {
		score, reasons := scoreCaregiver(caregiver, *client, assignments, now)
		if score < 0 {
			continue
		}

		conflicts, err := s.Scheduler.DetectConflicts(ctx, agencyID, caregiver.ID, date, startTime, endTime, "")
		if err != nil {
			return nil, err
		}
		hours, err := s.Scheduler.WeeklyHours(ctx, agencyID, caregiver.ID, weekStart, weekEnd, 0, 0)
		if err != nil {
			return nil, err
		}

		results = append(results, MatchResult{
			CaregiverID:    caregiver.ID,
			CaregiverName:  caregiver.FullName(),
			Classification: caregiver.Classification,
			Score:          score,
			Reasons:        reasons,
			WeeklyHours:    hours,
			HasConflict:    conflicts.HasConflict,
			Conflicts:      conflicts.Conflicts,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].HasConflict != results[j].HasConflict {
			return !results[i].HasConflict
		}
		return results[i].Score > results[j].Score
	})
	return results, nil
}
