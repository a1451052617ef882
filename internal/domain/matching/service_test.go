package matching

import (
	"context"
	"errors"
	"testing"
	"time"

	"carelink/internal/domain/core"
	"carelink/internal/domain/scheduling"
)

type fakeDirectory struct {
	client      *core.Client
	caregivers  []core.Caregiver
	assignments []core.Assignment
}

func (f *fakeDirectory) GetClient(context.Context, string, string) (*core.Client, error) {
	return f.client, nil
}

func (f *fakeDirectory) ListActiveCaregivers(context.Context, string) ([]core.Caregiver, error) {
	return f.caregivers, nil
}

func (f *fakeDirectory) ListClientAssignments(context.Context, string, string) ([]core.Assignment, error) {
	return f.assignments, nil
}

// fakeScheduler reports conflicts and hour loads per caregiver id.
type fakeScheduler struct {
	conflicted map[string]bool
	hours      map[string]float64
}

func (f *fakeScheduler) DetectConflicts(_ context.Context, _, caregiverID string, date time.Time, startTime, endTime, _ string) (scheduling.ConflictResult, error) {
	if f.conflicted[caregiverID] {
		return scheduling.ConflictResult{
			HasConflict: true,
			Conflicts: []scheduling.ConflictInfo{
				{ShiftID: "other", Date: date, StartTime: startTime, EndTime: endTime},
			},
		}, nil
	}
	return scheduling.ConflictResult{Conflicts: []scheduling.ConflictInfo{}}, nil
}

func (f *fakeScheduler) WeeklyHours(_ context.Context, _, caregiverID string, _, _ time.Time, _, _ float64) (scheduling.HoursReport, error) {
	current := f.hours[caregiverID]
	return scheduling.HoursReport{
		WithinLimit:    current <= 40,
		CurrentHours:   current,
		ProjectedHours: current,
		MaxHours:       40,
	}, nil
}

func matchDay() time.Time {
	return time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)
}

func TestMatchClassificationAndContinuity(t *testing.T) {
	// A is under-classified for the client but otherwise in good standing;
	// B covers the tier and has worked with the client before.
	a := compliantCaregiver("cg-a")
	a.FirstName, a.LastName = "Alma", "Reyes"
	a.Classification = core.ClassificationBasic
	a.DriverLicense = true

	b := compliantCaregiver("cg-b")
	b.FirstName, b.LastName = "Ben", "Okafor"
	b.Classification = core.ClassificationComprehensive

	dir := &fakeDirectory{
		client:      &core.Client{ID: "client-1", Classification: core.ClassificationIntermediate},
		caregivers:  []core.Caregiver{a, b},
		assignments: []core.Assignment{{CaregiverID: "cg-b", IsPrimary: false}},
	}
	svc := NewService(dir, &fakeScheduler{})

	results, err := svc.MatchCaregivers(context.Background(), "agency-1", "client-1", matchDay(), "09:00", "13:00")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected both candidates, got %d", len(results))
	}
	if results[0].CaregiverID != "cg-b" {
		t.Fatalf("expected cg-b ranked first, got %q", results[0].CaregiverID)
	}
	if results[0].Score != 40 {
		t.Fatalf("expected cg-b score 40 (+20 prior, +15 classification, +5 compliance), got %d", results[0].Score)
	}
	if results[1].Score != 0 {
		t.Fatalf("expected cg-a score 0 (-10 classification, +5 driver, +5 compliance), got %d", results[1].Score)
	}
}

func TestMatchDropsNegativeScores(t *testing.T) {
	bad := compliantCaregiver("cg-bad")
	bad.Classification = core.ClassificationLimited
	bad.BackgroundCheckDate = nil // -10 classification, -15 docs

	dir := &fakeDirectory{
		client:     &core.Client{ID: "client-1", Classification: core.ClassificationComprehensive},
		caregivers: []core.Caregiver{bad},
	}
	svc := NewService(dir, &fakeScheduler{})

	results, err := svc.MatchCaregivers(context.Background(), "agency-1", "client-1", matchDay(), "09:00", "13:00")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("negative-score candidate must be dropped, got %d results", len(results))
	}
}

func TestMatchConflictedSortAfterClean(t *testing.T) {
	// The conflicted primary caregiver scores far higher but still sorts
	// behind the clean candidate.
	primary := compliantCaregiver("cg-primary")
	primary.Classification = core.ClassificationComprehensive

	clean := compliantCaregiver("cg-clean")
	clean.Classification = core.ClassificationIntermediate

	dir := &fakeDirectory{
		client:      &core.Client{ID: "client-1", Classification: core.ClassificationIntermediate},
		caregivers:  []core.Caregiver{primary, clean},
		assignments: []core.Assignment{{CaregiverID: "cg-primary", IsPrimary: true}},
	}
	sched := &fakeScheduler{conflicted: map[string]bool{"cg-primary": true}}
	svc := NewService(dir, sched)

	results, err := svc.MatchCaregivers(context.Background(), "agency-1", "client-1", matchDay(), "09:00", "13:00")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if results[0].CaregiverID != "cg-clean" {
		t.Fatalf("clean candidate must rank first, got %q", results[0].CaregiverID)
	}
	if !results[1].HasConflict || len(results[1].Conflicts) == 0 {
		t.Fatal("conflicted candidate must carry its conflict details")
	}
	if results[1].Score <= results[0].Score {
		t.Fatal("test premise broken: conflicted candidate should outscore the clean one")
	}
}

func TestMatchTiesKeepRosterOrder(t *testing.T) {
	first := compliantCaregiver("cg-first")
	second := compliantCaregiver("cg-second")
	first.Classification = core.ClassificationIntermediate
	second.Classification = core.ClassificationIntermediate

	dir := &fakeDirectory{
		client:     &core.Client{ID: "client-1", Classification: core.ClassificationBasic},
		caregivers: []core.Caregiver{first, second},
	}
	svc := NewService(dir, &fakeScheduler{})

	results, err := svc.MatchCaregivers(context.Background(), "agency-1", "client-1", matchDay(), "09:00", "13:00")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if results[0].CaregiverID != "cg-first" || results[1].CaregiverID != "cg-second" {
		t.Fatalf("tie must keep roster order, got %q then %q", results[0].CaregiverID, results[1].CaregiverID)
	}
}

func TestMatchClientNotFound(t *testing.T) {
	svc := NewService(&fakeDirectory{}, &fakeScheduler{})

	_, err := svc.MatchCaregivers(context.Background(), "agency-1", "nope", matchDay(), "09:00", "13:00")
	if !errors.Is(err, ErrClientNotFound) {
		t.Fatalf("expected ErrClientNotFound, got %v", err)
	}
}

func TestMatchCarriesHoursContext(t *testing.T) {
	caregiver := compliantCaregiver("cg-1")
	caregiver.Classification = core.ClassificationComprehensive

	dir := &fakeDirectory{
		client:     &core.Client{ID: "client-1", Classification: core.ClassificationBasic},
		caregivers: []core.Caregiver{caregiver},
	}
	sched := &fakeScheduler{hours: map[string]float64{"cg-1": 36.5}}
	svc := NewService(dir, sched)

	results, err := svc.MatchCaregivers(context.Background(), "agency-1", "client-1", matchDay(), "09:00", "13:00")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if results[0].WeeklyHours.CurrentHours != 36.5 {
		t.Fatalf("expected hour context 36.5, got %v", results[0].WeeklyHours.CurrentHours)
	}
}
