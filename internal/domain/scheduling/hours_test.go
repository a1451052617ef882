package scheduling

import (
	"context"
	"testing"
	"time"
)

func seedWeekHours(store *fakeStore) {
	// 35 hours Mon-Fri: five 7-hour days.
	for i := 0; i < 5; i++ {
		store.addShift(Shift{
			ClientID:    "client-1",
			CaregiverID: strPtr("cg-1"),
			Date:        day(2026, time.March, 2+i),
			StartTime:   "08:00",
			EndTime:     "15:00",
			Status:      StatusScheduled,
		})
	}
}

func TestWeeklyHoursOvertime(t *testing.T) {
	store := newFakeStore()
	seedWeekHours(store)
	svc := NewService(store, 40)

	report, err := svc.WeeklyHours(context.Background(), "agency-1", "cg-1",
		day(2026, time.March, 2), day(2026, time.March, 8), 8, 40)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.CurrentHours != 35 {
		t.Fatalf("expected 35 current hours, got %v", report.CurrentHours)
	}
	if report.ProjectedHours != 43 {
		t.Fatalf("expected 43 projected hours, got %v", report.ProjectedHours)
	}
	if report.OvertimeHours != 3 {
		t.Fatalf("expected 3 overtime hours, got %v", report.OvertimeHours)
	}
	if report.WithinLimit {
		t.Fatal("expected withinLimit=false")
	}
}

func TestWeeklyHoursWithinLimit(t *testing.T) {
	store := newFakeStore()
	seedWeekHours(store)
	svc := NewService(store, 40)

	report, err := svc.WeeklyHours(context.Background(), "agency-1", "cg-1",
		day(2026, time.March, 2), day(2026, time.March, 8), 5, 40)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !report.WithinLimit {
		t.Fatal("expected withinLimit=true at exactly the cap")
	}
	if report.OvertimeHours != 0 {
		t.Fatalf("expected no overtime, got %v", report.OvertimeHours)
	}
}

func TestWeeklyHoursZeroMaxUsesConfiguredCap(t *testing.T) {
	store := newFakeStore()
	seedWeekHours(store)
	svc := NewService(store, 30)

	report, err := svc.WeeklyHours(context.Background(), "agency-1", "cg-1",
		day(2026, time.March, 2), day(2026, time.March, 8), 0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.MaxHours != 30 {
		t.Fatalf("expected configured cap 30, got %v", report.MaxHours)
	}
	if report.OvertimeHours != 5 {
		t.Fatalf("expected 5 overtime hours against cap 30, got %v", report.OvertimeHours)
	}
}

func TestWeeklyHoursCountsCompletedNotCancelled(t *testing.T) {
	store := newFakeStore()
	store.addShift(Shift{
		ClientID:    "client-1",
		CaregiverID: strPtr("cg-1"),
		Date:        day(2026, time.March, 3),
		StartTime:   "08:00",
		EndTime:     "12:00",
		Status:      StatusCompleted,
	})
	store.addShift(Shift{
		ClientID:    "client-1",
		CaregiverID: strPtr("cg-1"),
		Date:        day(2026, time.March, 4),
		StartTime:   "08:00",
		EndTime:     "12:00",
		Status:      StatusCancelled,
	})
	svc := NewService(store, 40)

	report, err := svc.WeeklyHours(context.Background(), "agency-1", "cg-1",
		day(2026, time.March, 2), day(2026, time.March, 8), 0, 40)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.CurrentHours != 4 {
		t.Fatalf("expected only the completed shift counted, got %v", report.CurrentHours)
	}
}

func TestWeeklyHoursMonotonic(t *testing.T) {
	store := newFakeStore()
	seedWeekHours(store)
	svc := NewService(store, 40)

	prevOvertime := -1.0
	for _, additional := range []float64{0, 2, 5, 8, 16} {
		report, err := svc.WeeklyHours(context.Background(), "agency-1", "cg-1",
			day(2026, time.March, 2), day(2026, time.March, 8), additional, 40)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if report.OvertimeHours < prevOvertime {
			t.Fatalf("overtime decreased from %v to %v as additional hours grew", prevOvertime, report.OvertimeHours)
		}
		prevOvertime = report.OvertimeHours
	}
}
