package scheduling

import (
	"context"
	"testing"
	"time"
)

func seedMorningShift(store *fakeStore, status string) Shift {
	return store.addShift(Shift{
		ID:          "existing",
		ClientID:    "client-1",
		ClientName:  "Edna Mae",
		CaregiverID: strPtr("cg-1"),
		Date:        day(2026, time.March, 2),
		StartTime:   "08:00",
		EndTime:     "12:00",
		Status:      status,
	})
}

func TestDetectConflictsOverlap(t *testing.T) {
	store := newFakeStore()
	seedMorningShift(store, StatusScheduled)
	svc := NewService(store, 40)

	result, err := svc.DetectConflicts(context.Background(), "agency-1", "cg-1", day(2026, time.March, 2), "11:00", "15:00", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.HasConflict {
		t.Fatal("expected conflict")
	}
	if len(result.Conflicts) != 1 {
		t.Fatalf("expected 1 conflict, got %d", len(result.Conflicts))
	}
	conflict := result.Conflicts[0]
	if conflict.StartTime != "08:00" || conflict.EndTime != "12:00" {
		t.Fatalf("unexpected conflict window %s-%s", conflict.StartTime, conflict.EndTime)
	}
	if conflict.ClientName != "Edna Mae" {
		t.Fatalf("unexpected client name %q", conflict.ClientName)
	}
}

func TestDetectConflictsBackToBack(t *testing.T) {
	store := newFakeStore()
	seedMorningShift(store, StatusScheduled)
	svc := NewService(store, 40)

	result, err := svc.DetectConflicts(context.Background(), "agency-1", "cg-1", day(2026, time.March, 2), "12:00", "16:00", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.HasConflict {
		t.Fatal("back-to-back shifts must not conflict")
	}
}

func TestDetectConflictsIgnoresFinishedShifts(t *testing.T) {
	store := newFakeStore()
	seedMorningShift(store, StatusCompleted)
	store.addShift(Shift{
		ID:          "cancelled",
		ClientID:    "client-1",
		CaregiverID: strPtr("cg-1"),
		Date:        day(2026, time.March, 2),
		StartTime:   "09:00",
		EndTime:     "11:00",
		Status:      StatusCancelled,
	})
	svc := NewService(store, 40)

	result, err := svc.DetectConflicts(context.Background(), "agency-1", "cg-1", day(2026, time.March, 2), "08:00", "12:00", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.HasConflict {
		t.Fatal("completed and cancelled shifts must not block the window")
	}
}

func TestDetectConflictsExcludesEditedShift(t *testing.T) {
	store := newFakeStore()
	seedMorningShift(store, StatusScheduled)
	svc := NewService(store, 40)

	result, err := svc.DetectConflicts(context.Background(), "agency-1", "cg-1", day(2026, time.March, 2), "08:00", "12:00", "existing")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.HasConflict {
		t.Fatal("a shift must not conflict with itself while being edited")
	}
}

func TestDetectConflictsZeroLengthWindow(t *testing.T) {
	store := newFakeStore()
	seedMorningShift(store, StatusScheduled)
	svc := NewService(store, 40)

	result, err := svc.DetectConflicts(context.Background(), "agency-1", "cg-1", day(2026, time.March, 2), "10:00", "10:00", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.HasConflict {
		t.Fatal("zero-length window must not conflict")
	}
}

func TestDetectConflictsAllOverlapsReturned(t *testing.T) {
	store := newFakeStore()
	seedMorningShift(store, StatusScheduled)
	store.addShift(Shift{
		ID:          "second",
		ClientID:    "client-2",
		ClientName:  "Walter Briggs",
		CaregiverID: strPtr("cg-1"),
		Date:        day(2026, time.March, 2),
		StartTime:   "13:00",
		EndTime:     "17:00",
		Status:      StatusInProgress,
	})
	svc := NewService(store, 40)

	result, err := svc.DetectConflicts(context.Background(), "agency-1", "cg-1", day(2026, time.March, 2), "11:00", "14:00", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Conflicts) != 2 {
		t.Fatalf("expected both overlapping shifts, got %d", len(result.Conflicts))
	}
}

func TestDetectConflictsMalformedTime(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, 40)

	if _, err := svc.DetectConflicts(context.Background(), "agency-1", "cg-1", day(2026, time.March, 2), "8am", "12:00", ""); err == nil {
		t.Fatal("expected error for malformed time")
	}
}
