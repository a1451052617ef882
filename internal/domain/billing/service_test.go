package billing

import (
	"context"
	"errors"
	"testing"
	"time"

	"carelink/internal/domain/scheduling"
)

type fakeShiftSource struct {
	shifts []scheduling.Shift
}

func (f *fakeShiftSource) GetShift(_ context.Context, _, shiftID string) (*scheduling.Shift, error) {
	for i := range f.shifts {
		if f.shifts[i].ID == shiftID {
			sh := f.shifts[i]
			return &sh, nil
		}
	}
	return nil, nil
}

func (f *fakeShiftSource) ListShifts(_ context.Context, _ string, filter scheduling.ShiftFilter) ([]scheduling.Shift, error) {
	var out []scheduling.Shift
	for _, sh := range f.shifts {
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

func billingDay(d int) time.Time {
	return time.Date(2026, time.March, d, 0, 0, 0, 0, time.UTC)
}

func TestShiftBillableHours(t *testing.T) {
	source := &fakeShiftSource{shifts: []scheduling.Shift{
		{ID: "shift-1", ClientID: "client-1", Date: billingDay(2), StartTime: "08:00", EndTime: "08:50", Status: scheduling.StatusCompleted},
	}}
	svc := NewService(source, true)

	hours, err := svc.ShiftBillableHours(context.Background(), "agency-1", "shift-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hours != 0.75 {
		t.Fatalf("expected 0.75 billable hours, got %v", hours)
	}
}

func TestShiftBillableHoursNotFound(t *testing.T) {
	svc := NewService(&fakeShiftSource{}, false)

	_, err := svc.ShiftBillableHours(context.Background(), "agency-1", "nope")
	if !errors.Is(err, scheduling.ErrShiftNotFound) {
		t.Fatalf("expected ErrShiftNotFound, got %v", err)
	}
}

func TestClientBillingSummary(t *testing.T) {
	source := &fakeShiftSource{shifts: []scheduling.Shift{
		{ID: "shift-1", ClientID: "client-1", Date: billingDay(2), StartTime: "08:00", EndTime: "12:00", Status: scheduling.StatusCompleted, EVVVerified: true},
		{ID: "shift-2", ClientID: "client-1", Date: billingDay(4), StartTime: "08:00", EndTime: "08:50", Status: scheduling.StatusCompleted},
		{ID: "shift-3", ClientID: "client-1", Date: billingDay(6), StartTime: "08:00", EndTime: "12:00", Status: scheduling.StatusCancelled},
		{ID: "shift-4", ClientID: "client-2", Date: billingDay(2), StartTime: "08:00", EndTime: "12:00", Status: scheduling.StatusCompleted},
		{ID: "shift-5", ClientID: "client-1", Date: billingDay(20), StartTime: "08:00", EndTime: "12:00", Status: scheduling.StatusCompleted},
	}}
	svc := NewService(source, true)

	summary, err := svc.ClientBillingSummary(context.Background(), "agency-1", "client-1", billingDay(1), billingDay(7))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(summary.Lines) != 2 {
		t.Fatalf("expected 2 billed visits, got %d", len(summary.Lines))
	}
	if summary.TotalHours != 4.75 {
		t.Fatalf("expected 4.75 total hours, got %v", summary.TotalHours)
	}
	if !summary.Lines[0].EVVVerified {
		t.Fatal("verification flag must carry through to the line")
	}
}
