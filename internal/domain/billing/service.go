package billing

import (
	"context"
	"time"

	"carelink/internal/domain/scheduling"
	"carelink/internal/platform/numeric"
)

// ShiftSource is the shift lookup billing needs. scheduling.Store
// satisfies it.
type ShiftSource interface {
	GetShift(ctx context.Context, agencyID, shiftID string) (*scheduling.Shift, error)
	ListShifts(ctx context.Context, agencyID string, filter scheduling.ShiftFilter) ([]scheduling.Shift, error)
}

type Service struct {
	Shifts           ShiftSource
	MedicaidRounding bool
}

func NewService(shifts ShiftSource, medicaidRounding bool) *Service {
	return &Service{Shifts: shifts, MedicaidRounding: medicaidRounding}
}

// ShiftLine is one billed visit within a client summary.
type ShiftLine struct {
	ShiftID       string    `json:"shiftId"`
	Date          time.Time `json:"date"`
	StartTime     string    `json:"startTime"`
	EndTime       string    `json:"endTime"`
	BillableHours float64   `json:"billableHours"`
	EVVVerified   bool      `json:"evvVerified"`
}

type ClientSummary struct {
	ClientID   string      `json:"clientId"`
	From       time.Time   `json:"from"`
	To         time.Time   `json:"to"`
	Lines      []ShiftLine `json:"lines"`
	TotalHours float64     `json:"totalHours"`
}

// ShiftBillableHours bills a single shift by id.
func (s *Service) ShiftBillableHours(ctx context.Context, agencyID, shiftID string) (float64, error) {
	shift, err := s.Shifts.GetShift(ctx, agencyID, shiftID)
	if err != nil {
		return 0, err
	}
	if shift == nil {
		return 0, scheduling.ErrShiftNotFound
	}
	return CalculateBillableHours(shift.StartTime, shift.EndTime, s.MedicaidRounding)
}

// ClientBillingSummary totals billable hours over the client's completed
// shifts in the inclusive [from, to] range.
func (s *Service) ClientBillingSummary(ctx context.Context, agencyID, clientID string, from, to time.Time) (ClientSummary, error) {
	summary := ClientSummary{
		ClientID: clientID,
		From:     scheduling.DateOnly(from),
		To:       scheduling.DateOnly(to),
		Lines:    []ShiftLine{},
	}

	shifts, err := s.Shifts.ListShifts(ctx, agencyID, scheduling.ShiftFilter{
		ClientID: clientID,
		Status:   scheduling.StatusCompleted,
		From:     summary.From,
		To:       summary.To,
	})
	if err != nil {
		return summary, err
	}

	total := 0.0
	for _, shift := range shifts {
		hours, err := CalculateBillableHours(shift.StartTime, shift.EndTime, s.MedicaidRounding)
		if err != nil {
			return summary, err
		}
		summary.Lines = append(summary.Lines, ShiftLine{
			ShiftID:       shift.ID,
			Date:          shift.Date,
			StartTime:     shift.StartTime,
			EndTime:       shift.EndTime,
			BillableHours: hours,
			EVVVerified:   shift.EVVVerified,
		})
		total += hours
	}
	summary.TotalHours = numeric.RoundTo(total, 2)
	return summary, nil
}
