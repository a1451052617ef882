package scheduling

import "time"

const (
	StatusScheduled  = "Scheduled"
	StatusInProgress = "InProgress"
	StatusCompleted  = "Completed"
	StatusMissed     = "Missed"
	StatusCancelled  = "Cancelled"
)

const (
	FrequencyWeekly   = "weekly"
	FrequencyBiweekly = "biweekly"
)

const (
	EVVMethodMobile    = "mobile"
	EVVMethodTelephony = "telephony"
)

// ConflictStatuses are the shift states that block a caregiver's time.
// Hours accounting additionally counts completed visits.
var (
	ConflictStatuses = []string{StatusScheduled, StatusInProgress}
	HoursStatuses    = []string{StatusScheduled, StatusInProgress, StatusCompleted}
)

type Shift struct {
	ID                  string     `json:"id"`
	AgencyID            string     `json:"agencyId"`
	ClientID            string     `json:"clientId"`
	ClientName          string     `json:"clientName,omitempty"`
	CaregiverID         *string    `json:"caregiverId,omitempty"` // nil = open shift
	Date                time.Time  `json:"date"`
	StartTime           string     `json:"startTime"`
	EndTime             string     `json:"endTime"`
	Status              string     `json:"status"`
	Tasks               []string   `json:"tasks"`
	Location            string     `json:"location"`
	Notes               string     `json:"notes"`
	RecurringScheduleID *string    `json:"recurringScheduleId,omitempty"`
	ClockInTime         *time.Time `json:"clockInTime,omitempty"`
	ClockOutTime        *time.Time `json:"clockOutTime,omitempty"`
	ClockInLat          *float64   `json:"clockInLat,omitempty"`
	ClockInLng          *float64   `json:"clockInLng,omitempty"`
	ClockOutLat         *float64   `json:"clockOutLat,omitempty"`
	ClockOutLng         *float64   `json:"clockOutLng,omitempty"`
	EVVVerified         bool       `json:"evvVerified"`
	EVVMethod           string     `json:"evvMethod,omitempty"`
	CreatedAt           time.Time  `json:"createdAt"`
	UpdatedAt           time.Time  `json:"updatedAt"`
}

// ShiftInput carries caller-supplied fields for a new shift. Defaults are
// applied once in Normalize, not scattered through call sites.
type ShiftInput struct {
	ClientID            string    `json:"clientId"`
	CaregiverID         *string   `json:"caregiverId,omitempty"`
	Date                time.Time `json:"date"`
	StartTime           string    `json:"startTime"`
	EndTime             string    `json:"endTime"`
	Tasks               []string  `json:"tasks"`
	Location            string    `json:"location"`
	Notes               string    `json:"notes"`
	RecurringScheduleID *string   `json:"recurringScheduleId,omitempty"`
}

func (in *ShiftInput) Normalize() {
	if in.Tasks == nil {
		in.Tasks = []string{}
	}
	in.Date = DateOnly(in.Date)
}

type RecurringSchedule struct {
	ID          string     `json:"id"`
	AgencyID    string     `json:"agencyId"`
	ClientID    string     `json:"clientId"`
	CaregiverID *string    `json:"caregiverId,omitempty"`
	Frequency   string     `json:"frequency"`
	DaysOfWeek  []int      `json:"daysOfWeek"` // Sunday=0
	StartTime   string     `json:"startTime"`
	EndTime     string     `json:"endTime"`
	StartDate   time.Time  `json:"startDate"`
	EndDate     *time.Time `json:"endDate,omitempty"`
	Tasks       []string   `json:"tasks"`
	Location    string     `json:"location"`
	IsActive    bool       `json:"isActive"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// ConflictInfo describes one existing shift overlapping a proposed window.
// Derived per request, never stored.
type ConflictInfo struct {
	ShiftID    string    `json:"shiftId"`
	Date       time.Time `json:"date"`
	StartTime  string    `json:"startTime"`
	EndTime    string    `json:"endTime"`
	ClientName string    `json:"clientName"`
}

type ConflictResult struct {
	HasConflict bool           `json:"hasConflict"`
	Conflicts   []ConflictInfo `json:"conflicts"`
}

// HoursReport is advisory: it reports projected weekly hours, the caller
// decides whether to reject or warn.
type HoursReport struct {
	WithinLimit    bool    `json:"withinLimit"`
	CurrentHours   float64 `json:"currentHours"`
	ProjectedHours float64 `json:"projectedHours"`
	OvertimeHours  float64 `json:"overtimeHours"`
	MaxHours       float64 `json:"maxHours"`
}

type GenerateResult struct {
	Created int `json:"created"`
	Skipped int `json:"skipped"`
	Errors  int `json:"errors"`
}

// ShiftFilter narrows shift listings.
type ShiftFilter struct {
	CaregiverID string
	ClientID    string
	Status      string
	From        time.Time
	To          time.Time
}

// DateOnly truncates a timestamp to its calendar day in UTC.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// WeekStart returns the Monday on or before the given day. Weeks are
// Monday-anchored even though DaysOfWeek uses Sunday=0 indexing, so a
// Sunday belongs to the week that started six days earlier.
func WeekStart(day time.Time) time.Time {
	day = DateOnly(day)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

// WeekBounds returns the inclusive Monday..Sunday range containing day.
func WeekBounds(day time.Time) (time.Time, time.Time) {
	start := WeekStart(day)
	return start, start.AddDate(0, 0, 6)
}
