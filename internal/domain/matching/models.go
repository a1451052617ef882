package matching

import "carelink/internal/domain/scheduling"

// MatchResult is a ranked candidate for a proposed slot. Recomputed per
// request, never persisted.
type MatchResult struct {
	CaregiverID    string                    `json:"caregiverId"`
	CaregiverName  string                    `json:"caregiverName"`
	Classification string                    `json:"classification"`
	Score          int                       `json:"score"`
	Reasons        []string                  `json:"reasons"`
	WeeklyHours    scheduling.HoursReport    `json:"weeklyHours"`
	HasConflict    bool                      `json:"hasConflict"`
	Conflicts      []scheduling.ConflictInfo `json:"conflicts"`
}
