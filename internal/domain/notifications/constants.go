package notifications

const (
	TypeShiftAssigned      = "shift_assigned"
	TypeShiftCancelled     = "shift_cancelled"
	TypeShiftMissed        = "shift_missed"
	TypeConflictDetected   = "conflict_detected"
	TypeOvertimeProjected  = "overtime_projected"
	TypeScheduleGenerated  = "schedule_generated"
	TypeComplianceExpiring = "compliance_expiring"
)
