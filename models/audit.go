package models

import "time"

// AuditAction constants represent actions recorded on the audit trail.
const (
	AuditActionRegister = "REGISTER"
	AuditActionWithdraw = "WITHDRAW"
)

// RegistrationAudit is a single audit trail record. Result holds the
// registration outcome, a structural error code, or the withdrawal result.
type RegistrationAudit struct {
	ID         string        `json:"id"`
	Action     string        `json:"action"`
	StudentID  string        `json:"student_id"`
	CourseCode string        `json:"course_code"`
	Result     string        `json:"result"`
	Latency    time.Duration `json:"latency"`
	At         time.Time     `json:"at"`
}

// Withdrawal results recorded on the audit trail.
const (
	WithdrawResultRemoved     = "REMOVED"
	WithdrawResultNotEnrolled = "NOT_ENROLLED"
)
