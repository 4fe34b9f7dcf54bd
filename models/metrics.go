package models

import "time"

// RegistrationStats is a lightweight snapshot of engine activity for
// in-process consumers; the Prometheus handler carries the full series.
type RegistrationStats struct {
	AttemptsTotal      uint64            `json:"attempts_total"`
	Outcomes           map[string]uint64 `json:"outcomes"`
	StructuralFailures uint64            `json:"structural_failures"`
	Withdrawals        uint64            `json:"withdrawals"`
	AverageDecisionMs  float64           `json:"average_decision_ms"`
	GeneratedAt        time.Time         `json:"generated_at"`
}
