package dto

import "github.com/google/uuid"

// AuditReport compares a user's ledger with their aggregate balance.
type AuditReport struct {
	UserID      uuid.UUID `json:"user_id"`
	LedgerSum   int       `json:"ledger_sum"`
	RedeemedSum int       `json:"redeemed_sum"`
	TotalPoints int       `json:"total_points"`
	Consistent  bool      `json:"consistent"`
}

// Drift is how far the stored balance is from the ledger.
func (r AuditReport) Drift() int {
	return r.TotalPoints - (r.LedgerSum - r.RedeemedSum)
}

type AuditSummary struct {
	Checked      int           `json:"checked"`
	Inconsistent []AuditReport `json:"inconsistent"`
}
