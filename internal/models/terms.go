package models

import "time"

type TermsState string

const (
	TermsAccepted TermsState = "accepted"
	TermsRejected TermsState = "rejected"
)

// TermsDecision is the single current accept/reject decision for a user,
// updated atomically. The activity stream still carries the accepted_terms /
// rejected_terms history, but the authoritative state lives here rather than
// being inferred from which log entries survived deletion.
type TermsDecision struct {
	UserID    uint       `json:"user_id" gorm:"primaryKey"`
	State     TermsState `json:"state" gorm:"size:16"`
	DecidedAt time.Time  `json:"decided_at"`
}
