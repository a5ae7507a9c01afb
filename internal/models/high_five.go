package models

import "time"

// HighFive is one row of the per-recipient high-five ledger. The composite
// unique index makes the ledger a set: a (recipient, sender) pair can only
// exist once, and concurrent duplicate sends collapse into a single row at
// the database layer instead of racing over a serialized list.
type HighFive struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	RecipientID uint      `json:"recipient_id" gorm:"index;uniqueIndex:idx_recipient_sender"`
	SenderID    uint      `json:"sender_id" gorm:"uniqueIndex:idx_recipient_sender"`
	CreatedAt   time.Time `json:"created_at"`
}
