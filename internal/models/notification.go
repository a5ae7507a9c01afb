package models

import "time"

// Notification types emitted by the example component
const (
	NotificationTypeNewHighFive = "new_high_five"
)

// Notification represents an in-app user notification (PostgreSQL)
type Notification struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Type        string    `json:"type" gorm:"size:30;index"`
	ActorID     uint      `json:"actor_id" gorm:"index"`
	RecipientID uint      `json:"recipient_id" gorm:"index"`
	Message     string    `json:"message"`
	IsRead      bool      `json:"is_read" gorm:"default:false;index"`
	CreatedAt   time.Time `json:"created_at" gorm:"index"`
}

// FormattedNotification is the render-time view of a user's unread
// notifications of one type. When several senders pile up the text switches
// to the grouped "multi" form and the link points at the recipient's own
// screen rather than any single sender.
type FormattedNotification struct {
	Text  string `json:"text"`
	Link  string `json:"link"`
	Count int64  `json:"count"`
}
