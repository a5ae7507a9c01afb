package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ActivityType identifies the kind of activity entry. Keeping this a closed
// set of constants (instead of free-form action strings) lets the recorder
// and its callers switch exhaustively.
type ActivityType string

const (
	ActivityAcceptedTerms ActivityType = "accepted_terms"
	ActivityRejectedTerms ActivityType = "rejected_terms"
	ActivityNewHighFive   ActivityType = "new_high_five"
)

// ActivityComponent is the component slug recorded on every entry
const ActivityComponent = "example"

// ActivityEntry is one item in the shared activity stream (MongoDB)
type ActivityEntry struct {
	ID           primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	UserID       uint               `json:"user_id" bson:"user_id"`
	ItemID       uint               `json:"item_id,omitempty" bson:"item_id,omitempty"`
	Component    string             `json:"component" bson:"component"`
	Type         ActivityType       `json:"type" bson:"type"`
	Action       string             `json:"action" bson:"action"` // rendered text, e.g. "Ana high-fived Bo!"
	HideSitewide bool               `json:"hide_sitewide" bson:"hide_sitewide"`
	RecordedAt   time.Time          `json:"recorded_at" bson:"recorded_at"`
}
