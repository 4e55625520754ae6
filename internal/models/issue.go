package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// IssueStatus enumerates the moderation lifecycle states.
type IssueStatus string

const (
	StatusPending  IssueStatus = "pending"
	StatusAccepted IssueStatus = "accepted"
	StatusRejected IssueStatus = "rejected"
)

// KnownStatus reports whether s is one of the three lifecycle states.
func KnownStatus(s IssueStatus) bool {
	switch s {
	case StatusPending, StatusAccepted, StatusRejected:
		return true
	}
	return false
}

// ValidTransition reports whether an issue may move from one status to
// another. Pending is the sole initial state; accepted and rejected are
// terminal.
func ValidTransition(from, to IssueStatus) bool {
	return from == StatusPending && (to == StatusAccepted || to == StatusRejected)
}

// Issue represents a civic complaint submitted with photo evidence.
// EmailID is a soft reference to a User's email; the store does not
// enforce that a matching account exists.
type Issue struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Photo       string             `bson:"photo" json:"photo"`
	Location    string             `bson:"location" json:"location"`
	EmailID     string             `bson:"emailid" json:"emailid"`
	Category    string             `bson:"category" json:"category"`
	Issue       string             `bson:"issue" json:"issue"`
	Description string             `bson:"description" json:"description"`
	Date        string             `bson:"date" json:"date"`
	CreatedAt   time.Time          `bson:"created_at" json:"-"`
	Status      IssueStatus        `bson:"status" json:"status"`
}

// IssueWithUser is the aggregated read view: an issue plus the
// submitter's resolved display name.
type IssueWithUser struct {
	Issue    `bson:",inline"`
	Username string `json:"username"`
}
