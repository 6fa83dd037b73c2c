package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ContentKind is the explicit tag of a report's content reference.
// Handlers resolve it through a lookup table instead of dispatching on a
// free-form field name.
type ContentKind string

const (
	ContentVideo   ContentKind = "Video"
	ContentComment ContentKind = "Comment"
)

const (
	ReportStatusPending   = "pending"
	ReportStatusReviewed  = "reviewed"
	ReportStatusResolved  = "resolved"
	ReportStatusDismissed = "dismissed"
)

var ReportReasons = []string{
	"inappropriate",
	"spam",
	"harassment",
	"violence",
	"copyright",
	"other",
}

type Report struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ContentType ContentKind        `bson:"contentType" json:"contentType"`
	Content     primitive.ObjectID `bson:"content" json:"content"`
	Reason      string             `bson:"reason" json:"reason"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Status      string             `bson:"status" json:"status"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}
