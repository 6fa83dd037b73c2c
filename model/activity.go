package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Activity types
const (
	ActivityTypeVideo   = "video"
	ActivityTypeComment = "comment"
	ActivityTypeLike    = "like"
	ActivityTypeWatch   = "watch"
	ActivityTypeSave    = "save"
	ActivityTypeUser    = "user"
)

// Activity actions
const (
	ActionCreate  = "create"
	ActionUpdate  = "update"
	ActionDelete  = "delete"
	ActionView    = "view"
	ActionLike    = "like"
	ActionDislike = "dislike"
	ActionSave    = "save"
	ActionReport  = "report"
)

// TargetKind says which collection an activity target points into.
type TargetKind string

const (
	TargetVideo   TargetKind = "Video"
	TargetComment TargetKind = "Comment"
	TargetUser    TargetKind = "User"
)

// Activity is an append-only audit entry, written best-effort after
// mutating operations. Write failures never surface to the caller.
type Activity struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	User       primitive.ObjectID `bson:"user" json:"user"`
	Type       string             `bson:"type" json:"type"`
	Action     string             `bson:"action" json:"action"`
	Target     primitive.ObjectID `bson:"target" json:"target"`
	TargetType TargetKind         `bson:"targetType" json:"targetType"`
	Metadata   map[string]any     `bson:"metadata,omitempty" json:"metadata,omitempty"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
}
