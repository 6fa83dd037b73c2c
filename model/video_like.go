package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	ReactionLike    = "like"
	ReactionDislike = "dislike"
)

// VideoLike holds at most one reaction per (video, deviceId, ipAddress),
// enforced by a unique index. User is set when the caller was authenticated.
type VideoLike struct {
	ID        primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Video     primitive.ObjectID  `bson:"video" json:"video"`
	User      *primitive.ObjectID `bson:"user,omitempty" json:"user,omitempty"`
	DeviceID  string              `bson:"deviceId" json:"deviceId"`
	IPAddress string              `bson:"ipAddress" json:"ipAddress"`
	Type      string              `bson:"type" json:"type"`
	CreatedAt time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time           `bson:"updatedAt" json:"updatedAt"`
}
