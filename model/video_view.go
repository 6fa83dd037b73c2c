package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// VideoView is one append-only record per view event. The raw log is what
// the dashboard time series are bucketed from.
type VideoView struct {
	ID        primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Video     primitive.ObjectID  `bson:"video" json:"video"`
	User      *primitive.ObjectID `bson:"user,omitempty" json:"user,omitempty"`
	ViewedAt  time.Time           `bson:"viewedAt" json:"viewedAt"`
	DeviceID  string              `bson:"deviceId,omitempty" json:"deviceId,omitempty"`
	IPAddress string              `bson:"ipAddress,omitempty" json:"ipAddress,omitempty"`
	CreatedAt time.Time           `bson:"createdAt" json:"createdAt"`
}
