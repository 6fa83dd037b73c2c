package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WatchHistory is upserted per (user, video); WatchedAt is refreshed on
// repeat watches. Entries older than a month get purged by the scheduler.
type WatchHistory struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	User      primitive.ObjectID `bson:"user" json:"user"`
	Video     primitive.ObjectID `bson:"video" json:"video"`
	WatchedAt time.Time          `bson:"watchedAt" json:"watchedAt"`
}
