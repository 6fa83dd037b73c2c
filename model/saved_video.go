package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SavedVideo is a "watch later" bookmark, unique per (user, video).
type SavedVideo struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	User      primitive.ObjectID `bson:"user" json:"user"`
	Video     primitive.ObjectID `bson:"video" json:"video"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
