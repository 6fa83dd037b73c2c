package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Video lifecycle states
const (
	VideoStatusDraft     = "draft"
	VideoStatusScheduled = "scheduled"
	VideoStatusPublished = "published"
	VideoStatusReview    = "review"
	VideoStatusSuspended = "suspended"
)

const (
	VisibilityPublic   = "public"
	VisibilityPrivate  = "private"
	VisibilityUnlisted = "unlisted"
)

type Video struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Title       string               `bson:"title" json:"title"`
	Description string               `bson:"description" json:"description"`
	Filename    string               `bson:"filename" json:"filename"`
	Filepath    string               `bson:"filepath" json:"filepath"`
	Size        int64                `bson:"size" json:"size"`
	MimeType    string               `bson:"mimetype" json:"mimetype"`
	Status      string               `bson:"status" json:"status"`
	Duration    float64              `bson:"duration" json:"duration"`
	User        primitive.ObjectID   `bson:"user" json:"user"`
	Tags        []primitive.ObjectID `bson:"tags" json:"tags"`
	Comments    []primitive.ObjectID `bson:"comments" json:"comments"`
	Thumbnail   string               `bson:"thumbnail,omitempty" json:"thumbnail,omitempty"`
	Views       int64                `bson:"views" json:"views"`
	Likes       int64                `bson:"likes" json:"likes"`
	Dislikes    int64                `bson:"dislikes" json:"dislikes"`
	// ScheduledFor must be in the future while Status is "scheduled".
	// PublishedAt is set the moment Status becomes "published".
	ScheduledFor *time.Time `bson:"scheduledFor,omitempty" json:"scheduledFor,omitempty"`
	PublishedAt  *time.Time `bson:"publishedAt,omitempty" json:"publishedAt,omitempty"`
	Visibility   string     `bson:"visibility" json:"visibility"`
	CreatedAt    time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time  `bson:"updatedAt" json:"updatedAt"`
}

func ValidVideoStatus(s string) bool {
	switch s {
	case VideoStatusDraft, VideoStatusScheduled, VideoStatusPublished, VideoStatusReview, VideoStatusSuspended:
		return true
	}
	return false
}

func ValidVisibility(s string) bool {
	switch s {
	case VisibilityPublic, VisibilityPrivate, VisibilityUnlisted:
		return true
	}
	return false
}
