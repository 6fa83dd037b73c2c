package db

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names used across the application
const (
	Users          = "users"
	Videos         = "videos"
	Tags           = "tags"
	Comments       = "comments"
	VideoViews     = "videoviews"
	VideoLikes     = "videolikes"
	WatchHistories = "watchhistories"
	SavedVideos    = "savedvideos"
	Activities     = "activities"
	Reports        = "reports"
)

// EnsureIndexes creates the indexes the handlers rely on. The unique ones
// double as the concurrency-safety mechanism: duplicate inserts surface as
// a well-defined conflict instead of silent double records.
func EnsureIndexes(d *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	unique := options.Index().SetUnique(true)

	specs := map[string][]mongo.IndexModel{
		Users: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "username", Value: 1}}, Options: unique},
		},
		Tags: {
			{Keys: bson.D{{Key: "name", Value: 1}}, Options: unique},
		},
		VideoLikes: {
			{
				Keys:    bson.D{{Key: "video", Value: 1}, {Key: "deviceId", Value: 1}, {Key: "ipAddress", Value: 1}},
				Options: options.Index().SetUnique(true).SetName("video_device_ip_unique"),
			},
		},
		SavedVideos: {
			{Keys: bson.D{{Key: "user", Value: 1}, {Key: "video", Value: 1}}, Options: unique},
		},
		WatchHistories: {
			{Keys: bson.D{{Key: "user", Value: 1}, {Key: "video", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "watchedAt", Value: 1}}},
		},
		Comments: {
			{Keys: bson.D{{Key: "video", Value: 1}, {Key: "createdAt", Value: -1}}},
			{Keys: bson.D{{Key: "parentComment", Value: 1}}},
		},
		VideoViews: {
			{Keys: bson.D{{Key: "video", Value: 1}, {Key: "viewedAt", Value: -1}}},
		},
		Activities: {
			{Keys: bson.D{{Key: "user", Value: 1}, {Key: "createdAt", Value: -1}}},
			{Keys: bson.D{{Key: "type", Value: 1}, {Key: "action", Value: 1}}},
		},
		Reports: {
			{Keys: bson.D{{Key: "status", Value: 1}, {Key: "createdAt", Value: -1}}},
		},
		Videos: {
			{Keys: bson.D{{Key: "user", Value: 1}, {Key: "createdAt", Value: -1}}},
			{Keys: bson.D{{Key: "tags", Value: 1}}},
		},
	}

	for coll, models := range specs {
		if _, err := d.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("failed to create indexes for %s, %w", coll, err)
		}
	}

	return nil
}

// IsDuplicateKey reports whether err is a unique-index violation.
func IsDuplicateKey(err error) bool {
	return mongo.IsDuplicateKeyError(err)
}

// IsDuplicateKeyOn reports whether err is a unique-index violation on an
// index whose name starts with field. The server only exposes the index
// name through the error message, e.g.
// "E11000 duplicate key error collection: vidshare.users index: username_1 dup key: ...".
func IsDuplicateKeyOn(err error, field string) bool {
	if !mongo.IsDuplicateKeyError(err) {
		return false
	}

	var we mongo.WriteException
	if errors.As(err, &we) {
		for _, e := range we.WriteErrors {
			if strings.Contains(e.Message, "index: "+field) {
				return true
			}
		}
	}

	var bwe mongo.BulkWriteException
	if errors.As(err, &bwe) {
		for _, e := range bwe.WriteErrors {
			if strings.Contains(e.Message, "index: "+field) {
				return true
			}
		}
	}

	return false
}
