package api

import (
	"errors"
	"net/http"
	"os"
	"time"

	"vidshare/backend/model"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// normalizeVideoUpdate validates the mutable fields of a partial update in
// place. scheduledFor is coerced to a time.Time whenever the key is present,
// an uncastable value must never reach the stored Date field.
func normalizeVideoUpdate(data map[string]any, now time.Time) error {
	if raw, ok := data["scheduledFor"]; ok {
		s, ok := raw.(string)
		if !ok {
			return errors.New("Invalid scheduledFor date")
		}

		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return errors.New("Invalid scheduledFor date")
		}
		data["scheduledFor"] = t
	}

	if status, ok := data["status"].(string); ok {
		if !model.ValidVideoStatus(status) {
			return errors.New("Invalid video status")
		}

		switch status {
		case model.VideoStatusScheduled:
			t, ok := data["scheduledFor"].(time.Time)
			if !ok || !t.After(now) {
				return errors.New("Scheduled videos need a future scheduledFor date")
			}
			data["publishedAt"] = nil
		case model.VideoStatusPublished:
			data["publishedAt"] = now
		}
	}

	if visibility, ok := data["visibility"].(string); ok && !model.ValidVisibility(visibility) {
		return errors.New("Invalid video visibility")
	}

	data["updatedAt"] = now
	return nil
}

func (a *API) VideoUpdate(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID, _ := callerID(c)

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
			"error":     "Video not found",
			"requestID": requestID,
		})
		return
	}

	var data map[string]any
	if err := c.ShouldBindJSON(&data); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})
		return
	}

	// Fields the handler owns
	delete(data, "_id")
	delete(data, "id")
	delete(data, "user")
	delete(data, "views")
	delete(data, "likes")
	delete(data, "dislikes")
	delete(data, "comments")
	delete(data, "publishedAt")

	if raw, ok := data["tags"].(string); ok {
		tagIDs, err := a.resolveTags(c.Request.Context(), raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error":     "Failed to update video",
				"details":   err.Error(),
				"requestID": requestID,
			})

			zap.L().Error("Failed to resolve tags", zap.Error(err), zap.String("requestID", requestID))
			return
		}
		data["tags"] = tagIDs
	}

	if err := normalizeVideoUpdate(data, time.Now()); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     err.Error(),
			"requestID": requestID,
		})
		return
	}

	after := options.After
	var video model.Video
	err = a.videos().
		FindOneAndUpdate(c.Request.Context(), bson.M{"_id": id}, bson.M{"$set": data}, &options.FindOneAndUpdateOptions{ReturnDocument: &after}).
		Decode(&video)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
			"error":     "Video not found",
			"requestID": requestID,
		})
		return
	}

	a.Activity.Log(userID, model.ActivityTypeVideo, model.ActionUpdate, video.ID, model.TargetVideo, nil)

	c.JSON(http.StatusOK, video)
}

func (a *API) VideoDelete(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID, _ := callerID(c)

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
			"error":     "Video not found",
			"requestID": requestID,
		})
		return
	}

	var video model.Video
	if err := a.videos().FindOneAndDelete(c.Request.Context(), bson.M{"_id": id}).Decode(&video); err != nil {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
			"error":     "Video not found",
			"requestID": requestID,
		})
		return
	}

	// The record is already gone at this point, a failing unlink leaves an
	// orphaned file behind and surfaces as a 500
	if err := os.Remove(video.Filepath); err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Failed to delete video file",
			"details":   err.Error(),
			"requestID": requestID,
		})

		zap.L().Error("Failed to delete video file", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if video.Thumbnail != "" {
		if err := os.Remove(video.Thumbnail); err != nil {
			zap.L().Warn("Failed to delete thumbnail", zap.Error(err), zap.String("requestID", requestID))
		}
	}

	a.Activity.Log(userID, model.ActivityTypeVideo, model.ActionDelete, video.ID, model.TargetVideo, map[string]any{"title": video.Title})

	c.JSON(http.StatusOK, gin.H{
		"message": "Video deleted successfully",
	})
}
