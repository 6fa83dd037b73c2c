package api

import (
	"context"
	"net/http"
	"time"

	"vidshare/backend/model"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// touchWatchHistory upserts the (user, video) entry and refreshes its
// timestamp. Repeat watches keep a single record.
func (a *API) touchWatchHistory(ctx context.Context, userID, videoID primitive.ObjectID) error {
	_, err := a.watchHistories().UpdateOne(ctx,
		bson.M{"user": userID, "video": videoID},
		bson.M{"$set": bson.M{"watchedAt": time.Now()}},
		options.Update().SetUpsert(true),
	)
	return err
}

type watchHistoryBody struct {
	VideoID string `json:"videoId"`
}

func (a *API) WatchHistoryAdd(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID, _ := callerID(c)

	var data watchHistoryBody
	if err := c.ShouldBindJSON(&data); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})
		return
	}

	videoID, err := primitive.ObjectIDFromHex(data.VideoID)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
			"error":     "Video not found",
			"requestID": requestID,
		})
		return
	}

	if err := a.touchWatchHistory(c.Request.Context(), userID, videoID); err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Failed to update watch history",
			"details":   err.Error(),
			"requestID": requestID,
		})

		zap.L().Error("Failed to upsert watch history", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	a.Activity.Log(userID, model.ActivityTypeWatch, model.ActionView, videoID, model.TargetVideo, nil)

	c.JSON(http.StatusOK, gin.H{
		"message": "Watch history updated",
	})
}

// historyGroupLabel buckets a watch timestamp for display: under a day ago
// is "Today", under two days "Yesterday", anything older the weekday name.
func historyGroupLabel(watchedAt, now time.Time) string {
	age := now.Sub(watchedAt)

	switch {
	case age < 24*time.Hour:
		return "Today"
	case age < 48*time.Hour:
		return "Yesterday"
	default:
		return watchedAt.Weekday().String()
	}
}

type historyEntry struct {
	Video     model.Video `bson:"video" json:"video"`
	WatchedAt time.Time   `bson:"watchedAt" json:"watchedAt"`
}

func (a *API) WatchHistoryFetch(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID, _ := callerID(c)

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"user": userID}}},
		bson.D{{Key: "$sort", Value: bson.M{"watchedAt": -1}}},
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         "videos",
			"localField":   "video",
			"foreignField": "_id",
			"as":           "video",
		}}},
		bson.D{{Key: "$unwind", Value: "$video"}},
	}

	cur, err := a.watchHistories().Aggregate(c.Request.Context(), pipeline)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Failed to fetch watch history",
			"details":   err.Error(),
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch watch history", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	entries := []historyEntry{}
	if err := cur.All(c.Request.Context(), &entries); err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Failed to fetch watch history",
			"details":   err.Error(),
			"requestID": requestID,
		})
		return
	}

	now := time.Now()
	grouped := map[string][]historyEntry{}
	order := []string{}

	for _, e := range entries {
		label := historyGroupLabel(e.WatchedAt, now)
		if _, seen := grouped[label]; !seen {
			order = append(order, label)
		}
		grouped[label] = append(grouped[label], e)
	}

	groups := make([]gin.H, 0, len(order))
	for _, label := range order {
		groups = append(groups, gin.H{
			"label":  label,
			"videos": grouped[label],
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"history": groups,
	})
}
