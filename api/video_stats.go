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
	"go.uber.org/zap"
)

// videoBuckets counts events in coll against a single video, bucketed per
// period.
func (a *API) videoBuckets(ctx context.Context, coll *mongo.Collection, videoID primitive.ObjectID, cfg periodConfig, dateField string, start, end time.Time, extraMatch bson.M) ([]bucketCount, error) {
	match := bson.M{
		"video":   videoID,
		dateField: bson.M{"$gte": start, "$lte": end},
	}
	for k, v := range extraMatch {
		match[k] = v
	}

	cur, err := coll.Aggregate(ctx, mongo.Pipeline{
		bson.D{{Key: "$match", Value: match}},
		groupByBucket(cfg, dateField),
		bson.D{{Key: "$sort", Value: bson.M{"_id": 1}}},
	})
	if err != nil {
		return nil, err
	}

	rows := []bucketCount{}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}

	return rows, nil
}

func (a *API) VideoViewsStats(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	ctx := c.Request.Context()

	videoID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
			"error":     "Video not found",
			"requestID": requestID,
		})
		return
	}

	var video model.Video
	if err := a.videos().FindOne(ctx, bson.M{"_id": videoID}).Decode(&video); err != nil {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
			"error":     "Video not found",
			"requestID": requestID,
		})
		return
	}

	period := c.DefaultQuery("period", "week")
	cfg, ok := periodSettings(period)
	if !ok {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid period, use week, month or year",
			"requestID": requestID,
		})
		return
	}

	now := time.Now()
	start, end := dateRange(cfg, now)

	rows, err := a.videoBuckets(ctx, a.videoViews(), videoID, cfg, "viewedAt", start, end, nil)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Failed to fetch views statistics",
			"details":   err.Error(),
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch video views stats", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	counts, _ := countsByKey(rows)

	c.JSON(http.StatusOK, gin.H{
		"labels":     periodLabels(cfg, now),
		"data":       fillSeries(bucketKeys(cfg, start), counts),
		"totalViews": video.Views,
		"period":     period,
	})
}

func (a *API) VideoEngagementStats(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	ctx := c.Request.Context()

	videoID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
			"error":     "Video not found",
			"requestID": requestID,
		})
		return
	}

	if err := a.videos().FindOne(ctx, bson.M{"_id": videoID}).Err(); err != nil {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
			"error":     "Video not found",
			"requestID": requestID,
		})
		return
	}

	period := c.DefaultQuery("period", "week")
	cfg, ok := periodSettings(period)
	if !ok {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid period, use week, month or year",
			"requestID": requestID,
		})
		return
	}

	now := time.Now()
	start, end := dateRange(cfg, now)
	keys := bucketKeys(cfg, start)

	fail := func(err error) {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Failed to fetch engagement statistics",
			"details":   err.Error(),
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch video engagement stats", zap.Error(err), zap.String("requestID", requestID))
	}

	comments, err := a.videoBuckets(ctx, a.comments(), videoID, cfg, "createdAt", start, end, nil)
	if err != nil {
		fail(err)
		return
	}

	saves, err := a.videoBuckets(ctx, a.savedVideos(), videoID, cfg, "createdAt", start, end, nil)
	if err != nil {
		fail(err)
		return
	}

	watches, err := a.videoBuckets(ctx, a.watchHistories(), videoID, cfg, "watchedAt", start, end, nil)
	if err != nil {
		fail(err)
		return
	}

	likes, err := a.videoBuckets(ctx, a.videoLikes(), videoID, cfg, "createdAt", start, end, bson.M{"type": model.ReactionLike})
	if err != nil {
		fail(err)
		return
	}

	commentCounts, commentTotal := countsByKey(comments)
	saveCounts, saveTotal := countsByKey(saves)
	watchCounts, watchTotal := countsByKey(watches)
	likeCounts, likeTotal := countsByKey(likes)

	c.JSON(http.StatusOK, gin.H{
		"labels": periodLabels(cfg, now),
		"data": gin.H{
			"comments": fillSeries(keys, commentCounts),
			"saves":    fillSeries(keys, saveCounts),
			"watches":  fillSeries(keys, watchCounts),
			"likes":    fillSeries(keys, likeCounts),
		},
		"totals": gin.H{
			"comments": commentTotal,
			"saves":    saveTotal,
			"watches":  watchTotal,
			"likes":    likeTotal,
		},
		"period": period,
	})
}
