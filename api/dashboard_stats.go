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

type overviewTotals struct {
	TotalViews    int64 `bson:"totalViews" json:"totalViews"`
	TotalLikes    int64 `bson:"totalLikes" json:"totalLikes"`
	TotalDislikes int64 `bson:"totalDislikes" json:"totalDislikes"`
}

func (a *API) DashboardStats(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID, _ := callerID(c)
	ctx := c.Request.Context()

	fail := func(err error) {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Failed to fetch dashboard statistics",
			"details":   err.Error(),
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch dashboard stats", zap.Error(err), zap.String("requestID", requestID))
	}

	totalVideos, err := a.videos().CountDocuments(ctx, bson.M{"user": userID})
	if err != nil {
		fail(err)
		return
	}

	// Counter sums across all of the user's videos
	cur, err := a.videos().Aggregate(ctx, mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"user": userID}}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":           nil,
			"totalViews":    bson.M{"$sum": "$views"},
			"totalLikes":    bson.M{"$sum": "$likes"},
			"totalDislikes": bson.M{"$sum": "$dislikes"},
		}}},
	})
	if err != nil {
		fail(err)
		return
	}

	totals := []overviewTotals{}
	if err := cur.All(ctx, &totals); err != nil {
		fail(err)
		return
	}

	overview := overviewTotals{}
	if len(totals) > 0 {
		overview = totals[0]
	}

	savedVideos, err := a.savedVideos().CountDocuments(ctx, bson.M{"user": userID})
	if err != nil {
		fail(err)
		return
	}

	watchedVideos, err := a.watchHistories().CountDocuments(ctx, bson.M{"user": userID})
	if err != nil {
		fail(err)
		return
	}

	topVideos := []model.Video{}
	topCur, err := a.videos().Find(ctx, bson.M{"user": userID},
		options.Find().
			SetSort(bson.M{"views": -1}).
			SetLimit(5).
			SetProjection(bson.M{"title": 1, "views": 1, "likes": 1, "dislikes": 1}),
	)
	if err != nil {
		fail(err)
		return
	}
	if err := topCur.All(ctx, &topVideos); err != nil {
		fail(err)
		return
	}

	recent := []model.Video{}
	recentCur, err := a.videos().Find(ctx, bson.M{"user": userID},
		options.Find().
			SetSort(bson.M{"createdAt": -1}).
			SetLimit(5).
			SetProjection(bson.M{"title": 1, "status": 1, "createdAt": 1}),
	)
	if err != nil {
		fail(err)
		return
	}
	if err := recentCur.All(ctx, &recent); err != nil {
		fail(err)
		return
	}

	histCur, err := a.videos().Aggregate(ctx, mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"user": userID}}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":   "$status",
			"count": bson.M{"$sum": 1},
		}}},
	})
	if err != nil {
		fail(err)
		return
	}

	histRows := []struct {
		Status string `bson:"_id"`
		Count  int64  `bson:"count"`
	}{}
	if err := histCur.All(ctx, &histRows); err != nil {
		fail(err)
		return
	}

	statusDistribution := map[string]int64{}
	for _, r := range histRows {
		statusDistribution[r.Status] = r.Count
	}

	c.JSON(http.StatusOK, gin.H{
		"overview": gin.H{
			"totalVideos":   totalVideos,
			"totalViews":    overview.TotalViews,
			"totalLikes":    overview.TotalLikes,
			"totalDislikes": overview.TotalDislikes,
			"savedVideos":   savedVideos,
			"watchedVideos": watchedVideos,
		},
		"topVideos":          topVideos,
		"recentActivity":     recent,
		"statusDistribution": statusDistribution,
	})
}

// ownerBuckets counts events in coll against any of the user's videos,
// bucketed per period. extraMatch narrows the events further (e.g. only
// likes).
func (a *API) ownerBuckets(ctx context.Context, coll *mongo.Collection, userID primitive.ObjectID, cfg periodConfig, dateField string, start, end time.Time, extraMatch bson.M) ([]bucketCount, error) {
	match := bson.M{
		"videoInfo.user": userID,
		dateField:        bson.M{"$gte": start, "$lte": end},
	}
	for k, v := range extraMatch {
		match[k] = v
	}

	cur, err := coll.Aggregate(ctx, mongo.Pipeline{
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         "videos",
			"localField":   "video",
			"foreignField": "_id",
			"as":           "videoInfo",
		}}},
		bson.D{{Key: "$unwind", Value: "$videoInfo"}},
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

func (a *API) ViewsStats(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID, _ := callerID(c)
	ctx := c.Request.Context()

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

	rows, err := a.ownerBuckets(ctx, a.videoViews(), userID, cfg, "viewedAt", start, end, nil)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Failed to fetch views statistics",
			"details":   err.Error(),
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch views stats", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	counts, _ := countsByKey(rows)

	// Lifetime views across all of the user's videos, not just the window
	totalCur, err := a.videoViews().Aggregate(ctx, mongo.Pipeline{
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         "videos",
			"localField":   "video",
			"foreignField": "_id",
			"as":           "videoInfo",
		}}},
		bson.D{{Key: "$unwind", Value: "$videoInfo"}},
		bson.D{{Key: "$match", Value: bson.M{"videoInfo.user": userID}}},
		bson.D{{Key: "$count", Value: "total"}},
	})
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Failed to fetch views statistics",
			"details":   err.Error(),
			"requestID": requestID,
		})
		return
	}

	totalRows := []struct {
		Total int64 `bson:"total"`
	}{}
	if err := totalCur.All(ctx, &totalRows); err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Failed to fetch views statistics",
			"details":   err.Error(),
			"requestID": requestID,
		})
		return
	}

	var totalViews int64
	if len(totalRows) > 0 {
		totalViews = totalRows[0].Total
	}

	c.JSON(http.StatusOK, gin.H{
		"labels":     periodLabels(cfg, now),
		"data":       fillSeries(bucketKeys(cfg, start), counts),
		"totalViews": totalViews,
		"period":     period,
	})
}

func (a *API) EngagementStats(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID, _ := callerID(c)
	ctx := c.Request.Context()

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

		zap.L().Error("Failed to fetch engagement stats", zap.Error(err), zap.String("requestID", requestID))
	}

	comments, err := a.ownerBuckets(ctx, a.comments(), userID, cfg, "createdAt", start, end, nil)
	if err != nil {
		fail(err)
		return
	}

	saves, err := a.ownerBuckets(ctx, a.savedVideos(), userID, cfg, "createdAt", start, end, nil)
	if err != nil {
		fail(err)
		return
	}

	watches, err := a.ownerBuckets(ctx, a.watchHistories(), userID, cfg, "watchedAt", start, end, nil)
	if err != nil {
		fail(err)
		return
	}

	likes, err := a.ownerBuckets(ctx, a.videoLikes(), userID, cfg, "createdAt", start, end, bson.M{"type": model.ReactionLike})
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
