package api

import (
	"net/http"
	"time"

	"vidshare/backend/model"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// activityFilter builds the store query for a user's audit trail. Dates are
// RFC 3339; a bad date is ignored rather than rejected.
func activityFilter(userID primitive.ObjectID, typ, startDate, endDate string) bson.M {
	filter := bson.M{"user": userID}

	if typ != "" {
		filter["type"] = typ
	}

	created := bson.M{}
	if t, err := time.Parse(time.RFC3339, startDate); err == nil {
		created["$gte"] = t
	}
	if t, err := time.Parse(time.RFC3339, endDate); err == nil {
		created["$lte"] = t
	}
	if len(created) > 0 {
		filter["createdAt"] = created
	}

	return filter
}

func (a *API) listActivities(c *gin.Context, filter bson.M) {
	requestID := c.MustGet("requestID").(string)
	ctx := c.Request.Context()
	page, limit, skip := parsePage(c, 20)

	cur, err := a.activities().Find(ctx, filter,
		options.Find().
			SetSort(bson.M{"createdAt": -1}).
			SetLimit(int64(limit)).
			SetSkip(skip),
	)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Failed to fetch activity",
			"details":   err.Error(),
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch activities", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	activities := []model.Activity{}
	if err := cur.All(ctx, &activities); err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Failed to fetch activity",
			"details":   err.Error(),
			"requestID": requestID,
		})
		return
	}

	total, err := a.activities().CountDocuments(ctx, filter)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Failed to fetch activity",
			"details":   err.Error(),
			"requestID": requestID,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"activities": activities,
		"total":      total,
		"page":       page,
		"pages":      pageCount(total, limit),
	})
}

func (a *API) ActivityFetch(c *gin.Context) {
	userID, _ := callerID(c)
	a.listActivities(c, activityFilter(userID, c.Query("type"), c.Query("startDate"), c.Query("endDate")))
}

func (a *API) VideoActivityFetch(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	videoID, err := primitive.ObjectIDFromHex(c.Param("videoId"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
			"error":     "Video not found",
			"requestID": requestID,
		})
		return
	}

	a.listActivities(c, bson.M{
		"target": videoID,
		"type":   bson.M{"$in": bson.A{model.ActivityTypeVideo, model.ActivityTypeComment}},
	})
}
