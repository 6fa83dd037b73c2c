package api

import (
	"net/http"
	"strings"
	"time"

	"vidshare/backend/model"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// listVideos runs a paginated find + count with a shared filter and writes
// the standard videos envelope.
func (a *API) listVideos(c *gin.Context, filter bson.M, errMsg string) {
	requestID := c.MustGet("requestID").(string)
	page, limit, skip := parsePage(c, 10)

	opts := options.Find().SetLimit(int64(limit)).SetSkip(skip)

	cur, err := a.videos().Find(c.Request.Context(), filter, opts)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     errMsg,
			"details":   err.Error(),
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch videos", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	videos := []model.Video{}
	if err := cur.All(c.Request.Context(), &videos); err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     errMsg,
			"details":   err.Error(),
			"requestID": requestID,
		})
		return
	}

	total, err := a.videos().CountDocuments(c.Request.Context(), filter)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     errMsg,
			"details":   err.Error(),
			"requestID": requestID,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"videos": videos,
		"total":  total,
		"page":   page,
		"pages":  pageCount(total, limit),
	})
}

func (a *API) VideoFetchAll(c *gin.Context) {
	a.listVideos(c, bson.M{}, "Failed to fetch videos")
}

func (a *API) VideoFetchByUser(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
			"message":   "User not found. Please verify the user ID and try again.",
			"requestID": requestID,
		})
		return
	}

	a.listVideos(c, bson.M{"user": id}, "Failed to fetch user videos")
}

func (a *API) VideoFetchMine(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	userID, ok := callerID(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"message":   "You are not authorized to perform this action.",
			"requestID": requestID,
		})
		return
	}

	a.listVideos(c, bson.M{"user": userID}, "Failed to fetch user videos")
}

func (a *API) VideoFetchByTag(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	var tag model.Tag
	if err := a.tags().FindOne(c.Request.Context(), bson.M{"name": c.Param("tag")}).Decode(&tag); err != nil {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
			"message":   "Tag not found",
			"requestID": requestID,
		})
		return
	}

	a.listVideos(c, bson.M{"tags": tag.ID}, "Failed to fetch videos")
}

// videoSearchFilter builds the store query for VideoSearch: case-insensitive
// title substring and/or tag membership.
func videoSearchFilter(query string, tagIDs []primitive.ObjectID) bson.M {
	filter := bson.M{}

	if query != "" {
		filter["title"] = primitive.Regex{Pattern: query, Options: "i"}
	}

	if len(tagIDs) > 0 {
		filter["tags"] = bson.M{"$in": tagIDs}
	}

	return filter
}

func (a *API) VideoSearch(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	var tagIDs []primitive.ObjectID
	if raw := c.Query("tags"); raw != "" {
		names := []string{}
		for _, name := range strings.Split(raw, ",") {
			if name = strings.TrimSpace(name); name != "" {
				names = append(names, name)
			}
		}

		cur, err := a.tags().Find(c.Request.Context(), bson.M{"name": bson.M{"$in": names}})
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error":     "Failed to search videos",
				"details":   err.Error(),
				"requestID": requestID,
			})
			return
		}

		tags := []model.Tag{}
		if err := cur.All(c.Request.Context(), &tags); err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error":     "Failed to search videos",
				"details":   err.Error(),
				"requestID": requestID,
			})
			return
		}

		for _, t := range tags {
			tagIDs = append(tagIDs, t.ID)
		}
	}

	a.listVideos(c, videoSearchFilter(c.Query("query"), tagIDs), "Failed to search videos")
}

type videoWithTags struct {
	model.Video
	Tags []model.Tag `json:"tags"`
}

// VideoFetch returns a single video with its tags populated. Fetching a
// video counts as watching it: a view event is logged, the denormalized
// counter is incremented and, for signed-in callers, the watch history entry
// is refreshed.
func (a *API) VideoFetch(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
			"error":     "Video not found",
			"requestID": requestID,
		})
		return
	}

	var video model.Video
	if err := a.videos().FindOne(c.Request.Context(), bson.M{"_id": id}).Decode(&video); err != nil {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
			"error":     "Video not found",
			"requestID": requestID,
		})
		return
	}

	tags := []model.Tag{}
	if len(video.Tags) > 0 {
		cur, err := a.tags().Find(c.Request.Context(), bson.M{"_id": bson.M{"$in": video.Tags}})
		if err == nil {
			if err := cur.All(c.Request.Context(), &tags); err != nil {
				zap.L().Error("Failed to decode tags", zap.Error(err), zap.String("requestID", requestID))
			}
		}
	}

	a.recordView(c, &video)

	c.JSON(http.StatusOK, videoWithTags{Video: video, Tags: tags})
}

func (a *API) recordView(c *gin.Context, video *model.Video) {
	ctx := c.Request.Context()
	deviceID, ip := callerFingerprint(c)
	now := time.Now()

	view := model.VideoView{
		Video:     video.ID,
		ViewedAt:  now,
		DeviceID:  deviceID,
		IPAddress: ip,
		CreatedAt: now,
	}

	userID, authed := callerID(c)
	if authed {
		view.User = &userID
	}

	if _, err := a.videoViews().InsertOne(ctx, &view); err != nil {
		zap.L().Error("Failed to log video view", zap.Error(err))
		return
	}

	if _, err := a.videos().UpdateByID(ctx, video.ID, bson.M{"$inc": bson.M{"views": 1}}); err != nil {
		zap.L().Error("Failed to bump view counter", zap.Error(err))
	}

	if authed {
		if err := a.touchWatchHistory(ctx, userID, video.ID); err != nil {
			zap.L().Error("Failed to refresh watch history", zap.Error(err))
		}

		a.Activity.Log(userID, model.ActivityTypeWatch, model.ActionView, video.ID, model.TargetVideo, nil)
	}
}
