package api

import (
	"net/http"
	"time"

	"vidshare/backend/db"
	"vidshare/backend/model"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type saveVideoBody struct {
	VideoID string `json:"videoId"`
}

func (a *API) VideoSave(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID, _ := callerID(c)

	var data saveVideoBody
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

	if err := a.videos().FindOne(c.Request.Context(), bson.M{"_id": videoID}).Err(); err != nil {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
			"error":     "Video not found",
			"requestID": requestID,
		})
		return
	}

	now := time.Now()
	saved := model.SavedVideo{
		User:      userID,
		Video:     videoID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := a.savedVideos().InsertOne(c.Request.Context(), &saved); err != nil {
		if db.IsDuplicateKey(err) {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"message":   "Video is already saved",
				"requestID": requestID,
			})
			return
		}

		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Failed to save video",
			"details":   err.Error(),
			"requestID": requestID,
		})

		zap.L().Error("Failed to save video", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	a.Activity.Log(userID, model.ActivityTypeSave, model.ActionSave, videoID, model.TargetVideo, nil)

	c.JSON(http.StatusCreated, gin.H{
		"message": "Video saved successfully",
	})
}

func (a *API) VideoUnsave(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID, _ := callerID(c)

	var data saveVideoBody
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

	res, err := a.savedVideos().DeleteOne(c.Request.Context(), bson.M{"user": userID, "video": videoID})
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Failed to remove saved video",
			"details":   err.Error(),
			"requestID": requestID,
		})

		zap.L().Error("Failed to remove saved video", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if res.DeletedCount == 0 {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
			"error":     "Saved video not found",
			"requestID": requestID,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Saved video removed successfully",
	})
}

type savedEntry struct {
	Video     model.Video `bson:"video" json:"video"`
	CreatedAt time.Time   `bson:"createdAt" json:"createdAt"`
}

func (a *API) VideoSavedFetch(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID, _ := callerID(c)
	page, limit, skip := parsePage(c, 10)

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"user": userID}}},
		bson.D{{Key: "$sort", Value: bson.M{"createdAt": -1}}},
		bson.D{{Key: "$skip", Value: skip}},
		bson.D{{Key: "$limit", Value: int64(limit)}},
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         "videos",
			"localField":   "video",
			"foreignField": "_id",
			"as":           "video",
		}}},
		bson.D{{Key: "$unwind", Value: "$video"}},
	}

	cur, err := a.savedVideos().Aggregate(c.Request.Context(), pipeline)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Failed to fetch saved videos",
			"details":   err.Error(),
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch saved videos", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	entries := []savedEntry{}
	if err := cur.All(c.Request.Context(), &entries); err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Failed to fetch saved videos",
			"details":   err.Error(),
			"requestID": requestID,
		})
		return
	}

	total, err := a.savedVideos().CountDocuments(c.Request.Context(), bson.M{"user": userID})
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Failed to fetch saved videos",
			"details":   err.Error(),
			"requestID": requestID,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"videos": entries,
		"total":  total,
		"page":   page,
		"pages":  pageCount(total, limit),
	})
}

func (a *API) VideoSavedCheck(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID, _ := callerID(c)

	videoID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
			"error":     "Video not found",
			"requestID": requestID,
		})
		return
	}

	err = a.savedVideos().FindOne(c.Request.Context(), bson.M{"user": userID, "video": videoID}).Err()
	saved := err == nil

	c.JSON(http.StatusOK, gin.H{
		"saved": saved,
	})
}
