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

type addCommentBody struct {
	Content         string `json:"content"`
	VideoID         string `json:"videoId"`
	ParentCommentID string `json:"parentCommentId"`
}

func (a *API) CommentAdd(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID, _ := callerID(c)

	var data addCommentBody
	if err := c.ShouldBindJSON(&data); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})
		return
	}

	if data.Content == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Content field can't be empty",
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

	var parent *primitive.ObjectID
	if data.ParentCommentID != "" {
		p, err := primitive.ObjectIDFromHex(data.ParentCommentID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
				"error":     "Comment not found",
				"requestID": requestID,
			})
			return
		}
		parent = &p
	}

	now := time.Now()
	comment := model.Comment{
		Content:       data.Content,
		User:          userID,
		Video:         videoID,
		ParentComment: parent,
		Status:        "visible",
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	res, err := a.comments().InsertOne(c.Request.Context(), &comment)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Failed to add comment",
			"details":   err.Error(),
			"requestID": requestID,
		})

		zap.L().Error("Failed to add comment", zap.Error(err), zap.String("requestID", requestID))
		return
	}
	comment.ID = res.InsertedID.(primitive.ObjectID)

	// Keep the video's comment list in sync
	if _, err := a.videos().UpdateByID(c.Request.Context(), videoID, bson.M{
		"$push": bson.M{"comments": comment.ID},
	}); err != nil {
		zap.L().Error("Failed to push comment onto video", zap.Error(err), zap.String("requestID", requestID))
	}

	a.Activity.Log(userID, model.ActivityTypeComment, model.ActionCreate, comment.ID, model.TargetComment, map[string]any{"video": videoID.Hex()})

	c.JSON(http.StatusCreated, comment)
}

type updateCommentBody struct {
	Content string `json:"content"`
}

func (a *API) CommentUpdate(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID, _ := callerID(c)

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
			"error":     "Comment not found",
			"requestID": requestID,
		})
		return
	}

	var data updateCommentBody
	if err := c.ShouldBindJSON(&data); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})
		return
	}

	after := options.After
	var comment model.Comment
	err = a.comments().
		FindOneAndUpdate(c.Request.Context(),
			bson.M{"_id": id},
			bson.M{"$set": bson.M{"content": data.Content, "updatedAt": time.Now()}},
			&options.FindOneAndUpdateOptions{ReturnDocument: &after}).
		Decode(&comment)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
			"error":     "Comment not found",
			"requestID": requestID,
		})
		return
	}

	a.Activity.Log(userID, model.ActivityTypeComment, model.ActionUpdate, comment.ID, model.TargetComment, nil)

	c.JSON(http.StatusOK, comment)
}

func (a *API) CommentDelete(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID, _ := callerID(c)

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
			"error":     "Comment not found",
			"requestID": requestID,
		})
		return
	}

	var comment model.Comment
	if err := a.comments().FindOneAndDelete(c.Request.Context(), bson.M{"_id": id}).Decode(&comment); err != nil {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
			"error":     "Comment not found",
			"requestID": requestID,
		})
		return
	}

	if _, err := a.videos().UpdateByID(c.Request.Context(), comment.Video, bson.M{
		"$pull": bson.M{"comments": comment.ID},
	}); err != nil {
		zap.L().Error("Failed to pull comment from video", zap.Error(err), zap.String("requestID", requestID))
	}

	a.Activity.Log(userID, model.ActivityTypeComment, model.ActionDelete, comment.ID, model.TargetComment, nil)

	c.JSON(http.StatusOK, gin.H{
		"message": "Comment deleted successfully",
	})
}
