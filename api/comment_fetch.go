package api

import (
	"net/http"

	"vidshare/backend/model"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// repliesPreview is how many replies ride along with each top-level comment.
// The rest are fetched through the replies endpoint.
const repliesPreview = 5

type commentWithReplies struct {
	model.Comment
	Replies    []model.Comment `json:"replies"`
	ReplyCount int64           `json:"replyCount"`
}

func (a *API) CommentFetchByVideo(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	ctx := c.Request.Context()
	page, limit, skip := parsePage(c, 10)

	videoID, err := primitive.ObjectIDFromHex(c.Param("videoId"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
			"error":     "Video not found",
			"requestID": requestID,
		})
		return
	}

	filter := bson.M{"video": videoID, "parentComment": nil}

	cur, err := a.comments().Find(ctx, filter,
		options.Find().
			SetSort(bson.M{"createdAt": -1}).
			SetLimit(int64(limit)).
			SetSkip(skip),
	)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Failed to fetch comments",
			"details":   err.Error(),
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch comments", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	comments := []model.Comment{}
	if err := cur.All(ctx, &comments); err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Failed to fetch comments",
			"details":   err.Error(),
			"requestID": requestID,
		})
		return
	}

	out := make([]commentWithReplies, 0, len(comments))
	for _, cm := range comments {
		replyFilter := bson.M{"parentComment": cm.ID}

		replies := []model.Comment{}
		replyCur, err := a.comments().Find(ctx, replyFilter,
			options.Find().SetSort(bson.M{"createdAt": 1}).SetLimit(repliesPreview),
		)
		if err == nil {
			if err := replyCur.All(ctx, &replies); err != nil {
				zap.L().Error("Failed to decode replies", zap.Error(err), zap.String("requestID", requestID))
			}
		}

		replyCount, err := a.comments().CountDocuments(ctx, replyFilter)
		if err != nil {
			replyCount = int64(len(replies))
		}

		out = append(out, commentWithReplies{
			Comment:    cm,
			Replies:    replies,
			ReplyCount: replyCount,
		})
	}

	total, err := a.comments().CountDocuments(ctx, filter)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Failed to fetch comments",
			"details":   err.Error(),
			"requestID": requestID,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"comments": out,
		"total":    total,
		"page":     page,
		"pages":    pageCount(total, limit),
	})
}

func (a *API) CommentFetchReplies(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	ctx := c.Request.Context()
	page, limit, skip := parsePage(c, 10)

	commentID, err := primitive.ObjectIDFromHex(c.Param("commentId"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
			"error":     "Comment not found",
			"requestID": requestID,
		})
		return
	}

	filter := bson.M{"parentComment": commentID}

	cur, err := a.comments().Find(ctx, filter,
		options.Find().
			SetSort(bson.M{"createdAt": 1}).
			SetLimit(int64(limit)).
			SetSkip(skip),
	)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Failed to fetch replies",
			"details":   err.Error(),
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch replies", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	replies := []model.Comment{}
	if err := cur.All(ctx, &replies); err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Failed to fetch replies",
			"details":   err.Error(),
			"requestID": requestID,
		})
		return
	}

	total, err := a.comments().CountDocuments(ctx, filter)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Failed to fetch replies",
			"details":   err.Error(),
			"requestID": requestID,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"replies": replies,
		"total":   total,
		"page":    page,
		"pages":   pageCount(total, limit),
	})
}
