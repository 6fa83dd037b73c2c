package api

import (
	"net/http"

	"vidshare/backend/model"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func (a *API) TagFetchAll(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	cur, err := a.tags().Find(c.Request.Context(), bson.M{})
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Failed to fetch tags",
			"details":   err.Error(),
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch tags", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	tags := []model.Tag{}
	if err := cur.All(c.Request.Context(), &tags); err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Failed to fetch tags",
			"details":   err.Error(),
			"requestID": requestID,
		})
		return
	}

	c.JSON(http.StatusOK, tags)
}

func (a *API) TagFetch(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
			"message":   "Tag not found",
			"requestID": requestID,
		})
		return
	}

	var tag model.Tag
	if err := a.tags().FindOne(c.Request.Context(), bson.M{"_id": id}).Decode(&tag); err != nil {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
			"message":   "Tag not found",
			"requestID": requestID,
		})
		return
	}

	c.JSON(http.StatusOK, tag)
}

// TagSearch matches tags by case-insensitive substring. Results come back in
// insertion order since _id sorts by creation time.
func (a *API) TagSearch(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	query := c.Query("query")
	if query == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"message":   "Query parameter is required",
			"requestID": requestID,
		})
		return
	}

	cur, err := a.tags().Find(c.Request.Context(), bson.M{
		"name": primitive.Regex{Pattern: query, Options: "i"},
	})
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Failed to search tags",
			"details":   err.Error(),
			"requestID": requestID,
		})

		zap.L().Error("Failed to search tags", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	tags := []model.Tag{}
	if err := cur.All(c.Request.Context(), &tags); err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Failed to search tags",
			"details":   err.Error(),
			"requestID": requestID,
		})
		return
	}

	c.JSON(http.StatusOK, tags)
}
