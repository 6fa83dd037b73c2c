package api

import (
	"net/http"
	"strings"
	"time"

	"vidshare/backend/db"
	"vidshare/backend/model"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

type tagBody struct {
	Name string `json:"name"`
}

func (a *API) TagCreate(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	var data tagBody
	if err := c.ShouldBindJSON(&data); err != nil || data.Name == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})
		return
	}

	now := time.Now()
	tag := model.Tag{
		Name:      data.Name,
		CreatedAt: now,
		UpdatedAt: now,
	}

	res, err := a.tags().InsertOne(c.Request.Context(), &tag)
	if err != nil {
		if db.IsDuplicateKey(err) {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"message":   "Tag already exists",
				"requestID": requestID,
			})
			return
		}

		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Failed to create tag",
			"details":   err.Error(),
			"requestID": requestID,
		})

		zap.L().Error("Failed to create tag", zap.Error(err), zap.String("requestID", requestID))
		return
	}
	tag.ID = res.InsertedID.(primitive.ObjectID)

	c.JSON(http.StatusCreated, tag)
}

func (a *API) TagUpdate(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
			"message":   "Tag not found",
			"requestID": requestID,
		})
		return
	}

	var data tagBody
	if err := c.ShouldBindJSON(&data); err != nil || data.Name == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})
		return
	}

	after := options.After
	var tag model.Tag
	err = a.tags().
		FindOneAndUpdate(c.Request.Context(),
			bson.M{"_id": id},
			bson.M{"$set": bson.M{"name": data.Name, "updatedAt": time.Now()}},
			&options.FindOneAndUpdateOptions{ReturnDocument: &after}).
		Decode(&tag)
	if err != nil {
		if db.IsDuplicateKey(err) {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"message":   "Tag already exists",
				"requestID": requestID,
			})
			return
		}

		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
			"message":   "Tag not found",
			"requestID": requestID,
		})
		return
	}

	c.JSON(http.StatusOK, tag)
}

func (a *API) TagDelete(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
			"message":   "Tag not found",
			"requestID": requestID,
		})
		return
	}

	res, err := a.tags().DeleteOne(c.Request.Context(), bson.M{"_id": id})
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Failed to delete tag",
			"details":   err.Error(),
			"requestID": requestID,
		})

		zap.L().Error("Failed to delete tag", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if res.DeletedCount == 0 {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
			"message":   "Tag not found",
			"requestID": requestID,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Tag deleted successfully",
	})
}

type tagBulkBody struct {
	Tags string `json:"tags"`
}

// newTagDocs builds insertable tags for the names not yet taken. IDs are
// assigned client-side so the response can echo them.
func newTagDocs(names []string, taken map[string]bool, now time.Time) []model.Tag {
	tags := []model.Tag{}
	for _, name := range names {
		if taken[name] {
			continue
		}
		taken[name] = true

		tags = append(tags, model.Tag{
			ID:        primitive.NewObjectID(),
			Name:      name,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}

	return tags
}

// TagBulkAdd splits a comma-separated list of names, skips the ones that
// already exist and inserts the rest.
func (a *API) TagBulkAdd(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	ctx := c.Request.Context()

	var data tagBulkBody
	if err := c.ShouldBindJSON(&data); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})
		return
	}

	names := []string{}
	for _, name := range strings.Split(data.Tags, ",") {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}

	cur, err := a.tags().Find(ctx, bson.M{"name": bson.M{"$in": names}})
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Failed to add tags in bulk",
			"details":   err.Error(),
			"requestID": requestID,
		})
		return
	}

	existing := []model.Tag{}
	if err := cur.All(ctx, &existing); err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Failed to add tags in bulk",
			"details":   err.Error(),
			"requestID": requestID,
		})
		return
	}

	taken := make(map[string]bool, len(existing))
	for _, t := range existing {
		taken[t.Name] = true
	}

	newTags := newTagDocs(names, taken, time.Now())

	if len(newTags) > 0 {
		docs := make([]any, len(newTags))
		for i, t := range newTags {
			docs[i] = t
		}

		// Unordered, so a name inserted concurrently since the Find above
		// only skips that one document instead of failing the batch
		_, err := a.tags().InsertMany(ctx, docs, options.InsertMany().SetOrdered(false))
		if err != nil && !db.IsDuplicateKey(err) {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error":     "Failed to add tags in bulk",
				"details":   err.Error(),
				"requestID": requestID,
			})

			zap.L().Error("Failed to insert tags", zap.Error(err), zap.String("requestID", requestID))
			return
		}
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Tags added successfully",
		"newTags": newTags,
	})
}
