package api

import (
	"context"
	"net/http"
	"os"
	"path"
	"strconv"
	"strings"
	"time"

	"vidshare/backend/model"
	"vidshare/backend/service"
	"vidshare/backend/util"

	"github.com/gin-gonic/gin"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// resolveTags maps a comma-separated list of tag names to tag IDs, creating
// the tags that don't exist yet.
func (a *API) resolveTags(ctx context.Context, raw string) ([]primitive.ObjectID, error) {
	ids := []primitive.ObjectID{}

	for _, name := range strings.Split(raw, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}

		var tag model.Tag
		err := a.tags().FindOne(ctx, bson.M{"name": name}).Decode(&tag)
		if err == nil {
			ids = append(ids, tag.ID)
			continue
		}

		now := time.Now()
		res, err := a.tags().InsertOne(ctx, &model.Tag{Name: name, CreatedAt: now, UpdatedAt: now})
		if err != nil {
			// A concurrent insert beat us to it, pick up the winner
			var existing model.Tag
			if ferr := a.tags().FindOne(ctx, bson.M{"name": name}).Decode(&existing); ferr == nil {
				ids = append(ids, existing.ID)
				continue
			}
			return nil, err
		}

		ids = append(ids, res.InsertedID.(primitive.ObjectID))
	}

	return ids, nil
}

func (a *API) VideoUpload(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID, _ := callerID(c)

	fh, err := c.FormFile("video")
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "No file provided",
			"requestID": requestID,
		})
		return
	}

	title := c.PostForm("title")
	if title == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Title field can't be empty",
			"requestID": requestID,
		})
		return
	}

	status := c.DefaultPostForm("status", model.VideoStatusPublished)
	if !model.ValidVideoStatus(status) {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid video status",
			"requestID": requestID,
		})
		return
	}

	visibility := c.DefaultPostForm("visibility", model.VisibilityPublic)
	if !model.ValidVisibility(visibility) {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid video visibility",
			"requestID": requestID,
		})
		return
	}

	var scheduledFor *time.Time
	if raw := c.PostForm("scheduledFor"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error":     "Invalid scheduledFor timestamp",
				"requestID": requestID,
			})
			return
		}
		scheduledFor = &t
	}

	if status == model.VideoStatusScheduled && (scheduledFor == nil || !scheduledFor.After(time.Now())) {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Scheduled videos need a future scheduledFor date",
			"requestID": requestID,
		})
		return
	}

	suffix, err := gonanoid.New()
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Failed to upload video",
			"details":   err.Error(),
			"requestID": requestID,
		})
		return
	}

	filename := util.SanitizeTitle(title) + "-" + suffix + path.Ext(fh.Filename)
	filepath := path.Join(a.Cfg.UploadDir, "videos", filename)

	if err := os.MkdirAll(path.Dir(filepath), 0o755); err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Failed to upload video",
			"details":   err.Error(),
			"requestID": requestID,
		})
		return
	}

	if err := c.SaveUploadedFile(fh, filepath); err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Failed to upload video",
			"details":   err.Error(),
			"requestID": requestID,
		})

		zap.L().Error("Failed to store uploaded file", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	tagIDs, err := a.resolveTags(c.Request.Context(), c.PostForm("tags"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Failed to upload video",
			"details":   err.Error(),
			"requestID": requestID,
		})

		zap.L().Error("Failed to resolve tags", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	duration, _ := strconv.ParseFloat(c.PostForm("duration"), 64)

	now := time.Now()
	video := model.Video{
		Title:        title,
		Description:  c.PostForm("description"),
		Filename:     filename,
		Filepath:     filepath,
		Size:         fh.Size,
		MimeType:     fh.Header.Get("Content-Type"),
		Status:       status,
		Duration:     duration,
		User:         userID,
		Tags:         tagIDs,
		Comments:     []primitive.ObjectID{},
		Visibility:   visibility,
		ScheduledFor: scheduledFor,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if status == model.VideoStatusPublished {
		video.PublishedAt = &now
	}

	res, err := a.videos().InsertOne(c.Request.Context(), &video)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Failed to upload video",
			"details":   err.Error(),
			"requestID": requestID,
		})

		zap.L().Error("Failed to save video record", zap.Error(err), zap.String("requestID", requestID))
		return
	}
	video.ID = res.InsertedID.(primitive.ObjectID)

	// The record is kept even when the thumbnail can't be generated, the
	// frontend falls back to a placeholder until a re-run fills it in
	thumb := path.Join(a.Cfg.UploadDir, "thumbnails", video.ID.Hex()+".png")
	if err := os.MkdirAll(path.Dir(thumb), 0o755); err == nil {
		err = service.MakeThumbnail(filepath, thumb)
	}
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Failed to generate thumbnail",
			"details":   err.Error(),
			"requestID": requestID,
		})

		zap.L().Error("Failed to generate thumbnail", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	video.Thumbnail = thumb
	if _, err := a.videos().UpdateByID(c.Request.Context(), video.ID, bson.M{"$set": bson.M{"thumbnail": thumb}}); err != nil {
		zap.L().Error("Failed to persist thumbnail path", zap.Error(err), zap.String("requestID", requestID))
	}

	a.Activity.Log(userID, model.ActivityTypeVideo, model.ActionCreate, video.ID, model.TargetVideo, map[string]any{"title": video.Title})

	c.JSON(http.StatusCreated, video)
}
