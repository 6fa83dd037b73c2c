package api

import (
	"net/http"
	"slices"
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

// reportableContent maps a content kind to the collection its reference
// lives in. Adding a reportable type means adding a row here.
var reportableContent = map[model.ContentKind]string{
	model.ContentVideo:   db.Videos,
	model.ContentComment: db.Comments,
}

type reportBody struct {
	ContentType string `json:"contentType"`
	ContentID   string `json:"contentId"`
	Reason      string `json:"reason"`
	Description string `json:"description"`
}

func (a *API) ReportContent(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID, _ := callerID(c)
	ctx := c.Request.Context()

	var data reportBody
	if err := c.ShouldBindJSON(&data); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})
		return
	}

	kind := model.ContentKind(data.ContentType)
	coll, ok := reportableContent[kind]
	if !ok {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid content type",
			"requestID": requestID,
		})
		return
	}

	if !slices.Contains(model.ReportReasons, data.Reason) {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid report reason",
			"requestID": requestID,
		})
		return
	}

	contentID, err := primitive.ObjectIDFromHex(data.ContentID)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
			"error":     string(kind) + " not found",
			"requestID": requestID,
		})
		return
	}

	if err := a.DB.Collection(coll).FindOne(ctx, bson.M{"_id": contentID}).Err(); err != nil {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
			"error":     string(kind) + " not found",
			"requestID": requestID,
		})
		return
	}

	now := time.Now()
	report := model.Report{
		ContentType: kind,
		Content:     contentID,
		Reason:      data.Reason,
		Description: data.Description,
		Status:      model.ReportStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := a.reports().InsertOne(ctx, &report); err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Failed to submit report",
			"details":   err.Error(),
			"requestID": requestID,
		})

		zap.L().Error("Failed to submit report", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	a.Activity.Log(userID, strings.ToLower(string(kind)), model.ActionReport, contentID, model.TargetKind(kind), nil)

	c.JSON(http.StatusCreated, gin.H{
		"message": string(kind) + " reported successfully",
	})
}

func (a *API) ReportFetchAll(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	ctx := c.Request.Context()
	page, limit, skip := parsePage(c, 20)

	filter := bson.M{}
	if status := c.Query("status"); status != "" {
		filter["status"] = status
	}
	if contentType := c.Query("contentType"); contentType != "" {
		filter["contentType"] = contentType
	}

	cur, err := a.reports().Find(ctx, filter,
		options.Find().
			SetSort(bson.M{"createdAt": -1}).
			SetLimit(int64(limit)).
			SetSkip(skip),
	)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Failed to fetch reports",
			"details":   err.Error(),
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch reports", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	reports := []model.Report{}
	if err := cur.All(ctx, &reports); err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Failed to fetch reports",
			"details":   err.Error(),
			"requestID": requestID,
		})
		return
	}

	total, err := a.reports().CountDocuments(ctx, filter)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Failed to fetch reports",
			"details":   err.Error(),
			"requestID": requestID,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reports": reports,
		"total":   total,
		"page":    page,
		"pages":   pageCount(total, limit),
	})
}
