package api

import (
	"math"
	"strconv"

	"vidshare/backend/db"
	"vidshare/backend/middleware"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func (a *API) users() *mongo.Collection          { return a.DB.Collection(db.Users) }
func (a *API) videos() *mongo.Collection         { return a.DB.Collection(db.Videos) }
func (a *API) tags() *mongo.Collection           { return a.DB.Collection(db.Tags) }
func (a *API) comments() *mongo.Collection       { return a.DB.Collection(db.Comments) }
func (a *API) videoViews() *mongo.Collection     { return a.DB.Collection(db.VideoViews) }
func (a *API) videoLikes() *mongo.Collection     { return a.DB.Collection(db.VideoLikes) }
func (a *API) watchHistories() *mongo.Collection { return a.DB.Collection(db.WatchHistories) }
func (a *API) savedVideos() *mongo.Collection    { return a.DB.Collection(db.SavedVideos) }
func (a *API) activities() *mongo.Collection     { return a.DB.Collection(db.Activities) }
func (a *API) reports() *mongo.Collection        { return a.DB.Collection(db.Reports) }

// parsePage reads the 1-indexed page and limit query parameters, clamped to
// sane values. skip is what the store wants as an offset.
func parsePage(c *gin.Context, defLimit int) (page, limit int, skip int64) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}

	limit, _ = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defLimit)))
	if limit < 1 {
		limit = defLimit
	}
	if limit > 100 {
		limit = 100
	}

	return page, limit, int64(page-1) * int64(limit)
}

func pageCount(total int64, limit int) int {
	return int(math.Ceil(float64(total) / float64(limit)))
}

// callerID returns the authenticated user's ObjectID, if any.
func callerID(c *gin.Context) (primitive.ObjectID, bool) {
	raw := c.GetString(middleware.CtxUserID)
	if raw == "" {
		return primitive.NilObjectID, false
	}

	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, false
	}

	return id, true
}

// callerFingerprint identifies anonymous callers for reaction and view
// bookkeeping. Browsers send a stable X-Device-Id; anything else falls back
// to the user agent string.
func callerFingerprint(c *gin.Context) (deviceID, ip string) {
	deviceID = c.GetHeader("X-Device-Id")
	if deviceID == "" {
		deviceID = c.Request.UserAgent()
	}

	return deviceID, c.ClientIP()
}
