package api

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func testContext(t *testing.T, url string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", url, nil)
	return c
}

func TestParsePageDefaults(t *testing.T) {
	c := testContext(t, "/api/videos")

	page, limit, skip := parsePage(c, 10)

	assert.Equal(t, 1, page)
	assert.Equal(t, 10, limit)
	assert.Equal(t, int64(0), skip)
}

func TestParsePageSkipMath(t *testing.T) {
	c := testContext(t, "/api/videos?page=3&limit=25")

	page, limit, skip := parsePage(c, 10)

	assert.Equal(t, 3, page)
	assert.Equal(t, 25, limit)
	assert.Equal(t, int64(50), skip)
}

func TestParsePageClampsNonsense(t *testing.T) {
	c := testContext(t, "/api/videos?page=-4&limit=100000")

	page, limit, _ := parsePage(c, 10)

	assert.Equal(t, 1, page)
	assert.Equal(t, 100, limit)
}

func TestPageCount(t *testing.T) {
	assert.Equal(t, 0, pageCount(0, 10))
	assert.Equal(t, 1, pageCount(10, 10))
	assert.Equal(t, 2, pageCount(11, 10))
	assert.Equal(t, 5, pageCount(97, 20))
}

func TestUserSearchFilter(t *testing.T) {
	filter := userSearchFilter("ali", "active", "admin")

	or, ok := filter["$or"].(bson.A)
	require.True(t, ok)
	assert.Len(t, or, 3)
	assert.Equal(t, "active", filter["status"])
	assert.Equal(t, "admin", filter["role"])
}

func TestUserSearchFilterEmpty(t *testing.T) {
	assert.Empty(t, userSearchFilter("", "", ""))
}

func TestVideoSearchFilter(t *testing.T) {
	id := primitive.NewObjectID()
	filter := videoSearchFilter("cats", []primitive.ObjectID{id})

	regex, ok := filter["title"].(primitive.Regex)
	require.True(t, ok)
	assert.Equal(t, "cats", regex.Pattern)
	assert.Equal(t, "i", regex.Options)
	assert.Equal(t, bson.M{"$in": []primitive.ObjectID{id}}, filter["tags"])
}

func TestVideoSearchFilterNoTags(t *testing.T) {
	filter := videoSearchFilter("cats", nil)

	_, hasTags := filter["tags"]
	assert.False(t, hasTags)
}

func TestActivityFilter(t *testing.T) {
	userID := primitive.NewObjectID()

	filter := activityFilter(userID, "video", "2024-05-01T00:00:00Z", "2024-05-31T00:00:00Z")

	assert.Equal(t, userID, filter["user"])
	assert.Equal(t, "video", filter["type"])

	created, ok := filter["createdAt"].(bson.M)
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), created["$gte"])
	assert.Equal(t, time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC), created["$lte"])
}

func TestActivityFilterIgnoresBadDates(t *testing.T) {
	userID := primitive.NewObjectID()

	filter := activityFilter(userID, "", "not-a-date", "")

	_, hasCreated := filter["createdAt"]
	assert.False(t, hasCreated)
	_, hasType := filter["type"]
	assert.False(t, hasType)
}
