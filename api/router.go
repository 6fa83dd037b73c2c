// Package api contains all endpoints available
package api

import (
	"time"

	"vidshare/backend/config"
	"vidshare/backend/db"
	"vidshare/backend/middleware"
	"vidshare/backend/service"

	cache "github.com/chenyahui/gin-cache"
	"github.com/chenyahui/gin-cache/persist"
	ginzap "github.com/gin-contrib/zap"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	gray  = "\x1b[90m"
	reset = "\x1b[0m"
)

var store = persist.NewMemoryStore(time.Minute)

type API struct {
	Cfg      *config.Config
	DB       *mongo.Database
	Router   *gin.Engine
	Mailer   *service.Mailer
	Activity *service.ActivityLogger
}

func NewRouter(cfg *config.Config, d *mongo.Database) (*API, error) {
	a := &API{
		Cfg:      cfg,
		DB:       d,
		Mailer:   service.NewMailer(cfg),
		Activity: service.NewActivityLogger(d.Collection(db.Activities), 1024),
	}

	makeLogger(cfg.LogLevel)

	router := gin.New()
	a.Router = router

	router.Use(
		cors.New(cors.Config{
			AllowOrigins:     cfg.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Device-Id"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
		gin.Recovery(),
		middleware.NewRequestIDMiddleware(),
		ginzap.GinzapWithConfig(zap.L(), &ginzap.Config{
			TimeFormat: "15:04:05.000",
			UTC:        true,
			Skipper: func(c *gin.Context) bool {
				return c.Request.Method == "HEAD"
			},
			Context: func(c *gin.Context) []zapcore.Field {
				fields := []zapcore.Field{}

				if v := c.GetString("requestID"); v != "" {
					fields = append(fields, zap.String("request_id", v))
				}

				if v := c.GetString(middleware.CtxUserID); v != "" {
					fields = append(fields, zap.String("userID", v))
				}

				return fields
			},
		}),
	)

	router.HandleMethodNotAllowed = true
	router.RedirectFixedPath = true
	router.MaxMultipartMemory = 32 << 20

	auth := middleware.NewAuthMiddleware(cfg)
	optAuth := middleware.NewOptionalAuthMiddleware(cfg)
	admin := middleware.RequireAdmin()
	authLimiter := middleware.RateLimiterMiddleware(middleware.RateLimiterConfig{
		RequestsPerSecond: 2,
		Burst:             5,
	})

	// GET /			-> Used to check if the server is alive
	router.GET("/", a.Root)

	// GET /uploads/*		-> Serves uploaded videos and thumbnails
	router.Static("/uploads", cfg.UploadDir)

	main := router.Group("/api")

	users := main.Group("/users")
	{
		// POST /api/users/signup		-> Registers a new user
		users.POST("/signup", authLimiter, a.SignUp)

		// POST /api/users/signin		-> Logs in a user and returns a JWT token
		users.POST("/signin", authLimiter, a.SignIn)

		// POST /api/users/change-password	-> Changes the caller's password
		users.POST("/change-password", auth, a.ChangePassword)

		// POST /api/users/forgot-password	-> Sends a password reset mail
		users.POST("/forgot-password", authLimiter, a.ForgotPassword)

		// POST /api/users/reset-password	-> Sets a new password for the token's owner
		users.POST("/reset-password", auth, a.ResetPassword)

		// PUT /api/users			-> Updates the caller's profile
		users.PUT("", auth, a.UserUpdate)

		// DELETE /api/users			-> Deletes the caller's account
		users.DELETE("", auth, a.UserDelete)

		// GET /api/users/my-account		-> Returns the caller's account
		users.GET("/my-account", auth, a.MyAccount)

		// GET /api/users/search		-> Searches users by name/email with filters
		users.GET("/search", auth, a.UserSearch)

		// GET /api/users/:id			-> Returns a user by their ID
		users.GET("/:id", auth, a.UserFetch)
	}

	videos := main.Group("/videos")
	{
		// POST /api/videos/upload		-> Uploads a new video (multipart field "video")
		videos.POST("/upload", auth, admin, a.VideoUpload)

		// PUT /api/videos/:id			-> Updates a video's metadata
		videos.PUT("/:id", auth, admin, a.VideoUpdate)

		// DELETE /api/videos/:id		-> Deletes a video and its file
		videos.DELETE("/:id", auth, admin, a.VideoDelete)

		// GET /api/videos			-> Paginated listing of all videos
		videos.GET("", cacheFor(30), a.VideoFetchAll)

		// GET /api/videos/search		-> Searches videos by title and tags
		videos.GET("/search", a.VideoSearch)

		// GET /api/videos/tag/:tag		-> Videos carrying a tag
		videos.GET("/tag/:tag", a.VideoFetchByTag)

		// POST /api/videos/like/:id 		-> Toggles a like on a video
		videos.POST("/like/:id", optAuth, a.VideoLike)

		// POST /api/videos/dislike/:id 	-> Toggles a dislike on a video
		videos.POST("/dislike/:id", optAuth, a.VideoDislike)

		// POST /api/videos/unlike/:id 		-> Removes an existing like
		videos.POST("/unlike/:id", optAuth, a.VideoUnlike)

		// POST /api/videos/undislike/:id 	-> Removes an existing dislike
		videos.POST("/undislike/:id", optAuth, a.VideoUndislike)

		user := videos.Group("/user")
		{
			// POST /api/videos/user/watch-history	-> Upserts a watch history entry
			user.POST("/watch-history", auth, a.WatchHistoryAdd)

			// GET /api/videos/user/watch-history	-> Grouped watch history of the caller
			user.GET("/watch-history", auth, a.WatchHistoryFetch)

			// POST /api/videos/user/save-video	-> Bookmarks a video for later
			user.POST("/save-video", auth, a.VideoSave)

			// DELETE /api/videos/user/save-video	-> Removes a bookmark
			user.DELETE("/save-video", auth, a.VideoUnsave)

			// GET /api/videos/user/save-video	-> Lists the caller's bookmarks
			user.GET("/save-video", auth, a.VideoSavedFetch)

			// GET /api/videos/user/save-video/:id	-> Checks whether a video is bookmarked
			user.GET("/save-video/:id", auth, a.VideoSavedCheck)

			// GET /api/videos/user/my-videos	-> The caller's own videos
			user.GET("/my-videos", auth, a.VideoFetchMine)

			// GET /api/videos/user/:id		-> Videos uploaded by a user
			user.GET("/:id", a.VideoFetchByUser)
		}

		// GET /api/videos/:id/stats/views	-> Per-video view time series
		videos.GET("/:id/stats/views", auth, a.VideoViewsStats)

		// GET /api/videos/:id/stats/engagement	-> Per-video engagement time series
		videos.GET("/:id/stats/engagement", auth, a.VideoEngagementStats)

		// GET /api/videos/:id			-> Returns a video and counts the view
		videos.GET("/:id", optAuth, a.VideoFetch)
	}

	comments := main.Group("/comments")
	{
		// POST /api/comments			-> Adds a comment or a reply
		comments.POST("", auth, admin, a.CommentAdd)

		// PUT /api/comments/:id		-> Edits a comment's content
		comments.PUT("/:id", auth, admin, a.CommentUpdate)

		// DELETE /api/comments/:id		-> Deletes a comment
		comments.DELETE("/:id", auth, admin, a.CommentDelete)

		// GET /api/comments/video/:videoId	-> Top-level comments with reply previews
		comments.GET("/video/:videoId", a.CommentFetchByVideo)

		// GET /api/comments/replies/:commentId	-> Paginated replies of a comment
		comments.GET("/replies/:commentId", a.CommentFetchReplies)
	}

	tags := main.Group("/tags")
	{
		// POST /api/tags			-> Creates a tag
		tags.POST("", a.TagCreate)

		// GET /api/tags/search			-> Case-insensitive substring search
		tags.GET("/search", a.TagSearch)

		// GET /api/tags			-> All tags
		tags.GET("", a.TagFetchAll)

		// GET /api/tags/:id			-> A single tag
		tags.GET("/:id", a.TagFetch)

		// PUT /api/tags/:id			-> Renames a tag
		tags.PUT("/:id", a.TagUpdate)

		// DELETE /api/tags/:id			-> Deletes a tag
		tags.DELETE("/:id", a.TagDelete)

		// POST /api/tags/bulk			-> Inserts missing tags from a comma-separated list
		tags.POST("/bulk", a.TagBulkAdd)
	}

	dashboard := main.Group("/dashboard", auth)
	{
		// GET /api/dashboard/stats		-> Overview totals, top videos, status histogram
		dashboard.GET("/stats", a.DashboardStats)

		// GET /api/dashboard/stats/views	-> Views time series for the caller's videos
		dashboard.GET("/stats/views", a.ViewsStats)

		// GET /api/dashboard/stats/engagement	-> Engagement time series for the caller's videos
		dashboard.GET("/stats/engagement", a.EngagementStats)
	}

	reports := main.Group("/reports")
	{
		// POST /api/reports			-> Reports a video or a comment
		reports.POST("", auth, a.ReportContent)

		// GET /api/reports			-> Lists reports (admin)
		reports.GET("", auth, admin, a.ReportFetchAll)
	}

	activities := main.Group("/activities", auth)
	{
		// GET /api/activities			-> The caller's audit trail
		activities.GET("", a.ActivityFetch)

		// GET /api/activities/video/:videoId	-> Activities touching a video
		activities.GET("/video/:videoId", a.VideoActivityFetch)
	}

	return a, nil
}

func makeLogger(level string) {
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.EncoderConfig.EncodeTime = func(t time.Time, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + t.Format("15:04:05.000") + reset)
	}
	cfg.EncoderConfig.EncodeCaller = func(ec zapcore.EntryCaller, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + ec.TrimmedPath() + reset)
	}

	if l, err := zapcore.ParseLevel(level); err == nil {
		cfg.Level = zap.NewAtomicLevelAt(l)
	}

	cfg.DisableStacktrace = true

	log, _ := cfg.Build()
	zap.ReplaceGlobals(log)
}

func cacheFor(sec int) gin.HandlerFunc {
	return cache.CacheByRequestURI(store, time.Second*time.Duration(sec))
}
