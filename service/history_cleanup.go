package service

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/robfig/cron/v3"
)

// watchHistoryMaxAge is how long a watch-history entry is kept around.
const watchHistoryMaxAge = 30 * 24 * time.Hour

// CleanupWatchHistory deletes watch-history entries older than 30 days.
func CleanupWatchHistory(ctx context.Context, histories *mongo.Collection) error {
	cutoff := time.Now().Add(-watchHistoryMaxAge)

	res, err := histories.DeleteMany(ctx, bson.M{"watchedAt": bson.M{"$lt": cutoff}})
	if err != nil {
		return err
	}

	zap.L().Info("Watch history cleanup finished", zap.Int64("deleted", res.DeletedCount))
	return nil
}

// StartScheduler runs the watch-history cleanup every day at midnight.
// SkipIfStillRunning guarantees successive runs never overlap.
func StartScheduler(histories *mongo.Collection) *cron.Cron {
	c := cron.New(cron.WithChain(
		cron.SkipIfStillRunning(cron.DefaultLogger),
	))

	c.AddFunc("0 0 * * *", func() {
		zap.L().Info("Running watch history cleanup...")

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		if err := CleanupWatchHistory(ctx, histories); err != nil {
			zap.L().Error("Watch history cleanup failed", zap.Error(err))
		}
	})

	c.Start()
	return c
}
