package main

import (
	"fmt"

	"vidshare/backend/api"
	"vidshare/backend/config"
	"vidshare/backend/db"
	"vidshare/backend/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	gin.SetMode(gin.ReleaseMode)

	err := config.Setup()
	if err != nil {
		panic(err)
	}
	cfg := config.New()

	d, err := db.New(cfg)
	if err != nil {
		panic(err)
	}
	defer db.Close(d)

	if err := db.EnsureIndexes(d); err != nil {
		panic(err)
	}

	a, err := api.NewRouter(cfg, d)
	if err != nil {
		panic(err)
	}
	defer a.Activity.Close()

	cron := service.StartScheduler(d.Collection(db.WatchHistories))
	defer cron.Stop()

	zap.L().Info("Server starting", zap.Int("port", cfg.Port))

	err = a.Router.Run(fmt.Sprintf(":%d", cfg.Port))
	if err != nil {
		panic(err)
	}
}
