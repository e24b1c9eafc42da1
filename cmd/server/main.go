package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/yourname/wellnesstracker/internal"
	"github.com/yourname/wellnesstracker/internal/api"
	"github.com/yourname/wellnesstracker/internal/auth"
	"github.com/yourname/wellnesstracker/internal/config"
	"github.com/yourname/wellnesstracker/internal/service"
	"github.com/yourname/wellnesstracker/internal/storage"
)

func main() {
	cfg := config.Load()

	logger, err := internal.BuildLogger(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}

	repos, closer, err := buildStorage(cfg, logger)
	if err != nil {
		logger.Fatalf("failed to init storage: %v", err)
	}

	var provider auth.Provider
	if cfg.Env == "development" {
		provider = auth.NewLocalAuthProvider(cfg.AuthToken, logger)
	} else {
		provider = auth.NewRemoteAuthProvider(cfg.AuthServiceURL, logger)
	}

	targets := service.GoalTargets{Water: cfg.WaterTarget, Steps: cfg.StepTarget}
	app := api.NewApp(logger, repos, targets)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	api.RegisterRoutes(r, app, auth.AuthMiddleware(provider, cfg))

	go func() {
		logger.Infof("server running on %s", cfg.Addr)
		if err := r.Run(cfg.Addr); err != nil {
			logger.Fatalf("failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down, flushing storage")
	if err := closer.Close(); err != nil {
		logger.Errorf("failed to close storage: %v", err)
	}
}

func buildStorage(cfg *config.Config, logger internal.Logger) (storage.Repositories, storage.Closer, error) {
	if cfg.DBType == "postgres" {
		return storage.NewPostgresRepositories(cfg.DBDSN, logger)
	}
	if _, err := os.Stat("data"); os.IsNotExist(err) {
		_ = os.Mkdir("data", 0755)
	}
	return storage.NewFileRepositories(cfg.FileCycles, cfg.FileGoals, cfg.FileExercises, logger)
}
