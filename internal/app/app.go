package app

import (
	"context"
	"time"

	"go-worktrack/internal/config"
	"go-worktrack/internal/database"
	"go-worktrack/internal/employee"
	"go-worktrack/internal/middleware"
	"go-worktrack/internal/shared/connection"
	"go-worktrack/internal/shared/storage"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BuildApp connects infrastructure, applies migrations, seeds the first admin
// and mounts every module on router. The returned func releases connections.
func BuildApp(router *gin.Engine, cfg *config.Config, logger *zap.Logger) (func(), error) {
	log := logger.Named("app")

	// 1. Setup Infrastructure
	gormDB, err := connection.ConnectGORMWithRetry(cfg.Database, log)
	if err != nil {
		return nil, err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}
	log.Info("database connection established")

	if err := database.RunMigrations(sqlDB, log); err != nil {
		sqlDB.Close()
		return nil, err
	}

	redisClient, err := connection.ConnectRedisWithRetry(cfg.Redis, cfg.Database.MaxRetries, log)
	if err != nil {
		sqlDB.Close()
		return nil, err
	}
	log.Info("redis connection established")

	store, err := storage.NewLocalStore(cfg.Storage.Root, cfg.Storage.MaxUploadSize, logger)
	if err != nil {
		sqlDB.Close()
		redisClient.Close()
		return nil, err
	}

	cleanup := func() {
		if err := redisClient.Close(); err != nil {
			log.Warn("close redis failed", zap.Error(err))
		}
		if err := sqlDB.Close(); err != nil {
			log.Warn("close database failed", zap.Error(err))
		}
	}

	router.Use(middleware.RequestID())

	// 2. Register Modules & Routes
	mods, err := registerModules(router, cfg, sqlDB, gormDB, redisClient, store, logger)
	if err != nil {
		cleanup()
		return nil, err
	}

	// 3. Seed
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	created, err := mods.employee.EnsureAdmin(ctx, employee.AdminSeed{
		Email:     cfg.Admin.Email,
		Password:  cfg.Admin.Password,
		FirstName: cfg.Admin.FirstName,
		LastName:  cfg.Admin.LastName,
		Phone:     cfg.Admin.Phone,
	})
	if err != nil {
		cleanup()
		return nil, err
	}
	if created {
		log.Warn("default admin created, change its password", zap.String("email", cfg.Admin.Email))
	}

	return cleanup, nil
}
