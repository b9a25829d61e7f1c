package main

import (
	"os"

	"go-worktrack/internal/app"
	"go-worktrack/internal/bootstrap"
	"go-worktrack/internal/config"
	"go-worktrack/internal/shared/apperror"
	"go-worktrack/internal/shared/logger"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load(os.Getenv("WORKTRACK_CONFIG"))
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		panic(err)
	}
	defer log.Sync()
	zap.ReplaceGlobals(log)

	apperror.Init()
	gin.SetMode(cfg.Server.Mode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.MaxMultipartMemory = cfg.Storage.MaxUploadSize

	// build dependency + routes
	cleanup, err := app.BuildApp(r, cfg, log)
	if err != nil {
		log.Fatal("build app failed", zap.Error(err))
	}
	defer cleanup()

	if err := bootstrap.StartHTTPServer(r, cfg.Server, bootstrap.NewAuditLogger("api", log)); err != nil {
		log.Error("http server stopped", zap.Error(err))
	}
}
