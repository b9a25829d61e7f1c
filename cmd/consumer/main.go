package main

import (
	"os"

	"go-worktrack/internal/app"
	"go-worktrack/internal/config"
	"go-worktrack/internal/shared/apperror"
	"go-worktrack/internal/shared/logger"

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

	if err := app.RunConsumer(cfg, log); err != nil {
		log.Fatal("run consumer failed", zap.Error(err))
	}
}
