package bootstrap

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"go-worktrack/internal/config"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

// StartHTTPServer serves router until SIGINT/SIGTERM, then drains in-flight
// requests for up to ten seconds.
func StartHTTPServer(router *gin.Engine, cfg config.ServerConfig, auditLogger AuditLogger) error {
	server := &http.Server{
		Addr:         ":" + strconv.Itoa(cfg.Port),
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		zap.L().Info("HTTP server running", zap.Int("port", cfg.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serveErr:
		return err
	case sig := <-quit:
		zap.L().Info("shutdown signal received", zap.String("signal", sig.String()))
		auditLogger.Log(context.Background(), AuditLog{
			Action:  "SERVER_SHUTDOWN",
			Message: "Server is shutting down",
			Meta:    map[string]any{"signal": sig.String()},
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		zap.L().Error("forced shutdown", zap.Error(err))
		return err
	}
	zap.L().Info("server exited gracefully")
	return nil
}

// WaitForSignal blocks until SIGINT/SIGTERM and records it.
func WaitForSignal(process string, auditLogger AuditLogger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	auditLogger.Log(context.Background(), AuditLog{
		Action:  "PROCESS_SHUTDOWN",
		Message: process + " is shutting down",
		Meta:    map[string]any{"signal": sig.String()},
	})
}
