package main

import (
	"context"
	"log/slog"
	"os"

	"quant_backend/internal/app/di"
	"quant_backend/internal/app/router"
	"quant_backend/internal/platform/logger"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// .envを読み込む
	if err := godotenv.Load(".env"); err != nil {
		slog.Info(".env not found; using system environment variables")
	}
	logger.Init("quantd", logger.ParseLevel(os.Getenv("LOG_LEVEL")))
	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	c, err := di.NewContainer(context.Background())
	if err != nil {
		slog.Error("failed to initialize", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := c.Close(); err != nil {
			slog.Error("failed to close connections", "error", err)
		}
	}()

	r := router.NewRouter(c.Handlers())

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	slog.Info("listening", "port", port)
	if err := r.Run(":" + port); err != nil {
		slog.Error("server stopped", "error", err)
	}
}
