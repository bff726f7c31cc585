// quantctl は日足の同期とバックテストを行うコマンドラインツールです。
package main

import (
	"context"
	"log/slog"
	"os"

	"quant_backend/internal/app/di"
	"quant_backend/internal/platform/logger"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		slog.Debug(".env not found; using system environment variables")
	}
	logger.InitWriter(os.Stderr, "quantctl", logger.ParseLevel(os.Getenv("LOG_LEVEL")))

	root := newRootCmd(di.NewContainer)
	if err := root.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
