package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/clipvault/clipvault/internal/clipboard"
	"github.com/clipvault/clipvault/internal/common"
	"github.com/clipvault/clipvault/internal/config"
	"github.com/clipvault/clipvault/internal/platform"
	"github.com/clipvault/clipvault/internal/storage"
)

func main() {
	// Load config first
	cfg, err := config.Load("")
	if err != nil {
		log.Fatal(err)
	}

	logger, err := common.NewLogger(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	history, err := storage.NewHistoryStore(storage.HistoryConfig{
		DBPath: cfg.Storage.DBPath,
		Logger: logger,
	})
	if err != nil {
		logger.Fatal("failed to open history store", zap.Error(err))
	}
	defer history.Close()

	clip := platform.NewClipboard(logger)
	store := storage.NewImageStore(cfg.Storage.ImagesDir, logger)
	reader := clipboard.NewReader(clip, store, logger)

	monitor := clipboard.NewMonitor(cfg, reader, history, logger)
	if err := monitor.Start(); err != nil {
		logger.Fatal("failed to start clipboard monitor", zap.Error(err))
	}

	logger.Info("clipvaultd running",
		zap.String("images_dir", cfg.Storage.ImagesDir),
		zap.String("db_path", cfg.Storage.DBPath))

	// Run until interrupted
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	monitor.Stop()
}
