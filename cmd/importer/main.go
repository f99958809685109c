package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/abdellahaitdahmou/full-store/internal/api"
	"github.com/abdellahaitdahmou/full-store/internal/config"
	"github.com/abdellahaitdahmou/full-store/internal/gemini"
	"github.com/abdellahaitdahmou/full-store/internal/identity"
	"github.com/abdellahaitdahmou/full-store/internal/importer"
	"github.com/abdellahaitdahmou/full-store/internal/monitoring"
)

func main() {
	// Initialize structured logger
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("could not load config", zap.Error(err))
	}

	// Initialize the extraction-service client
	generator, err := gemini.NewClient(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		logger.Fatal("could not create gemini client", zap.Error(err))
	}

	// Initialize Monitoring
	metrics := monitoring.NewMetrics(prometheus.DefaultRegisterer)

	// Initialize Core Pipeline
	browser := identity.NewManager()
	fetcher := importer.NewPageFetcher(time.Duration(cfg.FetchTimeout)*time.Second, browser)
	miner := importer.NewMiner(cfg.ImageBlacklist, cfg.MaxImageCandidates, cfg.MaxMinedTextChars)
	acquirer := importer.NewImageAcquirer(time.Duration(cfg.ImageTimeout)*time.Second, cfg.MaxImageEvidence, browser, metrics, logger)
	locale := importer.Locale{
		Language:      cfg.TargetLanguage,
		Currency:      cfg.TargetCurrency,
		CurrencyHints: cfg.CurrencyHints,
	}
	pipeline := importer.NewPipeline(fetcher, miner, acquirer, generator, locale, cfg.MaxPromptTextChars, metrics, logger)

	// Initialize API Server
	server := api.NewServer(cfg, pipeline, metrics, logger)

	// Graceful Shutdown
	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("could not start server", zap.Error(err))
		}
	}()

	logger.Info("server started", zap.String("port", cfg.ServerPort), zap.String("model", cfg.GeminiModel))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server exiting")
}
