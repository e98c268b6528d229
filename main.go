package main

import (
	"context"
	"embed"
	"log"
	"time"

	"anthrostat/adapters/dataset"
	"anthrostat/adapters/ledger"
	"anthrostat/app"
	"anthrostat/internal"
	"anthrostat/internal/api"
	"anthrostat/internal/config"
	"anthrostat/ports"
	"anthrostat/ui"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

//go:embed ui/templates/* ui/static/*
var embeddedFiles embed.FS

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger := internal.DefaultLogger

	data, err := loadDataset(cfg, logger)
	if err != nil {
		log.Fatalf("Failed to load dataset: %v", err)
	}

	auditLedger, closeLedger := initLedger(cfg, logger)
	if closeLedger != nil {
		defer closeLedger()
	}

	classifySvc := app.NewClassificationService(data, auditLedger)
	plotSvc := app.NewPlotService(data)

	if cfg.Debug.Enabled {
		debugServer := api.NewDebugServer(":"+cfg.Debug.Port, data)
		go func() {
			logger.Info("debug server listening on :%s", cfg.Debug.Port)
			if err := debugServer.ListenAndServe(); err != nil {
				logger.Error("debug server stopped: %v", err)
			}
		}()
	}

	gin.SetMode(cfg.Server.GinMode)
	server, err := ui.NewServer(embeddedFiles, data, classifySvc, plotSvc)
	if err != nil {
		log.Fatalf("Failed to initialize server: %v", err)
	}
	if err := server.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}

// loadDataset reads the configured survey file, or the embedded sample
// survey when none is configured.
func loadDataset(cfg *config.Config, logger *internal.Logger) (*dataset.Dataset, error) {
	if cfg.Data.DatasetFile == "" {
		logger.Info("no DATASET_FILE configured, using embedded sample survey")
		return dataset.LoadSample()
	}
	return dataset.NewReader(cfg.Data.DatasetFile, cfg.Data.SexColumn).Read()
}

// initLedger connects the optional Postgres audit ledger. A missing
// DATABASE_URL disables it; a failed connection is logged but not fatal,
// since the explorer works fine without an audit log.
func initLedger(cfg *config.Config, logger *internal.Logger) (ports.ClassificationLedger, func() error) {
	if cfg.Database.URL == "" {
		return nil, nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pg, err := ledger.Connect(ctx, cfg.Database.URL)
	if err != nil {
		logger.Warn("classification ledger disabled: %v", err)
		return nil, nil
	}
	logger.Info("classification ledger connected")
	return pg, pg.Close
}
