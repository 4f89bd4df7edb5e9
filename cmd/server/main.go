package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/sarpras/internal/config"
	"github.com/mamadbah2/sarpras/internal/repository/mongodb"
	sheetsrepo "github.com/mamadbah2/sarpras/internal/repository/sheets"
	"github.com/mamadbah2/sarpras/internal/scheduler"
	"github.com/mamadbah2/sarpras/internal/server/handlers"
	"github.com/mamadbah2/sarpras/internal/server/router"
	authsvc "github.com/mamadbah2/sarpras/internal/service/auth"
	importersvc "github.com/mamadbah2/sarpras/internal/service/importer"
	inventorysvc "github.com/mamadbah2/sarpras/internal/service/inventory"
	reportsvc "github.com/mamadbah2/sarpras/internal/service/report"
	"github.com/mamadbah2/sarpras/pkg/clients/webhook"
	"github.com/mamadbah2/sarpras/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelStartup()

	mongoClient, err := mongodb.NewClient(startupCtx, cfg.MongoDB.URI, cfg.MongoDB.DBName)
	if err != nil {
		baseLogger.Fatal("failed to init mongodb client", zap.Error(err))
	}
	defer func() {
		if err := mongoClient.Close(context.Background()); err != nil {
			baseLogger.Error("failed to close mongodb connection", zap.Error(err))
		}
	}()

	inventoryRepo := mongodb.NewInventoryRepository(mongoClient, baseLogger.Named("repo.inventory"))
	userRepo := mongodb.NewUserRepository(mongoClient)
	summaryRepo := mongodb.NewSummaryRepository(mongoClient)

	var sheetRepo sheetsrepo.Repository
	if cfg.SheetsEnabled() {
		repo, err := sheetsrepo.NewGoogleSheetRepository(startupCtx, cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets repository", zap.Error(err))
		}
		sheetRepo = repo
		baseLogger.Info("google sheets export enabled")
	}

	notifier := webhook.NewClient(cfg.Notifier, baseLogger.Named("client.webhook"))
	if notifier != nil {
		baseLogger.Info("webhook notifications enabled")
	}

	authService := authsvc.NewService(userRepo, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, baseLogger.Named("svc.auth"))
	if err := authService.EnsureAdmin(startupCtx, cfg.Auth.AdminName, cfg.Auth.AdminEmail, cfg.Auth.AdminPassword); err != nil {
		baseLogger.Fatal("failed to seed admin account", zap.Error(err))
	}

	inventoryService := inventorysvc.NewService(inventoryRepo, baseLogger.Named("svc.inventory"))
	importerService := importersvc.NewService(inventoryRepo, baseLogger.Named("svc.importer"))
	reportService := reportsvc.NewService(inventoryRepo, sheetRepo, baseLogger.Named("svc.report"))

	engine := router.New(router.Handlers{
		Auth:      handlers.NewAuthHandler(authService, baseLogger.Named("handlers.auth")),
		Inventory: handlers.NewInventoryHandler(inventoryService, baseLogger.Named("handlers.inventory")),
		Import:    handlers.NewImportHandler(importerService, notifier, baseLogger.Named("handlers.import")),
		Report:    handlers.NewReportHandler(reportService, cfg.Sheets.ExportRange, baseLogger.Named("handlers.report")),
	}, authService, baseLogger.Named("router"))

	sched := scheduler.NewScheduler(cfg.Snapshot, reportService, summaryRepo, notifier, baseLogger.Named("scheduler"))
	sched.Start()
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
