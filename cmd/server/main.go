// Package main initializes and starts the lead management server, wiring
// configuration, logging, the database, repositories, services and handlers.
package main

import (
	"cmp"
	"context"
	"fmt"
	"time"

	nethttp "net/http"

	"github.com/AdReachMedia/LeadGen-CRM/internal/cache"
	"github.com/AdReachMedia/LeadGen-CRM/internal/config"
	"github.com/AdReachMedia/LeadGen-CRM/internal/db"
	"github.com/AdReachMedia/LeadGen-CRM/internal/logger"
	"github.com/AdReachMedia/LeadGen-CRM/internal/repository"
	"github.com/AdReachMedia/LeadGen-CRM/internal/scraper"
	"github.com/AdReachMedia/LeadGen-CRM/internal/server/handler/http"
	"github.com/AdReachMedia/LeadGen-CRM/internal/service"
	"go.uber.org/zap"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	// Parse command-line and environment configuration.
	options := config.Parse()

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	// Initialize structured logging.
	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init("Info"); err != nil {
		log.Log.Fatal("failed to init logger", zap.Error(err))
	}
	zapLogger := log.Log

	// Initialize PostgreSQL connection.
	postgresDB, err := db.InitPostgres(options.DatabaseDSN)
	if err != nil {
		zapLogger.Fatal("cannot init database", zap.Error(err))
	}

	// Sweep expired sessions in the background.
	db.StartSessionCleaner(context.Background(), postgresDB, time.Hour, zapLogger)

	// One shared read cache, flushed wholesale after every write.
	readCache := cache.New(options.CacheTTL)

	// Initialize repositories.
	leadRepo := repository.NewPostgresLeadRepository(postgresDB)
	taskRepo := repository.NewPostgresTaskRepository(postgresDB)
	noteRepo := repository.NewPostgresNoteRepository(postgresDB)
	authRepo := repository.NewPostgresAuthRepository(postgresDB)

	// Initialize business-logic services.
	taskService := service.NewTaskService(taskRepo, readCache)
	leadService := service.NewLeadService(leadRepo, taskService, readCache)
	campaignService := service.NewCampaignService(leadRepo, readCache)
	noteService := service.NewNoteService(noteRepo, readCache)
	authService := service.NewAuthService(authRepo, options.SessionTTL)

	// Create HTTP handlers.
	authHandler := &http.AuthHandler{AuthService: authService}
	leadHandler := &http.LeadHandler{LeadService: leadService}
	campaignHandler := &http.CampaignHandler{CampaignService: campaignService, Names: leadService}
	taskHandler := &http.TaskHandler{TaskService: taskService}
	noteHandler := &http.NoteHandler{NoteService: noteService}
	finderHandler := &http.FinderHandler{
		Source: scraper.NewGelbeSeiten(options.ScraperBaseURL),
		Leads:  leadService,
	}

	// Build the router with middleware and routes.
	router := http.NewRouter(
		authHandler,
		leadHandler,
		campaignHandler,
		taskHandler,
		noteHandler,
		finderHandler,
		authService,
		zapLogger,
	)

	server := &nethttp.Server{
		Addr:    options.Port,
		Handler: router,
	}

	zapLogger.Info("starting HTTP server", zap.String("addr", options.Port))
	if err := server.ListenAndServe(); err != nil {
		zapLogger.Fatal("failed to start HTTP server", zap.Error(err))
	}
}
