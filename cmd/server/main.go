package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"go.uber.org/zap"

	"github.com/mamadbah2/cropbudget/internal/config"
	"github.com/mamadbah2/cropbudget/internal/repository/sheets"
	"github.com/mamadbah2/cropbudget/internal/repository/store"
	"github.com/mamadbah2/cropbudget/internal/scheduler"
	"github.com/mamadbah2/cropbudget/internal/server/handlers"
	"github.com/mamadbah2/cropbudget/internal/server/router"
	"github.com/mamadbah2/cropbudget/internal/service/grid"
	"github.com/mamadbah2/cropbudget/internal/service/ingest"
	reportingsvc "github.com/mamadbah2/cropbudget/internal/service/reporting"
	"github.com/mamadbah2/cropbudget/internal/service/season"
	ticketsvc "github.com/mamadbah2/cropbudget/internal/service/tickets"
	whatsappclient "github.com/mamadbah2/cropbudget/pkg/clients/whatsapp"
	"github.com/mamadbah2/cropbudget/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.Server.LogLevel))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	repo, err := store.Open(context.Background(), cfg, baseLogger.Named("repo"))
	if err != nil {
		baseLogger.Fatal("failed to init season store", zap.Error(err))
	}
	defer func() {
		if err := repo.Close(context.Background()); err != nil {
			baseLogger.Error("failed to close season store", zap.Error(err))
		}
	}()

	var mirror sheets.Mirror
	if cfg.Sheets.Enabled() {
		m, err := sheets.NewTicketMirror(context.Background(), cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets mirror", zap.Error(err))
		}
		mirror = m
		baseLogger.Info("ticket sheet mirror enabled", zap.String("range", cfg.Sheets.TicketRange))
	}

	var notifier whatsappclient.Notifier
	if cfg.WhatsApp.Enabled() {
		notifier = whatsappclient.NewClient(cfg.WhatsApp)
		baseLogger.Info("whatsapp notifications enabled")
	} else {
		baseLogger.Warn("whatsapp token missing, notifications disabled")
	}

	seasons := season.NewManager(repo, cfg.Season.SaveDebounce, baseLogger.Named("svc.season"))
	imports := ingest.NewSessions(baseLogger.Named("svc.ingest"))
	grids := grid.NewRegistry(baseLogger.Named("svc.grid"))
	reportingSvc := reportingsvc.NewService(seasons, baseLogger.Named("svc.reporting"))
	ticketService := ticketsvc.NewService(seasons, imports, mirror, baseLogger.Named("svc.tickets"))

	engine := router.New(router.Handlers{
		Seasons:       handlers.NewSeasonHandler(seasons, reportingSvc, baseLogger.Named("handlers.seasons")),
		Tickets:       handlers.NewTicketHandler(ticketService, baseLogger.Named("handlers.tickets")),
		Grids:         handlers.NewGridHandler(seasons, grids, baseLogger.Named("handlers.grid")),
		Notifications: handlers.NewNotificationHandler(reportingSvc, notifier, baseLogger.Named("handlers.notifications")),
	}, baseLogger.Named("router"))

	sched, err := scheduler.NewScheduler(*cfg, reportingSvc, notifier, baseLogger.Named("scheduler"), imports, grids)
	if err != nil {
		baseLogger.Fatal("failed to init scheduler", zap.Error(err))
	}
	if err := sched.Start(); err != nil {
		baseLogger.Fatal("failed to start scheduler", zap.Error(err))
	}
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port), zap.String("storage", cfg.Storage.Driver))
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
	if err := seasons.Close(shutdownCtx); err != nil {
		baseLogger.Error("failed to save open seasons", zap.Error(err))
	}
}
