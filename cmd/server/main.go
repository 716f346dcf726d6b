package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	dashboardhandler "aguasur/internal/dashboard/handler"
	dashboardservice "aguasur/internal/dashboard/service"
	householdhandler "aguasur/internal/household/handler"
	householdservice "aguasur/internal/household/service"
	householdstore "aguasur/internal/household/store"
	httpapi "aguasur/internal/http"
	"aguasur/internal/platform/config"
	"aguasur/internal/platform/httpserver"
	"aguasur/internal/platform/logger"
	"aguasur/internal/platform/metrics"
	platformmongo "aguasur/internal/platform/mongo"
	refillhandler "aguasur/internal/refill/handler"
	refillservice "aguasur/internal/refill/service"
	refillstore "aguasur/internal/refill/store"
	reporthandler "aguasur/internal/report/handler"
	reportservice "aguasur/internal/report/service"
	reportstore "aguasur/internal/report/store"
	tankhandler "aguasur/internal/tank/handler"
	tankservice "aguasur/internal/tank/service"
	tankstore "aguasur/internal/tank/store"
)

// main wires stores, services and handlers, then runs the HTTP server
// until interrupted. Business logic lives in the internal service
// packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()
	m := metrics.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		households householdstore.Store
		tanks      tankstore.Store
		refills    refillstore.Store
		reports    reportstore.Store
		health     httpapi.HealthChecker
	)

	mongoClient, err := platformmongo.New(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Error("mongodb connection failed", "uri", cfg.MongoURI, "error", err)
		os.Exit(1)
	}
	if mongoClient != nil {
		db := mongoClient.Database()
		households = householdstore.NewMongo(db)
		tanks = tankstore.NewMongo(db)
		refills = refillstore.NewMongo(db)
		reports = reportstore.NewMongo(db)
		health = mongoClient
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := mongoClient.Close(shutdownCtx); err != nil {
				log.Warn("mongodb disconnect failed", "error", err)
			}
		}()
		log.Info("using mongodb storage", "database", cfg.MongoDB)
	} else {
		households = householdstore.NewMemory()
		tanks = tankstore.NewMemory()
		refills = refillstore.NewMemory()
		reports = reportstore.NewMemory()
		log.Warn("MONGO_URI not set, using in-memory storage")
	}

	householdSvc := householdservice.New(households, m)
	tankSvc := tankservice.New(tanks, households, m, cfg.CriticalLevelPct, cfg.LowLevelPct)
	refillSvc := refillservice.New(refills, tanks, m)
	reportSvc := reportservice.New(reports, households, tanks, m)
	dashboardSvc := dashboardservice.New(households, tanks, refills, reports, m, cfg.CriticalLevelPct, cfg.LowLevelPct)

	router := httpapi.NewRouter(health,
		householdhandler.New(householdSvc, log),
		tankhandler.New(tankSvc, log),
		refillhandler.New(refillSvc, log),
		reporthandler.New(reportSvc, log),
		dashboardhandler.New(dashboardSvc, log),
	)

	srv := httpserver.New(cfg.Addr, router)

	go func() {
		log.Info("starting server", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}
}
