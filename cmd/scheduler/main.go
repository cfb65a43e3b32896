// Package main is the irrigo scheduler service entry point: it wires
// configuration, logging, Postgres, Redis, the weather and advisory
// collaborators, and the HTTP gateway, then serves until signalled.
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/chrisharrington/irrigo/api/gateway"
	"github.com/chrisharrington/irrigo/api/gateway/routes"
	"github.com/chrisharrington/irrigo/config"
	"github.com/chrisharrington/irrigo/internal/advisory"
	"github.com/chrisharrington/irrigo/internal/catalog"
	"github.com/chrisharrington/irrigo/internal/models"
	"github.com/chrisharrington/irrigo/internal/scheduler"
	"github.com/chrisharrington/irrigo/internal/utils/cache"
	"github.com/chrisharrington/irrigo/internal/utils/database"
	"github.com/chrisharrington/irrigo/internal/utils/logger"
	"github.com/chrisharrington/irrigo/internal/weather"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	zapLogger, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to initialise logger: %v", err)
	}
	defer zapLogger.Sync()

	zapLogger.Info("starting scheduler service",
		zap.String("environment", cfg.Environment),
		zap.String("version", cfg.Version),
	)

	db, err := database.NewConnection(cfg.Database)
	if err != nil {
		logger.Error(zapLogger, "failed to connect to database", err)
		os.Exit(1)
	}
	defer database.CloseConnection()

	// Redis is an optimisation, not a dependency: a dead cache degrades the
	// weather client to upstream-only reads.
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		logger.Error(zapLogger, "redis unavailable, continuing without cache", err)
		redisClient = nil
	} else {
		defer redisClient.Close()
	}

	weatherClient := weather.NewClient(cfg.Weather, redisClient)

	var advisoryClient scheduler.AdvisoryGenerator
	if client, err := advisory.NewClient(cfg.Advisory); err == nil {
		advisoryClient = client
		zapLogger.Info("advisory generation enabled", zap.String("model", cfg.Advisory.Model))
	} else {
		zapLogger.Info("advisory generation disabled", zap.Error(err))
	}

	zoneStore := models.NewZoneStore(db)
	catalogService := catalog.NewService(models.NewCatalogStore(db))

	schedulerService, err := scheduler.NewZoneSchedulerService(zoneStore, catalogService, weatherClient, advisoryClient, zapLogger)
	if err != nil {
		logger.Error(zapLogger, "failed to build scheduler service", err)
		os.Exit(1)
	}

	router := gateway.NewRouter(gateway.Deps{
		Config:    cfg,
		Logger:    zapLogger,
		Store:     zoneStore,
		Scheduler: schedulerService,
		Forecasts: weatherClient,
		Health: routes.HealthDeps{
			ServiceName: cfg.ServiceName,
			Version:     cfg.Version,
			Database:    database.Ping,
			Cache: func(ctx context.Context) error {
				if redisClient == nil {
					return nil
				}
				return redisClient.Health(ctx)
			},
		},
	})

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.API.Host, cfg.API.Port),
		Handler:      router,
		ReadTimeout:  cfg.API.ReadTimeout,
		WriteTimeout: cfg.API.WriteTimeout,
		IdleTimeout:  cfg.API.IdleTimeout,
	}

	go func() {
		zapLogger.Info("gateway listening", zap.String("addr", server.Addr))
		var err error
		if cfg.API.EnableTLS {
			err = server.ListenAndServeTLS(cfg.API.TLSCertPath, cfg.API.TLSKeyPath)
		} else {
			err = server.ListenAndServe()
		}
		if err != nil && err != http.ErrServerClosed {
			logger.Error(zapLogger, "server failed", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	zapLogger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.API.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error(zapLogger, "graceful shutdown failed", err)
		os.Exit(1)
	}

	zapLogger.Info("shutdown complete")
}
