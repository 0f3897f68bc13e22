package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/cache"
	"github.com/BruksfildServices01/barber-booking/internal/config"
	dbpkg "github.com/BruksfildServices01/barber-booking/internal/db"
	"github.com/BruksfildServices01/barber-booking/internal/infra/payment"
	infraRepo "github.com/BruksfildServices01/barber-booking/internal/infra/repository"
	"github.com/BruksfildServices01/barber-booking/internal/jobs"
	"github.com/BruksfildServices01/barber-booking/internal/logger"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/routes"
	ucSubscription "github.com/BruksfildServices01/barber-booking/internal/usecase/subscription"
)

func main() {

	cfg := config.Load()
	logger.Setup(cfg.LogLevel, cfg.LogFormat)

	if err := cfg.ValidatePayments(); err != nil {
		log.Fatal().Err(err).Msg("payment configuration missing")
	}

	db, err := dbpkg.NewDB(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("database setup failed")
	}

	// ------------------------------
	// Cache de listagens
	// ------------------------------
	var store cache.Store = cache.NewMemoryStore()
	if cfg.RedisURL != "" {
		redisStore, err := cache.NewRedisStore(cfg.RedisURL)
		if err != nil {
			log.Fatal().Err(err).Msg("invalid REDIS_URL")
		}
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := redisStore.Ping(ctx); err != nil {
			log.Warn().Err(err).Msg("redis unreachable, cache errors will be ignored")
		}
		cancel()
		defer redisStore.Close()
		store = redisStore
	}

	auditDispatcher := audit.NewDispatcher(audit.New(db), 100)
	defer auditDispatcher.Close()

	gateway := payment.NewStripeGateway(payment.StripeConfig{
		SecretKey:     cfg.StripeSecretKey,
		WebhookSecret: cfg.StripeWebhookSecret,
		Timeout:       cfg.StripeTimeout,
		MaxRetries:    cfg.StripeMaxRetries,
	})

	// ------------------------------
	// Reconciliação agendada
	// ------------------------------
	reconcileUC := ucSubscription.NewReconcile(infraRepo.NewSubscriptionGormRepository(db), gateway)
	scheduler, err := jobs.StartReconcile(cfg.ReconcileCron, reconcileUC)
	if err != nil {
		log.Fatal().Err(err).Str("schedule", cfg.ReconcileCron).Msg("invalid RECONCILE_CRON")
	}
	if scheduler != nil {
		defer scheduler.Stop()
	}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORSMiddleware(cfg.CORSOrigins))

	routes.RegisterRoutes(r, routes.Deps{
		DB:      db,
		Config:  cfg,
		Cache:   store,
		Gateway: gateway,
		Audit:   auditDispatcher,
	})

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		log.Info().Str("addr", cfg.Addr()).Msg("server running")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info().Msg("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
