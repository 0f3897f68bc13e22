package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/cli"
	"github.com/BruksfildServices01/barber-booking/internal/config"
	dbpkg "github.com/BruksfildServices01/barber-booking/internal/db"
	"github.com/BruksfildServices01/barber-booking/internal/infra/payment"
	infraRepo "github.com/BruksfildServices01/barber-booking/internal/infra/repository"
	"github.com/BruksfildServices01/barber-booking/internal/logger"
	ucOnboarding "github.com/BruksfildServices01/barber-booking/internal/usecase/onboarding"
	ucSubscription "github.com/BruksfildServices01/barber-booking/internal/usecase/subscription"
)

func main() {
	cfg := config.Load()
	logger.Setup(cfg.LogLevel, "console")

	db, err := dbpkg.NewDB(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("database setup failed")
	}

	auditDispatcher := audit.NewDispatcher(audit.New(db), 10)

	gateway := payment.NewStripeGateway(payment.StripeConfig{
		SecretKey:     cfg.StripeSecretKey,
		WebhookSecret: cfg.StripeWebhookSecret,
		Timeout:       cfg.StripeTimeout,
		MaxRetries:    cfg.StripeMaxRetries,
	})

	onboarding := ucOnboarding.NewOnboarding(infraRepo.NewOnboardingGormRepository(db), auditDispatcher)
	plans := ucSubscription.NewPlans(infraRepo.NewSubscriptionGormRepository(db), gateway)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err = cli.NewRootCmd(onboarding, plans).ExecuteContext(ctx)

	stop()
	auditDispatcher.Close()

	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
