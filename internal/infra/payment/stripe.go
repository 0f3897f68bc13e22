package payment

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/client"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/subscription"
)

type StripeConfig struct {
	SecretKey     string
	WebhookSecret string
	Timeout       time.Duration
	MaxRetries    uint64
}

// StripeGateway implementa domain.Gateway. Cada chamada de saída tem
// timeout explícito e é repetida com backoff exponencial apenas em falhas
// transitórias (rede, 429, 5xx), reaproveitando a mesma idempotency key.
type StripeGateway struct {
	api           *client.API
	webhookSecret string
	maxRetries    uint64
	newBackOff    func() backoff.BackOff
}

var _ domain.Gateway = (*StripeGateway)(nil)

func NewStripeGateway(cfg StripeConfig) *StripeGateway {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	httpClient := &http.Client{Timeout: timeout}

	// retries ficam a cargo do backoff abaixo
	backendConfig := func() *stripe.BackendConfig {
		return &stripe.BackendConfig{
			HTTPClient:        httpClient,
			MaxNetworkRetries: stripe.Int64(0),
		}
	}

	sc := &client.API{}
	sc.Init(cfg.SecretKey, &stripe.Backends{
		API:     stripe.GetBackendWithConfig(stripe.APIBackend, backendConfig()),
		Connect: stripe.GetBackendWithConfig(stripe.ConnectBackend, backendConfig()),
		Uploads: stripe.GetBackendWithConfig(stripe.UploadsBackend, backendConfig()),
	})

	return &StripeGateway{
		api:           sc,
		webhookSecret: cfg.WebhookSecret,
		maxRetries:    cfg.MaxRetries,
		newBackOff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = 300 * time.Millisecond
			b.MaxInterval = 3 * time.Second
			b.MaxElapsedTime = 20 * time.Second
			return b
		},
	}
}

// ------------------------------------------------------
// Customers / Checkout
// ------------------------------------------------------

func (g *StripeGateway) CreateCustomer(ctx context.Context, in domain.CustomerInput) (string, error) {
	params := &stripe.CustomerParams{
		Email:    stripe.String(in.Email),
		Name:     stripe.String(in.Name),
		Metadata: in.Metadata,
	}
	params.Context = ctx
	params.SetIdempotencyKey(uuid.NewString())

	var cus *stripe.Customer
	err := g.retry(ctx, "customers.create", func() error {
		var err error
		cus, err = g.api.Customers.New(params)
		return err
	})
	if err != nil {
		return "", err
	}
	return cus.ID, nil
}

func (g *StripeGateway) CreateCheckoutSession(ctx context.Context, in domain.CheckoutInput) (*domain.CheckoutLink, error) {
	params := &stripe.CheckoutSessionParams{
		Customer:   stripe.String(in.CustomerID),
		SuccessURL: stripe.String(in.SuccessURL),
		CancelURL:  stripe.String(in.CancelURL),
		Mode:       stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{{
			Price:    stripe.String(in.PriceID),
			Quantity: stripe.Int64(1),
		}},
		Metadata: in.Metadata,
		SubscriptionData: &stripe.CheckoutSessionSubscriptionDataParams{
			Metadata: in.Metadata,
		},
	}
	params.Context = ctx
	params.SetIdempotencyKey(uuid.NewString())

	var sess *stripe.CheckoutSession
	err := g.retry(ctx, "checkout_sessions.create", func() error {
		var err error
		sess, err = g.api.CheckoutSessions.New(params)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &domain.CheckoutLink{SessionID: sess.ID, URL: sess.URL}, nil
}

// ------------------------------------------------------
// Subscriptions
// ------------------------------------------------------

func (g *StripeGateway) GetSubscription(ctx context.Context, id string) (*domain.Snapshot, error) {
	params := &stripe.SubscriptionParams{}
	params.Context = ctx

	var sub *stripe.Subscription
	err := g.retry(ctx, "subscriptions.get", func() error {
		var err error
		sub, err = g.api.Subscriptions.Get(id, params)
		return err
	})
	if err != nil {
		return nil, err
	}
	return snapshotFromStripe(sub), nil
}

func (g *StripeGateway) SetCancelAtPeriodEnd(ctx context.Context, id string, cancel bool) (*domain.Snapshot, error) {
	params := &stripe.SubscriptionParams{
		CancelAtPeriodEnd: stripe.Bool(cancel),
	}
	params.Context = ctx
	params.SetIdempotencyKey(uuid.NewString())

	var sub *stripe.Subscription
	err := g.retry(ctx, "subscriptions.update", func() error {
		var err error
		sub, err = g.api.Subscriptions.Update(id, params)
		return err
	})
	if err != nil {
		return nil, err
	}
	return snapshotFromStripe(sub), nil
}

// ------------------------------------------------------
// Products / Prices
// ------------------------------------------------------

func (g *StripeGateway) CreateRecurringPrice(ctx context.Context, in domain.PriceInput) (*domain.PriceRef, error) {
	productParams := &stripe.ProductParams{
		Name: stripe.String(in.Name),
	}
	if in.Description != "" {
		productParams.Description = stripe.String(in.Description)
	}
	productParams.Context = ctx
	productParams.SetIdempotencyKey(uuid.NewString())

	var prod *stripe.Product
	if err := g.retry(ctx, "products.create", func() error {
		var err error
		prod, err = g.api.Products.New(productParams)
		return err
	}); err != nil {
		return nil, err
	}

	priceParams := &stripe.PriceParams{
		Product:    stripe.String(prod.ID),
		Currency:   stripe.String(strings.ToLower(in.Currency)),
		UnitAmount: stripe.Int64(in.Amount.Shift(2).Round(0).IntPart()),
		Recurring:  &stripe.PriceRecurringParams{Interval: stripe.String("month")},
	}
	priceParams.Context = ctx
	priceParams.SetIdempotencyKey(uuid.NewString())

	var price *stripe.Price
	if err := g.retry(ctx, "prices.create", func() error {
		var err error
		price, err = g.api.Prices.New(priceParams)
		return err
	}); err != nil {
		return nil, err
	}

	return &domain.PriceRef{ProductID: prod.ID, PriceID: price.ID}, nil
}

// ------------------------------------------------------
// Retry
// ------------------------------------------------------

func (g *StripeGateway) retry(ctx context.Context, op string, fn func() error) error {
	b := backoff.WithContext(backoff.WithMaxRetries(g.newBackOff(), g.maxRetries), ctx)

	return backoff.RetryNotify(func() error {
		err := fn()
		if err == nil {
			return nil
		}
		if ctx.Err() != nil || !isTransient(err) {
			return backoff.Permanent(err)
		}
		return err
	}, b, func(err error, wait time.Duration) {
		log.Warn().Err(err).Str("op", op).Dur("retry_in", wait).Msg("stripe call failed, retrying")
	})
}

func isTransient(err error) bool {
	var se *stripe.Error
	if errors.As(err, &se) {
		return se.HTTPStatusCode == 0 ||
			se.HTTPStatusCode == http.StatusTooManyRequests ||
			se.HTTPStatusCode >= http.StatusInternalServerError
	}
	// erro de rede/timeout antes de uma resposta da Stripe
	return true
}

func snapshotFromStripe(sub *stripe.Subscription) *domain.Snapshot {
	snap := &domain.Snapshot{
		ID:                 sub.ID,
		Status:             domain.Status(sub.Status),
		CurrentPeriodStart: unixTime(sub.CurrentPeriodStart),
		CurrentPeriodEnd:   unixTime(sub.CurrentPeriodEnd),
		CancelAtPeriodEnd:  sub.CancelAtPeriodEnd,
	}
	if sub.Customer != nil {
		snap.CustomerID = sub.Customer.ID
	}
	if sub.CanceledAt > 0 {
		t := unixTime(sub.CanceledAt)
		snap.CanceledAt = &t
	}
	return snap
}

func unixTime(sec int64) time.Time {
	if sec <= 0 {
		return time.Time{}
	}
	return time.Unix(sec, 0).UTC()
}
