package subscription

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/domain"
	subDomain "github.com/BruksfildServices01/barber-booking/internal/domain/subscription"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// HandleWebhook verifica, interpreta e aplica um evento da Stripe.
//
// Retorna subDomain.ErrInvalidSignature quando a assinatura não confere
// (nada é alterado). Eventos desconhecidos ou sem contexto suficiente são
// confirmados sem erro; qualquer outro erro deve virar 500 para a Stripe
// reenviar.
type HandleWebhook struct {
	repo    subDomain.Repository
	gateway subDomain.Gateway
	audit   audit.Recorder
	now     func() time.Time
}

func NewHandleWebhook(
	repo subDomain.Repository,
	gateway subDomain.Gateway,
	recorder audit.Recorder,
) *HandleWebhook {
	return &HandleWebhook{
		repo:    repo,
		gateway: gateway,
		audit:   recorder,
		now:     time.Now,
	}
}

func (uc *HandleWebhook) Execute(
	ctx context.Context,
	payload []byte,
	signature string,
) error {

	// --------------------------------------------------
	// 1. Assinatura (antes de qualquer parse)
	// --------------------------------------------------
	ev, err := uc.gateway.ParseWebhook(payload, signature)
	if err != nil {
		return err
	}

	logger := log.With().Str("event_id", ev.ID).Str("event_type", string(ev.Type)).Logger()

	// --------------------------------------------------
	// 2. Checkout: recarrega a assinatura na Stripe
	// --------------------------------------------------
	if ev.Type == subDomain.EventCheckoutCompleted && ev.Checkout != nil &&
		ev.Checkout.Mode == subDomain.CheckoutModeSubscription && ev.Checkout.SubscriptionID != "" {

		snap, err := uc.gateway.GetSubscription(ctx, ev.Checkout.SubscriptionID)
		if err != nil {
			return err
		}
		ev.Subscription = snap
	}

	// --------------------------------------------------
	// 3. Estado atual + transição, na mesma transação
	// --------------------------------------------------
	var (
		t        subDomain.Transition
		barberID uint
	)

	err = uc.repo.WithinTx(ctx, func(tx subDomain.Repository) error {
		current, skip, err := uc.loadCurrent(ctx, tx, ev)
		if err != nil {
			return err
		}
		if skip != "" {
			t = subDomain.Transition{Skip: skip}
			return nil
		}

		t = subDomain.Apply(current, *ev, uc.now())

		switch t.Action {
		case subDomain.ActionUpsert:
			if err := tx.UpsertByBarber(ctx, t.Subscription); err != nil {
				return err
			}
		case subDomain.ActionUpdate:
			if err := tx.Update(ctx, t.Subscription); err != nil {
				return err
			}
		}

		if t.Payment != nil {
			if err := tx.AppendPayment(ctx, t.Payment); err != nil {
				return err
			}
		}

		switch {
		case t.Subscription != nil:
			barberID = t.Subscription.BarberID
		case current != nil:
			barberID = current.BarberID
		}
		return nil
	})
	if err != nil {
		logger.Error().Err(err).Msg("webhook processing failed")
		return err
	}

	if !t.Changed() {
		logger.Warn().Str("reason", t.Skip).Msg("webhook event skipped")
		return nil
	}

	uc.record(ctx, ev, t, barberID)
	logger.Info().Uint("barber_id", barberID).Msg("webhook event applied")
	return nil
}

// loadCurrent busca o registro local relevante para o evento. Um motivo de
// skip não vazio encerra o processamento sem erro.
func (uc *HandleWebhook) loadCurrent(
	ctx context.Context,
	tx subDomain.Repository,
	ev *subDomain.Event,
) (*models.Subscription, string, error) {

	switch ev.Type {
	case subDomain.EventCheckoutCompleted:
		if ev.Checkout == nil || ev.Checkout.Mode != subDomain.CheckoutModeSubscription {
			return nil, subDomain.SkipNotSubscriptionMode, nil
		}
		barberID, planID, ok := subDomain.ParseCheckoutMetadata(ev.Checkout.Metadata)
		if !ok {
			// Apply devolve o motivo exato
			return nil, "", nil
		}

		if _, err := tx.GetBarberByID(ctx, barberID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, subDomain.SkipUnknownBarber, nil
			}
			return nil, "", err
		}
		if _, err := tx.GetPlan(ctx, planID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, subDomain.SkipUnknownPlan, nil
			}
			return nil, "", err
		}

		return optional(tx.FindByBarberID(ctx, barberID))

	case subDomain.EventSubscriptionUpdated, subDomain.EventSubscriptionDeleted:
		if ev.Subscription == nil || ev.Subscription.ID == "" {
			return nil, subDomain.SkipMissingSnapshot, nil
		}
		return optional(tx.FindByStripeID(ctx, ev.Subscription.ID))

	case subDomain.EventInvoicePaid, subDomain.EventInvoiceFailed:
		if ev.Invoice == nil || ev.Invoice.SubscriptionID == "" {
			return nil, subDomain.SkipUnknownSubscription, nil
		}
		return optional(tx.FindByStripeID(ctx, ev.Invoice.SubscriptionID))
	}

	return nil, "", nil
}

func optional(sub *models.Subscription, err error) (*models.Subscription, string, error) {
	if errors.Is(err, domain.ErrNotFound) {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", err
	}
	return sub, "", nil
}

var auditActions = map[subDomain.EventType]string{
	subDomain.EventCheckoutCompleted:   "subscription_activated",
	subDomain.EventSubscriptionUpdated: "subscription_updated",
	subDomain.EventSubscriptionDeleted: "subscription_canceled",
	subDomain.EventInvoicePaid:         "subscription_payment_succeeded",
	subDomain.EventInvoiceFailed:       "subscription_payment_failed",
}

func (uc *HandleWebhook) record(
	ctx context.Context,
	ev *subDomain.Event,
	t subDomain.Transition,
	barberID uint,
) {
	action, ok := auditActions[ev.Type]
	if !ok || barberID == 0 {
		return
	}

	barber, err := uc.repo.GetBarberByID(ctx, barberID)
	if err != nil {
		log.Warn().Err(err).Uint("barber_id", barberID).Msg("audit skipped: barber lookup failed")
		return
	}

	meta := map[string]any{"stripe_event_id": ev.ID}
	var entityID *uint
	if t.Subscription != nil {
		meta["status"] = t.Subscription.Status
		if t.Subscription.ID != 0 {
			id := t.Subscription.ID
			entityID = &id
		}
	}
	if t.Payment != nil {
		meta["payment_intent"] = t.Payment.StripePaymentIntentID
		meta["amount"] = t.Payment.Amount.StringFixed(2)
	}

	uc.audit.Dispatch(audit.Event{
		BarbershopID: barber.BarbershopID,
		UserID:       &barber.UserID,
		Action:       action,
		Entity:       "subscription",
		EntityID:     entityID,
		Metadata:     meta,
	})
}
