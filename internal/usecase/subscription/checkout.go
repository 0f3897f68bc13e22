package subscription

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/domain"
	subDomain "github.com/BruksfildServices01/barber-booking/internal/domain/subscription"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// ======================================================
// CHECKOUT
// ======================================================

type CreateCheckout struct {
	repo    subDomain.Repository
	gateway subDomain.Gateway
	audit   audit.Recorder
	appURL  string
}

func NewCreateCheckout(
	repo subDomain.Repository,
	gateway subDomain.Gateway,
	recorder audit.Recorder,
	appURL string,
) *CreateCheckout {
	return &CreateCheckout{
		repo:    repo,
		gateway: gateway,
		audit:   recorder,
		appURL:  strings.TrimRight(appURL, "/"),
	}
}

// Execute abre uma sessão de checkout para o plano ativo. Um barbeiro com
// assinatura ativa não pode iniciar outra; o customer da Stripe é
// reaproveitado quando já existe.
func (uc *CreateCheckout) Execute(
	ctx context.Context,
	barberID uint,
) (*subDomain.CheckoutLink, error) {

	barber, err := loadBarber(ctx, uc.repo, barberID)
	if err != nil {
		return nil, err
	}

	if barber.Subscription != nil && subDomain.Status(barber.Subscription.Status) == subDomain.StatusActive {
		return nil, httperr.ErrConflict("subscription_already_active", "Você já possui uma assinatura ativa.")
	}

	plan, err := uc.repo.GetActivePlan(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, httperr.ErrNotFound("no_active_plan", "Nenhum plano disponível no momento.")
		}
		return nil, err
	}

	customerID := ""
	if barber.Subscription != nil {
		customerID = barber.Subscription.StripeCustomerID
	}

	if customerID == "" {
		customerID, err = uc.gateway.CreateCustomer(ctx, subDomain.CustomerInput{
			Email: barber.User.Email,
			Name:  barber.User.Name,
			Metadata: map[string]string{
				subDomain.MetadataUserID:   strconv.FormatUint(uint64(barber.UserID), 10),
				subDomain.MetadataBarberID: strconv.FormatUint(uint64(barber.ID), 10),
			},
		})
		if err != nil {
			return nil, httperr.ErrExternal("payment_provider_error", err)
		}
	}

	link, err := uc.gateway.CreateCheckoutSession(ctx, subDomain.CheckoutInput{
		CustomerID: customerID,
		PriceID:    plan.StripePriceID,
		SuccessURL: uc.appURL + "/subscription/success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:  uc.appURL + "/subscription?canceled=true",
		Metadata:   subDomain.CheckoutMetadata(barber.UserID, barber.ID, plan.ID),
	})
	if err != nil {
		return nil, httperr.ErrExternal("payment_provider_error", err)
	}

	uc.audit.Dispatch(audit.Event{
		BarbershopID: barber.BarbershopID,
		UserID:       &barber.UserID,
		Action:       "subscription_checkout_started",
		Entity:       "plan",
		EntityID:     &plan.ID,
		Metadata:     map[string]any{"session_id": link.SessionID},
	})

	return link, nil
}

// ======================================================
// CANCELAMENTO
// ======================================================

type Cancel struct {
	repo    subDomain.Repository
	gateway subDomain.Gateway
	audit   audit.Recorder
}

func NewCancel(
	repo subDomain.Repository,
	gateway subDomain.Gateway,
	recorder audit.Recorder,
) *Cancel {
	return &Cancel{repo: repo, gateway: gateway, audit: recorder}
}

// Execute agenda o cancelamento para o fim do período; o acesso segue
// valendo até lá.
func (uc *Cancel) Execute(
	ctx context.Context,
	barberID uint,
) (*models.Subscription, error) {

	barber, err := loadBarber(ctx, uc.repo, barberID)
	if err != nil {
		return nil, err
	}

	sub := barber.Subscription
	if sub == nil {
		return nil, httperr.ErrNotFound("subscription_not_found", "Nenhuma assinatura encontrada.")
	}
	if subDomain.Status(sub.Status) != subDomain.StatusActive {
		return nil, httperr.ErrValidation("subscription_not_active", "A assinatura não está ativa.")
	}

	snap, err := uc.gateway.SetCancelAtPeriodEnd(ctx, sub.StripeSubscriptionID, true)
	if err != nil {
		return nil, httperr.ErrExternal("payment_provider_error", err)
	}

	t := subDomain.Apply(sub, subDomain.Event{
		Type:         subDomain.EventSubscriptionUpdated,
		Subscription: snap,
	}, time.Now())

	if t.Action == subDomain.ActionUpdate {
		if err := uc.repo.Update(ctx, t.Subscription); err != nil {
			return nil, err
		}
		sub = t.Subscription
	}

	uc.audit.Dispatch(audit.Event{
		BarbershopID: barber.BarbershopID,
		UserID:       &barber.UserID,
		Action:       "subscription_cancel_requested",
		Entity:       "subscription",
		EntityID:     &sub.ID,
		Metadata:     map[string]any{"current_period_end": sub.CurrentPeriodEnd},
	})

	return sub, nil
}

func loadBarber(ctx context.Context, repo subDomain.Repository, barberID uint) (*models.Barber, error) {
	barber, err := repo.GetBarberByID(ctx, barberID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, httperr.ErrNotFound("barber_not_found", "Barbeiro não encontrado.")
		}
		return nil, err
	}
	return barber, nil
}
