package subscription

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	subDomain "github.com/BruksfildServices01/barber-booking/internal/domain/subscription"
)

// Reconcile relê na Stripe as assinaturas cujo período já venceu sem que
// um webhook tenha atualizado o registro local.
type Reconcile struct {
	repo    subDomain.Repository
	gateway subDomain.Gateway
	now     func() time.Time
}

func NewReconcile(repo subDomain.Repository, gateway subDomain.Gateway) *Reconcile {
	return &Reconcile{repo: repo, gateway: gateway, now: time.Now}
}

// Execute devolve quantas assinaturas mudaram. Falhas individuais não
// interrompem o lote.
func (uc *Reconcile) Execute(ctx context.Context) (int, error) {
	due, err := uc.repo.ListDueForReconcile(ctx, uc.now())
	if err != nil {
		return 0, err
	}

	var (
		updated int
		errs    []error
	)

	for _, sub := range due {
		snap, err := uc.gateway.GetSubscription(ctx, sub.StripeSubscriptionID)
		if err != nil {
			log.Warn().Err(err).Str("stripe_subscription_id", sub.StripeSubscriptionID).Msg("reconcile fetch failed")
			errs = append(errs, err)
			continue
		}

		ev := subDomain.Event{Type: subDomain.EventSubscriptionUpdated, Subscription: snap}

		var changed bool
		err = uc.repo.WithinTx(ctx, func(tx subDomain.Repository) error {
			current, err := tx.FindByStripeID(ctx, sub.StripeSubscriptionID)
			if err != nil {
				return err
			}

			t := subDomain.Apply(current, ev, uc.now())
			if t.Action != subDomain.ActionUpdate {
				return nil
			}
			changed = true
			return tx.Update(ctx, t.Subscription)
		})
		if err != nil {
			errs = append(errs, err)
			continue
		}

		if changed {
			updated++
		}
	}

	return updated, errors.Join(errs...)
}
