package subscription

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type Action int

const (
	ActionNone Action = iota
	ActionUpsert
	ActionUpdate
)

// Skip reasons. Eventos ignorados são confirmados à Stripe sem erro.
const (
	SkipUnhandledType       = "unhandled_event_type"
	SkipNotSubscriptionMode = "not_subscription_mode"
	SkipMissingMetadata     = "missing_metadata"
	SkipMissingSnapshot     = "missing_subscription_snapshot"
	SkipUnknownSubscription = "unknown_subscription"
	SkipAlreadyCanceled     = "already_canceled"
	SkipMissingPayment      = "missing_payment_intent"
	SkipUnknownBarber       = "unknown_barber"
	SkipUnknownPlan         = "unknown_plan"
	SkipStaleCheckout       = "stale_checkout"
)

// Transition é o resultado de aplicar um evento ao estado local.
type Transition struct {
	Action       Action
	Subscription *models.Subscription
	Payment      *models.Payment
	Skip         string
}

func (t Transition) Changed() bool {
	return t.Action != ActionNone || t.Payment != nil
}

// Apply calcula o novo estado de uma assinatura a partir do registro atual
// (nil quando não existe) e de um evento. Não faz I/O; o chamador persiste.
//
// Para checkout.session.completed, ev.Subscription deve trazer a assinatura
// recarregada da Stripe. "canceled" é terminal para o mesmo id externo:
// eventos atrasados de update ou de falha de pagamento não o revertem.
func Apply(current *models.Subscription, ev Event, now time.Time) Transition {
	switch ev.Type {
	case EventCheckoutCompleted:
		return applyCheckout(current, ev)
	case EventSubscriptionUpdated:
		return applyUpdated(current, ev.Subscription)
	case EventSubscriptionDeleted:
		return applyDeleted(current, now)
	case EventInvoicePaid:
		return applyInvoicePaid(current, ev.Invoice)
	case EventInvoiceFailed:
		return applyInvoiceFailed(current, ev.Invoice)
	default:
		return Transition{Skip: SkipUnhandledType}
	}
}

func applyCheckout(current *models.Subscription, ev Event) Transition {
	if ev.Checkout == nil || ev.Checkout.Mode != CheckoutModeSubscription {
		return Transition{Skip: SkipNotSubscriptionMode}
	}

	barberID, planID, ok := ParseCheckoutMetadata(ev.Checkout.Metadata)
	if !ok {
		return Transition{Skip: SkipMissingMetadata}
	}
	if ev.Subscription == nil {
		return Transition{Skip: SkipMissingSnapshot}
	}
	if isStaleCheckout(current, ev.Subscription) {
		return Transition{Skip: SkipStaleCheckout}
	}

	next := models.Subscription{}
	if current != nil {
		next = *current
	}
	next.BarberID = barberID
	next.PlanID = planID
	overwrite(&next, ev.Subscription)

	if next.StripeCustomerID == "" {
		next.StripeCustomerID = ev.Checkout.CustomerID
	}

	return Transition{Action: ActionUpsert, Subscription: &next}
}

func applyUpdated(current *models.Subscription, snap *Snapshot) Transition {
	if snap == nil {
		return Transition{Skip: SkipMissingSnapshot}
	}
	if current == nil {
		return Transition{Skip: SkipUnknownSubscription}
	}
	if isTerminal(current) && snap.Status != StatusCanceled {
		return Transition{Skip: SkipAlreadyCanceled}
	}

	next := *current
	overwrite(&next, snap)
	return Transition{Action: ActionUpdate, Subscription: &next}
}

func applyDeleted(current *models.Subscription, now time.Time) Transition {
	if current == nil {
		return Transition{Skip: SkipUnknownSubscription}
	}

	next := *current
	canceledAt := now
	next.Status = string(StatusCanceled)
	next.CanceledAt = &canceledAt
	return Transition{Action: ActionUpdate, Subscription: &next}
}

func applyInvoicePaid(current *models.Subscription, inv *Invoice) Transition {
	if current == nil || inv == nil {
		return Transition{Skip: SkipUnknownSubscription}
	}
	if inv.PaymentIntentID == "" {
		return Transition{Skip: SkipMissingPayment}
	}

	return Transition{
		Payment: &models.Payment{
			SubscriptionID:        current.ID,
			StripePaymentIntentID: inv.PaymentIntentID,
			Amount:                fromMinorUnits(inv.AmountPaid),
			Status:                PaymentSucceeded,
		},
	}
}

func applyInvoiceFailed(current *models.Subscription, inv *Invoice) Transition {
	if current == nil || inv == nil {
		return Transition{Skip: SkipUnknownSubscription}
	}

	t := Transition{}
	if !isTerminal(current) {
		next := *current
		next.Status = string(StatusPastDue)
		t.Action = ActionUpdate
		t.Subscription = &next
	} else {
		t.Skip = SkipAlreadyCanceled
	}

	if inv.PaymentIntentID != "" {
		t.Payment = &models.Payment{
			SubscriptionID:        current.ID,
			StripePaymentIntentID: inv.PaymentIntentID,
			Amount:                fromMinorUnits(inv.AmountDue),
			Status:                PaymentFailed,
		}
	}
	return t
}

func overwrite(sub *models.Subscription, snap *Snapshot) {
	sub.StripeSubscriptionID = snap.ID
	if snap.CustomerID != "" {
		sub.StripeCustomerID = snap.CustomerID
	}
	sub.Status = string(snap.Status)
	sub.CurrentPeriodStart = snap.CurrentPeriodStart
	sub.CurrentPeriodEnd = snap.CurrentPeriodEnd
	sub.CancelAtPeriodEnd = snap.CancelAtPeriodEnd
	sub.CanceledAt = snap.CanceledAt
}

// isStaleCheckout detecta a reentrega de um checkout antigo depois que o
// barbeiro já assinou de novo com outro id externo.
func isStaleCheckout(current *models.Subscription, snap *Snapshot) bool {
	if current == nil || current.StripeSubscriptionID == "" || current.StripeSubscriptionID == snap.ID {
		return false
	}
	if snap.Status == StatusCanceled {
		return true
	}
	return !isTerminal(current) && snap.CurrentPeriodEnd.Before(current.CurrentPeriodEnd)
}

func isTerminal(sub *models.Subscription) bool {
	return Status(sub.Status) == StatusCanceled
}

func fromMinorUnits(amount int64) decimal.Decimal {
	return decimal.New(amount, -2)
}
