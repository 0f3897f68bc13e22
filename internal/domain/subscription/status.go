package subscription

import (
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// Status espelha o vocabulário de status da Stripe.
type Status string

const (
	StatusActive            Status = "active"
	StatusPastDue           Status = "past_due"
	StatusCanceled          Status = "canceled"
	StatusTrialing          Status = "trialing"
	StatusIncomplete        Status = "incomplete"
	StatusIncompleteExpired Status = "incomplete_expired"
	StatusUnpaid            Status = "unpaid"
	StatusPaused            Status = "paused"
)

const (
	PaymentSucceeded = "succeeded"
	PaymentFailed    = "failed"
)

// HasAccess: assinatura ativa com período ainda vigente. Um cancelamento
// agendado (cancel_at_period_end) não revoga o acesso antes do fim do período.
func HasAccess(sub *models.Subscription, now time.Time) bool {
	if sub == nil {
		return false
	}
	return Status(sub.Status) == StatusActive && sub.CurrentPeriodEnd.After(now)
}
