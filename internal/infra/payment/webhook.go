package payment

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/stripe/stripe-go/v78/webhook"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/subscription"
)

// ParseWebhook verifica a assinatura antes de decodificar qualquer coisa.
func (g *StripeGateway) ParseWebhook(payload []byte, signature string) (*domain.Event, error) {
	if signature == "" {
		return nil, domain.ErrInvalidSignature
	}

	event, err := webhook.ConstructEventWithOptions(payload, signature, g.webhookSecret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidSignature, err)
	}

	out := &domain.Event{
		ID:   event.ID,
		Type: domain.EventType(event.Type),
	}
	if event.Data == nil {
		return out, nil
	}

	// assinatura válida: corpo que não decodifica é confirmado sem conteúdo
	if err := decodeObject(out, event.Data.Raw); err != nil {
		log.Warn().Err(err).
			Str("event_id", out.ID).
			Str("event_type", string(out.Type)).
			Msg("stripe event object could not be decoded, acknowledging without body")
		return &domain.Event{ID: out.ID, Type: out.Type}, nil
	}

	return out, nil
}

func decodeObject(out *domain.Event, raw []byte) error {
	switch out.Type {
	case domain.EventCheckoutCompleted:
		var s stripeCheckoutSession
		if err := json.Unmarshal(raw, &s); err != nil {
			return fmt.Errorf("decode checkout.session: %w", err)
		}
		out.Checkout = &domain.CheckoutSession{
			ID:             s.ID,
			Mode:           s.Mode,
			SubscriptionID: expandableID(s.Subscription),
			CustomerID:     expandableID(s.Customer),
			Metadata:       s.Metadata,
		}

	case domain.EventSubscriptionUpdated, domain.EventSubscriptionDeleted:
		var s stripeSubscription
		if err := json.Unmarshal(raw, &s); err != nil {
			return fmt.Errorf("decode subscription: %w", err)
		}
		out.Subscription = s.snapshot()

	case domain.EventInvoicePaid, domain.EventInvoiceFailed:
		var inv stripeInvoice
		if err := json.Unmarshal(raw, &inv); err != nil {
			return fmt.Errorf("decode invoice: %w", err)
		}
		out.Invoice = &domain.Invoice{
			ID:              inv.ID,
			SubscriptionID:  expandableID(inv.Subscription),
			PaymentIntentID: expandableID(inv.PaymentIntent),
			AmountPaid:      inv.AmountPaid,
			AmountDue:       inv.AmountDue,
		}
	}
	return nil
}

type stripeCheckoutSession struct {
	ID           string            `json:"id"`
	Mode         string            `json:"mode"`
	Customer     json.RawMessage   `json:"customer"`
	Subscription json.RawMessage   `json:"subscription"`
	Metadata     map[string]string `json:"metadata"`
}

type stripeSubscription struct {
	ID                 string          `json:"id"`
	Customer           json.RawMessage `json:"customer"`
	Status             string          `json:"status"`
	CurrentPeriodStart int64           `json:"current_period_start"`
	CurrentPeriodEnd   int64           `json:"current_period_end"`
	CancelAtPeriodEnd  bool            `json:"cancel_at_period_end"`
	CanceledAt         *int64          `json:"canceled_at"`
}

func (s stripeSubscription) snapshot() *domain.Snapshot {
	snap := &domain.Snapshot{
		ID:                 s.ID,
		CustomerID:         expandableID(s.Customer),
		Status:             domain.Status(s.Status),
		CurrentPeriodStart: unixTime(s.CurrentPeriodStart),
		CurrentPeriodEnd:   unixTime(s.CurrentPeriodEnd),
		CancelAtPeriodEnd:  s.CancelAtPeriodEnd,
	}
	if s.CanceledAt != nil && *s.CanceledAt > 0 {
		t := unixTime(*s.CanceledAt)
		snap.CanceledAt = &t
	}
	return snap
}

type stripeInvoice struct {
	ID            string          `json:"id"`
	Subscription  json.RawMessage `json:"subscription"`
	PaymentIntent json.RawMessage `json:"payment_intent"`
	AmountPaid    int64           `json:"amount_paid"`
	AmountDue     int64           `json:"amount_due"`
}

// expandableID lê um campo que pode vir como id ("sub_...") ou objeto expandido.
func expandableID(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}

	var id string
	if err := json.Unmarshal(raw, &id); err == nil {
		return id
	}

	var obj struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil {
		return obj.ID
	}
	return ""
}
