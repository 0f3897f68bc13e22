package subscription

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

// ErrInvalidSignature indica webhook com assinatura inválida. Nunca é
// repetido e nada é alterado localmente.
var ErrInvalidSignature = errors.New("invalid webhook signature")

type CustomerInput struct {
	Email    string
	Name     string
	Metadata map[string]string
}

type CheckoutInput struct {
	CustomerID string
	PriceID    string
	SuccessURL string
	CancelURL  string
	Metadata   map[string]string
}

type CheckoutLink struct {
	SessionID string `json:"session_id"`
	URL       string `json:"url"`
}

type PriceInput struct {
	Name        string
	Description string
	Amount      decimal.Decimal
	Currency    string
}

type PriceRef struct {
	ProductID string
	PriceID   string
}

// Gateway é o processador de pagamentos.
type Gateway interface {
	CreateCustomer(ctx context.Context, in CustomerInput) (string, error)
	CreateCheckoutSession(ctx context.Context, in CheckoutInput) (*CheckoutLink, error)
	GetSubscription(ctx context.Context, id string) (*Snapshot, error)
	SetCancelAtPeriodEnd(ctx context.Context, id string, cancel bool) (*Snapshot, error)
	CreateRecurringPrice(ctx context.Context, in PriceInput) (*PriceRef, error)
	ParseWebhook(payload []byte, signature string) (*Event, error)
}
