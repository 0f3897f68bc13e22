package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment é append-only: uma linha por evento de fatura.
type Payment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	SubscriptionID uint `gorm:"not null;index" json:"subscription_id"`

	StripePaymentIntentID string          `gorm:"size:100;not null;uniqueIndex:idx_payment_intent_status,priority:1" json:"stripe_payment_intent_id"`
	Amount                decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"amount"`
	Status                string          `gorm:"size:20;not null;uniqueIndex:idx_payment_intent_status,priority:2" json:"status"`

	CreatedAt time.Time `json:"created_at"`
}
