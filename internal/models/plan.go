package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Plan struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Name        string          `gorm:"size:100;not null" json:"name"`
	Description string          `gorm:"size:255" json:"description"`
	Price       decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price"`
	Currency    string          `gorm:"size:3;not null;default:'brl'" json:"currency"`

	StripeProductID string `gorm:"size:100" json:"stripe_product_id"`
	StripePriceID   string `gorm:"size:100;not null" json:"stripe_price_id"`

	Active bool `gorm:"not null;default:false;index" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
