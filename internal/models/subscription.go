package models

import "time"

type Subscription struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BarberID uint `gorm:"not null;uniqueIndex" json:"barber_id"`

	PlanID uint `gorm:"not null;index" json:"plan_id"`
	Plan   Plan `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"plan"`

	StripeSubscriptionID string `gorm:"size:100;not null;uniqueIndex" json:"stripe_subscription_id"`
	StripeCustomerID     string `gorm:"size:100;not null;index" json:"stripe_customer_id"`

	Status             string     `gorm:"size:30;not null" json:"status"`
	CurrentPeriodStart time.Time  `json:"current_period_start"`
	CurrentPeriodEnd   time.Time  `json:"current_period_end"`
	CancelAtPeriodEnd  bool       `gorm:"not null;default:false" json:"cancel_at_period_end"`
	CanceledAt         *time.Time `json:"canceled_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
