package subscription

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type Repository interface {
	WithinTx(
		ctx context.Context,
		fn func(tx Repository) error,
	) error

	// -------- Barber --------
	GetBarberByID(
		ctx context.Context,
		id uint,
	) (*models.Barber, error)

	// -------- Subscription --------
	FindByBarberID(
		ctx context.Context,
		barberID uint,
	) (*models.Subscription, error)

	FindByStripeID(
		ctx context.Context,
		stripeSubscriptionID string,
	) (*models.Subscription, error)

	// UpsertByBarber cria ou sobrescreve a assinatura do barbeiro.
	UpsertByBarber(
		ctx context.Context,
		sub *models.Subscription,
	) error

	Update(
		ctx context.Context,
		sub *models.Subscription,
	) error

	ListDueForReconcile(
		ctx context.Context,
		now time.Time,
	) ([]models.Subscription, error)

	// -------- Payment --------
	// AppendPayment ignora duplicatas (mesmo payment intent e status).
	AppendPayment(
		ctx context.Context,
		p *models.Payment,
	) error

	ListPayments(
		ctx context.Context,
		subscriptionID uint,
	) ([]models.Payment, error)

	// -------- Plan --------
	GetPlan(
		ctx context.Context,
		id uint,
	) (*models.Plan, error)

	GetActivePlan(
		ctx context.Context,
	) (*models.Plan, error)

	ListPlans(
		ctx context.Context,
	) ([]models.Plan, error)

	CreatePlan(
		ctx context.Context,
		p *models.Plan,
	) error

	DeactivateAllPlans(
		ctx context.Context,
	) error

	SetPlanActive(
		ctx context.Context,
		id uint,
	) error
}
