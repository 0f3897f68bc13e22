package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	dom "github.com/BruksfildServices01/barber-booking/internal/domain"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/subscription"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type SubscriptionGormRepository struct {
	db *gorm.DB
}

func NewSubscriptionGormRepository(db *gorm.DB) *SubscriptionGormRepository {
	return &SubscriptionGormRepository{db: db}
}

var _ domain.Repository = (*SubscriptionGormRepository)(nil)

func (r *SubscriptionGormRepository) WithinTx(
	ctx context.Context,
	fn func(tx domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&SubscriptionGormRepository{db: tx})
	})
}

// --------------------------------------------------
// Barber
// --------------------------------------------------

func (r *SubscriptionGormRepository) GetBarberByID(
	ctx context.Context,
	id uint,
) (*models.Barber, error) {

	var barber models.Barber
	if err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Subscription.Plan").
		First(&barber, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &barber, nil
}

// --------------------------------------------------
// Subscription
// --------------------------------------------------

func (r *SubscriptionGormRepository) FindByBarberID(
	ctx context.Context,
	barberID uint,
) (*models.Subscription, error) {

	var sub models.Subscription
	if err := r.db.WithContext(ctx).
		Preload("Plan").
		Where("barber_id = ?", barberID).
		First(&sub).Error; err != nil {
		return nil, notFound(err)
	}
	return &sub, nil
}

func (r *SubscriptionGormRepository) FindByStripeID(
	ctx context.Context,
	stripeSubscriptionID string,
) (*models.Subscription, error) {

	var sub models.Subscription
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("stripe_subscription_id = ?", stripeSubscriptionID).
		First(&sub).Error; err != nil {
		return nil, notFound(err)
	}
	return &sub, nil
}

var subscriptionStateColumns = []string{
	"plan_id",
	"stripe_subscription_id",
	"stripe_customer_id",
	"status",
	"current_period_start",
	"current_period_end",
	"cancel_at_period_end",
	"canceled_at",
	"updated_at",
}

func (r *SubscriptionGormRepository) UpsertByBarber(
	ctx context.Context,
	sub *models.Subscription,
) error {
	if sub.ID != 0 {
		return r.Update(ctx, sub)
	}

	// entregas concorrentes do mesmo checkout caem no ON CONFLICT
	return r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "barber_id"}},
			DoUpdates: clause.AssignmentColumns(subscriptionStateColumns),
		}).
		Create(sub).Error
}

func (r *SubscriptionGormRepository) Update(
	ctx context.Context,
	sub *models.Subscription,
) error {
	return r.db.WithContext(ctx).
		Model(sub).
		Select(subscriptionStateColumns).
		Omit(clause.Associations).
		Updates(sub).Error
}

func (r *SubscriptionGormRepository) ListDueForReconcile(
	ctx context.Context,
	now time.Time,
) ([]models.Subscription, error) {

	var subs []models.Subscription
	if err := r.db.WithContext(ctx).
		Where("status IN ? AND current_period_end < ?",
			[]string{string(domain.StatusActive), string(domain.StatusPastDue)},
			now,
		).
		Order("current_period_end ASC").
		Find(&subs).Error; err != nil {
		return nil, err
	}
	return subs, nil
}

// --------------------------------------------------
// Payment
// --------------------------------------------------

func (r *SubscriptionGormRepository) AppendPayment(
	ctx context.Context,
	p *models.Payment,
) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(p).Error
}

func (r *SubscriptionGormRepository) ListPayments(
	ctx context.Context,
	subscriptionID uint,
) ([]models.Payment, error) {

	var payments []models.Payment
	if err := r.db.WithContext(ctx).
		Where("subscription_id = ?", subscriptionID).
		Order("created_at DESC").
		Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

// --------------------------------------------------
// Plan
// --------------------------------------------------

func (r *SubscriptionGormRepository) GetPlan(
	ctx context.Context,
	id uint,
) (*models.Plan, error) {

	var plan models.Plan
	if err := r.db.WithContext(ctx).First(&plan, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &plan, nil
}

func (r *SubscriptionGormRepository) GetActivePlan(
	ctx context.Context,
) (*models.Plan, error) {

	var plan models.Plan
	if err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("updated_at DESC").
		First(&plan).Error; err != nil {
		return nil, notFound(err)
	}
	return &plan, nil
}

func (r *SubscriptionGormRepository) ListPlans(
	ctx context.Context,
) ([]models.Plan, error) {

	var plans []models.Plan
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&plans).Error; err != nil {
		return nil, err
	}
	return plans, nil
}

func (r *SubscriptionGormRepository) CreatePlan(
	ctx context.Context,
	p *models.Plan,
) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *SubscriptionGormRepository) DeactivateAllPlans(
	ctx context.Context,
) error {
	return r.db.WithContext(ctx).
		Model(&models.Plan{}).
		Where("active = ?", true).
		Update("active", false).Error
}

func (r *SubscriptionGormRepository) SetPlanActive(
	ctx context.Context,
	id uint,
) error {
	res := r.db.WithContext(ctx).
		Model(&models.Plan{}).
		Where("id = ?", id).
		Update("active", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return dom.ErrNotFound
	}
	return nil
}
