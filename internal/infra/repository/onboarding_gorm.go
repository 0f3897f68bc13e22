package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/onboarding"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type OnboardingGormRepository struct {
	db *gorm.DB
}

func NewOnboardingGormRepository(db *gorm.DB) *OnboardingGormRepository {
	return &OnboardingGormRepository{db: db}
}

var _ domain.Repository = (*OnboardingGormRepository)(nil)

func (r *OnboardingGormRepository) WithinTx(
	ctx context.Context,
	fn func(tx domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&OnboardingGormRepository{db: tx})
	})
}

// --------------------------------------------------
// User
// --------------------------------------------------

func (r *OnboardingGormRepository) GetUser(
	ctx context.Context,
	id uint,
) (*models.User, error) {

	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

func (r *OnboardingGormRepository) FindUserByEmail(
	ctx context.Context,
	email string,
) (*models.User, error) {

	var user models.User
	if err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&user).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

func (r *OnboardingGormRepository) SetUserRole(
	ctx context.Context,
	userID uint,
	role string,
) error {
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", userID).
		Update("role", role).Error
}

// DeleteUserCascade precisa rodar dentro de WithinTx.
func (r *OnboardingGormRepository) DeleteUserCascade(
	ctx context.Context,
	userID uint,
) error {
	db := r.db.WithContext(ctx)

	if err := db.Where("user_id = ?", userID).Delete(&models.Booking{}).Error; err != nil {
		return err
	}

	var barber models.Barber
	err := db.Where("user_id = ?", userID).First(&barber).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if err == nil {
		subIDs := db.Model(&models.Subscription{}).Select("id").Where("barber_id = ?", barber.ID)
		if err := db.Where("subscription_id IN (?)", subIDs).Delete(&models.Payment{}).Error; err != nil {
			return err
		}
		if err := db.Where("barber_id = ?", barber.ID).Delete(&models.Subscription{}).Error; err != nil {
			return err
		}
		if err := db.Delete(&barber).Error; err != nil {
			return err
		}
	}

	return db.Delete(&models.User{}, userID).Error
}

// --------------------------------------------------
// Barbershop
// --------------------------------------------------

func (r *OnboardingGormRepository) GetBarbershop(
	ctx context.Context,
	id uint,
) (*models.Barbershop, error) {

	var shop models.Barbershop
	if err := r.db.WithContext(ctx).First(&shop, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &shop, nil
}

func (r *OnboardingGormRepository) CreateBarbershop(
	ctx context.Context,
	shop *models.Barbershop,
) error {
	err := r.db.WithContext(ctx).Create(shop).Error
	if httperr.IsUniqueViolation(err) {
		return httperr.ErrConflict("slug_already_exists", "Já existe uma barbearia com este slug.")
	}
	return err
}

func (r *OnboardingGormRepository) UpdateBarbershop(
	ctx context.Context,
	shop *models.Barbershop,
) error {
	return r.db.WithContext(ctx).
		Model(shop).
		Select("name", "phone", "address", "description", "image_url", "timezone").
		Updates(shop).Error
}

func (r *OnboardingGormRepository) ListBarbershops(
	ctx context.Context,
) ([]domain.BarbershopSummary, error) {

	var shops []models.Barbershop
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&shops).Error; err != nil {
		return nil, err
	}

	var linked []uint
	if err := r.db.WithContext(ctx).
		Model(&models.Barber{}).
		Pluck("barbershop_id", &linked).Error; err != nil {
		return nil, err
	}

	has := make(map[uint]bool, len(linked))
	for _, id := range linked {
		has[id] = true
	}

	out := make([]domain.BarbershopSummary, 0, len(shops))
	for _, s := range shops {
		out = append(out, domain.BarbershopSummary{Barbershop: s, HasBarber: has[s.ID]})
	}
	return out, nil
}

// --------------------------------------------------
// Barber link
// --------------------------------------------------

func (r *OnboardingGormRepository) FindBarberByBarbershop(
	ctx context.Context,
	barbershopID uint,
) (*models.Barber, error) {

	var barber models.Barber
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("barbershop_id = ?", barbershopID).
		First(&barber).Error; err != nil {
		return nil, notFound(err)
	}
	return &barber, nil
}

func (r *OnboardingGormRepository) FindBarberByUser(
	ctx context.Context,
	userID uint,
) (*models.Barber, error) {

	var barber models.Barber
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).
		First(&barber).Error; err != nil {
		return nil, notFound(err)
	}
	return &barber, nil
}

func (r *OnboardingGormRepository) CreateBarber(
	ctx context.Context,
	b *models.Barber,
) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(b).Error
	switch {
	case httperr.IsUniqueViolation(err, "idx_barbers_barbershop_id"):
		return httperr.ErrConflict("barbershop_has_barber", "Esta barbearia já possui um barbeiro.")
	case httperr.IsUniqueViolation(err, "idx_barbers_user_id"):
		return httperr.ErrConflict("user_already_barber", "Este usuário já é barbeiro de outra barbearia.")
	}
	return err
}

func (r *OnboardingGormRepository) DeleteBarberByUser(
	ctx context.Context,
	userID uint,
) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.Barber{}).Error
}

func (r *OnboardingGormRepository) HasSubscription(
	ctx context.Context,
	barberID uint,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Subscription{}).
		Where("barber_id = ?", barberID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
