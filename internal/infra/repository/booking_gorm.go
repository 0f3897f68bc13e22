package repository

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

var _ domain.Repository = (*BookingGormRepository)(nil)

func (r *BookingGormRepository) WithinTx(
	ctx context.Context,
	fn func(tx domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&BookingGormRepository{db: tx})
	})
}

// --------------------------------------------------
// Barbershop / Service
// --------------------------------------------------

func (r *BookingGormRepository) GetBarbershopByID(
	ctx context.Context,
	id uint,
) (*models.Barbershop, error) {

	var shop models.Barbershop
	if err := r.db.WithContext(ctx).First(&shop, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &shop, nil
}

func (r *BookingGormRepository) GetService(
	ctx context.Context,
	barbershopID uint,
	serviceID uint,
) (*models.Service, error) {

	var service models.Service
	if err := r.db.WithContext(ctx).
		Where("id = ? AND barbershop_id = ?", serviceID, barbershopID).
		First(&service).Error; err != nil {
		return nil, notFound(err)
	}
	return &service, nil
}

// --------------------------------------------------
// Hours
// --------------------------------------------------

func (r *BookingGormRepository) ListHours(
	ctx context.Context,
	barbershopID uint,
) ([]models.BarbershopHours, error) {

	var hours []models.BarbershopHours
	if err := r.db.WithContext(ctx).
		Where("barbershop_id = ?", barbershopID).
		Order("day_of_week ASC").
		Find(&hours).Error; err != nil {
		return nil, err
	}
	return hours, nil
}

// ReplaceHours apaga e recria todos os dias numa única transação.
func (r *BookingGormRepository) ReplaceHours(
	ctx context.Context,
	barbershopID uint,
	hours []models.BarbershopHours,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("barbershop_id = ?", barbershopID).
			Delete(&models.BarbershopHours{}).Error; err != nil {
			return err
		}
		if len(hours) == 0 {
			return nil
		}
		return tx.Create(&hours).Error
	})
}

// --------------------------------------------------
// Bookings
// --------------------------------------------------

func (r *BookingGormRepository) ListBookingsForPeriod(
	ctx context.Context,
	barbershopID uint,
	start time.Time,
	end time.Time,
) ([]models.Booking, error) {

	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Service").
		Preload("User").
		Where("barbershop_id = ? AND date >= ? AND date < ?", barbershopID, start, end).
		Order("date ASC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *BookingGormRepository) ListBookingsForBarbershop(
	ctx context.Context,
	barbershopID uint,
) ([]models.Booking, error) {

	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Service").
		Preload("User").
		Where("barbershop_id = ?", barbershopID).
		Order("date ASC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *BookingGormRepository) ListBookingsForUser(
	ctx context.Context,
	userID uint,
) ([]models.Booking, error) {

	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Service").
		Preload("Barbershop").
		Where("user_id = ?", userID).
		Order("date ASC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *BookingGormRepository) IsSlotTaken(
	ctx context.Context,
	barbershopID uint,
	at time.Time,
) (bool, error) {

	var ids []uint
	if err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("barbershop_id = ? AND date = ?", barbershopID, at).
		Limit(1).
		Pluck("id", &ids).Error; err != nil {
		return false, err
	}
	return len(ids) > 0, nil
}

func (r *BookingGormRepository) UpdateUserPhone(
	ctx context.Context,
	userID uint,
	phone string,
) error {
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", userID).
		Update("phone", phone).Error
}

func (r *BookingGormRepository) CreateBooking(
	ctx context.Context,
	b *models.Booking,
) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(b).Error
	if httperr.IsUniqueViolation(err, "idx_booking_slot") {
		return httperr.ErrConflict("slot_unavailable", "Este horário acabou de ser reservado.")
	}
	return err
}

func (r *BookingGormRepository) ListCustomers(
	ctx context.Context,
	barbershopID uint,
	query string,
) ([]domain.Customer, error) {

	q := r.db.WithContext(ctx).
		Table("bookings").
		Select(`users.id AS user_id, users.name, users.email, users.phone,
			COUNT(bookings.id) AS bookings_count, MAX(bookings.date) AS last_booking_at`).
		Joins("JOIN users ON users.id = bookings.user_id").
		Where("bookings.barbershop_id = ?", barbershopID)

	if query = strings.ToLower(strings.TrimSpace(query)); query != "" {
		like := "%" + query + "%"
		q = q.Where(
			"LOWER(users.name) LIKE ? OR users.phone LIKE ? OR LOWER(users.email) LIKE ?",
			like, like, like,
		)
	}

	var out []domain.Customer
	if err := q.
		Group("users.id, users.name, users.email, users.phone").
		Order("last_booking_at DESC").
		Scan(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
