package booking

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// Customer agrega os agendamentos de um cliente em uma barbearia.
type Customer struct {
	UserID        uint      `json:"user_id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	BookingsCount int64     `json:"bookings_count"`
	LastBookingAt time.Time `json:"last_booking_at"`
}

type Repository interface {
	// WithinTx executa fn numa transação; o repositório recebido está
	// vinculado a ela.
	WithinTx(
		ctx context.Context,
		fn func(tx Repository) error,
	) error

	// -------- Barbershop / Service --------
	GetBarbershopByID(
		ctx context.Context,
		id uint,
	) (*models.Barbershop, error)

	GetService(
		ctx context.Context,
		barbershopID uint,
		serviceID uint,
	) (*models.Service, error)

	// -------- Hours --------
	ListHours(
		ctx context.Context,
		barbershopID uint,
	) ([]models.BarbershopHours, error)

	ReplaceHours(
		ctx context.Context,
		barbershopID uint,
		hours []models.BarbershopHours,
	) error

	// -------- Bookings --------
	ListBookingsForPeriod(
		ctx context.Context,
		barbershopID uint,
		start time.Time,
		end time.Time,
	) ([]models.Booking, error)

	ListBookingsForBarbershop(
		ctx context.Context,
		barbershopID uint,
	) ([]models.Booking, error)

	ListBookingsForUser(
		ctx context.Context,
		userID uint,
	) ([]models.Booking, error)

	IsSlotTaken(
		ctx context.Context,
		barbershopID uint,
		at time.Time,
	) (bool, error)

	UpdateUserPhone(
		ctx context.Context,
		userID uint,
		phone string,
	) error

	CreateBooking(
		ctx context.Context,
		b *models.Booking,
	) error

	ListCustomers(
		ctx context.Context,
		barbershopID uint,
		query string,
	) ([]Customer, error)
}
