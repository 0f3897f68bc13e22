package onboarding

import (
	"context"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// BarbershopSummary é a barbearia com a indicação de barbeiro vinculado.
type BarbershopSummary struct {
	models.Barbershop
	HasBarber bool `json:"has_barber"`
}

type Repository interface {
	WithinTx(
		ctx context.Context,
		fn func(tx Repository) error,
	) error

	// -------- User --------
	GetUser(
		ctx context.Context,
		id uint,
	) (*models.User, error)

	FindUserByEmail(
		ctx context.Context,
		email string,
	) (*models.User, error)

	SetUserRole(
		ctx context.Context,
		userID uint,
		role string,
	) error

	// DeleteUserCascade remove o usuário e tudo que depende dele.
	DeleteUserCascade(
		ctx context.Context,
		userID uint,
	) error

	// -------- Barbershop --------
	GetBarbershop(
		ctx context.Context,
		id uint,
	) (*models.Barbershop, error)

	CreateBarbershop(
		ctx context.Context,
		shop *models.Barbershop,
	) error

	UpdateBarbershop(
		ctx context.Context,
		shop *models.Barbershop,
	) error

	ListBarbershops(
		ctx context.Context,
	) ([]BarbershopSummary, error)

	// -------- Barber link --------
	// As buscas por vínculo travam a linha (SELECT ... FOR UPDATE) dentro
	// de uma transação.
	FindBarberByBarbershop(
		ctx context.Context,
		barbershopID uint,
	) (*models.Barber, error)

	FindBarberByUser(
		ctx context.Context,
		userID uint,
	) (*models.Barber, error)

	CreateBarber(
		ctx context.Context,
		b *models.Barber,
	) error

	DeleteBarberByUser(
		ctx context.Context,
		userID uint,
	) error

	HasSubscription(
		ctx context.Context,
		barberID uint,
	) (bool, error)
}
