package catalog

import (
	"context"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type Repository interface {
	WithinTx(
		ctx context.Context,
		fn func(tx Repository) error,
	) error

	ListServices(
		ctx context.Context,
		barbershopID uint,
	) ([]models.Service, error)

	GetService(
		ctx context.Context,
		barbershopID uint,
		serviceID uint,
	) (*models.Service, error)

	CreateService(
		ctx context.Context,
		s *models.Service,
	) error

	UpdateService(
		ctx context.Context,
		s *models.Service,
	) error

	CountBookings(
		ctx context.Context,
		serviceID uint,
	) (int64, error)

	DeleteService(
		ctx context.Context,
		serviceID uint,
	) error
}
