package catalog

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/domain"
	catalogDomain "github.com/BruksfildServices01/barber-booking/internal/domain/catalog"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type ServiceInput struct {
	Name        string
	Description string
	Price       decimal.Decimal
	ImageURL    string
}

// Services reúne o CRUD de serviços de uma barbearia.
type Services struct {
	repo  catalogDomain.Repository
	audit audit.Recorder
}

func NewServices(repo catalogDomain.Repository, recorder audit.Recorder) *Services {
	return &Services{repo: repo, audit: recorder}
}

func (uc *Services) List(ctx context.Context, barbershopID uint) ([]models.Service, error) {
	return uc.repo.ListServices(ctx, barbershopID)
}

func (uc *Services) Create(
	ctx context.Context,
	barbershopID uint,
	userID uint,
	in ServiceInput,
) (*models.Service, error) {

	name := strings.TrimSpace(in.Name)
	if err := catalogDomain.ValidateService(name, in.Price); err != nil {
		return nil, err
	}

	service := &models.Service{
		BarbershopID: barbershopID,
		Name:         name,
		Description:  strings.TrimSpace(in.Description),
		Price:        in.Price.Round(2),
		ImageURL:     strings.TrimSpace(in.ImageURL),
	}

	if err := uc.repo.CreateService(ctx, service); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BarbershopID: barbershopID,
		UserID:       &userID,
		Action:       "service_created",
		Entity:       "service",
		EntityID:     &service.ID,
		Metadata:     map[string]any{"name": service.Name, "price": service.Price.StringFixed(2)},
	})

	return service, nil
}

func (uc *Services) Update(
	ctx context.Context,
	barbershopID uint,
	userID uint,
	serviceID uint,
	in ServiceInput,
) (*models.Service, error) {

	name := strings.TrimSpace(in.Name)
	if err := catalogDomain.ValidateService(name, in.Price); err != nil {
		return nil, err
	}

	service, err := uc.get(ctx, barbershopID, serviceID)
	if err != nil {
		return nil, err
	}

	service.Name = name
	service.Description = strings.TrimSpace(in.Description)
	service.Price = in.Price.Round(2)
	service.ImageURL = strings.TrimSpace(in.ImageURL)

	if err := uc.repo.UpdateService(ctx, service); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BarbershopID: barbershopID,
		UserID:       &userID,
		Action:       "service_updated",
		Entity:       "service",
		EntityID:     &service.ID,
		Metadata:     map[string]any{"name": service.Name, "price": service.Price.StringFixed(2)},
	})

	return service, nil
}

// Delete só remove serviços sem agendamentos.
func (uc *Services) Delete(
	ctx context.Context,
	barbershopID uint,
	userID uint,
	serviceID uint,
) error {

	err := uc.repo.WithinTx(ctx, func(tx catalogDomain.Repository) error {
		if _, err := tx.GetService(ctx, barbershopID, serviceID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return httperr.ErrNotFound("service_not_found", "Serviço não encontrado.")
			}
			return err
		}

		count, err := tx.CountBookings(ctx, serviceID)
		if err != nil {
			return err
		}
		if count > 0 {
			return httperr.ErrConflict("service_has_bookings", "Não é possível excluir um serviço com agendamentos.")
		}

		return tx.DeleteService(ctx, serviceID)
	})
	if err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		BarbershopID: barbershopID,
		UserID:       &userID,
		Action:       "service_deleted",
		Entity:       "service",
		EntityID:     &serviceID,
	})
	return nil
}

func (uc *Services) get(ctx context.Context, barbershopID, serviceID uint) (*models.Service, error) {
	service, err := uc.repo.GetService(ctx, barbershopID, serviceID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, httperr.ErrNotFound("service_not_found", "Serviço não encontrado.")
		}
		return nil, err
	}
	return service, nil
}
