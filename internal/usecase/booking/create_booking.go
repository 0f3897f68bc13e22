package booking

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/cache"
	"github.com/BruksfildServices01/barber-booking/internal/domain"
	bookingDomain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/dto"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateBookingInput struct {
	BarbershopID uint
	ServiceID    uint
	UserID       uint

	Year   int
	Month  time.Month
	Day    int
	Hour   int
	Minute int

	Phone string
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo  bookingDomain.Repository
	cache cache.Store
	audit audit.Recorder
	now   func() time.Time
}

func NewCreateBooking(
	repo bookingDomain.Repository,
	store cache.Store,
	recorder audit.Recorder,
) *CreateBooking {
	return &CreateBooking{
		repo:  repo,
		cache: store,
		audit: recorder,
		now:   time.Now,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*dto.BookingDTO, error) {

	// --------------------------------------------------
	// 1. Data/hora válidas (sem normalização silenciosa)
	// --------------------------------------------------
	stored := timezone.StoreWallClock(in.Year, in.Month, in.Day, in.Hour, in.Minute)
	if stored.Year() != in.Year || stored.Month() != in.Month || stored.Day() != in.Day ||
		stored.Hour() != in.Hour || stored.Minute() != in.Minute {
		return nil, httperr.ErrValidation("invalid_date_or_time", "Data ou horário inválido.")
	}

	// --------------------------------------------------
	// 2. Barbearia e serviço
	// --------------------------------------------------
	shop, err := uc.repo.GetBarbershopByID(ctx, in.BarbershopID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, httperr.ErrNotFound("barbershop_not_found", "Barbearia não encontrada.")
		}
		return nil, err
	}

	service, err := uc.repo.GetService(ctx, in.BarbershopID, in.ServiceID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, httperr.ErrNotFound("service_not_found", "Serviço não encontrado.")
		}
		return nil, err
	}

	// --------------------------------------------------
	// 3. Horário dentro do expediente e no futuro
	// --------------------------------------------------
	records, err := uc.repo.ListHours(ctx, in.BarbershopID)
	if err != nil {
		return nil, err
	}
	week, _ := bookingDomain.ResolveWeeklyHours(records)

	date := bookingDomain.Date{Year: in.Year, Month: in.Month, Day: in.Day}
	if !bookingDomain.IsOfferable(week, date, in.Hour, in.Minute) {
		return nil, httperr.ErrValidation("outside_business_hours", "Horário fora do expediente da barbearia.")
	}

	nowLocal := uc.now().In(timezone.Location(shop.Timezone))
	if stored.Format(dateTimeLayout) <= nowLocal.Format(dateTimeLayout) {
		return nil, httperr.ErrValidation("slot_in_past", "Este horário já passou.")
	}

	// --------------------------------------------------
	// 4. Telefone + reserva na mesma transação
	// --------------------------------------------------
	booking := &models.Booking{
		BarbershopID: in.BarbershopID,
		ServiceID:    service.ID,
		UserID:       in.UserID,
		Date:         stored,
	}

	phone := strings.TrimSpace(in.Phone)

	err = uc.repo.WithinTx(ctx, func(tx bookingDomain.Repository) error {
		taken, err := tx.IsSlotTaken(ctx, in.BarbershopID, stored)
		if err != nil {
			return err
		}
		if taken {
			return httperr.ErrConflict("slot_unavailable", "Este horário não está mais disponível.")
		}

		if phone != "" {
			if err := tx.UpdateUserPhone(ctx, in.UserID, phone); err != nil {
				return err
			}
		}

		return tx.CreateBooking(ctx, booking)
	})
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 5. Invalida listagens em cache
	// --------------------------------------------------
	if err := uc.cache.Invalidate(ctx,
		cache.BarbershopBookingsKey(in.BarbershopID),
		cache.UserBookingsKey(in.UserID),
	); err != nil {
		log.Warn().Err(err).Uint("barbershop_id", in.BarbershopID).Msg("failed to invalidate booking cache")
	}

	// --------------------------------------------------
	// 6. Auditoria
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		BarbershopID: in.BarbershopID,
		UserID:       &in.UserID,
		Action:       "booking_created",
		Entity:       "booking",
		EntityID:     &booking.ID,
		Metadata: map[string]any{
			"service_id": service.ID,
			"date":       stored.Format(dateTimeLayout),
		},
	})

	booking.Service = *service
	booking.Barbershop = *shop
	out := toBookingDTO(*booking, shop.Timezone)
	return &out, nil
}
