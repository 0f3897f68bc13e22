package booking

import (
	"context"
	"errors"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/domain"
	bookingDomain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/dto"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

type GetAvailability struct {
	repo bookingDomain.Repository
	now  func() time.Time
}

func NewGetAvailability(repo bookingDomain.Repository) *GetAvailability {
	return &GetAvailability{repo: repo, now: time.Now}
}

// Execute devolve os horários livres do dia: expediente do dia da semana,
// menos os já reservados e, para hoje, os que já passaram.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	barbershopID uint,
	date bookingDomain.Date,
) (*dto.AvailabilityDTO, error) {

	shop, err := uc.repo.GetBarbershopByID(ctx, barbershopID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, httperr.ErrNotFound("barbershop_not_found", "Barbearia não encontrada.")
		}
		return nil, err
	}

	records, err := uc.repo.ListHours(ctx, barbershopID)
	if err != nil {
		return nil, err
	}
	week, _ := bookingDomain.ResolveWeeklyHours(records)

	out := &dto.AvailabilityDTO{
		Date:      date.String(),
		DayOfWeek: int(date.Weekday()),
		Slots:     []string{},
	}

	today := bookingDomain.DateOf(uc.now().In(timezone.Location(shop.Timezone)))
	if date.String() < today.String() {
		return out, nil
	}

	start, end := timezone.StoredDayRange(date.Year, date.Month, date.Day)
	bookings, err := uc.repo.ListBookingsForPeriod(ctx, barbershopID, start, end)
	if err != nil {
		return nil, err
	}

	reserved := make(map[string]struct{}, len(bookings))
	for _, b := range bookings {
		reserved[timezone.WallClockFromStored(b.Date).Clock()] = struct{}{}
	}

	slots := bookingDomain.ComputeAvailableSlots(week, date, reserved)

	if date == today {
		nowSlot := bookingDomain.FormatSlot(uc.now().In(timezone.Location(shop.Timezone)))
		upcoming := make([]string, 0, len(slots))
		for _, s := range slots {
			if s > nowSlot {
				upcoming = append(upcoming, s)
			}
		}
		slots = upcoming
	}

	out.Slots = slots
	return out, nil
}
