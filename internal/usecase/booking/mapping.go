package booking

import (
	"github.com/BruksfildServices01/barber-booking/internal/dto"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04"
)

func toBookingDTO(b models.Booking, tz string) dto.BookingDTO {
	wall := timezone.WallClockFromStored(b.Date)

	return dto.BookingDTO{
		ID:             b.ID,
		BarbershopID:   b.BarbershopID,
		BarbershopName: b.Barbershop.Name,
		ServiceID:      b.ServiceID,
		ServiceName:    b.Service.Name,
		ServicePrice:   b.Service.Price,
		UserID:         b.UserID,
		ClientName:     b.User.Name,
		ClientPhone:    b.User.Phone,
		StartsAt:       wall.In(timezone.Location(tz)),
		Date:           wall.Date(),
		Time:           wall.Clock(),
	}
}
