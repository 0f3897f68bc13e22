package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	bookingDomain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
)

// --------------------------------------------------
// Data / hora vindas do cliente ("YYYY-MM-DD", "HH:MM")
// --------------------------------------------------

func parseDate(dateStr string) (bookingDomain.Date, error) {
	d, err := bookingDomain.ParseDate(dateStr)
	if err != nil {
		return bookingDomain.Date{}, httperr.ErrValidation("invalid_date", "Data inválida. Use o formato AAAA-MM-DD.")
	}
	return d, nil
}

func parseClock(timeStr string) (hour, minute int, err error) {
	t, perr := time.Parse("15:04", timeStr)
	if perr != nil {
		return 0, 0, httperr.ErrValidation("invalid_time", "Horário inválido. Use o formato HH:MM.")
	}
	return t.Hour(), t.Minute(), nil
}

// --------------------------------------------------
// Parâmetros de rota
// --------------------------------------------------

func uintParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_"+name, "Identificador inválido.")
		return 0, false
	}
	return uint(id), true
}
