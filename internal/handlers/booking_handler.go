package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/usecase/booking"
)

type BookingHandler struct {
	barbershop *booking.ListBarbershopBookings
	user       *booking.ListUserBookings
	customers  *booking.ListCustomers
}

func NewBookingHandler(
	barbershop *booking.ListBarbershopBookings,
	user *booking.ListUserBookings,
	customers *booking.ListCustomers,
) *BookingHandler {
	return &BookingHandler{
		barbershop: barbershop,
		user:       user,
		customers:  customers,
	}
}

// ======================================================
// CLIENTE
// ======================================================

func (h *BookingHandler) ListMine(c *gin.Context) {
	p := middleware.CurrentPrincipal(c)

	out, err := h.user.Execute(c.Request.Context(), p.UserID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, out)
}

// ======================================================
// BARBEARIA
// ======================================================

// ListBarbershop aceita ?date=YYYY-MM-DD (um dia) ou ?scope=all|today|upcoming.
func (h *BookingHandler) ListBarbershop(c *gin.Context) {
	p := middleware.CurrentPrincipal(c)
	ctx := c.Request.Context()

	if dateStr := strings.TrimSpace(c.Query("date")); dateStr != "" {
		date, err := parseDate(dateStr)
		if err != nil {
			httperr.Respond(c, err)
			return
		}

		out, err := h.barbershop.ExecuteForDate(ctx, *p.BarbershopID, date)
		if err != nil {
			httperr.Respond(c, err)
			return
		}
		httpresp.List(c, out)
		return
	}

	scope, err := booking.ParseScope(strings.ToLower(strings.TrimSpace(c.Query("scope"))))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	out, err := h.barbershop.Execute(ctx, *p.BarbershopID, scope)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, out)
}

// ======================================================
// CLIENTES DA BARBEARIA
// ======================================================

func (h *BookingHandler) ListCustomers(c *gin.Context) {
	p := middleware.CurrentPrincipal(c)

	query := strings.TrimSpace(c.Query("query"))

	out, err := h.customers.Execute(c.Request.Context(), *p.BarbershopID, query)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, out)
}
