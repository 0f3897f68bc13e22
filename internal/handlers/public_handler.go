package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/usecase/booking"
	"github.com/BruksfildServices01/barber-booking/internal/usecase/catalog"
	"github.com/BruksfildServices01/barber-booking/internal/usecase/onboarding"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

type PublicHandler struct {
	onboarding   *onboarding.Onboarding
	services     *catalog.Services
	availability *booking.GetAvailability
	create       *booking.CreateBooking
}

func NewPublicHandler(
	onboardingUC *onboarding.Onboarding,
	services *catalog.Services,
	availability *booking.GetAvailability,
	create *booking.CreateBooking,
) *PublicHandler {
	return &PublicHandler{
		onboarding:   onboardingUC,
		services:     services,
		availability: availability,
		create:       create,
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type CreateBookingRequest struct {
	ServiceID uint   `json:"service_id" binding:"required"`
	Date      string `json:"date" binding:"required"` // YYYY-MM-DD
	Time      string `json:"time" binding:"required"` // HH:mm
	Phone     string `json:"phone"`
}

////////////////////////////////////////////////////////
// BARBEARIA + SERVIÇOS
////////////////////////////////////////////////////////

func (h *PublicHandler) GetBarbershop(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	shop, err := h.onboarding.GetBarbershop(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	services, err := h.services.List(c.Request.Context(), shop.ID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"barbershop": shop,
		"services":   services,
	})
}

////////////////////////////////////////////////////////
// AVAILABILITY
////////////////////////////////////////////////////////

func (h *PublicHandler) Availability(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_params", "Data obrigatória.")
		return
	}

	date, err := parseDate(dateStr)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	out, err := h.availability.Execute(c.Request.Context(), id, date)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, out)
}

////////////////////////////////////////////////////////
// CREATE BOOKING (cliente autenticado)
////////////////////////////////////////////////////////

func (h *PublicHandler) CreateBooking(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	hour, minute, err := parseClock(req.Time)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	p := middleware.CurrentPrincipal(c)

	out, err := h.create.Execute(c.Request.Context(), booking.CreateBookingInput{
		BarbershopID: id,
		ServiceID:    req.ServiceID,
		UserID:       p.UserID,
		Year:         date.Year,
		Month:        date.Month,
		Day:          date.Day,
		Hour:         hour,
		Minute:       minute,
		Phone:        req.Phone,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, out)
}
