package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/usecase/booking"
)

type HoursHandler struct {
	get  *booking.GetHours
	save *booking.SaveHours
}

func NewHoursHandler(get *booking.GetHours, save *booking.SaveHours) *HoursHandler {
	return &HoursHandler{get: get, save: save}
}

func (h *HoursHandler) Get(c *gin.Context) {
	p := middleware.CurrentPrincipal(c)

	view, err := h.get.Execute(c.Request.Context(), *p.BarbershopID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, view)
}

// Update substitui o expediente inteiro; dias omitidos ficam fechados.
func (h *HoursHandler) Update(c *gin.Context) {
	p := middleware.CurrentPrincipal(c)

	var req booking.SaveHoursInput
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos na requisição.")
		return
	}

	view, err := h.save.Execute(c.Request.Context(), *p.BarbershopID, p.UserID, req)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, view)
}
