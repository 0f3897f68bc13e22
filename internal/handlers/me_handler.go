package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/usecase/onboarding"
)

type MeHandler struct {
	onboarding *onboarding.Onboarding
}

func NewMeHandler(uc *onboarding.Onboarding) *MeHandler {
	return &MeHandler{onboarding: uc}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	p := middleware.CurrentPrincipal(c)

	resp := gin.H{"user": p}

	if p.BarbershopID != nil {
		shop, err := h.onboarding.GetBarbershop(c.Request.Context(), *p.BarbershopID)
		if err != nil {
			httperr.Respond(c, err)
			return
		}
		resp["barbershop"] = shop
	}

	httpresp.OK(c, resp)
}
