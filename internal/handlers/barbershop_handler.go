package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/usecase/onboarding"
)

type BarbershopHandler struct {
	onboarding *onboarding.Onboarding
}

func NewBarbershopHandler(uc *onboarding.Onboarding) *BarbershopHandler {
	return &BarbershopHandler{onboarding: uc}
}

// --------- Requests ---------

type UpdateBarbershopRequest struct {
	Name        string `json:"name" binding:"required"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
	Timezone    string `json:"timezone"`
}

type SetBarberRequest struct {
	BarbershopID uint `json:"barbershop_id" binding:"required"`
}

// --------- Listagem ---------

func (h *BarbershopHandler) List(c *gin.Context) {
	shops, err := h.onboarding.ListBarbershops(c.Request.Context())
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, shops)
}

// --------- Perfil (barbeiro) ---------

func (h *BarbershopHandler) GetMeBarbershop(c *gin.Context) {
	p := middleware.CurrentPrincipal(c)

	shop, err := h.onboarding.GetBarbershop(c.Request.Context(), *p.BarbershopID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, shop)
}

func (h *BarbershopHandler) UpdateMeBarbershop(c *gin.Context) {
	p := middleware.CurrentPrincipal(c)

	var req UpdateBarbershopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos na requisição.")
		return
	}

	shop, err := h.onboarding.UpdateProfile(c.Request.Context(), *p.BarbershopID, p.UserID, onboarding.BarbershopInput{
		Name:        req.Name,
		Phone:       req.Phone,
		Address:     req.Address,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Timezone:    req.Timezone,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, shop)
}

// --------- Onboarding ---------

func (h *BarbershopHandler) SetAsBarber(c *gin.Context) {
	p := middleware.CurrentPrincipal(c)

	var req SetBarberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Informe a barbearia.")
		return
	}

	barber, err := h.onboarding.SetUserAsBarber(c.Request.Context(), p.UserID, req.BarbershopID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Created(c, barber)
}

func (h *BarbershopHandler) SetAsClient(c *gin.Context) {
	p := middleware.CurrentPrincipal(c)

	if err := h.onboarding.SetUserAsClient(c.Request.Context(), p.UserID); err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
