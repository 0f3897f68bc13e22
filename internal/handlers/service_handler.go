package handlers

import (
	"github.com/gin-gonic/gin"

	catalogDomain "github.com/BruksfildServices01/barber-booking/internal/domain/catalog"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/usecase/catalog"
)

type ServiceHandler struct {
	services *catalog.Services
}

func NewServiceHandler(uc *catalog.Services) *ServiceHandler {
	return &ServiceHandler{services: uc}
}

// --------- Requests ---------

// Price aceita "35.50" ou "35,50".
type ServiceRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Price       string `json:"price" binding:"required"`
	ImageURL    string `json:"image_url"`
}

func (r ServiceRequest) toInput() (catalog.ServiceInput, error) {
	price, err := catalogDomain.ParsePrice(r.Price)
	if err != nil {
		return catalog.ServiceInput{}, err
	}
	return catalog.ServiceInput{
		Name:        r.Name,
		Description: r.Description,
		Price:       price,
		ImageURL:    r.ImageURL,
	}, nil
}

// --------- Handlers ---------

func (h *ServiceHandler) List(c *gin.Context) {
	p := middleware.CurrentPrincipal(c)

	services, err := h.services.List(c.Request.Context(), *p.BarbershopID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, services)
}

func (h *ServiceHandler) Create(c *gin.Context) {
	p := middleware.CurrentPrincipal(c)

	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Nome e preço são obrigatórios.")
		return
	}

	in, err := req.toInput()
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	service, err := h.services.Create(c.Request.Context(), *p.BarbershopID, p.UserID, in)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Created(c, service)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	p := middleware.CurrentPrincipal(c)

	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Nome e preço são obrigatórios.")
		return
	}

	in, err := req.toInput()
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	service, err := h.services.Update(c.Request.Context(), *p.BarbershopID, p.UserID, id, in)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, service)
}

func (h *ServiceHandler) Delete(c *gin.Context) {
	p := middleware.CurrentPrincipal(c)

	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	if err := h.services.Delete(c.Request.Context(), *p.BarbershopID, p.UserID, id); err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.NoContent(c)
}
