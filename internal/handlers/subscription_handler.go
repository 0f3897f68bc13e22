package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	subDomain "github.com/BruksfildServices01/barber-booking/internal/domain/subscription"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/usecase/subscription"
)

const maxWebhookBody = 1 << 20

type SubscriptionHandler struct {
	checkout *subscription.CreateCheckout
	cancel   *subscription.Cancel
	status   *subscription.GetStatus
	await    *subscription.AwaitActivation
	plans    *subscription.Plans
	webhook  *subscription.HandleWebhook
}

func NewSubscriptionHandler(
	checkout *subscription.CreateCheckout,
	cancel *subscription.Cancel,
	status *subscription.GetStatus,
	await *subscription.AwaitActivation,
	plans *subscription.Plans,
	webhook *subscription.HandleWebhook,
) *SubscriptionHandler {
	return &SubscriptionHandler{
		checkout: checkout,
		cancel:   cancel,
		status:   status,
		await:    await,
		plans:    plans,
		webhook:  webhook,
	}
}

// --------------------------------------------------
// Barbeiro
// --------------------------------------------------

func (h *SubscriptionHandler) Checkout(c *gin.Context) {
	p := middleware.CurrentPrincipal(c)

	link, err := h.checkout.Execute(c.Request.Context(), *p.BarberID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, link)
}

func (h *SubscriptionHandler) Cancel(c *gin.Context) {
	p := middleware.CurrentPrincipal(c)

	sub, err := h.cancel.Execute(c.Request.Context(), *p.BarberID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "A assinatura será cancelada ao fim do período atual.",
		"subscription": sub,
	})
}

func (h *SubscriptionHandler) Status(c *gin.Context) {
	p := middleware.CurrentPrincipal(c)

	view, err := h.status.Execute(c.Request.Context(), *p.BarberID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, view)
}

// Await é chamado pela página de retorno do checkout.
func (h *SubscriptionHandler) Await(c *gin.Context) {
	p := middleware.CurrentPrincipal(c)

	state, err := h.await.Execute(c.Request.Context(), *p.BarberID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"state": state})
}

// --------------------------------------------------
// Público
// --------------------------------------------------

func (h *SubscriptionHandler) ActivePlan(c *gin.Context) {
	plan, err := h.plans.Active(c.Request.Context())
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, plan)
}

// Webhook lê o corpo bruto: a assinatura é verificada sobre os bytes
// exatamente como chegaram.
func (h *SubscriptionHandler) Webhook(c *gin.Context) {
	payload, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxWebhookBody))
	if err != nil {
		httperr.BadRequest(c, "invalid_payload", "Corpo da requisição inválido.")
		return
	}

	signature := c.GetHeader("Stripe-Signature")
	if signature == "" {
		httperr.BadRequest(c, "missing_signature", "Assinatura ausente.")
		return
	}

	err = h.webhook.Execute(c.Request.Context(), payload, signature)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"received": true})
	case errors.Is(err, subDomain.ErrInvalidSignature):
		log.Warn().Err(err).Str("ip", c.ClientIP()).Msg("webhook signature rejected")
		httperr.BadRequest(c, "invalid_signature", "Assinatura inválida.")
	default:
		httperr.Internal(c, "webhook_failed", "Falha ao processar o evento.")
	}
}
