package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// AuditLogReader é implementado por audit.Logger.
type AuditLogReader interface {
	List(ctx context.Context, f audit.Filter) ([]models.AuditLog, int64, error)
}

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	reader AuditLogReader
}

func NewAuditLogsHandler(reader AuditLogReader) *AuditLogsHandler {
	return &AuditLogsHandler{reader: reader}
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	p := middleware.CurrentPrincipal(c)

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	f := audit.Filter{
		BarbershopID: *p.BarbershopID,
		Action:       c.Query("action"),
		Entity:       c.Query("entity"),
		Page:         page,
		Limit:        limit,
	}

	// --------------------------------------------------
	// Período (datas inválidas são ignoradas)
	// --------------------------------------------------

	if from, err := time.Parse("2006-01-02", c.Query("from")); err == nil {
		f.From = &from
	}
	if to, err := time.Parse("2006-01-02", c.Query("to")); err == nil {
		end := to.AddDate(0, 0, 1)
		f.To = &end
	}

	logs, total, err := h.reader.List(c.Request.Context(), f)
	if err != nil {
		log.Error().Err(err).Uint("barbershop_id", f.BarbershopID).Msg("audit list failed")
		httperr.Internal(c, "audit_list_failed", "Erro ao listar logs.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"page":  page,
		"limit": limit,
		"total": total,
		"logs":  logs,
	})
}
