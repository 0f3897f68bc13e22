package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/BruksfildServices01/barber-booking/internal/auth"
	"github.com/BruksfildServices01/barber-booking/internal/domain"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
)

const ContextPrincipal = "principal"

// AuthMiddleware valida o Bearer token e carrega o Principal uma única vez
// por requisição.
func AuthMiddleware(tokens *auth.TokenIssuer, loader auth.PrincipalLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httperr.Unauthorized(c, "missing_authorization_header", "Autenticação necessária.")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			httperr.Unauthorized(c, "invalid_authorization_header", "Cabeçalho de autorização inválido.")
			c.Abort()
			return
		}

		userID, err := tokens.Parse(parts[1])
		if err != nil {
			httperr.Unauthorized(c, "invalid_token", "Sessão inválida ou expirada.")
			c.Abort()
			return
		}

		principal, err := loader.LoadPrincipal(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				httperr.Unauthorized(c, "invalid_token", "Sessão inválida ou expirada.")
				c.Abort()
				return
			}
			log.Error().Err(err).Uint("user_id", userID).Msg("failed to load principal")
			httperr.Internal(c, "internal_error", "Erro interno. Tente novamente.")
			c.Abort()
			return
		}

		c.Set(ContextPrincipal, principal)
		c.Next()
	}
}

// CurrentPrincipal devolve o Principal da requisição. Só é nil fora das
// rotas autenticadas.
func CurrentPrincipal(c *gin.Context) *auth.Principal {
	v, ok := c.Get(ContextPrincipal)
	if !ok {
		return nil
	}
	p, _ := v.(*auth.Principal)
	return p
}

// RequireBarber barra usuários sem vínculo de barbeiro.
func RequireBarber() gin.HandlerFunc {
	return func(c *gin.Context) {
		p := CurrentPrincipal(c)
		if p == nil || !p.IsBarber() {
			httperr.Forbidden(c, "barber_required", "Apenas barbeiros podem acessar este recurso.")
			c.Abort()
			return
		}
		c.Next()
	}
}

// AccessChecker responde se o barbeiro tem assinatura vigente.
type AccessChecker interface {
	HasAccess(ctx context.Context, barberID uint) (bool, error)
}

// RequireActiveSubscription deve vir depois de RequireBarber.
func RequireActiveSubscription(checker AccessChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := CurrentPrincipal(c)
		if p == nil || p.BarberID == nil {
			httperr.Forbidden(c, "barber_required", "Apenas barbeiros podem acessar este recurso.")
			c.Abort()
			return
		}

		ok, err := checker.HasAccess(c.Request.Context(), *p.BarberID)
		if err != nil {
			httperr.Respond(c, err)
			c.Abort()
			return
		}
		if !ok {
			httperr.Write(c, http.StatusPaymentRequired, "subscription_required", "Assinatura ativa necessária para acessar o painel.")
			c.Abort()
			return
		}
		c.Next()
	}
}
