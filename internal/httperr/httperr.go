package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Conflict(c *gin.Context, code, message string) {
	Write(c, http.StatusConflict, code, message)
}

func Forbidden(c *gin.Context, code, message string) {
	Write(c, http.StatusForbidden, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

// Respond converte o erro de um caso de uso na resposta uniforme.
// Erros que não são BusinessError viram 500 e são logados.
func Respond(c *gin.Context, err error) {
	var be BusinessError
	if !errors.As(err, &be) {
		log.Error().Err(err).Str("path", c.FullPath()).Msg("unhandled error")
		Internal(c, "internal_error", "Erro interno. Tente novamente.")
		return
	}

	msg := be.Message
	if msg == "" {
		msg = be.Code
	}

	switch be.Kind {
	case KindConflict:
		Conflict(c, be.Code, msg)
	case KindNotFound:
		NotFound(c, be.Code, msg)
	case KindForbidden:
		Forbidden(c, be.Code, msg)
	case KindExternal:
		log.Error().Err(be.Err).Str("code", be.Code).Msg("external dependency failed")
		Write(c, http.StatusBadGateway, be.Code, msg)
	default:
		BadRequest(c, be.Code, msg)
	}
}
