package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/whiteslip-api/internal/application/dto"
	"github.com/jhoicas/whiteslip-api/internal/domain"
	"github.com/jhoicas/whiteslip-api/pkg/i18n"
)

// Códigos de error propios de la capa HTTP.
const (
	CodeInvalidBody  = "INVALID_BODY"
	CodeInvalidParam = "INVALID_PARAM"
	CodeMissingToken = "MISSING_TOKEN"
	CodeInvalidToken = "INVALID_TOKEN"
	CodeMissingRole  = "MISSING_ROLE"
	CodeForbidden    = "FORBIDDEN"
	CodeRateLimited  = "RATE_LIMITED"
	CodeInternal     = "INTERNAL"
)

// Responder traduce errores de dominio a respuestas JSON localizadas según Accept-Language.
type Responder struct {
	tr  *i18n.Translator
	log zerolog.Logger
}

// NewResponder construye el traductor de respuestas.
func NewResponder(tr *i18n.Translator, log zerolog.Logger) *Responder {
	return &Responder{tr: tr, log: log.With().Str("component", "http").Logger()}
}

// Text devuelve el mensaje localizado de code.
func (r *Responder) Text(c *fiber.Ctx, code, fallback string) string {
	return r.tr.Message(c.Get(fiber.HeaderAcceptLanguage), code, fallback)
}

// Fail responde un error propio de la capa HTTP.
func (r *Responder) Fail(c *fiber.Ctx, status int, code string) error {
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: r.Text(c, code, code)})
}

// Error mapea err a 400/401/403/404/409/500. Los 500 se registran y nunca exponen el detalle.
func (r *Responder) Error(c *fiber.Ctx, err error) error {
	status := statusFor(err)
	if status == fiber.StatusInternalServerError {
		r.log.Error().Err(err).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Str("trace_id", traceID(c)).
			Msg("error interno")
		return r.Fail(c, status, CodeInternal)
	}
	code := domain.CodeOf(err)
	if code == "" {
		code = CodeInternal
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: r.Text(c, code, err.Error())})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}
