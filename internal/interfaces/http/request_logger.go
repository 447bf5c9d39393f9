package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// HeaderTraceID identificador de la petición, expuesto por CORS.
const HeaderTraceID = "X-Trace-Id"

const localTraceID = "trace_id"

// RequestLogger asigna X-Trace-Id y registra método, ruta, estado, latencia y principal.
func RequestLogger(log zerolog.Logger) fiber.Handler {
	log = log.With().Str("component", "http").Logger()
	return func(c *fiber.Ctx) error {
		start := time.Now()
		id := c.Get(HeaderTraceID)
		if id == "" {
			id = uuid.New().String()
		}
		c.Locals(localTraceID, id)
		c.Set(HeaderTraceID, id)

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		ev := log.Info()
		if status >= fiber.StatusInternalServerError {
			ev = log.Error().Err(err)
		}
		ev.Str("trace_id", id).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("principal", GetSubject(c)).
			Msg("request")
		return err
	}
}

func traceID(c *fiber.Ctx) string {
	s, _ := c.Locals(localTraceID).(string)
	return s
}
