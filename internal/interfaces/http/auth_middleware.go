package http

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/whiteslip-api/internal/domain/entity"
	"github.com/jhoicas/whiteslip-api/pkg/jwt"
)

// LocalPrincipal clave en c.Locals de la identidad verificada.
const LocalPrincipal = "principal"

// TokenVerifier lo implementa *jwt.Issuer.
type TokenVerifier interface {
	Verify(token string) (jwt.Principal, error)
}

// DeviceAuthorizer lo implementa *auth.DeviceGate.
type DeviceAuthorizer interface {
	Authorize(ctx context.Context, p jwt.Principal) error
}

// AuthMiddleware valida el Bearer Token y guarda el Principal en c.Locals.
func AuthMiddleware(verifier TokenVerifier, r *Responder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return r.Fail(c, fiber.StatusUnauthorized, CodeMissingToken)
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return r.Fail(c, fiber.StatusUnauthorized, CodeInvalidToken)
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return r.Fail(c, fiber.StatusUnauthorized, CodeMissingToken)
		}
		principal, err := verifier.Verify(tokenString)
		if err != nil {
			return r.Fail(c, fiber.StatusUnauthorized, CodeInvalidToken)
		}
		c.Locals(LocalPrincipal, principal)
		return c.Next()
	}
}

// RequireRole exige un usuario con rol >= min. Usar después de AuthMiddleware.
//   - 401 MISSING_ROLE si el token no trae rol.
//   - 403 FORBIDDEN para tokens de dispositivo o roles insuficientes.
func RequireRole(min entity.Role, r *Responder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, ok := GetPrincipal(c)
		if !ok {
			return r.Fail(c, fiber.StatusUnauthorized, CodeMissingToken)
		}
		if p.Role == "" {
			return r.Fail(c, fiber.StatusUnauthorized, CodeMissingRole)
		}
		if p.IsDevice() || !entity.Role(p.Role).AtLeast(min) {
			return r.Fail(c, fiber.StatusForbidden, CodeForbidden)
		}
		return c.Next()
	}
}

// RequireActiveDevice aplica el DeviceGate: un dispositivo deshabilitado o eliminado
// recibe 401 aunque su token siga vigente.
func RequireActiveDevice(gate DeviceAuthorizer, r *Responder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, ok := GetPrincipal(c)
		if !ok {
			return r.Fail(c, fiber.StatusUnauthorized, CodeMissingToken)
		}
		if err := gate.Authorize(c.Context(), p); err != nil {
			return r.Error(c, err)
		}
		return c.Next()
	}
}

// GetPrincipal devuelve la identidad verificada (después del middleware de auth).
func GetPrincipal(c *fiber.Ctx) (jwt.Principal, bool) {
	p, ok := c.Locals(LocalPrincipal).(jwt.Principal)
	return p, ok
}

// GetRole devuelve el rol del token, o "" si no hay Principal.
func GetRole(c *fiber.Ctx) string {
	p, _ := GetPrincipal(c)
	return p.Role
}

// GetSubject devuelve el id de dispositivo o usuario del token.
func GetSubject(c *fiber.Ctx) string {
	p, _ := GetPrincipal(c)
	return p.ID
}
