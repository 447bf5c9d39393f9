package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/whiteslip-api/internal/application/auth"
	"github.com/jhoicas/whiteslip-api/internal/application/dto"
)

// AuthHandler autenticación de dispositivos y login de personal.
type AuthHandler struct {
	devices *auth.DeviceUseCase
	login   *auth.LoginUseCase
	r       *Responder
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(devices *auth.DeviceUseCase, login *auth.LoginUseCase, r *Responder) *AuthHandler {
	return &AuthHandler{devices: devices, login: login, r: r}
}

// Authenticate godoc
// @Summary      Autenticar dispositivo por código
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.DeviceAuthRequest  true  "device_code"
// @Success      200   {object}  dto.AuthResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      429   {object}  dto.ErrorResponse
// @Router       /api/v1/auth [post]
func (h *AuthHandler) Authenticate(c *fiber.Ctx) error {
	var in dto.DeviceAuthRequest
	if err := c.BodyParser(&in); err != nil {
		return h.r.Fail(c, fiber.StatusBadRequest, CodeInvalidBody)
	}
	out, err := h.devices.Authenticate(c.Context(), in)
	if err != nil {
		return h.r.Error(c, err)
	}
	out.Message = h.r.Text(c, "AUTH_OK", "autenticación exitosa")
	return c.JSON(out)
}

// UserLogin godoc
// @Summary      Login de personal
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UserLoginRequest  true  "account, password"
// @Success      200   {object}  dto.AuthResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/v1/auth/user-login [post]
func (h *AuthHandler) UserLogin(c *fiber.Ctx) error {
	var in dto.UserLoginRequest
	if err := c.BodyParser(&in); err != nil {
		return h.r.Fail(c, fiber.StatusBadRequest, CodeInvalidBody)
	}
	out, err := h.login.Login(c.Context(), in)
	if err != nil {
		return h.r.Error(c, err)
	}
	out.Message = h.r.Text(c, "LOGIN_OK", "login exitoso")
	return c.JSON(out)
}
