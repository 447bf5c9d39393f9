package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/whiteslip-api/internal/application/auth"
	"github.com/jhoicas/whiteslip-api/internal/application/dto"
)

// DeviceHandler administración de dispositivos (solo Admin).
type DeviceHandler struct {
	uc *auth.DeviceUseCase
	r  *Responder
}

// NewDeviceHandler construye el handler de administración de dispositivos.
func NewDeviceHandler(uc *auth.DeviceUseCase, r *Responder) *DeviceHandler {
	return &DeviceHandler{uc: uc, r: r}
}

// GenerateAuthCode godoc
// @Summary      Generar código de emparejamiento
// @Tags         devices
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.GenerateAuthCodeRequest  false  "device_name"
// @Success      201   {object}  dto.GenerateAuthCodeResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/v1/auth/generate-auth-code [post]
func (h *DeviceHandler) GenerateAuthCode(c *fiber.Ctx) error {
	var in dto.GenerateAuthCodeRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return h.r.Fail(c, fiber.StatusBadRequest, CodeInvalidBody)
		}
	}
	out, err := h.uc.GenerateAuthCode(c.Context(), in)
	if err != nil {
		return h.r.Error(c, err)
	}
	out.Message = h.r.Text(c, "AUTH_CODE_OK", "código generado")
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar dispositivos
// @Tags         devices
// @Produce      json
// @Security     BearerAuth
// @Param        includeDeleted  query  bool  false  "incluir eliminados"
// @Success      200  {object}  dto.DeviceListResponse
// @Router       /api/v1/auth/devices [get]
func (h *DeviceHandler) List(c *fiber.Ctx) error {
	includeDeleted := c.QueryBool("includeDeleted", c.QueryBool("include_deleted", false))
	out, err := h.uc.List(c.Context(), includeDeleted)
	if err != nil {
		return h.r.Error(c, err)
	}
	return c.JSON(out)
}

// Disable godoc
// @Summary      Deshabilitar dispositivo
// @Tags         devices
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID del dispositivo"
// @Success      200  {object}  dto.DeviceStatusResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/v1/auth/devices/{id}/disable [put]
func (h *DeviceHandler) Disable(c *fiber.Ctx) error {
	out, err := h.uc.Disable(c.Context(), c.Params("id"))
	return h.status(c, out, err, "DEVICE_DISABLED_OK")
}

// Enable godoc
// @Summary      Habilitar dispositivo
// @Tags         devices
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID del dispositivo"
// @Success      200  {object}  dto.DeviceStatusResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/v1/auth/devices/{id}/enable [put]
func (h *DeviceHandler) Enable(c *fiber.Ctx) error {
	out, err := h.uc.Enable(c.Context(), c.Params("id"))
	return h.status(c, out, err, "DEVICE_ENABLED_OK")
}

// Delete godoc
// @Summary      Eliminar dispositivo (borrado lógico)
// @Tags         devices
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID del dispositivo"
// @Success      200  {object}  dto.DeviceStatusResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/auth/devices/{id} [delete]
func (h *DeviceHandler) Delete(c *fiber.Ctx) error {
	out, err := h.uc.Delete(c.Context(), c.Params("id"))
	return h.status(c, out, err, "DEVICE_DELETED_OK")
}

func (h *DeviceHandler) status(c *fiber.Ctx, out *dto.DeviceStatusResponse, err error, okCode string) error {
	if err != nil {
		return h.r.Error(c, err)
	}
	out.Message = h.r.Text(c, okCode, okCode)
	return c.JSON(out)
}
