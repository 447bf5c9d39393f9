package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/whiteslip-api/internal/application/dto"
	"github.com/jhoicas/whiteslip-api/internal/application/usecase"
)

// MenuHandler consulta y publicación del menú.
type MenuHandler struct {
	uc *usecase.MenuUseCase
	r  *Responder
}

// NewMenuHandler construye el handler del menú.
func NewMenuHandler(uc *usecase.MenuUseCase, r *Responder) *MenuHandler {
	return &MenuHandler{uc: uc, r: r}
}

// LatestVersion godoc
// @Summary      Versión vigente del menú
// @Tags         menu
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.MenuVersionResponse
// @Router       /api/v1/menu/latest-version [get]
func (h *MenuHandler) LatestVersion(c *fiber.Ctx) error {
	out, err := h.uc.LatestVersion(c.Context())
	if err != nil {
		return h.r.Error(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Menú vigente
// @Description  Si version coincide con la vigente responde 304 sin cuerpo.
// @Tags         menu
// @Produce      json
// @Security     BearerAuth
// @Param        version  query  int  false  "versión que ya tiene el terminal"
// @Success      200  {object}  dto.MenuResponse
// @Success      304
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/menu [get]
func (h *MenuHandler) Get(c *fiber.Ctx) error {
	var ifVersion *int
	if raw := c.Query("version"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return h.r.Fail(c, fiber.StatusBadRequest, CodeInvalidParam)
		}
		ifVersion = &v
	}
	out, notModified, err := h.uc.Get(c.Context(), ifVersion)
	if err != nil {
		return h.r.Error(c, err)
	}
	if notModified {
		return c.Status(fiber.StatusNotModified).Send(nil)
	}
	return c.JSON(out)
}

// Publish godoc
// @Summary      Publicar nueva versión del menú
// @Tags         menu
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.PublishMenuRequest  true  "categorías"
// @Success      201   {object}  dto.PublishMenuResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/v1/menu [post]
func (h *MenuHandler) Publish(c *fiber.Ctx) error {
	var in dto.PublishMenuRequest
	if err := c.BodyParser(&in); err != nil {
		return h.r.Fail(c, fiber.StatusBadRequest, CodeInvalidBody)
	}
	out, err := h.uc.Publish(c.Context(), in)
	if err != nil {
		return h.r.Error(c, err)
	}
	out.Message = h.r.Text(c, "MENU_PUBLISHED", "menú publicado")
	return c.Status(fiber.StatusCreated).JSON(out)
}
