package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/whiteslip-api/internal/application/dto"
	"github.com/jhoicas/whiteslip-api/internal/application/usecase"
)

// UserHandler CRUD de cuentas del personal (solo Admin).
type UserHandler struct {
	uc *usecase.UserUseCase
	r  *Responder
}

// NewUserHandler construye el handler.
func NewUserHandler(uc *usecase.UserUseCase, r *Responder) *UserHandler {
	return &UserHandler{uc: uc, r: r}
}

// List godoc
// @Summary      Listar usuarios
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  dto.UserResponse
// @Router       /api/v1/users [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context())
	if err != nil {
		return h.r.Error(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear usuario
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateUserRequest  true  "account, password, role"
// @Success      201   {object}  dto.UserMutationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/v1/users [post]
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return h.r.Fail(c, fiber.StatusBadRequest, CodeInvalidBody)
	}
	user, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return h.r.Error(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.UserMutationResponse{
		Success: true,
		Message: h.r.Text(c, "USER_CREATED", "usuario creado"),
		User:    user,
	})
}

// Update godoc
// @Summary      Actualizar usuario (parcial)
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                 true  "ID del usuario"
// @Param        body  body  dto.UpdateUserRequest  true  "password y/o role"
// @Success      200   {object}  dto.UserMutationResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/v1/users/{id} [put]
func (h *UserHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return h.r.Fail(c, fiber.StatusBadRequest, CodeInvalidBody)
	}
	user, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return h.r.Error(c, err)
	}
	return c.JSON(dto.UserMutationResponse{
		Success: true,
		Message: h.r.Text(c, "USER_UPDATED", "usuario actualizado"),
		User:    user,
	})
}

// Delete godoc
// @Summary      Eliminar usuario
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID del usuario"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/users/{id} [delete]
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return h.r.Error(c, err)
	}
	return c.JSON(dto.MessageResponse{Success: true, Message: h.r.Text(c, "USER_DELETED", "usuario eliminado")})
}
