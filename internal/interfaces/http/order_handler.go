package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/whiteslip-api/internal/application/dto"
	"github.com/jhoicas/whiteslip-api/internal/application/ordering"
)

// OrderHandler ingreso y consulta de pedidos desde los terminales.
type OrderHandler struct {
	uc *ordering.OrderUseCase
	r  *Responder
}

// NewOrderHandler construye el handler de pedidos.
func NewOrderHandler(uc *ordering.OrderUseCase, r *Responder) *OrderHandler {
	return &OrderHandler{uc: uc, r: r}
}

// Bulk godoc
// @Summary      Envío de pedidos en lote
// @Description  Cada pedido se procesa por separado; los order_id existentes se informan como duplicate.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  []dto.OrderRequest  true  "pedidos"
// @Success      200   {object}  dto.BulkOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/v1/orders/bulk [post]
func (h *OrderHandler) Bulk(c *fiber.Ctx) error {
	var in []dto.OrderRequest
	if err := c.BodyParser(&in); err != nil {
		return h.r.Fail(c, fiber.StatusBadRequest, CodeInvalidBody)
	}
	out, err := h.uc.BulkSubmit(c.Context(), GetSubject(c), in)
	if err != nil {
		return h.r.Error(c, err)
	}
	for i := range out.Results {
		res := &out.Results[i]
		res.Message = h.r.Text(c, res.Code, res.Message)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Consultar pedidos
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        order_id      query  string  false  "subcadena de order_id"
// @Param        business_day  query  string  false  "YYYY-MM-DD"
// @Param        start_date    query  string  false  "YYYY-MM-DD"
// @Param        end_date      query  string  false  "YYYY-MM-DD"
// @Param        page          query  int     false  "desde 1"
// @Param        page_size     query  int     false  "máximo 100"
// @Success      200  {object}  dto.OrderPage
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/v1/orders [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	var q dto.OrderQuery
	if err := c.QueryParser(&q); err != nil {
		return h.r.Fail(c, fiber.StatusBadRequest, CodeInvalidParam)
	}
	out, err := h.uc.Query(c.Context(), q)
	if err != nil {
		return h.r.Error(c, err)
	}
	return c.JSON(out)
}

// Reprint godoc
// @Summary      Reimprimir pedido
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "order_id"
// @Success      200  {object}  dto.ReprintResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/orders/{id}/reprint [post]
func (h *OrderHandler) Reprint(c *fiber.Ctx) error {
	out, err := h.uc.Reprint(c.Context(), GetSubject(c), c.Params("id"))
	if err != nil {
		return h.r.Error(c, err)
	}
	out.Message = h.r.Text(c, "REPRINT_OK", "reimpresión registrada")
	return c.JSON(out)
}

// Receipt godoc
// @Summary      Comprobante PDF del pedido
// @Tags         orders
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        id   path  string  true  "order_id"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/orders/{id}/receipt [get]
func (h *OrderHandler) Receipt(c *fiber.Ctx) error {
	id := c.Params("id")
	pdf, err := h.uc.Receipt(c.Context(), id)
	if err != nil {
		return h.r.Error(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="pedido-`+id+`.pdf"`)
	return c.Send(pdf)
}
