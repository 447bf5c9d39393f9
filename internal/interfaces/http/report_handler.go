package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/whiteslip-api/internal/application/dto"
	"github.com/jhoicas/whiteslip-api/internal/application/ordering"
)

// ReportHandler reportes de ventas (Manager o superior).
type ReportHandler struct {
	uc *ordering.ReportUseCase
	r  *Responder
}

// NewReportHandler construye el handler de reportes.
func NewReportHandler(uc *ordering.ReportUseCase, r *Responder) *ReportHandler {
	return &ReportHandler{uc: uc, r: r}
}

// Report godoc
// @Summary      Reporte de ventas
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        from  query  string  false  "YYYY-MM-DD"
// @Param        to    query  string  false  "YYYY-MM-DD"
// @Success      200  {object}  dto.ReportResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/v1/reports [get]
func (h *ReportHandler) Report(c *fiber.Ctx) error {
	var q dto.ReportQuery
	if err := c.QueryParser(&q); err != nil {
		return h.r.Fail(c, fiber.StatusBadRequest, CodeInvalidParam)
	}
	out, err := h.uc.Report(c.Context(), q)
	if err != nil {
		return h.r.Error(c, err)
	}
	return c.JSON(out)
}

// CSV godoc
// @Summary      Exportar reporte CSV
// @Tags         reports
// @Produce      text/csv
// @Security     BearerAuth
// @Param        from  query  string  false  "YYYY-MM-DD"
// @Param        to    query  string  false  "YYYY-MM-DD"
// @Success      200  {file}  binary
// @Router       /api/v1/reports/csv [get]
func (h *ReportHandler) CSV(c *fiber.Ctx) error {
	var q dto.ReportQuery
	if err := c.QueryParser(&q); err != nil {
		return h.r.Fail(c, fiber.StatusBadRequest, CodeInvalidParam)
	}
	out, err := h.uc.CSV(c.Context(), q)
	if err != nil {
		return h.r.Error(c, err)
	}
	c.Attachment("report.csv")
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	return c.Send(out)
}
