package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Almacen-api/internal/application/reports"
)

// ReportHandler maneja las peticiones HTTP de reportes (protegido, solo lectura).
type ReportHandler struct {
	uc *reports.UseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *reports.UseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Overview godoc
// @Summary      Agregados del dashboard
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.OverviewResponse
// @Router       /api/reports/overview [get]
func (h *ReportHandler) Overview(c *fiber.Ctx) error {
	out, err := h.uc.Overview(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// LowStock godoc
// @Summary      Productos en o bajo su nivel de reorden
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.LowStockItem
// @Router       /api/reports/low-stock [get]
func (h *ReportHandler) LowStock(c *fiber.Ctx) error {
	out, err := h.uc.LowStock(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// StockPerLocation godoc
// @Summary      Stock y valor por producto y ubicación
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        location_id  query  int  false  "Filtrar por ubicación"
// @Success      200  {array}  dto.StockPerLocationItem
// @Router       /api/reports/stock-per-location [get]
func (h *ReportHandler) StockPerLocation(c *fiber.Ctx) error {
	out, err := h.uc.StockPerLocation(c.Context(), int64(c.QueryInt("location_id")))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// TopSelling godoc
// @Summary      Productos más vendidos
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        days   query  int  false  "Ventana en días"  default(30)
// @Param        limit  query  int  false  "Máximo de filas"  default(10)
// @Success      200  {array}  dto.TopSellingItem
// @Router       /api/reports/top-selling [get]
func (h *ReportHandler) TopSelling(c *fiber.Ctx) error {
	out, err := h.uc.TopSelling(c.Context(), c.QueryInt("days"), c.QueryInt("limit"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
