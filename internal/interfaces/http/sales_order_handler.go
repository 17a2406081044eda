package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/orders"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// SalesOrderHandler maneja las peticiones HTTP de órdenes de venta (protegido).
type SalesOrderHandler struct {
	uc *orders.SalesUseCase
}

// NewSalesOrderHandler construye el handler.
func NewSalesOrderHandler(uc *orders.SalesUseCase) *SalesOrderHandler {
	return &SalesOrderHandler{uc: uc}
}

// Create godoc
// @Summary      Crear y confirmar orden de venta
// @Description  Crea la orden y descuenta stock en la misma unidad atómica.
//
//	Si alguna línea no tiene stock suficiente, nada queda persistido (409).
//
// @Tags         sales-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSalesOrderRequest  true  "location_id e items"
// @Success      201   {object}  dto.SalesOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sales-orders [post]
func (h *SalesOrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSalesOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	so, err := h.uc.CreateAndConfirm(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toSalesOrderResponse(so))
}

// Cancel godoc
// @Summary      Cancelar orden de venta confirmada
// @Description  Solo CONFIRMED puede cancelarse; el stock descontado se
//
//	restituye con ajustes positivos en la misma unidad atómica.
//
// @Tags         sales-orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de la orden"
// @Success      200  {object}  dto.SalesOrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/sales-orders/{id}/cancel [post]
func (h *SalesOrderHandler) Cancel(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id inválido"})
	}
	so, err := h.uc.Cancel(c.Context(), GetUserID(c), int64(id))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toSalesOrderResponse(so))
}

// GetByID godoc
// @Summary      Obtener orden de venta por ID
// @Tags         sales-orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de la orden"
// @Success      200  {object}  dto.SalesOrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales-orders/{id} [get]
func (h *SalesOrderHandler) GetByID(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id inválido"})
	}
	so, err := h.uc.GetByID(c.Context(), int64(id))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toSalesOrderResponse(so))
}

// List godoc
// @Summary      Listar órdenes de venta
// @Tags         sales-orders
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {array}  dto.SalesOrderResponse
// @Router       /api/sales-orders [get]
func (h *SalesOrderHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	list, err := h.uc.List(c.Context(), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.SalesOrderResponse, 0, len(list))
	for _, so := range list {
		out = append(out, toSalesOrderResponse(so))
	}
	return c.JSON(out)
}

func toSalesOrderResponse(so *entity.SalesOrder) dto.SalesOrderResponse {
	items := make([]dto.SalesOrderItemResponse, 0, len(so.Items))
	for _, it := range so.Items {
		items = append(items, dto.SalesOrderItemResponse{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Discount:  it.Discount,
			LineTotal: it.LineTotal,
		})
	}
	return dto.SalesOrderResponse{
		ID:           so.ID,
		LocationID:   so.LocationID,
		OrderDate:    so.OrderDate.Format("2006-01-02"),
		CustomerName: so.CustomerName,
		Status:       so.Status,
		TotalAmount:  so.TotalAmount,
		CreatedBy:    so.CreatedBy,
		CreatedAt:    so.CreatedAt,
		Items:        items,
	}
}
