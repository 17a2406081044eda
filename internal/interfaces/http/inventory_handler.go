package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/ledger"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// InventoryHandler maneja las peticiones HTTP del ledger y la proyección
// (niveles, movimientos, ajustes, reconstrucción). Protegido.
type InventoryHandler struct {
	ledger *ledger.Service
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(ledgerSvc *ledger.Service) *InventoryHandler {
	return &InventoryHandler{ledger: ledgerSvc}
}

// RegisterAdjustment godoc
// @Summary      Registrar ajuste positivo de inventario
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustmentRequest  true  "product_id, location_id, quantity (> 0)"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/adjustments [post]
func (h *InventoryHandler) RegisterAdjustment(c *fiber.Ctx) error {
	var in dto.AdjustmentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	mov, err := h.ledger.RegisterAdjustment(c.Context(), GetUserID(c), in.ProductID, in.LocationID, in.Quantity)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toMovementResponse(mov))
}

// GetLevel godoc
// @Summary      Nivel de stock de un producto en una ubicación
// @Description  Con as_of (RFC 3339) devuelve la cantidad histórica a ese instante.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        product_id   query  int     true   "ID del producto"
// @Param        location_id  query  int     true   "ID de la ubicación"
// @Param        as_of        query  string  false  "Instante histórico (RFC 3339)"
// @Success      200  {object}  dto.InventoryLevelResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/levels [get]
func (h *InventoryHandler) GetLevel(c *fiber.Ctx) error {
	productID := int64(c.QueryInt("product_id"))
	locationID := int64(c.QueryInt("location_id"))
	if productID <= 0 && locationID > 0 {
		return h.listLevelsByLocation(c, locationID)
	}
	if productID <= 0 || locationID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_id y location_id son requeridos"})
	}

	if asOf := c.Query("as_of"); asOf != "" {
		t, err := time.Parse(time.RFC3339, asOf)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "as_of debe ser RFC 3339"})
		}
		qty, err := h.ledger.QuantityAsOf(c.Context(), productID, locationID, t)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(dto.InventoryLevelResponse{
			ProductID:      productID,
			LocationID:     locationID,
			QuantityOnHand: qty,
			LastUpdated:    t,
		})
	}

	level, err := h.ledger.GetLevel(c.Context(), productID, locationID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toLevelResponse(level))
}

func (h *InventoryHandler) listLevelsByLocation(c *fiber.Ctx, locationID int64) error {
	limit, offset := pageParams(c)
	levels, err := h.ledger.ListLevelsByLocation(c.Context(), locationID, limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.InventoryLevelResponse, 0, len(levels))
	for _, l := range levels {
		out = append(out, toLevelResponse(l))
	}
	return c.JSON(out)
}

// RebuildLevel godoc
// @Summary      Reconstruir la proyección de una pareja desde el ledger
// @Description  Recalcula quantity_on_hand sumando todos los movimientos (ruta de recuperación).
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustmentRequest  true  "product_id y location_id (quantity se ignora)"
// @Success      200   {object}  dto.InventoryLevelResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/inventory/levels/rebuild [post]
func (h *InventoryHandler) RebuildLevel(c *fiber.Ctx) error {
	var in dto.AdjustmentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.ProductID <= 0 || in.LocationID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_id y location_id son requeridos"})
	}
	level, err := h.ledger.RebuildLevel(c.Context(), in.ProductID, in.LocationID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toLevelResponse(level))
}

// ListMovements godoc
// @Summary      Historial de movimientos
// @Description  Filtra por product_id o por location_id (uno de los dos), más nuevos primero.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        product_id   query  int  false  "ID del producto"
// @Param        location_id  query  int  false  "ID de la ubicación"
// @Param        limit        query  int  false  "Límite"  default(20)
// @Param        offset       query  int  false  "Offset"  default(0)
// @Success      200  {array}   dto.MovementResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	productID := int64(c.QueryInt("product_id"))
	locationID := int64(c.QueryInt("location_id"))
	limit, offset := pageParams(c)

	var (
		movs []*entity.StockMovement
		err  error
	)
	switch {
	case productID > 0:
		movs, err = h.ledger.ListMovementsByProduct(c.Context(), productID, limit, offset)
	case locationID > 0:
		movs, err = h.ledger.ListMovementsByLocation(c.Context(), locationID, limit, offset)
	default:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_id o location_id es requerido"})
	}
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.MovementResponse, 0, len(movs))
	for _, m := range movs {
		out = append(out, toMovementResponse(m))
	}
	return c.JSON(out)
}

func toLevelResponse(l *entity.InventoryLevel) dto.InventoryLevelResponse {
	return dto.InventoryLevelResponse{
		ProductID:      l.ProductID,
		LocationID:     l.LocationID,
		QuantityOnHand: l.QuantityOnHand,
		LastUpdated:    l.LastUpdated,
	}
}

func toMovementResponse(m *entity.StockMovement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:             m.ID,
		ProductID:      m.ProductID,
		LocationID:     m.LocationID,
		Quantity:       m.Quantity,
		MovementType:   m.MovementType,
		RelatedDocType: m.RelatedDocType,
		RelatedDocID:   m.RelatedDocID,
		TransactionID:  m.TransactionID,
		MovementDate:   m.MovementDate,
		CreatedBy:      m.CreatedBy,
		CreatedAt:      m.CreatedAt,
	}
}
