package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/paintshop-api/internal/application/dto"
	"github.com/jhoicas/paintshop-api/internal/application/inventory"
	"github.com/jhoicas/paintshop-api/pkg/logger"
)

// WarehouseHandler maneja saldos, movimientos y reposición del almacén (protegido).
type WarehouseHandler struct {
	stock         *inventory.StockUseCase
	movements     *inventory.MovementUseCase
	replenishment *inventory.ReplenishmentUseCase
	log           *logger.Logger
}

// NewWarehouseHandler construye el handler.
func NewWarehouseHandler(
	stock *inventory.StockUseCase,
	movements *inventory.MovementUseCase,
	replenishment *inventory.ReplenishmentUseCase,
	log *logger.Logger,
) *WarehouseHandler {
	return &WarehouseHandler{stock: stock, movements: movements, replenishment: replenishment, log: log}
}

// GetStockList godoc
// @Summary      Saldo de todos los materiales
// @Tags         warehouse
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.StockItemResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/warehouse/stock [get]
func (h *WarehouseHandler) GetStockList(c *fiber.Ctx) error {
	list, err := h.stock.GetStockList(c.UserContext())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(toStockItems(list))
}

// ListLowStock godoc
// @Summary      Materiales activos con saldo <= nivel mínimo
// @Tags         warehouse
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.StockItemResponse
// @Router       /api/warehouse/stock/low [get]
func (h *WarehouseHandler) ListLowStock(c *fiber.Ctx) error {
	list, err := h.stock.ListLowStock(c.UserContext())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(toStockItems(list))
}

// GetStock godoc
// @Summary      Saldo de un material
// @Tags         warehouse
// @Security     Bearer
// @Produce      json
// @Param        materialId  path  string  true  "Material ID"
// @Success      200  {object}  dto.StockResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/warehouse/stock/{materialId} [get]
func (h *WarehouseHandler) GetStock(c *fiber.Ctx) error {
	view, err := h.stock.GetStock(c.UserContext(), c.Params("materialId"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(toStockResponse(*view))
}

// SetMinLevel godoc
// @Summary      Fijar nivel mínimo de alerta
// @Tags         warehouse
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        materialId  path  string               true  "Material ID"
// @Param        body        body  dto.MinLevelRequest  true  "min_level >= 0"
// @Success      200  {object}  dto.StockResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/warehouse/stock/{materialId}/min-level [put]
func (h *WarehouseHandler) SetMinLevel(c *fiber.Ctx) error {
	var in dto.MinLevelRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.MinLevel == nil {
		return missingField(c, "min_level")
	}
	view, err := h.stock.SetMinLevel(c.UserContext(), c.Params("materialId"), *in.MinLevel)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(toStockResponse(*view))
}

// Reconcile compara saldo y registro de movimientos de un material.
func (h *WarehouseHandler) Reconcile(c *fiber.Ctx) error {
	rec, err := h.stock.Reconcile(c.UserContext(), c.Params("materialId"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.ReconcileResponse{
		MaterialID:   rec.MaterialID,
		Ledger:       rec.Ledger,
		MovementsSum: rec.MovementsSum,
		Difference:   rec.Ledger.Sub(rec.MovementsSum),
		Consistent:   rec.Consistent(),
	})
}

// GetStats godoc
// @Summary      Indicadores del almacén
// @Tags         warehouse
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.StockStatsResponse
// @Router       /api/warehouse/stats [get]
func (h *WarehouseHandler) GetStats(c *fiber.Ctx) error {
	stats, err := h.stock.GetStats(c.UserContext())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.StockStatsResponse{
		TotalMaterials:      stats.TotalMaterials,
		ActiveMaterials:     stats.ActiveMaterials,
		LowStockCount:       stats.LowStockCount,
		NegativeStockCount:  stats.NegativeStockCount,
		TotalMovements:      stats.TotalMovements,
		MovementsLast30Days: stats.MovementsLast30Days,
		StockValue:          stats.StockValue,
	})
}

// GetReplenishmentList godoc
// @Summary      Lista de reposición
// @Description  Materiales bajo nivel mínimo con la cantidad sugerida para volver a 1.5 × mínimo.
// @Tags         warehouse
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api/warehouse/replenishment [get]
func (h *WarehouseHandler) GetReplenishmentList(c *fiber.Ctx) error {
	list, err := h.replenishment.GenerateReplenishmentList(c.UserContext())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(fiber.Map{
		"total":          len(list),
		"replenishments": list,
	})
}

// AddMaterial godoc
// @Summary      Entrada de material (IN)
// @Tags         warehouse
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.MovementRequest  true  "material_id, quantity > 0, reason"
// @Success      201  {object}  dto.MovementResultResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/warehouse/add [post]
func (h *WarehouseHandler) AddMaterial(c *fiber.Ctx) error {
	in, ok := h.parseMovement(c)
	if !ok {
		return badBody(c)
	}
	res, err := h.movements.AddMaterial(c.UserContext(), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toMovementResult(res))
}

// RemoveMaterial godoc
// @Summary      Salida de material (OUT)
// @Description  El saldo puede quedar negativo: la respuesta incluye is_negative y warning.
// @Tags         warehouse
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.MovementRequest  true  "material_id, quantity > 0, reason"
// @Success      201  {object}  dto.MovementResultResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/warehouse/remove [post]
func (h *WarehouseHandler) RemoveMaterial(c *fiber.Ctx) error {
	in, ok := h.parseMovement(c)
	if !ok {
		return badBody(c)
	}
	res, err := h.movements.RemoveMaterial(c.UserContext(), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toMovementResult(res))
}

// AdjustStock godoc
// @Summary      Ajuste de inventario a un valor absoluto
// @Tags         warehouse
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustRequest  true  "material_id, new_quantity >= 0, reason"
// @Success      201  {object}  dto.MovementResultResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/warehouse/adjust [post]
func (h *WarehouseHandler) AdjustStock(c *fiber.Ctx) error {
	var in dto.AdjustRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.NewQuantity == nil {
		return missingField(c, "new_quantity")
	}
	res, err := h.movements.AdjustStock(c.UserContext(), inventory.AdjustInput{
		MaterialID:  in.MaterialID,
		NewQuantity: *in.NewQuantity,
		Reason:      in.Reason,
		Notes:       in.Notes,
		UserID:      GetUserID(c),
	})
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toMovementResult(res))
}

// ListAllMovements godoc
// @Summary      Últimos movimientos de todos los materiales
// @Tags         warehouse
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "máximo 500, por defecto 100"
// @Success      200  {array}  dto.MovementResponse
// @Router       /api/warehouse/movements [get]
func (h *WarehouseHandler) ListAllMovements(c *fiber.Ctx) error {
	list, err := h.movements.ListAllMovements(c.UserContext(), c.QueryInt("limit", 0))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(toMovementList(list))
}

// ListMovements godoc
// @Summary      Movimientos de un material
// @Tags         warehouse
// @Security     Bearer
// @Produce      json
// @Param        materialId  path   string  true   "Material ID"
// @Param        limit       query  int     false  "máximo 500, por defecto 50"
// @Success      200  {array}  dto.MovementResponse
// @Router       /api/warehouse/movements/{materialId} [get]
func (h *WarehouseHandler) ListMovements(c *fiber.Ctx) error {
	list, err := h.movements.ListMovements(c.UserContext(), c.Params("materialId"), c.QueryInt("limit", 0))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(toMovementList(list))
}

func (h *WarehouseHandler) parseMovement(c *fiber.Ctx) (inventory.MovementInput, bool) {
	var in dto.MovementRequest
	if err := c.BodyParser(&in); err != nil {
		return inventory.MovementInput{}, false
	}
	return inventory.MovementInput{
		MaterialID:    in.MaterialID,
		Quantity:      in.Quantity,
		Reason:        in.Reason,
		ReferenceID:   in.ReferenceID,
		ReferenceType: in.ReferenceType,
		Notes:         in.Notes,
		UserID:        GetUserID(c),
	}, true
}
