package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/paintshop-api/internal/application/dto"
	"github.com/jhoicas/paintshop-api/internal/application/inventory"
	"github.com/jhoicas/paintshop-api/pkg/logger"
)

// PurchaseHandler maneja compras de material.
type PurchaseHandler struct {
	uc  *inventory.PurchaseUseCase
	log *logger.Logger
}

// NewPurchaseHandler construye el handler.
func NewPurchaseHandler(uc *inventory.PurchaseUseCase, log *logger.Logger) *PurchaseHandler {
	return &PurchaseHandler{uc: uc, log: log}
}

// Create godoc
// @Summary      Registrar compra
// @Description  Inserta la compra y suma la cantidad al saldo con un movimiento IN (referencia PURCHASE).
// @Tags         purchases
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PurchaseRequest  true  "material_id, quantity > 0, unit_price >= 0"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/purchases [post]
func (h *PurchaseHandler) Create(c *fiber.Ctx) error {
	var in dto.PurchaseRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	var date time.Time
	if in.PurchaseDate != nil {
		date = *in.PurchaseDate
	}
	res, err := h.uc.RecordPurchase(c.UserContext(), inventory.PurchaseInput{
		MaterialID:   in.MaterialID,
		Quantity:     in.Quantity,
		UnitPrice:    in.UnitPrice,
		Supplier:     in.Supplier,
		PurchaseDate: date,
		Notes:        in.Notes,
		UserID:       GetUserID(c),
	})
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"purchase": toPurchaseResponse(res.Purchase),
		"movement": toMovementResult(res.Movement),
	})
}

// List compras de un material (?material_id=), de la más reciente a la más antigua.
func (h *PurchaseHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.ListPurchases(c.UserContext(), c.Query("material_id"), c.QueryInt("limit", 0))
	if err != nil {
		return respondError(c, h.log, err)
	}
	out := make([]dto.PurchaseResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toPurchaseResponse(p))
	}
	return c.JSON(out)
}
