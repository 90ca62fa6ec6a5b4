package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/paintshop-api/internal/application/dto"
	"github.com/jhoicas/paintshop-api/internal/application/inventory"
	"github.com/jhoicas/paintshop-api/internal/application/picture"
	"github.com/jhoicas/paintshop-api/pkg/logger"
)

// PictureHandler maneja cuadros, su lista de materiales, costos y consumo en producción.
type PictureHandler struct {
	pictures  *picture.PictureUseCase
	bom       *picture.BOMUseCase
	cost      *picture.CostUseCase
	movements *inventory.MovementUseCase
	log       *logger.Logger
}

// NewPictureHandler construye el handler.
func NewPictureHandler(
	pictures *picture.PictureUseCase,
	bom *picture.BOMUseCase,
	cost *picture.CostUseCase,
	movements *inventory.MovementUseCase,
	log *logger.Logger,
) *PictureHandler {
	return &PictureHandler{pictures: pictures, bom: bom, cost: cost, movements: movements, log: log}
}

// Create godoc
// @Summary      Crear cuadro
// @Description  Sin materiales explícitos y con picture_size_id, la lista de materiales se genera por tamaño.
// @Tags         pictures
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePictureRequest  true  "Datos del cuadro"
// @Success      201  {object}  dto.PictureResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/pictures [post]
func (h *PictureHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePictureRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	lines := make([]picture.LineInput, 0, len(in.Materials))
	for _, l := range in.Materials {
		lines = append(lines, picture.LineInput{MaterialID: l.MaterialID, Quantity: l.Quantity})
	}
	detail, err := h.pictures.CreatePicture(c.UserContext(), picture.CreatePictureInput{
		Title:         in.Title,
		Type:          in.Type,
		PictureSizeID: in.PictureSizeID,
		Price:         in.Price,
		WorkHours:     in.WorkHours,
		Materials:     lines,
	})
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toPictureResponse(detail))
}

func (h *PictureHandler) GetByID(c *fiber.Ctx) error {
	detail, err := h.pictures.GetPicture(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(toPictureResponse(detail))
}

// GenerateBOM godoc
// @Summary      Generar lista de materiales por tamaño
// @Description  Reemplaza las líneas existentes. Categorías sin material activo se omiten.
// @Tags         pictures
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "Picture ID"
// @Param        body  body  dto.GenerateBOMRequest  true  "picture_size_id"
// @Success      200  {array}   dto.BOMLineResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/pictures/{id}/bom [post]
func (h *PictureHandler) GenerateBOM(c *fiber.Ctx) error {
	var in dto.GenerateBOMRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	lines, err := h.bom.GenerateBOM(c.UserContext(), c.Params("id"), in.PictureSizeID)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(toLines(lines))
}

func (h *PictureHandler) ListLines(c *fiber.Ctx) error {
	lines, err := h.bom.ListLines(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(toLines(lines))
}

// AddLine agrega una línea manual a la lista de materiales.
func (h *PictureHandler) AddLine(c *fiber.Ctx) error {
	var in dto.BOMLineRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	line, err := h.bom.AddLine(c.UserContext(), c.Params("id"), in.MaterialID, in.Quantity)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.BOMLineResponse{ID: line.ID, MaterialID: line.MaterialID, Quantity: line.Quantity})
}

// GetCost godoc
// @Summary      Costo del cuadro
// @Description  Σ cantidad × precio promedio + horas × tarifa, redondeado a 2 decimales.
// @Tags         pictures
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "Picture ID"
// @Success      200  {object}  dto.PictureCostResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/pictures/{id}/cost [get]
func (h *PictureHandler) GetCost(c *fiber.Ctx) error {
	b, err := h.cost.PictureCost(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(toCostResponse(b))
}

// PersistCost recalcula el costo y lo guarda en el cuadro.
func (h *PictureHandler) PersistCost(c *fiber.Ctx) error {
	b, err := h.cost.PersistCost(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(toCostResponse(b))
}

// GetProfit godoc
// @Summary      Ganancia y margen
// @Tags         pictures
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "Picture ID"
// @Success      200  {object}  dto.PictureProfitResponse
// @Router       /api/pictures/{id}/profit [get]
func (h *PictureHandler) GetProfit(c *fiber.Ctx) error {
	p, err := h.cost.PictureProfit(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.PictureProfitResponse{
		PictureID: p.PictureID,
		Price:     p.Price,
		CostPrice: p.CostPrice,
		Profit:    p.Profit,
		Margin:    p.Margin,
	})
}

// Consume godoc
// @Summary      Consumir materiales del cuadro
// @Description  Registra un movimiento OUT por cada línea de la lista de materiales en una sola transacción.
// @Tags         pictures
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "Picture ID"
// @Success      201  {object}  dto.ConsumptionResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/pictures/{id}/consume [post]
func (h *PictureHandler) Consume(c *fiber.Ctx) error {
	id := c.Params("id")
	results, err := h.movements.ConsumeForPicture(c.UserContext(), id, GetUserID(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	out := dto.ConsumptionResponse{PictureID: id, Movements: make([]dto.MovementResultResponse, 0, len(results))}
	for _, res := range results {
		m := toMovementResult(res)
		out.Movements = append(out.Movements, m)
		if m.Warning != "" {
			out.Warnings = append(out.Warnings, res.Stock.MaterialID+": "+m.Warning)
		}
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
