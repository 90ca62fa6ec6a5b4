package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/paintshop-api/internal/application/dto"
	"github.com/jhoicas/paintshop-api/internal/application/inventory"
	"github.com/jhoicas/paintshop-api/internal/application/picture"
	"github.com/jhoicas/paintshop-api/internal/application/usecase"
	"github.com/jhoicas/paintshop-api/pkg/logger"
)

// MaterialHandler maneja el catálogo de materiales y formatos de cuadro.
type MaterialHandler struct {
	uc       *usecase.MaterialUseCase
	pricing  *inventory.PricingUseCase
	pictures *picture.PictureUseCase
	log      *logger.Logger
}

// NewMaterialHandler construye el handler.
func NewMaterialHandler(
	uc *usecase.MaterialUseCase,
	pricing *inventory.PricingUseCase,
	pictures *picture.PictureUseCase,
	log *logger.Logger,
) *MaterialHandler {
	return &MaterialHandler{uc: uc, pricing: pricing, pictures: pictures, log: log}
}

// Create godoc
// @Summary      Crear material
// @Tags         materials
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateMaterialRequest  true  "categoría: CANVAS, PAINT, BRUSH, FRAME, OTHER"
// @Success      201  {object}  dto.MaterialResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/materials [post]
func (h *MaterialHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateMaterialRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar materiales
// @Tags         materials
// @Security     Bearer
// @Produce      json
// @Param        active    query  bool    false  "solo activos"
// @Param        category  query  string  false  "filtrar por categoría"
// @Success      200  {array}  dto.MaterialResponse
// @Router       /api/materials [get]
func (h *MaterialHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.UserContext(), c.QueryBool("active", false), c.Query("category"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(list)
}

func (h *MaterialHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

func (h *MaterialHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateMaterialRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Deactivate desactiva el material; nunca se elimina.
func (h *MaterialHandler) Deactivate(c *fiber.Ctx) error {
	if err := h.uc.Deactivate(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AveragePrice godoc
// @Summary      Precio promedio ponderado
// @Description  Promedio de las últimas compras ponderado por cantidad; 0 si no hay compras.
// @Tags         materials
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "Material ID"
// @Success      200  {object}  dto.AveragePriceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/materials/{id}/average-price [get]
func (h *MaterialHandler) AveragePrice(c *fiber.Ctx) error {
	id := c.Params("id")
	price, err := h.pricing.AverageUnitPrice(c.UserContext(), id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.AveragePriceResponse{MaterialID: id, AverageUnitPrice: price})
}

// CreateSize registra un formato de cuadro.
func (h *MaterialHandler) CreateSize(c *fiber.Ctx) error {
	var in dto.CreatePictureSizeRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	size, err := h.pictures.CreateSize(c.UserContext(), in.Name, in.Width, in.Height)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toSizeResponse(size))
}

func (h *MaterialHandler) ListSizes(c *fiber.Ctx) error {
	list, err := h.pictures.ListSizes(c.UserContext())
	if err != nil {
		return respondError(c, h.log, err)
	}
	out := make([]dto.PictureSizeResponse, 0, len(list))
	for _, s := range list {
		out = append(out, toSizeResponse(s))
	}
	return c.JSON(out)
}
