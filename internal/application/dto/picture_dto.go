package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePictureSizeRequest entrada para registrar un formato de cuadro (cm).
type CreatePictureSizeRequest struct {
	Name   string          `json:"name"`
	Width  decimal.Decimal `json:"width"`
	Height decimal.Decimal `json:"height"`
}

// PictureSizeResponse salida de un formato.
type PictureSizeResponse struct {
	ID     string          `json:"id"`
	Name   string          `json:"name"`
	Width  decimal.Decimal `json:"width"`
	Height decimal.Decimal `json:"height"`
}

// BOMLineRequest línea explícita de materiales.
type BOMLineRequest struct {
	MaterialID string          `json:"material_id"`
	Quantity   decimal.Decimal `json:"quantity"`
}

// CreatePictureRequest entrada para crear un cuadro.
// Si Materials viene vacío y hay PictureSizeID, la lista de materiales se genera por tamaño.
type CreatePictureRequest struct {
	Title         string           `json:"title"`
	Type          string           `json:"type"` // READY_MADE | CUSTOM_PHOTO
	PictureSizeID *string          `json:"picture_size_id"`
	Price         decimal.Decimal  `json:"price"`
	WorkHours     *decimal.Decimal `json:"work_hours"`
	Materials     []BOMLineRequest `json:"materials"`
}

// GenerateBOMRequest body para POST /api/pictures/:id/bom.
type GenerateBOMRequest struct {
	PictureSizeID string `json:"picture_size_id"`
}

// BOMLineResponse línea de la lista de materiales.
type BOMLineResponse struct {
	ID         string          `json:"id"`
	MaterialID string          `json:"material_id"`
	Quantity   decimal.Decimal `json:"quantity"`
}

// PictureResponse salida de un cuadro.
type PictureResponse struct {
	ID            string            `json:"id"`
	Title         string            `json:"title"`
	Type          string            `json:"type"`
	PictureSizeID *string           `json:"picture_size_id"`
	Price         decimal.Decimal   `json:"price"`
	CostPrice     *decimal.Decimal  `json:"cost_price"`
	WorkHours     *decimal.Decimal  `json:"work_hours"`
	Materials     []BOMLineResponse `json:"materials"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

// CostLineDTO detalle de costo por línea BOM.
type CostLineDTO struct {
	MaterialID       string          `json:"material_id"`
	Quantity         decimal.Decimal `json:"quantity"`
	AverageUnitPrice decimal.Decimal `json:"average_unit_price"`
	Cost             decimal.Decimal `json:"cost"`
}

// PictureCostResponse respuesta de GET /api/pictures/:id/cost.
type PictureCostResponse struct {
	PictureID    string          `json:"picture_id"`
	Lines        []CostLineDTO   `json:"lines"`
	MaterialCost decimal.Decimal `json:"material_cost"`
	LaborCost    decimal.Decimal `json:"labor_cost"`
	Total        decimal.Decimal `json:"total"` // redondeado a 2 decimales
}

// PictureProfitResponse respuesta de GET /api/pictures/:id/profit.
type PictureProfitResponse struct {
	PictureID string          `json:"picture_id"`
	Price     decimal.Decimal `json:"price"`
	CostPrice decimal.Decimal `json:"cost_price"`
	Profit    decimal.Decimal `json:"profit"`
	Margin    decimal.Decimal `json:"margin"` // porcentaje
}

// ConsumptionResponse respuesta de POST /api/pictures/:id/consume.
type ConsumptionResponse struct {
	PictureID string                   `json:"picture_id"`
	Movements []MovementResultResponse `json:"movements"`
	Warnings  []string                 `json:"warnings,omitempty"`
}
