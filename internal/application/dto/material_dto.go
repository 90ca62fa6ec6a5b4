package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateMaterialRequest entrada para crear un material.
type CreateMaterialRequest struct {
	Name          string           `json:"name"`
	Unit          string           `json:"unit"`
	Category      string           `json:"category"`
	PictureSizeID *string          `json:"picture_size_id"`
	MinLevel      *decimal.Decimal `json:"min_level"`
}

// UpdateMaterialRequest entrada para actualizar un material (el saldo se maneja vía movimientos).
type UpdateMaterialRequest struct {
	Name          *string `json:"name"`
	Unit          *string `json:"unit"`
	Category      *string `json:"category"`
	PictureSizeID *string `json:"picture_size_id"`
	Active        *bool   `json:"active"`
}

// MaterialResponse salida de un material.
type MaterialResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Unit          string    `json:"unit"`
	Category      string    `json:"category"`
	PictureSizeID *string   `json:"picture_size_id"`
	Active        bool      `json:"active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
