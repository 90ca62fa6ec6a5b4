package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de cuadro.
const (
	PictureTypeReadyMade   = "READY_MADE"
	PictureTypeCustomPhoto = "CUSTOM_PHOTO"
)

// PictureSize formato físico de un cuadro, en centímetros.
type PictureSize struct {
	ID        string
	Name      string // ej: "30x40"
	Width     decimal.Decimal
	Height    decimal.Decimal
	CreatedAt time.Time
}

// Picture cuadro para pintar por números.
// CostPrice lo escribe el calculador de costos; es nil hasta el primer cálculo.
type Picture struct {
	ID            string
	Title         string
	Type          string
	PictureSizeID *string
	Price         decimal.Decimal
	CostPrice     *decimal.Decimal
	WorkHours     *decimal.Decimal
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// PictureMaterial línea de la lista de materiales (BOM) de un cuadro.
type PictureMaterial struct {
	ID         string
	PictureID  string
	MaterialID string
	Quantity   decimal.Decimal
	CreatedAt  time.Time
}
