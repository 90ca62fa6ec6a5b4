package entity

import "time"

// MaterialCategory clasifica los materiales del almacén.
type MaterialCategory string

// Categorías de material.
const (
	CategoryCanvas    MaterialCategory = "CANVAS"
	CategoryPaint     MaterialCategory = "PAINT"
	CategoryBrush     MaterialCategory = "BRUSH"
	CategoryFrame     MaterialCategory = "FRAME"
	CategoryNumber    MaterialCategory = "NUMBER"
	CategoryPackaging MaterialCategory = "PACKAGING"
	CategoryOther     MaterialCategory = "OTHER"
)

// Valid indica si la categoría es una de las soportadas.
func (c MaterialCategory) Valid() bool {
	switch c {
	case CategoryCanvas, CategoryPaint, CategoryBrush, CategoryFrame,
		CategoryNumber, CategoryPackaging, CategoryOther:
		return true
	}
	return false
}

// Material representa un insumo de producción (lienzo, pintura, pincel, marco...).
// Una vez referenciado nunca se elimina: se desactiva con Active=false.
type Material struct {
	ID            string
	Name          string
	Unit          string // unidad de medida: "m2", "m", "ml", "set", "pcs"...
	Category      MaterialCategory
	PictureSizeID *string // tamaño asociado (opcional)
	Active        bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
