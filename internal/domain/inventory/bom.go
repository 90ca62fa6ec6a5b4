package inventory

import (
	"github.com/jhoicas/paintshop-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

var (
	cm2PerM2 = decimal.NewFromInt(10000)
	cmPerM   = decimal.NewFromInt(100)
	two      = decimal.NewFromInt(2)
)

// BOMRules constantes de consumo para la lista de materiales generada por tamaño.
type BOMRules struct {
	CanvasWaste decimal.Decimal // factor de merma del lienzo (1.1 = 10%)
	PaintYield  decimal.Decimal // unidades de pintura por m²
	BrushSets   decimal.Decimal // juegos de pinceles por cuadro, independiente del tamaño
}

// DefaultBOMRules reglas por defecto del taller.
var DefaultBOMRules = BOMRules{
	CanvasWaste: decimal.RequireFromString("1.1"),
	PaintYield:  decimal.RequireFromString("0.5"),
	BrushSets:   decimal.NewFromInt(3),
}

// BOMLine cantidad requerida de una categoría de material.
type BOMLine struct {
	Category entity.MaterialCategory
	Quantity decimal.Decimal
}

// Lines calcula las cantidades para un cuadro de widthCm × heightCm, en el orden
// CANVAS, FRAME, PAINT, BRUSH:
//
//	área (m²) = ancho × alto / 10000
//	lienzo    = ceil(área × merma)
//	marco (m) = ceil(2 × (ancho + alto) / 100)
//	pintura   = ceil(área × rendimiento)
//	pinceles  = BrushSets
func (r BOMRules) Lines(widthCm, heightCm decimal.Decimal) []BOMLine {
	area := widthCm.Mul(heightCm).Div(cm2PerM2)
	return []BOMLine{
		{Category: entity.CategoryCanvas, Quantity: area.Mul(r.CanvasWaste).Ceil()},
		{Category: entity.CategoryFrame, Quantity: two.Mul(widthCm.Add(heightCm)).Div(cmPerM).Ceil()},
		{Category: entity.CategoryPaint, Quantity: area.Mul(r.PaintYield).Ceil()},
		{Category: entity.CategoryBrush, Quantity: r.BrushSets},
	}
}
