// Package picture contiene los casos de uso de cuadros: lista de materiales (BOM)
// generada por tamaño, costo de producción y ganancia.
package picture

import (
	"context"

	"github.com/jhoicas/paintshop-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// TxRunner transacción sobre un cuadro y sus líneas de materiales.
type TxRunner interface {
	RunBOM(ctx context.Context, fn func(
		pictureRepo repository.PictureRepository,
		lineRepo repository.PictureMaterialRepository,
	) error) error
}

// UnitPricer precio unitario promedio ponderado de un material.
type UnitPricer interface {
	AverageUnitPrice(ctx context.Context, materialID string) (decimal.Decimal, error)
}

// BOMObserver recibe avisos de listas de materiales incompletas (métricas).
type BOMObserver interface {
	MissingCategory(category string)
}

type noopObserver struct{}

func (noopObserver) MissingCategory(string) {}
