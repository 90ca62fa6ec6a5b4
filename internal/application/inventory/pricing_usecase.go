package inventory

import (
	"context"

	"github.com/jhoicas/paintshop-api/internal/domain/inventory"
	"github.com/jhoicas/paintshop-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

const defaultAverageWindow = 10

// PricingUseCase calcula el precio unitario promedio ponderado de un material
// sobre sus compras más recientes.
type PricingUseCase struct {
	materialRepo repository.MaterialRepository
	purchaseRepo repository.MaterialPurchaseRepository
	window       int
}

// NewPricingUseCase window <= 0 usa las últimas 10 compras.
func NewPricingUseCase(
	materialRepo repository.MaterialRepository,
	purchaseRepo repository.MaterialPurchaseRepository,
	window int,
) *PricingUseCase {
	if window <= 0 {
		window = defaultAverageWindow
	}
	return &PricingUseCase{materialRepo: materialRepo, purchaseRepo: purchaseRepo, window: window}
}

// AverageUnitPrice Σ total / Σ cantidad de las últimas compras; 0 si no hay compras.
// El valor no se redondea: el redondeo ocurre al totalizar costos.
func (uc *PricingUseCase) AverageUnitPrice(ctx context.Context, materialID string) (decimal.Decimal, error) {
	if err := requireMaterial(ctx, uc.materialRepo, materialID); err != nil {
		return decimal.Zero, err
	}
	purchases, err := uc.purchaseRepo.ListRecentByMaterial(ctx, materialID, uc.window)
	if err != nil {
		return decimal.Zero, err
	}
	return inventory.WeightedAverageUnitPrice(purchases), nil
}
