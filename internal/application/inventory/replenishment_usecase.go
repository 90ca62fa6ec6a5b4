package inventory

import (
	"context"
	"sort"

	"github.com/jhoicas/paintshop-api/internal/application/dto"
	"github.com/jhoicas/paintshop-api/internal/domain/inventory"
)

// ReplenishmentUseCase genera la lista de reposición a partir de los materiales con stock bajo.
type ReplenishmentUseCase struct {
	stock  *StockUseCase
	pricer UnitPricer
}

// NewReplenishmentUseCase construye el caso de uso de reposición.
func NewReplenishmentUseCase(stock *StockUseCase, pricer UnitPricer) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{stock: stock, pricer: pricer}
}

// GenerateReplenishmentList devuelve los materiales bajo nivel mínimo con la cantidad
// sugerida para volver a 1.5 veces el mínimo, valorizada al precio promedio de compra.
func (uc *ReplenishmentUseCase) GenerateReplenishmentList(ctx context.Context) ([]dto.ReplenishmentSuggestionDTO, error) {
	low, err := uc.stock.ListLowStock(ctx)
	if err != nil {
		return nil, err
	}
	suggestions := make([]dto.ReplenishmentSuggestionDTO, 0, len(low))
	for _, item := range low {
		ideal, suggested := inventory.ReorderSuggestion(item.Quantity, *item.MinLevel)
		price, err := uc.pricer.AverageUnitPrice(ctx, item.Material.ID)
		if err != nil {
			return nil, err
		}
		suggestions = append(suggestions, dto.ReplenishmentSuggestionDTO{
			MaterialID:         item.Material.ID,
			MaterialName:       item.Material.Name,
			Unit:               item.Material.Unit,
			CurrentStock:       item.Quantity,
			MinLevel:           *item.MinLevel,
			IdealStock:         ideal,
			SuggestedOrderQty:  suggested,
			AverageUnitPrice:   price.Round(2),
			EstimatedOrderCost: suggested.Mul(price).Round(2),
		})
	}

	// Mayor déficit absoluto primero; empate por nombre.
	sort.SliceStable(suggestions, func(i, j int) bool {
		a, b := suggestions[i], suggestions[j]
		defA := a.MinLevel.Sub(a.CurrentStock)
		defB := b.MinLevel.Sub(b.CurrentStock)
		if !defA.Equal(defB) {
			return defA.GreaterThan(defB)
		}
		return a.MaterialName < b.MaterialName
	})

	// 1 = más urgente
	for i := range suggestions {
		suggestions[i].Priority = i + 1
	}
	return suggestions, nil
}
