package inventory

import (
	"github.com/jhoicas/paintshop-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// WeightedAverageUnitPrice implementa el costo promedio ponderado sobre una ventana de compras.
// Promedio = Σ(TotalPrice) / Σ(Quantity). Sin compras (o cantidad total 0) devuelve 0.
func WeightedAverageUnitPrice(purchases []*entity.MaterialPurchase) decimal.Decimal {
	totalPrice := decimal.Zero
	totalQty := decimal.Zero
	for _, p := range purchases {
		totalPrice = totalPrice.Add(p.TotalPrice)
		totalQty = totalQty.Add(p.Quantity)
	}
	if totalQty.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return totalPrice.Div(totalQty)
}

// CostLine una línea del BOM ya valorizada.
type CostLine struct {
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
}

// PictureCost = Σ(Cantidad × PrecioPromedio) + HorasTrabajo × TarifaHora, redondeado a 2 decimales.
func PictureCost(lines []CostLine, workHours *decimal.Decimal, hourlyRate decimal.Decimal) decimal.Decimal {
	cost := decimal.Zero
	for _, l := range lines {
		cost = cost.Add(l.Quantity.Mul(l.UnitPrice))
	}
	if workHours != nil {
		cost = cost.Add(workHours.Mul(hourlyRate))
	}
	return cost.Round(2)
}

// Profit devuelve ganancia = precio - costo y margen = ganancia / precio × 100.
// costPrice nil cuenta como 0; con precio 0 el margen es 0.
func Profit(price decimal.Decimal, costPrice *decimal.Decimal) (profit, margin decimal.Decimal) {
	cost := decimal.Zero
	if costPrice != nil {
		cost = *costPrice
	}
	profit = price.Sub(cost)
	if price.IsZero() {
		return profit.Round(2), decimal.Zero
	}
	margin = profit.Div(price).Mul(hundred)
	return profit.Round(2), margin.Round(2)
}
