package inventory

import "github.com/shopspring/decimal"

// IsLowStock compara saldo contra nivel mínimo. Sin nivel mínimo nunca hay alerta.
func IsLowStock(quantity decimal.Decimal, minLevel *decimal.Decimal) bool {
	return minLevel != nil && quantity.LessThanOrEqual(*minLevel)
}

// ReorderSuggestion cantidad sugerida para volver a 1.5 veces el nivel mínimo.
func ReorderSuggestion(quantity, minLevel decimal.Decimal) (ideal, suggested decimal.Decimal) {
	ideal = minLevel.Mul(decimal.RequireFromString("1.5"))
	suggested = ideal.Sub(quantity)
	if suggested.LessThanOrEqual(decimal.Zero) {
		suggested = decimal.Zero
	}
	return ideal, suggested
}

// Escalas de las columnas NUMERIC del almacén.
const (
	QuantityScale int32 = 3
	PriceScale    int32 = 4
)

// FitsScale indica si d no tiene más de places decimales significativos.
func FitsScale(d decimal.Decimal, places int32) bool {
	return d.Equal(d.Truncate(places))
}
