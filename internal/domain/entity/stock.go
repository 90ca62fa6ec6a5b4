package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Stock representa el saldo actual de un material (1:1 con Material).
// Quantity es un total acumulado de los movimientos y puede ser negativo (estado de alerta, no error).
type Stock struct {
	ID          string
	MaterialID  string
	Quantity    decimal.Decimal
	MinLevel    *decimal.Decimal // umbral de alerta de stock bajo (opcional)
	LastUpdated time.Time
}

// IsNegative indica si el saldo quedó por debajo de cero.
func (s *Stock) IsNegative() bool {
	return s.Quantity.IsNegative()
}
