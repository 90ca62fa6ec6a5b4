package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de material.
const (
	MovementTypeIN         = "IN"         // entrada
	MovementTypeOUT        = "OUT"        // salida
	MovementTypeADJUSTMENT = "ADJUSTMENT" // ajuste (delta con signo)
)

// Tipos de referencia de un movimiento.
const (
	ReferenceOrder    = "ORDER"
	ReferencePicture  = "PICTURE"
	ReferencePurchase = "PURCHASE"
	ReferenceManual   = "MANUAL"
)

// ValidReferenceType indica si t es un tipo de referencia soportado.
func ValidReferenceType(t string) bool {
	switch t {
	case ReferenceOrder, ReferencePicture, ReferencePurchase, ReferenceManual:
		return true
	}
	return false
}

// MaterialMovement es una entrada inmutable del registro de auditoría del almacén.
// Quantity es positivo en IN/OUT (la dirección la da Type); en ADJUSTMENT es el delta con signo.
type MaterialMovement struct {
	ID            string
	MaterialID    string
	StockID       string
	Type          string
	Quantity      decimal.Decimal
	Reason        string
	ReferenceID   string
	ReferenceType string
	Notes         string
	CreatedBy     string
	CreatedAt     time.Time
}

// Signed devuelve la cantidad con el signo que aplica sobre el saldo.
func (m *MaterialMovement) Signed() decimal.Decimal {
	if m.Type == MovementTypeOUT {
		return m.Quantity.Neg()
	}
	return m.Quantity
}
