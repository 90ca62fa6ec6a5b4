package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MaterialPurchase registra una compra de material; alimenta el costo promedio ponderado.
type MaterialPurchase struct {
	ID           string
	MaterialID   string
	Quantity     decimal.Decimal
	UnitPrice    decimal.Decimal
	TotalPrice   decimal.Decimal
	Supplier     string
	PurchaseDate time.Time
	Notes        string
	CreatedAt    time.Time
}
