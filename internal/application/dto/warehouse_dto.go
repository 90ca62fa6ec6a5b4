package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementRequest body para POST /api/warehouse/add y /api/warehouse/remove.
type MovementRequest struct {
	MaterialID    string          `json:"material_id"`
	Quantity      decimal.Decimal `json:"quantity"`
	Reason        string          `json:"reason"`
	ReferenceID   string          `json:"reference_id,omitempty"`
	ReferenceType string          `json:"reference_type,omitempty"` // ORDER, PICTURE, PURCHASE, MANUAL
	Notes         string          `json:"notes,omitempty"`
}

// AdjustRequest body para POST /api/warehouse/adjust.
type AdjustRequest struct {
	MaterialID  string           `json:"material_id"`
	NewQuantity *decimal.Decimal `json:"new_quantity"` // requerido; 0 es válido
	Reason      string           `json:"reason"`
	Notes       string           `json:"notes,omitempty"`
}

// MinLevelRequest body para PUT /api/warehouse/stock/:materialId/min-level.
type MinLevelRequest struct {
	MinLevel *decimal.Decimal `json:"min_level"` // requerido; 0 es válido
}

// MovementResponse salida de un movimiento.
type MovementResponse struct {
	ID            string          `json:"id"`
	MaterialID    string          `json:"material_id"`
	Type          string          `json:"type"`
	Quantity      decimal.Decimal `json:"quantity"` // ADJUSTMENT: delta con signo
	Reason        string          `json:"reason"`
	ReferenceID   string          `json:"reference_id,omitempty"`
	ReferenceType string          `json:"reference_type,omitempty"`
	Notes         string          `json:"notes,omitempty"`
	CreatedBy     string          `json:"created_by,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// MovementResultResponse resultado de add/remove/adjust.
// Warning se informa cuando el saldo queda negativo (no es un error).
type MovementResultResponse struct {
	Stock      StockResponse    `json:"stock"`
	Movement   MovementResponse `json:"movement"`
	IsNegative bool             `json:"is_negative"`
	Warning    string           `json:"warning,omitempty"`
}

// StockResponse saldo de un material.
type StockResponse struct {
	MaterialID  string           `json:"material_id"`
	Quantity    decimal.Decimal  `json:"quantity"`
	MinLevel    *decimal.Decimal `json:"min_level"`
	IsLow       bool             `json:"is_low"`
	IsNegative  bool             `json:"is_negative"`
	LastUpdated *time.Time       `json:"last_updated,omitempty"` // nil si nunca se inicializó
}

// StockItemResponse línea del listado de stock (material + saldo).
type StockItemResponse struct {
	MaterialID   string           `json:"material_id"`
	MaterialName string           `json:"material_name"`
	Unit         string           `json:"unit"`
	Category     string           `json:"category"`
	Active       bool             `json:"active"`
	Quantity     decimal.Decimal  `json:"quantity"`
	MinLevel     *decimal.Decimal `json:"min_level"`
	IsLow        bool             `json:"is_low"`
	IsNegative   bool             `json:"is_negative"`
	LastUpdated  *time.Time       `json:"last_updated,omitempty"`
}

// StockStatsResponse respuesta de GET /api/warehouse/stats.
type StockStatsResponse struct {
	TotalMaterials      int             `json:"total_materials"`
	ActiveMaterials     int             `json:"active_materials"`
	LowStockCount       int             `json:"low_stock_count"`
	NegativeStockCount  int             `json:"negative_stock_count"`
	TotalMovements      int             `json:"total_movements"`
	MovementsLast30Days int             `json:"movements_last_30_days"`
	StockValue          decimal.Decimal `json:"stock_value"` // Σ max(saldo,0) × precio promedio
}

// ReconcileResponse compara el saldo con la suma de movimientos.
type ReconcileResponse struct {
	MaterialID   string          `json:"material_id"`
	Ledger       decimal.Decimal `json:"ledger"`
	MovementsSum decimal.Decimal `json:"movements_sum"`
	Difference   decimal.Decimal `json:"difference"`
	Consistent   bool            `json:"consistent"`
}

// ReplenishmentSuggestionDTO sugerencia de reposición para un material con stock bajo.
type ReplenishmentSuggestionDTO struct {
	MaterialID         string          `json:"material_id"`
	MaterialName       string          `json:"material_name"`
	Unit               string          `json:"unit"`
	CurrentStock       decimal.Decimal `json:"current_stock"`
	MinLevel           decimal.Decimal `json:"min_level"`
	IdealStock         decimal.Decimal `json:"ideal_stock"`          // MinLevel * 1.5
	SuggestedOrderQty  decimal.Decimal `json:"suggested_order_qty"`  // IdealStock - CurrentStock
	AverageUnitPrice   decimal.Decimal `json:"average_unit_price"`   // promedio ponderado de compras
	EstimatedOrderCost decimal.Decimal `json:"estimated_order_cost"` // SuggestedOrderQty * AverageUnitPrice
	Priority           int             `json:"priority"`             // 1 = más urgente
}

// PurchaseRequest body para POST /api/purchases.
type PurchaseRequest struct {
	MaterialID   string          `json:"material_id"`
	Quantity     decimal.Decimal `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Supplier     string          `json:"supplier"`
	PurchaseDate *time.Time      `json:"purchase_date,omitempty"` // vacío = ahora
	Notes        string          `json:"notes,omitempty"`
}

// PurchaseResponse salida de una compra.
type PurchaseResponse struct {
	ID           string          `json:"id"`
	MaterialID   string          `json:"material_id"`
	Quantity     decimal.Decimal `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	TotalPrice   decimal.Decimal `json:"total_price"`
	Supplier     string          `json:"supplier"`
	PurchaseDate time.Time       `json:"purchase_date"`
	Notes        string          `json:"notes,omitempty"`
}

// AveragePriceResponse respuesta de GET /api/materials/:id/average-price.
type AveragePriceResponse struct {
	MaterialID       string          `json:"material_id"`
	AverageUnitPrice decimal.Decimal `json:"average_unit_price"`
}
