package inventory

import (
	"context"

	"github.com/jhoicas/paintshop-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza que saldo y movimiento se escriban juntos o no se escriba ninguno.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.MaterialMovementRepository,
		stockRepo repository.StockRepository,
		materialRepo repository.MaterialRepository,
	) error) error
}

// PurchaseTxRunner transacción que además incluye el repositorio de compras.
type PurchaseTxRunner interface {
	RunPurchase(ctx context.Context, fn func(
		movRepo repository.MaterialMovementRepository,
		stockRepo repository.StockRepository,
		materialRepo repository.MaterialRepository,
		purchaseRepo repository.MaterialPurchaseRepository,
	) error) error
}

// MovementObserver recibe notificaciones de movimientos confirmados (métricas).
type MovementObserver interface {
	MovementRecorded(movementType string, quantity decimal.Decimal)
	NegativeStock(materialID string)
}

type noopObserver struct{}

func (noopObserver) MovementRecorded(string, decimal.Decimal) {}
func (noopObserver) NegativeStock(string)                     {}

// UnitPricer devuelve el precio unitario promedio ponderado de un material.
type UnitPricer interface {
	AverageUnitPrice(ctx context.Context, materialID string) (decimal.Decimal, error)
}
