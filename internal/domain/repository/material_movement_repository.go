package repository

import (
	"context"
	"time"

	"github.com/jhoicas/paintshop-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// MaterialMovementRepository define el puerto de persistencia del registro de movimientos.
// Solo inserción: los movimientos nunca se modifican ni se eliminan.
type MaterialMovementRepository interface {
	Create(ctx context.Context, movement *entity.MaterialMovement) error
	// ListByMaterial y ListAll devuelven del más reciente al más antiguo.
	ListByMaterial(ctx context.Context, materialID string, limit int) ([]*entity.MaterialMovement, error)
	ListAll(ctx context.Context, limit int) ([]*entity.MaterialMovement, error)
	// Count cuenta movimientos; since nil = todos.
	Count(ctx context.Context, since *time.Time) (int, error)
	// SignedSum suma los movimientos del material con su signo (IN +, OUT -, ADJUSTMENT delta).
	SignedSum(ctx context.Context, materialID string) (decimal.Decimal, error)
}
