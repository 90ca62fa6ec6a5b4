package repository

import (
	"context"

	"github.com/jhoicas/paintshop-api/internal/domain/entity"
)

// StockRepository define el puerto para consultar/actualizar el saldo por material.
// Usado dentro de transacciones para garantizar consistencia con los movimientos.
type StockRepository interface {
	// GetByMaterial devuelve nil, nil si el material nunca tuvo saldo.
	GetByMaterial(ctx context.Context, materialID string) (*entity.Stock, error)
	// GetForUpdate crea la fila en 0 si no existe y la bloquea hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, materialID string) (*entity.Stock, error)
	// Save persiste cantidad, nivel mínimo y last_updated de una fila existente.
	Save(ctx context.Context, stock *entity.Stock) error
	List(ctx context.Context) ([]*entity.Stock, error)
}
