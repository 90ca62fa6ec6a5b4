package repository

import (
	"context"

	"github.com/jhoicas/paintshop-api/internal/domain/entity"
)

// MaterialPurchaseRepository define el puerto de persistencia para compras de material.
type MaterialPurchaseRepository interface {
	Create(ctx context.Context, purchase *entity.MaterialPurchase) error
	// ListRecentByMaterial devuelve las últimas compras ordenadas por fecha de compra descendente.
	ListRecentByMaterial(ctx context.Context, materialID string, limit int) ([]*entity.MaterialPurchase, error)
}
