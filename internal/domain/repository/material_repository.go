package repository

import (
	"context"

	"github.com/jhoicas/paintshop-api/internal/domain/entity"
)

// MaterialFilter filtros para listar materiales.
type MaterialFilter struct {
	OnlyActive bool
	Category   entity.MaterialCategory // vacío = todas
}

// MaterialRepository define el puerto de persistencia para Material (DIP).
type MaterialRepository interface {
	Create(ctx context.Context, material *entity.Material) error
	// GetByID devuelve nil, nil si no existe.
	GetByID(ctx context.Context, id string) (*entity.Material, error)
	Update(ctx context.Context, material *entity.Material) error
	List(ctx context.Context, filter MaterialFilter) ([]*entity.Material, error)
	// FirstActiveByCategory devuelve el material activo más antiguo de la categoría, o nil si no hay.
	FirstActiveByCategory(ctx context.Context, category entity.MaterialCategory) (*entity.Material, error)
}
