package repository

import (
	"context"

	"github.com/jhoicas/paintshop-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// PictureRepository define el puerto de persistencia para Picture.
type PictureRepository interface {
	Create(ctx context.Context, picture *entity.Picture) error
	// GetByID devuelve nil, nil si no existe.
	GetByID(ctx context.Context, id string) (*entity.Picture, error)
	UpdateCostPrice(ctx context.Context, id string, cost decimal.Decimal) error
	UpdateSize(ctx context.Context, id, pictureSizeID string) error
}

// PictureSizeRepository define el puerto de persistencia para formatos de cuadro.
type PictureSizeRepository interface {
	Create(ctx context.Context, size *entity.PictureSize) error
	GetByID(ctx context.Context, id string) (*entity.PictureSize, error)
	List(ctx context.Context) ([]*entity.PictureSize, error)
}

// PictureMaterialRepository define el puerto de persistencia de las líneas BOM.
type PictureMaterialRepository interface {
	Create(ctx context.Context, line *entity.PictureMaterial) error
	ListByPicture(ctx context.Context, pictureID string) ([]*entity.PictureMaterial, error)
	DeleteByPicture(ctx context.Context, pictureID string) error
}
