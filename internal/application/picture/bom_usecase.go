package picture

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/paintshop-api/internal/domain"
	"github.com/jhoicas/paintshop-api/internal/domain/entity"
	"github.com/jhoicas/paintshop-api/internal/domain/inventory"
	"github.com/jhoicas/paintshop-api/internal/domain/repository"
	"github.com/jhoicas/paintshop-api/pkg/logger"
	"github.com/shopspring/decimal"
)

// BOMUseCase genera y mantiene la lista de materiales de un cuadro.
type BOMUseCase struct {
	txRunner     TxRunner
	pictureRepo  repository.PictureRepository
	sizeRepo     repository.PictureSizeRepository
	materialRepo repository.MaterialRepository
	lineRepo     repository.PictureMaterialRepository
	rules        inventory.BOMRules
	observer     BOMObserver
	log          *logger.Logger
}

// NewBOMUseCase usa inventory.DefaultBOMRules. observer puede ser nil.
func NewBOMUseCase(
	txRunner TxRunner,
	pictureRepo repository.PictureRepository,
	sizeRepo repository.PictureSizeRepository,
	materialRepo repository.MaterialRepository,
	lineRepo repository.PictureMaterialRepository,
	observer BOMObserver,
	log *logger.Logger,
) *BOMUseCase {
	if observer == nil {
		observer = noopObserver{}
	}
	return &BOMUseCase{
		txRunner:     txRunner,
		pictureRepo:  pictureRepo,
		sizeRepo:     sizeRepo,
		materialRepo: materialRepo,
		lineRepo:     lineRepo,
		rules:        inventory.DefaultBOMRules,
		observer:     observer,
		log:          log.Component("bom"),
	}
}

// GenerateBOM reemplaza la lista de materiales del cuadro por la calculada para el tamaño
// y registra el tamaño en el cuadro. Las categorías sin material activo se omiten con aviso.
func (uc *BOMUseCase) GenerateBOM(ctx context.Context, pictureID, pictureSizeID string) ([]*entity.PictureMaterial, error) {
	picture, err := uc.pictureRepo.GetByID(ctx, pictureID)
	if err != nil {
		return nil, err
	}
	if picture == nil {
		return nil, fmt.Errorf("%w: cuadro %s", domain.ErrNotFound, pictureID)
	}
	size, err := uc.sizeRepo.GetByID(ctx, pictureSizeID)
	if err != nil {
		return nil, err
	}
	if size == nil {
		return nil, fmt.Errorf("%w: formato de cuadro %s", domain.ErrNotFound, pictureSizeID)
	}

	lines, err := uc.linesForSize(ctx, pictureID, size)
	if err != nil {
		return nil, err
	}
	err = uc.txRunner.RunBOM(ctx, func(pictureRepo repository.PictureRepository, lineRepo repository.PictureMaterialRepository) error {
		if err := pictureRepo.UpdateSize(ctx, pictureID, size.ID); err != nil {
			return err
		}
		if err := lineRepo.DeleteByPicture(ctx, pictureID); err != nil {
			return err
		}
		for _, l := range lines {
			if err := lineRepo.Create(ctx, l); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return lines, nil
}

// AddLine agrega una línea manual a la lista de materiales.
func (uc *BOMUseCase) AddLine(ctx context.Context, pictureID, materialID string, quantity decimal.Decimal) (*entity.PictureMaterial, error) {
	if strings.TrimSpace(materialID) == "" {
		return nil, fmt.Errorf("%w: material_id es requerido", domain.ErrValidation)
	}
	if !quantity.GreaterThan(decimal.Zero) {
		return nil, fmt.Errorf("%w: la cantidad debe ser mayor que 0 (material %s)", domain.ErrValidation, materialID)
	}
	if !inventory.FitsScale(quantity, inventory.QuantityScale) {
		return nil, fmt.Errorf("%w: la cantidad admite hasta %d decimales (material %s)", domain.ErrValidation, inventory.QuantityScale, materialID)
	}
	picture, err := uc.pictureRepo.GetByID(ctx, pictureID)
	if err != nil {
		return nil, err
	}
	if picture == nil {
		return nil, fmt.Errorf("%w: cuadro %s", domain.ErrNotFound, pictureID)
	}
	material, err := uc.materialRepo.GetByID(ctx, materialID)
	if err != nil {
		return nil, err
	}
	if material == nil {
		return nil, fmt.Errorf("%w: material %s", domain.ErrNotFound, materialID)
	}
	line := &entity.PictureMaterial{
		ID:         uuid.New().String(),
		PictureID:  pictureID,
		MaterialID: materialID,
		Quantity:   quantity,
		CreatedAt:  time.Now(),
	}
	if err := uc.lineRepo.Create(ctx, line); err != nil {
		return nil, err
	}
	return line, nil
}

// ListLines líneas de materiales del cuadro.
func (uc *BOMUseCase) ListLines(ctx context.Context, pictureID string) ([]*entity.PictureMaterial, error) {
	picture, err := uc.pictureRepo.GetByID(ctx, pictureID)
	if err != nil {
		return nil, err
	}
	if picture == nil {
		return nil, fmt.Errorf("%w: cuadro %s", domain.ErrNotFound, pictureID)
	}
	return uc.lineRepo.ListByPicture(ctx, pictureID)
}

// linesForSize resuelve cada categoría al material activo más antiguo.
func (uc *BOMUseCase) linesForSize(ctx context.Context, pictureID string, size *entity.PictureSize) ([]*entity.PictureMaterial, error) {
	now := time.Now()
	lines := make([]*entity.PictureMaterial, 0, 4)
	for _, req := range uc.rules.Lines(size.Width, size.Height) {
		material, err := uc.materialRepo.FirstActiveByCategory(ctx, req.Category)
		if err != nil {
			return nil, err
		}
		if material == nil {
			uc.observer.MissingCategory(string(req.Category))
			uc.log.Warn().
				Str("picture_id", pictureID).
				Str("picture_size", size.Name).
				Str("category", string(req.Category)).
				Msg("lista de materiales incompleta: no hay material activo en la categoría")
			continue
		}
		lines = append(lines, &entity.PictureMaterial{
			ID:         uuid.New().String(),
			PictureID:  pictureID,
			MaterialID: material.ID,
			Quantity:   req.Quantity,
			CreatedAt:  now,
		})
	}
	return lines, nil
}
