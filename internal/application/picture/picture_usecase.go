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
	"github.com/shopspring/decimal"
)

// PictureUseCase alta y consulta de cuadros y formatos.
type PictureUseCase struct {
	txRunner     TxRunner
	pictureRepo  repository.PictureRepository
	sizeRepo     repository.PictureSizeRepository
	materialRepo repository.MaterialRepository
	lineRepo     repository.PictureMaterialRepository
	bom          *BOMUseCase
}

// NewPictureUseCase construye el caso de uso.
func NewPictureUseCase(
	txRunner TxRunner,
	pictureRepo repository.PictureRepository,
	sizeRepo repository.PictureSizeRepository,
	materialRepo repository.MaterialRepository,
	lineRepo repository.PictureMaterialRepository,
	bom *BOMUseCase,
) *PictureUseCase {
	return &PictureUseCase{
		txRunner:     txRunner,
		pictureRepo:  pictureRepo,
		sizeRepo:     sizeRepo,
		materialRepo: materialRepo,
		lineRepo:     lineRepo,
		bom:          bom,
	}
}

// LineInput línea explícita de materiales.
type LineInput struct {
	MaterialID string
	Quantity   decimal.Decimal
}

// CreatePictureInput entrada para crear un cuadro.
type CreatePictureInput struct {
	Title         string
	Type          string
	PictureSizeID *string
	Price         decimal.Decimal
	WorkHours     *decimal.Decimal
	Materials     []LineInput
}

// PictureDetail cuadro con su lista de materiales.
type PictureDetail struct {
	Picture *entity.Picture
	Lines   []*entity.PictureMaterial
}

// CreatePicture crea el cuadro. Sin líneas explícitas y con formato, la lista de
// materiales se genera por tamaño; las líneas explícitas se insertan tal cual.
func (uc *PictureUseCase) CreatePicture(ctx context.Context, in CreatePictureInput) (*PictureDetail, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, fmt.Errorf("%w: el título es requerido", domain.ErrValidation)
	}
	if in.Type == "" {
		in.Type = entity.PictureTypeReadyMade
	}
	if in.Type != entity.PictureTypeReadyMade && in.Type != entity.PictureTypeCustomPhoto {
		return nil, fmt.Errorf("%w: tipo de cuadro %q no soportado", domain.ErrValidation, in.Type)
	}
	if in.Price.IsNegative() {
		return nil, fmt.Errorf("%w: el precio no puede ser negativo", domain.ErrValidation)
	}
	if in.WorkHours != nil && in.WorkHours.IsNegative() {
		return nil, fmt.Errorf("%w: las horas de trabajo no pueden ser negativas", domain.ErrValidation)
	}

	now := time.Now()
	pic := &entity.Picture{
		ID:        uuid.New().String(),
		Title:     strings.TrimSpace(in.Title),
		Type:      in.Type,
		Price:     in.Price,
		WorkHours: in.WorkHours,
		CreatedAt: now,
		UpdatedAt: now,
	}

	var size *entity.PictureSize
	if in.PictureSizeID != nil && *in.PictureSizeID != "" {
		var err error
		size, err = uc.sizeRepo.GetByID(ctx, *in.PictureSizeID)
		if err != nil {
			return nil, err
		}
		if size == nil {
			return nil, fmt.Errorf("%w: formato de cuadro %s", domain.ErrNotFound, *in.PictureSizeID)
		}
		id := size.ID
		pic.PictureSizeID = &id
	}

	var lines []*entity.PictureMaterial
	switch {
	case len(in.Materials) > 0:
		for _, m := range in.Materials {
			if !m.Quantity.GreaterThan(decimal.Zero) {
				return nil, fmt.Errorf("%w: la cantidad debe ser mayor que 0 (material %s)", domain.ErrValidation, m.MaterialID)
			}
			if !inventory.FitsScale(m.Quantity, inventory.QuantityScale) {
				return nil, fmt.Errorf("%w: la cantidad admite hasta %d decimales (material %s)", domain.ErrValidation, inventory.QuantityScale, m.MaterialID)
			}
			material, err := uc.materialRepo.GetByID(ctx, m.MaterialID)
			if err != nil {
				return nil, err
			}
			if material == nil {
				return nil, fmt.Errorf("%w: material %s", domain.ErrNotFound, m.MaterialID)
			}
			lines = append(lines, &entity.PictureMaterial{
				ID:         uuid.New().String(),
				PictureID:  pic.ID,
				MaterialID: m.MaterialID,
				Quantity:   m.Quantity,
				CreatedAt:  now,
			})
		}
	case size != nil:
		var err error
		lines, err = uc.bom.linesForSize(ctx, pic.ID, size)
		if err != nil {
			return nil, err
		}
	}

	err := uc.txRunner.RunBOM(ctx, func(pictureRepo repository.PictureRepository, lineRepo repository.PictureMaterialRepository) error {
		if err := pictureRepo.Create(ctx, pic); err != nil {
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
	if lines == nil {
		lines = []*entity.PictureMaterial{}
	}
	return &PictureDetail{Picture: pic, Lines: lines}, nil
}

// GetPicture cuadro con su lista de materiales.
func (uc *PictureUseCase) GetPicture(ctx context.Context, id string) (*PictureDetail, error) {
	pic, err := uc.pictureRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if pic == nil {
		return nil, fmt.Errorf("%w: cuadro %s", domain.ErrNotFound, id)
	}
	lines, err := uc.lineRepo.ListByPicture(ctx, id)
	if err != nil {
		return nil, err
	}
	return &PictureDetail{Picture: pic, Lines: lines}, nil
}

// CreateSize registra un formato de cuadro (medidas en cm).
func (uc *PictureUseCase) CreateSize(ctx context.Context, name string, width, height decimal.Decimal) (*entity.PictureSize, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: el nombre del formato es requerido", domain.ErrValidation)
	}
	if !width.GreaterThan(decimal.Zero) || !height.GreaterThan(decimal.Zero) {
		return nil, fmt.Errorf("%w: ancho y alto deben ser mayores que 0 (formato %s)", domain.ErrValidation, name)
	}
	size := &entity.PictureSize{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(name),
		Width:     width,
		Height:    height,
		CreatedAt: time.Now(),
	}
	if err := uc.sizeRepo.Create(ctx, size); err != nil {
		return nil, err
	}
	return size, nil
}

// ListSizes formatos registrados.
func (uc *PictureUseCase) ListSizes(ctx context.Context) ([]*entity.PictureSize, error) {
	return uc.sizeRepo.List(ctx)
}
