package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/paintshop-api/internal/application/dto"
	"github.com/jhoicas/paintshop-api/internal/application/inventory"
	"github.com/jhoicas/paintshop-api/internal/domain"
	"github.com/jhoicas/paintshop-api/internal/domain/entity"
	"github.com/jhoicas/paintshop-api/internal/domain/repository"
)

// MaterialUseCase casos de uso CRUD para el catálogo de materiales.
// El saldo no se edita aquí: se maneja vía movimientos.
type MaterialUseCase struct {
	txRunner inventory.TxRunner
	repo     repository.MaterialRepository
	sizeRepo repository.PictureSizeRepository
}

// NewMaterialUseCase construye el caso de uso.
func NewMaterialUseCase(
	txRunner inventory.TxRunner,
	repo repository.MaterialRepository,
	sizeRepo repository.PictureSizeRepository,
) *MaterialUseCase {
	return &MaterialUseCase{txRunner: txRunner, repo: repo, sizeRepo: sizeRepo}
}

// Create crea el material y su fila de stock en 0 (con nivel mínimo opcional) en una transacción.
func (uc *MaterialUseCase) Create(ctx context.Context, in dto.CreateMaterialRequest) (*dto.MaterialResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: el nombre del material es requerido", domain.ErrValidation)
	}
	if strings.TrimSpace(in.Unit) == "" {
		return nil, fmt.Errorf("%w: la unidad es requerida (material %s)", domain.ErrValidation, name)
	}
	category := entity.MaterialCategory(strings.ToUpper(in.Category))
	if !category.Valid() {
		return nil, fmt.Errorf("%w: categoría %q no soportada", domain.ErrValidation, in.Category)
	}
	if in.MinLevel != nil && in.MinLevel.IsNegative() {
		return nil, fmt.Errorf("%w: el nivel mínimo no puede ser negativo (material %s)", domain.ErrValidation, name)
	}
	if err := uc.checkSize(ctx, in.PictureSizeID); err != nil {
		return nil, err
	}

	now := time.Now()
	material := &entity.Material{
		ID:            uuid.New().String(),
		Name:          name,
		Unit:          strings.TrimSpace(in.Unit),
		Category:      category,
		PictureSizeID: in.PictureSizeID,
		Active:        true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	err := uc.txRunner.Run(ctx, func(
		_ repository.MaterialMovementRepository,
		stockRepo repository.StockRepository,
		materialRepo repository.MaterialRepository,
	) error {
		if err := materialRepo.Create(ctx, material); err != nil {
			return err
		}
		stock, err := stockRepo.GetForUpdate(ctx, material.ID)
		if err != nil {
			return err
		}
		if in.MinLevel == nil {
			return nil
		}
		lvl := *in.MinLevel
		stock.MinLevel = &lvl
		stock.LastUpdated = now
		return stockRepo.Save(ctx, stock)
	})
	if err != nil {
		return nil, err
	}
	return toMaterialResponse(material), nil
}

// GetByID obtiene un material por ID.
func (uc *MaterialUseCase) GetByID(ctx context.Context, id string) (*dto.MaterialResponse, error) {
	material, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if material == nil {
		return nil, fmt.Errorf("%w: material %s", domain.ErrNotFound, id)
	}
	return toMaterialResponse(material), nil
}

// List lista materiales, opcionalmente solo activos y/o de una categoría.
func (uc *MaterialUseCase) List(ctx context.Context, onlyActive bool, category string) ([]dto.MaterialResponse, error) {
	filter := repository.MaterialFilter{OnlyActive: onlyActive}
	if category != "" {
		filter.Category = entity.MaterialCategory(strings.ToUpper(category))
		if !filter.Category.Valid() {
			return nil, fmt.Errorf("%w: categoría %q no soportada", domain.ErrValidation, category)
		}
	}
	list, err := uc.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MaterialResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *toMaterialResponse(m))
	}
	return items, nil
}

// Update actualiza nombre, unidad, categoría, formato o estado.
func (uc *MaterialUseCase) Update(ctx context.Context, id string, in dto.UpdateMaterialRequest) (*dto.MaterialResponse, error) {
	material, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if material == nil {
		return nil, fmt.Errorf("%w: material %s", domain.ErrNotFound, id)
	}
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, fmt.Errorf("%w: el nombre del material es requerido", domain.ErrValidation)
		}
		material.Name = strings.TrimSpace(*in.Name)
	}
	if in.Unit != nil {
		material.Unit = strings.TrimSpace(*in.Unit)
	}
	if in.Category != nil {
		category := entity.MaterialCategory(strings.ToUpper(*in.Category))
		if !category.Valid() {
			return nil, fmt.Errorf("%w: categoría %q no soportada", domain.ErrValidation, *in.Category)
		}
		material.Category = category
	}
	if in.PictureSizeID != nil {
		if err := uc.checkSize(ctx, in.PictureSizeID); err != nil {
			return nil, err
		}
		material.PictureSizeID = in.PictureSizeID
	}
	if in.Active != nil {
		material.Active = *in.Active
	}
	material.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, material); err != nil {
		return nil, err
	}
	return toMaterialResponse(material), nil
}

// Deactivate marca el material como inactivo. Los materiales nunca se eliminan
// porque el registro de movimientos los referencia.
func (uc *MaterialUseCase) Deactivate(ctx context.Context, id string) error {
	inactive := false
	_, err := uc.Update(ctx, id, dto.UpdateMaterialRequest{Active: &inactive})
	return err
}

func (uc *MaterialUseCase) checkSize(ctx context.Context, sizeID *string) error {
	if sizeID == nil || *sizeID == "" {
		return nil
	}
	size, err := uc.sizeRepo.GetByID(ctx, *sizeID)
	if err != nil {
		return err
	}
	if size == nil {
		return fmt.Errorf("%w: formato de cuadro %s", domain.ErrNotFound, *sizeID)
	}
	return nil
}

func toMaterialResponse(m *entity.Material) *dto.MaterialResponse {
	if m == nil {
		return nil
	}
	return &dto.MaterialResponse{
		ID:            m.ID,
		Name:          m.Name,
		Unit:          m.Unit,
		Category:      string(m.Category),
		PictureSizeID: m.PictureSizeID,
		Active:        m.Active,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}
