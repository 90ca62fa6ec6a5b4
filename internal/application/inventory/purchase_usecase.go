package inventory

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

// PurchaseUseCase registra compras de material. Cada compra entra al almacén
// como un movimiento IN con referencia PURCHASE en la misma transacción.
type PurchaseUseCase struct {
	txRunner     PurchaseTxRunner
	purchaseRepo repository.MaterialPurchaseRepository
	observer     MovementObserver
}

// NewPurchaseUseCase observer puede ser nil.
func NewPurchaseUseCase(
	txRunner PurchaseTxRunner,
	purchaseRepo repository.MaterialPurchaseRepository,
	observer MovementObserver,
) *PurchaseUseCase {
	if observer == nil {
		observer = noopObserver{}
	}
	return &PurchaseUseCase{txRunner: txRunner, purchaseRepo: purchaseRepo, observer: observer}
}

// PurchaseInput entrada para registrar una compra. PurchaseDate cero = ahora.
type PurchaseInput struct {
	MaterialID   string
	Quantity     decimal.Decimal
	UnitPrice    decimal.Decimal
	Supplier     string
	PurchaseDate time.Time
	Notes        string
	UserID       string
}

// PurchaseResult compra registrada y el movimiento de entrada que generó.
type PurchaseResult struct {
	Purchase *entity.MaterialPurchase
	Movement *MovementResult
}

// RecordPurchase inserta la compra (total = cantidad × precio unitario) y suma la cantidad al saldo.
func (uc *PurchaseUseCase) RecordPurchase(ctx context.Context, in PurchaseInput) (*PurchaseResult, error) {
	if strings.TrimSpace(in.MaterialID) == "" {
		return nil, fmt.Errorf("%w: material_id es requerido", domain.ErrValidation)
	}
	if !in.Quantity.GreaterThan(decimal.Zero) {
		return nil, fmt.Errorf("%w: la cantidad comprada debe ser mayor que 0 (material %s)", domain.ErrValidation, in.MaterialID)
	}
	if !inventory.FitsScale(in.Quantity, inventory.QuantityScale) {
		return nil, fmt.Errorf("%w: la cantidad admite hasta %d decimales (material %s)", domain.ErrValidation, inventory.QuantityScale, in.MaterialID)
	}
	if in.UnitPrice.IsNegative() {
		return nil, fmt.Errorf("%w: el precio unitario no puede ser negativo (material %s)", domain.ErrValidation, in.MaterialID)
	}
	if !inventory.FitsScale(in.UnitPrice, inventory.PriceScale) {
		return nil, fmt.Errorf("%w: el precio unitario admite hasta %d decimales (material %s)", domain.ErrValidation, inventory.PriceScale, in.MaterialID)
	}
	now := time.Now()
	purchaseDate := in.PurchaseDate
	if purchaseDate.IsZero() {
		purchaseDate = now
	}

	var out *PurchaseResult
	err := uc.txRunner.RunPurchase(ctx, func(
		movRepo repository.MaterialMovementRepository,
		stockRepo repository.StockRepository,
		materialRepo repository.MaterialRepository,
		purchaseRepo repository.MaterialPurchaseRepository,
	) error {
		purchase := &entity.MaterialPurchase{
			ID:           uuid.New().String(),
			MaterialID:   in.MaterialID,
			Quantity:     in.Quantity,
			UnitPrice:    in.UnitPrice,
			TotalPrice:   in.Quantity.Mul(in.UnitPrice),
			Supplier:     in.Supplier,
			PurchaseDate: purchaseDate,
			Notes:        in.Notes,
			CreatedAt:    now,
		}
		// applyMovement valida que el material exista antes de tocar compras.
		res, err := applyMovement(ctx, movRepo, stockRepo, materialRepo, entity.MovementTypeIN, MovementInput{
			MaterialID:    in.MaterialID,
			Quantity:      in.Quantity,
			Reason:        "compra a proveedor",
			ReferenceID:   purchase.ID,
			ReferenceType: entity.ReferencePurchase,
			Notes:         in.Supplier,
			UserID:        in.UserID,
		}, now)
		if err != nil {
			return err
		}
		if err := purchaseRepo.Create(ctx, purchase); err != nil {
			return err
		}
		out = &PurchaseResult{Purchase: purchase, Movement: res}
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.observer.MovementRecorded(out.Movement.Movement.Type, out.Movement.Movement.Quantity)
	return out, nil
}

// ListPurchases compras del material, de la más reciente a la más antigua.
func (uc *PurchaseUseCase) ListPurchases(ctx context.Context, materialID string, limit int) ([]*entity.MaterialPurchase, error) {
	if strings.TrimSpace(materialID) == "" {
		return nil, fmt.Errorf("%w: material_id es requerido", domain.ErrValidation)
	}
	return uc.purchaseRepo.ListRecentByMaterial(ctx, materialID, clampLimit(limit, 50))
}
