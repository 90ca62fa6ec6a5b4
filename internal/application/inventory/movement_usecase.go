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
	"github.com/jhoicas/paintshop-api/pkg/logger"
	"github.com/shopspring/decimal"
)

const maxMovementsLimit = 500

// MovementLimits límites por defecto de los listados de movimientos.
type MovementLimits struct {
	PerMaterial int
	All         int
}

// MovementUseCase es el único camino para modificar Stock.Quantity.
// Cada operación bloquea la fila de stock (SELECT FOR UPDATE), actualiza el saldo y
// registra exactamente un movimiento dentro de la misma transacción.
type MovementUseCase struct {
	txRunner     TxRunner
	materialRepo repository.MaterialRepository
	movementRepo repository.MaterialMovementRepository
	pictureRepo  repository.PictureRepository
	lineRepo     repository.PictureMaterialRepository
	observer     MovementObserver
	log          *logger.Logger
	limits       MovementLimits
}

// NewMovementUseCase construye el caso de uso. observer puede ser nil.
func NewMovementUseCase(
	txRunner TxRunner,
	materialRepo repository.MaterialRepository,
	movementRepo repository.MaterialMovementRepository,
	pictureRepo repository.PictureRepository,
	lineRepo repository.PictureMaterialRepository,
	observer MovementObserver,
	log *logger.Logger,
	limits MovementLimits,
) *MovementUseCase {
	if observer == nil {
		observer = noopObserver{}
	}
	if limits.PerMaterial <= 0 {
		limits.PerMaterial = 50
	}
	if limits.All <= 0 {
		limits.All = 100
	}
	return &MovementUseCase{
		txRunner:     txRunner,
		materialRepo: materialRepo,
		movementRepo: movementRepo,
		pictureRepo:  pictureRepo,
		lineRepo:     lineRepo,
		observer:     observer,
		log:          log.Component("movements"),
		limits:       limits,
	}
}

// MovementInput entrada para entradas (IN) y salidas (OUT) de material.
type MovementInput struct {
	MaterialID    string
	Quantity      decimal.Decimal
	Reason        string
	ReferenceID   string
	ReferenceType string
	Notes         string
	UserID        string
}

// AdjustInput entrada para fijar el saldo a un valor absoluto.
type AdjustInput struct {
	MaterialID  string
	NewQuantity decimal.Decimal
	Reason      string
	Notes       string
	UserID      string
}

// MovementResult saldo resultante y movimiento registrado.
// IsNegative es una advertencia para el operador, no un error.
type MovementResult struct {
	Stock      *entity.Stock
	Movement   *entity.MaterialMovement
	IsNegative bool
}

// AddMaterial suma quantity al saldo (crea la fila en 0 si no existe) y registra un movimiento IN.
func (uc *MovementUseCase) AddMaterial(ctx context.Context, in MovementInput) (*MovementResult, error) {
	if err := validateMovement(in); err != nil {
		return nil, err
	}
	var res *MovementResult
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.MaterialMovementRepository,
		stockRepo repository.StockRepository,
		materialRepo repository.MaterialRepository,
	) error {
		var err error
		res, err = applyMovement(ctx, movRepo, stockRepo, materialRepo, entity.MovementTypeIN, in, time.Now())
		return err
	})
	if err != nil {
		return nil, err
	}
	uc.notify(res)
	return res, nil
}

// RemoveMaterial resta quantity del saldo aunque quede negativo y registra un movimiento OUT.
// El saldo nunca se recorta a cero: el resultado marca IsNegative.
func (uc *MovementUseCase) RemoveMaterial(ctx context.Context, in MovementInput) (*MovementResult, error) {
	if err := validateMovement(in); err != nil {
		return nil, err
	}
	var res *MovementResult
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.MaterialMovementRepository,
		stockRepo repository.StockRepository,
		materialRepo repository.MaterialRepository,
	) error {
		var err error
		res, err = applyMovement(ctx, movRepo, stockRepo, materialRepo, entity.MovementTypeOUT, in, time.Now())
		return err
	})
	if err != nil {
		return nil, err
	}
	uc.notify(res)
	return res, nil
}

// AdjustStock fija el saldo en NewQuantity y registra un único movimiento ADJUSTMENT
// cuya cantidad es el delta con signo (NewQuantity - saldo anterior), nunca el valor absoluto.
func (uc *MovementUseCase) AdjustStock(ctx context.Context, in AdjustInput) (*MovementResult, error) {
	if strings.TrimSpace(in.MaterialID) == "" {
		return nil, fmt.Errorf("%w: material_id es requerido", domain.ErrValidation)
	}
	if in.NewQuantity.IsNegative() {
		return nil, fmt.Errorf("%w: la cantidad ajustada no puede ser negativa (material %s)", domain.ErrValidation, in.MaterialID)
	}
	if !inventory.FitsScale(in.NewQuantity, inventory.QuantityScale) {
		return nil, fmt.Errorf("%w: la cantidad admite hasta %d decimales (material %s)", domain.ErrValidation, inventory.QuantityScale, in.MaterialID)
	}
	var res *MovementResult
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.MaterialMovementRepository,
		stockRepo repository.StockRepository,
		materialRepo repository.MaterialRepository,
	) error {
		if err := requireMaterial(ctx, materialRepo, in.MaterialID); err != nil {
			return err
		}
		stock, err := stockRepo.GetForUpdate(ctx, in.MaterialID)
		if err != nil {
			return err
		}
		now := time.Now()
		delta := in.NewQuantity.Sub(stock.Quantity)
		stock.Quantity = in.NewQuantity
		stock.LastUpdated = now
		if err := stockRepo.Save(ctx, stock); err != nil {
			return err
		}
		mov := &entity.MaterialMovement{
			ID:            uuid.New().String(),
			MaterialID:    in.MaterialID,
			StockID:       stock.ID,
			Type:          entity.MovementTypeADJUSTMENT,
			Quantity:      delta,
			Reason:        in.Reason,
			ReferenceType: entity.ReferenceManual,
			Notes:         in.Notes,
			CreatedBy:     in.UserID,
			CreatedAt:     now,
		}
		if err := movRepo.Create(ctx, mov); err != nil {
			return err
		}
		res = &MovementResult{Stock: stock, Movement: mov, IsNegative: stock.IsNegative()}
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.notify(res)
	return res, nil
}

// ConsumeForPicture descuenta del almacén todas las líneas BOM del cuadro en una sola transacción
// (movimientos OUT con referencia PICTURE). Lo invoca el ciclo de vida de pedidos/cuadros.
func (uc *MovementUseCase) ConsumeForPicture(ctx context.Context, pictureID, userID string) ([]*MovementResult, error) {
	picture, err := uc.pictureRepo.GetByID(ctx, pictureID)
	if err != nil {
		return nil, err
	}
	if picture == nil {
		return nil, fmt.Errorf("%w: cuadro %s", domain.ErrNotFound, pictureID)
	}
	lines, err := uc.lineRepo.ListByPicture(ctx, pictureID)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: el cuadro %s no tiene lista de materiales", domain.ErrValidation, pictureID)
	}

	results := make([]*MovementResult, 0, len(lines))
	err = uc.txRunner.Run(ctx, func(
		movRepo repository.MaterialMovementRepository,
		stockRepo repository.StockRepository,
		materialRepo repository.MaterialRepository,
	) error {
		results = results[:0]
		now := time.Now()
		for _, line := range lines {
			res, err := applyMovement(ctx, movRepo, stockRepo, materialRepo, entity.MovementTypeOUT, MovementInput{
				MaterialID:    line.MaterialID,
				Quantity:      line.Quantity,
				Reason:        "consumo de producción",
				ReferenceID:   pictureID,
				ReferenceType: entity.ReferencePicture,
				UserID:        userID,
			}, now)
			if err != nil {
				return err
			}
			results = append(results, res)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	for _, res := range results {
		uc.notify(res)
	}
	return results, nil
}

// ListMovements movimientos de un material, del más reciente al más antiguo.
// Material inexistente = ErrNotFound.
func (uc *MovementUseCase) ListMovements(ctx context.Context, materialID string, limit int) ([]*entity.MaterialMovement, error) {
	if err := requireMaterial(ctx, uc.materialRepo, materialID); err != nil {
		return nil, err
	}
	return uc.movementRepo.ListByMaterial(ctx, materialID, clampLimit(limit, uc.limits.PerMaterial))
}

// ListAllMovements movimientos de todos los materiales, del más reciente al más antiguo.
func (uc *MovementUseCase) ListAllMovements(ctx context.Context, limit int) ([]*entity.MaterialMovement, error) {
	return uc.movementRepo.ListAll(ctx, clampLimit(limit, uc.limits.All))
}

// applyMovement aplica un IN u OUT usando los repositorios de la transacción del caller.
func applyMovement(
	ctx context.Context,
	movRepo repository.MaterialMovementRepository,
	stockRepo repository.StockRepository,
	materialRepo repository.MaterialRepository,
	movementType string,
	in MovementInput,
	now time.Time,
) (*MovementResult, error) {
	if err := requireMaterial(ctx, materialRepo, in.MaterialID); err != nil {
		return nil, err
	}
	stock, err := stockRepo.GetForUpdate(ctx, in.MaterialID)
	if err != nil {
		return nil, err
	}
	if movementType == entity.MovementTypeOUT {
		stock.Quantity = stock.Quantity.Sub(in.Quantity)
	} else {
		stock.Quantity = stock.Quantity.Add(in.Quantity)
	}
	stock.LastUpdated = now
	if err := stockRepo.Save(ctx, stock); err != nil {
		return nil, err
	}

	refType := in.ReferenceType
	if refType == "" && in.ReferenceID == "" {
		refType = entity.ReferenceManual
	}
	mov := &entity.MaterialMovement{
		ID:            uuid.New().String(),
		MaterialID:    in.MaterialID,
		StockID:       stock.ID,
		Type:          movementType,
		Quantity:      in.Quantity,
		Reason:        in.Reason,
		ReferenceID:   in.ReferenceID,
		ReferenceType: refType,
		Notes:         in.Notes,
		CreatedBy:     in.UserID,
		CreatedAt:     now,
	}
	if err := movRepo.Create(ctx, mov); err != nil {
		return nil, err
	}
	return &MovementResult{Stock: stock, Movement: mov, IsNegative: stock.IsNegative()}, nil
}

func (uc *MovementUseCase) notify(res *MovementResult) {
	uc.observer.MovementRecorded(res.Movement.Type, res.Movement.Quantity)
	if res.IsNegative {
		uc.observer.NegativeStock(res.Stock.MaterialID)
		uc.log.Warn().
			Str("material_id", res.Stock.MaterialID).
			Str("quantity", res.Stock.Quantity.String()).
			Str("movement_type", res.Movement.Type).
			Msg("stock negativo tras movimiento")
	}
}

func validateMovement(in MovementInput) error {
	if strings.TrimSpace(in.MaterialID) == "" {
		return fmt.Errorf("%w: material_id es requerido", domain.ErrValidation)
	}
	if !in.Quantity.GreaterThan(decimal.Zero) {
		return fmt.Errorf("%w: la cantidad debe ser mayor que 0 (material %s)", domain.ErrValidation, in.MaterialID)
	}
	if !inventory.FitsScale(in.Quantity, inventory.QuantityScale) {
		return fmt.Errorf("%w: la cantidad admite hasta %d decimales (material %s)", domain.ErrValidation, inventory.QuantityScale, in.MaterialID)
	}
	if in.ReferenceType != "" && !entity.ValidReferenceType(in.ReferenceType) {
		return fmt.Errorf("%w: reference_type %q no soportado (material %s)", domain.ErrValidation, in.ReferenceType, in.MaterialID)
	}
	return nil
}

func requireMaterial(ctx context.Context, materialRepo repository.MaterialRepository, materialID string) error {
	material, err := materialRepo.GetByID(ctx, materialID)
	if err != nil {
		return err
	}
	if material == nil {
		return fmt.Errorf("%w: material %s", domain.ErrNotFound, materialID)
	}
	return nil
}

func clampLimit(limit, def int) int {
	if limit <= 0 {
		return def
	}
	if limit > maxMovementsLimit {
		return maxMovementsLimit
	}
	return limit
}
