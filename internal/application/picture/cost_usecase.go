package picture

import (
	"context"
	"fmt"

	"github.com/jhoicas/paintshop-api/internal/domain"
	"github.com/jhoicas/paintshop-api/internal/domain/inventory"
	"github.com/jhoicas/paintshop-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// DefaultHourlyRate tarifa por hora de mano de obra si la configuración no define otra.
var DefaultHourlyRate = decimal.NewFromInt(15)

// CostUseCase calcula costo de producción y ganancia de un cuadro.
type CostUseCase struct {
	pictureRepo repository.PictureRepository
	lineRepo    repository.PictureMaterialRepository
	stockRepo   repository.StockRepository
	pricer      UnitPricer
	hourlyRate  decimal.Decimal
}

// NewCostUseCase hourlyRate <= 0 usa DefaultHourlyRate.
func NewCostUseCase(
	pictureRepo repository.PictureRepository,
	lineRepo repository.PictureMaterialRepository,
	stockRepo repository.StockRepository,
	pricer UnitPricer,
	hourlyRate decimal.Decimal,
) *CostUseCase {
	if !hourlyRate.GreaterThan(decimal.Zero) {
		hourlyRate = DefaultHourlyRate
	}
	return &CostUseCase{
		pictureRepo: pictureRepo,
		lineRepo:    lineRepo,
		stockRepo:   stockRepo,
		pricer:      pricer,
		hourlyRate:  hourlyRate,
	}
}

// CostLine costo de una línea de la lista de materiales.
type CostLine struct {
	MaterialID string
	Quantity   decimal.Decimal
	UnitPrice  decimal.Decimal
	Cost       decimal.Decimal
}

// CostBreakdown costo total del cuadro con su detalle.
type CostBreakdown struct {
	PictureID    string
	Lines        []CostLine
	MaterialCost decimal.Decimal
	LaborCost    decimal.Decimal
	Total        decimal.Decimal
}

// ProfitResult ganancia y margen (%) sobre el precio de venta.
type ProfitResult struct {
	PictureID string
	Price     decimal.Decimal
	CostPrice decimal.Decimal
	Profit    decimal.Decimal
	Margin    decimal.Decimal
}

// PictureCost Σ cantidad × precio promedio + horas × tarifa, redondeado a 2 decimales.
// Una línea cuyo material no tiene fila de stock es un error de integridad.
func (uc *CostUseCase) PictureCost(ctx context.Context, pictureID string) (*CostBreakdown, error) {
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

	out := &CostBreakdown{PictureID: pictureID, Lines: make([]CostLine, 0, len(lines))}
	priced := make([]inventory.CostLine, 0, len(lines))
	materialCost := decimal.Zero
	for _, l := range lines {
		stock, err := uc.stockRepo.GetByMaterial(ctx, l.MaterialID)
		if err != nil {
			return nil, err
		}
		if stock == nil {
			return nil, fmt.Errorf("%w: el material %s del cuadro %s no tiene registro de stock",
				domain.ErrDataIntegrity, l.MaterialID, pictureID)
		}
		price, err := uc.pricer.AverageUnitPrice(ctx, l.MaterialID)
		if err != nil {
			return nil, err
		}
		cost := l.Quantity.Mul(price)
		materialCost = materialCost.Add(cost)
		priced = append(priced, inventory.CostLine{Quantity: l.Quantity, UnitPrice: price})
		out.Lines = append(out.Lines, CostLine{
			MaterialID: l.MaterialID,
			Quantity:   l.Quantity,
			UnitPrice:  price.Round(2),
			Cost:       cost.Round(2),
		})
	}

	out.MaterialCost = materialCost.Round(2)
	out.LaborCost = decimal.Zero
	if picture.WorkHours != nil {
		out.LaborCost = picture.WorkHours.Mul(uc.hourlyRate).Round(2)
	}
	out.Total = inventory.PictureCost(priced, picture.WorkHours, uc.hourlyRate)
	return out, nil
}

// PersistCost calcula el costo y lo guarda como cost_price del cuadro. Es idempotente.
func (uc *CostUseCase) PersistCost(ctx context.Context, pictureID string) (*CostBreakdown, error) {
	breakdown, err := uc.PictureCost(ctx, pictureID)
	if err != nil {
		return nil, err
	}
	if err := uc.pictureRepo.UpdateCostPrice(ctx, pictureID, breakdown.Total); err != nil {
		return nil, err
	}
	return breakdown, nil
}

// PictureProfit ganancia = precio - cost_price (0 si nunca se calculó); margen 0 si el precio es 0.
func (uc *CostUseCase) PictureProfit(ctx context.Context, pictureID string) (*ProfitResult, error) {
	picture, err := uc.pictureRepo.GetByID(ctx, pictureID)
	if err != nil {
		return nil, err
	}
	if picture == nil {
		return nil, fmt.Errorf("%w: cuadro %s", domain.ErrNotFound, pictureID)
	}
	profit, margin := inventory.Profit(picture.Price, picture.CostPrice)
	cost := decimal.Zero
	if picture.CostPrice != nil {
		cost = *picture.CostPrice
	}
	return &ProfitResult{
		PictureID: pictureID,
		Price:     picture.Price,
		CostPrice: cost,
		Profit:    profit,
		Margin:    margin,
	}, nil
}
