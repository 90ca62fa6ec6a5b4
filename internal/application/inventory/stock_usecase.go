package inventory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jhoicas/paintshop-api/internal/domain"
	"github.com/jhoicas/paintshop-api/internal/domain/entity"
	"github.com/jhoicas/paintshop-api/internal/domain/inventory"
	"github.com/jhoicas/paintshop-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// StockUseCase consultas sobre el libro de saldos y configuración de niveles mínimos.
// No modifica cantidades: eso solo lo hace MovementUseCase.
type StockUseCase struct {
	txRunner     TxRunner
	materialRepo repository.MaterialRepository
	stockRepo    repository.StockRepository
	movementRepo repository.MaterialMovementRepository
	pricer       UnitPricer
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(
	txRunner TxRunner,
	materialRepo repository.MaterialRepository,
	stockRepo repository.StockRepository,
	movementRepo repository.MaterialMovementRepository,
	pricer UnitPricer,
) *StockUseCase {
	return &StockUseCase{
		txRunner:     txRunner,
		materialRepo: materialRepo,
		stockRepo:    stockRepo,
		movementRepo: movementRepo,
		pricer:       pricer,
	}
}

// StockView saldo de un material. Un material sin fila de stock se reporta
// con cantidad 0, sin nivel mínimo y LastUpdated nil.
type StockView struct {
	Material    *entity.Material
	Quantity    decimal.Decimal
	MinLevel    *decimal.Decimal
	LastUpdated *time.Time
	IsLow       bool
	IsNegative  bool
}

// StockStats agregados del almacén.
type StockStats struct {
	TotalMaterials      int
	ActiveMaterials     int
	LowStockCount       int
	NegativeStockCount  int
	TotalMovements      int
	MovementsLast30Days int
	StockValue          decimal.Decimal
}

// Reconciliation resultado de comparar el saldo con la suma de sus movimientos.
type Reconciliation struct {
	MaterialID   string
	Ledger       decimal.Decimal
	MovementsSum decimal.Decimal
}

// Consistent indica si el saldo coincide con el registro de movimientos.
func (r Reconciliation) Consistent() bool {
	return r.Ledger.Equal(r.MovementsSum)
}

// GetStock saldo y nivel mínimo del material; valores por defecto si nunca tuvo movimientos.
func (uc *StockUseCase) GetStock(ctx context.Context, materialID string) (*StockView, error) {
	material, err := uc.materialRepo.GetByID(ctx, materialID)
	if err != nil {
		return nil, err
	}
	if material == nil {
		return nil, fmt.Errorf("%w: material %s", domain.ErrNotFound, materialID)
	}
	stock, err := uc.stockRepo.GetByMaterial(ctx, materialID)
	if err != nil {
		return nil, err
	}
	view := buildView(material, stock)
	return &view, nil
}

// SetMinLevel fija el nivel mínimo; crea la fila de stock en 0 si no existía.
func (uc *StockUseCase) SetMinLevel(ctx context.Context, materialID string, level decimal.Decimal) (*StockView, error) {
	if level.IsNegative() {
		return nil, fmt.Errorf("%w: el nivel mínimo no puede ser negativo (material %s)", domain.ErrValidation, materialID)
	}
	if !inventory.FitsScale(level, inventory.QuantityScale) {
		return nil, fmt.Errorf("%w: el nivel mínimo admite hasta %d decimales (material %s)", domain.ErrValidation, inventory.QuantityScale, materialID)
	}
	var view StockView
	err := uc.txRunner.Run(ctx, func(
		_ repository.MaterialMovementRepository,
		stockRepo repository.StockRepository,
		materialRepo repository.MaterialRepository,
	) error {
		material, err := materialRepo.GetByID(ctx, materialID)
		if err != nil {
			return err
		}
		if material == nil {
			return fmt.Errorf("%w: material %s", domain.ErrNotFound, materialID)
		}
		stock, err := stockRepo.GetForUpdate(ctx, materialID)
		if err != nil {
			return err
		}
		lvl := level
		stock.MinLevel = &lvl
		stock.LastUpdated = time.Now()
		if err := stockRepo.Save(ctx, stock); err != nil {
			return err
		}
		view = buildView(material, stock)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &view, nil
}

// GetStockList todos los materiales con su saldo, ordenados por nombre.
func (uc *StockUseCase) GetStockList(ctx context.Context) ([]StockView, error) {
	materials, err := uc.materialRepo.List(ctx, repository.MaterialFilter{})
	if err != nil {
		return nil, err
	}
	stocks, err := uc.stockRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return joinStock(materials, stocks), nil
}

// ListLowStock materiales activos con nivel mínimo definido y saldo <= mínimo.
func (uc *StockUseCase) ListLowStock(ctx context.Context) ([]StockView, error) {
	materials, err := uc.materialRepo.List(ctx, repository.MaterialFilter{OnlyActive: true})
	if err != nil {
		return nil, err
	}
	stocks, err := uc.stockRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	low := make([]StockView, 0)
	for _, v := range joinStock(materials, stocks) {
		if v.IsLow {
			low = append(low, v)
		}
	}
	return low, nil
}

// GetStats agregados del almacén. Las lecturas independientes van en paralelo;
// basta consistencia read-committed.
func (uc *StockUseCase) GetStats(ctx context.Context) (*StockStats, error) {
	type materialsResult struct {
		materials []*entity.Material
		err       error
	}
	type stocksResult struct {
		stocks []*entity.Stock
		err    error
	}
	type countResult struct {
		n   int
		err error
	}

	since := time.Now().AddDate(0, 0, -30)

	materialsCh := make(chan materialsResult, 1)
	stocksCh := make(chan stocksResult, 1)
	totalCh := make(chan countResult, 1)
	recentCh := make(chan countResult, 1)

	go func() {
		m, err := uc.materialRepo.List(ctx, repository.MaterialFilter{})
		materialsCh <- materialsResult{m, err}
	}()
	go func() {
		s, err := uc.stockRepo.List(ctx)
		stocksCh <- stocksResult{s, err}
	}()
	go func() {
		n, err := uc.movementRepo.Count(ctx, nil)
		totalCh <- countResult{n, err}
	}()
	go func() {
		n, err := uc.movementRepo.Count(ctx, &since)
		recentCh <- countResult{n, err}
	}()

	materials := <-materialsCh
	stocks := <-stocksCh
	total := <-totalCh
	recent := <-recentCh

	if materials.err != nil {
		return nil, fmt.Errorf("stats: materiales: %w", materials.err)
	}
	if stocks.err != nil {
		return nil, fmt.Errorf("stats: saldos: %w", stocks.err)
	}
	if total.err != nil {
		return nil, fmt.Errorf("stats: movimientos: %w", total.err)
	}
	if recent.err != nil {
		return nil, fmt.Errorf("stats: movimientos recientes: %w", recent.err)
	}

	stats := &StockStats{
		TotalMaterials:      len(materials.materials),
		TotalMovements:      total.n,
		MovementsLast30Days: recent.n,
		StockValue:          decimal.Zero,
	}
	for _, v := range joinStock(materials.materials, stocks.stocks) {
		if v.Material.Active {
			stats.ActiveMaterials++
		}
		if v.IsLow && v.Material.Active {
			stats.LowStockCount++
		}
		if v.IsNegative {
			stats.NegativeStockCount++
		}
		if !v.Quantity.GreaterThan(decimal.Zero) {
			continue
		}
		price, err := uc.pricer.AverageUnitPrice(ctx, v.Material.ID)
		if err != nil {
			return nil, fmt.Errorf("stats: precio promedio %s: %w", v.Material.ID, err)
		}
		stats.StockValue = stats.StockValue.Add(v.Quantity.Mul(price))
	}
	stats.StockValue = stats.StockValue.Round(2)
	return stats, nil
}

// Reconcile compara el saldo del material con la suma con signo de sus movimientos.
func (uc *StockUseCase) Reconcile(ctx context.Context, materialID string) (*Reconciliation, error) {
	if err := requireMaterial(ctx, uc.materialRepo, materialID); err != nil {
		return nil, err
	}
	stock, err := uc.stockRepo.GetByMaterial(ctx, materialID)
	if err != nil {
		return nil, err
	}
	sum, err := uc.movementRepo.SignedSum(ctx, materialID)
	if err != nil {
		return nil, err
	}
	ledger := decimal.Zero
	if stock != nil {
		ledger = stock.Quantity
	}
	return &Reconciliation{MaterialID: materialID, Ledger: ledger, MovementsSum: sum}, nil
}

func buildView(material *entity.Material, stock *entity.Stock) StockView {
	view := StockView{Material: material, Quantity: decimal.Zero}
	if stock != nil {
		view.Quantity = stock.Quantity
		view.MinLevel = stock.MinLevel
		updated := stock.LastUpdated
		view.LastUpdated = &updated
	}
	view.IsLow = inventory.IsLowStock(view.Quantity, view.MinLevel)
	view.IsNegative = view.Quantity.IsNegative()
	return view
}

func joinStock(materials []*entity.Material, stocks []*entity.Stock) []StockView {
	byMaterial := make(map[string]*entity.Stock, len(stocks))
	for _, s := range stocks {
		byMaterial[s.MaterialID] = s
	}
	views := make([]StockView, 0, len(materials))
	for _, m := range materials {
		views = append(views, buildView(m, byMaterial[m.ID]))
	}
	sort.SliceStable(views, func(i, j int) bool {
		return views[i].Material.Name < views[j].Material.Name
	})
	return views
}
