package inventory_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/jhoicas/paintshop-api/internal/application/inventory"
	"github.com/jhoicas/paintshop-api/internal/domain"
	"github.com/jhoicas/paintshop-api/internal/domain/entity"
	"github.com/jhoicas/paintshop-api/internal/domain/repository"
	"github.com/jhoicas/paintshop-api/internal/infrastructure/memory"
	"github.com/jhoicas/paintshop-api/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	store     *memory.Store
	observer  *spyObserver
	movements *inventory.MovementUseCase
	stock     *inventory.StockUseCase
	pricing   *inventory.PricingUseCase
	purchases *inventory.PurchaseUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	obs := &spyObserver{}
	pricing := inventory.NewPricingUseCase(store.Materials(), store.Purchases(), 10)
	return &fixture{
		store:    store,
		observer: obs,
		movements: inventory.NewMovementUseCase(
			store, store.Materials(), store.Movements(), store.Pictures(), store.PictureMaterials(),
			obs, logger.Nop(), inventory.MovementLimits{},
		),
		stock:     inventory.NewStockUseCase(store, store.Materials(), store.Stocks(), store.Movements(), pricing),
		pricing:   pricing,
		purchases: inventory.NewPurchaseUseCase(store, store.Purchases(), obs),
	}
}

func (f *fixture) material(t *testing.T, id, name string, cat entity.MaterialCategory) {
	t.Helper()
	now := time.Now()
	require.NoError(t, f.store.Materials().Create(context.Background(), &entity.Material{
		ID: id, Name: name, Unit: "pcs", Category: cat, Active: true, CreatedAt: now, UpdatedAt: now,
	}))
}

func (f *fixture) add(t *testing.T, materialID string, qty int64) {
	t.Helper()
	_, err := f.movements.AddMaterial(context.Background(), inventory.MovementInput{
		MaterialID: materialID, Quantity: decimal.NewFromInt(qty), Reason: "carga inicial",
	})
	require.NoError(t, err)
}

func (f *fixture) remove(t *testing.T, materialID string, qty int64) *inventory.MovementResult {
	t.Helper()
	res, err := f.movements.RemoveMaterial(context.Background(), inventory.MovementInput{
		MaterialID: materialID, Quantity: decimal.NewFromInt(qty), Reason: "consumo",
	})
	require.NoError(t, err)
	return res
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type spyObserver struct {
	mu        sync.Mutex
	recorded  map[string]int
	negatives []string
}

func (s *spyObserver) MovementRecorded(movementType string, _ decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.recorded == nil {
		s.recorded = make(map[string]int)
	}
	s.recorded[movementType]++
}

func (s *spyObserver) NegativeStock(materialID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.negatives = append(s.negatives, materialID)
}

// failingTxRunner delega en el store pero falla al insertar el movimiento.
type failingTxRunner struct{ store *memory.Store }

func (r failingTxRunner) Run(ctx context.Context, fn func(
	movRepo repository.MaterialMovementRepository,
	stockRepo repository.StockRepository,
	materialRepo repository.MaterialRepository,
) error) error {
	return r.store.Run(ctx, func(
		movRepo repository.MaterialMovementRepository,
		stockRepo repository.StockRepository,
		materialRepo repository.MaterialRepository,
	) error {
		return fn(failingMovementRepo{movRepo}, stockRepo, materialRepo)
	})
}

type failingMovementRepo struct {
	repository.MaterialMovementRepository
}

func (failingMovementRepo) Create(context.Context, *entity.MaterialMovement) error {
	return fmt.Errorf("insertar movimiento: %w: conexión perdida", domain.ErrStorage)
}
