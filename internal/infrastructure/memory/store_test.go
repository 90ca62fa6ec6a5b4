package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jhoicas/paintshop-api/internal/domain/entity"
	"github.com/jhoicas/paintshop-api/internal/domain/repository"
	"github.com/jhoicas/paintshop-api/internal/infrastructure/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedMaterial(t *testing.T, s *memory.Store, id, name string, cat entity.MaterialCategory, created time.Time) {
	t.Helper()
	require.NoError(t, s.Materials().Create(context.Background(), &entity.Material{
		ID: id, Name: name, Unit: "pcs", Category: cat, Active: true, CreatedAt: created, UpdatedAt: created,
	}))
}

func TestStore_Run_RollbackRestauraEstado(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	seedMaterial(t, s, "m1", "Lienzo", entity.CategoryCanvas, time.Now())

	boom := errors.New("fallo simulado")
	err := s.Run(ctx, func(movRepo repository.MaterialMovementRepository, stockRepo repository.StockRepository, _ repository.MaterialRepository) error {
		stock, err := stockRepo.GetForUpdate(ctx, "m1")
		require.NoError(t, err)
		stock.Quantity = decimal.NewFromInt(10)
		require.NoError(t, stockRepo.Save(ctx, stock))
		require.NoError(t, movRepo.Create(ctx, &entity.MaterialMovement{ID: "mv1", MaterialID: "m1", Type: entity.MovementTypeIN, Quantity: stock.Quantity}))
		return boom
	})
	require.ErrorIs(t, err, boom)

	stock, err := s.Stocks().GetByMaterial(ctx, "m1")
	require.NoError(t, err)
	assert.Nil(t, stock, "la fila creada dentro de la transacción fallida no debe persistir")
	n, err := s.Movements().Count(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestStore_Run_CommitPersiste(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	seedMaterial(t, s, "m1", "Lienzo", entity.CategoryCanvas, time.Now())

	err := s.Run(ctx, func(_ repository.MaterialMovementRepository, stockRepo repository.StockRepository, _ repository.MaterialRepository) error {
		stock, err := stockRepo.GetForUpdate(ctx, "m1")
		if err != nil {
			return err
		}
		stock.Quantity = decimal.NewFromInt(4)
		return stockRepo.Save(ctx, stock)
	})
	require.NoError(t, err)

	stock, err := s.Stocks().GetByMaterial(ctx, "m1")
	require.NoError(t, err)
	require.NotNil(t, stock)
	assert.True(t, stock.Quantity.Equal(decimal.NewFromInt(4)))
}

func TestStore_GetByMaterial_DevuelveCopia(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	_, err := s.Stocks().GetForUpdate(ctx, "m1")
	require.NoError(t, err)

	stock, err := s.Stocks().GetByMaterial(ctx, "m1")
	require.NoError(t, err)
	stock.Quantity = decimal.NewFromInt(99)

	again, err := s.Stocks().GetByMaterial(ctx, "m1")
	require.NoError(t, err)
	assert.True(t, again.Quantity.IsZero())
}

func TestMovementRepo_ListarDelMasRecienteAlMasAntiguo(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	repo := s.Movements()
	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, repo.Create(ctx, &entity.MaterialMovement{ID: id, MaterialID: "m1", Type: entity.MovementTypeIN, Quantity: decimal.NewFromInt(1)}))
	}
	require.NoError(t, repo.Create(ctx, &entity.MaterialMovement{ID: "d", MaterialID: "m2", Type: entity.MovementTypeOUT, Quantity: decimal.NewFromInt(2)}))

	list, err := repo.ListByMaterial(ctx, "m1", 2)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "c", list[0].ID)
	assert.Equal(t, "b", list[1].ID)

	all, err := repo.ListAll(ctx, 10)
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, "d", all[0].ID)

	sum, err := repo.SignedSum(ctx, "m2")
	require.NoError(t, err)
	assert.True(t, sum.Equal(decimal.NewFromInt(-2)))
}

func TestMaterialRepo_FirstActiveByCategory_ElMasAntiguo(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	seedMaterial(t, s, "p2", "Pintura B", entity.CategoryPaint, base.Add(time.Hour))
	seedMaterial(t, s, "p1", "Pintura A", entity.CategoryPaint, base)
	require.NoError(t, s.Materials().Create(ctx, &entity.Material{ID: "p0", Name: "Pintura vieja", Category: entity.CategoryPaint, Active: false, CreatedAt: base.Add(-time.Hour)}))

	m, err := s.Materials().FirstActiveByCategory(ctx, entity.CategoryPaint)
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, "p1", m.ID)

	none, err := s.Materials().FirstActiveByCategory(ctx, entity.CategoryFrame)
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestPurchaseRepo_ListRecentByMaterial_VentanaPorFecha(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		require.NoError(t, s.Purchases().Create(ctx, &entity.MaterialPurchase{
			ID: string(rune('a' + i)), MaterialID: "m1", Quantity: decimal.NewFromInt(1),
			PurchaseDate: base.AddDate(0, 0, i),
		}))
	}
	list, err := s.Purchases().ListRecentByMaterial(ctx, "m1", 3)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "e", list[0].ID)
	assert.Equal(t, "c", list[2].ID)
}
