package inventory_test

import (
	"context"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/jhoicas/paintshop-api/internal/application/inventory"
	"github.com/jhoicas/paintshop-api/internal/domain"
	"github.com/jhoicas/paintshop-api/internal/domain/entity"
	"github.com/jhoicas/paintshop-api/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddRemove_SaldoYDosMovimientos(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.material(t, "m1", "Lienzo 30x40", entity.CategoryCanvas)

	f.add(t, "m1", 10)
	res := f.remove(t, "m1", 4)

	assert.True(t, res.Stock.Quantity.Equal(decimal.NewFromInt(6)))
	assert.False(t, res.IsNegative)

	movs, err := f.movements.ListMovements(ctx, "m1", 0)
	require.NoError(t, err)
	require.Len(t, movs, 2)
	assert.Equal(t, entity.MovementTypeOUT, movs[0].Type)
	assert.Equal(t, entity.MovementTypeIN, movs[1].Type)
	assert.True(t, movs[0].Quantity.Equal(decimal.NewFromInt(4)), "OUT guarda cantidad positiva")
	assert.Equal(t, entity.ReferenceManual, movs[1].ReferenceType)
}

func TestAddRemove_VueltaAlSaldoOriginal(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.material(t, "m1", "Pintura", entity.CategoryPaint)
	f.add(t, "m1", 7)

	_, err := f.movements.AddMaterial(ctx, inventory.MovementInput{MaterialID: "m1", Quantity: dec("2.5"), Reason: "x"})
	require.NoError(t, err)
	_, err = f.movements.RemoveMaterial(ctx, inventory.MovementInput{MaterialID: "m1", Quantity: dec("2.5"), Reason: "x"})
	require.NoError(t, err)

	view, err := f.stock.GetStock(ctx, "m1")
	require.NoError(t, err)
	assert.True(t, view.Quantity.Equal(decimal.NewFromInt(7)))
}

func TestRemoveMaterial_PermiteSaldoNegativo(t *testing.T) {
	f := newFixture(t)
	f.material(t, "m1", "Marco", entity.CategoryFrame)
	f.add(t, "m1", 2)

	res := f.remove(t, "m1", 5)

	assert.True(t, res.Stock.Quantity.Equal(decimal.NewFromInt(-3)), "no se recorta a cero")
	assert.True(t, res.IsNegative)
	assert.Equal(t, []string{"m1"}, f.observer.negatives)
	assert.Equal(t, 1, f.observer.recorded[entity.MovementTypeOUT])
}

func TestRemoveMaterial_SinFilaDeStockCreaEnCero(t *testing.T) {
	f := newFixture(t)
	f.material(t, "m1", "Pincel", entity.CategoryBrush)

	res := f.remove(t, "m1", 1)

	assert.True(t, res.Stock.Quantity.Equal(decimal.NewFromInt(-1)))
	assert.True(t, res.IsNegative)
}

func TestAdjustStock_DeltaConSigno(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.material(t, "m1", "Lienzo", entity.CategoryCanvas)
	f.add(t, "m1", 6)

	res, err := f.movements.AdjustStock(ctx, inventory.AdjustInput{MaterialID: "m1", NewQuantity: decimal.NewFromInt(2), Reason: "conteo físico"})
	require.NoError(t, err)
	assert.True(t, res.Stock.Quantity.Equal(decimal.NewFromInt(2)))
	assert.Equal(t, entity.MovementTypeADJUSTMENT, res.Movement.Type)
	assert.True(t, res.Movement.Quantity.Equal(decimal.NewFromInt(-4)), "se registra el delta, no el valor absoluto")

	same, err := f.movements.AdjustStock(ctx, inventory.AdjustInput{MaterialID: "m1", NewQuantity: decimal.NewFromInt(2), Reason: "reconteo"})
	require.NoError(t, err)
	assert.True(t, same.Movement.Quantity.IsZero())

	up, err := f.movements.AdjustStock(ctx, inventory.AdjustInput{MaterialID: "m1", NewQuantity: dec("3.5"), Reason: "hallazgo"})
	require.NoError(t, err)
	assert.True(t, up.Movement.Quantity.Equal(dec("1.5")))
}

func TestAdjustStock_CantidadNegativa(t *testing.T) {
	f := newFixture(t)
	f.material(t, "m1", "Lienzo", entity.CategoryCanvas)

	_, err := f.movements.AdjustStock(context.Background(), inventory.AdjustInput{MaterialID: "m1", NewQuantity: decimal.NewFromInt(-1)})
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestMovimientos_Validacion(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.material(t, "m1", "Lienzo", entity.CategoryCanvas)

	cases := []struct {
		name string
		in   inventory.MovementInput
	}{
		{"cantidad cero", inventory.MovementInput{MaterialID: "m1", Quantity: decimal.Zero}},
		{"cantidad negativa", inventory.MovementInput{MaterialID: "m1", Quantity: decimal.NewFromInt(-2)}},
		{"sin material", inventory.MovementInput{Quantity: decimal.NewFromInt(1)}},
		{"referencia no soportada", inventory.MovementInput{MaterialID: "m1", Quantity: decimal.NewFromInt(1), ReferenceType: "FACTURA"}},
		{"más de tres decimales", inventory.MovementInput{MaterialID: "m1", Quantity: dec("0.0004")}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.movements.AddMaterial(ctx, tc.in)
			assert.ErrorIs(t, err, domain.ErrValidation)
			_, err = f.movements.RemoveMaterial(ctx, tc.in)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}

	n, err := f.store.Movements().Count(ctx, nil)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestMovimientos_MaterialInexistente(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.movements.AddMaterial(ctx, inventory.MovementInput{MaterialID: "nope", Quantity: decimal.NewFromInt(1)})
	require.ErrorIs(t, err, domain.ErrNotFound)
	_, err = f.movements.AdjustStock(ctx, inventory.AdjustInput{MaterialID: "nope", NewQuantity: decimal.NewFromInt(1)})
	require.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.movements.ListMovements(ctx, "nope", 0)
	require.ErrorIs(t, err, domain.ErrNotFound)

	stock, err := f.store.Stocks().GetByMaterial(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, stock)
}

func TestMovimientos_AjusteFueraDeEscala(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.material(t, "m1", "Lienzo", entity.CategoryCanvas)
	f.add(t, "m1", 5)

	_, err := f.movements.AdjustStock(ctx, inventory.AdjustInput{MaterialID: "m1", NewQuantity: dec("2.0001")})
	require.ErrorIs(t, err, domain.ErrValidation)

	view, err := f.stock.GetStock(ctx, "m1")
	require.NoError(t, err)
	assert.True(t, view.Quantity.Equal(decimal.NewFromInt(5)))

	_, err = f.stock.SetMinLevel(ctx, "m1", dec("1.2345"))
	require.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.movements.AddMaterial(ctx, inventory.MovementInput{MaterialID: "m1", Quantity: dec("0.125")})
	require.NoError(t, err, "tres decimales caben en la columna")
}

func TestMovimientos_FalloAlRegistrarRevierteSaldo(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.material(t, "m1", "Lienzo", entity.CategoryCanvas)
	f.add(t, "m1", 5)

	uc := inventory.NewMovementUseCase(
		failingTxRunner{f.store}, f.store.Materials(), f.store.Movements(), f.store.Pictures(), f.store.PictureMaterials(),
		nil, logger.Nop(), inventory.MovementLimits{},
	)
	_, err := uc.RemoveMaterial(ctx, inventory.MovementInput{MaterialID: "m1", Quantity: decimal.NewFromInt(3)})
	require.ErrorIs(t, err, domain.ErrStorage)

	view, err := f.stock.GetStock(ctx, "m1")
	require.NoError(t, err)
	assert.True(t, view.Quantity.Equal(decimal.NewFromInt(5)), "saldo y registro se revierten juntos")

	rec, err := f.stock.Reconcile(ctx, "m1")
	require.NoError(t, err)
	assert.True(t, rec.Consistent())
}

func TestMovimientos_SaldoIgualASumaDeMovimientos(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	ids := []string{"m1", "m2", "m3"}
	for _, id := range ids {
		f.material(t, id, "Material "+id, entity.CategoryOther)
	}

	rnd := rand.New(rand.NewSource(42))
	for i := 0; i < 200; i++ {
		id := ids[rnd.Intn(len(ids))]
		qty := decimal.New(int64(rnd.Intn(500)+1), -2)
		var err error
		switch rnd.Intn(3) {
		case 0:
			_, err = f.movements.AddMaterial(ctx, inventory.MovementInput{MaterialID: id, Quantity: qty, Reason: "r"})
		case 1:
			_, err = f.movements.RemoveMaterial(ctx, inventory.MovementInput{MaterialID: id, Quantity: qty, Reason: "r"})
		default:
			_, err = f.movements.AdjustStock(ctx, inventory.AdjustInput{MaterialID: id, NewQuantity: qty, Reason: "r"})
		}
		require.NoError(t, err)
	}

	for _, id := range ids {
		rec, err := f.stock.Reconcile(ctx, id)
		require.NoError(t, err)
		assert.True(t, rec.Consistent(), "material %s: saldo %s vs movimientos %s", id, rec.Ledger, rec.MovementsSum)
	}
}

func TestMovimientos_Concurrentes_SinActualizacionesPerdidas(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.material(t, "m1", "Pintura", entity.CategoryPaint)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.movements.AddMaterial(ctx, inventory.MovementInput{MaterialID: "m1", Quantity: decimal.NewFromInt(1), Reason: "r"})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	view, err := f.stock.GetStock(ctx, "m1")
	require.NoError(t, err)
	assert.True(t, view.Quantity.Equal(decimal.NewFromInt(50)))
}

func TestListAllMovements_LimitePorDefecto(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.material(t, "m1", "Pintura", entity.CategoryPaint)
	f.material(t, "m2", "Pincel", entity.CategoryBrush)
	f.add(t, "m1", 1)
	f.add(t, "m2", 1)
	f.add(t, "m1", 1)

	all, err := f.movements.ListAllMovements(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	two, err := f.movements.ListAllMovements(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, two, 2)
	assert.Equal(t, "m1", two[0].MaterialID)
}

func TestConsumeForPicture(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.material(t, "canvas", "Lienzo", entity.CategoryCanvas)
	f.material(t, "paint", "Pintura", entity.CategoryPaint)
	f.add(t, "canvas", 5)

	now := time.Now()
	require.NoError(t, f.store.Pictures().Create(ctx, &entity.Picture{ID: "pic1", Title: "Atardecer", Type: entity.PictureTypeReadyMade, Price: decimal.NewFromInt(100), CreatedAt: now, UpdatedAt: now}))
	require.NoError(t, f.store.PictureMaterials().Create(ctx, &entity.PictureMaterial{ID: "l1", PictureID: "pic1", MaterialID: "canvas", Quantity: decimal.NewFromInt(1)}))
	require.NoError(t, f.store.PictureMaterials().Create(ctx, &entity.PictureMaterial{ID: "l2", PictureID: "pic1", MaterialID: "paint", Quantity: decimal.NewFromInt(2)}))

	results, err := f.movements.ConsumeForPicture(ctx, "pic1", "u1")
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.True(t, results[0].Stock.Quantity.Equal(decimal.NewFromInt(4)))
	assert.True(t, results[1].IsNegative)
	for _, r := range results {
		assert.Equal(t, entity.MovementTypeOUT, r.Movement.Type)
		assert.Equal(t, entity.ReferencePicture, r.Movement.ReferenceType)
		assert.Equal(t, "pic1", r.Movement.ReferenceID)
		assert.Equal(t, "u1", r.Movement.CreatedBy)
	}
}

func TestConsumeForPicture_Errores(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.movements.ConsumeForPicture(ctx, "nope", "u1")
	require.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, f.store.Pictures().Create(ctx, &entity.Picture{ID: "pic1", Title: "Vacío", Type: entity.PictureTypeCustomPhoto}))
	_, err = f.movements.ConsumeForPicture(ctx, "pic1", "u1")
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestConsumeForPicture_MaterialFaltanteRevierteTodo(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.material(t, "canvas", "Lienzo", entity.CategoryCanvas)
	f.add(t, "canvas", 5)

	require.NoError(t, f.store.Pictures().Create(ctx, &entity.Picture{ID: "pic1", Title: "Roto", Type: entity.PictureTypeReadyMade}))
	require.NoError(t, f.store.PictureMaterials().Create(ctx, &entity.PictureMaterial{ID: "l1", PictureID: "pic1", MaterialID: "canvas", Quantity: decimal.NewFromInt(1)}))
	require.NoError(t, f.store.PictureMaterials().Create(ctx, &entity.PictureMaterial{ID: "l2", PictureID: "pic1", MaterialID: "borrado", Quantity: decimal.NewFromInt(1)}))

	_, err := f.movements.ConsumeForPicture(ctx, "pic1", "u1")
	require.ErrorIs(t, err, domain.ErrNotFound)

	view, err := f.stock.GetStock(ctx, "canvas")
	require.NoError(t, err)
	assert.True(t, view.Quantity.Equal(decimal.NewFromInt(5)))
}
