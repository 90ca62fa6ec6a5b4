package inventory_test

import (
	"context"
	"testing"

	"github.com/jhoicas/paintshop-api/internal/application/inventory"
	"github.com/jhoicas/paintshop-api/internal/domain"
	"github.com/jhoicas/paintshop-api/internal/domain/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordPurchase_EntraAlAlmacen(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.material(t, "m1", "Lienzo", entity.CategoryCanvas)

	res, err := f.purchases.RecordPurchase(ctx, inventory.PurchaseInput{
		MaterialID: "m1", Quantity: decimal.NewFromInt(3), UnitPrice: dec("4.20"), Supplier: "Telas SA", UserID: "u1",
	})
	require.NoError(t, err)
	assert.Equal(t, "12.6", res.Purchase.TotalPrice.String())
	assert.False(t, res.Purchase.PurchaseDate.IsZero())
	assert.True(t, res.Movement.Stock.Quantity.Equal(decimal.NewFromInt(3)))
	assert.Equal(t, entity.ReferencePurchase, res.Movement.Movement.ReferenceType)
	assert.Equal(t, res.Purchase.ID, res.Movement.Movement.ReferenceID)
	assert.Equal(t, 1, f.observer.recorded[entity.MovementTypeIN])

	list, err := f.purchases.ListPurchases(ctx, "m1", 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Telas SA", list[0].Supplier)
}

func TestRecordPurchase_Validacion(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.material(t, "m1", "Lienzo", entity.CategoryCanvas)

	_, err := f.purchases.RecordPurchase(ctx, inventory.PurchaseInput{MaterialID: "m1", Quantity: decimal.Zero, UnitPrice: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = f.purchases.RecordPurchase(ctx, inventory.PurchaseInput{MaterialID: "m1", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(-1)})
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = f.purchases.RecordPurchase(ctx, inventory.PurchaseInput{MaterialID: "m1", Quantity: dec("1.0005"), UnitPrice: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = f.purchases.RecordPurchase(ctx, inventory.PurchaseInput{MaterialID: "m1", Quantity: decimal.NewFromInt(1), UnitPrice: dec("0.00001")})
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = f.purchases.ListPurchases(ctx, "", 0)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestRecordPurchase_MaterialInexistenteNoDejaRastro(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.purchases.RecordPurchase(ctx, inventory.PurchaseInput{MaterialID: "nope", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(1)})
	require.ErrorIs(t, err, domain.ErrNotFound)

	list, err := f.store.Purchases().ListRecentByMaterial(ctx, "nope", 10)
	require.NoError(t, err)
	assert.Empty(t, list)
	n, err := f.store.Movements().Count(ctx, nil)
	require.NoError(t, err)
	assert.Zero(t, n)
}
