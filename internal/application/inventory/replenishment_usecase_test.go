package inventory_test

import (
	"context"
	"testing"

	"github.com/jhoicas/paintshop-api/internal/application/inventory"
	"github.com/jhoicas/paintshop-api/internal/domain/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateReplenishmentList_OrdenPorDeficit(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.material(t, "m1", "Lienzo", entity.CategoryCanvas)
	f.material(t, "m2", "Pintura", entity.CategoryPaint)
	f.material(t, "m3", "Pincel", entity.CategoryBrush)

	_, err := f.purchases.RecordPurchase(ctx, inventory.PurchaseInput{MaterialID: "m1", Quantity: decimal.NewFromInt(2), UnitPrice: decimal.NewFromInt(10)})
	require.NoError(t, err)
	_, err = f.stock.SetMinLevel(ctx, "m1", decimal.NewFromInt(4)) // déficit 2
	require.NoError(t, err)
	_, err = f.stock.SetMinLevel(ctx, "m2", decimal.NewFromInt(10)) // déficit 10
	require.NoError(t, err)
	f.add(t, "m3", 20)
	_, err = f.stock.SetMinLevel(ctx, "m3", decimal.NewFromInt(5)) // no está bajo
	require.NoError(t, err)

	uc := inventory.NewReplenishmentUseCase(f.stock, f.pricing)
	list, err := uc.GenerateReplenishmentList(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)

	assert.Equal(t, "m2", list[0].MaterialID)
	assert.Equal(t, 1, list[0].Priority)
	assert.Equal(t, "15", list[0].SuggestedOrderQty.String())
	assert.True(t, list[0].EstimatedOrderCost.IsZero(), "sin compras no hay costo estimado")

	assert.Equal(t, "m1", list[1].MaterialID)
	assert.Equal(t, 2, list[1].Priority)
	assert.Equal(t, "6", list[1].IdealStock.String())
	assert.Equal(t, "4", list[1].SuggestedOrderQty.String())
	assert.Equal(t, "40", list[1].EstimatedOrderCost.String())
}
