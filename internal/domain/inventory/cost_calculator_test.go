package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/paintshop-api/internal/domain/entity"
	"github.com/jhoicas/paintshop-api/internal/domain/inventory"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func purchase(qty, total string) *entity.MaterialPurchase {
	return &entity.MaterialPurchase{Quantity: dec(qty), TotalPrice: dec(total)}
}

func TestWeightedAverageUnitPrice_PonderaPorCantidad(t *testing.T) {
	avg := inventory.WeightedAverageUnitPrice([]*entity.MaterialPurchase{
		purchase("10", "100"),
		purchase("5", "60"),
	})

	assert.True(t, avg.Round(2).Equal(dec("10.67")), "160/15 debe redondear a 10.67, obtuvo %s", avg)
}

func TestWeightedAverageUnitPrice_SinComprasDevuelveCero(t *testing.T) {
	assert.True(t, inventory.WeightedAverageUnitPrice(nil).IsZero())
	assert.True(t, inventory.WeightedAverageUnitPrice([]*entity.MaterialPurchase{purchase("0", "0")}).IsZero())
}

func TestPictureCost_SumaMaterialesYManoDeObra(t *testing.T) {
	hours := dec("2")
	cost := inventory.PictureCost([]inventory.CostLine{
		{Quantity: dec("2"), UnitPrice: dec("5")},
		{Quantity: dec("1"), UnitPrice: dec("3")},
	}, &hours, dec("15"))

	assert.Equal(t, "43", cost.String())
	assert.Equal(t, "43.00", cost.StringFixed(2))
}

func TestPictureCost_SinHorasYRedondeo(t *testing.T) {
	cost := inventory.PictureCost([]inventory.CostLine{
		{Quantity: dec("3"), UnitPrice: dec("1.3333333")},
	}, nil, dec("15"))

	assert.Equal(t, "4.00", cost.StringFixed(2))
}

func TestProfit(t *testing.T) {
	cost := dec("43")
	profit, margin := inventory.Profit(dec("100"), &cost)
	assert.True(t, profit.Equal(dec("57")))
	assert.True(t, margin.Equal(dec("57")))

	profit, margin = inventory.Profit(dec("30"), &cost)
	assert.True(t, profit.Equal(dec("-13")))
	assert.True(t, margin.Equal(dec("-43.33")), "obtuvo %s", margin)
}

func TestProfit_CostoNoCalculadoYPrecioCero(t *testing.T) {
	profit, margin := inventory.Profit(dec("80"), nil)
	assert.True(t, profit.Equal(dec("80")))
	assert.True(t, margin.Equal(dec("100")))

	cost := dec("10")
	profit, margin = inventory.Profit(decimal.Zero, &cost)
	assert.True(t, profit.Equal(dec("-10")))
	assert.True(t, margin.IsZero(), "con precio 0 el margen debe ser 0")
}
