package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/paintshop-api/internal/domain/entity"
	"github.com/jhoicas/paintshop-api/internal/domain/inventory"
)

func linesByCategory(lines []inventory.BOMLine) map[entity.MaterialCategory]string {
	out := make(map[entity.MaterialCategory]string, len(lines))
	for _, l := range lines {
		out[l.Category] = l.Quantity.String()
	}
	return out
}

func TestBOMLines_30x40(t *testing.T) {
	lines := inventory.DefaultBOMRules.Lines(dec("30"), dec("40"))
	require.Len(t, lines, 4)

	assert.Equal(t, entity.CategoryCanvas, lines[0].Category)
	assert.Equal(t, entity.CategoryFrame, lines[1].Category)
	assert.Equal(t, entity.CategoryPaint, lines[2].Category)
	assert.Equal(t, entity.CategoryBrush, lines[3].Category)

	got := linesByCategory(lines)
	assert.Equal(t, "1", got[entity.CategoryCanvas])
	assert.Equal(t, "2", got[entity.CategoryFrame])
	assert.Equal(t, "1", got[entity.CategoryPaint])
	assert.Equal(t, "3", got[entity.CategoryBrush])
}

func TestBOMLines_FormatoGrande(t *testing.T) {
	// 100x150: área 1.5 m² -> lienzo ceil(1.65)=2, marco ceil(5)=5, pintura ceil(0.75)=1
	got := linesByCategory(inventory.DefaultBOMRules.Lines(dec("100"), dec("150")))
	assert.Equal(t, "2", got[entity.CategoryCanvas])
	assert.Equal(t, "5", got[entity.CategoryFrame])
	assert.Equal(t, "1", got[entity.CategoryPaint])
	assert.Equal(t, "3", got[entity.CategoryBrush])
}

func TestIsLowStock(t *testing.T) {
	minLevel := dec("5")
	assert.False(t, inventory.IsLowStock(dec("1"), nil), "sin mínimo nunca hay alerta")
	assert.True(t, inventory.IsLowStock(dec("5"), &minLevel), "igual al mínimo es stock bajo")
	assert.True(t, inventory.IsLowStock(dec("-2"), &minLevel))
	assert.False(t, inventory.IsLowStock(dec("5.01"), &minLevel))
}

func TestReorderSuggestion(t *testing.T) {
	ideal, suggested := inventory.ReorderSuggestion(dec("2"), dec("10"))
	assert.True(t, ideal.Equal(dec("15")))
	assert.True(t, suggested.Equal(dec("13")))

	_, suggested = inventory.ReorderSuggestion(dec("20"), dec("10"))
	assert.True(t, suggested.IsZero())
}
