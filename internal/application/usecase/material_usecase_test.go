package usecase_test

import (
	"context"
	"testing"

	"github.com/jhoicas/paintshop-api/internal/application/dto"
	"github.com/jhoicas/paintshop-api/internal/application/usecase"
	"github.com/jhoicas/paintshop-api/internal/domain"
	"github.com/jhoicas/paintshop-api/internal/infrastructure/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMaterialUseCase() (*usecase.MaterialUseCase, *memory.Store) {
	store := memory.NewStore()
	return usecase.NewMaterialUseCase(store, store.Materials(), store.PictureSizes()), store
}

func TestMaterialUseCase_Create_CreaFilaDeStock(t *testing.T) {
	ctx := context.Background()
	uc, store := newMaterialUseCase()
	minLevel := decimal.NewFromInt(5)

	m, err := uc.Create(ctx, dto.CreateMaterialRequest{Name: " Lienzo 30x40 ", Unit: "m2", Category: "canvas", MinLevel: &minLevel})
	require.NoError(t, err)
	assert.Equal(t, "Lienzo 30x40", m.Name)
	assert.Equal(t, "CANVAS", m.Category)
	assert.True(t, m.Active)

	stock, err := store.Stocks().GetByMaterial(ctx, m.ID)
	require.NoError(t, err)
	require.NotNil(t, stock)
	assert.True(t, stock.Quantity.IsZero())
	require.NotNil(t, stock.MinLevel)
	assert.True(t, stock.MinLevel.Equal(minLevel))
}

func TestMaterialUseCase_Create_Validacion(t *testing.T) {
	ctx := context.Background()
	uc, _ := newMaterialUseCase()
	neg := decimal.NewFromInt(-1)
	missing := "nope"

	cases := []struct {
		name string
		in   dto.CreateMaterialRequest
		err  error
	}{
		{"sin nombre", dto.CreateMaterialRequest{Unit: "ml", Category: "PAINT"}, domain.ErrValidation},
		{"sin unidad", dto.CreateMaterialRequest{Name: "Pintura", Category: "PAINT"}, domain.ErrValidation},
		{"categoría inválida", dto.CreateMaterialRequest{Name: "Pintura", Unit: "ml", Category: "GLITTER"}, domain.ErrValidation},
		{"mínimo negativo", dto.CreateMaterialRequest{Name: "Pintura", Unit: "ml", Category: "PAINT", MinLevel: &neg}, domain.ErrValidation},
		{"formato inexistente", dto.CreateMaterialRequest{Name: "Pintura", Unit: "ml", Category: "PAINT", PictureSizeID: &missing}, domain.ErrNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Create(ctx, tc.in)
			assert.ErrorIs(t, err, tc.err)
		})
	}
}

func TestMaterialUseCase_UpdateYDeactivate(t *testing.T) {
	ctx := context.Background()
	uc, _ := newMaterialUseCase()
	m, err := uc.Create(ctx, dto.CreateMaterialRequest{Name: "Pincel", Unit: "set", Category: "BRUSH"})
	require.NoError(t, err)

	name := "Pincel fino"
	updated, err := uc.Update(ctx, m.ID, dto.UpdateMaterialRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Pincel fino", updated.Name)

	require.NoError(t, uc.Deactivate(ctx, m.ID))
	active, err := uc.List(ctx, true, "")
	require.NoError(t, err)
	assert.Empty(t, active)

	all, err := uc.List(ctx, false, "brush")
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.False(t, all[0].Active)

	_, err = uc.GetByID(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, uc.Deactivate(ctx, "nope"), domain.ErrNotFound)
}
