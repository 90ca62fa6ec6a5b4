package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jhoicas/paintshop-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorageErr_ConservaCausaYSentinela(t *testing.T) {
	cause := &pgconn.PgError{Code: "23505", Message: "duplicate key"}
	err := storageErr("insert material", cause)

	assert.ErrorIs(t, err, domain.ErrStorage)
	var pgErr *pgconn.PgError
	assert.True(t, errors.As(err, &pgErr))
	assert.Contains(t, err.Error(), "registro duplicado")

	fk := storageErr("insert movement", &pgconn.PgError{Code: "23503"})
	assert.Contains(t, fk.Error(), "referencia inexistente")

	plain := storageErr("list stock", errors.New("conn reset"))
	assert.ErrorIs(t, plain, domain.ErrStorage)
}

func TestMigraciones_Embebidas(t *testing.T) {
	entries, err := migrationsFS.ReadDir("migrations")
	assert.NoError(t, err)
	assert.Len(t, entries, 3)
}

func TestNullIfEmpty(t *testing.T) {
	assert.Nil(t, nullIfEmpty(""))
	assert.Equal(t, "x", derefString(nullIfEmpty("x")))
	assert.Equal(t, "", derefString(nil))
}

// invalidTextQuerier responde como el servidor ante un uuid mal formado y cuenta las consultas.
type invalidTextQuerier struct{ calls int }

var errInvalidUUID = &pgconn.PgError{Code: "22P02", Message: "invalid input syntax for type uuid"}

type errRow struct{ err error }

func (r errRow) Scan(...any) error { return r.err }

func (q *invalidTextQuerier) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	q.calls++
	return pgconn.CommandTag{}, errInvalidUUID
}

func (q *invalidTextQuerier) Query(context.Context, string, ...any) (pgx.Rows, error) {
	q.calls++
	return nil, errInvalidUUID
}

func (q *invalidTextQuerier) QueryRow(context.Context, string, ...any) pgx.Row {
	q.calls++
	return errRow{errInvalidUUID}
}

func TestStorageErr_FormatoInvalidoEsNoEncontrado(t *testing.T) {
	err := storageErr("get stock", errInvalidUUID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NotErrorIs(t, err, domain.ErrStorage)
}

func TestIsUUID(t *testing.T) {
	assert.True(t, isUUID(uuid.New().String()))
	assert.False(t, isUUID("abc"))
	assert.False(t, isUUID(""))
}

func TestRepositorios_IdNoUUIDNoLlegaAlServidor(t *testing.T) {
	ctx := context.Background()
	q := &invalidTextQuerier{}

	material, err := NewMaterialRepository(q).GetByID(ctx, "abc")
	require.NoError(t, err)
	assert.Nil(t, material)

	stock, err := NewStockRepository(q).GetByMaterial(ctx, "abc")
	require.NoError(t, err)
	assert.Nil(t, stock)

	movs, err := NewMaterialMovementRepository(q).ListByMaterial(ctx, "abc", 10)
	require.NoError(t, err)
	assert.Empty(t, movs)

	sum, err := NewMaterialMovementRepository(q).SignedSum(ctx, "abc")
	require.NoError(t, err)
	assert.True(t, sum.IsZero())

	purchases, err := NewMaterialPurchaseRepository(q).ListRecentByMaterial(ctx, "abc", 10)
	require.NoError(t, err)
	assert.Empty(t, purchases)

	pic, err := NewPictureRepository(q).GetByID(ctx, "abc")
	require.NoError(t, err)
	assert.Nil(t, pic)

	size, err := NewPictureSizeRepository(q).GetByID(ctx, "abc")
	require.NoError(t, err)
	assert.Nil(t, size)

	lines, err := NewPictureMaterialRepository(q).ListByPicture(ctx, "abc")
	require.NoError(t, err)
	assert.Empty(t, lines)

	assert.Zero(t, q.calls)

	_, err = NewMaterialRepository(q).GetByID(ctx, uuid.New().String())
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 1, q.calls)
}
