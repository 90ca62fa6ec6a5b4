package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/paintshop-api/internal/application/inventory"
	"github.com/jhoicas/paintshop-api/internal/application/picture"
	"github.com/jhoicas/paintshop-api/internal/domain"
	"github.com/jhoicas/paintshop-api/internal/domain/repository"
)

var (
	_ inventory.TxRunner         = (*TxRunner)(nil)
	_ inventory.PurchaseTxRunner = (*TxRunner)(nil)
	_ picture.TxRunner           = (*TxRunner)(nil)
)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// inTx inicia una transacción, ejecuta fn y hace Commit o Rollback.
func (r *TxRunner) inTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w: %w", domain.ErrStorage, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w: %w", domain.ErrStorage, err)
	}
	return nil
}

// Run ejecuta fn con repos de almacén atados a la tx.
func (r *TxRunner) Run(ctx context.Context, fn func(
	movRepo repository.MaterialMovementRepository,
	stockRepo repository.StockRepository,
	materialRepo repository.MaterialRepository,
) error) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		return fn(NewMaterialMovementRepository(tx), NewStockRepository(tx), NewMaterialRepository(tx))
	})
}

// RunPurchase como Run, incluyendo el repositorio de compras (RecordPurchase).
func (r *TxRunner) RunPurchase(ctx context.Context, fn func(
	movRepo repository.MaterialMovementRepository,
	stockRepo repository.StockRepository,
	materialRepo repository.MaterialRepository,
	purchaseRepo repository.MaterialPurchaseRepository,
) error) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		return fn(
			NewMaterialMovementRepository(tx),
			NewStockRepository(tx),
			NewMaterialRepository(tx),
			NewMaterialPurchaseRepository(tx),
		)
	})
}

// RunBOM transacción sobre un cuadro y sus líneas de materiales.
func (r *TxRunner) RunBOM(ctx context.Context, fn func(
	pictureRepo repository.PictureRepository,
	lineRepo repository.PictureMaterialRepository,
) error) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		return fn(NewPictureRepository(tx), NewPictureMaterialRepository(tx))
	})
}
