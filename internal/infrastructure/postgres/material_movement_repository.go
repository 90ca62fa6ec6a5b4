package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/paintshop-api/internal/domain/entity"
	"github.com/jhoicas/paintshop-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.MaterialMovementRepository = (*MaterialMovementRepo)(nil)

const movementColumns = `id, material_id, stock_id, type, quantity, reason, reference_id, reference_type, notes, created_by, created_at`

// MaterialMovementRepo implementación del registro de movimientos (solo inserción).
type MaterialMovementRepo struct {
	q Querier
}

// NewMaterialMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMaterialMovementRepository(q Querier) *MaterialMovementRepo {
	return &MaterialMovementRepo{q: q}
}

// Create inserta un movimiento.
func (r *MaterialMovementRepo) Create(ctx context.Context, m *entity.MaterialMovement) error {
	query := `
		INSERT INTO material_movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.MaterialID, m.StockID, m.Type, m.Quantity, m.Reason,
		nullIfEmpty(m.ReferenceID), nullIfEmpty(m.ReferenceType), m.Notes, nullIfEmpty(m.CreatedBy), m.CreatedAt,
	)
	if err != nil {
		return storageErr("insert movement", err)
	}
	return nil
}

// ListByMaterial movimientos del material, del más reciente al más antiguo.
func (r *MaterialMovementRepo) ListByMaterial(ctx context.Context, materialID string, limit int) ([]*entity.MaterialMovement, error) {
	if !isUUID(materialID) {
		return []*entity.MaterialMovement{}, nil
	}
	query := `
		SELECT ` + movementColumns + `
		FROM material_movements
		WHERE material_id = $1
		ORDER BY created_at DESC, seq DESC
		LIMIT $2`
	return r.list(ctx, query, materialID, limit)
}

// ListAll movimientos de todos los materiales, del más reciente al más antiguo.
func (r *MaterialMovementRepo) ListAll(ctx context.Context, limit int) ([]*entity.MaterialMovement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM material_movements
		ORDER BY created_at DESC, seq DESC
		LIMIT $1`
	return r.list(ctx, query, limit)
}

// Count cuenta movimientos desde since (nil = todos).
func (r *MaterialMovementRepo) Count(ctx context.Context, since *time.Time) (int, error) {
	query := `SELECT count(*) FROM material_movements WHERE $1::timestamptz IS NULL OR created_at >= $1`
	var n int
	if err := r.q.QueryRow(ctx, query, since).Scan(&n); err != nil {
		return 0, storageErr("count movements", err)
	}
	return n, nil
}

// SignedSum suma con signo de los movimientos del material.
func (r *MaterialMovementRepo) SignedSum(ctx context.Context, materialID string) (decimal.Decimal, error) {
	if !isUUID(materialID) {
		return decimal.Zero, nil
	}
	query := `
		SELECT COALESCE(SUM(CASE WHEN type = 'OUT' THEN -quantity ELSE quantity END), 0)
		FROM material_movements WHERE material_id = $1`
	var sum decimal.Decimal
	if err := r.q.QueryRow(ctx, query, materialID).Scan(&sum); err != nil {
		return decimal.Zero, storageErr("sum movements", err)
	}
	return sum, nil
}

func (r *MaterialMovementRepo) list(ctx context.Context, query string, args ...any) ([]*entity.MaterialMovement, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, storageErr("list movements", err)
	}
	defer rows.Close()

	list := make([]*entity.MaterialMovement, 0)
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, storageErr("scan movement", err)
		}
		list = append(list, m)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("list movements", err)
	}
	return list, nil
}

func scanMovement(row pgx.Row) (*entity.MaterialMovement, error) {
	var m entity.MaterialMovement
	var refID, refType, createdBy *string
	err := row.Scan(&m.ID, &m.MaterialID, &m.StockID, &m.Type, &m.Quantity, &m.Reason,
		&refID, &refType, &m.Notes, &createdBy, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	m.ReferenceID = derefString(refID)
	m.ReferenceType = derefString(refType)
	m.CreatedBy = derefString(createdBy)
	return &m, nil
}
