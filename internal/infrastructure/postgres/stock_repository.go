package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/paintshop-api/internal/domain"
	"github.com/jhoicas/paintshop-api/internal/domain/entity"
	"github.com/jhoicas/paintshop-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// GetByMaterial obtiene el saldo del material; nil si nunca se inicializó.
func (r *StockRepo) GetByMaterial(ctx context.Context, materialID string) (*entity.Stock, error) {
	if !isUUID(materialID) {
		return nil, nil
	}
	query := `
		SELECT id, material_id, quantity, min_level, last_updated
		FROM stock WHERE material_id = $1`
	s, err := scanStock(r.q.QueryRow(ctx, query, materialID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storageErr("get stock", err)
	}
	return s, nil
}

// GetForUpdate crea la fila en 0 si no existe y la bloquea (SELECT FOR UPDATE).
// Debe usarse con un Querier transaccional.
func (r *StockRepo) GetForUpdate(ctx context.Context, materialID string) (*entity.Stock, error) {
	insert := `
		INSERT INTO stock (id, material_id, quantity, last_updated)
		VALUES ($1, $2, 0, now())
		ON CONFLICT (material_id) DO NOTHING`
	if _, err := r.q.Exec(ctx, insert, uuid.New().String(), materialID); err != nil {
		return nil, storageErr("init stock", err)
	}
	query := `
		SELECT id, material_id, quantity, min_level, last_updated
		FROM stock WHERE material_id = $1
		FOR UPDATE`
	s, err := scanStock(r.q.QueryRow(ctx, query, materialID))
	if err != nil {
		return nil, storageErr("get stock for update", err)
	}
	return s, nil
}

// Save persiste cantidad, nivel mínimo y last_updated.
func (r *StockRepo) Save(ctx context.Context, s *entity.Stock) error {
	query := `
		UPDATE stock SET quantity = $2, min_level = $3, last_updated = $4
		WHERE material_id = $1`
	tag, err := r.q.Exec(ctx, query, s.MaterialID, s.Quantity, s.MinLevel, s.LastUpdated)
	if err != nil {
		return storageErr("update stock", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update stock: %w: fila de stock del material %s no existe", domain.ErrStorage, s.MaterialID)
	}
	return nil
}

// List todos los saldos.
func (r *StockRepo) List(ctx context.Context) ([]*entity.Stock, error) {
	query := `SELECT id, material_id, quantity, min_level, last_updated FROM stock`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, storageErr("list stock", err)
	}
	defer rows.Close()

	list := make([]*entity.Stock, 0)
	for rows.Next() {
		s, err := scanStock(rows)
		if err != nil {
			return nil, storageErr("scan stock", err)
		}
		list = append(list, s)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("list stock", err)
	}
	return list, nil
}

func scanStock(row pgx.Row) (*entity.Stock, error) {
	var s entity.Stock
	if err := row.Scan(&s.ID, &s.MaterialID, &s.Quantity, &s.MinLevel, &s.LastUpdated); err != nil {
		return nil, err
	}
	return &s, nil
}
