package postgres

import (
	"context"

	"github.com/jhoicas/paintshop-api/internal/domain/entity"
	"github.com/jhoicas/paintshop-api/internal/domain/repository"
)

var _ repository.MaterialPurchaseRepository = (*MaterialPurchaseRepo)(nil)

// MaterialPurchaseRepo implementación de compras de material sobre PostgreSQL.
type MaterialPurchaseRepo struct {
	q Querier
}

// NewMaterialPurchaseRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMaterialPurchaseRepository(q Querier) *MaterialPurchaseRepo {
	return &MaterialPurchaseRepo{q: q}
}

// Create inserta una compra.
func (r *MaterialPurchaseRepo) Create(ctx context.Context, p *entity.MaterialPurchase) error {
	query := `
		INSERT INTO material_purchases (id, material_id, quantity, unit_price, total_price, supplier, purchase_date, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.MaterialID, p.Quantity, p.UnitPrice, p.TotalPrice, p.Supplier, p.PurchaseDate, p.Notes, p.CreatedAt,
	)
	if err != nil {
		return storageErr("insert purchase", err)
	}
	return nil
}

// ListRecentByMaterial últimas compras por fecha de compra descendente.
func (r *MaterialPurchaseRepo) ListRecentByMaterial(ctx context.Context, materialID string, limit int) ([]*entity.MaterialPurchase, error) {
	if !isUUID(materialID) {
		return []*entity.MaterialPurchase{}, nil
	}
	query := `
		SELECT id, material_id, quantity, unit_price, total_price, supplier, purchase_date, notes, created_at
		FROM material_purchases
		WHERE material_id = $1
		ORDER BY purchase_date DESC, created_at DESC
		LIMIT $2`
	rows, err := r.q.Query(ctx, query, materialID, limit)
	if err != nil {
		return nil, storageErr("list purchases", err)
	}
	defer rows.Close()

	list := make([]*entity.MaterialPurchase, 0)
	for rows.Next() {
		var p entity.MaterialPurchase
		if err := rows.Scan(&p.ID, &p.MaterialID, &p.Quantity, &p.UnitPrice, &p.TotalPrice,
			&p.Supplier, &p.PurchaseDate, &p.Notes, &p.CreatedAt); err != nil {
			return nil, storageErr("scan purchase", err)
		}
		list = append(list, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("list purchases", err)
	}
	return list, nil
}
