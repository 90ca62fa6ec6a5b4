package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/paintshop-api/internal/domain"
	"github.com/jhoicas/paintshop-api/internal/domain/entity"
	"github.com/jhoicas/paintshop-api/internal/domain/repository"
)

var _ repository.MaterialRepository = (*MaterialRepo)(nil)

const materialColumns = `id, name, unit, category, picture_size_id, active, created_at, updated_at`

// MaterialRepo implementación de MaterialRepository sobre PostgreSQL (usable con pool o tx).
type MaterialRepo struct {
	q Querier
}

// NewMaterialRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMaterialRepository(q Querier) *MaterialRepo {
	return &MaterialRepo{q: q}
}

// Create persiste un nuevo material.
func (r *MaterialRepo) Create(ctx context.Context, m *entity.Material) error {
	query := `
		INSERT INTO materials (` + materialColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.Name, m.Unit, string(m.Category), m.PictureSizeID, m.Active, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		return storageErr("insert material", err)
	}
	return nil
}

// GetByID obtiene un material por ID; nil si no existe.
func (r *MaterialRepo) GetByID(ctx context.Context, id string) (*entity.Material, error) {
	if !isUUID(id) {
		return nil, nil
	}
	query := `SELECT ` + materialColumns + ` FROM materials WHERE id = $1`
	m, err := scanMaterial(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storageErr("get material", err)
	}
	return m, nil
}

// Update actualiza los datos de catálogo del material.
func (r *MaterialRepo) Update(ctx context.Context, m *entity.Material) error {
	query := `
		UPDATE materials
		SET name = $2, unit = $3, category = $4, picture_size_id = $5, active = $6, updated_at = $7
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		m.ID, m.Name, m.Unit, string(m.Category), m.PictureSizeID, m.Active, m.UpdatedAt,
	)
	if err != nil {
		return storageErr("update material", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: material %s", domain.ErrNotFound, m.ID)
	}
	return nil
}

// List lista materiales ordenados por nombre.
func (r *MaterialRepo) List(ctx context.Context, filter repository.MaterialFilter) ([]*entity.Material, error) {
	query := `
		SELECT ` + materialColumns + `
		FROM materials
		WHERE ($1 = false OR active)
		  AND ($2 = '' OR category = $2)
		ORDER BY name, id`
	rows, err := r.q.Query(ctx, query, filter.OnlyActive, string(filter.Category))
	if err != nil {
		return nil, storageErr("list materials", err)
	}
	defer rows.Close()

	list := make([]*entity.Material, 0)
	for rows.Next() {
		m, err := scanMaterial(rows)
		if err != nil {
			return nil, storageErr("scan material", err)
		}
		list = append(list, m)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("list materials", err)
	}
	return list, nil
}

// FirstActiveByCategory material activo más antiguo de la categoría (desempate por nombre).
func (r *MaterialRepo) FirstActiveByCategory(ctx context.Context, category entity.MaterialCategory) (*entity.Material, error) {
	query := `
		SELECT ` + materialColumns + `
		FROM materials
		WHERE category = $1 AND active
		ORDER BY created_at, name
		LIMIT 1`
	m, err := scanMaterial(r.q.QueryRow(ctx, query, string(category)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storageErr("first material by category", err)
	}
	return m, nil
}

func scanMaterial(row pgx.Row) (*entity.Material, error) {
	var m entity.Material
	var category string
	err := row.Scan(&m.ID, &m.Name, &m.Unit, &category, &m.PictureSizeID, &m.Active, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	m.Category = entity.MaterialCategory(category)
	return &m, nil
}
