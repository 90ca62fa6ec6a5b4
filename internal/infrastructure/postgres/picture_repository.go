package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/paintshop-api/internal/domain"
	"github.com/jhoicas/paintshop-api/internal/domain/entity"
	"github.com/jhoicas/paintshop-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var (
	_ repository.PictureRepository         = (*PictureRepo)(nil)
	_ repository.PictureSizeRepository     = (*PictureSizeRepo)(nil)
	_ repository.PictureMaterialRepository = (*PictureMaterialRepo)(nil)
)

// PictureRepo implementación de PictureRepository sobre PostgreSQL.
type PictureRepo struct {
	q Querier
}

// NewPictureRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPictureRepository(q Querier) *PictureRepo {
	return &PictureRepo{q: q}
}

// Create inserta un cuadro.
func (r *PictureRepo) Create(ctx context.Context, p *entity.Picture) error {
	query := `
		INSERT INTO pictures (id, title, type, picture_size_id, price, cost_price, work_hours, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.Title, p.Type, p.PictureSizeID, p.Price, p.CostPrice, p.WorkHours, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return storageErr("insert picture", err)
	}
	return nil
}

// GetByID obtiene un cuadro; nil si no existe.
func (r *PictureRepo) GetByID(ctx context.Context, id string) (*entity.Picture, error) {
	if !isUUID(id) {
		return nil, nil
	}
	query := `
		SELECT id, title, type, picture_size_id, price, cost_price, work_hours, created_at, updated_at
		FROM pictures WHERE id = $1`
	var p entity.Picture
	err := r.q.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Title, &p.Type, &p.PictureSizeID, &p.Price, &p.CostPrice, &p.WorkHours, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storageErr("get picture", err)
	}
	return &p, nil
}

// UpdateCostPrice escribe el costo calculado.
func (r *PictureRepo) UpdateCostPrice(ctx context.Context, id string, cost decimal.Decimal) error {
	tag, err := r.q.Exec(ctx, `UPDATE pictures SET cost_price = $2, updated_at = now() WHERE id = $1`, id, cost)
	if err != nil {
		return storageErr("update picture cost", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: cuadro %s", domain.ErrNotFound, id)
	}
	return nil
}

// UpdateSize asigna el formato del cuadro.
func (r *PictureRepo) UpdateSize(ctx context.Context, id, pictureSizeID string) error {
	tag, err := r.q.Exec(ctx, `UPDATE pictures SET picture_size_id = $2, updated_at = now() WHERE id = $1`, id, pictureSizeID)
	if err != nil {
		return storageErr("update picture size", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: cuadro %s", domain.ErrNotFound, id)
	}
	return nil
}

// PictureSizeRepo implementación de formatos de cuadro.
type PictureSizeRepo struct {
	q Querier
}

// NewPictureSizeRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPictureSizeRepository(q Querier) *PictureSizeRepo {
	return &PictureSizeRepo{q: q}
}

// Create inserta un formato.
func (r *PictureSizeRepo) Create(ctx context.Context, s *entity.PictureSize) error {
	query := `
		INSERT INTO picture_sizes (id, name, width_cm, height_cm, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	if _, err := r.q.Exec(ctx, query, s.ID, s.Name, s.Width, s.Height, s.CreatedAt); err != nil {
		return storageErr("insert picture size", err)
	}
	return nil
}

// GetByID obtiene un formato; nil si no existe.
func (r *PictureSizeRepo) GetByID(ctx context.Context, id string) (*entity.PictureSize, error) {
	if !isUUID(id) {
		return nil, nil
	}
	query := `SELECT id, name, width_cm, height_cm, created_at FROM picture_sizes WHERE id = $1`
	var s entity.PictureSize
	err := r.q.QueryRow(ctx, query, id).Scan(&s.ID, &s.Name, &s.Width, &s.Height, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storageErr("get picture size", err)
	}
	return &s, nil
}

// List formatos ordenados por nombre.
func (r *PictureSizeRepo) List(ctx context.Context) ([]*entity.PictureSize, error) {
	rows, err := r.q.Query(ctx, `SELECT id, name, width_cm, height_cm, created_at FROM picture_sizes ORDER BY name`)
	if err != nil {
		return nil, storageErr("list picture sizes", err)
	}
	defer rows.Close()

	list := make([]*entity.PictureSize, 0)
	for rows.Next() {
		var s entity.PictureSize
		if err := rows.Scan(&s.ID, &s.Name, &s.Width, &s.Height, &s.CreatedAt); err != nil {
			return nil, storageErr("scan picture size", err)
		}
		list = append(list, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("list picture sizes", err)
	}
	return list, nil
}

// PictureMaterialRepo implementación de las líneas BOM.
type PictureMaterialRepo struct {
	q Querier
}

// NewPictureMaterialRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPictureMaterialRepository(q Querier) *PictureMaterialRepo {
	return &PictureMaterialRepo{q: q}
}

// Create inserta una línea.
func (r *PictureMaterialRepo) Create(ctx context.Context, l *entity.PictureMaterial) error {
	query := `
		INSERT INTO picture_materials (id, picture_id, material_id, quantity, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	if _, err := r.q.Exec(ctx, query, l.ID, l.PictureID, l.MaterialID, l.Quantity, l.CreatedAt); err != nil {
		return storageErr("insert picture material", err)
	}
	return nil
}

// ListByPicture líneas del cuadro en orden de inserción.
func (r *PictureMaterialRepo) ListByPicture(ctx context.Context, pictureID string) ([]*entity.PictureMaterial, error) {
	if !isUUID(pictureID) {
		return []*entity.PictureMaterial{}, nil
	}
	query := `
		SELECT id, picture_id, material_id, quantity, created_at
		FROM picture_materials WHERE picture_id = $1
		ORDER BY seq`
	rows, err := r.q.Query(ctx, query, pictureID)
	if err != nil {
		return nil, storageErr("list picture materials", err)
	}
	defer rows.Close()

	list := make([]*entity.PictureMaterial, 0)
	for rows.Next() {
		var l entity.PictureMaterial
		if err := rows.Scan(&l.ID, &l.PictureID, &l.MaterialID, &l.Quantity, &l.CreatedAt); err != nil {
			return nil, storageErr("scan picture material", err)
		}
		list = append(list, &l)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("list picture materials", err)
	}
	return list, nil
}

// DeleteByPicture elimina todas las líneas del cuadro.
func (r *PictureMaterialRepo) DeleteByPicture(ctx context.Context, pictureID string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM picture_materials WHERE picture_id = $1`, pictureID); err != nil {
		return storageErr("delete picture materials", err)
	}
	return nil
}
