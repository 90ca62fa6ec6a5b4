package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/paintshop-api/internal/domain"
	"github.com/jhoicas/paintshop-api/internal/domain/entity"
	"github.com/jhoicas/paintshop-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// MaterialRepo implementa repository.MaterialRepository.
type MaterialRepo struct{ a access }

var _ repository.MaterialRepository = (*MaterialRepo)(nil)

// Create agrega el material; un ID repetido es ErrStorage.
func (r *MaterialRepo) Create(_ context.Context, m *entity.Material) error {
	return r.a.do(func(st *state) error {
		if _, ok := st.materials[m.ID]; ok {
			return fmt.Errorf("%w: material %s duplicado", domain.ErrStorage, m.ID)
		}
		st.materials[m.ID] = copyMaterial(m)
		return nil
	})
}

// GetByID copia del material; nil si no existe.
func (r *MaterialRepo) GetByID(_ context.Context, id string) (*entity.Material, error) {
	var out *entity.Material
	err := r.a.do(func(st *state) error {
		if m, ok := st.materials[id]; ok {
			out = copyMaterial(m)
		}
		return nil
	})
	return out, err
}

// Update reemplaza los datos de catálogo del material.
func (r *MaterialRepo) Update(_ context.Context, m *entity.Material) error {
	return r.a.do(func(st *state) error {
		if _, ok := st.materials[m.ID]; !ok {
			return fmt.Errorf("%w: material %s", domain.ErrNotFound, m.ID)
		}
		st.materials[m.ID] = copyMaterial(m)
		return nil
	})
}

// List materiales filtrados por estado y categoría, ordenados por nombre.
func (r *MaterialRepo) List(_ context.Context, filter repository.MaterialFilter) ([]*entity.Material, error) {
	out := make([]*entity.Material, 0)
	err := r.a.do(func(st *state) error {
		for _, m := range st.materials {
			if filter.OnlyActive && !m.Active {
				continue
			}
			if filter.Category != "" && m.Category != filter.Category {
				continue
			}
			out = append(out, copyMaterial(m))
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, err
}

// FirstActiveByCategory material activo más antiguo de la categoría; nil si no hay.
func (r *MaterialRepo) FirstActiveByCategory(_ context.Context, category entity.MaterialCategory) (*entity.Material, error) {
	var out *entity.Material
	err := r.a.do(func(st *state) error {
		for _, m := range st.materials {
			if !m.Active || m.Category != category {
				continue
			}
			if out == nil || m.CreatedAt.Before(out.CreatedAt) ||
				(m.CreatedAt.Equal(out.CreatedAt) && m.Name < out.Name) {
				out = m
			}
		}
		if out != nil {
			out = copyMaterial(out)
		}
		return nil
	})
	return out, err
}

// StockRepo implementa repository.StockRepository.
type StockRepo struct{ a access }

var _ repository.StockRepository = (*StockRepo)(nil)

// GetByMaterial saldo del material; nil si nunca se inicializó.
func (r *StockRepo) GetByMaterial(_ context.Context, materialID string) (*entity.Stock, error) {
	var out *entity.Stock
	err := r.a.do(func(st *state) error {
		if s, ok := st.stocks[materialID]; ok {
			out = copyStock(s)
		}
		return nil
	})
	return out, err
}

// GetForUpdate el candado global de la transacción hace de bloqueo de fila.
func (r *StockRepo) GetForUpdate(_ context.Context, materialID string) (*entity.Stock, error) {
	var out *entity.Stock
	err := r.a.do(func(st *state) error {
		s, ok := st.stocks[materialID]
		if !ok {
			s = &entity.Stock{
				ID:          uuid.New().String(),
				MaterialID:  materialID,
				Quantity:    decimal.Zero,
				LastUpdated: time.Now(),
			}
			st.stocks[materialID] = s
		}
		out = copyStock(s)
		return nil
	})
	return out, err
}

// Save escribe el saldo completo del material.
func (r *StockRepo) Save(_ context.Context, s *entity.Stock) error {
	return r.a.do(func(st *state) error {
		if _, ok := st.stocks[s.MaterialID]; !ok {
			return fmt.Errorf("%w: stock del material %s no existe", domain.ErrStorage, s.MaterialID)
		}
		st.stocks[s.MaterialID] = copyStock(s)
		return nil
	})
}

// List todos los saldos inicializados.
func (r *StockRepo) List(_ context.Context) ([]*entity.Stock, error) {
	out := make([]*entity.Stock, 0)
	err := r.a.do(func(st *state) error {
		for _, s := range st.stocks {
			out = append(out, copyStock(s))
		}
		return nil
	})
	return out, err
}

// MovementRepo implementa repository.MaterialMovementRepository.
type MovementRepo struct{ a access }

var _ repository.MaterialMovementRepository = (*MovementRepo)(nil)

// Create agrega el movimiento al registro.
func (r *MovementRepo) Create(_ context.Context, m *entity.MaterialMovement) error {
	c := *m
	return r.a.do(func(st *state) error {
		st.movements = append(st.movements, &c)
		return nil
	})
}

// ListByMaterial movimientos del material, del más reciente al más antiguo.
func (r *MovementRepo) ListByMaterial(_ context.Context, materialID string, limit int) ([]*entity.MaterialMovement, error) {
	return r.list(func(m *entity.MaterialMovement) bool { return m.MaterialID == materialID }, limit)
}

// ListAll movimientos de todos los materiales, del más reciente al más antiguo.
func (r *MovementRepo) ListAll(_ context.Context, limit int) ([]*entity.MaterialMovement, error) {
	return r.list(func(*entity.MaterialMovement) bool { return true }, limit)
}

// list recorre en orden inverso de inserción: del más reciente al más antiguo.
func (r *MovementRepo) list(match func(*entity.MaterialMovement) bool, limit int) ([]*entity.MaterialMovement, error) {
	out := make([]*entity.MaterialMovement, 0)
	err := r.a.do(func(st *state) error {
		for i := len(st.movements) - 1; i >= 0 && len(out) < limit; i-- {
			if m := st.movements[i]; match(m) {
				c := *m
				out = append(out, &c)
			}
		}
		return nil
	})
	return out, err
}

// Count cuenta movimientos desde since (nil = todos).
func (r *MovementRepo) Count(_ context.Context, since *time.Time) (int, error) {
	n := 0
	err := r.a.do(func(st *state) error {
		for _, m := range st.movements {
			if since == nil || !m.CreatedAt.Before(*since) {
				n++
			}
		}
		return nil
	})
	return n, err
}

// SignedSum suma con signo de los movimientos del material.
func (r *MovementRepo) SignedSum(_ context.Context, materialID string) (decimal.Decimal, error) {
	sum := decimal.Zero
	err := r.a.do(func(st *state) error {
		for _, m := range st.movements {
			if m.MaterialID == materialID {
				sum = sum.Add(m.Signed())
			}
		}
		return nil
	})
	return sum, err
}

// PurchaseRepo implementa repository.MaterialPurchaseRepository.
type PurchaseRepo struct{ a access }

var _ repository.MaterialPurchaseRepository = (*PurchaseRepo)(nil)

// Create agrega la compra.
func (r *PurchaseRepo) Create(_ context.Context, p *entity.MaterialPurchase) error {
	c := *p
	return r.a.do(func(st *state) error {
		st.purchases = append(st.purchases, &c)
		return nil
	})
}

// ListRecentByMaterial últimas compras por fecha de compra descendente.
func (r *PurchaseRepo) ListRecentByMaterial(_ context.Context, materialID string, limit int) ([]*entity.MaterialPurchase, error) {
	out := make([]*entity.MaterialPurchase, 0)
	err := r.a.do(func(st *state) error {
		for _, p := range st.purchases {
			if p.MaterialID == materialID {
				c := *p
				out = append(out, &c)
			}
		}
		return nil
	})
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].PurchaseDate.Equal(out[j].PurchaseDate) {
			return out[i].PurchaseDate.After(out[j].PurchaseDate)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, err
}

// PictureRepo implementa repository.PictureRepository.
type PictureRepo struct{ a access }

var _ repository.PictureRepository = (*PictureRepo)(nil)

// Create agrega el cuadro.
func (r *PictureRepo) Create(_ context.Context, p *entity.Picture) error {
	return r.a.do(func(st *state) error {
		if _, ok := st.pictures[p.ID]; ok {
			return fmt.Errorf("%w: cuadro %s duplicado", domain.ErrStorage, p.ID)
		}
		st.pictures[p.ID] = copyPicture(p)
		return nil
	})
}

// GetByID copia del cuadro; nil si no existe.
func (r *PictureRepo) GetByID(_ context.Context, id string) (*entity.Picture, error) {
	var out *entity.Picture
	err := r.a.do(func(st *state) error {
		if p, ok := st.pictures[id]; ok {
			out = copyPicture(p)
		}
		return nil
	})
	return out, err
}

// UpdateCostPrice escribe el costo calculado.
func (r *PictureRepo) UpdateCostPrice(_ context.Context, id string, cost decimal.Decimal) error {
	return r.a.do(func(st *state) error {
		p, ok := st.pictures[id]
		if !ok {
			return fmt.Errorf("%w: cuadro %s", domain.ErrNotFound, id)
		}
		p.CostPrice = &cost
		p.UpdatedAt = time.Now()
		return nil
	})
}

// UpdateSize asigna el formato del cuadro.
func (r *PictureRepo) UpdateSize(_ context.Context, id, pictureSizeID string) error {
	return r.a.do(func(st *state) error {
		p, ok := st.pictures[id]
		if !ok {
			return fmt.Errorf("%w: cuadro %s", domain.ErrNotFound, id)
		}
		p.PictureSizeID = &pictureSizeID
		p.UpdatedAt = time.Now()
		return nil
	})
}

// PictureSizeRepo implementa repository.PictureSizeRepository.
type PictureSizeRepo struct{ a access }

var _ repository.PictureSizeRepository = (*PictureSizeRepo)(nil)

// Create agrega el formato.
func (r *PictureSizeRepo) Create(_ context.Context, s *entity.PictureSize) error {
	c := *s
	return r.a.do(func(st *state) error {
		if _, ok := st.sizes[s.ID]; ok {
			return fmt.Errorf("%w: formato %s duplicado", domain.ErrStorage, s.ID)
		}
		st.sizes[s.ID] = &c
		return nil
	})
}

// GetByID copia del formato; nil si no existe.
func (r *PictureSizeRepo) GetByID(_ context.Context, id string) (*entity.PictureSize, error) {
	var out *entity.PictureSize
	err := r.a.do(func(st *state) error {
		if s, ok := st.sizes[id]; ok {
			c := *s
			out = &c
		}
		return nil
	})
	return out, err
}

// List formatos ordenados por nombre.
func (r *PictureSizeRepo) List(_ context.Context) ([]*entity.PictureSize, error) {
	out := make([]*entity.PictureSize, 0)
	err := r.a.do(func(st *state) error {
		for _, s := range st.sizes {
			c := *s
			out = append(out, &c)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, err
}

// PictureMaterialRepo implementa repository.PictureMaterialRepository.
type PictureMaterialRepo struct{ a access }

var _ repository.PictureMaterialRepository = (*PictureMaterialRepo)(nil)

// Create agrega una línea a la lista de materiales.
func (r *PictureMaterialRepo) Create(_ context.Context, l *entity.PictureMaterial) error {
	c := *l
	return r.a.do(func(st *state) error {
		st.lines = append(st.lines, &c)
		return nil
	})
}

// ListByPicture líneas del cuadro en orden de inserción.
func (r *PictureMaterialRepo) ListByPicture(_ context.Context, pictureID string) ([]*entity.PictureMaterial, error) {
	out := make([]*entity.PictureMaterial, 0)
	err := r.a.do(func(st *state) error {
		for _, l := range st.lines {
			if l.PictureID == pictureID {
				c := *l
				out = append(out, &c)
			}
		}
		return nil
	})
	return out, err
}

// DeleteByPicture borra todas las líneas del cuadro.
func (r *PictureMaterialRepo) DeleteByPicture(_ context.Context, pictureID string) error {
	return r.a.do(func(st *state) error {
		kept := make([]*entity.PictureMaterial, 0, len(st.lines))
		for _, l := range st.lines {
			if l.PictureID != pictureID {
				kept = append(kept, l)
			}
		}
		st.lines = kept
		return nil
	})
}
