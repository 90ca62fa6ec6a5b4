// Package memory implementa los repositorios del almacén sobre mapas en proceso.
// Se usa con STORAGE_DRIVER=memory para demos locales y en las pruebas de casos de uso.
//
// Las transacciones se emulan con un candado global: Run toma el candado, guarda una
// copia del estado y la restaura si la función devuelve error.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/paintshop-api/internal/application/inventory"
	"github.com/jhoicas/paintshop-api/internal/application/picture"
	"github.com/jhoicas/paintshop-api/internal/domain/entity"
	"github.com/jhoicas/paintshop-api/internal/domain/repository"
)

var (
	_ inventory.TxRunner         = (*Store)(nil)
	_ inventory.PurchaseTxRunner = (*Store)(nil)
	_ picture.TxRunner           = (*Store)(nil)
)

// Store estado compartido de todos los repositorios en memoria.
type Store struct {
	mu   sync.Mutex
	data *state
}

type state struct {
	materials map[string]*entity.Material
	stocks    map[string]*entity.Stock // por material_id
	movements []*entity.MaterialMovement
	purchases []*entity.MaterialPurchase
	sizes     map[string]*entity.PictureSize
	pictures  map[string]*entity.Picture
	lines     []*entity.PictureMaterial
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{data: &state{
		materials: make(map[string]*entity.Material),
		stocks:    make(map[string]*entity.Stock),
		sizes:     make(map[string]*entity.PictureSize),
		pictures:  make(map[string]*entity.Picture),
	}}
}

func (st *state) clone() *state {
	c := &state{
		materials: make(map[string]*entity.Material, len(st.materials)),
		stocks:    make(map[string]*entity.Stock, len(st.stocks)),
		movements: make([]*entity.MaterialMovement, len(st.movements)),
		purchases: make([]*entity.MaterialPurchase, len(st.purchases)),
		sizes:     make(map[string]*entity.PictureSize, len(st.sizes)),
		pictures:  make(map[string]*entity.Picture, len(st.pictures)),
		lines:     make([]*entity.PictureMaterial, len(st.lines)),
	}
	for k, v := range st.materials {
		c.materials[k] = copyMaterial(v)
	}
	for k, v := range st.stocks {
		c.stocks[k] = copyStock(v)
	}
	// Movimientos, compras y formatos no se modifican tras insertarse.
	copy(c.movements, st.movements)
	copy(c.purchases, st.purchases)
	for k, v := range st.sizes {
		c.sizes[k] = v
	}
	for k, v := range st.pictures {
		c.pictures[k] = copyPicture(v)
	}
	copy(c.lines, st.lines)
	return c
}

// access serializa el acceso al estado. Los repositorios de una transacción (tx=true)
// ya corren bajo el candado tomado por Run.
type access struct {
	store *Store
	tx    bool
}

func (a access) do(fn func(st *state) error) error {
	if !a.tx {
		a.store.mu.Lock()
		defer a.store.mu.Unlock()
	}
	return fn(a.store.data)
}

func (s *Store) run(ctx context.Context, fn func(a access) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot := s.data.clone()
	if err := fn(access{store: s, tx: true}); err != nil {
		s.data = snapshot
		return err
	}
	return nil
}

// Run ejecuta fn con repositorios de almacén dentro de una transacción emulada.
func (s *Store) Run(ctx context.Context, fn func(
	movRepo repository.MaterialMovementRepository,
	stockRepo repository.StockRepository,
	materialRepo repository.MaterialRepository,
) error) error {
	return s.run(ctx, func(a access) error {
		return fn(&MovementRepo{a}, &StockRepo{a}, &MaterialRepo{a})
	})
}

// RunPurchase como Run, incluyendo el repositorio de compras.
func (s *Store) RunPurchase(ctx context.Context, fn func(
	movRepo repository.MaterialMovementRepository,
	stockRepo repository.StockRepository,
	materialRepo repository.MaterialRepository,
	purchaseRepo repository.MaterialPurchaseRepository,
) error) error {
	return s.run(ctx, func(a access) error {
		return fn(&MovementRepo{a}, &StockRepo{a}, &MaterialRepo{a}, &PurchaseRepo{a})
	})
}

// RunBOM transacción sobre cuadros y sus líneas de materiales.
func (s *Store) RunBOM(ctx context.Context, fn func(
	pictureRepo repository.PictureRepository,
	lineRepo repository.PictureMaterialRepository,
) error) error {
	return s.run(ctx, func(a access) error {
		return fn(&PictureRepo{a}, &PictureMaterialRepo{a})
	})
}

// Repositorios fuera de transacción: cada llamada toma el candado por separado.
// No deben usarse dentro de un fn de Run, RunPurchase o RunBOM.

// Materials repositorio de materiales.
func (s *Store) Materials() *MaterialRepo { return &MaterialRepo{access{store: s}} }

// Stocks repositorio de saldos.
func (s *Store) Stocks() *StockRepo { return &StockRepo{access{store: s}} }

// Movements registro de movimientos.
func (s *Store) Movements() *MovementRepo { return &MovementRepo{access{store: s}} }

// Purchases repositorio de compras.
func (s *Store) Purchases() *PurchaseRepo { return &PurchaseRepo{access{store: s}} }

// Pictures repositorio de cuadros.
func (s *Store) Pictures() *PictureRepo { return &PictureRepo{access{store: s}} }

// PictureSizes repositorio de formatos de cuadro.
func (s *Store) PictureSizes() *PictureSizeRepo { return &PictureSizeRepo{access{store: s}} }

// PictureMaterials líneas de las listas de materiales.
func (s *Store) PictureMaterials() *PictureMaterialRepo { return &PictureMaterialRepo{access{store: s}} }

func copyMaterial(m *entity.Material) *entity.Material {
	c := *m
	if m.PictureSizeID != nil {
		id := *m.PictureSizeID
		c.PictureSizeID = &id
	}
	return &c
}

func copyStock(s *entity.Stock) *entity.Stock {
	c := *s
	if s.MinLevel != nil {
		lvl := *s.MinLevel
		c.MinLevel = &lvl
	}
	return &c
}

func copyPicture(p *entity.Picture) *entity.Picture {
	c := *p
	if p.PictureSizeID != nil {
		id := *p.PictureSizeID
		c.PictureSizeID = &id
	}
	if p.CostPrice != nil {
		v := *p.CostPrice
		c.CostPrice = &v
	}
	if p.WorkHours != nil {
		v := *p.WorkHours
		c.WorkHours = &v
	}
	return &c
}
