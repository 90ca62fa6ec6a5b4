// seed carga datos de ejemplo en la base configurada: formatos de cuadro, un material
// por categoría y compras iniciales (que entran al almacén como movimientos IN).
//
// Uso: go run ./cmd/seed
// Lee la misma configuración que la API (DATABASE_URL, DB_*); siempre usa PostgreSQL.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jhoicas/paintshop-api/internal/application/dto"
	"github.com/jhoicas/paintshop-api/internal/application/inventory"
	"github.com/jhoicas/paintshop-api/internal/application/picture"
	"github.com/jhoicas/paintshop-api/internal/application/usecase"
	"github.com/jhoicas/paintshop-api/internal/infrastructure/postgres"
	"github.com/jhoicas/paintshop-api/pkg/config"
	"github.com/jhoicas/paintshop-api/pkg/logger"
	"github.com/shopspring/decimal"
)

type seedMaterial struct {
	name      string
	unit      string
	category  string
	minLevel  int64
	quantity  int64
	unitPrice string
}

var sizes = []struct {
	name          string
	width, height int64
}{
	{"30x40", 30, 40},
	{"40x50", 40, 50},
	{"50x70", 50, 70},
	{"100x150", 100, 150},
}

var materials = []seedMaterial{
	{"Lienzo 30x40 preimpreso", "pcs", "CANVAS", 10, 25, "4.50"},
	{"Set pintura acrílica 24 colores", "set", "PAINT", 15, 40, "6.20"},
	{"Pinceles sintéticos x3", "set", "BRUSH", 10, 30, "1.80"},
	{"Marco de madera 30x40", "pcs", "FRAME", 5, 12, "7.00"},
	{"Plantilla numerada", "pcs", "NUMBER", 10, 50, "0.35"},
	{"Caja de envío", "pcs", "PACKAGING", 20, 60, "0.90"},
}

func main() {
	if err := run(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "seed: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("cargar configuración: %w", err)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return err
	}
	defer pool.Close()
	if err := postgres.Migrate(ctx, pool); err != nil {
		return err
	}

	tx := postgres.NewTxRunner(pool)
	materialRepo := postgres.NewMaterialRepository(pool)
	sizeRepo := postgres.NewPictureSizeRepository(pool)
	pictureRepo := postgres.NewPictureRepository(pool)
	lineRepo := postgres.NewPictureMaterialRepository(pool)

	materialUC := usecase.NewMaterialUseCase(tx, materialRepo, sizeRepo)
	purchaseUC := inventory.NewPurchaseUseCase(tx, postgres.NewMaterialPurchaseRepository(pool), nil)
	bomUC := picture.NewBOMUseCase(tx, pictureRepo, sizeRepo, materialRepo, lineRepo, nil, log)
	pictureUC := picture.NewPictureUseCase(tx, pictureRepo, sizeRepo, materialRepo, lineRepo, bomUC)

	for _, s := range sizes {
		size, err := pictureUC.CreateSize(ctx, s.name, decimal.NewFromInt(s.width), decimal.NewFromInt(s.height))
		if err != nil {
			return fmt.Errorf("formato %s: %w", s.name, err)
		}
		log.Info().Str("id", size.ID).Str("name", size.Name).Msg("formato creado")
	}

	for _, m := range materials {
		lvl := decimal.NewFromInt(m.minLevel)
		created, err := materialUC.Create(ctx, dto.CreateMaterialRequest{
			Name:     m.name,
			Unit:     m.unit,
			Category: m.category,
			MinLevel: &lvl,
		})
		if err != nil {
			return fmt.Errorf("material %s: %w", m.name, err)
		}
		price, err := decimal.NewFromString(m.unitPrice)
		if err != nil {
			return fmt.Errorf("precio %s: %w", m.name, err)
		}
		if _, err := purchaseUC.RecordPurchase(ctx, inventory.PurchaseInput{
			MaterialID:   created.ID,
			Quantity:     decimal.NewFromInt(m.quantity),
			UnitPrice:    price,
			Supplier:     "Proveedor inicial",
			PurchaseDate: time.Now(),
			Notes:        "carga inicial",
		}); err != nil {
			return fmt.Errorf("compra %s: %w", m.name, err)
		}
		log.Info().Str("id", created.ID).Str("name", created.Name).Msg("material creado")
	}
	return nil
}
